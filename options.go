package traysession

// Keys looked up in the settings when Options leaves the icon fields empty.
const (
	KeyNotifyIconPath = "NotifyIconPath"
	KeyNotifyIconText = "NotifyIconText"
)

// Tags of the default menu items.
const (
	TagOpen = "OPEN"
	TagExit = "EXIT"
)

// DefaultSettingsFiles are tried in order; the first one that exists wins.
var DefaultSettingsFiles = []string{"appsettings.local.json", "appsettings.json"}

type Options struct {
	// Headless skips the tray icon entirely. The icon checks only apply
	// when it is false.
	Headless bool

	IconPath string
	IconText string
	Title    string

	SettingsFiles []string
	EnvPrefix     string

	// OnMenuItem receives tags that are neither OPEN nor EXIT and have no
	// handler of their own.
	OnMenuItem func(tag string)
	OnReady    func()
	OnExit     func()
}

type MenuItem struct {
	Title    string
	Tooltip  string
	Disabled bool
	Checked  bool
	// Tag defaults to the upper-cased Title.
	Tag     string
	Handler func()
	// Items form a submenu. Their clicks are dispatched by their own tags.
	Items []MenuItem
}
