package traysession

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

var (
	ErrNoIconPath      = errors.New("cannot initialise context as no icon path specified")
	ErrNoIconText      = errors.New("cannot initialise context as no icon text specified")
	ErrNoWindowFactory = errors.New("no main window factory")
	ErrExited          = errors.New("controller has exited")
	ErrRunning         = errors.New("controller is already running")
)

// trayBackend is the platform notification-area icon.
type trayBackend interface {
	// run blocks until quit is called or the OS removes the icon.
	run(onReady, onExit func())
	setIcon(icon []byte)
	setTitle(title string)
	setTooltip(text string)
	// addMenuItem builds item and its submenu, reporting clicks by tag.
	addMenuItem(item MenuItem, onClick func(tag string))
	onDoubleClick(fn func())
	quit()
}

// Controller owns the tray icon and at most one main window.
type Controller struct {
	opts      Options
	settings  *Settings
	iconPath  string
	iconText  string
	icon      []byte
	newWindow WindowFactory
	tray      trayBackend

	mu          sync.Mutex
	window      Window
	creating    bool
	items       []MenuItem
	ready       bool
	running     bool
	trayStopped bool
	exited      bool

	exitOnce sync.Once
	done     chan struct{}
}

// New loads the settings and prepares the tray icon. Unless opts.Headless is
// set, both an icon path and an icon text must be available, either from opts
// or from the settings.
func New(opts Options, newWindow WindowFactory) (*Controller, error) {
	var backend trayBackend
	if !opts.Headless {
		backend = newTrayBackend()
	}
	return newController(opts, newWindow, backend)
}

func newController(opts Options, newWindow WindowFactory, backend trayBackend) (*Controller, error) {
	files := opts.SettingsFiles
	if len(files) == 0 {
		files = DefaultSettingsFiles
	}
	settings, err := LoadSettings(opts.EnvPrefix, files...)
	if err != nil {
		return nil, err
	}

	c := &Controller{
		opts:      opts,
		settings:  settings,
		iconPath:  firstNonEmpty(opts.IconPath, settings.GetString(KeyNotifyIconPath)),
		iconText:  firstNonEmpty(opts.IconText, settings.GetString(KeyNotifyIconText)),
		newWindow: newWindow,
		done:      make(chan struct{}),
	}

	if !opts.Headless {
		if err := c.initTray(backend); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Controller) initTray(backend trayBackend) error {
	if c.iconPath == "" {
		return ErrNoIconPath
	}
	if c.iconText == "" {
		return ErrNoIconText
	}

	icon, err := os.ReadFile(c.iconPath)
	if err != nil {
		return fmt.Errorf("load tray icon %s: %w", c.iconPath, err)
	}
	c.icon = icon
	c.tray = backend

	c.AddMenuItem(MenuItem{Title: "Open...", Tag: TagOpen})
	c.AddMenuItem(MenuItem{Title: "Exit"})
	return nil
}

// AddMenuItem appends an entry to the tray menu. Items added before the tray
// is ready are built once it is.
func (c *Controller) AddMenuItem(item MenuItem) {
	item = normalizeMenuItem(item)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = append(c.items, item)
	if c.ready && !c.exited {
		c.buildMenuItem(item)
	}
}

func normalizeMenuItem(item MenuItem) MenuItem {
	if item.Tag == "" {
		item.Tag = item.Title
	}
	item.Tag = strings.ToUpper(item.Tag)

	if len(item.Items) > 0 {
		subs := make([]MenuItem, len(item.Items))
		for i, sub := range item.Items {
			subs[i] = normalizeMenuItem(sub)
		}
		item.Items = subs
	}
	return item
}

func findMenuItem(items []MenuItem, tag string) (MenuItem, bool) {
	for _, item := range items {
		if item.Tag == tag {
			return item, true
		}
		if sub, ok := findMenuItem(item.Items, tag); ok {
			return sub, true
		}
	}
	return MenuItem{}, false
}

// MenuItems returns the registered menu entries in order.
func (c *Controller) MenuItems() []MenuItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]MenuItem(nil), c.items...)
}

// HandleMenuItem dispatches a click on the item tagged tag.
func (c *Controller) HandleMenuItem(tag string) {
	tag = strings.ToUpper(strings.TrimSpace(tag))
	if tag == "" {
		return
	}

	switch tag {
	case TagExit:
		c.Exit()
		return
	case TagOpen:
		c.openLogged()
		return
	}

	c.mu.Lock()
	item, _ := findMenuItem(c.items, tag)
	c.mu.Unlock()
	handler := item.Handler

	switch {
	case handler != nil:
		handler()
	case c.opts.OnMenuItem != nil:
		c.opts.OnMenuItem(tag)
	default:
		log.Debug().Str("tag", tag).Msg("ignoring menu item")
	}
}

// Open shows the main window, creating it first if none is open.
func (c *Controller) Open() error {
	c.mu.Lock()
	if c.exited {
		c.mu.Unlock()
		return ErrExited
	}

	if w := c.window; w != nil {
		c.mu.Unlock()
		w.Show()
		return nil
	}
	if c.creating {
		// the window being created is shown by the call creating it
		c.mu.Unlock()
		return nil
	}
	if c.newWindow == nil {
		c.mu.Unlock()
		return ErrNoWindowFactory
	}
	c.creating = true
	c.mu.Unlock()

	w, err := c.newWindow()

	c.mu.Lock()
	c.creating = false
	if err != nil {
		c.mu.Unlock()
		return fmt.Errorf("create main window: %w", err)
	}
	if c.exited {
		c.mu.Unlock()
		w.Close()
		return ErrExited
	}
	c.window = w
	c.mu.Unlock()

	log.Debug().Msg("main window created")
	w.OnClosed(func() { c.windowClosed(w) })
	w.Show()
	return nil
}

func (c *Controller) openLogged() {
	if err := c.Open(); err != nil {
		log.Error().Err(err).Msg("failed to open main window")
	}
}

func (c *Controller) windowClosed(w Window) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.window == w {
		c.window = nil
		log.Debug().Msg("main window closed")
	}
}

// WindowOpen reports whether a main window is currently tracked.
func (c *Controller) WindowOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.window != nil
}

// Run shows the tray icon and blocks until Exit is called or ctx is done.
// The tray runs on the calling goroutine, which is locked to its OS thread.
func (c *Controller) Run(ctx context.Context) error {
	c.mu.Lock()
	if c.exited {
		c.mu.Unlock()
		return nil
	}
	if c.running {
		c.mu.Unlock()
		return ErrRunning
	}
	c.running = true
	c.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
			c.Exit()
		case <-c.done:
		}
	}()

	if c.tray != nil {
		runtime.LockOSThread()
		c.tray.run(c.onTrayReady, c.onTrayExit)
		runtime.UnlockOSThread()

		c.mu.Lock()
		c.trayStopped = true
		c.mu.Unlock()
		c.Exit()
	}

	<-c.done
	return ctx.Err()
}

// onTrayReady runs once the backend has registered its icon window, the
// earliest point at which a quit is delivered rather than dropped.
func (c *Controller) onTrayReady() {
	c.mu.Lock()
	if c.exited {
		c.mu.Unlock()
		log.Debug().Msg("exited before the tray was ready")
		c.tray.quit()
		return
	}

	c.tray.setIcon(c.icon)
	c.tray.setTooltip(c.iconText)
	if c.opts.Title != "" {
		c.tray.setTitle(c.opts.Title)
	}
	c.tray.onDoubleClick(c.openLogged)

	for _, item := range c.items {
		c.buildMenuItem(item)
	}
	c.ready = true
	c.mu.Unlock()

	log.Info().Str("path", c.iconPath).Str("text", c.iconText).Msg("tray icon ready")

	if c.opts.OnReady != nil {
		c.opts.OnReady()
	}
}

func (c *Controller) onTrayExit() {
	log.Debug().Msg("tray icon removed")
}

// buildMenuItem must be called with c.mu held.
func (c *Controller) buildMenuItem(item MenuItem) {
	c.tray.addMenuItem(item, c.HandleMenuItem)
}

// Exit closes the main window, hides the tray icon and releases Run.
// It is safe to call more than once.
func (c *Controller) Exit() {
	c.exitOnce.Do(func() {
		c.mu.Lock()
		c.exited = true
		w := c.window
		c.window = nil
		// before ready the backend would drop the quit; onTrayReady sends it
		stopTray := c.tray != nil && c.ready && !c.trayStopped
		c.mu.Unlock()

		if w != nil {
			w.Close()
		}
		if stopTray {
			c.tray.quit()
		}
		if c.opts.OnExit != nil {
			c.opts.OnExit()
		}
		close(c.done)
		log.Info().Msg("tray session exited")
	})
}

// Done is closed once Exit has completed.
func (c *Controller) Done() <-chan struct{} {
	return c.done
}

func (c *Controller) Settings() *Settings {
	return c.settings
}

func (c *Controller) IconPath() string {
	return c.iconPath
}

func (c *Controller) IconText() string {
	return c.iconText
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
