//go:build !windows

package traysession

import (
	"github.com/getlantern/systray"
	"github.com/rs/zerolog/log"
)

// lanternTray has no double-click event; the menu is the only way in.
type lanternTray struct{}

func newTrayBackend() trayBackend {
	return lanternTray{}
}

func (lanternTray) run(onReady, onExit func()) {
	systray.Run(onReady, onExit)
}

func (lanternTray) setIcon(icon []byte) {
	systray.SetIcon(icon)
}

func (lanternTray) setTitle(title string) {
	systray.SetTitle(title)
}

func (lanternTray) setTooltip(text string) {
	systray.SetTooltip(text)
}

func (lanternTray) addMenuItem(item MenuItem, onClick func(tag string)) {
	m := systray.AddMenuItem(item.Title, item.Tooltip)
	setupLanternItem(m, item, onClick)
}

func setupLanternItem(m *systray.MenuItem, item MenuItem, onClick func(tag string)) {
	if item.Disabled {
		m.Disable()
	}
	if item.Checked {
		m.Check()
	}

	go func(tag string) {
		for range m.ClickedCh {
			onClick(tag)
		}
	}(item.Tag)

	for _, sub := range item.Items {
		setupLanternItem(m.AddSubMenuItem(sub.Title, sub.Tooltip), sub, onClick)
	}
}

func (lanternTray) onDoubleClick(fn func()) {
	log.Debug().Msg("tray double-click is not supported on this platform")
}

func (lanternTray) quit() {
	systray.Quit()
}
