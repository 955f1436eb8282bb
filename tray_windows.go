//go:build windows

package traysession

import (
	"github.com/energye/systray"
	"github.com/rs/zerolog/log"
)

type winTray struct{}

func newTrayBackend() trayBackend {
	return winTray{}
}

func (winTray) run(onReady, onExit func()) {
	systray.Run(func() {
		systray.SetOnRClick(showTrayMenu)
		onReady()
	}, onExit)
}

func showTrayMenu(menu systray.IMenu) {
	if err := menu.ShowMenu(); err != nil {
		log.Warn().Err(err).Msg("failed to show tray menu")
	}
}

func (winTray) setIcon(icon []byte) {
	systray.SetIcon(icon)
}

func (winTray) setTitle(title string) {
	systray.SetTitle(title)
}

func (winTray) setTooltip(text string) {
	systray.SetTooltip(text)
}

func (winTray) addMenuItem(item MenuItem, onClick func(tag string)) {
	m := systray.AddMenuItem(item.Title, item.Tooltip)
	setupWinItem(m, item, onClick)
}

func setupWinItem(m *systray.MenuItem, item MenuItem, onClick func(tag string)) {
	if item.Disabled {
		m.Disable()
	}
	if item.Checked {
		m.Check()
	}

	tag := item.Tag
	m.Click(func() { onClick(tag) })

	for _, sub := range item.Items {
		setupWinItem(m.AddSubMenuItem(sub.Title, sub.Tooltip), sub, onClick)
	}
}

func (winTray) onDoubleClick(fn func()) {
	systray.SetOnDClick(func(menu systray.IMenu) {
		fn()
	})
}

func (winTray) quit() {
	systray.Quit()
}
