//go:build windows

package main

import (
	"github.com/JasnRathore/traysession"
)

func mainWindow(s *traysession.Settings, url string) traysession.WindowFactory {
	title := s.GetString("MainWindowTitle")
	if title == "" {
		title = "Tray App"
	}
	width, height := s.GetInt("MainWindowWidth"), s.GetInt("MainWindowHeight")
	if width <= 0 {
		width = 1024
	}
	if height <= 0 {
		height = 768
	}

	return traysession.NewWebViewWindow(traysession.WebViewOptions{
		Title:  title,
		Width:  uint(width),
		Height: uint(height),
		Center: true,
		URL:    url,
	})
}
