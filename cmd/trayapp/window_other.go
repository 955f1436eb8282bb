//go:build !windows

package main

import (
	"github.com/JasnRathore/traysession"
)

func mainWindow(s *traysession.Settings, url string) traysession.WindowFactory {
	return traysession.NewBrowserWindow(url)
}
