package traysession

import (
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/skratchdot/open-golang/open"
)

var ErrNoURL = errors.New("no main window url")

// BrowserWindow stands in for a native window by opening a URL in the
// default browser. It only reports closed when Close is called.
type BrowserWindow struct {
	url    string
	open   func(string) error
	closed closeNotifier
}

func NewBrowserWindow(url string) WindowFactory {
	return func() (Window, error) {
		if url == "" {
			return nil, ErrNoURL
		}
		return &BrowserWindow{url: url, open: open.Run}, nil
	}
}

func (b *BrowserWindow) Show() {
	if b.closed.isClosed() {
		return
	}
	if err := b.open(b.url); err != nil {
		log.Error().Err(err).Str("url", b.url).Msg("failed to open browser")
	}
}

func (b *BrowserWindow) Close() {
	b.closed.fire()
}

func (b *BrowserWindow) OnClosed(fn func()) {
	b.closed.add(fn)
}
