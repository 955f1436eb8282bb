//go:build windows

package traysession

import (
	"errors"
	"runtime"
	"sync"

	"github.com/jchv/go-webview2"
	"github.com/rs/zerolog/log"
	"golang.org/x/sys/windows"

	"github.com/JasnRathore/traysession/utils"
)

var ErrWebViewUnavailable = errors.New("failed to load webview")

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procShowWindow          = user32.NewProc("ShowWindow")
	procSetForegroundWindow = user32.NewProc("SetForegroundWindow")
	procPostMessage         = user32.NewProc("PostMessageW")
)

const (
	swRestore = 9
	wmClose   = 0x0010
)

type WebViewOptions struct {
	Debug  bool
	Title  string
	Width  uint
	Height uint
	Center bool
	IconID uint

	// URL is navigated to unless HTML is set.
	URL  string
	HTML string

	// Bindings are exposed to the page under their function names.
	Bindings []interface{}
}

// WebViewWindow is a WebView2 top-level window. Each instance runs its own
// message loop on a dedicated OS thread.
type WebViewWindow struct {
	opts WebViewOptions

	mu     sync.Mutex
	view   webview2.WebView
	closed closeNotifier
}

// NewWebViewWindow returns a factory producing a fresh window per call.
func NewWebViewWindow(opts WebViewOptions) WindowFactory {
	return func() (Window, error) {
		w := &WebViewWindow{opts: opts}
		started := make(chan error, 1)
		go w.loop(started)
		if err := <-started; err != nil {
			return nil, err
		}
		return w, nil
	}
}

func (w *WebViewWindow) loop(started chan<- error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	view := webview2.NewWithOptions(webview2.WebViewOptions{
		Debug:     w.opts.Debug,
		AutoFocus: true,
		WindowOptions: webview2.WindowOptions{
			Title:  w.opts.Title,
			Width:  w.opts.Width,
			Height: w.opts.Height,
			Center: w.opts.Center,
			IconId: w.opts.IconID,
		},
	})
	if view == nil {
		started <- ErrWebViewUnavailable
		return
	}

	for _, fn := range w.opts.Bindings {
		name := utils.FuncName(fn)
		if err := view.Bind(name, fn); err != nil {
			log.Warn().Err(err).Str("name", name).Msg("failed to bind function")
		}
	}

	if w.opts.HTML != "" {
		view.SetHtml(w.opts.HTML)
	} else if w.opts.URL != "" {
		view.Navigate(w.opts.URL)
	}

	w.mu.Lock()
	w.view = view
	w.mu.Unlock()
	started <- nil

	view.Run()
	view.Destroy()

	w.mu.Lock()
	w.view = nil
	w.mu.Unlock()

	w.closed.fire()
}

// Show restores the window if minimized and brings it to the front.
func (w *WebViewWindow) Show() {
	w.mu.Lock()
	view := w.view
	w.mu.Unlock()
	if view == nil {
		return
	}

	view.Dispatch(func() {
		hwnd := uintptr(view.Window())
		procShowWindow.Call(hwnd, swRestore)
		procSetForegroundWindow.Call(hwnd)
	})
}

// Close asks the window to close; the message loop ends once it is destroyed.
func (w *WebViewWindow) Close() {
	w.mu.Lock()
	view := w.view
	w.mu.Unlock()
	if view == nil {
		return
	}
	procPostMessage.Call(uintptr(view.Window()), wmClose, 0, 0)
}

func (w *WebViewWindow) OnClosed(fn func()) {
	w.closed.add(fn)
}

// Eval runs js in the page.
func (w *WebViewWindow) Eval(js string) {
	w.mu.Lock()
	view := w.view
	w.mu.Unlock()
	if view == nil {
		return
	}
	view.Dispatch(func() {
		view.Eval(js)
	})
}
