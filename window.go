package traysession

import "sync"

// Window is the main application window managed by a Controller.
type Window interface {
	Show()
	Close()
	// OnClosed registers fn to run once the window has gone away, whether
	// the user closed it or Close was called. fn runs at once if the window
	// is already gone.
	OnClosed(fn func())
}

// WindowFactory creates the main window. It is called lazily, once per
// window lifetime, without any Controller lock held.
type WindowFactory func() (Window, error)

// closeNotifier fires its callbacks exactly once. Callbacks registered after
// that run immediately.
type closeNotifier struct {
	mu     sync.Mutex
	closed bool
	fns    []func()
}

func (n *closeNotifier) add(fn func()) {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		fn()
		return
	}
	n.fns = append(n.fns, fn)
	n.mu.Unlock()
}

// fire reports false if the callbacks already ran.
func (n *closeNotifier) fire() bool {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return false
	}
	n.closed = true
	fns := n.fns
	n.fns = nil
	n.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
	return true
}

func (n *closeNotifier) isClosed() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.closed
}
