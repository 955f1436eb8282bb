package traysession

import "sync"

// fakeTray mimics the real backends: quit works once, and a quit sent before
// the icon window is registered is dropped.
type fakeTray struct {
	mu          sync.Mutex
	icon        []byte
	title       string
	tooltip     string
	items       []MenuItem
	clicks      map[string]func()
	disabled    map[string]bool
	checked     map[string]bool
	doubleClick func()
	quitCalls   int
	quitUsed    bool
	registered  bool
	hidden      bool

	// beforeRegister runs inside run before the icon window exists.
	beforeRegister func()
	// onQuit runs at the start of every quit call.
	onQuit func()

	ready chan struct{}
	stop  chan struct{}
	once  sync.Once
}

func newFakeTray() *fakeTray {
	return &fakeTray{
		clicks:   make(map[string]func()),
		disabled: make(map[string]bool),
		checked:  make(map[string]bool),
		ready:    make(chan struct{}),
		stop:     make(chan struct{}),
	}
}

func (f *fakeTray) run(onReady, onExit func()) {
	if f.beforeRegister != nil {
		f.beforeRegister()
	}
	f.mu.Lock()
	f.registered = true
	f.mu.Unlock()

	onReady()
	close(f.ready)
	<-f.stop
	if onExit != nil {
		onExit()
	}
}

func (f *fakeTray) setIcon(icon []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.icon = icon
}

func (f *fakeTray) setTitle(title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.title = title
}

func (f *fakeTray) setTooltip(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tooltip = text
}

func (f *fakeTray) addMenuItem(item MenuItem, onClick func(tag string)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append(f.items, item)
	f.register(item, onClick)
}

func (f *fakeTray) register(item MenuItem, onClick func(tag string)) {
	tag := item.Tag
	f.clicks[item.Title] = func() { onClick(tag) }
	f.disabled[item.Title] = item.Disabled
	f.checked[item.Title] = item.Checked
	for _, sub := range item.Items {
		f.register(sub, onClick)
	}
}

func (f *fakeTray) onDoubleClick(fn func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.doubleClick = fn
}

func (f *fakeTray) quit() {
	if f.onQuit != nil {
		f.onQuit()
	}

	f.mu.Lock()
	f.quitCalls++
	deliver := !f.quitUsed && f.registered
	f.quitUsed = true
	if deliver {
		f.hidden = true
	}
	f.mu.Unlock()

	if deliver {
		f.once.Do(func() { close(f.stop) })
	}
}

func (f *fakeTray) click(title string) {
	f.mu.Lock()
	fn := f.clicks[title]
	f.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (f *fakeTray) titles() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var titles []string
	for _, item := range f.items {
		titles = append(titles, item.Title)
	}
	return titles
}

func (f *fakeTray) isHidden() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hidden
}

type fakeWindow struct {
	mu     sync.Mutex
	shown  int
	closed closeNotifier
}

func (w *fakeWindow) Show() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.shown++
}

func (w *fakeWindow) Close() {
	w.closed.fire()
}

func (w *fakeWindow) OnClosed(fn func()) {
	w.closed.add(fn)
}

func (w *fakeWindow) shows() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.shown
}

func (w *fakeWindow) isClosed() bool {
	return w.closed.isClosed()
}

// windowCounter hands out fakeWindows and remembers each one.
type windowCounter struct {
	mu      sync.Mutex
	windows []*fakeWindow
	err     error
}

func (c *windowCounter) factory() (Window, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, c.err
	}
	w := &fakeWindow{}
	c.windows = append(c.windows, w)
	return w, nil
}

func (c *windowCounter) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.windows)
}

func (c *windowCounter) last() *fakeWindow {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.windows[len(c.windows)-1]
}
