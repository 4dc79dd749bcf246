package nav

import (
	"sync"
	"time"
)

// The host application routes client-side: the document never reloads, so the
// only way to notice a route change is to wrap the two history-mutation entry
// points and listen for back/forward signals.

const defaultSettleDelay = 50 * time.Millisecond

// Event is a settled navigation: the host finished moving to URL.
type Event struct {
	URL string
}

// History carries the host's navigation surface. Push and Replace are the two
// entry points the host invokes for programmatic route changes; Current reads
// the live URL. Install wraps Push and Replace in place.
type History struct {
	Push    func(url string)
	Replace func(url string)
	Current func() string
}

// MemoryLocation is an in-process location bar for hosts that do not expose
// their own. Push and Replace record the URL; Current reads it back.
type MemoryLocation struct {
	mu  sync.Mutex
	url string
}

// NewMemoryLocation starts a location bar at the given URL.
func NewMemoryLocation(url string) *MemoryLocation {
	return &MemoryLocation{url: url}
}

// Current returns the live URL.
func (l *MemoryLocation) Current() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.url
}

// Restore moves the location without going through Push or Replace, the way
// a back or forward traversal does. Pair it with Watcher.HandlePop.
func (l *MemoryLocation) Restore(url string) {
	l.set(url)
}

func (l *MemoryLocation) set(url string) {
	l.mu.Lock()
	l.url = url
	l.mu.Unlock()
}

// History builds the navigation surface backed by this location bar.
func (l *MemoryLocation) History() *History {
	return &History{Push: l.set, Replace: l.set, Current: l.Current}
}

// Watcher dedupes raw navigation signals into at most one Event per distinct
// URL. It owns the last-handled URL; nothing else reads it.
type Watcher struct {
	mu          sync.Mutex
	installed   bool
	lastHandled string
	settle      time.Duration
	history     *History
	notify      func(Event)
}

// NewWatcher builds a watcher that delivers settled events to notify.
func NewWatcher(notify func(Event)) *Watcher {
	return &Watcher{
		settle: defaultSettleDelay,
		notify: notify,
	}
}

// SetSettleDelay overrides the settle delay. Zero is allowed in tests.
func (w *Watcher) SetSettleDelay(d time.Duration) {
	w.mu.Lock()
	w.settle = d
	w.mu.Unlock()
}

// Install wraps the history entry points exactly once. Repeat calls are
// no-ops, so double initialization cannot stack wrappers. The wrappers always
// forward to the original functions first; the host must behave as if the
// watcher were absent.
func (w *Watcher) Install(h *History) {
	w.mu.Lock()
	if w.installed {
		w.mu.Unlock()
		return
	}
	w.installed = true
	w.history = h
	w.lastHandled = ""
	if h.Current != nil {
		w.lastHandled = h.Current()
	}

	origPush := h.Push
	h.Push = func(url string) {
		if origPush != nil {
			origPush(url)
		}
		w.scheduleCheck()
	}
	origReplace := h.Replace
	h.Replace = func(url string) {
		if origReplace != nil {
			origReplace(url)
		}
		w.scheduleCheck()
	}
	w.mu.Unlock()
}

// HandlePop is the back/forward signal. It is checked immediately, without
// the settle delay.
func (w *Watcher) HandlePop() {
	w.check()
}

func (w *Watcher) scheduleCheck() {
	w.mu.Lock()
	settle := w.settle
	w.mu.Unlock()
	if settle <= 0 {
		w.check()
		return
	}
	time.AfterFunc(settle, w.check)
}

// check compares the live URL to the last handled one and emits exactly one
// event on change.
func (w *Watcher) check() {
	w.mu.Lock()
	if w.history == nil || w.history.Current == nil {
		w.mu.Unlock()
		return
	}
	current := w.history.Current()
	if current == w.lastHandled {
		w.mu.Unlock()
		return
	}
	w.lastHandled = current
	notify := w.notify
	w.mu.Unlock()

	if notify != nil {
		emit(notify, Event{URL: current})
	}
}

// emit shields the host's navigation path from a misbehaving handler.
func emit(notify func(Event), ev Event) {
	defer func() {
		_ = recover()
	}()
	notify(ev)
}
