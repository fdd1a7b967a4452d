// Package event provides the listener registries hooks subscribe to: a
// named-event Target (the "window") and a Document carrying page visibility.
package event

import (
	"sort"
	"sync"
	"time"
)

// Well-known event names.
const (
	VisibilityChange = "visibilitychange"
	Resize           = "resize"
	KeyDown          = "keydown"
	KeyUp            = "keyup"
)

// Event is a dispatched occurrence. Only the fields relevant to Type are set.
type Event struct {
	Type   string
	Key    string
	Width  int
	Height int
	At     time.Time
}

// Listener receives dispatched events.
type Listener func(Event)

// ListenerID identifies one registration. Zero is never issued.
type ListenerID uint64

type registration struct {
	id ListenerID
	fn Listener
}

// Target is a registry of listeners keyed by event name. Dispatch calls
// listeners synchronously, in registration order, on the caller's goroutine.
type Target struct {
	mu        sync.RWMutex
	listeners map[string][]registration
	nextID    ListenerID
}

// NewTarget returns an empty Target.
func NewTarget() *Target {
	return &Target{listeners: make(map[string][]registration)}
}

// AddListener registers fn for events named name.
func (t *Target) AddListener(name string, fn Listener) ListenerID {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.nextID++
	t.listeners[name] = append(t.listeners[name], registration{id: t.nextID, fn: fn})
	return t.nextID
}

// RemoveListener unregisters id from name. Unknown ids are ignored.
func (t *Target) RemoveListener(name string, id ListenerID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	regs := t.listeners[name]
	for i, r := range regs {
		if r.id != id {
			continue
		}
		regs = append(regs[:i:i], regs[i+1:]...)
		if len(regs) == 0 {
			delete(t.listeners, name)
		} else {
			t.listeners[name] = regs
		}
		return
	}
}

// Dispatch delivers e to every listener registered for e.Type at the time of
// the call and returns how many were invoked.
func (t *Target) Dispatch(e Event) int {
	t.mu.RLock()
	regs := append([]registration(nil), t.listeners[e.Type]...)
	t.mu.RUnlock()
	for _, r := range regs {
		r.fn(e)
	}
	return len(regs)
}

// ListenerCount reports how many listeners are registered for name.
func (t *Target) ListenerCount(name string) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.listeners[name])
}

// Names lists event names with at least one listener, sorted.
func (t *Target) Names() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]string, 0, len(t.listeners))
	for name := range t.listeners {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
