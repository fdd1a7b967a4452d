package hooks

import (
	"errors"
	"sort"
	"sync/atomic"

	"reactd/internal/event"
)

// Size is a viewport size in pixels.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// WindowSize tracks the latest size carried by event.Resize events.
type WindowSize struct {
	target Listenable
	id     event.ListenerID
	size   atomic.Pointer[Size]
}

// NewWindowSize starts tracking resizes on target, beginning at initial.
func NewWindowSize(target Listenable, initial Size) *WindowSize {
	w := &WindowSize{target: target}
	w.size.Store(&initial)
	w.id = target.AddListener(event.Resize, func(e event.Event) {
		w.size.Store(&Size{Width: e.Width, Height: e.Height})
	})
	return w
}

// Size returns the latest size. Safe from any goroutine.
func (w *WindowSize) Size() Size { return *w.size.Load() }

// Close stops tracking. Safe to call twice.
func (w *WindowSize) Close() {
	if w.id == 0 {
		return
	}
	w.target.RemoveListener(event.Resize, w.id)
	w.id = 0
}

type breakpoint struct {
	name     string
	minWidth int
}

// Breakpoints maps a width to a named breakpoint.
type Breakpoints struct {
	sorted []breakpoint
}

// NewBreakpoints builds a matcher from name -> minimum width.
func NewBreakpoints(mins map[string]int) (*Breakpoints, error) {
	if len(mins) == 0 {
		return nil, errors.New("hooks: no breakpoints")
	}
	b := &Breakpoints{sorted: make([]breakpoint, 0, len(mins))}
	for name, minWidth := range mins {
		b.sorted = append(b.sorted, breakpoint{name: name, minWidth: minWidth})
	}
	sort.Slice(b.sorted, func(i, j int) bool {
		if b.sorted[i].minWidth != b.sorted[j].minWidth {
			return b.sorted[i].minWidth < b.sorted[j].minWidth
		}
		return b.sorted[i].name < b.sorted[j].name
	})
	return b, nil
}

// Match returns the largest breakpoint whose minimum width is reached, or
// the smallest breakpoint when none is.
func (b *Breakpoints) Match(width int) string {
	name := b.sorted[0].name
	for _, bp := range b.sorted {
		if width >= bp.minWidth {
			name = bp.name
		}
	}
	return name
}

// Current matches the latest width tracked by w.
func (b *Breakpoints) Current(w *WindowSize) string { return b.Match(w.Size().Width) }
