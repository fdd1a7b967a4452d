package event

import (
	"sync/atomic"
	"time"
)

// Document is a Target that also carries page visibility. Changing the
// visibility dispatches a VisibilityChange event after the new value is
// observable through Hidden.
type Document struct {
	*Target
	hidden atomic.Bool
}

// NewDocument returns a visible Document.
func NewDocument() *Document {
	return &Document{Target: NewTarget()}
}

// Hidden reports whether the page is currently hidden.
func (d *Document) Hidden() bool { return d.hidden.Load() }

// SetHidden updates visibility and dispatches VisibilityChange if it changed.
// It reports whether a transition happened.
func (d *Document) SetHidden(hidden bool) bool {
	if d.hidden.Swap(hidden) == hidden {
		return false
	}
	d.Dispatch(Event{Type: VisibilityChange, At: time.Now()})
	return true
}
