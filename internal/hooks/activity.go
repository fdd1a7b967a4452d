package hooks

import "reactd/internal/event"

// Listenable is anything listeners can be registered on.
type Listenable interface {
	AddListener(name string, fn event.Listener) event.ListenerID
	RemoveListener(name string, id event.ListenerID)
}

// VisibilitySource is a Listenable that knows whether the page is hidden and
// dispatches event.VisibilityChange when that changes.
type VisibilitySource interface {
	Listenable
	Hidden() bool
}

type subscription struct {
	target Listenable
	name   string
	id     event.ListenerID
}

// ActivityMultiplexer folds a set of named event sources plus visibility
// transitions into one activity pulse. Transitions to hidden never pulse.
type ActivityMultiplexer struct {
	subs []subscription
}

// Subscribe attaches one listener per distinct source name on target and one
// visibility listener on doc (if non-nil). Any previous subscription is
// released first.
func (m *ActivityMultiplexer) Subscribe(sources []string, target Listenable, doc VisibilitySource, onPulse func()) {
	m.Unsubscribe()

	seen := make(map[string]struct{}, len(sources))
	for _, name := range sources {
		if _, dup := seen[name]; dup || target == nil {
			continue
		}
		seen[name] = struct{}{}
		source := name
		id := target.AddListener(source, func(event.Event) {
			activityPulsesTotal.WithLabelValues(source).Inc()
			onPulse()
		})
		m.subs = append(m.subs, subscription{target: target, name: source, id: id})
	}

	if doc != nil {
		id := doc.AddListener(event.VisibilityChange, func(event.Event) {
			if doc.Hidden() {
				return
			}
			activityPulsesTotal.WithLabelValues(event.VisibilityChange).Inc()
			onPulse()
		})
		m.subs = append(m.subs, subscription{target: doc, name: event.VisibilityChange, id: id})
	}
}

// Unsubscribe removes every listener added by Subscribe. Calling it again,
// or before Subscribe, does nothing.
func (m *ActivityMultiplexer) Unsubscribe() {
	for _, s := range m.subs {
		s.target.RemoveListener(s.name, s.id)
	}
	m.subs = nil
}

// Subscribed reports whether any listener is live.
func (m *ActivityMultiplexer) Subscribed() bool { return len(m.subs) > 0 }
