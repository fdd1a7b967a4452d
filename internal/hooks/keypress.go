package hooks

import "reactd/internal/event"

// KeyPress calls the latest callback when a key event for the latest key is
// dispatched on its target. Render swaps key and callback without
// re-registering the listener.
type KeyPress struct {
	target Listenable
	name   string
	id     event.ListenerID
	key    string
	fn     func(event.Event)
}

// NewKeyPress listens for name (event.KeyDown when empty) on target.
func NewKeyPress(target Listenable, name, key string, fn func(event.Event)) (*KeyPress, error) {
	if name == "" {
		name = event.KeyDown
	}
	if name != event.KeyDown && name != event.KeyUp {
		return nil, invalidEventError{name: name}
	}
	k := &KeyPress{target: target, name: name, key: key, fn: fn}
	k.id = target.AddListener(name, k.handle)
	return k, nil
}

// Render updates the key and callback.
func (k *KeyPress) Render(key string, fn func(event.Event)) {
	k.key = key
	k.fn = fn
}

// Close removes the listener. Safe to call twice.
func (k *KeyPress) Close() {
	if k.id == 0 {
		return
	}
	k.target.RemoveListener(k.name, k.id)
	k.id = 0
}

func (k *KeyPress) handle(e event.Event) {
	if e.Key != k.key || k.fn == nil {
		return
	}
	k.fn(e)
}
