package hooks

// Previous remembers the value passed to the previous Render.
type Previous[T any] struct {
	last T
	seen bool
}

// Render records v and returns the value from the previous call. ok is false
// on the first call.
func (p *Previous[T]) Render(v T) (prev T, ok bool) {
	prev, ok = p.last, p.seen
	p.last, p.seen = v, true
	return prev, ok
}
