package hooks

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"reactd/internal/event"
	"reactd/internal/loop"
)

// harness drives a loop on the test goroutine with a fake clock.
type harness struct {
	t     *testing.T
	clk   *clockwork.FakeClock
	loop  *loop.Loop
	win   *event.Target
	doc   *event.Document
	calls map[string]int
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	clk := clockwork.NewFakeClock()
	return &harness{
		t:     t,
		clk:   clk,
		loop:  loop.New(loop.WithClock(clk)),
		win:   event.NewTarget(),
		doc:   event.NewDocument(),
		calls: make(map[string]int),
	}
}

// advance moves the clock forward and runs everything that became due.
func (h *harness) advance(d time.Duration) {
	h.t.Helper()
	h.clk.Advance(d)
	h.loop.RunDue()
}

// counter returns a callback that counts invocations under name.
func (h *harness) counter(name string) func() {
	return func() { h.calls[name]++ }
}

func (h *harness) dispatch(name string) {
	h.win.Dispatch(event.Event{Type: name, At: h.clk.Now()})
}
