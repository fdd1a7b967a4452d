package manager

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"reactd/internal/hooks"
	"reactd/internal/loop"
	"reactd/pkg/types"
)

// startManager runs a Manager on a fake clock until the test ends.
func startManager(t *testing.T, cfg ManagerConfig) (*Manager, *clockwork.FakeClock) {
	t.Helper()
	clk := clockwork.NewFakeClock()
	cfg.Clock = clk
	cfg.Logger = zerolog.Nop()
	m, err := NewWithConfig(cfg)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()
	waitFor(t, "loop running", m.Ready)
	t.Cleanup(func() {
		cancel()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Errorf("Run did not return")
		}
	})
	return m, clk
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(time.Millisecond)
	}
}

// advanceIdle waits until the loop is parked on its timer, then moves the
// clock forward.
func advanceIdle(t *testing.T, clk *clockwork.FakeClock, d time.Duration) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := clk.BlockUntilContext(ctx, 1); err != nil {
		t.Fatalf("loop never waited on its timer: %v", err)
	}
	clk.Advance(d)
}

func TestNewWithConfigDefaults(t *testing.T) {
	m, err := NewWithConfig(ManagerConfig{Clock: clockwork.NewFakeClock()})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if got := m.Detector().Threshold(); got != hooks.DefaultIdleThreshold {
		t.Fatalf("expected default threshold %v, got %v", hooks.DefaultIdleThreshold, got)
	}
	if m.Detector().Name() != defaultDetectorName {
		t.Fatalf("unexpected detector name %q", m.Detector().Name())
	}
	if m.Window().ListenerCount("mousemove") != 1 {
		t.Fatalf("expected default sources to be subscribed")
	}
	if m.Ready() {
		t.Fatalf("manager must not be ready before Run")
	}
	if st := m.Status(); st.State != string(StateStopped) {
		t.Fatalf("expected stopped state, got %q", st.State)
	}
}

func TestNewWithConfigRejectsNegativeThreshold(t *testing.T) {
	_, err := NewWithConfig(ManagerConfig{IdleThreshold: -time.Second})
	if !hooks.IsInvalidDelay(err) {
		t.Fatalf("expected invalid delay error, got %v", err)
	}
}

func TestOpsBeforeRunFailFast(t *testing.T) {
	m, err := New(time.Second)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	ctx := context.Background()
	if _, err := m.Dispatch(ctx, "mousemove", types.EventRequest{}); !IsNotRunning(err) {
		t.Fatalf("Dispatch: expected not running, got %v", err)
	}
	if _, err := m.SetHidden(ctx, true); !IsNotRunning(err) {
		t.Fatalf("SetHidden: expected not running, got %v", err)
	}
	if err := m.SetThreshold(ctx, time.Second); !IsNotRunning(err) {
		t.Fatalf("SetThreshold: expected not running, got %v", err)
	}
}

func TestDispatchDeliversToListeners(t *testing.T) {
	m, _ := startManager(t, ManagerConfig{Sources: []string{"mousemove", "keydown"}})
	ctx := context.Background()

	n, err := m.Dispatch(ctx, "mousemove", types.EventRequest{})
	if err != nil || n != 1 {
		t.Fatalf("dispatch mousemove: n=%d err=%v", n, err)
	}
	n, err = m.Dispatch(ctx, "scroll", types.EventRequest{})
	if err != nil || n != 0 {
		t.Fatalf("dispatch scroll: n=%d err=%v", n, err)
	}
	if got := m.Status().EventsTotal; got != 2 {
		t.Fatalf("expected 2 events, got %d", got)
	}

	for _, bad := range []string{"", "has space", "visibilitychange", strings.Repeat("x", maxEventNameLen+1)} {
		if _, err := m.Dispatch(ctx, bad, types.EventRequest{}); !IsInvalidEventName(err) {
			t.Fatalf("%q: expected invalid event name, got %v", bad, err)
		}
	}
}

func TestIdleTransitionsThroughLoop(t *testing.T) {
	pub := hooks.NewMemoryPublisher()
	m, clk := startManager(t, ManagerConfig{IdleThreshold: time.Minute, Publisher: pub})

	advanceIdle(t, clk, time.Minute)
	waitFor(t, "idle", func() bool { return m.Idle().Idle })

	if _, err := m.Dispatch(context.Background(), "keydown", types.EventRequest{Key: "a"}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if m.Idle().Idle {
		t.Fatalf("expected active after keydown")
	}

	evs := pub.Events()
	if len(evs) != 2 || evs[0].Name != "idle" || evs[1].Name != "active" {
		t.Fatalf("unexpected events: %+v", evs)
	}
}

func TestSetHiddenPulsesOnlyWhenVisible(t *testing.T) {
	m, clk := startManager(t, ManagerConfig{IdleThreshold: time.Second})
	ctx := context.Background()

	advanceIdle(t, clk, time.Second)
	waitFor(t, "idle", func() bool { return m.Idle().Idle })

	changed, err := m.SetHidden(ctx, true)
	if err != nil || !changed {
		t.Fatalf("hide: changed=%v err=%v", changed, err)
	}
	if !m.Idle().Idle || !m.Status().Hidden {
		t.Fatalf("hiding must not wake the detector")
	}
	if changed, _ := m.SetHidden(ctx, true); changed {
		t.Fatalf("repeated hide reported a change")
	}
	if _, err := m.SetHidden(ctx, false); err != nil {
		t.Fatalf("show: %v", err)
	}
	if m.Idle().Idle {
		t.Fatalf("becoming visible must count as activity")
	}
}

func TestSetThreshold(t *testing.T) {
	m, _ := startManager(t, ManagerConfig{IdleThreshold: time.Second})
	ctx := context.Background()

	if err := m.SetThreshold(ctx, 5*time.Second); err != nil {
		t.Fatalf("set threshold: %v", err)
	}
	if got := m.Idle().ThresholdMS; got != 5000 {
		t.Fatalf("expected 5000ms, got %d", got)
	}
	if err := m.SetThreshold(ctx, -time.Second); !hooks.IsInvalidDelay(err) {
		t.Fatalf("expected invalid delay, got %v", err)
	}
}

func TestStatusReportsLoopAndListeners(t *testing.T) {
	m, _ := startManager(t, ManagerConfig{Sources: []string{"wheel"}})
	st := m.Status()
	if st.State != string(StateRunning) {
		t.Fatalf("expected running, got %q", st.State)
	}
	if st.Listeners["wheel"] != 1 {
		t.Fatalf("unexpected listeners: %v", st.Listeners)
	}
	if st.Loop.PendingTimers != 1 {
		t.Fatalf("expected the idle timer pending, got %+v", st.Loop)
	}
	if st.Idle.Detector != defaultDetectorName {
		t.Fatalf("unexpected idle view: %+v", st.Idle)
	}
}

func TestCallbackPanicIsRecorded(t *testing.T) {
	m, _ := startManager(t, ManagerConfig{})
	if err := m.exec(context.Background(), func() { panic("kaboom") }); err != nil {
		t.Fatalf("exec: %v", err)
	}
	waitFor(t, "panic recorded", func() bool { return strings.Contains(m.Status().LastError, "kaboom") })

	// the loop keeps serving after the panic
	if _, err := m.Dispatch(context.Background(), "wheel", types.EventRequest{}); err != nil {
		t.Fatalf("dispatch after panic: %v", err)
	}
}

func TestRunTwice(t *testing.T) {
	m, _ := startManager(t, ManagerConfig{})
	if err := m.Run(context.Background()); !errors.Is(err, loop.ErrRunning) {
		t.Fatalf("expected ErrRunning, got %v", err)
	}
}

func TestStatusTracksViewport(t *testing.T) {
	m, _ := startManager(t, ManagerConfig{})
	if vp := m.Status().Viewport; vp.Width != 0 || vp.Breakpoint != "xs" {
		t.Fatalf("unexpected initial viewport: %+v", vp)
	}
	if _, err := m.Dispatch(context.Background(), "resize", types.EventRequest{Width: 800, Height: 600}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	vp := m.Status().Viewport
	if vp.Width != 800 || vp.Height != 600 || vp.Breakpoint != "md" {
		t.Fatalf("unexpected viewport: %+v", vp)
	}
}

func TestCustomBreakpoints(t *testing.T) {
	m, _ := startManager(t, ManagerConfig{Breakpoints: map[string]int{"narrow": 0, "wide": 1000}})
	if _, err := m.Dispatch(context.Background(), "resize", types.EventRequest{Width: 1200}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if bp := m.Status().Viewport.Breakpoint; bp != "wide" {
		t.Fatalf("expected wide, got %q", bp)
	}
}
