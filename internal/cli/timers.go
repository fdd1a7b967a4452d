package cli

import (
	"context"
	"fmt"
	"time"

	"reactd/internal/hooks"
	"reactd/internal/loop"
)

// driveLoop runs a fresh loop in the background until the returned stop func
// is called. setup runs on the loop before stop can be reached.
func driveLoop(ctx context.Context, setup func(l *loop.Loop) error) (stop func(), err error) {
	l := loop.New()
	ctx, cancel := context.WithCancel(ctx)
	exited := make(chan struct{})
	go func() {
		defer close(exited)
		_ = l.Run(ctx)
	}()
	stop = func() {
		cancel()
		<-exited
	}
	var setupErr error
	if err := l.Call(ctx, func() { setupErr = setup(l) }); err != nil {
		stop()
		return nil, err
	}
	if setupErr != nil {
		stop()
		return nil, setupErr
	}
	return stop, nil
}

func runTimeout(ctx context.Context, cfg *Config) error {
	fired := make(chan time.Time, 1)
	start := time.Now()
	stop, err := driveLoop(ctx, func(l *loop.Loop) error {
		_, err := hooks.StartTimeout(l, func() { fired <- l.Now() }, hooks.After(cfg.After))
		return err
	})
	if err != nil {
		return err
	}
	defer stop()

	select {
	case at := <-fired:
		fmt.Fprintf(cfg.Out, "timeout fired after %s\n", at.Sub(start).Round(time.Millisecond))
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func runInterval(ctx context.Context, cfg *Config) error {
	ticks := make(chan uint64, cfg.Count)
	done := make(chan struct{})
	stop, err := driveLoop(ctx, func(l *loop.Loop) error {
		var iv *hooks.Interval
		n := uint64(0)
		tick := func() {
			n++
			ticks <- n
			if n >= uint64(cfg.Count) {
				iv.Close()
				close(done)
			}
		}
		var err error
		iv, err = hooks.StartInterval(l, tick, hooks.After(cfg.Every))
		return err
	})
	if err != nil {
		return err
	}
	defer stop()

	for {
		select {
		case n := <-ticks:
			fmt.Fprintf(cfg.Out, "tick %d\n", n)
		case <-done:
			for {
				select {
				case n := <-ticks:
					fmt.Fprintf(cfg.Out, "tick %d\n", n)
				default:
					return nil
				}
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
