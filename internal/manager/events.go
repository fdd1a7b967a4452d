package manager

import (
	"github.com/rs/zerolog"

	"reactd/internal/hooks"
)

// logPublisher writes idle detector events to a zerolog logger.
type logPublisher struct{ log zerolog.Logger }

func (p logPublisher) Publish(e hooks.Event) {
	ev := p.log.Info().Str("event", e.Name)
	for k, v := range e.Fields {
		ev = ev.Interface(k, v)
	}
	ev.Msg("idle state")
}

// fanout delivers each event to every publisher in order.
type fanout []hooks.EventPublisher

func (f fanout) Publish(e hooks.Event) {
	for _, p := range f {
		p.Publish(e)
	}
}
