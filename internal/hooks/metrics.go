package hooks

import "github.com/prometheus/client_golang/prometheus"

var (
	timerFiresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "reactd",
			Subsystem: "timer",
			Name:      "fires_total",
			Help:      "Total number of DelayTimer fires",
		},
		[]string{"mode"},
	)

	timersArmed = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "reactd",
			Subsystem: "timer",
			Name:      "armed",
			Help:      "DelayTimers currently holding a pending handle",
		},
	)

	idleTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "reactd",
			Subsystem: "idle",
			Name:      "transitions_total",
			Help:      "Total idle detector state transitions",
		},
		[]string{"to"},
	)

	activityPulsesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "reactd",
			Subsystem: "activity",
			Name:      "pulses_total",
			Help:      "Total activity pulses by source event",
		},
		[]string{"source"},
	)
)

func init() {
	prometheus.MustRegister(timerFiresTotal, timersArmed, idleTransitionsTotal, activityPulsesTotal)
}
