package scheduler

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dbrheo/agentcore/internal/toolcall"
)

// Metrics holds the scheduler's optional Prometheus instrumentation. A
// nil *Metrics is safe everywhere it's used: every method degrades to a
// no-op, so Scheduler.New(reg, onDone, logger, nil) behaves exactly as it
// did before metrics existed.
type Metrics struct {
	callsTotal *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewMetrics builds the scheduler's counter/histogram pair and registers
// them on reg; if reg already holds them (a second runtime in the same
// process), the registered collectors are reused. Pass prometheus.DefaultRegisterer to expose them on the
// default /metrics handler, or a fresh prometheus.NewRegistry() in tests
// to avoid collisions across parallel test binaries.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		callsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "agentcore",
			Subsystem: "scheduler",
			Name:      "tool_calls_total",
			Help:      "Tool calls that reached a terminal state, labeled by tool name and outcome.",
		}, []string{"tool", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "agentcore",
			Subsystem: "scheduler",
			Name:      "tool_call_duration_seconds",
			Help:      "Tool call execution duration in seconds, from scheduled to terminal.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"tool"}),
	}
	if err := reg.Register(m.callsTotal); err != nil {
		are, ok := err.(prometheus.AlreadyRegisteredError)
		if !ok {
			panic(err)
		}
		m.callsTotal = are.ExistingCollector.(*prometheus.CounterVec)
	}
	if err := reg.Register(m.duration); err != nil {
		are, ok := err.(prometheus.AlreadyRegisteredError)
		if !ok {
			panic(err)
		}
		m.duration = are.ExistingCollector.(*prometheus.HistogramVec)
	}
	return m
}

func (m *Metrics) observe(toolName string, status toolcall.Status, d time.Duration) {
	if m == nil {
		return
	}
	m.callsTotal.WithLabelValues(toolName, status.String()).Inc()
	m.duration.WithLabelValues(toolName).Observe(d.Seconds())
}
