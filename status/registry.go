// Package status keeps lock-free runtime counters for a session, summarized
// in the log on exit.
package status

import "sync/atomic"

// Well-known metric keys
const (
	Frames            = "frames"
	ExpressionChanges = "expression_changes"
	Sleeps            = "sleeps"
	Wakes             = "wakes"
	Triggers          = "triggers"
	FrameTimeMs       = "frame_time_ms" // last frame, smoothed
)

// Registry holds the session's counters and gauges
// Hot paths cache the pointer from Get and write atomics directly
type Registry struct {
	Ints   *MetricMap[atomic.Int64]
	Floats *MetricMap[AtomicFloat]
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		Ints:   NewMetricMap[atomic.Int64](),
		Floats: NewMetricMap[AtomicFloat](),
	}
}

// Snapshot copies every metric into a map suitable for structured logging
func (r *Registry) Snapshot() map[string]any {
	out := make(map[string]any, r.Ints.Count()+r.Floats.Count())
	r.Ints.Range(func(key string, v *atomic.Int64) {
		out[key] = v.Load()
	})
	r.Floats.Range(func(key string, v *AtomicFloat) {
		out[key] = v.Get()
	})
	return out
}
