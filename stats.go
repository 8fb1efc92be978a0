package futures

import "sync/atomic"

// MetricsPolicy defines hooks used by the pump-driven executors to report
// queueing and execution activity.
//
// Implementations must be safe for concurrent use. All methods are expected
// to be lightweight and non-blocking.
type MetricsPolicy interface {
	// IncQueued increments the queued work-item counter.
	IncQueued()

	// IncExecuted increments the executed work-item counter.
	IncExecuted()

	// BatchDecQueued decrements the queued counter by n, typically when a
	// pump drains a batch of items.
	BatchDecQueued(n int64)
}

// AtomicMetrics is a lock-free MetricsPolicy backed by atomics.
//
// Writes are optimized for hot paths. Reads are intended for cold-path
// observation.
type AtomicMetrics struct {
	// executed is the total number of work items run.
	executed atomic.Uint64

	_ [56]byte // padding to avoid false sharing

	// queued is the current number of items enqueued.
	queued atomic.Int64
}

// Executed returns the total number of executed work items.
func (m *AtomicMetrics) Executed() uint64 { return m.executed.Load() }

// Queued returns the current number of queued work items.
func (m *AtomicMetrics) Queued() int64 { return m.queued.Load() }

func (m *AtomicMetrics) IncQueued()             { m.queued.Add(1) }
func (m *AtomicMetrics) IncExecuted()           { m.executed.Add(1) }
func (m *AtomicMetrics) BatchDecQueued(n int64) { m.queued.Add(-n) }

//------------- NoopMetrics ----------------------------------

// NoopMetrics discards all metric updates. Use it when metrics collection
// is disabled and zero overhead is desired.
type NoopMetrics struct{}

func (m *NoopMetrics) IncQueued()             {}
func (m *NoopMetrics) IncExecuted()           {}
func (m *NoopMetrics) BatchDecQueued(n int64) {}
