package futures

import "context"

const defaultInitialCapacity = 64

// ExecutorOptions configure the pump-driven executors in this package.
//
// All zero values are replaced with sensible defaults in FillDefaults.
type ExecutorOptions struct {
	// Ctx is used as the logger source for panic reports and lifecycle
	// events. It does not cancel anything: the core has no cancellation.
	Ctx context.Context

	// Metrics receives queued/executed counts. Defaults to NoopMetrics.
	Metrics MetricsPolicy

	// InitialCapacity sizes the internal ring buffer. The queue grows
	// beyond it as needed.
	InitialCapacity int

	// OnPanic, if set, is called with the recovered value when a work
	// item panics. The panic is already isolated to the item either way.
	OnPanic func(v any)
}

func (o *ExecutorOptions) FillDefaults() {
	if o.Ctx == nil {
		o.Ctx = context.Background()
	}
	if o.Metrics == nil {
		o.Metrics = &NoopMetrics{}
	}
	if o.InitialCapacity <= 0 {
		o.InitialCapacity = defaultInitialCapacity
	}
}
