package futures

import "errors"

var (
	// ErrBrokenPromise is the failure a future observes when its promise
	// was abandoned before being completed.
	ErrBrokenPromise = errors.New("futures: broken promise")

	// ErrLoopClosed is returned when submitting to a Loop that has been
	// shut down.
	ErrLoopClosed = errors.New("futures: loop closed")
)

// Panic messages for contract violations. These signal usage bugs and are
// not meant to be recovered.
const (
	panicDoubleComplete = "futures: promise completed twice"
	panicDoubleAttach   = "futures: continuation attached twice"
	panicConsumed       = "futures: future already consumed by a prior chain call"
	panicEmptyTry       = "futures: value of an empty Try"
	panicNilFunc        = "futures: nil continuation"
)
