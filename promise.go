package futures

import "sync/atomic"

// Promise is the producer handle of a future: it completes the shared
// continuation state exactly once, with a value or a failure.
//
// Go has no destructors, so the broken-promise guarantee is explicit: a
// producer that may bail out before completing should defer Abandon, which
// fails the future with ErrBrokenPromise unless a real completion already
// happened.
type Promise[T any] struct {
	core        *core[T]
	futureTaken atomic.Bool
}

// NewPromise returns an incomplete Promise.
func NewPromise[T any]() *Promise[T] {
	return &Promise[T]{core: newCore[T]()}
}

// Future returns the consuming handle paired with this promise.
// It may be called once; a second call panics.
func (p *Promise[T]) Future() *Future[T] {
	if p.futureTaken.Swap(true) {
		panic("futures: future already retrieved from promise")
	}
	return &Future[T]{core: p.core}
}

// SetValue completes the promise with v. Completing twice panics.
func (p *Promise[T]) SetValue(v T) {
	p.core.setResult(Value(v))
}

// SetError completes the promise with a failure. Completing twice panics.
func (p *Promise[T]) SetError(err error) {
	p.core.setResult(Err[T](err))
}

// Complete completes the promise with an already-materialized Try.
func (p *Promise[T]) Complete(t Try[T]) {
	if t.IsEmpty() {
		panic(panicEmptyTry)
	}
	p.core.setResult(t)
}

// Abandon completes the promise with ErrBrokenPromise if it is still
// pending. It is a no-op on a completed promise, so it is safe to defer
// unconditionally on the producer side.
func (p *Promise[T]) Abandon() {
	p.core.trySetResult(Err[T](ErrBrokenPromise))
}

// IsFulfilled reports whether the promise has been completed.
func (p *Promise[T]) IsFulfilled() bool {
	_, ok := p.core.poll()
	return ok
}
