package futures

type tryState uint8

const (
	tryEmpty tryState = iota
	tryValue
	tryError
)

// Try holds the outcome of one stage of a continuation chain: either a
// value of type T or a captured error, never both.
//
// The zero value is empty. Empty is only a transient placeholder used
// before a stage materializes its outcome; consuming an empty Try is a
// programming error.
type Try[T any] struct {
	val   T
	err   error
	state tryState
}

// Value wraps v into a successful Try.
func Value[T any](v T) Try[T] {
	return Try[T]{val: v, state: tryValue}
}

// Err wraps a failure into a Try. A nil error marks the Try as a success
// holding the zero value, so callers can forward (val, err) pairs directly.
func Err[T any](err error) Try[T] {
	if err == nil {
		var zero T
		return Value(zero)
	}
	return Try[T]{err: err, state: tryError}
}

// IsEmpty reports whether no outcome has been materialized yet.
func (t Try[T]) IsEmpty() bool { return t.state == tryEmpty }

// HasValue reports whether the Try holds a value.
func (t Try[T]) HasValue() bool { return t.state == tryValue }

// HasErr reports whether the Try holds a captured failure.
func (t Try[T]) HasErr() bool { return t.state == tryError }

// Value returns the held value.
//
// It re-raises a captured failure by panicking with it, and panics on an
// empty Try. Prefer Result for the usual (value, error) consumption; Value
// exists for call sites that have already checked HasValue.
func (t Try[T]) Value() T {
	switch t.state {
	case tryValue:
		return t.val
	case tryError:
		panic(t.err)
	default:
		panic(panicEmptyTry)
	}
}

// Err returns the captured failure, or nil if the Try holds a value.
// Calling Err on an empty Try is a programming error.
func (t Try[T]) Err() error {
	if t.state == tryEmpty {
		panic(panicEmptyTry)
	}
	return t.err
}

// Result unpacks the Try into Go's native (value, error) pair.
// Calling Result on an empty Try is a programming error.
func (t Try[T]) Result() (T, error) {
	if t.state == tryEmpty {
		panic(panicEmptyTry)
	}
	return t.val, t.err
}
