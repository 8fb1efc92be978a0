package futures

// Step is one transformation in a chain: it consumes the previous step's
// output and yields a Future of the next value. Synchronous functions are
// adapted with Lift.
type Step[A, B any] func(A) *Future[B]

// Lift adapts a synchronous transformation into a Step, completing its
// future immediately with the function's outcome.
func Lift[A, B any](fn func(A) (B, error)) Step[A, B] {
	return func(a A) *Future[B] {
		v, err := fn(a)
		if err != nil {
			return MakeErrFuture[B](err)
		}
		return MakeFuture(v)
	}
}

// Chain composes a single step into a continuation usable with ThenFuture.
// An upstream failure skips the step and passes through.
func Chain[A, B any](s Step[A, B]) func(Try[A]) *Future[B] {
	return func(t Try[A]) *Future[B] {
		if err := t.Err(); err != nil {
			return MakeErrFuture[B](err)
		}
		return s(t.Value())
	}
}

// Chain2 composes two steps into one continuation. Each step runs only if
// the previous one succeeded; a failure short-circuits the rest and
// resolves the composed future with that failure.
func Chain2[A, B, C any](s1 Step[A, B], s2 Step[B, C]) func(Try[A]) *Future[C] {
	return func(t Try[A]) *Future[C] {
		if err := t.Err(); err != nil {
			return MakeErrFuture[C](err)
		}
		return ThenValueFuture(s1(t.Value()), s2)
	}
}

// Chain3 composes three steps, with the same short-circuit semantics as
// Chain2.
func Chain3[A, B, C, D any](s1 Step[A, B], s2 Step[B, C], s3 Step[C, D]) func(Try[A]) *Future[D] {
	return func(t Try[A]) *Future[D] {
		if err := t.Err(); err != nil {
			return MakeErrFuture[D](err)
		}
		return ThenValueFuture(ThenValueFuture(s1(t.Value()), s2), s3)
	}
}

// Chain4 composes four steps, with the same short-circuit semantics as
// Chain2.
func Chain4[A, B, C, D, E any](s1 Step[A, B], s2 Step[B, C], s3 Step[C, D], s4 Step[D, E]) func(Try[A]) *Future[E] {
	return func(t Try[A]) *Future[E] {
		if err := t.Err(); err != nil {
			return MakeErrFuture[E](err)
		}
		return ThenValueFuture(ThenValueFuture(ThenValueFuture(s1(t.Value()), s2), s3), s4)
	}
}
