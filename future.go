package futures

// Unit is the result type of futures that carry no value, such as the one
// returned by the package-level Via.
type Unit struct{}

// Future is the consuming read-handle to an eventual value or failure.
//
// Futures follow a linear-use discipline: every chaining call (Via and the
// Then combinators) transfers the underlying state to the Future it
// returns, and the receiver becomes invalid for further use. Chaining from
// an already-chained handle panics. A Future handle is not safe for
// concurrent use; the shared state behind it is.
type Future[T any] struct {
	core *core[T]
}

// MakeFuture returns a Future already completed with v.
func MakeFuture[T any](v T) *Future[T] {
	c := newCore[T]()
	c.setResult(Value(v))
	return &Future[T]{core: c}
}

// MakeErrFuture returns a Future already completed with a failure.
func MakeErrFuture[T any](err error) *Future[T] {
	c := newCore[T]()
	c.setResult(Err[T](err))
	return &Future[T]{core: c}
}

// MakeUnit returns a completed valueless Future, the usual head of a chain
// that exists only to be routed somewhere with Via.
func MakeUnit() *Future[Unit] {
	return MakeFuture(Unit{})
}

// Via returns a completed valueless Future bound to e, so whatever is
// chained next runs on e at mid priority. It forces no execution by itself.
func Via(e Executor) *Future[Unit] {
	return ViaPriority(e, MidPri)
}

// ViaPriority is Via with an explicit priority, clamped by the executor's
// own bucket count at dispatch time.
func ViaPriority(e Executor, priority int8) *Future[Unit] {
	return MakeUnit().ViaPriority(e, priority)
}

// take transfers ownership of the shared state out of this handle.
func (f *Future[T]) take() *core[T] {
	c := f.core
	if c == nil {
		panic(panicConsumed)
	}
	f.core = nil
	return c
}

// peek returns the shared state without consuming the handle, for terminal
// accessors.
func (f *Future[T]) peek() *core[T] {
	if f.core == nil {
		panic(panicConsumed)
	}
	return f.core
}

// Via rebinds the executor under which subsequent continuations run, at mid
// priority. The binding is sticky: it stays in effect for every later stage
// until another Via. The receiver is consumed.
func (f *Future[T]) Via(e Executor) *Future[T] {
	return f.ViaPriority(e, MidPri)
}

// ViaPriority is Via with an explicit priority.
func (f *Future[T]) ViaPriority(e Executor, priority int8) *Future[T] {
	c := f.take()
	c.setExecutor(e, priority)
	return &Future[T]{core: c}
}

// IsReady reports whether the future has completed.
func (f *Future[T]) IsReady() bool {
	_, ok := f.peek().poll()
	return ok
}

// Poll returns the result and true if the future has completed, without
// blocking or consuming the handle.
func (f *Future[T]) Poll() (Try[T], bool) {
	return f.peek().poll()
}

// Wait blocks until the future completes.
func (f *Future[T]) Wait() {
	f.peek().wait()
}

// Get blocks until the future completes and returns its value, or the
// captured failure exactly as the producer set it.
func (f *Future[T]) Get() (T, error) {
	return f.peek().wait().Result()
}

// GetVia drives d until the future completes, then returns like Get.
//
// Use it when the waiting goroutine itself hosts an executor that chain
// stages need pumped to make progress: Get would deadlock, GetVia keeps
// pumping. The chain's final stage must be routed onto d (or complete
// through work queued to d), otherwise Drive has nothing to wake on.
func (f *Future[T]) GetVia(d DrivableExecutor) (T, error) {
	c := f.peek()
	for {
		if t, ok := c.poll(); ok {
			return t.Result()
		}
		d.Drive()
	}
}

// tryOf folds a Go (value, error) pair into a Try.
func tryOf[T any](v T, err error) Try[T] {
	if err != nil {
		return Err[T](err)
	}
	return Value(v)
}

// next allocates the core for the stage produced by a chaining call,
// inheriting the source's sticky executor binding (copy-on-chain).
func next[U, T any](src *core[T]) *core[U] {
	c := newCore[U]()
	c.executor, c.priority = src.binding()
	return c
}

// Then attaches a continuation that inspects the prior stage's Try, so it
// observes failures and may recover from them. It returns the Future of the
// continuation's result; the input handle is consumed.
//
// The continuation runs inline on the completing goroutine when no executor
// is bound upstream, and is submitted to the bound executor otherwise.
func Then[T, U any](f *Future[T], fn func(Try[T]) (U, error)) *Future[U] {
	if fn == nil {
		panic(panicNilFunc)
	}
	src := f.take()
	nc := next[U](src)
	src.setCallback(func(t Try[T]) {
		nc.setResult(tryOf(fn(t)))
	})
	return &Future[U]{core: nc}
}

// ThenValue attaches a continuation that consumes the bare value. On an
// upstream failure the continuation is skipped and the failure passes
// through unchanged, like Result/Either short-circuiting.
func ThenValue[T, U any](f *Future[T], fn func(T) (U, error)) *Future[U] {
	if fn == nil {
		panic(panicNilFunc)
	}
	return Then(f, func(t Try[T]) (U, error) {
		if err := t.Err(); err != nil {
			var zero U
			return zero, err
		}
		return fn(t.Value())
	})
}

// ThenDo attaches a continuation that ignores the prior stage's value,
// for stages chained after valueless futures or purely for sequencing.
// It short-circuits on failure like ThenValue.
func ThenDo[T, U any](f *Future[T], fn func() (U, error)) *Future[U] {
	if fn == nil {
		panic(panicNilFunc)
	}
	return Then(f, func(t Try[T]) (U, error) {
		if err := t.Err(); err != nil {
			var zero U
			return zero, err
		}
		return fn()
	})
}

// ThenFuture attaches a continuation that returns a further Future. The
// result is flattened: the returned Future resolves to U, not to a future
// of a future. The nested future keeps whatever routing it was given; once
// it completes, later stages of the outer chain resume on the outer sticky
// executor.
func ThenFuture[T, U any](f *Future[T], fn func(Try[T]) *Future[U]) *Future[U] {
	if fn == nil {
		panic(panicNilFunc)
	}
	src := f.take()
	nc := next[U](src)
	src.setCallback(func(t Try[T]) {
		inner := fn(t)
		if inner == nil {
			panic("futures: continuation returned a nil future")
		}
		inner.take().setCallback(func(u Try[U]) {
			nc.setResult(u)
		})
	})
	return &Future[U]{core: nc}
}

// ThenValueFuture is ThenFuture for continuations consuming the bare value,
// short-circuiting on upstream failure.
func ThenValueFuture[T, U any](f *Future[T], fn func(T) *Future[U]) *Future[U] {
	if fn == nil {
		panic(panicNilFunc)
	}
	return ThenFuture(f, func(t Try[T]) *Future[U] {
		if err := t.Err(); err != nil {
			return MakeErrFuture[U](err)
		}
		return fn(t.Value())
	})
}
