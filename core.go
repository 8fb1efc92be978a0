package futures

import "sync"

// core is the shared continuation state jointly owned by a Promise and the
// chain of Future handles derived from it.
//
// One mutex guards the whole small field set: result slot, completion flag,
// continuation slot, and executor binding. Attaching a continuation and
// completing the state are the two operations that race; whichever happens
// second triggers execution, so the continuation fires exactly once for
// either ordering.
type core[T any] struct {
	mu   sync.Mutex
	done *sync.Cond // broadcast on completion, for blocking Get

	result    Try[T]
	completed bool

	callback func(Try[T])
	attached bool
	fired    bool

	executor Executor // nil means run continuations inline
	priority int8
}

func newCore[T any]() *core[T] {
	c := &core[T]{}
	c.done = sync.NewCond(&c.mu)
	return c
}

// setExecutor rebinds the executor used to dispatch the continuation.
// Legal only before a continuation is attached.
func (c *core[T]) setExecutor(e Executor, priority int8) {
	c.mu.Lock()
	c.executor = e
	c.priority = priority
	c.mu.Unlock()
}

// binding returns the current executor binding, for copy-on-chain
// inheritance by the next stage's core.
func (c *core[T]) binding() (Executor, int8) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.executor, c.priority
}

// setCallback attaches the single continuation. If the core is already
// completed, the continuation fires now, on the attaching goroutine when no
// executor is bound.
func (c *core[T]) setCallback(fn func(Try[T])) {
	if fn == nil {
		panic(panicNilFunc)
	}
	c.mu.Lock()
	if c.attached {
		c.mu.Unlock()
		panic(panicDoubleAttach)
	}
	c.attached = true
	c.callback = fn
	fire := c.completed && !c.fired
	if fire {
		c.fired = true
	}
	ex, pri, res := c.executor, c.priority, c.result
	c.mu.Unlock()

	if fire {
		c.dispatch(ex, pri, res)
	}
}

// setResult writes the completion slot. If a continuation is already
// attached, it fires now, on the completing goroutine when no executor is
// bound.
func (c *core[T]) setResult(t Try[T]) {
	if !c.trySetResult(t) {
		panic(panicDoubleComplete)
	}
}

// trySetResult is setResult that reports false instead of panicking when
// the core is already completed. Used for broken-promise completion, which
// must be a no-op after a regular completion.
func (c *core[T]) trySetResult(t Try[T]) bool {
	c.mu.Lock()
	if c.completed {
		c.mu.Unlock()
		return false
	}
	c.completed = true
	c.result = t
	fire := c.attached && !c.fired
	if fire {
		c.fired = true
	}
	ex, pri := c.executor, c.priority
	c.done.Broadcast()
	c.mu.Unlock()

	if fire {
		c.dispatch(ex, pri, t)
	}
	return true
}

// dispatch runs the continuation inline or submits it to the bound
// executor. Called outside the lock; callback is immutable once fired.
func (c *core[T]) dispatch(ex Executor, priority int8, res Try[T]) {
	cb := c.callback
	if ex == nil {
		cb(res)
		return
	}
	ex.AddWithPriority(func() { cb(res) }, priority)
}

// wait blocks until the core is completed and returns the result.
func (c *core[T]) wait() Try[T] {
	c.mu.Lock()
	for !c.completed {
		c.done.Wait()
	}
	t := c.result
	c.mu.Unlock()
	return t
}

// poll returns the result and true if the core is completed.
func (c *core[T]) poll() (Try[T], bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result, c.completed
}
