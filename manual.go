package futures

import (
	"sync"

	lg "github.com/Andrej220/go-utils/zlog"
)

// taskRing is a growable circular buffer of work items.
//
// Unlike a fixed-capacity scheduler queue, Add on an executor must never
// drop work, so the ring doubles when full.
type taskRing struct {
	buf        []func()
	head, tail int // read/write indices
	size       int // number of items currently buffered
}

func newTaskRing(capacity int) taskRing {
	if capacity < 1 {
		capacity = 1
	}
	return taskRing{buf: make([]func(), capacity)}
}

func (q *taskRing) push(fn func()) {
	if q.size == len(q.buf) {
		q.grow()
	}
	q.buf[q.tail] = fn
	q.tail++
	if q.tail == len(q.buf) {
		q.tail = 0
	}
	q.size++
}

func (q *taskRing) pop() (func(), bool) {
	if q.size == 0 {
		return nil, false
	}
	fn := q.buf[q.head]
	q.buf[q.head] = nil
	q.head++
	if q.head == len(q.buf) {
		q.head = 0
	}
	q.size--
	return fn, true
}

func (q *taskRing) grow() {
	next := make([]func(), 2*len(q.buf))
	for i := 0; i < q.size; i++ {
		next[i] = q.buf[(q.head+i)%len(q.buf)]
	}
	q.buf = next
	q.head = 0
	q.tail = q.size
}

// ManualExecutor queues work and only runs it when explicitly pumped via
// Run or RunOne. It is the reference executor for reasoning about
// cross-thread scheduling: between two pumps, exactly the items enqueued
// before the first pump have run.
//
// Add may be called from any goroutine. Run/RunOne/Wait may also be called
// from any goroutine, though a single pumping goroutine is the usual shape.
type ManualExecutor struct {
	mu    sync.Mutex
	wakes *sync.Cond
	queue taskRing

	opts ExecutorOptions
}

// NewManualExecutor returns a ManualExecutor with default options.
func NewManualExecutor() *ManualExecutor {
	return NewManualExecutorWithOptions(ExecutorOptions{})
}

// NewManualExecutorWithOptions returns a ManualExecutor configured by o.
func NewManualExecutorWithOptions(o ExecutorOptions) *ManualExecutor {
	o.FillDefaults()
	e := &ManualExecutor{
		queue: newTaskRing(o.InitialCapacity),
		opts:  o,
	}
	e.wakes = sync.NewCond(&e.mu)
	return e
}

// Add appends fn to the queue and wakes any goroutine blocked in Wait.
// It never runs fn synchronously and never fails.
func (e *ManualExecutor) Add(fn func()) {
	if fn == nil {
		panic(panicNilFunc)
	}
	e.mu.Lock()
	e.queue.push(fn)
	e.mu.Unlock()
	e.opts.Metrics.IncQueued()
	e.wakes.Signal()
}

// AddWithPriority ignores the priority: a ManualExecutor honors a single
// bucket, so it behaves exactly like Add.
func (e *ManualExecutor) AddWithPriority(fn func(), _ int8) { e.Add(fn) }

// NumPriorities returns 1.
func (e *ManualExecutor) NumPriorities() uint8 { return 1 }

// Len returns the number of items currently waiting in the queue.
func (e *ManualExecutor) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.queue.size
}

// Run drains the items present in the queue at the moment of the call and
// invokes each in enqueue order, returning how many ran.
//
// Items enqueued by a running item are not part of the same pass; they wait
// for the next pump. A panic inside an item is isolated to that item and
// the drain continues.
func (e *ManualExecutor) Run() int {
	e.mu.Lock()
	n := e.queue.size
	batch := make([]func(), 0, n)
	for i := 0; i < n; i++ {
		fn, _ := e.queue.pop()
		batch = append(batch, fn)
	}
	e.mu.Unlock()

	e.opts.Metrics.BatchDecQueued(int64(n))
	for _, fn := range batch {
		e.runIsolated(fn)
	}
	return n
}

// RunOne runs the oldest queued item, if any, and reports whether one ran.
func (e *ManualExecutor) RunOne() bool {
	e.mu.Lock()
	fn, ok := e.queue.pop()
	e.mu.Unlock()
	if !ok {
		return false
	}
	e.opts.Metrics.BatchDecQueued(1)
	e.runIsolated(fn)
	return true
}

// Wait blocks the calling goroutine until the queue is non-empty, without
// consuming any items.
func (e *ManualExecutor) Wait() {
	e.mu.Lock()
	for e.queue.size == 0 {
		e.wakes.Wait()
	}
	e.mu.Unlock()
}

func (e *ManualExecutor) runIsolated(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			lg.FromContext(e.opts.Ctx).Error("work item panicked", lg.Any("panic", r))
			if e.opts.OnPanic != nil {
				e.opts.OnPanic(r)
			}
		}
		e.opts.Metrics.IncExecuted()
	}()
	fn()
}

// PumpExecutor is an Executor that exposes its pump: Wait for work, then
// Run a pass. ManualExecutor and BucketExecutor both satisfy it.
type PumpExecutor interface {
	Executor
	Wait()
	Run() int
}

// ManualWaiter turns a PumpExecutor into a DrivableExecutor: Drive is one
// Wait-then-Run cycle. A goroutine hosting an executor as its private event
// loop calls Drive repeatedly until a shutdown condition; see Loop.
type ManualWaiter struct {
	Ex PumpExecutor
}

// NewManualWaiter wraps ex so it can be driven.
func NewManualWaiter(ex PumpExecutor) *ManualWaiter {
	return &ManualWaiter{Ex: ex}
}

func (w *ManualWaiter) Add(fn func())                     { w.Ex.Add(fn) }
func (w *ManualWaiter) AddWithPriority(fn func(), p int8) { w.Ex.AddWithPriority(fn, p) }
func (w *ManualWaiter) NumPriorities() uint8              { return w.Ex.NumPriorities() }

// Drive blocks until work is available, then runs one pump pass.
func (w *ManualWaiter) Drive() {
	w.Ex.Wait()
	w.Ex.Run()
}
