package futures

import (
	"math/bits"
	"sync"

	lg "github.com/Andrej220/go-utils/zlog"
)

// maxBuckets is the widest bucket set the bitmap tracks.
const maxBuckets = 64

// BucketExecutor is a pump-driven executor honoring N priority buckets.
//
// AddWithPriority clamps the signed priority into a bucket via
// PriorityBucket; a pump pass drains the most urgent non-empty bucket
// first (highest bucket index), FIFO within a bucket. A bitmap over
// non-empty buckets keeps selection O(1).
//
// The non-reentrant drain contract of ManualExecutor holds here too: a
// Run pass covers only the items that were queued when it started.
type BucketExecutor struct {
	mu    sync.Mutex
	wakes *sync.Cond

	buckets []taskRing
	bitmap  uint64 // bit i set when buckets[i] is non-empty
	size    int

	opts ExecutorOptions
}

// NewBucketExecutor returns a BucketExecutor honoring numPriorities
// buckets, clamped to [1, 64].
func NewBucketExecutor(numPriorities uint8) *BucketExecutor {
	return NewBucketExecutorWithOptions(numPriorities, ExecutorOptions{})
}

// NewBucketExecutorWithOptions returns a BucketExecutor configured by o.
func NewBucketExecutorWithOptions(numPriorities uint8, o ExecutorOptions) *BucketExecutor {
	o.FillDefaults()
	n := int(numPriorities)
	if n < 1 {
		n = 1
	}
	if n > maxBuckets {
		n = maxBuckets
	}
	e := &BucketExecutor{
		buckets: make([]taskRing, n),
		opts:    o,
	}
	for i := range e.buckets {
		e.buckets[i] = newTaskRing(o.InitialCapacity)
	}
	e.wakes = sync.NewCond(&e.mu)
	return e
}

// Add enqueues fn at mid priority.
func (e *BucketExecutor) Add(fn func()) { e.AddWithPriority(fn, MidPri) }

// AddWithPriority enqueues fn into the bucket the priority clamps to and
// wakes any goroutine blocked in Wait.
func (e *BucketExecutor) AddWithPriority(fn func(), priority int8) {
	if fn == nil {
		panic(panicNilFunc)
	}
	idx := PriorityBucket(e.NumPriorities(), priority)

	e.mu.Lock()
	e.buckets[idx].push(fn)
	e.bitmap |= 1 << uint(idx)
	e.size++
	e.mu.Unlock()
	e.opts.Metrics.IncQueued()
	e.wakes.Signal()
}

// NumPriorities returns the configured bucket count.
func (e *BucketExecutor) NumPriorities() uint8 { return uint8(len(e.buckets)) }

// Len returns the number of items waiting across all buckets.
func (e *BucketExecutor) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.size
}

// BucketLen returns the number of items waiting in one bucket.
func (e *BucketExecutor) BucketLen(idx int) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if idx < 0 || idx >= len(e.buckets) {
		return 0
	}
	return e.buckets[idx].size
}

// Run drains the items present when the call starts, most urgent bucket
// first, FIFO within a bucket, and returns how many ran. Items enqueued
// during the pass wait for the next pump. A panic inside an item is
// isolated to that item and the drain continues.
func (e *BucketExecutor) Run() int {
	e.mu.Lock()
	var batch []func()
	bitmap := e.bitmap
	for bitmap != 0 {
		idx := maxBuckets - 1 - bits.LeadingZeros64(bitmap)
		b := &e.buckets[idx]
		for i, n := 0, b.size; i < n; i++ {
			fn, _ := b.pop()
			batch = append(batch, fn)
		}
		bitmap &^= 1 << uint(idx)
		e.bitmap &^= 1 << uint(idx)
	}
	e.size -= len(batch)
	e.mu.Unlock()

	e.opts.Metrics.BatchDecQueued(int64(len(batch)))
	for _, fn := range batch {
		e.runIsolated(fn)
	}
	return len(batch)
}

// Wait blocks the calling goroutine until some bucket is non-empty,
// without consuming items.
func (e *BucketExecutor) Wait() {
	e.mu.Lock()
	for e.size == 0 {
		e.wakes.Wait()
	}
	e.mu.Unlock()
}

// Drive makes a BucketExecutor directly hostable as a private event loop.
func (e *BucketExecutor) Drive() {
	e.Wait()
	e.Run()
}

func (e *BucketExecutor) runIsolated(fn func()) {
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
