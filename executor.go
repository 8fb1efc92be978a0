package futures

import "math"

// Priority of a submitted work item. The range is open-ended and signed;
// each executor clamps it into its own bucket count via PriorityBucket.
const (
	LoPri  int8 = math.MinInt8
	MidPri int8 = 0
	HiPri  int8 = math.MaxInt8
)

// Executor is the capability any host scheduling domain must implement to
// run continuations: a thread pool, an event loop, or one of the
// pump-driven executors in this package.
//
// The framework never manages an Executor's lifetime. The caller must keep
// an executor alive for at least as long as continuations may be scheduled
// onto it.
type Executor interface {
	// Add enqueues fn to run later on this executor's own scheduling
	// domain. It must not run fn synchronously inside Add, and it must
	// wake the executor's drive loop if one is blocked waiting for work.
	Add(fn func())

	// AddWithPriority is Add with a requested priority, interpreted
	// against NumPriorities. Executors honoring a single bucket ignore
	// the priority.
	AddWithPriority(fn func(), priority int8)

	// NumPriorities returns the count of distinct priority buckets this
	// executor honors, at least 1.
	NumPriorities() uint8
}

// DrivableExecutor is an Executor a thread can host as its private run
// loop: Drive blocks until work is available and then runs it.
type DrivableExecutor interface {
	Executor

	// Drive makes some progress: block until work arrives, then run it.
	Drive()
}

// PriorityBucket clamps a signed priority into a bucket index for an
// executor honoring numPriorities buckets. The mapping is deterministic and
// saturating: overflow lands in the highest bucket, underflow in bucket 0,
// and MidPri in bucket numPriorities/2.
func PriorityBucket(numPriorities uint8, priority int8) int {
	n := int(numPriorities)
	if n < 1 {
		n = 1
	}
	mid := n / 2
	b := mid + int(priority)
	if priority < 0 {
		if b < 0 {
			return 0
		}
		return b
	}
	if b > n-1 {
		return n - 1
	}
	return b
}

// InlineExecutor runs every work item immediately on the submitting
// goroutine. It is the "run here" context: the one Executor exempt from
// Add's deferral rule.
type InlineExecutor struct{}

// Inline is a ready-to-use InlineExecutor.
var Inline = &InlineExecutor{}

func (e *InlineExecutor) Add(fn func())                     { fn() }
func (e *InlineExecutor) AddWithPriority(fn func(), _ int8) { fn() }
func (e *InlineExecutor) NumPriorities() uint8              { return 1 }
