// Package futures provides an asynchronous continuation framework: Future
// and Promise handles over a shared continuation state, pluggable
// priority-aware executors, and an explicit Via operator that moves
// subsequent work onto a named executor.
//
// Architecture overview
//
// The package is composed of three loosely coupled layers:
//
//   1. Result carrier (Try)
//      A tagged holder of either a value or a captured failure. Every
//      stage of a chain produces and consumes exactly one Try.
//
//   2. Continuation core (Promise / Future)
//      One small lock guards the completion slot, the single continuation,
//      and the executor binding. Attach and complete may race from
//      different goroutines; whichever lands second fires the continuation
//      exactly once.
//
//   3. Executors
//      Open capability interface (Add, AddWithPriority, NumPriorities) any
//      host can satisfy. The package ships an inline executor, a
//      pump-driven ManualExecutor, and a priority-bucketed BucketExecutor,
//      plus a Loop that hosts a drivable executor on its own goroutine.
//
// Scheduling model
//
// A continuation attached with one of the Then combinators runs inline on
// the completing goroutine when no executor is bound, and is submitted to
// the bound executor otherwise. Via rebinds the executor for everything
// chained after it; the binding is sticky across stages until changed. A
// nested future returned from a flattening continuation keeps its own
// routing, and the outer chain resumes on its own sticky executor.
//
// Futures are linear: each Via or Then call consumes its input handle and
// returns the only handle that may be chained from next. Misuse (chaining
// twice, completing twice, attaching twice) panics; these are programming
// errors, not runtime failures.
//
// Priorities
//
// Priorities are signed bytes with LoPri, MidPri, and HiPri markers. Each
// executor interprets them against its own bucket count; PriorityBucket
// clamps any requested priority into [0, NumPriorities-1] with saturation
// at both ends.
//
// Failure handling
//
// Producer-side failures and broken promises travel through the chain as
// data inside Try. Value-consuming stages are skipped on failure and pass
// it through; Try-consuming stages observe it and may recover. A panic
// inside a pumped work item is recovered at the item boundary, logged, and
// never aborts the rest of the drain.
//
// Blocking
//
// Add, Via, and the Then combinators never block. Get blocks the caller on
// a plain condition wait; GetVia instead pumps a drivable executor the
// caller hosts, so chains that hop back onto the calling goroutine's own
// executor still make progress.
package futures
