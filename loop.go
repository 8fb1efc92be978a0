package futures

import (
	"context"
	"sync"

	lg "github.com/Andrej220/go-utils/zlog"
)

// Loop hosts a DrivableExecutor on its own goroutine, repeatedly calling
// Drive until shut down. It is the standing version of the drive loop a
// test or server thread would otherwise write by hand.
//
// Shutdown works by flipping the closed flag and enqueuing a final no-op
// work item, so a Drive blocked in Wait is guaranteed to unblock, notice
// the flag, and return.
type Loop struct {
	d DrivableExecutor

	wg       sync.WaitGroup
	stopOnce sync.Once
	closed   chan struct{}
	ctx      context.Context
}

// NewLoop starts a goroutine driving d. The context is a logger source
// only; use Shutdown or Stop to end the loop.
func NewLoop(ctx context.Context, d DrivableExecutor) *Loop {
	if ctx == nil {
		ctx = context.Background()
	}
	l := &Loop{
		d:      d,
		closed: make(chan struct{}),
		ctx:    ctx,
	}
	l.wg.Add(1)
	go l.run()
	lg.FromContext(ctx).Info("loop started")
	return l
}

func (l *Loop) run() {
	defer l.wg.Done()
	for {
		select {
		case <-l.closed:
			return
		default:
		}
		l.d.Drive()
	}
}

// Add submits work to the hosted executor, rejecting it once the loop has
// been shut down.
func (l *Loop) Add(fn func()) error {
	select {
	case <-l.closed:
		return ErrLoopClosed
	default:
	}
	l.d.Add(fn)
	return nil
}

// Executor returns the hosted executor, for Via bindings.
func (l *Loop) Executor() DrivableExecutor { return l.d }

// Shutdown stops the drive loop and waits for the hosting goroutine to
// exit, giving up when ctx expires. Work already queued when Shutdown is
// called may or may not run, depending on where the loop was parked.
func (l *Loop) Shutdown(ctx context.Context) error {
	l.stopOnce.Do(func() {
		close(l.closed)
		// sentinel no-op: unblocks a Drive parked in Wait
		l.d.Add(func() {})
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		l.wg.Wait()
	}()
	select {
	case <-done:
		lg.FromContext(l.ctx).Info("loop stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop is a blocking Shutdown with no deadline.
func (l *Loop) Stop() { _ = l.Shutdown(context.Background()) }
