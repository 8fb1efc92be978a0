package futures

import (
	"context"
	"time"

	boff "github.com/Andrej220/go-utils/backoff"
	lg "github.com/Andrej220/go-utils/zlog"
)

const (
	defaultAttempts     = 3
	defaultInitialRetry = 200 * time.Millisecond
	defaultMaxRetry     = 5 * time.Second
)

// RetryPolicy describes how many times and how often a failing future
// should be retried. Zero values are treated as "use defaults".
type RetryPolicy struct {
	// Attempts is the maximum number of tries.
	Attempts int

	// Initial is the first backoff duration.
	Initial time.Duration

	// Max is the cap for backoff duration.
	Max time.Duration
}

func (p *RetryPolicy) FillDefaults() {
	if p.Attempts <= 0 {
		p.Attempts = defaultAttempts
	}
	if p.Initial <= 0 {
		p.Initial = defaultInitialRetry
	}
	if p.Max <= 0 {
		p.Max = defaultMaxRetry
	}
}

// Retrying runs fn(1) and, on failure, schedules further attempts after
// exponentially backed-off delays until an attempt succeeds or the policy
// is exhausted. The returned future resolves with the first success or the
// last failure.
//
// fn receives the 1-based attempt number. Delays run on timer goroutines;
// where each attempt's work runs is entirely up to fn (it can route its
// future through any executor). The context is a logger source only.
func Retrying[T any](ctx context.Context, policy RetryPolicy, fn func(attempt int) *Future[T]) *Future[T] {
	if fn == nil {
		panic(panicNilFunc)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	policy.FillDefaults()

	p := NewPromise[T]()
	bo := boff.New(policy.Initial, policy.Max, time.Now().UnixNano())

	var attempt func(n int)
	attempt = func(n int) {
		fn(n).take().setCallback(func(t Try[T]) {
			err := t.Err()
			if err == nil || n >= policy.Attempts {
				p.Complete(t)
				return
			}
			delay := bo.Next()
			lg.FromContext(ctx).Warn("attempt failed; backing off",
				lg.Int("attempt", n),
				lg.String("sleep", delay.String()),
				lg.Any("error", err),
			)
			time.AfterFunc(delay, func() { attempt(n + 1) })
		})
	}
	attempt(1)

	return p.Future()
}
