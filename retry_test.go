package futures

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

var fastRetry = RetryPolicy{Attempts: 3, Initial: 2 * time.Millisecond, Max: 5 * time.Millisecond}

func TestRetryingThenSuccess(t *testing.T) {
	var attempts atomic.Int32

	f := Retrying(context.Background(), fastRetry, func(attempt int) *Future[int] {
		if attempts.Add(1) < 3 {
			return MakeErrFuture[int](errors.New("fail"))
		}
		return MakeFuture(7)
	})

	got, err := f.Get()
	if err != nil || got != 7 {
		t.Fatalf("Get = %d, %v; want 7, nil", got, err)
	}
	if got := attempts.Load(); got != 3 {
		t.Fatalf("attempts = %d; want 3", got)
	}
}

func TestRetryingFirstAttemptSucceeds(t *testing.T) {
	var attempts atomic.Int32

	f := Retrying(context.Background(), fastRetry, func(attempt int) *Future[int] {
		attempts.Add(1)
		return MakeFuture(attempt)
	})

	got, err := f.Get()
	if err != nil || got != 1 {
		t.Fatalf("Get = %d, %v; want 1, nil", got, err)
	}
	if got := attempts.Load(); got != 1 {
		t.Fatalf("attempts = %d; want 1", got)
	}
}

func TestRetryingExhaustion(t *testing.T) {
	last := errors.New("still failing")
	var attempts atomic.Int32

	f := Retrying(context.Background(), fastRetry, func(attempt int) *Future[int] {
		attempts.Add(1)
		return MakeErrFuture[int](last)
	})

	_, err := f.Get()
	if !errors.Is(err, last) {
		t.Fatalf("Get err = %v; want %v", err, last)
	}
	if got := attempts.Load(); got != int32(fastRetry.Attempts) {
		t.Fatalf("attempts = %d; want %d", got, fastRetry.Attempts)
	}
}

func TestRetryingAsyncAttempts(t *testing.T) {
	// attempts resolved off-goroutine, through a promise
	var attempts atomic.Int32

	f := Retrying(context.Background(), fastRetry, func(attempt int) *Future[int] {
		n := attempts.Add(1)
		p := NewPromise[int]()
		go func() {
			if n < 2 {
				p.SetError(errors.New("fail"))
				return
			}
			p.SetValue(int(n))
		}()
		return p.Future()
	})

	got, err := f.Get()
	if err != nil || got != 2 {
		t.Fatalf("Get = %d, %v; want 2, nil", got, err)
	}
}
