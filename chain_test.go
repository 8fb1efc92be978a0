package futures

import (
	"errors"
	"testing"
)

func TestChainSingleStep(t *testing.T) {
	f := ThenFuture(MakeUnit(), Chain(Lift(func(Unit) (int, error) {
		return 42, nil
	})))
	got, err := f.Get()
	if err != nil || got != 42 {
		t.Fatalf("Get = %d, %v; want 42, nil", got, err)
	}
}

func TestChainThreeSteps(t *testing.T) {
	count := 0
	f := ThenFuture(MakeUnit(), Chain3(
		Lift(func(Unit) (float64, error) {
			count++
			return 3.14159, nil
		}),
		Lift(func(float64) (string, error) {
			count++
			return "hello", nil
		}),
		func(string) *Future[int] {
			count++
			return MakeFuture(42)
		},
	))

	got, err := f.Get()
	if err != nil || got != 42 {
		t.Fatalf("Get = %d, %v; want 42, nil", got, err)
	}
	if count != 3 {
		t.Fatalf("count = %d; want 3", count)
	}
}

func TestChainShortCircuits(t *testing.T) {
	boom := errors.New("boom")
	invoked := 0

	f := ThenFuture(MakeUnit(), Chain3(
		Lift(func(Unit) (int, error) { return 0, boom }),
		Lift(func(int) (int, error) { invoked++; return 0, nil }),
		Lift(func(int) (int, error) { invoked++; return 0, nil }),
	))

	_, err := f.Get()
	if !errors.Is(err, boom) {
		t.Fatalf("Get err = %v; want %v", err, boom)
	}
	if invoked != 0 {
		t.Fatalf("%d steps ran after the failing step", invoked)
	}
}

func TestChainSkipsOnUpstreamFailure(t *testing.T) {
	boom := errors.New("boom")
	invoked := 0

	f := ThenFuture(MakeErrFuture[Unit](boom), Chain2(
		Lift(func(Unit) (int, error) { invoked++; return 1, nil }),
		Lift(func(int) (int, error) { invoked++; return 2, nil }),
	))

	_, err := f.Get()
	if !errors.Is(err, boom) {
		t.Fatalf("Get err = %v; want %v", err, boom)
	}
	if invoked != 0 {
		t.Fatalf("%d steps ran on an already-failed input", invoked)
	}
}

func TestChainFourSteps(t *testing.T) {
	f := ThenFuture(MakeFuture(1), Chain4(
		Lift(func(v int) (int, error) { return v + 1, nil }),
		Lift(func(v int) (int, error) { return v * 10, nil }),
		Lift(func(v int) (string, error) {
			if v != 20 {
				return "", errors.New("unexpected intermediate")
			}
			return "ok", nil
		}),
		func(s string) *Future[string] { return MakeFuture(s + "!") },
	))

	got, err := f.Get()
	if err != nil || got != "ok!" {
		t.Fatalf("Get = %q, %v; want ok!, nil", got, err)
	}
}
