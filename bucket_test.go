package futures

import (
	"testing"
	"time"
)

func TestBucketExecutorUrgentFirst(t *testing.T) {
	ex := NewBucketExecutor(3)

	var order []string
	ex.AddWithPriority(func() { order = append(order, "lo") }, -1)
	ex.Add(func() { order = append(order, "mid") })
	ex.AddWithPriority(func() { order = append(order, "hi") }, 1)

	for i, want := range []int{1, 1, 1} {
		if got := ex.BucketLen(i); got != want {
			t.Fatalf("BucketLen(%d) = %d; want %d", i, got, want)
		}
	}

	if got := ex.Run(); got != 3 {
		t.Fatalf("Run ran %d items; want 3", got)
	}
	if order[0] != "hi" || order[1] != "mid" || order[2] != "lo" {
		t.Fatalf("order = %v; want [hi mid lo]", order)
	}
}

func TestBucketExecutorSaturation(t *testing.T) {
	ex := NewBucketExecutor(3)

	ex.AddWithPriority(func() {}, 42)
	ex.AddWithPriority(func() {}, -42)

	if got := ex.BucketLen(2); got != 1 {
		t.Fatalf("overflow bucket len = %d; want 1", got)
	}
	if got := ex.BucketLen(0); got != 1 {
		t.Fatalf("underflow bucket len = %d; want 1", got)
	}
}

func TestBucketExecutorFIFOWithinBucket(t *testing.T) {
	ex := NewBucketExecutor(3)

	var order []int
	for i := 0; i < 4; i++ {
		i := i
		ex.AddWithPriority(func() { order = append(order, i) }, HiPri)
	}
	ex.Run()
	for i, v := range order {
		if v != i {
			t.Fatalf("bucket drained out of order: %v", order)
		}
	}
}

func TestBucketExecutorNonReentrantDrain(t *testing.T) {
	ex := NewBucketExecutor(3)

	ran := false
	ex.Add(func() {
		ex.AddWithPriority(func() { ran = true }, HiPri)
	})

	if got := ex.Run(); got != 1 {
		t.Fatalf("first Run ran %d items; want 1", got)
	}
	if ran {
		t.Fatal("item enqueued during the pass ran in the same pass")
	}
	ex.Run()
	if !ran {
		t.Fatal("item did not run on the next pump")
	}
}

func TestBucketExecutorDrive(t *testing.T) {
	ex := NewBucketExecutor(3)

	done := make(chan struct{})
	go func() {
		ex.Drive()
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	ex.AddWithPriority(func() {}, MidPri)
	waitSignal(t, done, time.Second, "Drive did not complete after enqueue")
}

func TestBucketExecutorWithVia(t *testing.T) {
	ex := NewBucketExecutor(3)

	var order []string
	ThenDo(ViaPriority(ex, -1), func() (Unit, error) {
		order = append(order, "lo")
		return Unit{}, nil
	})
	ThenDo(ViaPriority(ex, 1), func() (Unit, error) {
		order = append(order, "hi")
		return Unit{}, nil
	})

	ex.Run()
	if len(order) != 2 || order[0] != "hi" || order[1] != "lo" {
		t.Fatalf("order = %v; want [hi lo]", order)
	}
}

func TestBucketExecutorPanicIsolation(t *testing.T) {
	var recovered any
	ex := NewBucketExecutorWithOptions(3, ExecutorOptions{
		OnPanic: func(v any) { recovered = v },
	})

	ran := false
	ex.AddWithPriority(func() { panic("boom") }, HiPri)
	ex.AddWithPriority(func() { ran = true }, LoPri)

	if got := ex.Run(); got != 2 {
		t.Fatalf("Run ran %d items; want 2", got)
	}
	if !ran || recovered != "boom" {
		t.Fatalf("ran=%v recovered=%v; want true, boom", ran, recovered)
	}
}
