package futures

import (
	"runtime"
	"strconv"
	"strings"
	"testing"
	"time"
)

// goid returns the calling goroutine's id, parsed from the stack header.
// Good enough for asserting which goroutine a continuation ran on.
func goid() int {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	s := strings.TrimPrefix(string(buf[:n]), "goroutine ")
	id, err := strconv.Atoi(s[:strings.IndexByte(s, ' ')])
	if err != nil {
		panic("goid: " + err.Error())
	}
	return id
}

// waitSignal fails the test if ch does not receive within the timeout.
func waitSignal(t *testing.T, ch <-chan struct{}, timeout time.Duration, msg string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(timeout):
		t.Fatal(msg)
	}
}

// mustPanic runs fn and fails the test unless it panics.
func mustPanic(t *testing.T, msg string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic: %s", msg)
		}
	}()
	fn()
}
