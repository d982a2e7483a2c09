package filter

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncerRunsLatestRequest(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var got atomic.Int32

	for i := 1; i <= 5; i++ {
		v := int32(i)
		d.Request(func() { got.Store(v) })
	}

	time.Sleep(80 * time.Millisecond)
	if got.Load() != 5 {
		t.Errorf("ran request %d, want latest (5)", got.Load())
	}
}

func TestDebouncerCoalesces(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var runs atomic.Int32

	for i := 0; i < 10; i++ {
		d.Request(func() { runs.Add(1) })
	}

	time.Sleep(80 * time.Millisecond)
	if runs.Load() != 1 {
		t.Errorf("runs = %d, want 1", runs.Load())
	}
}

func TestDebouncerZeroIntervalIsSynchronous(t *testing.T) {
	d := NewDebouncer(0)
	ran := false
	d.Request(func() { ran = true })
	if !ran {
		t.Error("zero-interval request did not run synchronously")
	}
}

func TestDebouncerFlush(t *testing.T) {
	d := NewDebouncer(time.Hour)
	ran := false
	d.Request(func() { ran = true })
	d.Flush()
	if !ran {
		t.Error("Flush did not run the pending request")
	}
}

func TestDebouncerStopDiscardsPending(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)
	var runs atomic.Int32
	d.Request(func() { runs.Add(1) })
	d.Stop()

	time.Sleep(50 * time.Millisecond)
	if runs.Load() != 0 {
		t.Errorf("stopped debouncer ran %d requests", runs.Load())
	}

	d.Request(func() { runs.Add(1) })
	time.Sleep(50 * time.Millisecond)
	if runs.Load() != 0 {
		t.Error("request accepted after Stop")
	}
}
