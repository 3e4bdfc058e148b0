package parallel

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestPoolRunsAllJobs(t *testing.T) {
	var done atomic.Int64
	pool := NewWorkerPool(4)
	for i := 0; i < 100; i++ {
		pool.Submit(func() { done.Add(1) })
	}
	pool.Close()

	if done.Load() != 100 {
		t.Errorf("Expected 100 completed jobs, got %d", done.Load())
	}
}

func TestPoolSingleWorkerOrdering(t *testing.T) {
	var got []int
	pool := NewWorkerPool(1)
	for i := 0; i < 10; i++ {
		i := i
		pool.Submit(func() { got = append(got, i) })
	}
	pool.Close()

	if len(got) != 10 {
		t.Fatalf("Expected 10 jobs, got %d", len(got))
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("Single worker must preserve submit order, got %v", got)
		}
	}
}

func TestPoolSubmitAfterClose(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()

	ran := false
	pool.Submit(func() { ran = true }) // must not panic
	if ran {
		t.Error("Job submitted after Close must be dropped")
	}
	pool.Close() // idempotent
}

func TestPoolConcurrentSubmitAndClose(t *testing.T) {
	var done atomic.Int64
	pool := NewWorkerPool(2)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				pool.Submit(func() { done.Add(1) })
			}
		}()
	}
	pool.Close()
	wg.Wait()

	// Jobs accepted before Close all ran; later ones were dropped, not lost
	// to a panic.
	if done.Load() > 8*50 {
		t.Errorf("More jobs ran than were submitted: %d", done.Load())
	}
}

func TestPoolClampsWorkerCount(t *testing.T) {
	pool := NewWorkerPool(0)
	ran := false
	pool.Submit(func() { ran = true })
	pool.Close()
	if !ran {
		t.Error("Pool with clamped worker count should still run jobs")
	}
}
