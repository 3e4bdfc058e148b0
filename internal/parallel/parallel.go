package parallel

import (
	"context"
	"sync"
)

// WorkerPool runs submitted jobs over a bounded set of workers. Used to fan
// out independent per-symbol predictions.
type WorkerPool struct {
	jobCh  chan func()
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.RWMutex
	closed bool
}

func NewWorkerPool(maxWorkers int) *WorkerPool {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	wp := &WorkerPool{
		jobCh:  make(chan func(), maxWorkers*2),
		ctx:    ctx,
		cancel: cancel,
	}
	for i := 0; i < maxWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker()
	}
	return wp
}

func (wp *WorkerPool) worker() {
	defer wp.wg.Done()
	for {
		select {
		case job, ok := <-wp.jobCh:
			if !ok {
				return
			}
			job()
		case <-wp.ctx.Done():
			return
		}
	}
}

// Submit queues a job. Dropped silently after Close.
func (wp *WorkerPool) Submit(job func()) {
	wp.mu.RLock()
	defer wp.mu.RUnlock()
	if wp.closed {
		return
	}
	select {
	case wp.jobCh <- job:
	case <-wp.ctx.Done():
	}
}

// Close stops accepting jobs and waits for the workers to drain.
func (wp *WorkerPool) Close() {
	wp.mu.Lock()
	if wp.closed {
		wp.mu.Unlock()
		return
	}
	wp.closed = true
	close(wp.jobCh)
	wp.mu.Unlock()

	wp.wg.Wait()
	wp.cancel()
}
