package engine

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestWorkerPoolRunsAllTasks(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var count int64
	tasks := make([]func(), 37)
	for i := range tasks {
		tasks[i] = func() { atomic.AddInt64(&count, 1) }
	}

	pool.Run(tasks)

	if got := atomic.LoadInt64(&count); got != int64(len(tasks)) {
		t.Errorf("ran %d tasks, want %d", got, len(tasks))
	}
}

func TestWorkerPoolRunBlocksUntilComplete(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	var done int32
	tasks := []func(){
		func() { time.Sleep(20 * time.Millisecond); atomic.StoreInt32(&done, 1) },
	}
	pool.Run(tasks)

	if atomic.LoadInt32(&done) != 1 {
		t.Error("Run returned before its task finished")
	}
}

func TestWorkerPoolClampsZeroSize(t *testing.T) {
	pool := NewWorkerPool(0)
	defer pool.Close()

	if len(pool.workers) != 1 {
		t.Errorf("NewWorkerPool(0) produced %d workers, want 1", len(pool.workers))
	}
}

func TestWorkerExecuteNoopsWhenBusy(t *testing.T) {
	w := newWorker()
	defer w.stop()

	block := make(chan struct{})
	var ran int32
	w.execute(func() { <-block })
	w.execute(func() { atomic.AddInt32(&ran, 1) }) // dropped: worker already busy

	close(block)
	w.wait()

	if atomic.LoadInt32(&ran) != 0 {
		t.Error("second execute should have been a no-op while the worker was busy")
	}
}
