package engine

import "sync"

// worker is a single goroutine with a one-task mailbox: a task slot, a
// busy flag, and two condition variables (one signaled when a task
// arrives, one signaled when the worker goes idle again). A busy-wait
// spinlock isn't an idiomatic Go primitive, so sync.Mutex/sync.Cond cover
// the handshake directly instead.
type worker struct {
	mu      sync.Mutex
	taskCV  *sync.Cond
	idleCV  *sync.Cond
	task    func()
	busy    bool
	running bool
}

func newWorker() *worker {
	w := &worker{running: true}
	w.taskCV = sync.NewCond(&w.mu)
	w.idleCV = sync.NewCond(&w.mu)
	go w.run()
	return w
}

func (w *worker) run() {
	for {
		w.mu.Lock()
		for w.task == nil && w.running {
			w.taskCV.Wait()
		}
		if !w.running && w.task == nil {
			w.mu.Unlock()
			return
		}
		task := w.task
		w.task = nil
		w.mu.Unlock()

		task()

		w.mu.Lock()
		w.busy = false
		w.idleCV.Signal()
		w.mu.Unlock()
	}
}

// execute hands the worker a task, silently no-opping if the worker is
// already busy (the caller is expected to only ever assign one strip per
// worker per frame).
func (w *worker) execute(task func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.busy {
		return
	}
	w.busy = true
	w.task = task
	w.taskCV.Signal()
}

// wait blocks until the worker's current task (if any) has completed.
func (w *worker) wait() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for w.busy {
		w.idleCV.Wait()
	}
}

func (w *worker) stop() {
	w.mu.Lock()
	w.running = false
	w.mu.Unlock()
	w.taskCV.Signal()
}

// WorkerPool is a fixed-size pool of worker goroutines that divides a
// frame's strips across them and dispatches-then-joins once per frame.
type WorkerPool struct {
	workers []*worker
}

// NewWorkerPool starts n worker goroutines. n must be >= 1.
func NewWorkerPool(n int) *WorkerPool {
	if n < 1 {
		n = 1
	}
	p := &WorkerPool{workers: make([]*worker, n)}
	for i := range p.workers {
		p.workers[i] = newWorker()
	}
	return p
}

// Run dispatches each task to a worker round-robin and blocks until every
// task has completed. Len(tasks) need not equal len(workers); extra tasks
// beyond the worker count are sequenced after the pool catches up to the
// front of the round.
func (p *WorkerPool) Run(tasks []func()) {
	for i := 0; i < len(tasks); i += len(p.workers) {
		end := i + len(p.workers)
		if end > len(tasks) {
			end = len(tasks)
		}
		for j, t := range tasks[i:end] {
			p.workers[j].execute(t)
		}
		for j := range tasks[i:end] {
			p.workers[j].wait()
		}
	}
}

// Close stops every worker goroutine. The pool must not be used afterward.
func (p *WorkerPool) Close() {
	for _, w := range p.workers {
		w.stop()
	}
}
