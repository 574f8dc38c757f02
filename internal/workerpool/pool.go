// Package workerpool is a fixed-size pool of goroutines that accept
// independent tasks and return future-like handles. It mirrors the
// original C++ thread pool's mutex+condition-variable queue exactly,
// including its one documented caveat: shutdown does not drain the
// queue, so any task still waiting when Close is called is abandoned
// rather than executed. Callers must await every submitted future
// before calling Close.
package workerpool

import (
	"errors"
	"runtime"
	"sync"
	"time"

	"github.com/julianvb03/GESA/internal/logging"
	"github.com/julianvb03/GESA/internal/metrics"
)

// ErrStopped is returned by Submit once the pool has been closed.
var ErrStopped = errors.New("workerpool: submit after shutdown")

// Pool is a fixed-size worker pool guarding a single task queue with a
// mutex and condition variable.
type Pool struct {
	mu      sync.Mutex
	cond    *sync.Cond
	tasks   []func()
	stopped bool
	wg      sync.WaitGroup

	workerCount int
}

// New starts a pool with the given worker count. A count of 0 means
// "use hardware parallelism, at least 1".
func New(count int) *Pool {
	if count <= 0 {
		count = runtime.GOMAXPROCS(0)
		if count < 1 {
			count = 1
		}
	}

	p := &Pool{workerCount: count}
	p.cond = sync.NewCond(&p.mu)

	p.wg.Add(count)
	for i := 0; i < count; i++ {
		go p.workerLoop()
	}
	logging.Logger.Debugf("workerpool: started with %d worker(s)", count)
	return p
}

// Size reports the number of worker goroutines in the pool.
func (p *Pool) Size() int {
	return p.workerCount
}

func (p *Pool) workerLoop() {
	defer p.wg.Done()
	for {
		p.mu.Lock()
		for len(p.tasks) == 0 && !p.stopped {
			p.cond.Wait()
		}
		if p.stopped {
			p.tasks = nil
			p.mu.Unlock()
			return
		}

		task := p.tasks[0]
		p.tasks = p.tasks[1:]
		p.mu.Unlock()

		task()
	}
}

// Close stops accepting new tasks, wakes every worker, and joins them.
// Tasks still sitting in the queue when workers wake are drained
// without execution — their futures were already populated with
// ErrStopped at submit time if submitted after Close, but a task
// submitted before Close that simply hasn't been dequeued yet when
// Close races ahead is the one genuine gap: callers are responsible
// for awaiting every future before calling Close.
func (p *Pool) Close() {
	p.mu.Lock()
	p.stopped = true
	drained := len(p.tasks)
	p.mu.Unlock()

	if drained > 0 {
		logging.Logger.Warnf("workerpool: closing with %d queued task(s) not yet dequeued; abandoning them", drained)
	}

	p.cond.Broadcast()
	p.wg.Wait()
	logging.Logger.Debugf("workerpool: closed, %d worker(s) joined", p.workerCount)
}

// Future is the handle returned by Submit. Get blocks until the task
// has run and returns its result or re-raises its error.
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Get blocks until the task completes.
func (f *Future[T]) Get() (T, error) {
	<-f.done
	return f.value, f.err
}

// Submit enqueues a nullary task and returns a future for its result.
// Submission after Close returns a future whose Get immediately
// returns ErrStopped.
func Submit[T any](p *Pool, task func() (T, error)) *Future[T] {
	future := &Future[T]{done: make(chan struct{})}

	wrapped := func() {
		start := time.Now()
		defer close(future.done)
		future.value, future.err = task()
		metrics.RecordPoolTaskDuration(time.Since(start))
	}

	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		logging.Logger.Debugf("workerpool: rejected submit after shutdown")
		metrics.RecordPoolTaskSubmitted(false)
		future.err = ErrStopped
		close(future.done)
		return future
	}
	p.tasks = append(p.tasks, wrapped)
	p.mu.Unlock()

	metrics.RecordPoolTaskSubmitted(true)
	p.cond.Signal()
	return future
}
