package parallel

import (
	"errors"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/gogpu/tess"
)

// ErrClosed is returned when work is submitted to a closed pool.
var ErrClosed = errors.New("parallel: pool is closed")

// Worker is the per-goroutine state handed to every job. Tessellators keep
// scratch buffers and are not safe for concurrent use, so each worker owns
// its own pair.
type Worker struct {
	ID     int
	Fill   *tess.FillTessellator
	Stroke *tess.StrokeTessellator
}

// Job is a unit of work run on one worker.
type Job func(w *Worker)

// Pool is a pool of goroutines for parallel tessellation.
//
// The pool distributes jobs across multiple workers, each with their own
// queue. Workers steal jobs from other workers when their own queue is
// empty, which balances load when some paths are much larger than others.
//
// Thread safety: Pool is safe for concurrent use.
type Pool struct {
	workers []*Worker

	// queues holds per-worker job queues.
	queues []chan Job

	// done signals workers to stop.
	done chan struct{}

	// wg waits for all workers to finish.
	wg sync.WaitGroup

	// running indicates whether the pool is accepting work.
	running atomic.Bool

	completed atomic.Uint64
}

// NewPool creates a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
// The pool starts immediately and workers begin waiting for work.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := max(workers*4, 8)

	p := &Pool{
		workers: make([]*Worker, workers),
		queues:  make([]chan Job, workers),
		done:    make(chan struct{}),
	}
	for i := range workers {
		p.workers[i] = &Worker{
			ID:     i,
			Fill:   tess.NewFillTessellator(),
			Stroke: tess.NewStrokeTessellator(),
		}
		p.queues[i] = make(chan Job, queueSize)
	}

	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.loop(i)
	}

	tess.Logger().Debug("parallel: pool started", "workers", workers)
	return p
}

// loop is the main loop for each worker goroutine.
func (p *Pool) loop(id int) {
	defer p.wg.Done()

	w := p.workers[id]
	own := p.queues[id]

	for {
		select {
		case <-p.done:
			p.drain(w, own)
			return

		case job := <-own:
			p.run(w, job)

		default:
			if stolen := p.steal(id); stolen != nil {
				p.run(w, stolen)
				continue
			}
			// Nothing anywhere: block on the own queue.
			select {
			case <-p.done:
				p.drain(w, own)
				return
			case job := <-own:
				p.run(w, job)
			}
		}
	}
}

func (p *Pool) run(w *Worker, job Job) {
	if job != nil {
		job(w)
		p.completed.Add(1)
	}
}

// drain executes all remaining jobs in a queue.
func (p *Pool) drain(w *Worker, queue chan Job) {
	for {
		select {
		case job := <-queue:
			p.run(w, job)
		default:
			return
		}
	}
}

// steal takes a job from another worker's queue, or returns nil.
func (p *Pool) steal(self int) Job {
	for i := range p.queues {
		if i == self {
			continue
		}
		select {
		case job := <-p.queues[i]:
			return job
		default:
		}
	}
	return nil
}

// ExecuteAll distributes jobs round-robin across workers and waits for all
// of them to complete.
func (p *Pool) ExecuteAll(jobs []Job) error {
	if !p.running.Load() {
		return ErrClosed
	}
	if len(jobs) == 0 {
		return nil
	}

	var pending sync.WaitGroup
	pending.Add(len(jobs))

	for i, job := range jobs {
		wrapped := func(w *Worker) {
			defer pending.Done()
			if job != nil {
				job(w)
			}
		}

		// May block while the queue is full.
		select {
		case p.queues[i%len(p.queues)] <- wrapped:
		case <-p.done:
			pending.Done()
		}
	}

	pending.Wait()
	return nil
}

// Close stops accepting work, waits for queued jobs to complete and then
// stops all workers. Close is safe to call multiple times.
func (p *Pool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
	tess.Logger().Debug("parallel: pool stopped", "jobs", p.completed.Load())
}

// Workers returns the number of workers in the pool.
func (p *Pool) Workers() int {
	return len(p.workers)
}

// IsRunning returns true if the pool is still accepting work.
func (p *Pool) IsRunning() bool {
	return p.running.Load()
}

// Completed returns the number of jobs run so far.
func (p *Pool) Completed() uint64 {
	return p.completed.Load()
}
