package harness

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/theapemachine/errnie"
)

// ErrPoolClosed is delivered for jobs scheduled after Close.
var ErrPoolClosed = errors.New("pool closed")

/*
Pool runs independent jobs on a fixed set of workers. Each job owns all of
its state; the pool only moves closures and results around.
*/
type Pool struct {
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	workers    chan chan Job
	jobs       chan Job
	space      *Space
	metrics    *Metrics
	workerMu   sync.Mutex
	workerList []*Worker
	config     *Config
	closeOnce  sync.Once
}

func NewPool(ctx context.Context, config *Config) *Pool {
	config = config.orDefault()
	workers := max(1, config.Workers)

	ctx, cancel := context.WithCancel(ctx)
	p := &Pool{
		ctx:        ctx,
		cancel:     cancel,
		workers:    make(chan chan Job, workers),
		jobs:       make(chan Job, workers*10),
		space:      NewSpace(config.ResultTTL),
		metrics:    NewMetrics(),
		workerList: make([]*Worker, 0, workers),
		config:     config,
	}

	for i := 0; i < workers; i++ {
		p.startWorker()
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.manage()
	}()

	errnie.Info("NewPool - workers %d", workers)
	return p
}

func (p *Pool) manage() {
	for {
		select {
		case <-p.ctx.Done():
			return
		case job := <-p.jobs:
			select {
			case <-p.ctx.Done():
				p.space.Store(job.ID, nil, ErrPoolClosed, job.TTL)
				return
			case workerChan := <-p.workers:
				select {
				case workerChan <- job:
				case <-p.ctx.Done():
					p.space.Store(job.ID, nil, ErrPoolClosed, job.TTL)
					return
				}
			case <-time.After(p.config.SchedulingTimeout):
				errnie.Info("Pool.manage - no available workers for job %s", job.ID)
				p.metrics.recordSchedulingFailure()
				p.space.Store(job.ID, nil, fmt.Errorf("no available workers for job %s", job.ID), job.TTL)
			}
		}
	}
}

/*
Schedule queues fn under id and returns a channel that receives its result
exactly once.
*/
func (p *Pool) Schedule(id string, fn func() (any, error), opts ...JobOption) <-chan Value {
	job := Job{
		ID:          id,
		Fn:          fn,
		RetryPolicy: defaultRetryPolicy(),
		TTL:         p.config.ResultTTL,
		StartTime:   time.Now(),
	}

	for _, opt := range opts {
		opt(&job)
	}

	result := p.space.Await(id)

	if p.ctx.Err() != nil {
		p.space.Store(id, nil, ErrPoolClosed, job.TTL)
		return result
	}

	timer := time.NewTimer(p.config.SchedulingTimeout)
	defer timer.Stop()

	select {
	case p.jobs <- job:
	case <-p.ctx.Done():
		p.space.Store(id, nil, ErrPoolClosed, job.TTL)
	case <-timer.C:
		p.metrics.recordSchedulingFailure()
		p.space.Store(id, nil, fmt.Errorf("job scheduling timeout for %s", id), job.TTL)
	}

	return result
}

// Metrics returns the live metrics of the pool.
func (p *Pool) Metrics() *Metrics {
	p.metrics.mu.Lock()
	p.metrics.JobQueueSize = len(p.jobs)
	p.metrics.mu.Unlock()
	return p.metrics
}

func (p *Pool) startWorker() {
	worker := &Worker{
		pool: p,
		jobs: make(chan Job),
	}

	p.workerMu.Lock()
	p.workerList = append(p.workerList, worker)
	p.workerMu.Unlock()

	p.metrics.mu.Lock()
	p.metrics.WorkerCount++
	p.metrics.mu.Unlock()

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		worker.run(p.ctx)
	}()
}

// Close cancels outstanding work and waits for every goroutine to exit.
func (p *Pool) Close() {
	if p == nil {
		return
	}

	p.closeOnce.Do(func() {
		p.cancel()
		p.wg.Wait()

		// Jobs still queued never reached a worker.
		for drained := false; !drained; {
			select {
			case job := <-p.jobs:
				p.space.Store(job.ID, nil, ErrPoolClosed, job.TTL)
			default:
				drained = true
			}
		}

		p.space.Close()
		errnie.Info("Pool closed")
	})
}
