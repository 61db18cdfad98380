package harness

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/theapemachine/errnie"
)

// ErrJobTimeout is stored as the result of a job that outlived JobTimeout.
var ErrJobTimeout = errors.New("job timed out")

// Worker processes jobs
type Worker struct {
	pool *Pool
	jobs chan Job
}

func (w *Worker) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case w.pool.workers <- w.jobs:
		}

		select {
		case <-ctx.Done():
			return
		case job := <-w.jobs:
			w.handle(ctx, job)
		}
	}
}

func (w *Worker) handle(ctx context.Context, job Job) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		result, err := w.processJob(ctx, job)
		w.pool.space.Store(job.ID, result, err, job.TTL)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		w.pool.space.Store(job.ID, nil, ctx.Err(), job.TTL)
	case <-time.After(w.pool.config.JobTimeout):
		errnie.Info("Worker.handle - job %s timed out after %v", job.ID, w.pool.config.JobTimeout)
		w.pool.space.Store(job.ID, nil, fmt.Errorf("%w: %s after %v", ErrJobTimeout, job.ID, w.pool.config.JobTimeout), job.TTL)
	}
}

func (w *Worker) processJob(ctx context.Context, job Job) (any, error) {
	result, err := w.executeWithRetries(ctx, job)
	w.pool.metrics.recordJobExecution(job.StartTime, err == nil)

	if err != nil {
		return nil, err
	}
	return result, nil
}

func (w *Worker) executeWithRetries(ctx context.Context, job Job) (any, error) {
	policy := job.RetryPolicy
	if policy == nil {
		policy = defaultRetryPolicy()
	}

	attempts := max(1, policy.MaxAttempts)

	for job.Attempt = 0; job.Attempt < attempts; job.Attempt++ {
		if job.Attempt > 0 {
			delay := policy.Strategy.NextDelay(job.Attempt)
			errnie.Info("Job %s retrying attempt %d after %v", job.ID, job.Attempt+1, delay)
			w.pool.metrics.recordRetry()

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		result, err := job.Fn()
		if err == nil {
			return result, nil
		}

		job.LastError = err
		if policy.Filter != nil && !policy.Filter(err) {
			break
		}
	}

	return nil, fmt.Errorf("job %s failed after %d attempt(s): %w", job.ID, min(job.Attempt+1, attempts), job.LastError)
}
