package qket

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/theapemachine/errnie"
)

// ErrPoolClosed is returned for work scheduled on, or stranded in, a closed pool.
var ErrPoolClosed = errors.New("qket: pool closed")

/*
Q is a fixed-size worker pool for running independent simulations in
parallel. Each job owns its System outright, so workers share no mutable
simulation state and need no locking around it.
*/
type Q struct {
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	workers chan chan Job
	jobs    chan Job
	space   *Space
	metrics *Metrics
	config  *Config
	once    sync.Once
}

// NewQ starts a pool. workers <= 0 falls back to config.Workers; a nil config uses NewConfig.
func NewQ(ctx context.Context, workers int, config *Config) *Q {
	if config == nil {
		config = NewConfig()
	}
	if workers <= 0 {
		workers = max(config.Workers, 1)
	}

	ctx, cancel := context.WithCancel(ctx)
	q := &Q{
		ctx:     ctx,
		cancel:  cancel,
		jobs:    make(chan Job, workers*10),
		workers: make(chan chan Job, workers),
		space:   NewSpace(config.CleanupInterval),
		metrics: NewMetrics(),
		config:  config,
	}

	for i := 0; i < workers; i++ {
		q.startWorker()
	}

	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		q.manage()
	}()

	errnie.Info("NewQ - started %d workers", workers)
	return q
}

// manage hands each queued job to the next idle worker.
func (q *Q) manage() {
	for {
		select {
		case <-q.ctx.Done():
			return
		case job := <-q.jobs:
			q.metrics.setQueueSize(len(q.jobs))

			select {
			case <-q.ctx.Done():
				return
			case workerChan := <-q.workers:
				select {
				case workerChan <- job:
				case <-q.ctx.Done():
					return
				}
			}
		}
	}
}

/*
Schedule queues fn under id and returns a channel that receives its result.
If the queue stays full past the scheduling timeout, or the pool is closed,
the channel carries the error instead.
*/
func (q *Q) Schedule(id string, fn func() (any, error), opts ...JobOption) chan Result {
	ctx, cancel := context.WithTimeout(q.ctx, q.getSchedulingTimeout())
	defer cancel()

	job := Job{
		ID:        id,
		Fn:        fn,
		TTL:       q.config.JobTTL,
		StartTime: time.Now(),
	}

	for _, opt := range opts {
		opt(&job)
	}

	if err := q.ctx.Err(); err != nil {
		return failedResult(fmt.Errorf("%w: %w", ErrPoolClosed, err))
	}

	select {
	case q.jobs <- job:
		q.metrics.setQueueSize(len(q.jobs))
		return q.space.Await(id)
	case <-ctx.Done():
		if q.ctx.Err() != nil {
			return failedResult(fmt.Errorf("%w: %w", ErrPoolClosed, q.ctx.Err()))
		}
		return failedResult(fmt.Errorf("job scheduling timeout: %w", ctx.Err()))
	}
}

func failedResult(err error) chan Result {
	ch := make(chan Result, 1)
	ch <- Result{Error: err, CreatedAt: time.Now()}
	close(ch)
	return ch
}

// Metrics returns a copy of the pool's counters.
func (q *Q) Metrics() map[string]any {
	return q.metrics.ExportMetrics()
}

func (q *Q) startWorker() {
	worker := &Worker{
		pool: q,
		jobs: make(chan Job),
	}

	q.metrics.mu.Lock()
	q.metrics.WorkerCount++
	q.metrics.mu.Unlock()

	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		worker.run()
	}()
}

func (q *Q) getSchedulingTimeout() time.Duration {
	if q.config != nil && q.config.SchedulingTimeout > 0 {
		return q.config.SchedulingTimeout
	}
	return 5 * time.Second
}

// Close cancels the pool and waits for the manager and every worker to stop.
func (q *Q) Close() {
	if q == nil {
		return
	}

	q.once.Do(func() {
		q.cancel()
		q.wg.Wait()
		q.space.Close()
		errnie.Info("Q closed")
	})
}
