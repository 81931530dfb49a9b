package qket

import (
	"fmt"

	"github.com/theapemachine/errnie"
)

// Worker processes jobs handed to it by the pool's manager.
type Worker struct {
	pool *Q
	jobs chan Job
}

/*
run offers the worker's job channel to the pool, waits for a job, runs it and
stores the result, until the pool's context is cancelled.
*/
func (w *Worker) run() {
	ctx := w.pool.ctx

	for {
		select {
		case <-ctx.Done():
			return
		case w.pool.workers <- w.jobs:
			select {
			case <-ctx.Done():
				return
			case job := <-w.jobs:
				result, err := w.processJob(job)
				w.pool.space.Store(job.ID, result, err, job.TTL)
			}
		}
	}
}

// processJob runs the job once. A panicking job fails instead of taking the pool down.
func (w *Worker) processJob(job Job) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			errnie.Info("job %s panicked: %v", job.ID, r)
			result, err = nil, fmt.Errorf("job %s panicked: %v", job.ID, r)
		}
		w.pool.metrics.recordJobExecution(job.StartTime, err == nil)
	}()

	return job.Fn()
}
