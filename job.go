package qket

import "time"

// Job is one unit of work for the pool, usually a single shot.
type Job struct {
	ID        string
	Fn        func() (any, error)
	TTL       time.Duration
	StartTime time.Time
}

// JobOption configures a job at scheduling time.
type JobOption func(*Job)

// WithTTL sets how long the job's result is kept once stored.
func WithTTL(ttl time.Duration) JobOption {
	return func(j *Job) {
		j.TTL = ttl
	}
}
