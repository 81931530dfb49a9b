package qket

import (
	"runtime"
	"time"
)

/*
Config tunes the batch runner. The simulation core itself has no settings:
its tolerances are package constants so every caller sees the same
invariants.
*/
type Config struct {
	Workers           int
	SchedulingTimeout time.Duration
	JobTTL            time.Duration
	CleanupInterval   time.Duration

	// TargetJobTime is the per-shot latency above which batches back off.
	TargetJobTime time.Duration
}

func NewConfig() *Config {
	return &Config{
		Workers:           runtime.NumCPU(),
		SchedulingTimeout: 10 * time.Second,
		JobTTL:            time.Minute,
		CleanupInterval:   time.Minute,
		TargetJobTime:     100 * time.Millisecond,
	}
}
