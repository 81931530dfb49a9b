package qket

import (
	"sync"
	"time"
)

/*
BackPressureRegulator limits shot intake from the depth of the pool's job
queue and how long recent jobs took against a target. Pressure is kept in
[0, 1]; intake is limited from 0.8 upward.
*/
type BackPressureRegulator struct {
	mu sync.RWMutex

	maxQueueSize    int
	targetJobTime   time.Duration
	currentPressure float64
	metrics         *Metrics
}

func NewBackPressureRegulator(maxQueueSize int, targetJobTime time.Duration) *BackPressureRegulator {
	return &BackPressureRegulator{
		maxQueueSize:  max(maxQueueSize, 1),
		targetJobTime: targetJobTime,
	}
}

func (bp *BackPressureRegulator) Observe(metrics *Metrics) {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	bp.metrics = metrics
	bp.updatePressure()
}

func (bp *BackPressureRegulator) Limit() bool {
	bp.mu.RLock()
	defer bp.mu.RUnlock()
	return bp.currentPressure >= 0.8
}

// Renormalize steps pressure down while the queue is under half full.
func (bp *BackPressureRegulator) Renormalize() {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	if bp.metrics == nil {
		bp.currentPressure = 0
		return
	}

	bp.metrics.mu.RLock()
	queued := bp.metrics.JobQueueSize
	bp.metrics.mu.RUnlock()

	if queued < bp.maxQueueSize/2 {
		bp.currentPressure = max(0.0, bp.currentPressure-0.1)
	}
}

func (bp *BackPressureRegulator) updatePressure() {
	if bp.metrics == nil {
		return
	}

	bp.metrics.mu.RLock()
	queued := bp.metrics.JobQueueSize
	latency := bp.metrics.AverageJobLatency
	bp.metrics.mu.RUnlock()

	queuePressure := float64(queued) / float64(bp.maxQueueSize)

	timingPressure := 0.0
	if latency > 0 && bp.targetJobTime > 0 {
		timingPressure = float64(latency) / float64(bp.targetJobTime)
	}

	bp.currentPressure = min(1.0, max(0.0, queuePressure*0.6+timingPressure*0.4))
}

// GetPressure returns the current pressure level.
func (bp *BackPressureRegulator) GetPressure() float64 {
	bp.mu.RLock()
	defer bp.mu.RUnlock()
	return bp.currentPressure
}
