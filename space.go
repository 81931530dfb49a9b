package qket

import (
	"sync"
	"time"

	"github.com/theapemachine/errnie"
)

// Result wraps a job's return value with its metadata.
type Result struct {
	Value     any
	Error     error
	CreatedAt time.Time
	TTL       time.Duration
}

/*
Space holds job results until someone collects them. Await may be called
before or after the matching Store; either way the caller's channel receives
the result exactly once and is then closed.
*/
type Space struct {
	mu      sync.Mutex
	values  map[string]Result
	waiting map[string][]chan Result
	done    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
}

func NewSpace(cleanupInterval time.Duration) *Space {
	s := &Space{
		values:  make(map[string]Result),
		waiting: make(map[string][]chan Result),
		done:    make(chan struct{}),
	}

	if cleanupInterval <= 0 {
		cleanupInterval = time.Minute
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.cleanup(cleanupInterval)
	}()

	return s
}

// Store records a result and hands it to everyone already waiting on id.
func (s *Space) Store(id string, value any, err error, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := Result{
		Value:     value,
		Error:     err,
		CreatedAt: time.Now(),
		TTL:       ttl,
	}
	s.values[id] = r

	if channels, ok := s.waiting[id]; ok {
		for _, ch := range channels {
			ch <- r
			close(ch)
		}
		delete(s.waiting, id)
	}

	if err != nil {
		errnie.Info("stored failed result for job %s: %v", id, err)
	}
}

// Await returns a channel that receives the result for id once it is stored.
func (s *Space) Await(id string) chan Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan Result, 1)

	if r, ok := s.values[id]; ok {
		ch <- r
		close(ch)
		return ch
	}

	s.waiting[id] = append(s.waiting[id], ch)
	return ch
}

// Delete drops a collected result.
func (s *Space) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, id)
}

// Len returns the number of stored results.
func (s *Space) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.values)
}

func (s *Space) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.mu.Lock()
			s.cleanupExpired(time.Now())
			s.mu.Unlock()
		}
	}
}

// cleanupExpired drops results past their TTL. A zero TTL never expires.
func (s *Space) cleanupExpired(now time.Time) {
	for id, r := range s.values {
		if r.TTL > 0 && now.Sub(r.CreatedAt) > r.TTL {
			delete(s.values, id)
		}
	}
}

// Close stops the cleanup loop. Stored results stay readable.
func (s *Space) Close() {
	s.once.Do(func() {
		close(s.done)
	})
	s.wg.Wait()
}
