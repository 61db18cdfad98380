package harness

import (
	"sync"
	"time"

	"github.com/theapemachine/errnie"
)

// Value wraps a job result with metadata
type Value struct {
	Value     any
	Error     error
	CreatedAt time.Time
	TTL       time.Duration
}

/*
Space holds finished job results and hands them to whoever awaits them.
The first result stored for an ID wins; later stores are dropped.
*/
type Space struct {
	mu      sync.Mutex
	values  map[string]Value
	waiting map[string][]chan Value
	done    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
}

func NewSpace(sweep time.Duration) *Space {
	s := &Space{
		values:  make(map[string]Value),
		waiting: make(map[string][]chan Value),
		done:    make(chan struct{}),
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.cleanup(sweep)
	}()

	return s
}

// Store records a result and wakes every waiter for id.
func (s *Space) Store(id string, value any, err error, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.values[id]; ok {
		errnie.Info("Space.Store - dropping duplicate result for job %s", id)
		return
	}

	v := Value{
		Value:     value,
		Error:     err,
		CreatedAt: time.Now(),
		TTL:       ttl,
	}
	s.values[id] = v

	for _, ch := range s.waiting[id] {
		ch <- v
		close(ch)
	}
	delete(s.waiting, id)
}

// Await returns a channel that will receive the value when it's available
func (s *Space) Await(id string) chan Value {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan Value, 1)

	if v, ok := s.values[id]; ok {
		ch <- v
		close(ch)
		return ch
	}

	s.waiting[id] = append(s.waiting[id], ch)
	return ch
}

// Len returns the number of stored results.
func (s *Space) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.values)
}

func (s *Space) cleanup(sweep time.Duration) {
	if sweep <= 0 {
		sweep = time.Minute
	}

	ticker := time.NewTicker(sweep)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.mu.Lock()
			s.cleanupExpiredValues(time.Now())
			s.mu.Unlock()
		}
	}
}

func (s *Space) cleanupExpiredValues(now time.Time) {
	for id, v := range s.values {
		if v.TTL > 0 && now.Sub(v.CreatedAt) > v.TTL {
			delete(s.values, id)
		}
	}
}

// Close stops the cleanup goroutine.
func (s *Space) Close() {
	s.once.Do(func() {
		close(s.done)
	})
	s.wg.Wait()
}
