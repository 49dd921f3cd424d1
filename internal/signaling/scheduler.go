package signaling

import (
	"sync"
	"time"
)

// DefaultIdleTimeout is how long an unpaired room may wait for its callee.
const DefaultIdleTimeout = 5 * time.Minute

// ExpireFunc is called from the timer goroutine when a room's idle timeout
// elapses. The token identifies the scheduled occurrence; pass it to Claim
// before acting on it.
type ExpireFunc func(code string, token uint64)

type expiry struct {
	timer *time.Timer
	token uint64
}

// Scheduler keeps at most one pending expiry per room code. All timers live
// in one table so cancellation happens in one place.
type Scheduler struct {
	mu      sync.Mutex
	timeout time.Duration
	timers  map[string]expiry
	next    uint64
}

// NewScheduler creates a Scheduler firing after timeout. A non-positive
// timeout selects DefaultIdleTimeout.
func NewScheduler(timeout time.Duration) *Scheduler {
	if timeout <= 0 {
		timeout = DefaultIdleTimeout
	}
	return &Scheduler{
		timeout: timeout,
		timers:  make(map[string]expiry),
	}
}

// Timeout returns the idle timeout.
func (s *Scheduler) Timeout() time.Duration {
	return s.timeout
}

// Schedule replaces any pending expiry for code with a new one that calls
// onExpire after the idle timeout.
func (s *Scheduler) Schedule(code string, onExpire ExpireFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.timers[code]; ok {
		prev.timer.Stop()
	}

	s.next++
	token := s.next
	s.timers[code] = expiry{
		token: token,
		timer: time.AfterFunc(s.timeout, func() { onExpire(code, token) }),
	}
}

// Cancel stops and discards the pending expiry for code, if any.
func (s *Scheduler) Cancel(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.timers[code]; ok {
		e.timer.Stop()
		delete(s.timers, code)
	}
}

// Claim consumes the pending expiry for code if it is still the occurrence
// identified by token. A timer that was cancelled or replaced after it fired
// cannot be claimed.
func (s *Scheduler) Claim(code string, token uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.timers[code]
	if !ok || e.token != token {
		return false
	}
	delete(s.timers, code)
	return true
}

// Pending reports whether code has a live expiry.
func (s *Scheduler) Pending(code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.timers[code]
	return ok
}

// Stop cancels every pending expiry.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for code, e := range s.timers {
		e.timer.Stop()
		delete(s.timers, code)
	}
}
