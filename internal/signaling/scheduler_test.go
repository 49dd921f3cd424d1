package signaling

import (
	"sync"
	"testing"
	"time"
)

type fireLog struct {
	mu     sync.Mutex
	tokens []uint64
}

func (l *fireLog) record(_ string, token uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tokens = append(l.tokens, token)
}

func (l *fireLog) snapshot() []uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]uint64(nil), l.tokens...)
}

func TestSchedulerDefaultTimeout(t *testing.T) {
	if got := NewScheduler(0).Timeout(); got != DefaultIdleTimeout {
		t.Errorf("expected %s, got %s", DefaultIdleTimeout, got)
	}
	if DefaultIdleTimeout != 5*time.Minute {
		t.Errorf("idle timeout should be five minutes, got %s", DefaultIdleTimeout)
	}
}

func TestSchedulerFiresOnce(t *testing.T) {
	s := NewScheduler(10 * time.Millisecond)
	var log fireLog

	s.Schedule("ABC", log.record)
	time.Sleep(60 * time.Millisecond)

	fired := log.snapshot()
	if len(fired) != 1 {
		t.Fatalf("expected one firing, got %d", len(fired))
	}
	if !s.Claim("ABC", fired[0]) {
		t.Error("expected fired token to be claimable")
	}
	if s.Claim("ABC", fired[0]) {
		t.Error("a token can be claimed only once")
	}
	if s.Pending("ABC") {
		t.Error("claimed expiry should no longer be pending")
	}
}

func TestSchedulerCancelPreventsFiring(t *testing.T) {
	s := NewScheduler(20 * time.Millisecond)
	var log fireLog

	s.Schedule("ABC", log.record)
	s.Cancel("ABC")
	s.Cancel("ABC") // no-op
	s.Cancel("missing")
	time.Sleep(60 * time.Millisecond)

	if n := len(log.snapshot()); n != 0 {
		t.Errorf("cancelled timer fired %d times", n)
	}
	if s.Pending("ABC") {
		t.Error("cancelled expiry should not be pending")
	}
}

func TestSchedulerRescheduleReplaces(t *testing.T) {
	s := NewScheduler(30 * time.Millisecond)
	var log fireLog

	s.Schedule("ABC", log.record)
	s.Schedule("ABC", log.record)
	time.Sleep(90 * time.Millisecond)

	fired := log.snapshot()
	if len(fired) != 1 {
		t.Fatalf("expected only the replacement to fire, got %d firings", len(fired))
	}
	if fired[0] != 2 {
		t.Errorf("expected the second token to fire, got %d", fired[0])
	}
	if s.Claim("ABC", 1) {
		t.Error("replaced token must not be claimable")
	}
	if !s.Claim("ABC", 2) {
		t.Error("current token should be claimable")
	}
}

func TestSchedulerStop(t *testing.T) {
	s := NewScheduler(20 * time.Millisecond)
	var log fireLog

	s.Schedule("a", log.record)
	s.Schedule("b", log.record)
	s.Stop()
	time.Sleep(60 * time.Millisecond)

	if n := len(log.snapshot()); n != 0 {
		t.Errorf("stopped timers fired %d times", n)
	}
	if s.Pending("a") || s.Pending("b") {
		t.Error("stop should clear the table")
	}
}
