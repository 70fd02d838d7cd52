package guard

import (
	"sync"
	"time"

	"github.com/mysoltrk/mysoltrk-go/pkg/log"
)

// Session is a tracking work period bounded by the maximum work time.
// Boards without tracking limits never expire a session.
type Session struct {
	guard *Guard
	start time.Time

	mu      sync.Mutex
	expired bool
}

// StartedAt returns when the session began.
func (s *Session) StartedAt() time.Time {
	return s.start
}

// Elapsed returns the time since the session began.
func (s *Session) Elapsed() time.Duration {
	return s.guard.now().Sub(s.start)
}

// Expired reports whether the session ran past the maximum work time.
// The first expiry is logged; the session stays expired afterwards.
func (s *Session) Expired() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.expired {
		return true
	}
	elapsed := s.guard.now().Sub(s.start)
	if !s.guard.limits.IsWorkSessionExpired(elapsed) {
		return false
	}
	s.expired = true

	t, _ := s.guard.limits.Tracking()
	s.guard.logger.Log(log.Event{
		Timestamp: s.guard.now(),
		Profile:   s.guard.profile,
		Kind:      log.KindSessionExpired,
		Reason:    log.ReasonWorkExpired,
		Threshold: t.MaxWork.Milliseconds(),
		Elapsed:   elapsed,
	})
	return true
}

// Remaining returns the work time left, zero once expired. It returns -1
// when the board has no maximum work time.
func (s *Session) Remaining() time.Duration {
	t, ok := s.guard.limits.Tracking()
	if !ok || t.MaxWork <= 0 {
		return -1
	}
	left := t.MaxWork - s.Elapsed()
	if left < 0 {
		return 0
	}
	return left
}

// SleepDelay returns how long to pause before the next session.
func (s *Session) SleepDelay() time.Duration {
	return s.guard.limits.SleepDelay()
}
