package guard

import (
	"fmt"
	"sync"
	"time"

	"github.com/mysoltrk/mysoltrk-go/pkg/limits"
	"github.com/mysoltrk/mysoltrk-go/pkg/log"
	"github.com/mysoltrk/mysoltrk-go/pkg/sampling"
)

// Movement is one run of an actuator, from Begin to End.
type Movement struct {
	guard *Guard
	id    string
	side  limits.Side
	start time.Time

	mu      sync.Mutex
	stopped Verdict
	ended   bool
}

// ID returns the movement identifier used in events.
func (m *Movement) ID() string {
	return m.id
}

// Side returns the motor being moved.
func (m *Movement) Side() limits.Side {
	return m.side
}

// StartedAt returns when the movement began.
func (m *Movement) StartedAt() time.Time {
	return m.start
}

// Elapsed returns the time since the movement began.
func (m *Movement) Elapsed() time.Duration {
	return m.guard.now().Sub(m.start)
}

// Stopped returns the stop verdict of the movement, or VerdictContinue while
// it has not been stopped.
func (m *Movement) Stopped() Verdict {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopped
}

// Check evaluates readings taken now.
func (m *Movement) Check(shunt, vref int) Verdict {
	return m.Evaluate(m.Elapsed(), shunt, vref)
}

// Evaluate evaluates readings taken elapsed after the movement began.
// Once a stop verdict has been returned, every later call returns the same
// verdict without looking at the readings. An ended movement that was not
// stopped always evaluates to VerdictContinue.
func (m *Movement) Evaluate(elapsed time.Duration, shunt, vref int) Verdict {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.stopped.Stop() {
		return m.stopped
	}
	if m.ended {
		return VerdictContinue
	}

	v := m.guard.evaluate(m.side, elapsed, shunt, vref)
	if v.Stop() {
		m.stopped = v
		m.logTrip(v, elapsed, shunt, vref)
	}
	return v
}

// Poll reads averaged samples from the shunt and vref sources and evaluates
// them. Sources are not read when the outcome does not depend on them
// (timeout or guard window). Elapsed time is measured again after sampling,
// so a slow ADC cannot postpone a timeout.
func (m *Movement) Poll(shunt, vref sampling.Source) (Verdict, error) {
	l := m.guard.limits

	elapsed := m.Elapsed()
	if m.Stopped().Stop() || l.IsMovementTimedOut(elapsed) || l.IsWithinGuardWindow(elapsed) {
		return m.Evaluate(elapsed, 0, 0), nil
	}

	s, err := sampling.Average(shunt, l.MaxSamples())
	if err != nil {
		return VerdictContinue, fmt.Errorf("shunt: %w", err)
	}
	v, err := sampling.Average(vref, l.MaxSamples())
	if err != nil {
		return VerdictContinue, fmt.Errorf("vref: %w", err)
	}
	return m.Check(s, v), nil
}

// End closes the movement and returns its final verdict. Calling End more
// than once is a no-op.
func (m *Movement) End() Verdict {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ended {
		return m.stopped
	}
	m.ended = true

	now := m.guard.now()
	m.guard.logger.Log(log.Event{
		Timestamp:  now,
		MovementID: m.id,
		Profile:    m.guard.profile,
		Kind:       log.KindMovementEnd,
		Reason:     m.stopped.reason(),
		Side:       m.side,
		Elapsed:    now.Sub(m.start),
	})
	return m.stopped
}

// logTrip must be called with m.mu held.
func (m *Movement) logTrip(v Verdict, elapsed time.Duration, shunt, vref int) {
	l := m.guard.limits
	event := log.Event{
		Timestamp:  m.guard.now(),
		MovementID: m.id,
		Profile:    m.guard.profile,
		Kind:       log.KindTrip,
		Reason:     v.reason(),
		Side:       m.side,
		Elapsed:    elapsed,
	}
	switch v {
	case VerdictOvercurrent:
		event.Shunt = shunt
		event.Threshold = int64(l.ShuntThreshold(m.side))
	case VerdictUnderVoltage:
		event.Vref = vref
		event.Threshold = int64(l.MinVref())
	case VerdictTimeout:
		event.Threshold = l.MaxMovement().Milliseconds()
	}
	m.guard.logger.Log(event)
}
