package guard

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mysoltrk/mysoltrk-go/pkg/limits"
	"github.com/mysoltrk/mysoltrk-go/pkg/log"
)

// ErrNoLimits is returned by New when Config.Limits is nil.
var ErrNoLimits = errors.New("guard: no limits configured")

// Config holds guard configuration.
type Config struct {
	// Profile names the board profile in logged events.
	Profile string

	// Limits are the thresholds to enforce. Required.
	Limits *limits.Limits

	// Logger receives safety events. Nil disables event logging.
	Logger log.Logger

	// Clock returns the current time. Defaults to time.Now.
	Clock func() time.Time
}

// Guard turns limit predicates into stop decisions.
// A Guard is safe for concurrent use; each Movement and Session carries its
// own state.
type Guard struct {
	profile string
	limits  *limits.Limits
	logger  log.Logger
	now     func() time.Time
	newID   func() string
}

// New creates a guard from cfg.
func New(cfg Config) (*Guard, error) {
	if cfg.Limits == nil {
		return nil, ErrNoLimits
	}
	g := &Guard{
		profile: cfg.Profile,
		limits:  cfg.Limits,
		logger:  cfg.Logger,
		now:     cfg.Clock,
		newID:   uuid.NewString,
	}
	if g.logger == nil {
		g.logger = log.NoopLogger{}
	}
	if g.now == nil {
		g.now = time.Now
	}
	return g, nil
}

// Limits returns the limits the guard enforces.
func (g *Guard) Limits() *limits.Limits {
	return g.limits
}

// Profile returns the profile name used in events.
func (g *Guard) Profile() string {
	return g.profile
}

// CanStart decides whether a movement may begin given the current vref and
// light readings. The light reading is ignored on boards without tracking
// limits.
func (g *Guard) CanStart(vref, light int) Verdict {
	event := log.Event{
		Timestamp: g.now(),
		Profile:   g.profile,
		Kind:      log.KindInhibit,
	}

	switch {
	case g.limits.IsUnderVoltage(vref):
		event.Reason = log.ReasonUnderVoltage
		event.Vref = vref
		event.Threshold = int64(g.limits.MinVref())
		g.logger.Log(event)
		return VerdictUnderVoltage

	case g.limits.IsBelowLightThreshold(light):
		t, _ := g.limits.Tracking()
		event.Reason = log.ReasonLowLight
		event.Threshold = int64(t.LightThreshold)
		g.logger.Log(event)
		return VerdictLowLight
	}
	return VerdictContinue
}

// Begin starts tracking a movement of side. The movement clock starts now.
func (g *Guard) Begin(side limits.Side) *Movement {
	m := &Movement{
		guard: g,
		id:    g.newID(),
		side:  side,
		start: g.now(),
	}
	g.logger.Log(log.Event{
		Timestamp:  m.start,
		MovementID: m.id,
		Profile:    g.profile,
		Kind:       log.KindMovementStart,
		Side:       side,
	})
	return m
}

// BeginSession starts a work session. The session clock starts now.
func (g *Guard) BeginSession() *Session {
	return &Session{
		guard: g,
		start: g.now(),
	}
}

// evaluate applies the limits in order. It has no side effects.
func (g *Guard) evaluate(side limits.Side, elapsed time.Duration, shunt, vref int) Verdict {
	switch {
	case g.limits.IsMovementTimedOut(elapsed):
		return VerdictTimeout
	case g.limits.IsWithinGuardWindow(elapsed):
		return VerdictGuardWindow
	case g.limits.IsOvercurrent(shunt, side):
		return VerdictOvercurrent
	case g.limits.IsUnderVoltage(vref):
		return VerdictUnderVoltage
	default:
		return VerdictContinue
	}
}
