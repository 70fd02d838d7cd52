package limits

import (
	"errors"
	"fmt"
	"time"
)

// Validation errors.
var (
	ErrInvalidSampleCount    = errors.New("invalid sample count")
	ErrInvalidGuardWindow    = errors.New("invalid guard window")
	ErrGuardWindowTooLong    = errors.New("guard window does not fit movement window")
	ErrInvalidShuntThreshold = errors.New("invalid shunt threshold")
	ErrInvalidVrefThreshold  = errors.New("invalid vref threshold")
	ErrInvalidTracking       = errors.New("invalid tracking limits")
	ErrMovementExceedsWork   = errors.New("movement window exceeds work session")
)

// Side identifies the motor a shunt reading belongs to.
type Side uint8

const (
	// SideUnknown is used when a reading cannot be attributed to one motor.
	SideUnknown Side = iota

	// SideRight is the right actuator.
	SideRight

	// SideLeft is the left actuator.
	SideLeft
)

// String returns a human-readable side name.
func (s Side) String() string {
	switch s {
	case SideRight:
		return "RIGHT"
	case SideLeft:
		return "LEFT"
	default:
		return "UNKNOWN"
	}
}

// ShuntLimits holds current-sense thresholds in raw ADC units.
// Zero means "not configured" for Right and Left.
type ShuntLimits struct {
	// Shared applies to any motor without a dedicated threshold.
	Shared int

	// Right is the right motor threshold.
	Right int

	// Left is the left motor threshold.
	Left int
}

// TrackingLimits holds the thresholds of solar-tracking boards.
type TrackingLimits struct {
	// LightThreshold is the light reading below which movements are not worth it
	// and the load mosfet is switched off.
	LightThreshold int

	// PhotoresistorDifferential is the difference between opposite
	// photoresistors above which a new position is calculated.
	PhotoresistorDifferential int

	// MaxWork is the maximum active time per work session. Zero disables the cap.
	MaxWork time.Duration

	// SleepDelay is the pause between two work sessions.
	SleepDelay time.Duration
}

// Config holds the raw values a Limits is built from.
type Config struct {
	// MaxSamples is the number of analog samples averaged per reading.
	MaxSamples int

	// GuardWindow is the time after movement start during which shunt and
	// vref readings are ignored.
	GuardWindow time.Duration

	// Shunt holds the overcurrent thresholds.
	Shunt ShuntLimits

	// MinVref is the lowest acceptable supply reference reading.
	MinVref int

	// MaxMovement caps the runtime of a single movement command.
	MaxMovement time.Duration

	// Tracking is nil on boards without light sensing.
	Tracking *TrackingLimits
}

// Limits is an immutable, validated set of actuator safety limits.
type Limits struct {
	maxSamples  int
	guardWindow time.Duration
	shunt       ShuntLimits
	minVref     int
	maxMovement time.Duration

	hasTracking bool
	tracking    TrackingLimits
}

// New validates cfg and returns the corresponding Limits.
func New(cfg Config) (*Limits, error) {
	if err := Validate(cfg); err != nil {
		return nil, err
	}

	l := &Limits{
		maxSamples:  cfg.MaxSamples,
		guardWindow: cfg.GuardWindow,
		shunt:       cfg.Shunt,
		minVref:     cfg.MinVref,
		maxMovement: cfg.MaxMovement,
	}
	if cfg.Tracking != nil {
		l.hasTracking = true
		l.tracking = *cfg.Tracking
	}
	return l, nil
}

// MustNew is like New but panics on an invalid configuration.
// It is meant for compiled-in profiles initialised at package level.
func MustNew(cfg Config) *Limits {
	l, err := New(cfg)
	if err != nil {
		panic(fmt.Sprintf("limits: %v", err))
	}
	return l
}

// Validate checks every constraint of cfg and returns the first violation.
func Validate(cfg Config) error {
	if cfg.MaxSamples < 1 {
		return fmt.Errorf("%w: max samples must be at least 1, got %d", ErrInvalidSampleCount, cfg.MaxSamples)
	}

	if cfg.GuardWindow < 0 {
		return fmt.Errorf("%w: must be non-negative, got %v", ErrInvalidGuardWindow, cfg.GuardWindow)
	}
	if cfg.GuardWindow >= cfg.MaxMovement {
		return fmt.Errorf("%w: guard window %v must be shorter than max movement %v",
			ErrGuardWindowTooLong, cfg.GuardWindow, cfg.MaxMovement)
	}

	if err := validateShunt(cfg.Shunt); err != nil {
		return err
	}

	if cfg.MinVref < 0 {
		return fmt.Errorf("%w: min vref must be non-negative, got %d", ErrInvalidVrefThreshold, cfg.MinVref)
	}

	if cfg.Tracking != nil {
		if err := validateTracking(*cfg.Tracking, cfg.MaxMovement); err != nil {
			return err
		}
	}

	return nil
}

func validateShunt(s ShuntLimits) error {
	if s.Shared < 0 || s.Right < 0 || s.Left < 0 {
		return fmt.Errorf("%w: thresholds must be non-negative, got shared=%d right=%d left=%d",
			ErrInvalidShuntThreshold, s.Shared, s.Right, s.Left)
	}
	if effective(s.Right, s.Shared) <= 0 {
		return fmt.Errorf("%w: right motor has no positive threshold", ErrInvalidShuntThreshold)
	}
	if effective(s.Left, s.Shared) <= 0 {
		return fmt.Errorf("%w: left motor has no positive threshold", ErrInvalidShuntThreshold)
	}
	return nil
}

func validateTracking(t TrackingLimits, maxMovement time.Duration) error {
	if t.LightThreshold < 0 {
		return fmt.Errorf("%w: light threshold must be non-negative, got %d", ErrInvalidTracking, t.LightThreshold)
	}
	if t.PhotoresistorDifferential < 0 {
		return fmt.Errorf("%w: photoresistor differential must be non-negative, got %d",
			ErrInvalidTracking, t.PhotoresistorDifferential)
	}
	if t.MaxWork < 0 {
		return fmt.Errorf("%w: max work must be non-negative, got %v", ErrInvalidTracking, t.MaxWork)
	}
	if t.SleepDelay < 0 {
		return fmt.Errorf("%w: sleep delay must be non-negative, got %v", ErrInvalidTracking, t.SleepDelay)
	}
	if t.MaxWork > 0 && maxMovement > t.MaxWork {
		return fmt.Errorf("%w: max movement %v must not exceed max work %v",
			ErrMovementExceedsWork, maxMovement, t.MaxWork)
	}
	return nil
}

func effective(side, shared int) int {
	if side > 0 {
		return side
	}
	return shared
}

// MaxSamples returns the number of samples averaged per reading.
func (l *Limits) MaxSamples() int { return l.maxSamples }

// GuardWindow returns the inrush guard interval.
func (l *Limits) GuardWindow() time.Duration { return l.guardWindow }

// MinVref returns the minimum acceptable supply reference reading.
func (l *Limits) MinVref() int { return l.minVref }

// MaxMovement returns the maximum runtime of a single movement.
func (l *Limits) MaxMovement() time.Duration { return l.maxMovement }

// Shunt returns the configured shunt thresholds.
func (l *Limits) Shunt() ShuntLimits { return l.shunt }

// Tracking returns the tracking limits and whether the board has them.
func (l *Limits) Tracking() (TrackingLimits, bool) {
	return l.tracking, l.hasTracking
}

// ShuntThreshold returns the effective overcurrent threshold for side.
func (l *Limits) ShuntThreshold(side Side) int {
	right := effective(l.shunt.Right, l.shunt.Shared)
	left := effective(l.shunt.Left, l.shunt.Shared)

	switch side {
	case SideRight:
		return right
	case SideLeft:
		return left
	default:
		return min(right, left)
	}
}

// Config returns a copy of the configuration the limits were built from.
func (l *Limits) Config() Config {
	cfg := Config{
		MaxSamples:  l.maxSamples,
		GuardWindow: l.guardWindow,
		Shunt:       l.shunt,
		MinVref:     l.minVref,
		MaxMovement: l.maxMovement,
	}
	if l.hasTracking {
		t := l.tracking
		cfg.Tracking = &t
	}
	return cfg
}

// IsOvercurrent reports whether a shunt reading exceeds the threshold of side.
// A reading equal to the threshold is not an overcurrent.
func (l *Limits) IsOvercurrent(sample int, side Side) bool {
	return sample > l.ShuntThreshold(side)
}

// IsUnderVoltage reports whether a vref reading is below the minimum.
func (l *Limits) IsUnderVoltage(sample int) bool {
	return sample < l.minVref
}

// IsWithinGuardWindow reports whether readings taken elapsed after movement
// start must be ignored. Negative elapsed values count as inside the window.
func (l *Limits) IsWithinGuardWindow(elapsed time.Duration) bool {
	return elapsed < l.guardWindow
}

// IsMovementTimedOut reports whether a movement running for elapsed must be
// stopped regardless of sensor state.
func (l *Limits) IsMovementTimedOut(elapsed time.Duration) bool {
	return elapsed > l.maxMovement
}

// IsBelowLightThreshold reports whether a light reading is too low for
// tracking. Always false without tracking limits.
func (l *Limits) IsBelowLightThreshold(sample int) bool {
	return l.hasTracking && sample < l.tracking.LightThreshold
}

// ExceedsPhotoresistorDifferential reports whether two opposite photoresistor
// readings differ by more than the configured threshold.
func (l *Limits) ExceedsPhotoresistorDifferential(a, b int) bool {
	if !l.hasTracking {
		return false
	}
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff > l.tracking.PhotoresistorDifferential
}

// IsWorkSessionExpired reports whether a work session running for elapsed
// exceeded the maximum work time. Always false when no cap is configured.
func (l *Limits) IsWorkSessionExpired(elapsed time.Duration) bool {
	return l.hasTracking && l.tracking.MaxWork > 0 && elapsed > l.tracking.MaxWork
}

// SleepDelay returns the pause between work sessions, or zero without tracking.
func (l *Limits) SleepDelay() time.Duration {
	if !l.hasTracking {
		return 0
	}
	return l.tracking.SleepDelay
}
