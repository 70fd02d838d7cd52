package board

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/mysoltrk/mysoltrk-go/pkg/limits"
)

// Profile errors.
var (
	ErrInvalidProfile           = errors.New("invalid board profile")
	ErrMissingPin               = errors.New("required pin not wired")
	ErrIncompletePhotoresistors = errors.New("incomplete photoresistor array")
	ErrPinConflict              = errors.New("pin assigned twice")
	ErrDuplicateProfile         = errors.New("profile already registered")
	ErrUnknownProfile           = errors.New("unknown profile")
)

var nameRE = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// Profile is a named board variant: its wiring and its safety limits.
type Profile struct {
	// Name identifies the board variant, e.g. "solar-tracker-reinvented".
	Name string

	// Description is free text shown by tools.
	Description string

	// Target is the MCU family the firmware was tested on, e.g. "avr".
	Target string

	// Debug enables the firmware's verbose serial output (MORE_DEBUG).
	// It does not affect the fingerprint.
	Debug bool

	Pins   Pins
	Limits *limits.Limits
}

// NewProfile builds and validates a profile.
func NewProfile(name, description, target string, pins Pins, l *limits.Limits) (Profile, error) {
	p := Profile{
		Name:        name,
		Description: description,
		Target:      target,
		Pins:        pins,
		Limits:      l,
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Validate checks the name, the wiring and the consistency between the
// wiring and the limits.
func (p Profile) Validate() error {
	if !nameRE.MatchString(p.Name) {
		return fmt.Errorf("%w: name %q must match %s", ErrInvalidProfile, p.Name, nameRE)
	}
	if p.Limits == nil {
		return fmt.Errorf("%w: %s has no limits", ErrInvalidProfile, p.Name)
	}
	if err := p.Pins.Validate(); err != nil {
		return fmt.Errorf("%s: %w", p.Name, err)
	}

	_, tracking := p.Limits.Tracking()
	switch {
	case tracking && !p.Pins.HasPhotoresistors():
		return fmt.Errorf("%w: %s has tracking limits but no photoresistors", ErrInvalidProfile, p.Name)
	case !tracking && p.Pins.HasPhotoresistors():
		return fmt.Errorf("%w: %s has photoresistors but no tracking limits", ErrInvalidProfile, p.Name)
	}
	return nil
}

// Tracking reports whether the board is a solar-tracking variant.
func (p Profile) Tracking() bool {
	_, ok := p.Limits.Tracking()
	return ok
}
