package log

import (
	"strings"
	"time"

	"github.com/mysoltrk/mysoltrk-go/pkg/limits"
)

// Event is a safety decision recorded by the movement guard.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// MovementID identifies the movement (UUID). Empty for session events.
	MovementID string `cbor:"2,keyasint,omitempty"`

	// Profile is the board profile name.
	Profile string `cbor:"3,keyasint"`

	// Kind classifies the event.
	Kind Kind `cbor:"4,keyasint"`

	// Reason explains trips and inhibits.
	Reason Reason `cbor:"5,keyasint,omitempty"`

	// Side is the motor the movement drives.
	Side limits.Side `cbor:"6,keyasint,omitempty"`

	// Shunt is the shunt reading that caused the event.
	Shunt int `cbor:"7,keyasint,omitempty"`

	// Vref is the vref reading that caused the event.
	Vref int `cbor:"8,keyasint,omitempty"`

	// Threshold is the limit the reading was compared against. Time limits
	// are in milliseconds.
	Threshold int64 `cbor:"9,keyasint,omitempty"`

	// Elapsed is the time since movement or session start.
	Elapsed time.Duration `cbor:"10,keyasint,omitempty"`
}

// Kind classifies an event.
type Kind uint8

const (
	// KindMovementStart indicates a movement began.
	KindMovementStart Kind = 0
	// KindMovementEnd indicates a movement was closed by the caller.
	KindMovementEnd Kind = 1
	// KindTrip indicates a limit stopped a running movement.
	KindTrip Kind = 2
	// KindInhibit indicates a movement was refused before starting.
	KindInhibit Kind = 3
	// KindSessionExpired indicates a work session ran out of time.
	KindSessionExpired Kind = 4
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindMovementStart:
		return "START"
	case KindMovementEnd:
		return "END"
	case KindTrip:
		return "TRIP"
	case KindInhibit:
		return "INHIBIT"
	case KindSessionExpired:
		return "SESSION_EXPIRED"
	default:
		return "UNKNOWN"
	}
}

// Halts reports whether the event records a movement or session that was
// stopped or refused.
func (k Kind) Halts() bool {
	switch k {
	case KindTrip, KindInhibit, KindSessionExpired:
		return true
	default:
		return false
	}
}

// Reason explains why a movement was stopped or refused.
type Reason uint8

const (
	// ReasonNone is used by events that are not trips or inhibits.
	ReasonNone Reason = 0
	// ReasonOvercurrent indicates the shunt reading exceeded its threshold.
	ReasonOvercurrent Reason = 1
	// ReasonUnderVoltage indicates the vref reading was below the minimum.
	ReasonUnderVoltage Reason = 2
	// ReasonTimeout indicates the movement exceeded its maximum duration.
	ReasonTimeout Reason = 3
	// ReasonLowLight indicates there was not enough light to track.
	ReasonLowLight Reason = 4
	// ReasonWorkExpired indicates the work session exceeded its maximum.
	ReasonWorkExpired Reason = 5
)

// String returns the reason name.
func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "NONE"
	case ReasonOvercurrent:
		return "OVERCURRENT"
	case ReasonUnderVoltage:
		return "UNDER_VOLTAGE"
	case ReasonTimeout:
		return "TIMEOUT"
	case ReasonLowLight:
		return "LOW_LIGHT"
	case ReasonWorkExpired:
		return "WORK_EXPIRED"
	default:
		return "UNKNOWN"
	}
}

// ParseKind parses a kind name, case-insensitively.
func ParseKind(s string) (Kind, bool) {
	for k := KindMovementStart; k <= KindSessionExpired; k++ {
		if strings.EqualFold(s, k.String()) {
			return k, true
		}
	}
	return 0, false
}

// ParseReason parses a reason name, case-insensitively. Dashes are accepted
// in place of underscores.
func ParseReason(s string) (Reason, bool) {
	s = strings.ReplaceAll(s, "-", "_")
	for r := ReasonNone; r <= ReasonWorkExpired; r++ {
		if strings.EqualFold(s, r.String()) {
			return r, true
		}
	}
	return 0, false
}
