package guard

import "github.com/mysoltrk/mysoltrk-go/pkg/log"

// Verdict is the outcome of a guard check.
type Verdict uint8

const (
	// VerdictContinue means the movement may go on.
	VerdictContinue Verdict = iota

	// VerdictGuardWindow means the movement just started and sensor readings
	// are not trusted yet. The movement may go on.
	VerdictGuardWindow

	// VerdictOvercurrent means the shunt reading exceeded its threshold.
	VerdictOvercurrent

	// VerdictUnderVoltage means the vref reading dropped below the minimum.
	VerdictUnderVoltage

	// VerdictTimeout means the movement ran longer than allowed.
	VerdictTimeout

	// VerdictLowLight means there is not enough light to track.
	VerdictLowLight
)

// String returns a human-readable verdict name.
func (v Verdict) String() string {
	switch v {
	case VerdictContinue:
		return "CONTINUE"
	case VerdictGuardWindow:
		return "GUARD_WINDOW"
	case VerdictOvercurrent:
		return "OVERCURRENT"
	case VerdictUnderVoltage:
		return "UNDER_VOLTAGE"
	case VerdictTimeout:
		return "TIMEOUT"
	case VerdictLowLight:
		return "LOW_LIGHT"
	default:
		return "UNKNOWN"
	}
}

// Stop reports whether the actuator must be stopped (or not started).
func (v Verdict) Stop() bool {
	switch v {
	case VerdictOvercurrent, VerdictUnderVoltage, VerdictTimeout, VerdictLowLight:
		return true
	default:
		return false
	}
}

// reason maps a stop verdict to its event log reason.
func (v Verdict) reason() log.Reason {
	switch v {
	case VerdictOvercurrent:
		return log.ReasonOvercurrent
	case VerdictUnderVoltage:
		return log.ReasonUnderVoltage
	case VerdictTimeout:
		return log.ReasonTimeout
	case VerdictLowLight:
		return log.ReasonLowLight
	default:
		return log.ReasonNone
	}
}
