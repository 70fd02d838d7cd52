package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes safety events to an slog.Logger.
//
// Trips, inhibits and expired sessions are logged at Warn so they show up
// with the default handler level; movement start and end are Debug.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a SlogAdapter writing to logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("profile", event.Profile),
		slog.String("kind", event.Kind.String()),
	}
	if event.MovementID != "" {
		attrs = append(attrs, slog.String("movement_id", event.MovementID))
	}
	if event.Reason != ReasonNone {
		attrs = append(attrs, slog.String("reason", event.Reason.String()))
	}
	if event.Side != 0 {
		attrs = append(attrs, slog.String("side", event.Side.String()))
	}

	switch event.Reason {
	case ReasonOvercurrent:
		attrs = append(attrs,
			slog.Int("shunt", event.Shunt),
			slog.Int64("threshold", event.Threshold),
		)
	case ReasonUnderVoltage:
		attrs = append(attrs,
			slog.Int("vref", event.Vref),
			slog.Int64("threshold", event.Threshold),
		)
	case ReasonLowLight:
		attrs = append(attrs, slog.Int64("threshold", event.Threshold))
	}
	if event.Elapsed != 0 {
		attrs = append(attrs, slog.Duration("elapsed", event.Elapsed))
	}

	level := slog.LevelDebug
	if event.Kind.Halts() {
		level = slog.LevelWarn
	}

	a.logger.LogAttrs(context.Background(), level, "safety", attrs...)
}

var _ Logger = (*SlogAdapter)(nil)
