package log

import (
	"testing"
	"time"

	"github.com/mysoltrk/mysoltrk-go/pkg/limits"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindMovementStart, "START"},
		{KindMovementEnd, "END"},
		{KindTrip, "TRIP"},
		{KindInhibit, "INHIBIT"},
		{KindSessionExpired, "SESSION_EXPIRED"},
		{Kind(99), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestReasonString(t *testing.T) {
	tests := []struct {
		reason Reason
		want   string
	}{
		{ReasonNone, "NONE"},
		{ReasonOvercurrent, "OVERCURRENT"},
		{ReasonUnderVoltage, "UNDER_VOLTAGE"},
		{ReasonTimeout, "TIMEOUT"},
		{ReasonLowLight, "LOW_LIGHT"},
		{ReasonWorkExpired, "WORK_EXPIRED"},
		{Reason(99), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.reason.String(); got != tt.want {
			t.Errorf("Reason(%d).String() = %q, want %q", tt.reason, got, tt.want)
		}
	}
}

func TestParseKindAndReason(t *testing.T) {
	if k, ok := ParseKind("trip"); !ok || k != KindTrip {
		t.Errorf("ParseKind(trip) = %v, %v", k, ok)
	}
	if _, ok := ParseKind("bogus"); ok {
		t.Error("ParseKind(bogus) should fail")
	}
	if r, ok := ParseReason("under-voltage"); !ok || r != ReasonUnderVoltage {
		t.Errorf("ParseReason(under-voltage) = %v, %v", r, ok)
	}
	if r, ok := ParseReason("OVERCURRENT"); !ok || r != ReasonOvercurrent {
		t.Errorf("ParseReason(OVERCURRENT) = %v, %v", r, ok)
	}
	if _, ok := ParseReason("stall"); ok {
		t.Error("ParseReason(stall) should fail")
	}
}

func TestKindHalts(t *testing.T) {
	tests := []struct {
		kind Kind
		want bool
	}{
		{KindMovementStart, false},
		{KindMovementEnd, false},
		{KindTrip, true},
		{KindInhibit, true},
		{KindSessionExpired, true},
	}
	for _, tt := range tests {
		if got := tt.kind.Halts(); got != tt.want {
			t.Errorf("%v.Halts() = %v, want %v", tt.kind, got, tt.want)
		}
	}
}

func TestEventRoundTrip(t *testing.T) {
	ts := time.Date(2026, 6, 21, 12, 30, 0, 123456789, time.UTC)
	event := Event{
		Timestamp:  ts,
		MovementID: "7d3c3f4e-5d0e-4a3b-9d8e-2b9d1c0a1f00",
		Profile:    "actuator-movements",
		Kind:       KindTrip,
		Reason:     ReasonOvercurrent,
		Side:       limits.SideLeft,
		Shunt:      91,
		Vref:       240,
		Threshold:  85,
		Elapsed:    1200 * time.Millisecond,
	}

	data, err := EncodeEvent(event)
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}
	decoded, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent failed: %v", err)
	}

	if !decoded.Timestamp.Equal(ts) {
		t.Errorf("Timestamp: got %v, want %v", decoded.Timestamp, ts)
	}
	decoded.Timestamp = event.Timestamp
	if decoded != event {
		t.Errorf("decoded event mismatch:\n got  %+v\n want %+v", decoded, event)
	}
}

func TestEncodeEventIsDeterministic(t *testing.T) {
	event := Event{
		Timestamp: time.Unix(1700000000, 0).UTC(),
		Profile:   "solar-tracker-reinvented",
		Kind:      KindInhibit,
		Reason:    ReasonLowLight,
		Threshold: 200,
	}
	a, err := EncodeEvent(event)
	if err != nil {
		t.Fatal(err)
	}
	b, err := EncodeEvent(event)
	if err != nil {
		t.Fatal(err)
	}
	if string(a) != string(b) {
		t.Error("encoding the same event twice produced different bytes")
	}
}

func TestDecodeEventInvalid(t *testing.T) {
	if _, err := DecodeEvent([]byte{0xff, 0x00}); err == nil {
		t.Error("expected error decoding garbage")
	}
}
