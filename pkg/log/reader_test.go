package log

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"
	"time"
)

func createTestLogFile(t *testing.T, events []Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.evlog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create test log: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	logger.Close()
	return path
}

func readAll(t *testing.T, r *Reader) []Event {
	t.Helper()
	var out []Event
	for {
		e, err := r.Next()
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		out = append(out, e)
	}
}

func sampleEvents() []Event {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return []Event{
		{Timestamp: base, MovementID: "m1", Profile: "actuator-movements", Kind: KindMovementStart},
		{Timestamp: base.Add(time.Second), MovementID: "m1", Profile: "actuator-movements", Kind: KindTrip, Reason: ReasonOvercurrent},
		{Timestamp: base.Add(2 * time.Second), MovementID: "m2", Profile: "solar-tracker-reinvented", Kind: KindMovementStart},
		{Timestamp: base.Add(3 * time.Second), MovementID: "m2", Profile: "solar-tracker-reinvented", Kind: KindTrip, Reason: ReasonTimeout},
		{Timestamp: base.Add(4 * time.Second), Profile: "solar-tracker-reinvented", Kind: KindInhibit, Reason: ReasonLowLight},
	}
}

func TestReaderIteratesEvents(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer r.Close()

	got := readAll(t, r)
	if len(got) != 5 {
		t.Fatalf("got %d events, want 5", len(got))
	}
	if got[3].Reason != ReasonTimeout {
		t.Errorf("event 3 reason: got %v, want TIMEOUT", got[3].Reason)
	}
}

func TestReaderFilters(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())
	trip := KindTrip
	overcurrent := ReasonOvercurrent
	start := time.Date(2026, 3, 1, 10, 0, 2, 0, time.UTC)
	end := time.Date(2026, 3, 1, 10, 0, 4, 0, time.UTC)

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"none", Filter{}, 5},
		{"movement", Filter{MovementID: "m2"}, 2},
		{"profile", Filter{Profile: "actuator-movements"}, 2},
		{"kind", Filter{Kind: &trip}, 2},
		{"reason", Filter{Reason: &overcurrent}, 1},
		{"kind and profile", Filter{Kind: &trip, Profile: "solar-tracker-reinvented"}, 1},
		{"time range", Filter{TimeStart: &start, TimeEnd: &end}, 2},
		{"no match", Filter{MovementID: "missing"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewFilteredReader(path, tt.filter)
			if err != nil {
				t.Fatalf("NewFilteredReader failed: %v", err)
			}
			defer r.Close()

			if got := len(readAll(t, r)); got != tt.want {
				t.Errorf("got %d events, want %d", got, tt.want)
			}
		})
	}
}

func TestStreamReader(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	for _, e := range sampleEvents() {
		if err := enc.Encode(e); err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
	}

	r := NewStreamReader(&buf, Filter{MovementID: "m1"})
	if got := len(readAll(t, r)); got != 2 {
		t.Errorf("got %d events, want 2", got)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestReaderMissingFile(t *testing.T) {
	if _, err := NewReader(filepath.Join(t.TempDir(), "nope.evlog")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestReaderEmptyFile(t *testing.T) {
	path := createTestLogFile(t, nil)
	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer r.Close()
	if _, err := r.Next(); err != io.EOF {
		t.Errorf("got %v, want io.EOF", err)
	}
}
