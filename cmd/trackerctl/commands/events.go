package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/mysoltrk/mysoltrk-go/pkg/log"
)

// EventsOptions configures the events command.
type EventsOptions struct {
	MovementID string
	Profile    string
	Kind       string
	Reason     string
	TimeStart  string
	TimeEnd    string

	// Format is "text", "jsonl" or "summary".
	Format string
}

// Filter converts the options into a log filter.
func (o EventsOptions) Filter() (log.Filter, error) {
	f := log.Filter{
		MovementID: o.MovementID,
		Profile:    o.Profile,
	}
	if o.Kind != "" {
		k, ok := log.ParseKind(o.Kind)
		if !ok {
			return log.Filter{}, fmt.Errorf("invalid kind: %s (valid: start, end, trip, inhibit, session_expired)", o.Kind)
		}
		f.Kind = &k
	}
	if o.Reason != "" {
		r, ok := log.ParseReason(o.Reason)
		if !ok {
			return log.Filter{}, fmt.Errorf("invalid reason: %s (valid: overcurrent, under_voltage, timeout, low_light, work_expired)", o.Reason)
		}
		f.Reason = &r
	}
	if o.TimeStart != "" {
		t, err := time.Parse(time.RFC3339, o.TimeStart)
		if err != nil {
			return log.Filter{}, fmt.Errorf("invalid time-start: %w", err)
		}
		f.TimeStart = &t
	}
	if o.TimeEnd != "" {
		t, err := time.Parse(time.RFC3339, o.TimeEnd)
		if err != nil {
			return log.Filter{}, fmt.Errorf("invalid time-end: %w", err)
		}
		f.TimeEnd = &t
	}
	return f, nil
}

// RunEvents prints the events of a safety event log.
func RunEvents(path string, opts EventsOptions, w io.Writer) error {
	filter, err := opts.Filter()
	if err != nil {
		return err
	}
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	switch opts.Format {
	case "text", "":
		return eachEvent(reader, func(e log.Event) error {
			formatEvent(w, e)
			return nil
		})
	case "jsonl":
		enc := json.NewEncoder(w)
		return eachEvent(reader, func(e log.Event) error {
			return enc.Encode(jsonEvent(e))
		})
	case "summary":
		counts := make(map[string]int)
		total := 0
		err := eachEvent(reader, func(e log.Event) error {
			total++
			key := e.Kind.String()
			if e.Reason != log.ReasonNone {
				key += " " + e.Reason.String()
			}
			counts[key]++
			return nil
		})
		if err != nil {
			return err
		}
		keys := make([]string, 0, len(counts))
		for k := range counts {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fmt.Fprintf(w, "%d events\n", total)
		for _, k := range keys {
			fmt.Fprintf(w, "  %-28s %d\n", k, counts[k])
		}
		return nil
	default:
		return fmt.Errorf("unknown format: %s (supported: text, jsonl, summary)", opts.Format)
	}
}

func eachEvent(r *log.Reader, fn func(log.Event) error) error {
	for {
		event, err := r.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := fn(event); err != nil {
			return err
		}
	}
}

// formatEvent writes a one-line human-readable representation of event.
func formatEvent(w io.Writer, event log.Event) {
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000Z")
	fmt.Fprintf(w, "%s %-15s %s", ts, event.Kind, event.Profile)
	if event.MovementID != "" {
		fmt.Fprintf(w, " [mv:%s]", shortenID(event.MovementID))
	}
	if event.Side != 0 {
		fmt.Fprintf(w, " %s", event.Side)
	}
	if event.Reason != log.ReasonNone {
		fmt.Fprintf(w, " %s", event.Reason)
	}
	switch event.Reason {
	case log.ReasonOvercurrent:
		fmt.Fprintf(w, " shunt=%d>%d", event.Shunt, event.Threshold)
	case log.ReasonUnderVoltage:
		fmt.Fprintf(w, " vref=%d<%d", event.Vref, event.Threshold)
	case log.ReasonTimeout, log.ReasonWorkExpired:
		fmt.Fprintf(w, " max=%dms", event.Threshold)
	case log.ReasonLowLight:
		fmt.Fprintf(w, " threshold=%d", event.Threshold)
	}
	if event.Elapsed != 0 {
		fmt.Fprintf(w, " after %v", event.Elapsed)
	}
	fmt.Fprintln(w)
}

// shortenID returns the first 8 characters of a movement ID.
func shortenID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

type eventJSON struct {
	Timestamp  time.Time `json:"timestamp"`
	MovementID string    `json:"movement_id,omitempty"`
	Profile    string    `json:"profile"`
	Kind       string    `json:"kind"`
	Reason     string    `json:"reason,omitempty"`
	Side       string    `json:"side,omitempty"`
	Shunt      int       `json:"shunt,omitempty"`
	Vref       int       `json:"vref,omitempty"`
	Threshold  int64     `json:"threshold,omitempty"`
	ElapsedMS  int64     `json:"elapsed_ms,omitempty"`
}

func jsonEvent(e log.Event) eventJSON {
	out := eventJSON{
		Timestamp:  e.Timestamp,
		MovementID: e.MovementID,
		Profile:    e.Profile,
		Kind:       e.Kind.String(),
		Shunt:      e.Shunt,
		Vref:       e.Vref,
		Threshold:  e.Threshold,
		ElapsedMS:  e.Elapsed.Milliseconds(),
	}
	if e.Reason != log.ReasonNone {
		out.Reason = e.Reason.String()
	}
	if e.Side != 0 {
		out.Side = e.Side.String()
	}
	return out
}
