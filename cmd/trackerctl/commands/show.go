package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/mysoltrk/mysoltrk-go/pkg/board"
	"github.com/mysoltrk/mysoltrk-go/pkg/limits"
)

// RunShow prints a profile as text or YAML.
func RunShow(reg *board.Registry, name, format string, w io.Writer) error {
	p, err := reg.Lookup(name)
	if err != nil {
		return err
	}

	switch format {
	case "text", "":
		formatProfile(w, p)
		return nil
	case "yaml":
		data, err := board.MarshalYAML([]board.Profile{p})
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unknown format: %s (supported: text, yaml)", format)
	}
}

// formatProfile writes a human-readable representation of p to w.
func formatProfile(w io.Writer, p board.Profile) {
	fmt.Fprintf(w, "%s", p.Name)
	if p.Target != "" {
		fmt.Fprintf(w, " (%s)", p.Target)
	}
	fmt.Fprintln(w)
	if p.Description != "" {
		fmt.Fprintf(w, "  %s\n", p.Description)
	}
	fmt.Fprintf(w, "  fingerprint: %s\n", board.Fingerprint(p))
	if p.Debug {
		fmt.Fprintln(w, "  debug output enabled")
	}

	pins := p.Pins
	fmt.Fprintln(w, "\nPins:")
	fmt.Fprintf(w, "  actuator right:  %s/%s\n", pins.ActuatorRight.Pin1, pins.ActuatorRight.Pin2)
	fmt.Fprintf(w, "  actuator left:   %s/%s\n", pins.ActuatorLeft.Pin1, pins.ActuatorLeft.Pin2)
	fmt.Fprintf(w, "  shunt:           %s\n", pins.Shunt)
	fmt.Fprintf(w, "  vref:            %s\n", pins.Vref)
	if pins.HasPhotoresistors() {
		prs := make([]string, len(pins.Photoresistors))
		for i, pr := range pins.Photoresistors {
			prs[i] = pr.String()
		}
		fmt.Fprintf(w, "  photoresistors:  %s (driver %s)\n", strings.Join(prs, ", "), pins.PhotoresistorDriver)
	}
	if pins.Mosfet.Assigned() {
		fmt.Fprintf(w, "  mosfet:          %s\n", pins.Mosfet)
	}

	l := p.Limits
	fmt.Fprintln(w, "\nLimits:")
	fmt.Fprintf(w, "  max samples:     %d\n", l.MaxSamples())
	fmt.Fprintf(w, "  guard window:    %v\n", l.GuardWindow())
	fmt.Fprintf(w, "  max movement:    %v\n", l.MaxMovement())
	fmt.Fprintf(w, "  min vref:        %d\n", l.MinVref())
	fmt.Fprintf(w, "  shunt right:     %d\n", l.ShuntThreshold(limits.SideRight))
	fmt.Fprintf(w, "  shunt left:      %d\n", l.ShuntThreshold(limits.SideLeft))
	if t, ok := l.Tracking(); ok {
		fmt.Fprintln(w, "\nTracking:")
		fmt.Fprintf(w, "  light threshold: %d\n", t.LightThreshold)
		fmt.Fprintf(w, "  photoresistor differential: %d\n", t.PhotoresistorDifferential)
		fmt.Fprintf(w, "  max work:        %v\n", t.MaxWork)
		fmt.Fprintf(w, "  sleep delay:     %v\n", t.SleepDelay)
	}
}
