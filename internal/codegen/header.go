package codegen

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"time"

	"github.com/mysoltrk/mysoltrk-go/pkg/board"
	"github.com/mysoltrk/mysoltrk-go/pkg/limits"
)

// Header errors.
var (
	// ErrMissingMacro is returned by ParseHeader when a required #define is absent.
	ErrMissingMacro = errors.New("missing macro")

	// ErrSubMillisecond is returned by GenerateHeader when a duration cannot be
	// written as a whole number of milliseconds.
	ErrSubMillisecond = errors.New("duration is not a whole number of milliseconds")
)

// GenerateHeader renders p as a firmware configuration header. The firmware
// counts time in milliseconds, so every duration of p must be a whole number
// of them.
func GenerateHeader(p board.Profile) ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := checkMillis(p.Limits.Config()); err != nil {
		return nil, fmt.Errorf("%s: %w", p.Name, err)
	}
	out, err := renderTemplate("header", p)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

// defineRE matches `#define NAME VALUE` with an optional L suffix and a
// trailing comment.
var defineRE = regexp.MustCompile(`^\s*#define\s+([A-Z0-9_]+)\s+(-?\d+)L?\b`)

// ParseHeader reads a firmware configuration header into a profile called
// name. Macros it does not know are ignored.
func ParseHeader(name string, r io.Reader) (board.Profile, error) {
	values := make(map[string]int64)
	var avr, debug bool

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if m := defineRE.FindStringSubmatch(line); m != nil {
			v, err := strconv.ParseInt(m[2], 10, 64)
			if err != nil {
				return board.Profile{}, fmt.Errorf("%s: %w", m[1], err)
			}
			values[m[1]] = v
			continue
		}
		switch {
		case avrRE.MatchString(line):
			avr = true
		case debugRE.MatchString(line):
			debug = true
		}
	}
	if err := sc.Err(); err != nil {
		return board.Profile{}, err
	}

	h := headerValues(values)
	pins := board.Pins{
		ActuatorRight:       board.HBridge{Pin1: h.pin("ACTUATOR_R_PIN1"), Pin2: h.pin("ACTUATOR_R_PIN2")},
		ActuatorLeft:        board.HBridge{Pin1: h.pin("ACTUATOR_L_PIN1"), Pin2: h.pin("ACTUATOR_L_PIN2")},
		Shunt:               h.pin("SHUNT_PIN"),
		Vref:                h.pin("VREF_PIN"),
		PhotoresistorDriver: h.pin("PHOTORESISTOR_DRIVER"),
		Mosfet:              h.pin("MOSFET_PIN"),
	}
	for i := range pins.Photoresistors {
		pins.Photoresistors[i] = h.pin(fmt.Sprintf("PHOTORESISTOR_PIN%d", i+1))
	}

	cfg := limits.Config{
		MaxSamples:  int(h["MAX_SAMPLES"]),
		GuardWindow: h.millis("IGNORE_SHUNT_VREF_FOR_"),
		Shunt: limits.ShuntLimits{
			Shared: int(h["MAX_SHUNT_VALUE"]),
			Right:  int(h["MAX_SHUNT_VALUE_R"]),
			Left:   int(h["MAX_SHUNT_VALUE_L"]),
		},
		MinVref: int(h["MIN_VREF_VALUE"]),
	}
	for _, m := range []string{"MAX_SAMPLES", "IGNORE_SHUNT_VREF_FOR_", "MIN_VREF_VALUE"} {
		if !h.has(m) {
			return board.Profile{}, fmt.Errorf("%w: %s", ErrMissingMacro, m)
		}
	}
	switch {
	case h.has("MAX_MILLISECONDS_MOVEMENT"):
		cfg.MaxMovement = h.millis("MAX_MILLISECONDS_MOVEMENT")
	case h.has("MAX_SECONDS_MOVEMENT"):
		cfg.MaxMovement = time.Duration(h["MAX_SECONDS_MOVEMENT"]) * time.Second
	default:
		return board.Profile{}, fmt.Errorf("%w: MAX_MILLISECONDS_MOVEMENT or MAX_SECONDS_MOVEMENT", ErrMissingMacro)
	}
	if h.has("LIGHT_THREESHOLD") {
		cfg.Tracking = &limits.TrackingLimits{
			LightThreshold:            int(h["LIGHT_THREESHOLD"]),
			PhotoresistorDifferential: int(h["PHOTORESISTOR_THREESHOLD"]),
			MaxWork:                   h.millis("MAX_MILLISECONDS_WORK"),
			SleepDelay:                h.millis("SLEEP_DELAY"),
		}
	}

	l, err := limits.New(cfg)
	if err != nil {
		return board.Profile{}, err
	}
	target := ""
	if avr {
		target = "avr"
	}
	p, err := board.NewProfile(name, "", target, pins, l)
	if err != nil {
		return board.Profile{}, err
	}
	p.Debug = debug
	return p, nil
}

var (
	avrRE   = regexp.MustCompile(`^\s*#ifndef\s+__AVR__`)
	debugRE = regexp.MustCompile(`^\s*#define\s+MORE_DEBUG\s*(//.*)?$`)
)

type namedDuration struct {
	name string
	d    time.Duration
}

func checkMillis(cfg limits.Config) error {
	durations := []namedDuration{
		{"guard window", cfg.GuardWindow},
		{"max movement", cfg.MaxMovement},
	}
	if t := cfg.Tracking; t != nil {
		durations = append(durations,
			namedDuration{"max work", t.MaxWork},
			namedDuration{"sleep delay", t.SleepDelay},
		)
	}
	for _, v := range durations {
		if v.d%time.Millisecond != 0 {
			return fmt.Errorf("%w: %s %v", ErrSubMillisecond, v.name, v.d)
		}
	}
	return nil
}

type headerValues map[string]int64

func (h headerValues) has(name string) bool {
	_, ok := h[name]
	return ok
}

func (h headerValues) pin(name string) board.Pin {
	v, ok := h[name]
	if !ok || v < 0 || v >= int64(board.NoPin) {
		return board.NoPin
	}
	return board.Pin(v)
}

func (h headerValues) millis(name string) time.Duration {
	return time.Duration(h[name]) * time.Millisecond
}
