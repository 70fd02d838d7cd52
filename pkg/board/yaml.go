package board

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mysoltrk/mysoltrk-go/pkg/limits"
)

// yamlDocument is the top-level structure of a profile file.
type yamlDocument struct {
	Profiles []yamlProfile `yaml:"profiles"`
}

type yamlProfile struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Target      string     `yaml:"target,omitempty"`
	Debug       bool       `yaml:"debug,omitempty"`
	Pins        yamlPins   `yaml:"pins"`
	Limits      yamlLimits `yaml:"limits"`
}

// yamlPins uses pointers so an omitted pin is told apart from pin 0.
type yamlPins struct {
	ActuatorRight       []int `yaml:"actuator_right,flow"`
	ActuatorLeft        []int `yaml:"actuator_left,flow"`
	Shunt               *int  `yaml:"shunt"`
	Vref                *int  `yaml:"vref"`
	PhotoresistorDriver *int  `yaml:"photoresistor_driver,omitempty"`
	Photoresistors      []int `yaml:"photoresistors,omitempty,flow"`
	Mosfet              *int  `yaml:"mosfet,omitempty"`
}

type yamlLimits struct {
	MaxSamples  int           `yaml:"max_samples"`
	GuardWindow time.Duration `yaml:"guard_window"`
	MaxMovement time.Duration `yaml:"max_movement"`
	MinVref     int           `yaml:"min_vref"`
	Shunt       yamlShunt     `yaml:"shunt"`
	Tracking    *yamlTracking `yaml:"tracking,omitempty"`
}

type yamlShunt struct {
	Shared int `yaml:"shared,omitempty"`
	Right  int `yaml:"right,omitempty"`
	Left   int `yaml:"left,omitempty"`
}

type yamlTracking struct {
	LightThreshold            int           `yaml:"light_threshold"`
	PhotoresistorDifferential int           `yaml:"photoresistor_differential"`
	MaxWork                   time.Duration `yaml:"max_work,omitempty"`
	SleepDelay                time.Duration `yaml:"sleep_delay,omitempty"`
}

// ParseYAML parses and validates the profiles of a YAML profile file.
// Unknown keys are rejected so a misspelled threshold cannot be silently ignored.
func ParseYAML(data []byte) ([]Profile, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc yamlDocument
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty profile document", ErrInvalidProfile)
		}
		return nil, fmt.Errorf("YAML parse error: %w", err)
	}

	seen := make(map[string]bool)
	profiles := make([]Profile, 0, len(doc.Profiles))
	for i, yp := range doc.Profiles {
		p, err := yp.toProfile()
		if err != nil {
			return nil, fmt.Errorf("profiles[%d]: %w", i, err)
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("profiles[%d]: %w: %s", i, ErrDuplicateProfile, p.Name)
		}
		seen[p.Name] = true
		profiles = append(profiles, p)
	}
	return profiles, nil
}

// LoadFile reads and parses a YAML profile file.
func LoadFile(path string) ([]Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	profiles, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return profiles, nil
}

// MarshalYAML renders profiles in the profile file format.
func MarshalYAML(profiles []Profile) ([]byte, error) {
	doc := yamlDocument{Profiles: make([]yamlProfile, 0, len(profiles))}
	for _, p := range profiles {
		doc.Profiles = append(doc.Profiles, fromProfile(p))
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (yp yamlProfile) toProfile() (Profile, error) {
	pins, err := yp.Pins.toPins()
	if err != nil {
		return Profile{}, fmt.Errorf("%s: %w", yp.Name, err)
	}

	cfg := limits.Config{
		MaxSamples:  yp.Limits.MaxSamples,
		GuardWindow: yp.Limits.GuardWindow,
		MaxMovement: yp.Limits.MaxMovement,
		MinVref:     yp.Limits.MinVref,
		Shunt: limits.ShuntLimits{
			Shared: yp.Limits.Shunt.Shared,
			Right:  yp.Limits.Shunt.Right,
			Left:   yp.Limits.Shunt.Left,
		},
	}
	if t := yp.Limits.Tracking; t != nil {
		cfg.Tracking = &limits.TrackingLimits{
			LightThreshold:            t.LightThreshold,
			PhotoresistorDifferential: t.PhotoresistorDifferential,
			MaxWork:                   t.MaxWork,
			SleepDelay:                t.SleepDelay,
		}
	}

	l, err := limits.New(cfg)
	if err != nil {
		return Profile{}, fmt.Errorf("%s: %w", yp.Name, err)
	}

	p, err := NewProfile(yp.Name, yp.Description, yp.Target, pins, l)
	if err != nil {
		return Profile{}, err
	}
	p.Debug = yp.Debug
	return p, nil
}

func (yp yamlPins) toPins() (Pins, error) {
	pins := Pins{
		PhotoresistorDriver: NoPin,
		Photoresistors:      [4]Pin{NoPin, NoPin, NoPin, NoPin},
		Mosfet:              NoPin,
	}

	var err error
	if pins.ActuatorRight, err = toHBridge("actuator_right", yp.ActuatorRight); err != nil {
		return Pins{}, err
	}
	if pins.ActuatorLeft, err = toHBridge("actuator_left", yp.ActuatorLeft); err != nil {
		return Pins{}, err
	}
	if pins.Shunt, err = toPin("shunt", yp.Shunt); err != nil {
		return Pins{}, err
	}
	if pins.Vref, err = toPin("vref", yp.Vref); err != nil {
		return Pins{}, err
	}
	if pins.PhotoresistorDriver, err = toPin("photoresistor_driver", yp.PhotoresistorDriver); err != nil {
		return Pins{}, err
	}
	if pins.Mosfet, err = toPin("mosfet", yp.Mosfet); err != nil {
		return Pins{}, err
	}

	if len(yp.Photoresistors) > 0 {
		if len(yp.Photoresistors) != len(pins.Photoresistors) {
			return Pins{}, fmt.Errorf("%w: photoresistors needs %d pins, got %d",
				ErrIncompletePhotoresistors, len(pins.Photoresistors), len(yp.Photoresistors))
		}
		for i := range yp.Photoresistors {
			name := fmt.Sprintf("photoresistors[%d]", i)
			if pins.Photoresistors[i], err = toPin(name, &yp.Photoresistors[i]); err != nil {
				return Pins{}, err
			}
		}
	}
	return pins, nil
}

func toHBridge(name string, v []int) (HBridge, error) {
	if len(v) != 2 {
		return HBridge{}, fmt.Errorf("%w: %s needs 2 pins, got %d", ErrMissingPin, name, len(v))
	}
	p1, err := toPin(name+".pin1", &v[0])
	if err != nil {
		return HBridge{}, err
	}
	p2, err := toPin(name+".pin2", &v[1])
	if err != nil {
		return HBridge{}, err
	}
	return HBridge{Pin1: p1, Pin2: p2}, nil
}

func toPin(name string, v *int) (Pin, error) {
	if v == nil {
		return NoPin, nil
	}
	if *v < 0 || *v >= int(NoPin) {
		return NoPin, fmt.Errorf("%w: %s pin %d out of range [0, %d]", ErrInvalidProfile, name, *v, int(NoPin)-1)
	}
	return Pin(*v), nil
}

func fromProfile(p Profile) yamlProfile {
	cfg := p.Limits.Config()

	yp := yamlProfile{
		Name:        p.Name,
		Description: p.Description,
		Target:      p.Target,
		Debug:       p.Debug,
		Pins: yamlPins{
			ActuatorRight:       []int{int(p.Pins.ActuatorRight.Pin1), int(p.Pins.ActuatorRight.Pin2)},
			ActuatorLeft:        []int{int(p.Pins.ActuatorLeft.Pin1), int(p.Pins.ActuatorLeft.Pin2)},
			Shunt:               fromPin(p.Pins.Shunt),
			Vref:                fromPin(p.Pins.Vref),
			PhotoresistorDriver: fromPin(p.Pins.PhotoresistorDriver),
			Mosfet:              fromPin(p.Pins.Mosfet),
		},
		Limits: yamlLimits{
			MaxSamples:  cfg.MaxSamples,
			GuardWindow: cfg.GuardWindow,
			MaxMovement: cfg.MaxMovement,
			MinVref:     cfg.MinVref,
			Shunt: yamlShunt{
				Shared: cfg.Shunt.Shared,
				Right:  cfg.Shunt.Right,
				Left:   cfg.Shunt.Left,
			},
		},
	}

	if p.Pins.HasPhotoresistors() {
		for _, pr := range p.Pins.Photoresistors {
			yp.Pins.Photoresistors = append(yp.Pins.Photoresistors, int(pr))
		}
	}
	if t := cfg.Tracking; t != nil {
		yp.Limits.Tracking = &yamlTracking{
			LightThreshold:            t.LightThreshold,
			PhotoresistorDifferential: t.PhotoresistorDifferential,
			MaxWork:                   t.MaxWork,
			SleepDelay:                t.SleepDelay,
		}
	}
	return yp
}

func fromPin(p Pin) *int {
	if !p.Assigned() {
		return nil
	}
	v := int(p)
	return &v
}
