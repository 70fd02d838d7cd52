package board

import (
	"time"

	"github.com/mysoltrk/mysoltrk-go/pkg/limits"
)

// Built-in profile names.
const (
	ActuatorMovements      = "actuator-movements"
	SolarTrackerReinvented = "solar-tracker-reinvented"
)

var (
	// Arduino nano, two actuators, no light sensing.
	actuatorMovements = Profile{
		Name:        ActuatorMovements,
		Description: "Two linear actuators with a shared current-sense threshold",
		Target:      "avr",
		Pins: Pins{
			ActuatorRight:       HBridge{Pin1: 4, Pin2: 5},
			ActuatorLeft:        HBridge{Pin1: 6, Pin2: 7},
			Shunt:               18,
			Vref:                21,
			PhotoresistorDriver: NoPin,
			Photoresistors:      [4]Pin{NoPin, NoPin, NoPin, NoPin},
			Mosfet:              NoPin,
		},
		Limits: limits.MustNew(limits.Config{
			MaxSamples:  10,
			GuardWindow: 1000 * time.Millisecond,
			Shunt:       limits.ShuntLimits{Shared: 20},
			MinVref:     100,
			MaxMovement: 180 * time.Second,
		}),
	}

	// Arduino nano solar tracker. The left motor strains more than the right one.
	solarTrackerReinvented = Profile{
		Name:        SolarTrackerReinvented,
		Description: "Solar tracker with four photoresistors and per-motor current-sense thresholds",
		Target:      "avr",
		Debug:       true,
		Pins: Pins{
			ActuatorRight:       HBridge{Pin1: 4, Pin2: 7},
			ActuatorLeft:        HBridge{Pin1: 6, Pin2: 5},
			Shunt:               18,
			Vref:                21,
			PhotoresistorDriver: 12,
			Photoresistors:      [4]Pin{14, 15, 16, 17},
			Mosfet:              8,
		},
		Limits: limits.MustNew(limits.Config{
			MaxSamples:  10,
			GuardWindow: 500 * time.Millisecond,
			Shunt:       limits.ShuntLimits{Right: 30, Left: 35},
			MinVref:     80,
			MaxMovement: 800 * time.Millisecond,
			Tracking: &limits.TrackingLimits{
				LightThreshold:            700,
				PhotoresistorDifferential: 2,
				MaxWork:                   60 * time.Second,
				SleepDelay:                60 * time.Second,
			},
		}),
	}
)

func init() {
	for _, p := range []Profile{actuatorMovements, solarTrackerReinvented} {
		if err := p.Validate(); err != nil {
			panic("board: built-in " + err.Error())
		}
	}
}

// Builtins returns a new registry holding the built-in profiles.
func Builtins() *Registry {
	r := NewRegistry()
	r.profiles[actuatorMovements.Name] = actuatorMovements
	r.profiles[solarTrackerReinvented.Name] = solarTrackerReinvented
	return r
}

// Builtin returns the built-in profile called name.
func Builtin(name string) (Profile, error) {
	return Builtins().Lookup(name)
}
