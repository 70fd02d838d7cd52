package board

import (
	"fmt"
	"strconv"
)

// Pin is a microcontroller pin number.
type Pin uint8

// NoPin marks an optional pin that is not wired.
const NoPin Pin = 0xFF

// Assigned reports whether the pin is wired.
func (p Pin) Assigned() bool {
	return p != NoPin
}

// String returns the pin number, or "-" when unassigned.
func (p Pin) String() string {
	if !p.Assigned() {
		return "-"
	}
	return strconv.Itoa(int(p))
}

// HBridge is the pair of digital outputs driving one actuator.
// Pin1 is the positive side, Pin2 the negative one.
type HBridge struct {
	Pin1 Pin
	Pin2 Pin
}

// Pins is the wiring of a board.
type Pins struct {
	ActuatorRight HBridge
	ActuatorLeft  HBridge
	Shunt         Pin
	Vref          Pin

	// Optional; NoPin on boards without light sensing.
	PhotoresistorDriver Pin
	Photoresistors      [4]Pin
	Mosfet              Pin
}

// HasPhotoresistors reports whether the photoresistor driver and all four
// photoresistors are wired.
func (p Pins) HasPhotoresistors() bool {
	if !p.PhotoresistorDriver.Assigned() {
		return false
	}
	for _, pr := range p.Photoresistors {
		if !pr.Assigned() {
			return false
		}
	}
	return true
}

// anyPhotoresistor reports whether any part of the photoresistor array is wired.
func (p Pins) anyPhotoresistor() bool {
	if p.PhotoresistorDriver.Assigned() {
		return true
	}
	for _, pr := range p.Photoresistors {
		if pr.Assigned() {
			return true
		}
	}
	return false
}

type namedPin struct {
	name string
	pin  Pin
}

// wired returns every assigned pin with its role.
func (p Pins) wired() []namedPin {
	all := []namedPin{
		{"actuator_right.pin1", p.ActuatorRight.Pin1},
		{"actuator_right.pin2", p.ActuatorRight.Pin2},
		{"actuator_left.pin1", p.ActuatorLeft.Pin1},
		{"actuator_left.pin2", p.ActuatorLeft.Pin2},
		{"shunt", p.Shunt},
		{"vref", p.Vref},
		{"photoresistor_driver", p.PhotoresistorDriver},
		{"mosfet", p.Mosfet},
	}
	for i, pr := range p.Photoresistors {
		all = append(all, namedPin{fmt.Sprintf("photoresistors[%d]", i), pr})
	}

	result := all[:0]
	for _, np := range all {
		if np.pin.Assigned() {
			result = append(result, np)
		}
	}
	return result
}

// Validate checks that required pins are wired, that the photoresistor array
// is complete when present and that no pin serves two roles.
func (p Pins) Validate() error {
	required := []namedPin{
		{"actuator_right.pin1", p.ActuatorRight.Pin1},
		{"actuator_right.pin2", p.ActuatorRight.Pin2},
		{"actuator_left.pin1", p.ActuatorLeft.Pin1},
		{"actuator_left.pin2", p.ActuatorLeft.Pin2},
		{"shunt", p.Shunt},
		{"vref", p.Vref},
	}
	for _, np := range required {
		if !np.pin.Assigned() {
			return fmt.Errorf("%w: %s", ErrMissingPin, np.name)
		}
	}

	if p.anyPhotoresistor() && !p.HasPhotoresistors() {
		return fmt.Errorf("%w: driver and all four photoresistors must be wired", ErrIncompletePhotoresistors)
	}

	seen := make(map[Pin]string)
	for _, np := range p.wired() {
		if other, dup := seen[np.pin]; dup {
			return fmt.Errorf("%w: pin %s used by %s and %s", ErrPinConflict, np.pin, other, np.name)
		}
		seen[np.pin] = np.name
	}
	return nil
}
