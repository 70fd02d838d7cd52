package board

import (
	"encoding/hex"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/blake2b"
)

// fingerprintEncMode encodes profiles deterministically so equal profiles
// always hash to the same value.
var fingerprintEncMode cbor.EncMode

func init() {
	var err error
	encOpts := cbor.CoreDetEncOptions()
	fingerprintEncMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create fingerprint CBOR encoder mode: %v", err))
	}
}

// fingerprintDoc is the hashed form of a profile. Description is left out
// so rewording it does not invalidate a stored selection.
type fingerprintDoc struct {
	Name        string  `cbor:"1,keyasint"`
	Target      string  `cbor:"2,keyasint"`
	Pins        []byte  `cbor:"3,keyasint"`
	MaxSamples  int     `cbor:"4,keyasint"`
	GuardWindow int64   `cbor:"5,keyasint"`
	MaxMovement int64   `cbor:"6,keyasint"`
	MinVref     int     `cbor:"7,keyasint"`
	Shunt       [3]int  `cbor:"8,keyasint"`
	Tracking    []int64 `cbor:"9,keyasint,omitempty"`
}

// Fingerprint returns the hex BLAKE2b-256 digest of the canonical CBOR
// encoding of p.
func Fingerprint(p Profile) string {
	cfg := p.Limits.Config()

	pins := []byte{
		byte(p.Pins.ActuatorRight.Pin1), byte(p.Pins.ActuatorRight.Pin2),
		byte(p.Pins.ActuatorLeft.Pin1), byte(p.Pins.ActuatorLeft.Pin2),
		byte(p.Pins.Shunt), byte(p.Pins.Vref),
		byte(p.Pins.PhotoresistorDriver), byte(p.Pins.Mosfet),
	}
	for _, pr := range p.Pins.Photoresistors {
		pins = append(pins, byte(pr))
	}

	doc := fingerprintDoc{
		Name:        p.Name,
		Target:      p.Target,
		Pins:        pins,
		MaxSamples:  cfg.MaxSamples,
		GuardWindow: int64(cfg.GuardWindow),
		MaxMovement: int64(cfg.MaxMovement),
		MinVref:     cfg.MinVref,
		Shunt:       [3]int{cfg.Shunt.Shared, cfg.Shunt.Right, cfg.Shunt.Left},
	}
	if t := cfg.Tracking; t != nil {
		doc.Tracking = []int64{
			int64(t.LightThreshold),
			int64(t.PhotoresistorDifferential),
			int64(t.MaxWork),
			int64(t.SleepDelay),
		}
	}

	data, err := fingerprintEncMode.Marshal(doc)
	if err != nil {
		// Only fixed-shape scalars are encoded; this cannot fail.
		panic(fmt.Sprintf("board: encoding fingerprint: %v", err))
	}

	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}
