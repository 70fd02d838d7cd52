// Package board describes tracker board variants as named profiles.
//
// A Profile pairs the pin wiring of a board (two actuator H-bridge pairs, the
// shunt and vref analog inputs and, on solar-tracking boards, the
// photoresistor array and load mosfet) with its validated safety limits.
// Board variants that used to be near-identical copies of the same header now
// live side by side in a Registry and one of them is selected explicitly at
// startup.
//
// # Built-in Profiles
//
//   - actuator-movements: two actuators sharing one shunt threshold
//   - solar-tracker-reinvented: tracking board with per-motor shunt thresholds
//
// # Profile Files
//
// Further variants are described in YAML and merged into a registry:
//
//	profiles:
//	  - name: garden-tracker
//	    target: avr
//	    pins:
//	      actuator_right: [4, 7]
//	      actuator_left: [6, 5]
//	      shunt: 18
//	      vref: 21
//	    limits:
//	      max_samples: 10
//	      guard_window: 500ms
//	      max_movement: 800ms
//	      min_vref: 80
//	      shunt:
//	        right: 30
//	        left: 35
//
// # Fingerprints
//
// Fingerprint hashes the canonical CBOR form of a profile so a persisted
// selection can detect that the profile it names has changed since.
package board
