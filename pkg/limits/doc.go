// Package limits implements the actuator safety limits of a tracker board.
//
// A Limits value is the single validated source of truth for the thresholds
// consumed by an actuator control loop: how many analog samples make up a
// reading, how long shunt and vref readings are distrusted after a motor
// starts, at which current a motor is considered stalled, below which supply
// reference movements are inhibited and how long a single movement may run.
//
// # Lifecycle
//
// Limits are built once from a Config with New (or MustNew for compiled-in
// profiles, which halts package initialisation on an invalid constant set) and
// are never mutated afterwards. A *Limits is safe for concurrent readers.
//
// # Guard Window
//
// The guard window is the interval right after a movement starts during which
// motor inrush current makes shunt and vref readings meaningless. It must fit
// inside the movement window:
//
//	GuardWindow < MaxMovement
//
// # Shunt Thresholds
//
// Boards either share one current-sense threshold between both motors or
// configure one per motor (the left actuator of some trackers strains more
// than the right one). A side without a dedicated threshold falls back to the
// shared one. Readings that cannot be attributed to a motor use the lowest
// effective threshold.
//
// # Tracking
//
// Solar-tracking boards add light and photoresistor thresholds, a cap on the
// active time per work session and a sleep delay between sessions. These are
// optional; the tracking predicates answer false on boards without them.
package limits
