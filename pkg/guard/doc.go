// Package guard composes a board's safety limits into stop decisions for a
// running actuator.
//
// A Guard is bound to one set of limits. Before a movement it decides
// whether the supply and the light allow starting at all (CanStart). During a
// movement the caller feeds shunt and vref readings to the Movement, which
// answers with a Verdict. Every decision that is not "continue" is recorded
// through the configured log.Logger.
//
// Evaluation order for a running movement:
//
//  1. movement longer than the maximum duration: Timeout, regardless of sensors
//  2. inside the start-up guard window: GuardWindow, readings are ignored
//  3. shunt above the threshold of the moving side: Overcurrent
//  4. vref below the minimum: UnderVoltage
//  5. otherwise Continue
//
// The first stop verdict of a movement is final. Which direction to drive and
// when to move are left to the caller.
package guard
