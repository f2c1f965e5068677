// Package input turns raw host events into the chain's target offset.
//
//   - [Normalizer]: pointer and device-orientation events to a clamped target
//   - [Capabilities]: one-time probe of what the host device supports
//   - [Permission]: orientation permission state machine
//
// Handlers only ever write the target. Advancing nodes is the integrator's job.
package input
