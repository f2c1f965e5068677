// Package viz hosts a chain in the terminal with Bubble Tea.
//
// Each terminal cell is treated as an 8x16 block of client pixels and drawn
// as two half-block pixels, so the chain keeps the proportions it would have
// in a browser layout. The mouse drives the pointer path; arrow keys tilt a
// simulated device for the gyro path.
//
// # Key Bindings
//
//	mouse  - drag the innermost square (or hover, for follow-hover presets)
//	arrows - tilt the simulated device
//	p      - request orientation permission
//	c      - copy parameters to the clipboard (OSC 52)
//	s      - save a PNG still
//	t      - cycle color themes
//	?      - show help overlay
package viz
