// Package motion provides the shared vocabulary of the motion chain engine.
//
// The engine animates N nested squares that trail a moving target:
//
//   - [Vec2]: a position or offset in the chain's local coordinate space
//   - [Size]: a width/height pair in host pixels
//   - [Params]: per-session easing and sensitivity configuration
//   - [Budget]: how the container size is derived from its parent
//   - [Transform]: the paintable output for a single node
//
// Coordinates are centered: (0, 0) is the middle of the container, x grows to
// the right and y grows downward, matching pointer client coordinates.
//
// Node 0 is the outermost, largest square. Node N-1 is the innermost one and
// is the node directly driven by input.
package motion
