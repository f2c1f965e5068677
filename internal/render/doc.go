// Package render hosts the motion chain: it owns the frame loop, routes
// pointer/orientation/resize events to the input normalizer, and exposes the
// per-node transforms a host paints.
//
// Hosts either call [Adapter.Dispatch] and [Adapter.Tick] themselves (the
// terminal view does this from its own update loop) or hand the adapter an
// event channel and let [Adapter.Run] drive a 60 Hz ticker.
//
// An adapter whose container has not been measured yet is simply not ready:
// ticks are skipped until the next resize supplies a usable size.
package render
