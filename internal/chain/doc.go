// Package chain advances the follow-the-leader motion chain.
//
// Once per frame the innermost node eases toward the target and every other
// node eases toward the node ahead of it, tail to head, so each follower sees
// its leader's position from the same frame. After every update a node is
// clamped so its bounding box stays inside the container.
//
// # Example
//
//	sched, _ := schedule.New(schedule.DefaultSpec(), 12, size, 0)
//	c := chain.New(12, motion.DefaultParams(), sched)
//	for pacer.Ready(now) {
//	    c.Step(normalizer.Target())
//	}
//
// # Thread Safety
//
// A Chain is NOT safe for concurrent use. The render adapter drives it from a
// single goroutine.
package chain
