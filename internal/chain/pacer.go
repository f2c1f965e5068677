package chain

import "time"

// FrameInterval is the target update period: 60 Hz regardless of display rate.
const FrameInterval = time.Second / 60

// frameSlack absorbs timer jitter so a 60 Hz ticker is not throttled to 30 Hz.
const frameSlack = time.Millisecond

// Pacer throttles updates to one per interval.
type Pacer struct {
	interval time.Duration
	last     time.Time
	started  bool
}

func NewPacer(interval time.Duration) *Pacer {
	if interval <= 0 {
		interval = FrameInterval
	}
	return &Pacer{interval: interval}
}

// Ready reports whether a frame should run at now, and records it if so.
func (p *Pacer) Ready(now time.Time) bool {
	if p.started && now.Sub(p.last)+frameSlack < p.interval {
		return false
	}
	p.last = now
	p.started = true
	return true
}

func (p *Pacer) Interval() time.Duration { return p.interval }

// Reset forgets the last frame so the next call runs immediately.
func (p *Pacer) Reset() { p.started = false }
