package render

import "github.com/san-kum/chainsim/internal/motion"

type EventKind int

const (
	EventPointerDown EventKind = iota
	EventPointerMove
	EventPointerUp
	EventPointerCancel
	EventOrientation
	EventResize
)

func (k EventKind) String() string {
	switch k {
	case EventPointerDown:
		return "down"
	case EventPointerMove:
		return "move"
	case EventPointerUp:
		return "up"
	case EventPointerCancel:
		return "cancel"
	case EventOrientation:
		return "orient"
	case EventResize:
		return "resize"
	}
	return "unknown"
}

// Event is a raw host event. X and Y are client pixels; Beta and Gamma are
// degrees; Host is the host element's client rectangle for resizes.
type Event struct {
	Kind  EventKind
	X, Y  float64
	Beta  float64
	Gamma float64
	Host  motion.Rect
}

func PointerDown(x, y float64) Event { return Event{Kind: EventPointerDown, X: x, Y: y} }
func PointerMove(x, y float64) Event { return Event{Kind: EventPointerMove, X: x, Y: y} }
func PointerUp(x, y float64) Event   { return Event{Kind: EventPointerUp, X: x, Y: y} }
func PointerCancel() Event           { return Event{Kind: EventPointerCancel} }

func Orientation(beta, gamma float64) Event {
	return Event{Kind: EventOrientation, Beta: beta, Gamma: gamma}
}

func Resize(host motion.Rect) Event { return Event{Kind: EventResize, Host: host} }
