package input

import (
	"context"
	"errors"

	"github.com/san-kum/chainsim/internal/motion"
)

type PermissionState int

const (
	PermissionPending PermissionState = iota
	PermissionGranted
	PermissionDenied
	PermissionUnsupported
)

func (s PermissionState) String() string {
	switch s {
	case PermissionPending:
		return "pending"
	case PermissionGranted:
		return "granted"
	case PermissionDenied:
		return "denied"
	case PermissionUnsupported:
		return "unsupported"
	}
	return "unknown"
}

// Requester asks the platform for orientation access.
type Requester interface {
	RequestOrientation(ctx context.Context) (bool, error)
}

type RequesterFunc func(ctx context.Context) (bool, error)

func (f RequesterFunc) RequestOrientation(ctx context.Context) (bool, error) { return f(ctx) }

// Ticket identifies one in-flight request.
type Ticket uint64

// Permission is the orientation permission state machine:
// pending -> granted | denied | unsupported. Every non-pending state is
// terminal for the session.
type Permission struct {
	state       PermissionState
	required    bool
	ticket      Ticket
	inFlight    bool
	invalidated bool
}

func NewPermission(caps Capabilities) *Permission {
	p := &Permission{required: caps.PermissionRequired}
	switch {
	case !caps.Orientation:
		p.state = PermissionUnsupported
	case caps.PermissionRequired:
		p.state = PermissionPending
	default:
		p.state = PermissionGranted
	}
	return p
}

func (p *Permission) State() PermissionState { return p.state }

// Active reports whether orientation events should be listened to.
func (p *Permission) Active() bool { return p.state == PermissionGranted && !p.invalidated }

// Err returns the sentinel matching a terminal refusal: ErrPermissionDenied
// or ErrUnsupported. It is nil while pending or granted.
func (p *Permission) Err() error {
	switch p.state {
	case PermissionDenied:
		return motion.ErrPermissionDenied
	case PermissionUnsupported:
		return motion.ErrUnsupported
	}
	return nil
}

// NeedsGesture reports whether a user gesture could still enable orientation.
func (p *Permission) NeedsGesture() bool {
	return p.state == PermissionPending && !p.inFlight && !p.invalidated
}

// Begin starts a request. It returns false when no request may be made.
func (p *Permission) Begin() (Ticket, bool) {
	if p.invalidated || p.state != PermissionPending || p.inFlight {
		return 0, false
	}
	p.ticket++
	p.inFlight = true
	return p.ticket, true
}

// Resolve applies the outcome of the request identified by t. Stale tickets
// and results arriving after Invalidate are dropped.
func (p *Permission) Resolve(t Ticket, granted bool, err error) PermissionState {
	if p.invalidated || !p.inFlight || t != p.ticket || p.state != PermissionPending {
		return p.state
	}
	p.inFlight = false
	switch {
	case errors.Is(err, motion.ErrUnsupported):
		p.state = PermissionUnsupported
	case err != nil, !granted:
		p.state = PermissionDenied
	default:
		p.state = PermissionGranted
	}
	return p.state
}

// Request runs a full request synchronously. When no prompt is required the
// permission is granted without consulting r; a nil r on a platform that
// requires a prompt means the permission API is absent.
func (p *Permission) Request(ctx context.Context, r Requester) PermissionState {
	t, ok := p.Begin()
	if !ok {
		return p.state
	}
	if !p.required {
		return p.Resolve(t, true, nil)
	}
	if r == nil {
		return p.Resolve(t, false, motion.ErrUnsupported)
	}
	granted, err := r.RequestOrientation(ctx)
	if ctx.Err() != nil {
		p.Invalidate()
		return p.state
	}
	return p.Resolve(t, granted, err)
}

// Invalidate drops any pending request; used on unmount.
func (p *Permission) Invalidate() {
	p.invalidated = true
	p.inFlight = false
}
