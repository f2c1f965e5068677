package input

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/chainsim/internal/motion"
)

func TestNewPermission_InitialState(t *testing.T) {
	tests := []struct {
		name string
		caps Capabilities
		want PermissionState
	}{
		{"no orientation", Capabilities{Touch: true}, PermissionUnsupported},
		{"prompt required", Capabilities{Touch: true, Orientation: true, PermissionRequired: true}, PermissionPending},
		{"no prompt", Capabilities{Touch: true, Orientation: true}, PermissionGranted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewPermission(tt.caps).State(); got != tt.want {
				t.Errorf("initial state = %v, want %v", got, tt.want)
			}
		})
	}
}

func promptCaps() Capabilities {
	return Capabilities{Touch: true, Orientation: true, PermissionRequired: true}
}

func TestPermission_Request(t *testing.T) {
	tests := []struct {
		name    string
		granted bool
		err     error
		want    PermissionState
	}{
		{"granted", true, nil, PermissionGranted},
		{"denied", false, nil, PermissionDenied},
		{"failed", true, errors.New("boom"), PermissionDenied},
		{"unsupported", false, motion.ErrUnsupported, PermissionUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPermission(promptCaps())
			r := RequesterFunc(func(context.Context) (bool, error) { return tt.granted, tt.err })
			if got := p.Request(context.Background(), r); got != tt.want {
				t.Errorf("Request() = %v, want %v", got, tt.want)
			}
			if p.Active() != (tt.want == PermissionGranted) {
				t.Errorf("Active() = %v for state %v", p.Active(), tt.want)
			}
		})
	}
}

func TestPermission_Err(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"refused", motion.ErrPermissionDenied, motion.ErrPermissionDenied},
		{"no api", motion.ErrUnsupported, motion.ErrUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPermission(promptCaps())
			if err := p.Err(); err != nil {
				t.Fatalf("pending permission should have no error, got %v", err)
			}
			p.Request(context.Background(), RequesterFunc(func(context.Context) (bool, error) { return false, tt.err }))
			if !errors.Is(p.Err(), tt.want) {
				t.Errorf("Err() = %v, want %v", p.Err(), tt.want)
			}
		})
	}

	granted := NewPermission(Capabilities{Orientation: true})
	granted.Request(context.Background(), nil)
	if granted.Err() != nil {
		t.Errorf("granted permission should have no error, got %v", granted.Err())
	}
}

func TestPermission_NilRequester(t *testing.T) {
	p := NewPermission(promptCaps())
	if got := p.Request(context.Background(), nil); got != PermissionUnsupported {
		t.Errorf("missing permission API should be unsupported, got %v", got)
	}
}

func TestPermission_TerminalStates(t *testing.T) {
	p := NewPermission(promptCaps())
	p.Request(context.Background(), RequesterFunc(func(context.Context) (bool, error) { return false, nil }))

	calls := 0
	again := RequesterFunc(func(context.Context) (bool, error) { calls++; return true, nil })
	if got := p.Request(context.Background(), again); got != PermissionDenied {
		t.Errorf("denied must be terminal, got %v", got)
	}
	if calls != 0 {
		t.Error("no retry should reach the platform after denial")
	}
}

func TestPermission_StaleTicket(t *testing.T) {
	p := NewPermission(promptCaps())
	t1, ok := p.Begin()
	if !ok {
		t.Fatal("expected to begin a request")
	}
	if _, ok := p.Begin(); ok {
		t.Error("a second request must not start while one is in flight")
	}
	if got := p.Resolve(t1+1, true, nil); got != PermissionPending {
		t.Errorf("stale ticket should be ignored, got %v", got)
	}
	if got := p.Resolve(t1, true, nil); got != PermissionGranted {
		t.Errorf("current ticket should resolve, got %v", got)
	}
}

func TestPermission_InvalidateDropsResult(t *testing.T) {
	p := NewPermission(promptCaps())
	tk, _ := p.Begin()
	p.Invalidate()

	if got := p.Resolve(tk, true, nil); got != PermissionPending {
		t.Errorf("result after unmount should be dropped, got %v", got)
	}
	if p.Active() || p.NeedsGesture() {
		t.Error("invalidated permission must be inert")
	}
}

func TestPermission_CancelledContext(t *testing.T) {
	p := NewPermission(promptCaps())
	ctx, cancel := context.WithCancel(context.Background())
	r := RequesterFunc(func(context.Context) (bool, error) {
		cancel()
		return true, nil
	})
	p.Request(ctx, r)
	if p.Active() {
		t.Error("grant arriving after cancellation must not activate orientation")
	}
}

func TestProbe(t *testing.T) {
	env := map[string]string{
		"CHAINSIM_TOUCH":          "true",
		"CHAINSIM_ORIENTATION":    "1",
		"CHAINSIM_COARSE_POINTER": "maybe",
	}
	caps := Probe(Capabilities{CoarsePointer: true}, func(k string) string { return env[k] })

	if !caps.Touch || !caps.Orientation {
		t.Errorf("env overrides not applied: %+v", caps)
	}
	if !caps.CoarsePointer {
		t.Error("unparseable value should leave base untouched")
	}
	if caps.HitSlop() == 0 {
		t.Error("touch devices should get hit slop")
	}
}
