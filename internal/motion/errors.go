package motion

import "errors"

// Domain errors. None of them is ever returned from a per-frame or input path;
// they surface only at configuration and capability edges.
var (
	// ErrNotReady indicates the container has not been measured yet.
	ErrNotReady = errors.New("motion: container not ready")

	// ErrUnsupported indicates the platform lacks device orientation support.
	ErrUnsupported = errors.New("motion: device orientation unsupported")

	// ErrPermissionDenied indicates the user refused orientation access.
	ErrPermissionDenied = errors.New("motion: orientation permission denied")

	// ErrParameterBounds indicates a configuration value could not be interpreted.
	ErrParameterBounds = errors.New("motion: parameter out of valid bounds")

	// ErrUnknownPreset indicates a preset name that is not registered.
	ErrUnknownPreset = errors.New("motion: unknown preset")
)
