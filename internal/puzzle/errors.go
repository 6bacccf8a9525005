package puzzle

import "errors"

// Error kinds returned by the engine. Callers match them with errors.Is;
// the concrete error wraps one of these with details.
//
// None of them is fatal: a failed call leaves the session exactly as it was.
var (
	// ErrInvalidArgument: bad piece count, missing image, unusable layout,
	// unknown or locked tile.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotReady: the image pixel size is not known yet, or a load result
	// belongs to a superseded start.
	ErrNotReady = errors.New("not ready")

	// ErrPrematureOperation: pointer events for a pointer that is not
	// dragging, or operations on a session that is idle or already complete.
	ErrPrematureOperation = errors.New("premature operation")
)
