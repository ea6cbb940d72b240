package editlock

import "errors"

var (
	// ErrNoFocus is returned when a session toggles edit mode without a
	// focused dashboard.
	ErrNoFocus = errors.New("editlock: no dashboard focused")

	// ErrSessionClosed is returned by operations on a closed session.
	ErrSessionClosed = errors.New("editlock: session closed")
)
