package audit

import (
	"errors"
	"fmt"
)

// ErrInvalidDimension is returned for unknown breakdown dimensions.
var ErrInvalidDimension = errors.New("invalid breakdown dimension")

// InvalidDimension wraps ErrInvalidDimension with the offending value.
func InvalidDimension(d BreakdownDimension) error {
	return fmt.Errorf("%w: %q", ErrInvalidDimension, d)
}
