package galaxies

import "errors"

// Validation errors are shown to the user as-is.
var (
	ErrTooSmall = errors.New("Width and height must both be at least 3")
	ErrTooLarge = errors.New("Width times height must not be unreasonably large")

	ErrDescChar    = errors.New("Invalid characters in game description")
	ErrDescTooLong = errors.New("Too much data to fit in grid")
	ErrDotsClose   = errors.New("Dots too close together")
)
