package cube

import "errors"

// Validation errors are shown to the user as-is.
var (
	ErrBadSolid  = errors.New("Unrecognised solid type")
	ErrTooSmall  = errors.New("Both grid dimensions must be at least one")
	ErrTooLarge  = errors.New("Grid dimensions must not be unreasonably large")
	ErrBlueSpace = errors.New("Not enough grid space to place all blue faces")

	ErrDescChar   = errors.New("Invalid characters in game description")
	ErrDescShort  = errors.New("Game description is too short")
	ErrStartRange = errors.New("Starting square out of range")
	ErrStartBlue  = errors.New("Starting square must not be blue")
)
