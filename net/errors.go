package net

import "errors"

// Validation errors are shown to the user as-is, so their text omits
// the usual package prefix.
var (
	ErrDimsNonPositive = errors.New("Width and height must both be greater than zero")
	ErrAreaTooSmall    = errors.New("At least one of width and height must be greater than one")
	ErrAreaTooLarge    = errors.New("Width times height must not be unreasonably large")
	ErrBarrierNegative = errors.New("Barrier probability may not be negative")
	ErrBarrierTooHigh  = errors.New("Barrier probability may not be greater than 1")
	ErrWrappingTwo     = errors.New("No wrapping puzzle with a width or height of 2 can have a unique solution")

	ErrDescShort = errors.New("Game description shorter than expected")
	ErrDescChar  = errors.New("Game description contained unexpected character")
	ErrDescLong  = errors.New("Game description longer than expected")

	ErrNoSolution = errors.New("No solution exists for this puzzle")
)
