package dominosa

import "errors"

// Validation errors are shown to the user as-is.
var (
	ErrFaceTooSmall      = errors.New("Maximum face number must be at least one")
	ErrFaceTooLarge      = errors.New("Maximum face number must not be unreasonably large")
	ErrUnknownDifficulty = errors.New("Unknown difficulty rating")

	ErrDescShort     = errors.New("Game description is too short")
	ErrDescLong      = errors.New("Game description is too long")
	ErrMissingClose  = errors.New("Missing ']' in game description")
	ErrDescSyntax    = errors.New("Invalid syntax in game description")
	ErrNumberRange   = errors.New("Number out of range in game description")
	ErrNumberBalance = errors.New("Incorrect number balance in game description")
)
