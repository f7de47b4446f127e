package tracks

import "errors"

// Validation errors are shown to the user as-is.
var (
	ErrTooSmall = errors.New("Width and height must both be at least four")
	ErrTooLarge = errors.New("Width times height must not be unreasonably large")

	ErrDescChar     = errors.New("Game description contained unexpected characters")
	ErrClueNotTwo   = errors.New("Clue did not provide 2 direction flags")
	ErrNumbersShort = errors.New("Not enough numbers given after grid specification")
	ErrNumbersChar  = errors.New("Invalid character in number list")
	ErrEntranceExit = errors.New("Puzzle must have one entrance and one exit")
	ErrDescLong     = errors.New("Unexpected additional character at end of game description")
)
