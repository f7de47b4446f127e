package pattern

import "errors"

// Validation errors are shown to the user as-is.
var (
	ErrDimsNonPositive = errors.New("Width and height must both be greater than zero")
	ErrTooLarge        = errors.New("Puzzle must not be unreasonably large")

	ErrClueNegative  = errors.New("at least one clue is negative")
	ErrClueExcessive = errors.New("at least one clue is grossly excessive")
	ErrColOverfull   = errors.New("at least one column contains more numbers than will fit")
	ErrRowOverfull   = errors.New("at least one row contains more numbers than will fit")
	ErrTooManySpecs  = errors.New("too many row/column specifications")
	ErrTooFewSpecs   = errors.New("too few row/column specifications")
	ErrBadChar       = errors.New("unrecognised character in game specification")
	ErrCluesTooLong  = errors.New("too much data in clue-squares section")
	ErrCluesTooShort = errors.New("too little data in clue-squares section")
	ErrCluesBadChar  = errors.New("unrecognised character in clue-squares section")

	ErrCannotSolve = errors.New("Solving algorithm cannot complete this puzzle")
)
