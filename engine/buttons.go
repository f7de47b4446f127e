package engine

// Button codes shared by move interpreters. Mouse buttons, their drag
// and release counterparts, and cursor keys occupy a contiguous range;
// modifiers are OR-ed in as high bits. Interpreters must treat any
// code they do not recognise as "no move".
const (
	LeftButton = 0x0200 + iota
	MiddleButton
	RightButton
	LeftDrag
	MiddleDrag
	RightDrag
	LeftRelease
	MiddleRelease
	RightRelease
	CursorUp
	CursorDown
	CursorLeft
	CursorRight
	CursorSelect
	CursorSelect2
)

const (
	ModCtrl      = 0x1000
	ModShift     = 0x2000
	ModNumKeypad = 0x4000
	ModMask      = 0x7000
)

// StripButtonModifiers removes modifier bits from a button code.
func StripButtonModifiers(button int) int {
	return button &^ ModMask
}

// IsCursorMove reports whether button is one of the four cursor keys,
// after stripping modifiers.
func IsCursorMove(button int) bool {
	b := StripButtonModifiers(button)
	return b >= CursorUp && b <= CursorRight
}
