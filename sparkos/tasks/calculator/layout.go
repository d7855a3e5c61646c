package calculator

import "image/color"

const (
	WindowWidth  = 357
	WindowHeight = 420

	EntryHeight = 50

	ButtonWidth  = 88
	ButtonHeight = 73

	cols = 4
	rows = 5
)

var (
	colorWindowBG = color.RGBA{R: 0x3a, G: 0x3a, B: 0x3a, A: 0xFF}
	colorEntryBG  = color.RGBA{R: 0x25, G: 0x25, B: 0x25, A: 0xFF}
	colorEntryFG  = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	colorFocus    = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	colorBlack    = color.RGBA{A: 0xFF}
)

// Style is a button's gradient (top to bottom) and label colour.
type Style struct {
	Top    color.RGBA
	Bottom color.RGBA
	Text   color.RGBA
}

var (
	styleFunc  = Style{Top: rgb(0xEAEAEA), Bottom: rgb(0xC0C0C0), Text: colorBlack}
	styleNum   = Style{Top: rgb(0x808080), Bottom: rgb(0x505050), Text: colorEntryFG}
	styleOp    = Style{Top: rgb(0xFFC107), Bottom: rgb(0xFFA000), Text: colorEntryFG}
	styleEq    = Style{Top: rgb(0x8BC34A), Bottom: rgb(0x689F38), Text: colorEntryFG}
	styleClear = Style{Top: rgb(0xF44336), Bottom: rgb(0xD32F2F), Text: colorEntryFG}
)

func rgb(v uint32) color.RGBA {
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}
}

// Action is what activating a button does to the calculator.
type Action uint8

const (
	ActionAppend Action = iota
	ActionClear
	ActionSolve
)

// ButtonID indexes the keypad in row-major order.
type ButtonID uint8

// Button is one keypad cell. Token is appended for ActionAppend.
type Button struct {
	ID     ButtonID
	Label  string
	Token  string
	X, Y   int
	Style  Style
	Action Action
}

var (
	columnX = [cols]int{0, 90, 180, 270}
	rowY    = [rows]int{50, 125, 200, 275, 350}
)

type cell struct {
	label  string
	style  Style
	action Action
}

var grid = [rows][cols]cell{
	{{"(", styleFunc, ActionAppend}, {")", styleFunc, ActionAppend}, {"%", styleFunc, ActionAppend}, {"/", styleOp, ActionAppend}},
	{{"1", styleNum, ActionAppend}, {"2", styleNum, ActionAppend}, {"3", styleNum, ActionAppend}, {"+", styleOp, ActionAppend}},
	{{"4", styleNum, ActionAppend}, {"5", styleNum, ActionAppend}, {"6", styleNum, ActionAppend}, {"-", styleOp, ActionAppend}},
	{{"7", styleNum, ActionAppend}, {"8", styleNum, ActionAppend}, {"9", styleNum, ActionAppend}, {"*", styleOp, ActionAppend}},
	{{"C", styleClear, ActionClear}, {"0", styleNum, ActionAppend}, {".", styleNum, ActionAppend}, {"=", styleEq, ActionSolve}},
}

// Buttons is the fixed keypad, row-major.
var Buttons = buildButtons()

func buildButtons() []Button {
	out := make([]Button, 0, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			g := grid[r][c]
			b := Button{
				ID:     ButtonID(r*cols + c),
				Label:  g.label,
				X:      columnX[c],
				Y:      rowY[r],
				Style:  g.style,
				Action: g.action,
			}
			if g.action == ActionAppend {
				b.Token = g.label
			}
			out = append(out, b)
		}
	}
	return out
}

// HitTest returns the button under (x, y). Gaps between buttons and the
// entry field hit nothing.
func HitTest(x, y int) (ButtonID, bool) {
	for _, b := range Buttons {
		if x >= b.X && x < b.X+ButtonWidth && y >= b.Y && y < b.Y+ButtonHeight {
			return b.ID, true
		}
	}
	return 0, false
}

// ButtonForRune maps a typed character to the button with the same label.
// 'c' selects C.
func ButtonForRune(r rune) (ButtonID, bool) {
	if r == 'c' {
		r = 'C'
	}
	for _, b := range Buttons {
		if len(b.Label) == 1 && rune(b.Label[0]) == r {
			return b.ID, true
		}
	}
	return 0, false
}

// neighbor moves one cell in the keypad grid, stopping at the edges.
func neighbor(id ButtonID, dc, dr int) ButtonID {
	r := int(id)/cols + dr
	c := int(id)%cols + dc
	if r < 0 {
		r = 0
	}
	if r >= rows {
		r = rows - 1
	}
	if c < 0 {
		c = 0
	}
	if c >= cols {
		c = cols - 1
	}
	return ButtonID(r*cols + c)
}
