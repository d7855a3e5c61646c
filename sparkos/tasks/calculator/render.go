package calculator

import (
	"unicode/utf8"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freesans"
)

var (
	labelFont tinyfont.Fonter = &freesans.Bold12pt7b
	entryFont tinyfont.Fonter = &freesans.Bold18pt7b
)

const (
	// Approximate digit heights above the baseline, used for vertical centring.
	labelCapHeight = 17
	entryCapHeight = 25

	entryPadX  = 10
	focusWidth = 2
)

func (t *Task) renderAll() {
	if t.d == nil {
		return
	}
	_ = t.d.FillRectangle(0, 0, WindowWidth, WindowHeight, colorWindowBG)
	t.renderEntry()
	for _, b := range Buttons {
		t.renderButton(b)
	}
	_ = t.d.Display()
}

func (t *Task) renderEntry() {
	if t.d == nil {
		return
	}
	_ = t.d.FillRectangle(0, 0, WindowWidth, EntryHeight, colorEntryBG)
	text := fitTail(entryFont, t.calc.Display(), WindowWidth-2*entryPadX)
	if text == "" {
		return
	}
	baseline := int16((EntryHeight + entryCapHeight) / 2)
	tinyfont.WriteLine(t.d, entryFont, entryPadX, baseline, text, colorEntryFG)
}

func (t *Task) renderButton(b Button) {
	if t.d == nil {
		return
	}
	x, y := int16(b.X), int16(b.Y)
	if img := t.images[b.ID]; img != nil {
		img.draw(t.d, x, y)
	}

	_, w := tinyfont.LineWidth(labelFont, b.Label)
	lx := x + int16((ButtonWidth-int(w))/2)
	ly := y + int16((ButtonHeight+labelCapHeight)/2)
	tinyfont.WriteLine(t.d, labelFont, lx, ly, b.Label, b.Style.Text)

	if t.focusVisible && t.focus == b.ID {
		t.outline(x, y, ButtonWidth, ButtonHeight)
	}
}

func (t *Task) outline(x, y, w, h int16) {
	_ = t.d.FillRectangle(x, y, w, focusWidth, colorFocus)
	_ = t.d.FillRectangle(x, y+h-focusWidth, w, focusWidth, colorFocus)
	_ = t.d.FillRectangle(x, y, focusWidth, h, colorFocus)
	_ = t.d.FillRectangle(x+w-focusWidth, y, focusWidth, h, colorFocus)
}

// fitTail returns the longest suffix of s whose advance width fits in
// maxWidth pixels.
func fitTail(f tinyfont.Fonter, s string, maxWidth int) string {
	w := 0
	i := len(s)
	for i > 0 {
		r, sz := utf8.DecodeLastRuneInString(s[:i])
		w += int(f.GetGlyph(r).Info().XAdvance)
		if w > maxWidth {
			break
		}
		i -= sz
	}
	return s[i:]
}
