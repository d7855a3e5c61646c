package calculator

import "image/color"

// gradient is a vertical two-colour fill; every pixel of row i has rows[i].
type gradient struct {
	w, h int
	rows []color.RGBA
}

func newGradient(w, h int, top, bottom color.RGBA) *gradient {
	g := &gradient{w: w, h: h, rows: make([]color.RGBA, h)}
	for i := 0; i < h; i++ {
		g.rows[i] = color.RGBA{
			R: lerpChannel(top.R, bottom.R, i, h),
			G: lerpChannel(top.G, bottom.G, i, h),
			B: lerpChannel(top.B, bottom.B, i, h),
			A: 0xFF,
		}
	}
	return g
}

// lerpChannel is c1 + floor((c2-c1)*i/h).
func lerpChannel(c1, c2 uint8, i, h int) uint8 {
	return uint8(int(c1) + floorDiv((int(c2)-int(c1))*i, h))
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func (g *gradient) draw(d *fbDisplay, x, y int16) {
	for i, c := range g.rows {
		_ = d.FillRectangle(x, y+int16(i), int16(g.w), 1, c)
	}
}
