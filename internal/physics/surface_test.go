package physics

import "image/color"

type circleCall struct {
	x, y, r float64
	c       color.NRGBA
}

type lineCall struct {
	x0, y0, x1, y1, width float64
	c                     color.NRGBA
}

type fakeSurface struct {
	clears  int
	circles []circleCall
	lines   []lineCall
}

func (f *fakeSurface) ClearRect(x, y, w, h float64) { f.clears++ }

func (f *fakeSurface) FillCircle(x, y, r float64, c color.NRGBA) {
	f.circles = append(f.circles, circleCall{x, y, r, c})
}

func (f *fakeSurface) StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA) {
	f.lines = append(f.lines, lineCall{x0, y0, x1, y1, width, c})
}
