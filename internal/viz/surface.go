package viz

import (
	"image/color"
	"math"
)

// CanvasSurface draws simulation coordinates onto a braille Canvas. One
// sub-pixel covers Scale simulation units. Braille has no opacity, so lines
// fainter than MinAlpha are skipped.
type CanvasSurface struct {
	Canvas   *Canvas
	Scale    float64
	MinAlpha uint8
}

func NewCanvasSurface(c *Canvas, scale float64) *CanvasSurface {
	return &CanvasSurface{Canvas: c, Scale: scale, MinAlpha: 16}
}

func (s *CanvasSurface) sub(v float64) int {
	return int(math.Floor(v / s.Scale))
}

func (s *CanvasSurface) ClearRect(x, y, w, h float64) {
	x0, y0 := s.sub(x), s.sub(y)
	x1, y1 := s.sub(x+w), s.sub(y+h)
	if x0 <= 0 && y0 <= 0 && x1 >= s.Canvas.SubWidth() && y1 >= s.Canvas.SubHeight() {
		s.Canvas.Clear()
		return
	}
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			s.Canvas.Unset(px, py)
		}
	}
}

func (s *CanvasSurface) FillCircle(x, y, r float64, c color.NRGBA) {
	s.Canvas.DrawDisc(s.sub(x), s.sub(y), r/s.Scale)
}

func (s *CanvasSurface) StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA) {
	if c.A < s.MinAlpha {
		return
	}
	s.Canvas.DrawLine(s.sub(x0), s.sub(y0), s.sub(x1), s.sub(y1))
}
