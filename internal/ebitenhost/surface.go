package ebitenhost

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Surface draws onto the screen image handed to Draw. Target is swapped in
// every frame.
type Surface struct {
	Target     *ebiten.Image
	Background color.NRGBA
}

func (s *Surface) ClearRect(x, y, w, h float64) {
	if s.Target == nil {
		return
	}
	b := s.Target.Bounds()
	if x <= 0 && y <= 0 && int(w) >= b.Dx() && int(h) >= b.Dy() {
		s.Target.Fill(s.Background)
		return
	}
	vector.DrawFilledRect(s.Target, float32(x), float32(y), float32(w), float32(h), s.Background, false)
}

func (s *Surface) FillCircle(x, y, r float64, c color.NRGBA) {
	if s.Target == nil {
		return
	}
	vector.DrawFilledCircle(s.Target, float32(x), float32(y), float32(r), c, true)
}

func (s *Surface) StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA) {
	if s.Target == nil {
		return
	}
	vector.StrokeLine(s.Target, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), c, true)
}
