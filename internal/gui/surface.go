package gui

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Surface draws onto the raylib frame in progress. It is only valid
// between BeginDrawing and EndDrawing.
type Surface struct {
	Background rl.Color
}

func rlColor(c color.NRGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}

func (s *Surface) ClearRect(x, y, w, h float64) {
	rl.DrawRectangle(int32(x), int32(y), int32(w), int32(h), s.Background)
}

func (s *Surface) FillCircle(x, y, r float64, c color.NRGBA) {
	rl.DrawCircleV(rl.NewVector2(float32(x), float32(y)), float32(r), rlColor(c))
}

func (s *Surface) StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA) {
	rl.DrawLineEx(rl.NewVector2(float32(x0), float32(y0)), rl.NewVector2(float32(x1), float32(y1)), float32(width), rlColor(c))
}
