package dynamo

import (
	"fmt"
	"image/color"
	"math"
)

type Viewport struct {
	Width  int
	Height int
}

func (v Viewport) Valid() bool { return v.Width > 0 && v.Height > 0 }

func (v Viewport) String() string { return fmt.Sprintf("%dx%d", v.Width, v.Height) }

// Cursor is the pointer state. The zero value is absent.
type Cursor struct {
	X, Y    float64
	Present bool
}

func CursorAt(x, y float64) Cursor { return Cursor{X: x, Y: y, Present: true} }

func NoCursor() Cursor { return Cursor{} }

// Surface is the drawable area a host exposes. Colors are non-premultiplied so
// the alpha channel reads as opacity.
type Surface interface {
	ClearRect(x, y, w, h float64)
	FillCircle(x, y, r float64, c color.NRGBA)
	StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA)
}

type FrameID uint64

// Scheduler runs a callback once before the next repaint.
type Scheduler interface {
	RequestFrame(fn func()) FrameID
	CancelFrame(id FrameID)
}

// Finite reports whether every value is a real number.
func Finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// WithAlpha returns c with its alpha channel set from an opacity in [0, 1].
func WithAlpha(c color.NRGBA, opacity float64) color.NRGBA {
	opacity = math.Max(0, math.Min(1, opacity))
	c.A = uint8(math.Round(opacity * 255))
	return c
}

// Configurable exposes named tunables for live adjustment.
type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

type discard struct{}

func (discard) ClearRect(x, y, w, h float64)                            {}
func (discard) FillCircle(x, y, r float64, c color.NRGBA)               {}
func (discard) StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA) {}

// Discard is a Surface that draws nothing. Headless runs use it.
var Discard Surface = discard{}
