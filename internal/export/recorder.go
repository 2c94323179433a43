package export

import (
	"image/color"

	"github.com/san-kum/constellation/internal/dynamo"
)

type OpKind int

const (
	OpCircle OpKind = iota
	OpLine
)

// Op is one recorded draw call.
type Op struct {
	Kind           OpKind
	X0, Y0, X1, Y1 float64
	R, Width       float64
	Color          color.NRGBA
}

// Recorder is a Surface that keeps the draw calls made since the last clear.
type Recorder struct {
	Width, Height float64
	Ops           []Op
	Clears        int
}

func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) ClearRect(x, y, w, h float64) {
	r.Ops = r.Ops[:0]
	r.Width, r.Height = w, h
	r.Clears++
}

func (r *Recorder) FillCircle(x, y, radius float64, c color.NRGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpCircle, X0: x, Y0: y, R: radius, Color: c})
}

func (r *Recorder) StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpLine, X0: x0, Y0: y0, X1: x1, Y1: y1, Width: width, Color: c})
}

// Count returns how many ops of kind were recorded.
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

type tee []dynamo.Surface

// Tee returns a Surface that forwards every call to each of surfaces in order.
func Tee(surfaces ...dynamo.Surface) dynamo.Surface {
	return tee(surfaces)
}

func (t tee) ClearRect(x, y, w, h float64) {
	for _, s := range t {
		s.ClearRect(x, y, w, h)
	}
}

func (t tee) FillCircle(x, y, r float64, c color.NRGBA) {
	for _, s := range t {
		s.FillCircle(x, y, r, c)
	}
}

func (t tee) StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA) {
	for _, s := range t {
		s.StrokeLine(x0, y0, x1, y1, width, c)
	}
}
