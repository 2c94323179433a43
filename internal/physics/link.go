package physics

import (
	"image/color"
	"math"

	"github.com/san-kum/constellation/internal/dynamo"
)

const (
	DefaultLinkThreshold = 120.0
	DefaultLinkAlpha     = 0.3
	DefaultLinkWidth     = 1.0
)

// DefaultLinkColor is rgb(99, 102, 241).
var DefaultLinkColor = color.NRGBA{R: 99, G: 102, B: 241, A: 255}

type LinkParams struct {
	Threshold float64
	BaseAlpha float64
	Width     float64
	Color     color.NRGBA
}

func DefaultLinkParams() LinkParams {
	return LinkParams{
		Threshold: DefaultLinkThreshold,
		BaseAlpha: DefaultLinkAlpha,
		Width:     DefaultLinkWidth,
		Color:     DefaultLinkColor,
	}
}

// Link is an edge between particles I < J.
type Link struct {
	I, J     int
	Distance float64
	Alpha    float64
}

type Linker struct {
	Params LinkParams
	buf    []Link
}

func NewLinker(params LinkParams) *Linker {
	return &Linker{Params: params}
}

// Links enumerates every pair i < j in slice order and returns those closer
// than the threshold. The returned slice is reused by the next call.
func (l *Linker) Links(ps []Particle) []Link {
	l.buf = l.buf[:0]
	threshold := l.Params.Threshold
	for i := 0; i < len(ps); i++ {
		for j := i + 1; j < len(ps); j++ {
			dist := math.Hypot(ps[i].X-ps[j].X, ps[i].Y-ps[j].Y)
			if dist >= threshold {
				continue
			}
			l.buf = append(l.buf, Link{
				I:        i,
				J:        j,
				Distance: dist,
				Alpha:    (1 - dist/threshold) * l.Params.BaseAlpha,
			})
		}
	}
	return l.buf
}

// Connect strokes every link onto s and returns how many were drawn.
func (l *Linker) Connect(ps []Particle, s dynamo.Surface) int {
	links := l.Links(ps)
	for _, lk := range links {
		a, b := &ps[lk.I], &ps[lk.J]
		s.StrokeLine(a.X, a.Y, b.X, b.Y, l.Params.Width, dynamo.WithAlpha(l.Params.Color, lk.Alpha))
	}
	return len(links)
}
