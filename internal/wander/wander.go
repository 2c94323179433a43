// Package wander produces a smooth synthetic pointer path for headless runs,
// so benchmarks and snapshots exercise the cursor field without a mouse.
package wander

import (
	"github.com/aquilax/go-perlin"

	"github.com/san-kum/constellation/internal/dynamo"
)

const (
	alpha   = 2.0
	beta    = 2.0
	octaves = 3
	// noise units advanced per tick
	DefaultStep = 0.01
)

type Path struct {
	x, y *perlin.Perlin
	vp   dynamo.Viewport
	step float64
	t    float64
}

func New(seed int64, vp dynamo.Viewport) *Path {
	return &Path{
		x:    perlin.NewPerlin(alpha, beta, octaves, seed),
		y:    perlin.NewPerlin(alpha, beta, octaves, seed+1),
		vp:   vp,
		step: DefaultStep,
	}
}

func (p *Path) SetViewport(vp dynamo.Viewport) { p.vp = vp }

// Next advances the path and returns a point inside the viewport.
func (p *Path) Next() (float64, float64) {
	p.t += p.step
	return scale(p.x.Noise1D(p.t), p.vp.Width), scale(p.y.Noise1D(p.t), p.vp.Height)
}

// scale maps noise, roughly in [-1,1], onto [0,size).
func scale(n float64, size int) float64 {
	v := (n + 1) / 2
	if v < 0 {
		v = 0
	}
	if v >= 1 {
		v = 0.999999
	}
	return v * float64(size)
}
