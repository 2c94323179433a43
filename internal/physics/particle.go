package physics

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"

	"github.com/san-kum/constellation/internal/dynamo"
)

const (
	DefaultInteractionRadius = 150.0
	DefaultCoupling          = 0.02
	DefaultDamping           = 0.99
)

// Params are the per-tick tunables of Particle.Update.
type Params struct {
	InteractionRadius float64
	Coupling          float64
	Damping           float64
}

func DefaultParams() Params {
	return Params{
		InteractionRadius: DefaultInteractionRadius,
		Coupling:          DefaultCoupling,
		Damping:           DefaultDamping,
	}
}

func (p *Params) GetParams() map[string]float64 {
	return map[string]float64{
		"radius":   p.InteractionRadius,
		"coupling": p.Coupling,
		"damping":  p.Damping,
	}
}

func (p *Params) SetParam(name string, value float64) error {
	switch name {
	case "radius":
		if value <= 0 {
			return fmt.Errorf("radius %v: %w", value, dynamo.ErrParameterBounds)
		}
		p.InteractionRadius = value
	case "coupling":
		p.Coupling = value
	case "damping":
		if value < 0 || value > 1 {
			return fmt.Errorf("damping %v: %w", value, dynamo.ErrParameterBounds)
		}
		p.Damping = value
	default:
		return fmt.Errorf("unknown param %q", name)
	}
	return nil
}

// Particle is a point mass. Radius is fixed at construction.
type Particle struct {
	X, Y   float64
	VX, VY float64
	radius float64
}

func NewParticle(x, y, vx, vy, radius float64) Particle {
	return Particle{X: x, Y: y, VX: vx, VY: vy, radius: radius}
}

// Spawn samples a particle uniformly over vp with each velocity component in
// [-maxSpeed, maxSpeed) and radius in [minRadius, maxRadius).
func Spawn(rng *rand.Rand, vp dynamo.Viewport, maxSpeed, minRadius, maxRadius float64) Particle {
	return Particle{
		X:      rng.Float64() * float64(vp.Width),
		Y:      rng.Float64() * float64(vp.Height),
		VX:     (rng.Float64()*2 - 1) * maxSpeed,
		VY:     (rng.Float64()*2 - 1) * maxSpeed,
		radius: minRadius + rng.Float64()*(maxRadius-minRadius),
	}
}

func (p *Particle) Radius() float64 { return p.radius }

func (p *Particle) Speed() float64 { return math.Hypot(p.VX, p.VY) }

func (p *Particle) Valid() bool { return dynamo.Finite(p.X, p.Y, p.VX, p.VY) }

// Update advances the particle one tick: cursor impulse, unit-step
// integration, edge bounce, damping.
func (p *Particle) Update(cursor dynamo.Cursor, vp dynamo.Viewport, params Params) {
	dvx, dvy := CursorImpulse(p.X, p.Y, cursor, params.InteractionRadius, params.Coupling)
	p.VX += dvx
	p.VY += dvy

	p.X += p.VX
	p.Y += p.VY

	// Velocity flips only; position may sit outside for a frame.
	if p.X < 0 || p.X > float64(vp.Width) {
		p.VX = -p.VX
	}
	if p.Y < 0 || p.Y > float64(vp.Height) {
		p.VY = -p.VY
	}

	p.VX *= params.Damping
	p.VY *= params.Damping
}

func (p *Particle) Draw(s dynamo.Surface, fill color.NRGBA) {
	s.FillCircle(p.X, p.Y, p.radius, fill)
}
