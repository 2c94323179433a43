package physics

import (
	"math"

	"github.com/san-kum/constellation/internal/dynamo"
)

// CursorImpulse returns the velocity delta a cursor applies to a particle at
// (px, py). With d the distance to the cursor and f = (radius-d)/radius, the
// delta is -(unit vector toward cursor) * f * coupling for 0 < d < radius and
// exactly zero otherwise.
func CursorImpulse(px, py float64, cursor dynamo.Cursor, radius, coupling float64) (float64, float64) {
	if !cursor.Present {
		return 0, 0
	}
	dx := cursor.X - px
	dy := cursor.Y - py
	dist := math.Hypot(dx, dy)
	if dist == 0 || dist >= radius {
		return 0, 0
	}
	force := (radius - dist) / radius
	return -(dx / dist) * force * coupling, -(dy / dist) * force * coupling
}
