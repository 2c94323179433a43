package wander

import (
	"testing"

	"github.com/san-kum/constellation/internal/dynamo"
)

func TestPathStaysInside(t *testing.T) {
	vp := dynamo.Viewport{Width: 800, Height: 600}
	p := New(7, vp)
	for i := 0; i < 5000; i++ {
		x, y := p.Next()
		if x < 0 || x >= 800 || y < 0 || y >= 600 {
			t.Fatalf("step %d left the viewport: (%v, %v)", i, x, y)
		}
	}
}

func TestPathDeterministic(t *testing.T) {
	vp := dynamo.Viewport{Width: 100, Height: 100}
	a, b := New(3, vp), New(3, vp)
	for i := 0; i < 100; i++ {
		ax, ay := a.Next()
		bx, by := b.Next()
		if ax != bx || ay != by {
			t.Fatalf("step %d diverged", i)
		}
	}
}

func TestScaleClamps(t *testing.T) {
	tests := []struct {
		n    float64
		size int
		want float64
	}{
		{-1, 100, 0},
		{-2, 100, 0},
		{0, 100, 50},
	}
	for _, tt := range tests {
		if got := scale(tt.n, tt.size); got != tt.want {
			t.Errorf("scale(%v, %d) = %v, want %v", tt.n, tt.size, got, tt.want)
		}
	}
	if got := scale(1, 100); got >= 100 {
		t.Errorf("scale(1, 100) = %v, want < 100", got)
	}
}
