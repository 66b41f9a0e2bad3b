package animator_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travelvista/internal/animator"
)

const eps = 1e-9

// TestState_Advance verifies each frame rotates the scene by a fixed step.
func TestState_Advance(t *testing.T) {
	var s animator.State
	for range 10 {
		s.Advance()
	}
	assert.InDelta(t, 3.0, s.Angle, eps)
}

// TestNewLayout verifies the globe is centred and sized from the shorter side.
func TestNewLayout(t *testing.T) {
	l := animator.NewLayout(800, 400)

	assert.Equal(t, animator.Point{X: 400, Y: 200}, l.Center)
	assert.InDelta(t, 60, l.GlobeRadius, eps)
	assert.InDelta(t, 132, l.OrbitRadius, eps)
}

// TestContinents_AtRest verifies the first landmass sits on the meridian
// facing the viewer when the angle is zero.
func TestContinents_AtRest(t *testing.T) {
	got := animator.Continents(0, 100)
	require.Len(t, got, 6)

	first := got[0]
	assert.InDelta(t, 0, first.Center.X, eps)
	assert.InDelta(t, math.Sin(math.Pi/4)*100, first.Center.Y, eps)
	assert.InDelta(t, 35, first.RX, eps)
	assert.InDelta(t, 24.5, first.RY, eps)
}

// TestContinents_Drift verifies continents move as the angle grows.
func TestContinents_Drift(t *testing.T) {
	before := animator.Continents(0, 100)
	after := animator.Continents(30, 100)

	for i := range before {
		assert.NotEqual(t, before[i].Center.X, after[i].Center.X, "continent %d did not move", i)
		assert.InDelta(t, before[i].Center.Y, after[i].Center.Y, eps, "latitude must not change")
	}
}

// TestParallels verifies rings run pole to pole with the equator at full width.
func TestParallels(t *testing.T) {
	got := animator.Parallels(100)
	require.Len(t, got, 5)

	assert.InDelta(t, -100, got[0].Y, eps)
	assert.InDelta(t, 0, got[0].Radius, eps)
	assert.InDelta(t, 0, got[2].Y, eps)
	assert.InDelta(t, 100, got[2].Radius, eps)
	assert.InDelta(t, 100, got[4].Y, eps)
}

// TestMeridians verifies eight diameters pass through the globe centre.
func TestMeridians(t *testing.T) {
	got := animator.Meridians(0, 50)
	require.Len(t, got, 8)

	for _, seg := range got {
		assert.InDelta(t, 0, seg.From.X+seg.To.X, eps)
		assert.InDelta(t, 0, seg.From.Y+seg.To.Y, eps)
		assert.InDelta(t, 50, math.Hypot(seg.From.X, seg.From.Y), eps)
	}
	assert.InDelta(t, 50, got[0].From.X, eps)
}

// TestPlane covers the plane pose at the quarter points of its orbit.
func TestPlane(t *testing.T) {
	l := animator.NewLayout(1000, 1000) // centre 500,500; orbit 330

	tests := []struct {
		name      string
		angle     float64
		wantX     float64
		wantY     float64
		wantScale float64
	}{
		{"right", 0, 830, 500, 0.8},
		{"front", 90, 500, 632, 1.05},
		{"left", 180, 170, 500, 0.8},
		{"back", 270, 500, 368, 0.55},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := animator.Plane(l, tc.angle)
			assert.InDelta(t, tc.wantX, p.Position.X, 1e-6)
			assert.InDelta(t, tc.wantY, p.Position.Y, 1e-6)
			assert.InDelta(t, tc.wantScale, p.Scale, 1e-6)
			assert.InDelta(t, tc.angle*math.Pi/180+math.Pi/2, p.Rotation, 1e-6)
		})
	}
}
