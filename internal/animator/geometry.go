// Package animator draws the decorative hero scene: a rotating globe with an
// airplane on an elliptical orbit. It has no data dependency on the catalog
// or the planner; it is driven only by a frame clock and the viewport size.
package animator

import "math"

const (
	// AngleStep is how far the scene rotates per frame.
	AngleStep = 0.3

	globeScale        = 0.15 // globe radius as a fraction of the short viewport side
	orbitScale        = 2.2  // orbit radius as a multiple of the globe radius
	orbitCompression  = 0.4  // vertical squash that fakes a tilted orbit
	continentDrift    = 0.5  // continent longitude advance per unit of angle
	meridianDrift     = 0.3  // meridian rotation per unit of angle
	gridStepDegrees   = 45
	planeBaseScale    = 0.8
	planeScaleSwing   = 0.25
	parallelThickness = 3
)

// State is the only thing the animation remembers between frames. Angle
// grows without bound; only its sine and cosine are ever used.
type State struct {
	Angle float64
}

// Advance moves the scene one frame forward.
func (s *State) Advance() {
	s.Angle += AngleStep
}

// Point is a position on the drawing surface.
type Point struct {
	X, Y float64
}

// Layout is where the globe and orbit sit for a given surface size.
type Layout struct {
	Width, Height int
	Center        Point
	GlobeRadius   float64
	OrbitRadius   float64
}

// NewLayout centres the globe and sizes it from the shorter side.
func NewLayout(width, height int) Layout {
	r := math.Min(float64(width), float64(height)) * globeScale
	return Layout{
		Width:       width,
		Height:      height,
		Center:      Point{X: float64(width) / 2, Y: float64(height) / 2},
		GlobeRadius: r,
		OrbitRadius: r * orbitScale,
	}
}

// Landmass is one continent ellipse, relative to the globe centre, plus the
// lighter detail ellipse drawn on top of it.
type Landmass struct {
	Center   Point
	RX, RY   float64
	Detail   Point
	DetailRX float64
	DetailRY float64
}

type continentSeed struct {
	lat, lng, size float64
}

var continentSeeds = [...]continentSeed{
	{lat: 45, lng: 0, size: 0.35},
	{lat: -30, lng: 45, size: 0.25},
	{lat: 20, lng: 120, size: 0.3},
	{lat: -45, lng: 160, size: 0.28},
	{lat: 30, lng: 240, size: 0.22},
	{lat: -10, lng: 280, size: 0.2},
}

// Continents projects the fixed landmasses onto a globe of the given radius.
// Their longitude drifts with angle, which is what makes the globe spin.
func Continents(angle, radius float64) []Landmass {
	out := make([]Landmass, 0, len(continentSeeds))
	for _, c := range continentSeeds {
		lat := radians(c.lat)
		lng := radians(c.lng + angle*continentDrift)
		x := math.Cos(lat) * math.Sin(lng) * radius
		y := math.Sin(lat) * radius
		size := c.size * radius
		detail := size * 0.3
		out = append(out, Landmass{
			Center:   Point{X: x, Y: y},
			RX:       size,
			RY:       size * 0.7,
			Detail:   Point{X: x + size*0.3, Y: y - size*0.2},
			DetailRX: detail,
			DetailRY: detail * 0.6,
		})
	}
	return out
}

// Parallel is a latitude ring drawn as a flat ellipse.
type Parallel struct {
	Y      float64
	Radius float64
}

// Parallels returns latitude rings every 45° from pole to pole.
func Parallels(radius float64) []Parallel {
	var out []Parallel
	for lat := -90; lat <= 90; lat += gridStepDegrees {
		rad := radians(float64(lat))
		out = append(out, Parallel{
			Y:      math.Sin(rad) * radius,
			Radius: math.Cos(rad) * radius,
		})
	}
	return out
}

// Segment is a straight line between two points.
type Segment struct {
	From, To Point
}

// Meridians returns diameters every 45°, rotated by the current angle.
func Meridians(angle, radius float64) []Segment {
	var out []Segment
	for i := 0; i < 360; i += gridStepDegrees {
		a := radians(float64(i) + angle*meridianDrift)
		x, y := math.Cos(a)*radius, math.Sin(a)*radius
		out = append(out, Segment{From: Point{X: x, Y: y}, To: Point{X: -x, Y: -y}})
	}
	return out
}

// PlanePose is where the airplane glyph is drawn and how it is oriented.
type PlanePose struct {
	Position Point
	Rotation float64 // radians
	Scale    float64
}

// Plane places the airplane on its orbit. Its heading is tangent to the
// orbit and it grows as it swings toward the viewer.
func Plane(l Layout, angle float64) PlanePose {
	theta := radians(angle)
	return PlanePose{
		Position: Point{
			X: l.Center.X + math.Cos(theta)*l.OrbitRadius,
			Y: l.Center.Y + math.Sin(theta)*l.OrbitRadius*orbitCompression,
		},
		Rotation: theta + math.Pi/2,
		Scale:    planeBaseScale + math.Sin(theta)*planeScaleSwing,
	}
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
