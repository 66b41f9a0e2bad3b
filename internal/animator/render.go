package animator

import (
	"image"
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/fogleman/gg"
)

var (
	skyTop    = color.RGBA{0x1a, 0x1a, 0x2e, 0xff}
	skyMid    = color.RGBA{0x16, 0x21, 0x3e, 0xff}
	skyBottom = color.RGBA{0x0f, 0x34, 0x60, 0xff}

	oceanCore = color.RGBA{0x1e, 0x90, 0xff, 0xff}
	oceanMid  = color.RGBA{0x00, 0x77, 0xbe, 0xff}
	oceanRim  = color.RGBA{0x00, 0x4e, 0x89, 0xff}

	land        = color.RGBA{0x2d, 0x50, 0x16, 0xff}
	landOutline = color.RGBA{0x1a, 0x3d, 0x0a, 0xff}
	landDetail  = color.RGBA{0x4a, 0x7c, 0x2c, 0xff}

	gridLine  = color.NRGBA{0xff, 0xff, 0xff, 0x1a}
	orbitLine = color.NRGBA{0xff, 0xc8, 0x64, 0x4d}

	planeBody    = color.RGBA{0xff, 0xff, 0xff, 0xff}
	planeOutline = color.RGBA{0xe0, 0xe0, 0xe0, 0xff}
	planeNose    = color.RGBA{0xff, 0x44, 0x44, 0xff}
	planeWindow  = color.RGBA{0x3b, 0x82, 0xf6, 0xff}
)

// Renderer paints one frame of the hero scene.
type Renderer struct {
	// jitter returns a value in [0, 1) used to wobble each continent's tilt
	// from frame to frame.
	jitter func() float64
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithJitter replaces the continent wobble source. Pass a constant function
// for reproducible frames.
func WithJitter(fn func() float64) RendererOption {
	return func(r *Renderer) { r.jitter = fn }
}

// NewRenderer returns a Renderer with random continent wobble.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{jitter: rand.Float64}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render draws the scene for s onto a new width×height surface.
// Non-positive sizes are treated as 1.
func (r *Renderer) Render(width, height int, s State) image.Image {
	dc := gg.NewContext(max(width, 1), max(height, 1))
	r.Draw(dc, s)
	return dc.Image()
}

// Draw paints the full scene onto dc, replacing whatever was there.
func (r *Renderer) Draw(dc *gg.Context, s State) {
	l := NewLayout(dc.Width(), dc.Height())

	dc.Clear()
	r.drawBackground(dc, l)
	r.drawGlobe(dc, l, s.Angle)
	r.drawOrbit(dc, l)
	r.drawPlane(dc, Plane(l, s.Angle))
}

func (r *Renderer) drawBackground(dc *gg.Context, l Layout) {
	w, h := float64(l.Width), float64(l.Height)
	grad := gg.NewLinearGradient(0, 0, w, h)
	grad.AddColorStop(0, skyTop)
	grad.AddColorStop(0.5, skyMid)
	grad.AddColorStop(1, skyBottom)
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, w, h)
	dc.Fill()
}

func (r *Renderer) drawGlobe(dc *gg.Context, l Layout, angle float64) {
	cx, cy, radius := l.Center.X, l.Center.Y, l.GlobeRadius

	ocean := gg.NewRadialGradient(cx, cy, 0, cx, cy, radius)
	ocean.AddColorStop(0, oceanCore)
	ocean.AddColorStop(0.5, oceanMid)
	ocean.AddColorStop(1, oceanRim)
	dc.SetFillStyle(ocean)
	dc.DrawCircle(cx, cy, radius)
	dc.Fill()

	dc.SetLineWidth(1)
	for _, c := range Continents(angle, radius) {
		dc.Push()
		dc.Translate(cx+c.Center.X, cy+c.Center.Y)
		dc.Rotate(r.jitter() * 0.5)
		dc.DrawEllipse(0, 0, c.RX, c.RY)
		dc.SetColor(land)
		dc.FillPreserve()
		dc.SetColor(landOutline)
		dc.Stroke()
		dc.Pop()

		dc.SetColor(landDetail)
		dc.DrawEllipse(cx+c.Detail.X, cy+c.Detail.Y, c.DetailRX, c.DetailRY)
		dc.Fill()
	}

	dc.SetColor(gridLine)
	dc.SetLineWidth(1.5)
	for _, p := range Parallels(radius) {
		dc.DrawEllipse(cx, cy+p.Y, math.Abs(p.Radius), parallelThickness)
		dc.Stroke()
	}
	for _, m := range Meridians(angle, radius) {
		dc.DrawLine(cx+m.From.X, cy+m.From.Y, cx+m.To.X, cy+m.To.Y)
		dc.Stroke()
	}

	highlight := gg.NewRadialGradient(cx-radius*0.3, cy-radius*0.3, 0, cx, cy, radius*0.8)
	highlight.AddColorStop(0, color.NRGBA{0xff, 0xff, 0xff, 0x33})
	highlight.AddColorStop(0.5, color.NRGBA{0xff, 0xff, 0xff, 0x0d})
	highlight.AddColorStop(1, color.NRGBA{0xff, 0xff, 0xff, 0x00})
	dc.SetFillStyle(highlight)
	dc.DrawCircle(cx, cy, radius)
	dc.Fill()
}

func (r *Renderer) drawOrbit(dc *gg.Context, l Layout) {
	dc.SetColor(orbitLine)
	dc.SetLineWidth(1)
	dc.DrawEllipse(l.Center.X, l.Center.Y, l.OrbitRadius, l.OrbitRadius*orbitCompression)
	dc.Stroke()
}

// planeShapes are the fuselage, wing, tail and stabiliser outlines in glyph
// coordinates (nose pointing along +x).
var planeShapes = [][]Point{
	{{-35, 0}, {35, 0}, {40, -4}, {40, 4}, {35, 0}},
	{{-8, 0}, {-3, -25}, {3, -25}, {8, 0}},
	{{-28, 0}, {-35, 12}, {-30, 12}, {-22, 0}},
	{{-2, 0}, {-8, 8}, {-4, 8}, {2, 0}},
}

func (r *Renderer) drawPlane(dc *gg.Context, pose PlanePose) {
	dc.Push()
	defer dc.Pop()

	dc.Translate(pose.Position.X, pose.Position.Y)
	dc.Rotate(pose.Rotation)
	dc.Scale(pose.Scale, pose.Scale)

	dc.SetLineWidth(1.5)
	for _, shape := range planeShapes {
		dc.MoveTo(shape[0].X, shape[0].Y)
		for _, p := range shape[1:] {
			dc.LineTo(p.X, p.Y)
		}
		dc.ClosePath()
		dc.SetColor(planeBody)
		dc.FillPreserve()
		dc.SetColor(planeOutline)
		dc.Stroke()
	}

	dc.SetColor(planeNose)
	dc.DrawCircle(0, -2, 4)
	dc.Fill()

	dc.SetColor(planeWindow)
	dc.DrawRectangle(-5, -3, 10, 6)
	dc.Fill()

	dc.SetColor(planeBody)
	dc.SetLineWidth(1)
	dc.DrawLine(-3, -2, 8, -2)
	dc.Stroke()
}
