package handler

import (
	"fmt"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"time"

	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/travelvista/internal/animator"
)

const (
	defaultHeroWidth  = 800
	defaultHeroHeight = 400
	maxHeroSide       = 4096
	heroBoundary      = "frame"
)

// heroParams are the query parameters shared by the hero routes.
type heroParams struct {
	Width  int
	Height int
	Angle  float64
	Frames int // stream only; 0 means until the client disconnects
}

// GetHeroFrame handles GET /hero.png?width=&height=&angle=.
// It renders one frame of the hero scene at the given rotation.
func (s *Server) GetHeroFrame(w http.ResponseWriter, r *http.Request) {
	p, ok := bindHeroParams(w, r)
	if !ok {
		return
	}

	img := s.renderer.Render(p.Width, p.Height, animator.State{Angle: p.Angle})
	s.frames.FrameRendered()

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if err := png.Encode(w, img); err != nil {
		s.log.WarnContext(r.Context(), "hero frame write failed", "error", err)
	}
}

// StreamHero handles GET /hero/stream?width=&height=&angle=&frames=.
// Each viewer gets its own animation loop whose frames are pushed as a
// multipart/x-mixed-replace PNG stream. The loop, its ticker and its
// viewport subscription are released when the client goes away or after
// frames parts have been sent.
func (s *Server) StreamHero(w http.ResponseWriter, r *http.Request) {
	p, ok := bindHeroParams(w, r)
	if !ok {
		return
	}
	rc := http.NewResponseController(w)
	ctx := r.Context()

	frames := make(chan animator.Frame, 1)
	vp := animator.NewViewport(p.Width, p.Height)
	loop := animator.NewLoop(vp, s.renderer, func(f animator.Frame) {
		// Drop the frame if the writer is still busy with the last one.
		select {
		case frames <- f:
		default:
		}
	}, animator.WithClock(s.clock), animator.WithInterval(s.interval), animator.WithState(animator.State{Angle: p.Angle}))
	loop.Start(ctx)
	defer loop.Stop()

	// Streams outlive the server's write timeout.
	_ = rc.SetWriteDeadline(time.Time{})

	mw := multipart.NewWriter(w)
	_ = mw.SetBoundary(heroBoundary)
	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary="+heroBoundary)
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_ = rc.Flush()

	sent := 0
	for {
		select {
		case <-ctx.Done():
			return
		case f := <-frames:
			part, err := mw.CreatePart(textproto.MIMEHeader{
				"Content-Type": {"image/png"},
				"X-Frame-Seq":  {fmt.Sprint(f.Seq)},
			})
			if err == nil {
				err = png.Encode(part, f.Image)
			}
			if err == nil {
				err = rc.Flush()
			}
			if err != nil {
				s.log.DebugContext(ctx, "hero stream closed", "error", err, "frames", sent)
				return
			}
			s.frames.FrameRendered()
			sent++
			if p.Frames > 0 && sent >= p.Frames {
				_ = mw.Close()
				return
			}
		}
	}
}

// bindHeroParams reads and validates the hero query parameters, writing a
// 422 on failure.
func bindHeroParams(w http.ResponseWriter, r *http.Request) (heroParams, bool) {
	var (
		width, height, frames *int
		angle                 *float64
	)
	q := r.URL.Query()
	for name, dest := range map[string]any{"width": &width, "height": &height, "angle": &angle, "frames": &frames} {
		if err := runtime.BindQueryParameter("form", true, false, name, q, dest); err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
			return heroParams{}, false
		}
	}

	p := heroParams{Width: defaultHeroWidth, Height: defaultHeroHeight}
	if width != nil {
		p.Width = *width
	}
	if height != nil {
		p.Height = *height
	}
	if angle != nil {
		p.Angle = *angle
	}
	if frames != nil {
		p.Frames = *frames
	}

	if p.Width < 1 || p.Width > maxHeroSide || p.Height < 1 || p.Height > maxHeroSide {
		writeJSON(w, http.StatusUnprocessableEntity,
			requestBody(fmt.Sprintf("width and height must be between 1 and %d", maxHeroSide)))
		return heroParams{}, false
	}
	if p.Frames < 0 {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("frames must not be negative"))
		return heroParams{}, false
	}
	return p, true
}
