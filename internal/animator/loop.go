package animator

import (
	"context"
	"image"
	"sync"
	"time"

	"github.com/pkordes/travelvista/internal/clock"
)

// DefaultInterval paces the loop at roughly 60 frames per second.
const DefaultInterval = time.Second / 60

// Frame is one rendered image of the scene.
type Frame struct {
	Seq   uint64
	Angle float64
	Image image.Image
}

// Loop is a cancellable scheduled task that renders a frame on every tick,
// advancing the rotation angle after each one. It tracks viewport resizes
// while running and releases its ticker and resize subscription when it
// stops.
type Loop struct {
	clock    clock.Clock
	interval time.Duration
	renderer *Renderer
	viewport *Viewport
	onFrame  func(Frame)

	mu     sync.Mutex
	state  State
	width  int
	height int
	seq    uint64
	cancel context.CancelFunc
	done   chan struct{}
}

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithClock sets the tick source. Defaults to clock.Real().
func WithClock(c clock.Clock) LoopOption {
	return func(l *Loop) { l.clock = c }
}

// WithInterval sets the time between frames. Defaults to DefaultInterval.
func WithInterval(d time.Duration) LoopOption {
	return func(l *Loop) { l.interval = d }
}

// WithState sets the starting rotation.
func WithState(s State) LoopOption {
	return func(l *Loop) { l.state = s }
}

// NewLoop builds a loop that draws with r onto surfaces sized by vp and
// hands each frame to onFrame. onFrame runs on the loop goroutine; a slow
// consumer slows the loop rather than queueing frames.
func NewLoop(vp *Viewport, r *Renderer, onFrame func(Frame), opts ...LoopOption) *Loop {
	l := &Loop{
		clock:    clock.Real(),
		interval: DefaultInterval,
		renderer: r,
		viewport: vp,
		onFrame:  onFrame,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Start launches the loop and returns a channel closed once it has fully
// torn down. The loop ends when ctx is cancelled or Stop is called.
// Calling Start on a running loop returns the existing channel. A loop that
// has stopped may be started again and resumes from its last rotation.
func (l *Loop) Start(ctx context.Context) <-chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.done != nil {
		return l.done
	}

	ctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.done = make(chan struct{})
	l.width, l.height = l.viewport.Size()

	// Register resize and ticker before returning so a caller that stops
	// straight away still sees both released.
	unsubscribe := l.viewport.Subscribe(l.resize)
	ticker := l.clock.NewTicker(l.interval)

	go l.run(ctx, ticker, unsubscribe, l.done)
	return l.done
}

// Stop cancels the loop and waits for it to release its resources.
// It is a no-op on a loop that was never started.
func (l *Loop) Stop() {
	l.mu.Lock()
	cancel, done := l.cancel, l.done
	l.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// State returns the rotation the next frame will be drawn at.
func (l *Loop) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

func (l *Loop) run(ctx context.Context, ticker *clock.Ticker, unsubscribe func(), done chan struct{}) {
	defer close(done)
	defer l.finish(done)
	defer unsubscribe()
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.onFrame(l.step())
		}
	}
}

// finish clears the run handles so a later Start begins a new run.
func (l *Loop) finish(done chan struct{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.done == done {
		l.cancel()
		l.cancel, l.done = nil, nil
	}
}

func (l *Loop) step() Frame {
	l.mu.Lock()
	state, w, h := l.state, l.width, l.height
	l.seq++
	seq := l.seq
	l.state.Advance()
	l.mu.Unlock()

	return Frame{Seq: seq, Angle: state.Angle, Image: l.renderer.Render(w, h, state)}
}

func (l *Loop) resize(width, height int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.width, l.height = width, height
}
