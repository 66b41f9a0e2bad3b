package animator_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travelvista/internal/animator"
	"github.com/pkordes/travelvista/internal/clock"
)

const tick = 10 * time.Millisecond

func newTestLoop(t *testing.T, vp *animator.Viewport, opts ...animator.LoopOption) (*animator.Loop, *clock.FakeClock, chan animator.Frame) {
	t.Helper()
	clk := clock.Fake(time.Unix(0, 0))
	frames := make(chan animator.Frame, 1)
	opts = append([]animator.LoopOption{animator.WithClock(clk), animator.WithInterval(tick)}, opts...)
	l := animator.NewLoop(vp, animator.NewRenderer(animator.WithJitter(steady)), func(f animator.Frame) {
		frames <- f
	}, opts...)
	return l, clk, frames
}

func nextFrame(t *testing.T, clk *clock.FakeClock, frames <-chan animator.Frame) animator.Frame {
	t.Helper()
	clk.Advance(tick)
	select {
	case f := <-frames:
		return f
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for frame")
		return animator.Frame{}
	}
}

// TestLoop_AdvancesAnglePerFrame verifies each tick renders then rotates.
func TestLoop_AdvancesAnglePerFrame(t *testing.T) {
	vp := animator.NewViewport(40, 30)
	l, clk, frames := newTestLoop(t, vp)
	l.Start(context.Background())
	t.Cleanup(l.Stop)

	for i := range 3 {
		f := nextFrame(t, clk, frames)
		assert.Equal(t, uint64(i+1), f.Seq)
		assert.InDelta(t, float64(i)*animator.AngleStep, f.Angle, 1e-9)
		assert.Equal(t, 40, f.Image.Bounds().Dx())
		assert.Equal(t, 30, f.Image.Bounds().Dy())
	}
	assert.InDelta(t, 0.9, l.State().Angle, 1e-9)
}

// TestLoop_InitialState verifies a loop can resume from a given angle.
func TestLoop_InitialState(t *testing.T) {
	vp := animator.NewViewport(10, 10)
	l, clk, frames := newTestLoop(t, vp, animator.WithState(animator.State{Angle: 45}))
	l.Start(context.Background())
	t.Cleanup(l.Stop)

	f := nextFrame(t, clk, frames)
	assert.InDelta(t, 45, f.Angle, 1e-9)
}

// TestLoop_TracksResize verifies frames follow the viewport size.
func TestLoop_TracksResize(t *testing.T) {
	vp := animator.NewViewport(20, 20)
	l, clk, frames := newTestLoop(t, vp)
	l.Start(context.Background())
	t.Cleanup(l.Stop)

	f := nextFrame(t, clk, frames)
	assert.Equal(t, 20, f.Image.Bounds().Dx())

	vp.Resize(64, 48)

	f = nextFrame(t, clk, frames)
	assert.Equal(t, 64, f.Image.Bounds().Dx())
	assert.Equal(t, 48, f.Image.Bounds().Dy())
}

// TestLoop_StopReleasesResources verifies the ticker and resize
// subscription are gone once Stop returns.
func TestLoop_StopReleasesResources(t *testing.T) {
	vp := animator.NewViewport(16, 16)
	l, clk, _ := newTestLoop(t, vp)

	l.Start(context.Background())
	require.Equal(t, 1, clk.Tickers())
	require.Equal(t, 1, vp.Subscribers())

	l.Stop()

	assert.Equal(t, 0, clk.Tickers())
	assert.Equal(t, 0, vp.Subscribers())
}

// TestLoop_ContextCancel verifies cancelling the parent context ends the loop.
func TestLoop_ContextCancel(t *testing.T) {
	vp := animator.NewViewport(16, 16)
	l, clk, _ := newTestLoop(t, vp)

	ctx, cancel := context.WithCancel(context.Background())
	done := l.Start(ctx)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop after cancel")
	}
	assert.Equal(t, 0, clk.Tickers())
	assert.Equal(t, 0, vp.Subscribers())
}

// TestLoop_StartTwice verifies a second Start does not spawn another loop.
func TestLoop_StartTwice(t *testing.T) {
	vp := animator.NewViewport(16, 16)
	l, clk, _ := newTestLoop(t, vp)

	first := l.Start(context.Background())
	second := l.Start(context.Background())
	t.Cleanup(l.Stop)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, clk.Tickers())
}

// TestLoop_RestartAfterStop verifies a stopped loop runs again on Start and
// carries on from where it stopped.
func TestLoop_RestartAfterStop(t *testing.T) {
	vp := animator.NewViewport(16, 16)
	l, clk, frames := newTestLoop(t, vp)

	first := l.Start(context.Background())
	f := nextFrame(t, clk, frames)
	require.Equal(t, uint64(1), f.Seq)
	l.Stop()

	second := l.Start(context.Background())
	t.Cleanup(l.Stop)
	assert.NotEqual(t, first, second)
	assert.Equal(t, 1, clk.Tickers())
	assert.Equal(t, 1, vp.Subscribers())

	f = nextFrame(t, clk, frames)
	assert.Equal(t, uint64(2), f.Seq)
	assert.InDelta(t, animator.AngleStep, f.Angle, 1e-9)
}

// TestLoop_RestartAfterContextCancel verifies a loop ended by its context
// can be started again.
func TestLoop_RestartAfterContextCancel(t *testing.T) {
	vp := animator.NewViewport(16, 16)
	l, clk, frames := newTestLoop(t, vp)

	ctx, cancel := context.WithCancel(context.Background())
	done := l.Start(ctx)
	cancel()
	<-done

	l.Start(context.Background())
	t.Cleanup(l.Stop)
	f := nextFrame(t, clk, frames)
	assert.Equal(t, uint64(1), f.Seq)
}

// TestLoop_StopWithoutStart verifies Stop on an idle loop is a no-op.
func TestLoop_StopWithoutStart(t *testing.T) {
	l, _, _ := newTestLoop(t, animator.NewViewport(1, 1))
	assert.NotPanics(t, l.Stop)
}

// TestViewport_Unsubscribe verifies removal is idempotent.
func TestViewport_Unsubscribe(t *testing.T) {
	vp := animator.NewViewport(1, 1)
	calls := 0
	unsub := vp.Subscribe(func(int, int) { calls++ })

	vp.Resize(2, 2)
	unsub()
	unsub()
	vp.Resize(3, 3)

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, vp.Subscribers())
	w, h := vp.Size()
	assert.Equal(t, 3, w)
	assert.Equal(t, 3, h)
}
