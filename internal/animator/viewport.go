package animator

import "sync"

// Viewport is the size of the surface the scene is drawn on. Loops
// subscribe to size changes and must unsubscribe when they stop.
type Viewport struct {
	mu     sync.Mutex
	width  int
	height int
	nextID int
	subs   map[int]func(width, height int)
}

// NewViewport returns a viewport of the given size.
func NewViewport(width, height int) *Viewport {
	return &Viewport{width: width, height: height, subs: map[int]func(int, int){}}
}

// Size returns the current dimensions.
func (v *Viewport) Size() (width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.width, v.height
}

// Resize records new dimensions and notifies every subscriber.
func (v *Viewport) Resize(width, height int) {
	v.mu.Lock()
	v.width, v.height = width, height
	subs := make([]func(int, int), 0, len(v.subs))
	for _, fn := range v.subs {
		subs = append(subs, fn)
	}
	v.mu.Unlock()

	for _, fn := range subs {
		fn(width, height)
	}
}

// Subscribe registers fn for resize notifications and returns the function
// that removes it. Calling the returned function more than once is safe.
func (v *Viewport) Subscribe(fn func(width, height int)) (unsubscribe func()) {
	v.mu.Lock()
	defer v.mu.Unlock()

	id := v.nextID
	v.nextID++
	v.subs[id] = fn

	return func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		delete(v.subs, id)
	}
}

// Subscribers returns the number of live resize subscriptions.
func (v *Viewport) Subscribers() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.subs)
}
