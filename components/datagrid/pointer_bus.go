package datagrid

import "sync"

// Point is a position in presentation-layer coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned bounding box.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Contains reports whether p lies inside the rectangle, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width && p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// PointerKind identifies a pointer event.
type PointerKind string

const (
	PointerDown PointerKind = "pointerdown"
	PointerUp   PointerKind = "pointerup"
)

// PointerEvent is a press or release reported by the presentation layer.
type PointerEvent struct {
	Kind PointerKind `json:"kind"`
	At   Point       `json:"at"`
}

// PointerBus fans pointer events out to the listeners registered on it. It
// stands in for the document-wide input subscription of a browser.
type PointerBus struct {
	mu        sync.RWMutex
	listeners map[int]func(PointerEvent)
	next      int
}

// NewPointerBus creates an empty bus.
func NewPointerBus() *PointerBus {
	return &PointerBus{listeners: make(map[int]func(PointerEvent))}
}

var (
	defaultBusOnce sync.Once
	defaultBus     *PointerBus
)

// DefaultPointerBus returns the process-wide bus.
func DefaultPointerBus() *PointerBus {
	defaultBusOnce.Do(func() {
		defaultBus = NewPointerBus()
	})
	return defaultBus
}

// Subscribe registers fn and returns an idempotent cancel func.
func (b *PointerBus) Subscribe(fn func(PointerEvent)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.next
	b.next++
	b.listeners[id] = fn
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.listeners, id)
	}
}

// Dispatch delivers the event to a snapshot of the current listeners, so a
// listener may cancel itself while handling the event.
func (b *PointerBus) Dispatch(event PointerEvent) {
	b.mu.RLock()
	snapshot := make([]func(PointerEvent), 0, len(b.listeners))
	for _, fn := range b.listeners {
		snapshot = append(snapshot, fn)
	}
	b.mu.RUnlock()
	for _, fn := range snapshot {
		fn(event)
	}
}

// Len returns the number of registered listeners.
func (b *PointerBus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners)
}
