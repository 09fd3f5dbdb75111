package datagrid

// PopupKind identifies a transient editor surface.
type PopupKind string

const (
	PopupNone    PopupKind = ""
	PopupFilter  PopupKind = "filter"
	PopupColumns PopupKind = "columns"
)

// popupOffset is the gap between a trigger control and its popup.
const popupOffset = 4

// Coordinator keeps at most one popup open and dismisses it on a pointer press
// outside its bounds. Until the presentation layer reports the rendered bounds
// no press counts as outside. The outside-press listener lives on the bus only
// while a popup is open. A Coordinator is owned by one grid and is not safe for
// concurrent use.
type Coordinator struct {
	bus      *PointerBus
	kind     PopupKind
	trigger  Rect
	bounds   Rect
	measured bool
	position Point
	cancel   func()
	onChange func(from, to PopupKind)
}

// NewCoordinator builds a coordinator listening on bus, or on the process-wide
// bus when nil.
func NewCoordinator(bus *PointerBus) *Coordinator {
	if bus == nil {
		bus = DefaultPointerBus()
	}
	return &Coordinator{bus: bus}
}

// OnChange registers a callback invoked whenever the open popup changes.
func (c *Coordinator) OnChange(fn func(from, to PopupKind)) {
	c.onChange = fn
}

// Open shows the popup of the given kind below its trigger, closing any other.
func (c *Coordinator) Open(kind PopupKind, trigger Rect) {
	if kind == PopupNone {
		c.Close()
		return
	}
	prev := c.kind
	c.kind = kind
	c.trigger = trigger
	c.position = Point{X: trigger.X, Y: trigger.Y + trigger.Height + popupOffset}
	c.bounds = Rect{X: c.position.X, Y: c.position.Y}
	c.measured = false
	if c.cancel == nil {
		c.cancel = c.bus.Subscribe(c.handlePointer)
	}
	c.notify(prev, kind)
}

// Toggle closes the popup when it is the open one and opens it otherwise.
func (c *Coordinator) Toggle(kind PopupKind, trigger Rect) {
	if c.kind == kind {
		c.Close()
		return
	}
	c.Open(kind, trigger)
}

// Close hides the open popup and releases the pointer listener.
func (c *Coordinator) Close() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	prev := c.kind
	c.kind = PopupNone
	c.bounds = Rect{}
	c.measured = false
	c.trigger = Rect{}
	c.notify(prev, PopupNone)
}

// Teardown releases the listener when the owning grid goes away.
func (c *Coordinator) Teardown() {
	c.Close()
}

// SetBounds records the rendered bounds of the open popup.
func (c *Coordinator) SetBounds(bounds Rect) {
	if c.kind == PopupNone {
		return
	}
	c.bounds = bounds
	c.measured = true
}

// Current returns the open popup kind.
func (c *Coordinator) Current() PopupKind { return c.kind }

// IsOpen reports whether kind is the open popup.
func (c *Coordinator) IsOpen(kind PopupKind) bool {
	return kind != PopupNone && c.kind == kind
}

// Position returns where the open popup is anchored.
func (c *Coordinator) Position() Point { return c.position }

// Bounds returns the tracked popup region.
func (c *Coordinator) Bounds() Rect { return c.bounds }

// Measured reports whether the rendered bounds of the open popup are known.
func (c *Coordinator) Measured() bool { return c.measured }

// handlePointer closes the popup on presses outside both the popup and the
// trigger that opened it; the trigger handles its own toggle.
func (c *Coordinator) handlePointer(event PointerEvent) {
	if c.kind == PopupNone || event.Kind != PointerDown || !c.measured {
		return
	}
	if c.bounds.Contains(event.At) || c.trigger.Contains(event.At) {
		return
	}
	c.Close()
}

func (c *Coordinator) notify(from, to PopupKind) {
	if from == to || c.onChange == nil {
		return
	}
	c.onChange(from, to)
}
