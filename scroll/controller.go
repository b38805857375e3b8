package scroll

// Scroller applies a scroll offset to the host list view.
type Scroller interface {
	ScrollTo(offset int, animated bool)
}

// Layout is the line geometry the controller centers on.
// *linebuf.Buffer implements it.
type Layout interface {
	Focused() int
	Heights() []int
}

// Trigger names the event that asked for a recenter.
type Trigger uint8

const (
	FocusMoved Trigger = iota
	HeightChanged
	CaretMoved
	Resized
)

func (t Trigger) String() string {
	switch t {
	case FocusMoved:
		return "focus"
	case HeightChanged:
		return "height"
	case CaretMoved:
		return "caret"
	case Resized:
		return "resize"
	default:
		return "unknown"
	}
}

// Controller recenters the focused line whenever focus, a line height, the
// caret or the viewport changes. A disabled controller issues nothing.
//
// Heights may be stale between a structural edit and the next measurement;
// the controller simply recenters again once the real height arrives.
type Controller struct {
	enabled  bool
	bias     int
	viewport int

	scroller Scroller

	offset int
	issued bool
}

// NewController returns a controller that scrolls s. bias is added to every
// computed offset; a positive bias rests the focused line slightly above
// center.
func NewController(s Scroller, enabled bool, bias int) *Controller {
	return &Controller{enabled: enabled, bias: bias, scroller: s}
}

func (c *Controller) Enabled() bool { return c.enabled }

// SetEnabled switches typewriter centering on or off.
func (c *Controller) SetEnabled(v bool) {
	c.enabled = v
	if !v {
		c.issued = false
	}
}

// SetViewport sets the viewport height. It is also the header padding.
func (c *Controller) SetViewport(h int) {
	if h < 0 {
		h = 0
	}
	c.viewport = h
}

func (c *Controller) Viewport() int { return c.viewport }

// HeaderPadding is the blank space the host must render above the first
// line and below the last.
func (c *Controller) HeaderPadding() int { return c.viewport }

// Offset returns the last issued offset and whether one was issued since
// the controller was enabled.
func (c *Controller) Offset() (int, bool) { return c.offset, c.issued }

// Recenter computes the centering offset for l and issues a non-animated
// scroll. It returns false when the controller is disabled.
func (c *Controller) Recenter(_ Trigger, l Layout) (int, bool) {
	if !c.enabled || l == nil {
		return 0, false
	}
	off := ComputeOffset(l.Focused(), l.Heights(), c.viewport, c.HeaderPadding(), c.bias)
	c.offset = off
	c.issued = true
	if c.scroller != nil {
		c.scroller.ScrollTo(off, false)
	}
	return off, true
}

func (c *Controller) FocusChanged(l Layout) (int, bool)  { return c.Recenter(FocusMoved, l) }
func (c *Controller) HeightChanged(l Layout) (int, bool) { return c.Recenter(HeightChanged, l) }
func (c *Controller) CaretMoved(l Layout) (int, bool)    { return c.Recenter(CaretMoved, l) }
