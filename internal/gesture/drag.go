package gesture

import (
	"github.com/xvierd/dayblocks/internal/domain"
	"github.com/xvierd/dayblocks/internal/ports"
)

// Kind is the type of block gesture.
type Kind int

const (
	// Move drags the whole block.
	Move Kind = iota

	// ResizeStart drags the left handle, keeping the right edge fixed.
	ResizeStart

	// ResizeEnd drags the right handle, keeping the left edge fixed.
	ResizeEnd
)

// String returns a short name for the gesture kind.
func (k Kind) String() string {
	switch k {
	case Move:
		return "move"
	case ResizeStart:
		return "resize-start"
	case ResizeEnd:
		return "resize-end"
	default:
		return "unknown"
	}
}

// Preview computes the live geometry for a gesture of the given kind after
// a horizontal delta of dp percent from the captured start geometry.
func Preview(kind Kind, start domain.Geometry, dp float64) domain.Geometry {
	switch kind {
	case Move:
		return domain.Geometry{
			Left:  domain.Clamp(start.Left+dp, 0, 100-start.Width),
			Width: start.Width,
		}
	case ResizeStart:
		left := domain.Clamp(start.Left+dp, 0, start.Right()-domain.MinWidth)
		return domain.Geometry{
			Left:  left,
			Width: start.Width - (left - start.Left),
		}
	case ResizeEnd:
		return domain.Geometry{
			Left:  start.Left,
			Width: domain.Clamp(start.Width+dp, domain.MinWidth, 100-start.Left),
		}
	default:
		return start
	}
}

// Committer receives the final geometry of a finished block gesture.
type Committer func(blockID string, g domain.Geometry)

// drag is one active block gesture.
type drag struct {
	kind        Kind
	blockID     string
	pointerID   int
	startX      float64
	start       domain.Geometry
	live        domain.Geometry
	unsubscribe func()
}

// Controller runs block gestures. Each block has at most one active gesture;
// different blocks may be dragged at once by different pointers.
type Controller struct {
	source     ports.PointerSource
	trackWidth func() float64
	commit     Committer
	active     map[string]*drag
}

// NewController creates a gesture controller. trackWidth reports the
// container width in the same units as PointerEvent.X.
func NewController(source ports.PointerSource, trackWidth func() float64, commit Committer) *Controller {
	return &Controller{
		source:     source,
		trackWidth: trackWidth,
		commit:     commit,
		active:     make(map[string]*drag),
	}
}

// Begin starts a gesture on b. Only a primary-button press starts a gesture,
// and a block that is already being dragged ignores further presses.
func (c *Controller) Begin(kind Kind, b domain.Block, ev ports.PointerEvent) bool {
	if !ev.IsPrimaryDown() {
		return false
	}
	if _, busy := c.active[b.ID]; busy {
		return false
	}

	d := &drag{
		kind:      kind,
		blockID:   b.ID,
		pointerID: ev.PointerID,
		startX:    ev.X,
		start:     b.Geometry,
		live:      b.Geometry,
	}
	c.active[b.ID] = d
	d.unsubscribe = c.source.Subscribe(func(e ports.PointerEvent) {
		c.handle(d, e)
	})
	return true
}

func (c *Controller) handle(d *drag, ev ports.PointerEvent) {
	if ev.PointerID != d.pointerID {
		return
	}
	switch {
	case ev.Phase == ports.PhaseMove:
		d.live = Preview(d.kind, d.start, c.deltaPercent(d.startX, ev.X))
	case ev.Ends():
		c.finish(d)
	}
}

// finish ends the gesture and commits the last live value exactly once.
func (c *Controller) finish(d *drag) {
	if c.active[d.blockID] != d {
		return
	}
	d.unsubscribe()
	delete(c.active, d.blockID)
	if c.commit != nil {
		c.commit(d.blockID, d.live)
	}
}

func (c *Controller) deltaPercent(from, to float64) float64 {
	w := c.trackWidth()
	if w <= 0 {
		return 0
	}
	return ((to - from) / w) * 100
}

// Live returns the in-progress geometry of a block being dragged.
func (c *Controller) Live(blockID string) (domain.Geometry, bool) {
	d, ok := c.active[blockID]
	if !ok {
		return domain.Geometry{}, false
	}
	return d.live, true
}

// Overrides returns the live geometry of every block being dragged.
func (c *Controller) Overrides() map[string]domain.Geometry {
	if len(c.active) == 0 {
		return nil
	}
	out := make(map[string]domain.Geometry, len(c.active))
	for id, d := range c.active {
		out[id] = d.live
	}
	return out
}

// Active returns the number of gestures in progress.
func (c *Controller) Active() int {
	return len(c.active)
}
