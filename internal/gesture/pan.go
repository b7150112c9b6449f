package gesture

import (
	"github.com/xvierd/dayblocks/internal/domain"
	"github.com/xvierd/dayblocks/internal/ports"
)

// PanApplier receives viewport updates from a pan. final is true exactly
// once per pan, carrying the half-hour snapped value.
type PanApplier func(viewStart float64, final bool)

type pan struct {
	pointerID   int
	startX      float64
	startView   float64
	current     float64
	ended       bool
	unsubscribe func()
}

// Panner drags the viewport along the track. Panning wraps freely around
// the day; releasing snaps to the nearest half hour.
type Panner struct {
	source     ports.PointerSource
	trackWidth func() float64
	apply      PanApplier
	active     *pan
}

// NewPanner creates a viewport pan controller.
func NewPanner(source ports.PointerSource, trackWidth func() float64, apply PanApplier) *Panner {
	return &Panner{
		source:     source,
		trackWidth: trackWidth,
		apply:      apply,
	}
}

// Begin starts a pan from the current viewport start.
func (p *Panner) Begin(ev ports.PointerEvent, viewStart float64) bool {
	if !ev.IsPrimaryDown() || p.active != nil {
		return false
	}
	g := &pan{
		pointerID: ev.PointerID,
		startX:    ev.X,
		startView: viewStart,
		current:   viewStart,
	}
	p.active = g
	g.unsubscribe = p.source.Subscribe(func(e ports.PointerEvent) {
		p.handle(g, e)
	})
	return true
}

func (p *Panner) handle(g *pan, ev ports.PointerEvent) {
	if ev.PointerID != g.pointerID {
		return
	}
	switch {
	case ev.Phase == ports.PhaseMove:
		// A move without the primary button means the release was missed.
		if !ev.PrimaryHeld() {
			p.end(g)
			return
		}
		w := p.trackWidth()
		if w <= 0 {
			return
		}
		g.current = domain.Normalize(g.startView - ((ev.X-g.startX)/w)*domain.VisibleHours)
		if p.apply != nil {
			p.apply(g.current, false)
		}
	case ev.Ends():
		p.end(g)
	}
}

// end terminates the pan and snaps once; later calls are no-ops.
func (p *Panner) end(g *pan) {
	if g.ended {
		return
	}
	g.ended = true
	g.unsubscribe()
	if p.active == g {
		p.active = nil
	}
	if p.apply != nil {
		p.apply(domain.SnapHalfHour(g.current), true)
	}
}

// Active reports whether a pan is in progress.
func (p *Panner) Active() bool {
	return p.active != nil
}
