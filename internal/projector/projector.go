// Package projector derives everything the timeline shows from the
// committed plan and the viewport: display strings, hour ticks, the
// window indicator and the planned-hours total.
package projector

import (
	"fmt"
	"math"

	"github.com/xvierd/dayblocks/internal/domain"
)

// Tick positions outside this range are dropped; the slack past 0 and 100
// keeps labels from popping in at the edges while panning.
const (
	tickMin = -3.0
	tickMax = 103.0
)

// EmptyHint is shown in place of the lanes when the plan has no blocks.
const EmptyHint = "Add a block to get started"

// BlockView is the presentation state of one block.
type BlockView struct {
	ID    string
	Index int
	Name  string

	// Left and Width are the live geometry while a gesture is active.
	Left  float64
	Width float64

	// Display values always reflect the committed geometry.
	StartDisplay  string
	EndDisplay    string
	DurationHours float64

	Dragging bool
}

// DurationDisplay renders the duration as "3.0h".
func (b BlockView) DurationDisplay() string {
	return fmt.Sprintf("%.1fh", b.DurationHours)
}

// DurationDraft renders the duration without the unit, as an edit seed.
func (b BlockView) DurationDraft() string {
	return fmt.Sprintf("%.1f", b.DurationHours)
}

// Geometry returns the rendered geometry.
func (b BlockView) Geometry() domain.Geometry {
	return domain.Geometry{Left: b.Left, Width: b.Width}
}

// HourTick is a labelled tick on the track.
type HourTick struct {
	Hour     int
	Pos      float64
	Midnight bool
	Noon     bool
}

// Label returns the two-digit hour label.
func (t HourTick) Label() string {
	return fmt.Sprintf("%02d", t.Hour)
}

// View is the complete derived state of the timeline.
type View struct {
	ViewStart  float64
	Blocks     []BlockView
	TotalHours float64
	HourTicks  []HourTick
	HalfTicks  []float64

	// Dots lights one entry per clock hour inside the window.
	Dots [24]bool

	WindowStart string
	WindowEnd   string
}

// Empty reports whether there are no blocks to show.
func (v View) Empty() bool {
	return len(v.Blocks) == 0
}

// TotalDisplay renders the planned-hours total as "9.0h".
func (v View) TotalDisplay() string {
	return fmt.Sprintf("%.1fh", v.TotalHours)
}

// WindowDisplay renders the snapped window as "19:00 - 07:00".
func (v View) WindowDisplay() string {
	return v.WindowStart + " - " + v.WindowEnd
}

// Block returns the view of the block with the given ID.
func (v View) Block(id string) (BlockView, bool) {
	for _, b := range v.Blocks {
		if b.ID == id {
			return b, true
		}
	}
	return BlockView{}, false
}

// Project derives the view. live holds in-progress gesture geometry keyed by
// block ID; it moves blocks on screen but leaves their display text alone.
func Project(blocks []domain.Block, viewStart float64, live map[string]domain.Geometry) View {
	v := View{
		ViewStart: viewStart,
		Blocks:    make([]BlockView, 0, len(blocks)),
	}

	var total float64
	for i, b := range blocks {
		bv := BlockView{
			ID:            b.ID,
			Index:         i,
			Name:          b.Name,
			Left:          b.Left,
			Width:         b.Width,
			StartDisplay:  domain.FormatTime(b.StartTime(viewStart)),
			EndDisplay:    domain.FormatTime(b.EndTime(viewStart)),
			DurationHours: b.Hours(),
		}
		if g, ok := live[b.ID]; ok {
			bv.Left = g.Left
			bv.Width = g.Width
			bv.Dragging = true
		}
		// Sum of already rounded values; drift against the raw sum is accepted.
		total += bv.DurationHours
		v.Blocks = append(v.Blocks, bv)
	}
	v.TotalHours = domain.RoundTenth(total)

	v.HourTicks, v.HalfTicks = ticks(viewStart)

	vp := domain.NewViewport(viewStart)
	for h := range v.Dots {
		v.Dots[h] = vp.Contains(h)
	}

	snapped := vp.Snapped()
	v.WindowStart = domain.FormatHour(snapped.Start)
	v.WindowEnd = domain.FormatHour(snapped.End())

	return v
}

func ticks(viewStart float64) ([]HourTick, []float64) {
	base := math.Floor(viewStart)
	frac := viewStart - base

	var hours []HourTick
	var halves []float64
	for i := -1; i <= int(domain.VisibleHours)+1; i++ {
		pos := ((float64(i) - frac) / domain.VisibleHours) * 100
		if pos >= tickMin && pos <= tickMax {
			h := int(domain.Normalize(base + float64(i)))
			hours = append(hours, HourTick{
				Hour:     h,
				Pos:      pos,
				Midnight: h == 0,
				Noon:     h == 12,
			})
		}
		half := ((float64(i) + 0.5 - frac) / domain.VisibleHours) * 100
		if half >= tickMin && half <= tickMax {
			halves = append(halves, half)
		}
	}
	return hours, halves
}
