package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/xvierd/dayblocks/internal/edit"
	"github.com/xvierd/dayblocks/internal/gesture"
	"github.com/xvierd/dayblocks/internal/projector"
)

const (
	padX     = 2
	minTrack = 24
	laneRows = 3

	addLabel    = "[+ add block]"
	deleteGlyph = "×"
)

// layout places every row of the timeline. View and the mouse handler both
// derive positions from it so hit testing matches what is on screen.
type layout struct {
	trackW int
	lanes  int

	titleY  int
	labelY  int
	rulerY  int
	laneY   int
	addY    int
	windowY int
	barY    int
	helpY   int
}

func newLayout(width, lanes int) layout {
	tw := width - 2*padX
	if tw < minTrack {
		tw = minTrack
	}
	l := layout{
		trackW: tw,
		lanes:  lanes,
		titleY: 0,
		labelY: 2,
		rulerY: 3,
		laneY:  5,
	}
	body := lanes * laneRows
	if lanes == 0 {
		body = 2
	}
	l.addY = l.laneY + body
	l.windowY = l.addY + 2
	l.barY = l.windowY + 1
	l.helpY = l.barY + 2
	return l
}

// region is the kind of screen area under a cell.
type region int

const (
	regionNone region = iota
	regionTrack
	regionBar
	regionDetail
	regionAdd
)

// hit resolves a screen cell to a region, the lane it belongs to and the
// column relative to the track origin.
func (l layout) hit(x, y int) (region, int, int) {
	col := x - padX
	switch {
	case y == l.labelY || y == l.rulerY:
		if col >= 0 && col < l.trackW {
			return regionTrack, -1, col
		}
	case y >= l.laneY && y < l.laneY+l.lanes*laneRows:
		lane := (y - l.laneY) / laneRows
		switch (y - l.laneY) % laneRows {
		case 0:
			return regionBar, lane, col
		case 1:
			return regionDetail, lane, col
		}
	case y == l.addY:
		if col >= 0 && col < lipgloss.Width(addLabel) {
			return regionAdd, -1, col
		}
	}
	return regionNone, -1, col
}

// laneTop returns the bar row of a lane.
func (l layout) laneTop(lane int) int {
	return l.laneY + lane*laneRows
}

// ---------------------------------------------------------------------------
// Detail row
// ---------------------------------------------------------------------------

type segmentKind int

const (
	segmentText segmentKind = iota
	segmentField
	segmentDelete
)

// segment is one run of the detail row under a block.
type segment struct {
	kind  segmentKind
	field edit.Field
	text  string
}

func (s segment) width() int {
	return lipgloss.Width(s.text)
}

// detailSegments lays out "19:36 – 22:36  Sleep  3.0h  ×". While a field is
// being edited its text is replaced by the input's rendering.
func detailSegments(bv projector.BlockView, editing *activeEdit, input string) []segment {
	name := bv.Name
	if strings.TrimSpace(name) == "" {
		name = "untitled"
	}
	segs := []segment{
		{kind: segmentField, field: edit.FieldStart, text: bv.StartDisplay},
		{kind: segmentText, text: " – "},
		{kind: segmentField, field: edit.FieldEnd, text: bv.EndDisplay},
		{kind: segmentText, text: "  "},
		{kind: segmentField, field: edit.FieldName, text: name},
		{kind: segmentText, text: "  "},
		{kind: segmentField, field: edit.FieldDuration, text: bv.DurationDisplay()},
		{kind: segmentText, text: "  "},
		{kind: segmentDelete, text: deleteGlyph},
	}
	if editing != nil && editing.id == bv.ID {
		for i := range segs {
			if segs[i].kind == segmentField && segs[i].field == editing.field {
				segs[i].text = input
			}
		}
	}
	return segs
}

// detailOffset aligns the detail row with the block's left edge, shifted
// left so the whole row stays on the track.
func detailOffset(segs []segment, span gesture.Span, trackW int) int {
	total := 0
	for _, s := range segs {
		total += s.width()
	}
	off := span.Start
	if off+total > trackW {
		off = trackW - total
	}
	if off < 0 {
		off = 0
	}
	return off
}

// segmentAt returns the segment under track column col.
func segmentAt(segs []segment, offset, col int) (segment, bool) {
	x := offset
	for _, s := range segs {
		w := s.width()
		if col >= x && col < x+w {
			return s, true
		}
		x += w
	}
	return segment{}, false
}

// ---------------------------------------------------------------------------
// Canvas
// ---------------------------------------------------------------------------

// canvas is a single row of cells, each tagged with a style index. Index 0
// is unstyled.
type canvas struct {
	cells []rune
	style []int
}

func newCanvas(width int, fill rune) *canvas {
	c := &canvas{
		cells: make([]rune, width),
		style: make([]int, width),
	}
	for i := range c.cells {
		c.cells[i] = fill
	}
	return c
}

// put writes s starting at col, clipped to the row.
func (c *canvas) put(col int, s string, style int) {
	for _, r := range s {
		if col >= 0 && col < len(c.cells) {
			c.cells[col] = r
			c.style[col] = style
		}
		col++
	}
}

// fill paints [from, to) with r.
func (c *canvas) fill(from, to int, r rune, style int) {
	for i := from; i < to; i++ {
		if i >= 0 && i < len(c.cells) {
			c.cells[i] = r
			c.style[i] = style
		}
	}
}

// render joins runs of equally styled cells.
func (c *canvas) render(styles []lipgloss.Style) string {
	var b strings.Builder
	start := 0
	for i := 1; i <= len(c.cells); i++ {
		if i < len(c.cells) && c.style[i] == c.style[start] {
			continue
		}
		run := string(c.cells[start:i])
		if idx := c.style[start]; idx > 0 && idx < len(styles) {
			run = styles[idx].Render(run)
		}
		b.WriteString(run)
		start = i
	}
	return b.String()
}
