package gesture

import (
	"math"

	"github.com/xvierd/dayblocks/internal/domain"
)

// Span is a block's extent on a track of discrete cells, [Start, End).
type Span struct {
	Start int
	End   int
}

// SpanOf maps viewport-percent geometry onto a track of width cells.
// A span is always at least two cells wide so both handles exist.
func SpanOf(g domain.Geometry, width int) Span {
	if width < 2 {
		return Span{Start: 0, End: width}
	}
	start := int(math.Floor(g.Left / 100 * float64(width)))
	end := int(math.Round(g.Right() / 100 * float64(width)))
	if start < 0 {
		start = 0
	}
	if end > width {
		end = width
	}
	if end-start < 2 {
		end = start + 2
		if end > width {
			end = width
			start = width - 2
		}
	}
	return Span{Start: start, End: end}
}

// Len returns the number of cells covered.
func (s Span) Len() int {
	return s.End - s.Start
}

// Hit resolves which gesture a press at cell x would start. Handles are
// layered above the move surface, and the move surface is absent while
// the block is being edited.
func (s Span) Hit(x int, editing bool) (Kind, bool) {
	switch {
	case x < s.Start || x >= s.End:
		return 0, false
	case x == s.Start:
		return ResizeStart, true
	case x == s.End-1:
		return ResizeEnd, true
	case editing:
		return 0, false
	default:
		return Move, true
	}
}
