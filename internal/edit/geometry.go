package edit

import (
	"fmt"

	"github.com/xvierd/dayblocks/internal/domain"
)

// Apply parses draft for a time or duration field and returns the new
// geometry for a block currently at g.
func Apply(g domain.Geometry, f Field, draft string, viewStart float64) (domain.Geometry, error) {
	switch f {
	case FieldStart:
		t, err := domain.ParseTimeString(draft)
		if err != nil {
			return g, err
		}
		return WithStart(g, t, viewStart), nil
	case FieldEnd:
		t, err := domain.ParseTimeString(draft)
		if err != nil {
			return g, err
		}
		return WithEnd(g, t, viewStart), nil
	case FieldDuration:
		h, err := domain.ParseHours(draft)
		if err != nil {
			return g, err
		}
		return WithHours(g, h), nil
	default:
		return g, fmt.Errorf("field %s has no geometry", f)
	}
}

// WithStart moves the left edge to clock time t, keeping the right edge's
// clock time. An end at or before the new start is taken to be on the
// next pass through the viewport.
func WithStart(g domain.Geometry, t, viewStart float64) domain.Geometry {
	left := domain.TimeToPercent(t, viewStart)
	end := domain.TimeToPercent(domain.PercentToTime(g.Right(), viewStart), viewStart)
	if end <= left {
		end += 100
	}
	l := domain.Clamp(left, 0, 100-domain.MinWidth)
	return domain.Geometry{
		Left:  l,
		Width: domain.Clamp(end-left, domain.MinWidth, 100-l),
	}
}

// WithEnd moves the right edge to clock time t.
func WithEnd(g domain.Geometry, t, viewStart float64) domain.Geometry {
	end := domain.TimeToPercent(t, viewStart)
	if end <= g.Left {
		end += 100
	}
	return domain.Geometry{
		Left:  g.Left,
		Width: domain.Clamp(end-g.Left, domain.MinWidth, 100-g.Left),
	}
}

// WithHours sets the block length to h hours.
func WithHours(g domain.Geometry, h float64) domain.Geometry {
	return domain.Geometry{
		Left:  g.Left,
		Width: domain.Clamp(domain.HoursToWidth(h), domain.MinWidth, 100-g.Left),
	}
}
