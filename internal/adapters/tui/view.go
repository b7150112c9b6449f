package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/xvierd/dayblocks/internal/domain"
	"github.com/xvierd/dayblocks/internal/gesture"
	"github.com/xvierd/dayblocks/internal/projector"
)

// View renders the TUI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	view := m.planner.View()
	lay := newLayout(m.width, len(view.Blocks))
	lines := make([]string, lay.helpY+1)

	lines[lay.titleY] = m.styles.title.Render(m.title) + "  " +
		m.styles.subtle.Render(view.TotalDisplay()+" planned")
	lines[lay.labelY] = m.renderLabels(view, lay.trackW)
	lines[lay.rulerY] = m.renderRuler(view, lay.trackW)

	if view.Empty() {
		lines[lay.laneY] = m.styles.subtle.Render(projector.EmptyHint)
	}
	for i, bv := range view.Blocks {
		top := lay.laneTop(i)
		span := gesture.SpanOf(bv.Geometry(), lay.trackW)
		lines[top] = m.renderBar(bv, span, lay.trackW)
		lines[top+1] = m.renderDetail(bv, span, lay.trackW)
	}

	lines[lay.addY] = m.styles.button.Render(addLabel)
	lines[lay.windowY] = m.renderWindow(view)
	lines[lay.barY] = m.renderPlanned(view)

	if m.editing != nil {
		lines[lay.helpY] = m.styles.help.Render(m.editKeys.help())
	} else {
		lines[lay.helpY] = m.styles.help.Render(m.keys.help())
	}

	pad := strings.Repeat(" ", padX)
	for i, line := range lines {
		lines[i] = pad + line
	}
	return strings.Join(lines, "\n")
}

// trackCol maps a viewport percentage to a track column.
func trackCol(pct float64, trackW int) int {
	return int(math.Round(pct / 100 * float64(trackW)))
}

func (m Model) renderLabels(view projector.View, trackW int) string {
	c := newCanvas(trackW, ' ')
	palette := []lipgloss.Style{{}, m.styles.tick, m.styles.noon, m.styles.midnight}
	for _, t := range view.HourTicks {
		col := trackCol(t.Pos, trackW)
		if col < 0 || col > trackW-2 {
			continue
		}
		style := 1
		switch {
		case t.Midnight:
			style = 3
		case t.Noon:
			style = 2
		}
		c.put(col, t.Label(), style)
	}
	return c.render(palette)
}

func (m Model) renderRuler(view projector.View, trackW int) string {
	c := newCanvas(trackW, '─')
	for i := range c.style {
		c.style[i] = 1
	}
	palette := []lipgloss.Style{{}, m.styles.tick, m.styles.midnight}
	for _, pos := range view.HalfTicks {
		c.put(trackCol(pos, trackW), "┴", 1)
	}
	for _, t := range view.HourTicks {
		if t.Midnight {
			c.put(trackCol(t.Pos, trackW), "╋", 2)
			continue
		}
		c.put(trackCol(t.Pos, trackW), "┼", 1)
	}
	return c.render(palette)
}

func (m Model) renderBar(bv projector.BlockView, span gesture.Span, trackW int) string {
	bs := m.styles.block(bv.Index)
	body := bs.body
	if bv.Dragging {
		body = bs.dragging
	}
	palette := []lipgloss.Style{{}, body, bs.handle}

	c := newCanvas(trackW, ' ')
	c.fill(span.Start, span.End, ' ', 1)
	c.put(span.Start, "▐", 2)
	c.put(span.End-1, "▌", 2)
	if inner := span.Len() - 2; inner > 0 {
		c.put(span.Start+1, truncate(" "+bv.Name, inner), 1)
	}
	return c.render(palette)
}

func (m Model) renderDetail(bv projector.BlockView, span gesture.Span, trackW int) string {
	bs := m.styles.block(bv.Index)
	segs := detailSegments(bv, m.editing, m.input.View())
	off := detailOffset(segs, span, trackW)

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", off))
	for _, s := range segs {
		switch {
		case m.editing != nil && m.editing.id == bv.ID && s.kind == segmentField && s.field == m.editing.field:
			b.WriteString(s.text)
		case s.kind == segmentField:
			style := bs.field
			if bv.Index == m.selected {
				style = style.Inherit(m.styles.selected)
			}
			b.WriteString(style.Render(s.text))
		case s.kind == segmentDelete:
			b.WriteString(m.styles.subtle.Render(s.text))
		default:
			b.WriteString(bs.label.Render(s.text))
		}
	}
	return b.String()
}

func (m Model) renderWindow(view projector.View) string {
	var dots strings.Builder
	for _, on := range view.Dots {
		if on {
			dots.WriteString(m.styles.dotActive.Render("●"))
		} else {
			dots.WriteString(m.styles.dotIdle.Render("○"))
		}
	}
	return m.styles.subtle.Render(view.WindowDisplay()) + "  " + dots.String()
}

func (m Model) renderPlanned(view projector.View) string {
	ratio := view.TotalHours / domain.TotalHours
	if ratio > 1 {
		ratio = 1
	}
	label := fmt.Sprintf(" %s of 24h", view.TotalDisplay())
	return m.progress.ViewAs(ratio) + m.styles.subtle.Render(label)
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
