// Package tui provides the terminal user interface implementation
// using the Bubbletea framework.
package tui

import (
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"github.com/xvierd/dayblocks/internal/config"
	"github.com/xvierd/dayblocks/internal/domain"
	"github.com/xvierd/dayblocks/internal/edit"
	"github.com/xvierd/dayblocks/internal/gesture"
	"github.com/xvierd/dayblocks/internal/ports"
	"github.com/xvierd/dayblocks/internal/projector"
)

// Planner is the part of the planner service the timeline drives.
type Planner interface {
	View() projector.View
	SetTrackWidth(w float64)
	Add() domain.Block
	Delete(id string) error
	Nudge(delta float64) float64

	PressBlock(id string, kind gesture.Kind, ev ports.PointerEvent) bool
	PressTrack(ev ports.PointerEvent) bool
	Dispatch(ev ports.PointerEvent)

	Editing(id string) bool
	BeginEdit(id string, f edit.Field) (string, error)
	SetDraft(id string, f edit.Field, text string) error
	CommitEdit(id string, f edit.Field) (bool, error)
	CancelEdit(id string, f edit.Field)
}

// Options configures the timeline model.
type Options struct {
	Title  string
	Theme  *config.ThemeConfig
	Logger *slog.Logger
}

// activeEdit names the field the text input is bound to.
type activeEdit struct {
	id    string
	field edit.Field
}

// Model represents the TUI state.
type Model struct {
	planner  Planner
	title    string
	width    int
	height   int
	keys     keyMap
	editKeys editKeyMap
	styles   styles
	progress progress.Model
	input    textinput.Model
	editing  *activeEdit
	selected int
	logger   *slog.Logger
}

// getTerminalWidth returns the current terminal width, defaulting to 80.
func getTerminalWidth() int {
	w, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || w < 40 {
		return 80
	}
	return w
}

// NewModel creates a new TUI model.
func NewModel(planner Planner, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	title := opts.Title
	if title == "" {
		title = config.DefaultConfig().Title
	}

	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 40

	m := Model{
		planner:  planner,
		title:    title,
		keys:     defaultKeyMap(),
		editKeys: defaultEditKeyMap(),
		styles:   newStyles(resolveTheme(opts.Theme)),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		input:    ti,
		logger:   logger,
	}
	m.resize(getTerminalWidth(), 24)
	return m
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	return nil
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	l := newLayout(width, 0)
	m.planner.SetTrackWidth(float64(l.trackW))
	m.progress.Width = l.trackW - 16
	if m.progress.Width < 10 {
		m.progress.Width = 10
	}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if m.editing != nil {
			return m.updateEdit(msg)
		}
		return m.updateKeys(msg)

	case tea.MouseMsg:
		return m.updateMouse(msg)
	}

	if m.editing != nil {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Add):
		m.planner.Add()
		m.selected = len(m.planner.View().Blocks) - 1

	case key.Matches(msg, m.keys.Delete):
		if id, ok := m.selectedID(); ok {
			if err := m.planner.Delete(id); err != nil {
				m.logger.Debug("delete failed", "id", id, "error", err)
			}
			m.clampSelection()
		}

	case key.Matches(msg, m.keys.Next):
		m.moveSelection(1)

	case key.Matches(msg, m.keys.Prev):
		m.moveSelection(-1)

	case key.Matches(msg, m.keys.EditStart):
		return m.beginSelected(edit.FieldStart)

	case key.Matches(msg, m.keys.EditEnd):
		return m.beginSelected(edit.FieldEnd)

	case key.Matches(msg, m.keys.EditName):
		return m.beginSelected(edit.FieldName)

	case key.Matches(msg, m.keys.EditDuration):
		return m.beginSelected(edit.FieldDuration)

	case key.Matches(msg, m.keys.PanEarlier):
		m.planner.Nudge(-wheelStep)

	case key.Matches(msg, m.keys.PanLater):
		m.planner.Nudge(wheelStep)
	}
	return m, nil
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		m.commitEdit()
		return m, tea.Quit

	case key.Matches(msg, m.editKeys.Commit):
		m.commitEdit()
		return m, nil

	case key.Matches(msg, m.editKeys.Cancel):
		m.cancelEdit()
		return m, nil

	case key.Matches(msg, m.editKeys.NextField):
		current := *m.editing
		m.commitEdit()
		return m.beginEdit(current.id, nextField(current.field))
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if err := m.planner.SetDraft(m.editing.id, m.editing.field, m.input.Value()); err != nil {
		m.logger.Debug("draft rejected", "error", err)
	}
	return m, cmd
}

func (m Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if delta, ok := wheelDelta(msg); ok {
		m.planner.Nudge(delta)
		return m, nil
	}
	ev, ok := pointerEvent(msg)
	if !ok {
		return m, nil
	}
	if ev.Phase != ports.PhaseDown {
		m.planner.Dispatch(ev)
		return m, nil
	}
	return m.press(msg.X, msg.Y, ev)
}

// press routes a pointer-down to whatever is under it. Any open edit is
// committed first unless the press lands on that edit's own input.
func (m Model) press(x, y int, ev ports.PointerEvent) (tea.Model, tea.Cmd) {
	view := m.planner.View()
	lay := newLayout(m.width, len(view.Blocks))
	reg, lane, col := lay.hit(x, y)

	var editingID string
	if m.editing != nil {
		editingID = m.editing.id
		if reg == regionDetail && view.Blocks[lane].ID == editingID {
			segs := detailSegments(view.Blocks[lane], m.editing, m.input.View())
			off := detailOffset(segs, gesture.SpanOf(view.Blocks[lane].Geometry(), lay.trackW), lay.trackW)
			if s, ok := segmentAt(segs, off, col); ok && s.kind == segmentField && s.field == m.editing.field {
				return m, nil
			}
		}
		m.commitEdit()
		view = m.planner.View()
	}

	switch reg {
	case regionTrack:
		m.planner.PressTrack(ev)

	case regionBar:
		bv := view.Blocks[lane]
		span := gesture.SpanOf(bv.Geometry(), lay.trackW)
		editing := editingID == bv.ID || m.planner.Editing(bv.ID)
		// Only the ruler pans; empty lane cells ignore the press.
		if kind, ok := span.Hit(col, editing); ok {
			if m.planner.PressBlock(bv.ID, kind, ev) {
				m.selected = lane
			}
		}

	case regionDetail:
		if ev.Button != ports.ButtonPrimary {
			return m, nil
		}
		bv := view.Blocks[lane]
		m.selected = lane
		segs := detailSegments(bv, nil, "")
		off := detailOffset(segs, gesture.SpanOf(bv.Geometry(), lay.trackW), lay.trackW)
		s, ok := segmentAt(segs, off, col)
		if !ok {
			return m, nil
		}
		switch s.kind {
		case segmentField:
			return m.beginEdit(bv.ID, s.field)
		case segmentDelete:
			if err := m.planner.Delete(bv.ID); err != nil {
				m.logger.Debug("delete failed", "id", bv.ID, "error", err)
			}
			m.clampSelection()
		}

	case regionAdd:
		if ev.Button == ports.ButtonPrimary {
			m.planner.Add()
			m.selected = len(view.Blocks)
		}
	}
	return m, nil
}

func (m Model) beginSelected(f edit.Field) (tea.Model, tea.Cmd) {
	id, ok := m.selectedID()
	if !ok {
		return m, nil
	}
	return m.beginEdit(id, f)
}

func (m Model) beginEdit(id string, f edit.Field) (tea.Model, tea.Cmd) {
	seed, err := m.planner.BeginEdit(id, f)
	if err != nil {
		m.logger.Debug("edit not started", "id", id, "field", f.String(), "error", err)
		return m, nil
	}
	for i, bv := range m.planner.View().Blocks {
		if bv.ID == id {
			m.selected = i
		}
	}
	m.editing = &activeEdit{id: id, field: f}
	m.input.SetValue(seed)
	m.input.CursorEnd()
	cmd := m.input.Focus()
	return m, cmd
}

// commitEdit closes the open edit, applying the draft when it parses.
func (m *Model) commitEdit() {
	if m.editing == nil {
		return
	}
	if _, err := m.planner.CommitEdit(m.editing.id, m.editing.field); err != nil {
		m.logger.Debug("edit commit failed", "id", m.editing.id, "error", err)
	}
	m.editing = nil
	m.input.Blur()
	m.input.SetValue("")
}

// cancelEdit closes the open edit and leaves the block unchanged.
func (m *Model) cancelEdit() {
	if m.editing == nil {
		return
	}
	m.planner.CancelEdit(m.editing.id, m.editing.field)
	m.editing = nil
	m.input.Blur()
	m.input.SetValue("")
}

func (m Model) selectedID() (string, bool) {
	blocks := m.planner.View().Blocks
	if m.selected < 0 || m.selected >= len(blocks) {
		return "", false
	}
	return blocks[m.selected].ID, true
}

func (m *Model) moveSelection(delta int) {
	n := len(m.planner.View().Blocks)
	if n == 0 {
		m.selected = 0
		return
	}
	m.selected = ((m.selected+delta)%n + n) % n
}

func (m *Model) clampSelection() {
	n := len(m.planner.View().Blocks)
	if m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

// nextField returns the field after f in display order.
func nextField(f edit.Field) edit.Field {
	for i, candidate := range edit.Fields {
		if candidate == f {
			return edit.Fields[(i+1)%len(edit.Fields)]
		}
	}
	return edit.Fields[0]
}
