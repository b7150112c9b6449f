package tui

// Interaction tests for the timeline model. Each test drives the model
// through Update with the same messages a terminal would send, so hit
// testing, gesture routing and edit commits are all exercised together.
//
// The model is sized to 104 columns, giving a 100-cell track: a track
// column equals a viewport percentage and screen x = column + 2.

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/xvierd/dayblocks/internal/domain"
	"github.com/xvierd/dayblocks/internal/services"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func keyMsg(s string) tea.Msg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+u":
		return tea.KeyMsg{Type: tea.KeyCtrlU}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func press(x, y int) tea.Msg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func rightPress(x, y int) tea.Msg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonRight}
}

func motion(x, y int) tea.Msg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
}

func release(x, y int) tea.Msg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
}

// Screen rows for the three seeded blocks.
const (
	rulerRow    = 3
	sleepBar    = 5
	sleepDetail = 6
	readBar     = 8
	addRow      = 14
)

// sx converts a track column to a screen x.
func sx(col int) int { return col + padX }

func newTestModel(t *testing.T) (Model, *services.Planner) {
	t.Helper()
	p := services.NewPlanner([]domain.Block{
		domain.NewBlock("Sleep", 5, 25),
		domain.NewBlock("Read", 35, 20),
		domain.NewBlock("Exercise", 60, 20),
	}, 19, nil)
	m := NewModel(p, Options{})
	m = step(m, tea.WindowSizeMsg{Width: 104, Height: 40})
	return m, p
}

func step(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		r, _ := m.Update(msg)
		m = r.(Model)
	}
	return m
}

func block(t *testing.T, p *services.Planner, i int) domain.Block {
	t.Helper()
	blocks := p.Blocks()
	if i >= len(blocks) {
		t.Fatalf("no block at %d (have %d)", i, len(blocks))
	}
	return blocks[i]
}

func near(a, b float64) bool {
	d := a - b
	return d < 1e-6 && d > -1e-6
}

// ---------------------------------------------------------------------------
// Block gestures
// ---------------------------------------------------------------------------

func TestModel_DragMovesBlockOnRelease(t *testing.T) {
	m, p := newTestModel(t)

	m = step(m, press(sx(15), sleepBar), motion(sx(25), sleepBar))
	if got := block(t, p, 0).Left; !near(got, 5) {
		t.Errorf("committed left changed mid-drag: %v", got)
	}
	if !strings.Contains(m.View(), "19:36") {
		t.Error("display should keep the committed start while dragging")
	}

	// The release lands far from the block; capture still delivers it.
	m = step(m, release(sx(25), 30))
	if got := block(t, p, 0).Left; !near(got, 15) {
		t.Errorf("left after release = %v, want 15", got)
	}
	if !strings.Contains(m.View(), "20:48") {
		t.Error("display should show the new start after release")
	}
}

func TestModel_ResizeHandles(t *testing.T) {
	m, p := newTestModel(t)

	// Left handle of Sleep is column 5.
	m = step(m, press(sx(5), sleepBar), motion(sx(10), sleepBar), release(sx(10), sleepBar))
	b := block(t, p, 0)
	if !near(b.Left, 10) || !near(b.Width, 20) {
		t.Errorf("after resize-start got left=%v width=%v, want 10/20", b.Left, b.Width)
	}

	// Right handle of Read is column 54.
	_ = step(m, press(sx(54), readBar), motion(sx(64), readBar), release(sx(64), readBar))
	b = block(t, p, 1)
	if !near(b.Left, 35) || !near(b.Width, 30) {
		t.Errorf("after resize-end got left=%v width=%v, want 35/30", b.Left, b.Width)
	}
}

func TestModel_RightButtonDoesNothing(t *testing.T) {
	m, p := newTestModel(t)

	_ = step(m, rightPress(sx(15), sleepBar), motion(sx(40), sleepBar), release(sx(40), sleepBar))
	if got := block(t, p, 0).Left; !near(got, 5) {
		t.Errorf("right-button drag moved the block to %v", got)
	}
	if p.Busy() {
		t.Error("no gesture should be running")
	}
}

// ---------------------------------------------------------------------------
// Panning
// ---------------------------------------------------------------------------

func TestModel_PanOnRulerSnapsOnRelease(t *testing.T) {
	m, p := newTestModel(t)

	m = step(m, press(sx(50), rulerRow), motion(sx(40), rulerRow))
	if !near(p.ViewStart(), 20.2) {
		t.Errorf("view start mid-pan = %v, want 20.2", p.ViewStart())
	}

	m = step(m, release(sx(40), rulerRow))
	if !near(p.ViewStart(), 20) {
		t.Errorf("view start after release = %v, want 20", p.ViewStart())
	}
	if got := block(t, p, 0).Left; !near(got, 5) {
		t.Errorf("panning moved block geometry to %v", got)
	}
	if !strings.Contains(m.View(), "20:36") {
		t.Error("Sleep should now start at 20:36")
	}
}

func TestModel_PressOnEmptyLaneDoesNothing(t *testing.T) {
	m, p := newTestModel(t)

	m = step(m, press(sx(90), sleepBar))
	if p.Panning() || p.Busy() {
		t.Fatal("a press on an empty lane cell should not start a gesture")
	}
	_ = step(m, motion(sx(80), sleepBar), release(sx(80), sleepBar))
	if !near(p.ViewStart(), 19) {
		t.Errorf("view start = %v, want 19 unchanged", p.ViewStart())
	}
	if b := block(t, p, 0); !near(b.Left, 5) {
		t.Errorf("Sleep moved to %v", b.Left)
	}
}

func TestModel_WheelAndKeysNudge(t *testing.T) {
	m, p := newTestModel(t)

	m = step(m, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	if !near(p.ViewStart(), 19.5) {
		t.Errorf("after wheel down view start = %v, want 19.5", p.ViewStart())
	}
	_ = step(m, keyMsg("["), keyMsg("["))
	if !near(p.ViewStart(), 18.5) {
		t.Errorf("after [ [ view start = %v, want 18.5", p.ViewStart())
	}
}

// ---------------------------------------------------------------------------
// Inline edits
// ---------------------------------------------------------------------------

func TestModel_ClickNameEditsAndEnterCommits(t *testing.T) {
	m, p := newTestModel(t)

	m = step(m, press(sx(21), sleepDetail))
	if m.editing == nil || m.input.Value() != "Sleep" {
		t.Fatalf("expected a name edit seeded with Sleep, got %+v %q", m.editing, m.input.Value())
	}

	m = step(m, keyMsg("ctrl+u"), keyMsg("Nap"), keyMsg("enter"))
	if m.editing != nil {
		t.Error("enter should close the edit")
	}
	if got := block(t, p, 0).Name; got != "Nap" {
		t.Errorf("name = %q, want Nap", got)
	}
}

func TestModel_ClickOnOwnInputKeepsEditing(t *testing.T) {
	m, _ := newTestModel(t)

	m = step(m, press(sx(21), sleepDetail), press(sx(22), sleepDetail))
	if m.editing == nil {
		t.Error("clicking inside the open input should not blur it")
	}
}

func TestModel_InvalidStartIsDiscarded(t *testing.T) {
	m, p := newTestModel(t)

	m = step(m, press(sx(6), sleepDetail), keyMsg("ctrl+u"), keyMsg("soon"), keyMsg("enter"))
	if m.editing != nil {
		t.Error("edit should return to idle")
	}
	if b := block(t, p, 0); !near(b.Left, 5) || !near(b.Width, 25) {
		t.Errorf("invalid draft changed geometry to %v/%v", b.Left, b.Width)
	}
}

func TestModel_StartEditCommits(t *testing.T) {
	m, p := newTestModel(t)

	_ = step(m, press(sx(6), sleepDetail), keyMsg("ctrl+u"), keyMsg("20:00"), keyMsg("enter"))
	b := block(t, p, 0)
	if !near(b.Left, 100.0/12) {
		t.Errorf("left = %v, want %v", b.Left, 100.0/12)
	}
	if got := domain.FormatTime(b.EndTime(19)); got != "22:36" {
		t.Errorf("end = %s, want 22:36 unchanged", got)
	}
}

func TestModel_EscCancelsEdit(t *testing.T) {
	m, p := newTestModel(t)

	m = step(m, press(sx(21), sleepDetail), keyMsg("ctrl+u"), keyMsg("Nap"), keyMsg("esc"))
	if m.editing != nil {
		t.Error("esc should close the edit")
	}
	if m.input.Value() != "" {
		t.Errorf("input = %q, want it cleared", m.input.Value())
	}
	b := block(t, p, 0)
	if b.Name != "Sleep" {
		t.Errorf("name = %q, want Sleep kept after esc", b.Name)
	}
	if p.Editing(b.ID) {
		t.Error("the planner should have no open session after esc")
	}
}

func TestModel_PressElsewhereBlursAndCommits(t *testing.T) {
	m, p := newTestModel(t)

	m = step(m, press(sx(28), sleepDetail), keyMsg("ctrl+u"), keyMsg("4"))
	if m.editing == nil {
		t.Fatal("expected a duration edit")
	}

	m = step(m, press(sx(50), rulerRow))
	if m.editing != nil {
		t.Error("pressing the ruler should blur the edit")
	}
	if got := block(t, p, 0).Hours(); !near(got, 4) {
		t.Errorf("duration = %v, want 4", got)
	}
	if !p.Panning() {
		t.Error("the same press should start a pan")
	}
	_ = step(m, release(sx(50), rulerRow))
}

func TestModel_MoveSurfaceAbsentWhileEditing(t *testing.T) {
	m, p := newTestModel(t)

	m = step(m, keyMsg("n"))
	if m.editing == nil {
		t.Fatal("n should edit the selected block's name")
	}

	// Pressing Sleep's interior blurs the edit but must not start a move.
	m = step(m, press(sx(15), sleepBar))
	if p.Dragging(block(t, p, 0).ID) {
		t.Error("move should not start on a block that was being edited")
	}
	if p.Panning() {
		t.Error("the press should not pan the window")
	}
	_ = step(m, release(sx(15), sleepBar))
}

func TestModel_TabMovesToNextField(t *testing.T) {
	m, _ := newTestModel(t)

	m = step(m, keyMsg("n"), keyMsg("tab"))
	if m.editing == nil || m.editing.field.String() != "duration" {
		t.Fatalf("tab from name should open duration, got %+v", m.editing)
	}
	if m.input.Value() != "3.0" {
		t.Errorf("duration seed = %q, want 3.0", m.input.Value())
	}
}

func TestModel_CtrlCCommitsAndQuits(t *testing.T) {
	m, p := newTestModel(t)

	m = step(m, keyMsg("n"), keyMsg("ctrl+u"), keyMsg("Bed"))
	_, cmd := m.Update(keyMsg("ctrl+c"))
	if cmd == nil {
		t.Fatal("ctrl+c should return a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should quit")
	}
	if got := block(t, p, 0).Name; got != "Bed" {
		t.Errorf("name = %q, want the draft committed on quit", got)
	}
}

// ---------------------------------------------------------------------------
// Add / delete / selection
// ---------------------------------------------------------------------------

func TestModel_AddButtonAndKey(t *testing.T) {
	m, p := newTestModel(t)

	m = step(m, press(sx(3), addRow))
	if len(p.Blocks()) != 4 {
		t.Fatalf("add button: %d blocks, want 4", len(p.Blocks()))
	}
	m = step(m, keyMsg("a"))
	if len(p.Blocks()) != 5 {
		t.Fatalf("a key: %d blocks, want 5", len(p.Blocks()))
	}
	if m.selected != 4 {
		t.Errorf("selected = %d, want the new block", m.selected)
	}
	b := block(t, p, 4)
	if b.Name != "Block" || !near(b.Left, 40) || !near(b.Width, 15) {
		t.Errorf("new block = %+v, want the defaults", b)
	}
}

func TestModel_DeleteGlyphRemovesBlock(t *testing.T) {
	m, p := newTestModel(t)
	readID := block(t, p, 1).ID

	// Sleep's detail row starts at column 5; the × is its last cell.
	_ = step(m, press(sx(33), sleepDetail))
	blocks := p.Blocks()
	if len(blocks) != 2 {
		t.Fatalf("%d blocks after delete, want 2", len(blocks))
	}
	if blocks[0].ID != readID {
		t.Error("Read should shift to index 0")
	}
}

func TestModel_KeyboardSelectionAndDelete(t *testing.T) {
	m, p := newTestModel(t)

	m = step(m, keyMsg("tab"), keyMsg("tab"), keyMsg("tab"))
	if m.selected != 0 {
		t.Errorf("selection should wrap to 0, got %d", m.selected)
	}
	m = step(m, keyMsg("shift+tab"), keyMsg("x"))
	if len(p.Blocks()) != 2 {
		t.Fatalf("%d blocks, want 2", len(p.Blocks()))
	}
	if m.selected != 1 {
		t.Errorf("selection should clamp to the last block, got %d", m.selected)
	}

	m = step(m, keyMsg("x"), keyMsg("x"), keyMsg("x"))
	if len(p.Blocks()) != 0 {
		t.Fatalf("%d blocks, want 0", len(p.Blocks()))
	}
	if !strings.Contains(m.View(), "Add a block to get started") {
		t.Error("empty plan should show the hint")
	}
}

func TestModel_QuitKey(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

// ---------------------------------------------------------------------------
// View
// ---------------------------------------------------------------------------

func TestModel_View(t *testing.T) {
	m, _ := newTestModel(t)
	view := m.View()

	for _, want := range []string{
		"Screen-Free Time",
		"7.8h planned",
		"19:36", "22:36", "Sleep", "3.0h",
		"Exercise",
		"19:00 - 07:00",
		"●", "○",
		addLabel,
	} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestModel_ViewShowsEditHelpWhileEditing(t *testing.T) {
	m, _ := newTestModel(t)
	m = step(m, keyMsg("s"))
	if !strings.Contains(m.View(), "enter save") {
		t.Error("edit help should be shown while editing")
	}
}
