// Package services contains the application layer of dayblocks. The
// planner owns the plan, the viewport and every in-flight interaction, and
// is the single place the adapters mutate them through.
package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/sahilm/fuzzy"
	"github.com/xvierd/dayblocks/internal/domain"
	"github.com/xvierd/dayblocks/internal/edit"
	"github.com/xvierd/dayblocks/internal/gesture"
	"github.com/xvierd/dayblocks/internal/ports"
	"github.com/xvierd/dayblocks/internal/projector"
)

// ErrNothingToSet is returned by SetBlockTime when neither time is given.
var ErrNothingToSet = errors.New("nothing to set: give a start or an end time")

// NewBlockSpec is the name and geometry used for added blocks.
type NewBlockSpec struct {
	Name  string
	Left  float64
	Width float64
}

// DefaultNewBlockSpec returns the built-in defaults for added blocks.
func DefaultNewBlockSpec() NewBlockSpec {
	return NewBlockSpec{
		Name:  domain.DefaultBlockName,
		Left:  domain.DefaultBlockLeft,
		Width: domain.DefaultBlockWidth,
	}
}

// Planner handles the day planner use cases.
type Planner struct {
	mu sync.Mutex

	plan       *domain.Plan
	viewStart  float64
	trackWidth float64
	newBlock   NewBlockSpec

	bus    *gesture.Bus
	drags  *gesture.Controller
	panner *gesture.Panner
	edits  *edit.Coordinator

	logger *slog.Logger
}

// NewPlanner creates a planner seeded with blocks and a starting viewport.
// A nil logger discards all output.
func NewPlanner(seed []domain.Block, viewStart float64, logger *slog.Logger) *Planner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	p := &Planner{
		plan:      domain.NewPlan(seed...),
		viewStart: domain.Normalize(viewStart),
		newBlock:  DefaultNewBlockSpec(),
		bus:       gesture.NewBus(),
		logger:    logger,
	}
	width := func() float64 { return p.trackWidth }
	p.drags = gesture.NewController(p.bus, width, p.commitGesture)
	p.panner = gesture.NewPanner(p.bus, width, p.applyPan)
	p.edits = edit.NewCoordinator(planTarget{p})
	return p
}

// SetNewBlockDefaults updates the name and geometry used by Add.
func (p *Planner) SetNewBlockDefaults(spec NewBlockSpec) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if spec.Name == "" {
		spec.Name = domain.DefaultBlockName
	}
	p.newBlock = spec
}

// SetTrackWidth records the width of the track in pointer units.
func (p *Planner) SetTrackWidth(w float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.trackWidth = w
}

// View projects the current state, including live gesture geometry.
func (p *Planner) View() projector.View {
	p.mu.Lock()
	defer p.mu.Unlock()
	return projector.Project(p.plan.Blocks(), p.viewStart, p.drags.Overrides())
}

// Blocks returns the committed block list.
func (p *Planner) Blocks() []domain.Block {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.plan.Blocks()
}

// ViewStart returns the leftmost visible hour.
func (p *Planner) ViewStart() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.viewStart
}

// Add appends a block with the default name and geometry.
func (p *Planner) Add() domain.Block {
	p.mu.Lock()
	defer p.mu.Unlock()
	b := p.plan.Append(p.newBlock.Name, p.newBlock.Left, p.newBlock.Width)
	p.logger.Debug("block added", "id", b.ID, "name", b.Name)
	return b
}

// Rename changes the name of a block.
func (p *Planner) Rename(id, name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rename(id, name)
}

// Delete removes a block and drops its open edits. A gesture still running
// on the block finishes without effect.
func (p *Planner) Delete(id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.remove(id)
}

// PressBlock starts a block gesture for a pointer-down on one of its parts.
func (p *Planner) PressBlock(id string, kind gesture.Kind, ev ports.PointerEvent) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	b, ok := p.plan.Get(id)
	if !ok {
		return false
	}
	if kind == gesture.Move && p.edits.Editing(id) {
		return false
	}
	started := p.drags.Begin(kind, b, ev)
	if started {
		p.logger.Debug("gesture started", "id", id, "kind", kind.String(), "pointer", ev.PointerID)
	}
	return started
}

// PressTrack starts a viewport pan for a pointer-down on the track.
func (p *Planner) PressTrack(ev ports.PointerEvent) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.panner.Begin(ev, p.viewStart)
}

// Nudge pans the viewport by delta hours and snaps to the half hour.
// It does nothing while a pan gesture holds the viewport.
func (p *Planner) Nudge(delta float64) float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.panner.Active() {
		return p.viewStart
	}
	p.viewStart = domain.SnapHalfHour(p.viewStart + delta)
	return p.viewStart
}

// Dispatch feeds a pointer event to every running gesture.
func (p *Planner) Dispatch(ev ports.PointerEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.bus.Dispatch(ev)
}

// Dragging reports whether a block gesture is running on the block.
func (p *Planner) Dragging(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.drags.Live(id)
	return ok
}

// Panning reports whether a viewport pan is running.
func (p *Planner) Panning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.panner.Active()
}

// Busy reports whether any gesture holds the pointer.
func (p *Planner) Busy() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.drags.Active() > 0 || p.panner.Active()
}

// BeginEdit opens an edit session and returns its seed text.
func (p *Planner) BeginEdit(id string, f edit.Field) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.edits.Begin(id, f)
}

// SetDraft replaces the draft of an open edit session.
func (p *Planner) SetDraft(id string, f edit.Field, text string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.edits.SetDraft(id, f, text)
}

// CommitEdit closes an edit session and applies its draft when it parses.
func (p *Planner) CommitEdit(id string, f edit.Field) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	changed, err := p.edits.Commit(id, f)
	if err == nil && !changed {
		p.logger.Debug("edit discarded", "id", id, "field", f.String())
	}
	return changed, err
}

// CancelEdit closes an edit session without applying it.
func (p *Planner) CancelEdit(id string, f edit.Field) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.edits.Cancel(id, f)
}

// Editing reports whether the block has an open edit session.
func (p *Planner) Editing(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.edits.Editing(id)
}

// Snapshot returns the projected view of the current plan.
func (p *Planner) Snapshot(ctx context.Context) projector.View {
	return p.View()
}

// AddBlock appends a block. An empty start places it at the default left
// edge; hours <= 0 uses the default width.
func (p *Planner) AddBlock(ctx context.Context, name, start string, hours float64) (domain.Block, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	spec := p.newBlock
	if strings.TrimSpace(name) != "" {
		spec.Name = strings.TrimSpace(name)
	}
	if strings.TrimSpace(start) != "" {
		t, err := domain.ParseTimeString(start)
		if err != nil {
			return domain.Block{}, err
		}
		spec.Left = domain.TimeToPercent(t, p.viewStart)
		if spec.Left > 100-domain.MinWidth {
			return domain.Block{}, fmt.Errorf("%w: %s is outside the visible window %s",
				domain.ErrInvalidTime, domain.FormatTime(t), p.windowLabel())
		}
	}
	if hours > 0 {
		spec.Width = domain.HoursToWidth(hours)
	}

	b := p.plan.Append(spec.Name, spec.Left, spec.Width)
	p.logger.Debug("block added", "id", b.ID, "name", b.Name)
	return b, nil
}

// RenameBlock renames the block referenced by ID, position or name.
func (p *Planner) RenameBlock(ctx context.Context, ref, name string) (domain.Block, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	b, err := p.resolve(ref)
	if err != nil {
		return domain.Block{}, err
	}
	if err := p.rename(b.ID, name); err != nil {
		return domain.Block{}, err
	}
	b, _ = p.plan.Get(b.ID)
	return b, nil
}

// DeleteBlock removes the block referenced by ID, position or name.
func (p *Planner) DeleteBlock(ctx context.Context, ref string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	b, err := p.resolve(ref)
	if err != nil {
		return err
	}
	return p.remove(b.ID)
}

// SetBlockTime moves a block's start and/or end using the inline edit rules.
// Unlike an inline edit, an unparseable time is reported.
func (p *Planner) SetBlockTime(ctx context.Context, ref, start, end string) (domain.Block, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if strings.TrimSpace(start) == "" && strings.TrimSpace(end) == "" {
		return domain.Block{}, ErrNothingToSet
	}
	b, err := p.resolve(ref)
	if err != nil {
		return domain.Block{}, err
	}

	g := b.Geometry
	if strings.TrimSpace(start) != "" {
		if g, err = edit.Apply(g, edit.FieldStart, start, p.viewStart); err != nil {
			return domain.Block{}, err
		}
	}
	if strings.TrimSpace(end) != "" {
		if g, err = edit.Apply(g, edit.FieldEnd, end, p.viewStart); err != nil {
			return domain.Block{}, err
		}
	}
	return p.replace(b.ID, g)
}

// SetBlockDuration sets a block's length in hours.
func (p *Planner) SetBlockDuration(ctx context.Context, ref, hours string) (domain.Block, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	b, err := p.resolve(ref)
	if err != nil {
		return domain.Block{}, err
	}
	g, err := edit.Apply(b.Geometry, edit.FieldDuration, hours, p.viewStart)
	if err != nil {
		return domain.Block{}, err
	}
	return p.replace(b.ID, g)
}

// SetViewStart pans the viewport to a clock time, snapped to the half hour.
func (p *Planner) SetViewStart(ctx context.Context, t string) (float64, error) {
	v, err := domain.ParseTimeString(t)
	if err != nil {
		return 0, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.viewStart = domain.SnapHalfHour(v)
	p.logger.Debug("view start set", "view_start", p.viewStart)
	return p.viewStart, nil
}

// FindBlocks returns the blocks whose names fuzzy-match query, best first.
// An empty query returns every block.
func (p *Planner) FindBlocks(ctx context.Context, query string) []domain.Block {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.find(query)
}

// ---------------------------------------------------------------------------
// Unlocked internals. Gesture and edit callbacks run inside Dispatch and the
// edit methods, which already hold the lock.
// ---------------------------------------------------------------------------

func (p *Planner) find(query string) []domain.Block {
	blocks := p.plan.Blocks()
	if strings.TrimSpace(query) == "" {
		return append([]domain.Block(nil), blocks...)
	}

	names := make([]string, len(blocks))
	for i, b := range blocks {
		names[i] = b.Name
	}

	var result []domain.Block
	for _, match := range fuzzy.Find(query, names) {
		if match.Score > 0 {
			result = append(result, blocks[match.Index])
		}
	}
	return result
}

// resolve finds a block by ID, then 1-based position, then exact name,
// then best fuzzy match.
func (p *Planner) resolve(ref string) (domain.Block, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return domain.Block{}, domain.ErrBlockNotFound
	}
	if b, ok := p.plan.Get(ref); ok {
		return b, nil
	}
	if n, err := strconv.Atoi(strings.TrimPrefix(ref, "#")); err == nil {
		if b, ok := p.plan.At(n - 1); ok {
			return b, nil
		}
		return domain.Block{}, fmt.Errorf("%w: no block at position %d", domain.ErrBlockNotFound, n)
	}
	for _, b := range p.plan.Blocks() {
		if strings.EqualFold(b.Name, ref) {
			return b, nil
		}
	}
	if matches := p.find(ref); len(matches) > 0 {
		return matches[0], nil
	}
	return domain.Block{}, fmt.Errorf("%w: %q", domain.ErrBlockNotFound, ref)
}

func (p *Planner) replace(id string, g domain.Geometry) (domain.Block, error) {
	b, err := p.plan.Replace(id, g.Left, g.Width)
	if err != nil {
		return domain.Block{}, err
	}
	p.logger.Debug("block committed", "id", id, "left", b.Left, "width", b.Width)
	return b, nil
}

func (p *Planner) rename(id, name string) error {
	if _, err := p.plan.Rename(id, name); err != nil {
		return err
	}
	p.logger.Debug("block renamed", "id", id, "name", name)
	return nil
}

func (p *Planner) remove(id string) error {
	if err := p.plan.Remove(id); err != nil {
		return err
	}
	p.edits.Drop(id)
	p.logger.Debug("block deleted", "id", id)
	return nil
}

func (p *Planner) commitGesture(id string, g domain.Geometry) {
	if _, err := p.replace(id, g); err != nil {
		// The block was deleted while it was being dragged.
		p.logger.Debug("gesture dropped", "id", id, "error", err)
	}
}

func (p *Planner) applyPan(viewStart float64, final bool) {
	p.viewStart = viewStart
	if final {
		p.logger.Debug("pan snapped", "view_start", viewStart)
	}
}

func (p *Planner) windowLabel() string {
	vp := domain.NewViewport(p.viewStart)
	return domain.FormatTime(vp.Start) + " - " + domain.FormatTime(vp.End())
}

// planTarget lets the edit coordinator commit through the planner without
// taking the lock again.
type planTarget struct {
	p *Planner
}

func (t planTarget) Block(id string) (domain.Block, bool) { return t.p.plan.Get(id) }
func (t planTarget) ViewStart() float64                    { return t.p.viewStart }

func (t planTarget) Replace(id string, left, width float64) error {
	_, err := t.p.replace(id, domain.Geometry{Left: left, Width: width})
	return err
}

func (t planTarget) Rename(id, name string) error {
	return t.p.rename(id, name)
}

var _ ports.PlanProvider = (*Planner)(nil)
