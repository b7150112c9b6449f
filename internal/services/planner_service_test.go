package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xvierd/dayblocks/internal/domain"
	"github.com/xvierd/dayblocks/internal/edit"
	"github.com/xvierd/dayblocks/internal/gesture"
	"github.com/xvierd/dayblocks/internal/ports"
)

func seedBlocks() []domain.Block {
	return []domain.Block{
		domain.NewBlock("Sleep", 5, 25),
		domain.NewBlock("Read", 35, 20),
		domain.NewBlock("Exercise", 60, 20),
	}
}

func setupPlanner(t *testing.T) (*Planner, []domain.Block) {
	t.Helper()
	seed := seedBlocks()
	p := NewPlanner(seed, 19, nil)
	p.SetTrackWidth(100)
	return p, seed
}

func down(x float64) ports.PointerEvent {
	return ports.PointerEvent{Phase: ports.PhaseDown, Button: ports.ButtonPrimary, Buttons: ports.PrimaryMask, X: x}
}

func move(x float64) ports.PointerEvent {
	return ports.PointerEvent{Phase: ports.PhaseMove, Button: ports.ButtonNone, Buttons: ports.PrimaryMask, X: x}
}

func up(x float64) ports.PointerEvent {
	return ports.PointerEvent{Phase: ports.PhaseUp, Button: ports.ButtonPrimary, X: x}
}

func TestPlanner_DragCommitsOnRelease(t *testing.T) {
	p, seed := setupPlanner(t)
	sleep := seed[0].ID

	require.True(t, p.PressBlock(sleep, gesture.Move, down(10)))
	p.Dispatch(move(20))

	v := p.View()
	bv, ok := v.Block(sleep)
	require.True(t, ok)
	assert.True(t, bv.Dragging)
	assert.InDelta(t, 15.0, bv.Left, 1e-9)
	assert.Equal(t, "19:36", bv.StartDisplay, "display keeps the committed value while dragging")

	committed, _ := domainBlock(p, sleep)
	assert.InDelta(t, 5.0, committed.Left, 1e-9)

	p.Dispatch(up(20))
	assert.False(t, p.Dragging(sleep))
	assert.False(t, p.Busy())

	bv, _ = p.View().Block(sleep)
	assert.False(t, bv.Dragging)
	assert.InDelta(t, 15.0, bv.Left, 1e-9)
	assert.Equal(t, "20:48", bv.StartDisplay)
}

func TestPlanner_PanSnapsAndKeepsGeometry(t *testing.T) {
	p, seed := setupPlanner(t)

	require.True(t, p.PressTrack(down(50)))
	p.Dispatch(move(40))
	assert.True(t, p.Panning())
	assert.InDelta(t, 20.2, p.ViewStart(), 1e-9)

	p.Dispatch(up(40))
	assert.False(t, p.Panning())
	assert.InDelta(t, 20.0, p.ViewStart(), 1e-9)

	bv, _ := p.View().Block(seed[0].ID)
	assert.InDelta(t, 5.0, bv.Left, 1e-9, "panning never changes percent geometry")
	assert.Equal(t, "20:36", bv.StartDisplay)
}

func TestPlanner_Nudge(t *testing.T) {
	p, _ := setupPlanner(t)

	assert.InDelta(t, 19.5, p.Nudge(0.5), 1e-9)
	assert.InDelta(t, 23.5, p.Nudge(4), 1e-9)
	assert.InDelta(t, 0.0, p.Nudge(0.5), 1e-9, "wraps at midnight")

	require.True(t, p.PressTrack(down(50)))
	assert.InDelta(t, 0.0, p.Nudge(3), 1e-9, "ignored while panning")
}

func TestPlanner_DeleteDuringDragIsHarmless(t *testing.T) {
	p, seed := setupPlanner(t)
	read := seed[1].ID

	require.True(t, p.PressBlock(read, gesture.ResizeEnd, down(55)))
	p.Dispatch(move(70))
	require.NoError(t, p.Delete(read))

	assert.NotPanics(t, func() { p.Dispatch(up(70)) })
	assert.Len(t, p.Blocks(), 2)
	assert.False(t, p.Busy())
}

func TestPlanner_MoveIsBlockedWhileEditing(t *testing.T) {
	p, seed := setupPlanner(t)
	sleep := seed[0].ID

	_, err := p.BeginEdit(sleep, edit.FieldName)
	require.NoError(t, err)

	assert.False(t, p.PressBlock(sleep, gesture.Move, down(10)))
	assert.True(t, p.PressBlock(sleep, gesture.ResizeEnd, down(29)), "handles stay live while editing")
}

func TestPlanner_EditRoundTrip(t *testing.T) {
	p, seed := setupPlanner(t)
	sleep := seed[0].ID

	seedText, err := p.BeginEdit(sleep, edit.FieldDuration)
	require.NoError(t, err)
	assert.Equal(t, "3.0", seedText)
	assert.True(t, p.Editing(sleep))

	require.NoError(t, p.SetDraft(sleep, edit.FieldDuration, "4"))
	changed, err := p.CommitEdit(sleep, edit.FieldDuration)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.False(t, p.Editing(sleep))

	bv, _ := p.View().Block(sleep)
	assert.Equal(t, "4.0h", bv.DurationDisplay())
}

func TestPlanner_CancelEditKeepsBlock(t *testing.T) {
	p, seed := setupPlanner(t)
	sleep := seed[0].ID

	_, err := p.BeginEdit(sleep, edit.FieldEnd)
	require.NoError(t, err)
	require.NoError(t, p.SetDraft(sleep, edit.FieldEnd, "1:00"))

	p.CancelEdit(sleep, edit.FieldEnd)
	assert.False(t, p.Editing(sleep))

	bv, _ := p.View().Block(sleep)
	assert.Equal(t, "22:36", bv.EndDisplay)

	_, err = p.CommitEdit(sleep, edit.FieldEnd)
	assert.True(t, errors.Is(err, edit.ErrNoActiveEdit))
}

func TestPlanner_DeleteDropsEdits(t *testing.T) {
	p, seed := setupPlanner(t)
	sleep := seed[0].ID

	_, _ = p.BeginEdit(sleep, edit.FieldStart)
	require.NoError(t, p.Delete(sleep))
	assert.False(t, p.Editing(sleep))

	_, err := p.CommitEdit(sleep, edit.FieldStart)
	assert.True(t, errors.Is(err, edit.ErrNoActiveEdit))
}

func TestPlanner_Add(t *testing.T) {
	p, _ := setupPlanner(t)

	b := p.Add()
	assert.Equal(t, "Block", b.Name)
	assert.InDelta(t, 40.0, b.Left, 1e-9)
	assert.InDelta(t, 15.0, b.Width, 1e-9)

	p.SetNewBlockDefaults(NewBlockSpec{Left: 10, Width: 30})
	b = p.Add()
	assert.Equal(t, "Block", b.Name, "empty name falls back to the default")
	assert.InDelta(t, 10.0, b.Left, 1e-9)
	assert.Len(t, p.Blocks(), 5)
}

// ---------------------------------------------------------------------------
// PlanProvider
// ---------------------------------------------------------------------------

func TestPlanner_AddBlock(t *testing.T) {
	p, _ := setupPlanner(t)
	ctx := context.Background()

	t.Run("at a time", func(t *testing.T) {
		b, err := p.AddBlock(ctx, "Nap", "21:00", 1.5)
		require.NoError(t, err)
		assert.Equal(t, "Nap", b.Name)
		assert.InDelta(t, 200.0/12, b.Left, 1e-9)
		assert.InDelta(t, 12.5, b.Width, 1e-9)
	})

	t.Run("defaults", func(t *testing.T) {
		b, err := p.AddBlock(ctx, "", "", 0)
		require.NoError(t, err)
		assert.Equal(t, "Block", b.Name)
		assert.InDelta(t, 40.0, b.Left, 1e-9)
	})

	t.Run("outside window", func(t *testing.T) {
		_, err := p.AddBlock(ctx, "Breakfast", "8", 1)
		assert.True(t, errors.Is(err, domain.ErrInvalidTime))
	})

	t.Run("bad time", func(t *testing.T) {
		_, err := p.AddBlock(ctx, "Nap", "noon", 1)
		assert.True(t, errors.Is(err, domain.ErrInvalidTime))
	})
}

func TestPlanner_ResolveReferences(t *testing.T) {
	p, seed := setupPlanner(t)
	ctx := context.Background()

	tests := []struct {
		name string
		ref  string
		want string
	}{
		{"by id", seed[2].ID, "Exercise"},
		{"by position", "2", "Read"},
		{"by hash position", "#1", "Sleep"},
		{"by name", "sleep", "Sleep"},
		{"fuzzy", "exer", "Exercise"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := p.RenameBlock(ctx, tt.ref, tt.want)
			require.NoError(t, err)
			assert.Equal(t, tt.want, b.Name)
		})
	}

	for _, ref := range []string{"", "zzz", "9"} {
		_, err := p.RenameBlock(ctx, ref, "x")
		if !errors.Is(err, domain.ErrBlockNotFound) {
			t.Errorf("RenameBlock(%q) error = %v, want ErrBlockNotFound", ref, err)
		}
	}
}

func TestPlanner_DeleteBlock(t *testing.T) {
	p, seed := setupPlanner(t)
	ctx := context.Background()

	require.NoError(t, p.DeleteBlock(ctx, "Read"))
	blocks := p.Blocks()
	require.Len(t, blocks, 2)
	assert.Equal(t, seed[2].ID, blocks[1].ID)
	assert.InDelta(t, 60.0, blocks[1].Left, 1e-9)
}

func TestPlanner_SetBlockTime(t *testing.T) {
	p, _ := setupPlanner(t)
	ctx := context.Background()

	b, err := p.SetBlockTime(ctx, "Sleep", "20:00", "")
	require.NoError(t, err)
	assert.InDelta(t, 100.0/12, b.Left, 1e-9)
	assert.Equal(t, "22:36", domain.FormatTime(b.EndTime(19)))

	b, err = p.SetBlockTime(ctx, "Sleep", "", "23")
	require.NoError(t, err)
	assert.Equal(t, "23:00", domain.FormatTime(b.EndTime(19)))

	_, err = p.SetBlockTime(ctx, "Sleep", "", "")
	assert.True(t, errors.Is(err, ErrNothingToSet))

	_, err = p.SetBlockTime(ctx, "Sleep", "soon", "")
	assert.True(t, errors.Is(err, domain.ErrInvalidTime))
}

func TestPlanner_SetBlockDuration(t *testing.T) {
	p, _ := setupPlanner(t)
	ctx := context.Background()

	b, err := p.SetBlockDuration(ctx, "Read", "2h")
	require.NoError(t, err)
	assert.InDelta(t, 2.0, b.Hours(), 1e-9)

	_, err = p.SetBlockDuration(ctx, "Read", "0")
	assert.True(t, errors.Is(err, domain.ErrInvalidDuration))
}

func TestPlanner_SetViewStart(t *testing.T) {
	p, _ := setupPlanner(t)
	ctx := context.Background()

	v, err := p.SetViewStart(ctx, "6:20")
	require.NoError(t, err)
	assert.InDelta(t, 6.5, v, 1e-9)
	assert.Equal(t, "06:00 - 18:00", p.Snapshot(ctx).WindowDisplay())

	_, err = p.SetViewStart(ctx, "later")
	assert.Error(t, err)
	assert.InDelta(t, 6.5, p.ViewStart(), 1e-9)
}

func TestPlanner_FindBlocks(t *testing.T) {
	p, _ := setupPlanner(t)
	ctx := context.Background()

	assert.Len(t, p.FindBlocks(ctx, ""), 3)

	found := p.FindBlocks(ctx, "rea")
	require.Len(t, found, 1)
	assert.Equal(t, "Read", found[0].Name)

	assert.Empty(t, p.FindBlocks(ctx, "qqq"))
}

func TestPlanner_ConcurrentProviderCalls(t *testing.T) {
	p, _ := setupPlanner(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = p.AddBlock(ctx, "Parallel", "", 1)
			_ = p.Snapshot(ctx)
			_ = p.FindBlocks(ctx, "par")
		}()
	}
	wg.Wait()

	assert.Len(t, p.Blocks(), 11)
}

func domainBlock(p *Planner, id string) (domain.Block, bool) {
	for _, b := range p.Blocks() {
		if b.ID == id {
			return b, true
		}
	}
	return domain.Block{}, false
}
