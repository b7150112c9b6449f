package ports

import (
	"context"

	"github.com/xvierd/dayblocks/internal/domain"
	"github.com/xvierd/dayblocks/internal/projector"
)

// PlanProvider exposes the planner's use cases to non-interactive adapters.
// This is a driven port (implemented by the services layer).
type PlanProvider interface {
	// Snapshot returns the projected view of the current plan.
	Snapshot(ctx context.Context) projector.View

	// AddBlock appends a block. An empty start uses the default geometry.
	AddBlock(ctx context.Context, name, start string, hours float64) (domain.Block, error)

	// RenameBlock renames the block referenced by ID or name.
	RenameBlock(ctx context.Context, ref, name string) (domain.Block, error)

	// DeleteBlock removes the block referenced by ID or name.
	DeleteBlock(ctx context.Context, ref string) error

	// SetBlockTime sets start and/or end clock times using the inline edit rules.
	SetBlockTime(ctx context.Context, ref, start, end string) (domain.Block, error)

	// SetBlockDuration sets a block's length in hours.
	SetBlockDuration(ctx context.Context, ref, hours string) (domain.Block, error)

	// SetViewStart pans the viewport to a clock time, snapped to the half hour.
	SetViewStart(ctx context.Context, t string) (float64, error)

	// FindBlocks fuzzy-matches blocks by name.
	FindBlocks(ctx context.Context, query string) []domain.Block
}
