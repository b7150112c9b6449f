// Package domain contains the core entities of the day planner: circular
// clock arithmetic, blocks, the plan that orders them and the viewport
// they are drawn through. Nothing here depends on a UI framework.
package domain

import "errors"

// Common domain errors.
var (
	ErrInvalidTime     = errors.New("invalid time")
	ErrInvalidDuration = errors.New("invalid duration")
	ErrBlockNotFound   = errors.New("block not found")
)

// Default geometry for a freshly added block.
const (
	DefaultBlockLeft  = 40.0
	DefaultBlockWidth = 15.0
	DefaultBlockName  = "Block"
)

// Geometry is a block position in viewport percent.
type Geometry struct {
	Left  float64
	Width float64
}

// Right returns the right edge in viewport percent.
func (g Geometry) Right() float64 {
	return g.Left + g.Width
}

// Block is a named time range anchored to the viewport, not to the clock.
type Block struct {
	ID   string
	Name string
	Geometry
}

// NewBlock creates a block with a fresh identifier and clamped geometry.
func NewBlock(name string, left, width float64) Block {
	return Block{
		ID:       generateID(),
		Name:     name,
		Geometry: ClampGeometry(left, width),
	}
}

// ClampGeometry enforces the commit-time invariants:
// 0 <= left, MinWidth <= width, left+width <= 100.
func ClampGeometry(left, width float64) Geometry {
	l := Clamp(left, 0, 100-MinWidth)
	w := Clamp(width, MinWidth, 100-l)
	return Geometry{Left: l, Width: w}
}

// StartTime returns the clock time of the block's left edge.
func (b Block) StartTime(viewStart float64) float64 {
	return PercentToTime(b.Left, viewStart)
}

// EndTime returns the clock time of the block's right edge.
func (b Block) EndTime(viewStart float64) float64 {
	return PercentToTime(b.Right(), viewStart)
}

// Hours returns the block length in hours rounded to one decimal.
func (b Block) Hours() float64 {
	return RoundTenth(WidthToHours(b.Width))
}
