package world

import (
	"fmt"
	"strings"
)

// ColumnWidth is the horizontal extent of a column on both X and Z.
const ColumnWidth = 16

// ColumnShape describes the output volume of one column and the size of the
// interpolation cells used to sample it.
type ColumnShape struct {
	MinY               int
	Height             int
	HorizontalCellSize int // blocks per interpolation cell on X and Z
	VerticalCellSize   int // blocks per interpolation cell on Y
}

var (
	ShapeSurface         = ColumnShape{MinY: -64, Height: 384, HorizontalCellSize: 4, VerticalCellSize: 8}
	ShapeNether          = ColumnShape{MinY: 0, Height: 128, HorizontalCellSize: 4, VerticalCellSize: 8}
	ShapeEnd             = ColumnShape{MinY: 0, Height: 128, HorizontalCellSize: 8, VerticalCellSize: 4}
	ShapeCaves           = ColumnShape{MinY: -64, Height: 192, HorizontalCellSize: 4, VerticalCellSize: 8}
	ShapeFloatingIslands = ColumnShape{MinY: 0, Height: 256, HorizontalCellSize: 8, VerticalCellSize: 4}
)

var shapePresets = map[string]ColumnShape{
	"surface":          ShapeSurface,
	"nether":           ShapeNether,
	"end":              ShapeEnd,
	"caves":            ShapeCaves,
	"floating_islands": ShapeFloatingIslands,
}

// ShapeByName resolves a preset shape name such as "surface" or "nether".
func ShapeByName(name string) (ColumnShape, bool) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	s, ok := shapePresets[key]
	return s, ok
}

// ShapeNames returns the preset names in a stable order.
func ShapeNames() []string {
	return []string{"surface", "nether", "end", "caves", "floating_islands"}
}

// Validate reports a *ContractError when the shape cannot be sampled.
func (s ColumnShape) Validate() error {
	switch {
	case s.HorizontalCellSize <= 0 || s.VerticalCellSize <= 0:
		return contractf("shape", "cell sizes must be positive, got %dx%d", s.HorizontalCellSize, s.VerticalCellSize)
	case s.Height <= 0:
		return contractf("shape", "height must be positive, got %d", s.Height)
	case ColumnWidth%s.HorizontalCellSize != 0:
		return contractf("shape", "column width %d is not a multiple of horizontal cell size %d", ColumnWidth, s.HorizontalCellSize)
	case s.Height%s.VerticalCellSize != 0:
		return contractf("shape", "height %d is not a multiple of vertical cell size %d", s.Height, s.VerticalCellSize)
	}
	return nil
}

// HorizontalCellCount is the number of interpolation cells along X (and Z).
func (s ColumnShape) HorizontalCellCount() int { return ColumnWidth / s.HorizontalCellSize }

// VerticalCellCount is the number of interpolation cells along Y.
func (s ColumnShape) VerticalCellCount() int { return s.Height / s.VerticalCellSize }

// MinCellY is the cell index of MinY. Division truncates toward zero.
func (s ColumnShape) MinCellY() int { return s.MinY / s.VerticalCellSize }

// MaxY is the exclusive top of the column.
func (s ColumnShape) MaxY() int { return s.MinY + s.Height }

// Volume is the number of blocks in the column.
func (s ColumnShape) Volume() int { return ColumnWidth * ColumnWidth * s.Height }

// CornerCount is the number of lattice corners evaluated for one column.
func (s ColumnShape) CornerCount() int {
	h := s.HorizontalCellCount() + 1
	return h * h * (s.VerticalCellCount() + 1)
}

// TrimHeight clamps the shape to the [bottom, top) range of a host world,
// keeping the cell sizes.
func (s ColumnShape) TrimHeight(bottom, top int) ColumnShape {
	newMin := max(s.MinY, bottom)
	newTop := min(s.MaxY(), top)
	out := s
	out.MinY = newMin
	out.Height = max(newTop-newMin, 0)
	return out
}

func (s ColumnShape) String() string {
	return fmt.Sprintf("shape{minY=%d height=%d cell=%dx%d}", s.MinY, s.Height, s.HorizontalCellSize, s.VerticalCellSize)
}
