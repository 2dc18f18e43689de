package world

import (
	"errors"
	"testing"
)

func TestPresetShapesAreValid(t *testing.T) {
	for _, name := range ShapeNames() {
		s, ok := ShapeByName(name)
		if !ok {
			t.Fatalf("Preset %q not found", name)
		}
		if err := s.Validate(); err != nil {
			t.Errorf("Preset %q invalid: %v", name, err)
		}
		if s.MinY%s.VerticalCellSize != 0 {
			t.Errorf("Preset %q has MinY off the vertical lattice", name)
		}
	}
	if s, ok := ShapeByName(" Floating-Islands "); !ok || s != ShapeFloatingIslands {
		t.Errorf("Expected name normalization to find floating_islands, got %v %v", s, ok)
	}
	if _, ok := ShapeByName("overworld"); ok {
		t.Error("Unknown preset resolved")
	}
}

func TestShapeDerivedCounts(t *testing.T) {
	tests := []struct {
		shape   ColumnShape
		cellsXZ int
		cellsY  int
		minCell int
		corners int
	}{
		{ShapeSurface, 4, 48, -8, 25 * 49},
		{ShapeNether, 4, 16, 0, 25 * 17},
		{ShapeEnd, 2, 32, 0, 9 * 33},
		{ShapeCaves, 4, 24, -8, 25 * 25},
		{ShapeFloatingIslands, 2, 64, 0, 9 * 65},
	}
	for _, tt := range tests {
		if got := tt.shape.HorizontalCellCount(); got != tt.cellsXZ {
			t.Errorf("%v: HorizontalCellCount = %d, want %d", tt.shape, got, tt.cellsXZ)
		}
		if got := tt.shape.VerticalCellCount(); got != tt.cellsY {
			t.Errorf("%v: VerticalCellCount = %d, want %d", tt.shape, got, tt.cellsY)
		}
		if got := tt.shape.MinCellY(); got != tt.minCell {
			t.Errorf("%v: MinCellY = %d, want %d", tt.shape, got, tt.minCell)
		}
		if got := tt.shape.CornerCount(); got != tt.corners {
			t.Errorf("%v: CornerCount = %d, want %d", tt.shape, got, tt.corners)
		}
	}
}

func TestShapeValidateReasons(t *testing.T) {
	err := ColumnShape{MinY: 0, Height: 64, HorizontalCellSize: 3, VerticalCellSize: 8}.Validate()
	var ce *ContractError
	if !errors.As(err, &ce) {
		t.Fatalf("Expected *ContractError, got %v", err)
	}
	if ce.Op != "shape" {
		t.Errorf("Expected op %q, got %q", "shape", ce.Op)
	}
}

func TestTrimHeight(t *testing.T) {
	got := ShapeSurface.TrimHeight(0, 256)
	if got.MinY != 0 || got.Height != 256 || got.VerticalCellSize != 8 {
		t.Errorf("TrimHeight = %v", got)
	}
	if got := ShapeNether.TrimHeight(200, 300); got.Height != 0 {
		t.Errorf("Expected empty shape, got %v", got)
	}
}
