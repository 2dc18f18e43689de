package world

import (
	"errors"
	"slices"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

// recordingMaterializer stores every interpolated density by world position.
type recordingMaterializer struct {
	values map[[3]int]float64
}

func (r *recordingMaterializer) Materialize(x, y, z int, density float64) (MaterialID, bool, error) {
	r.values[[3]int{x, y, z}] = density
	return MaterialStone, true, nil
}

var errBoom = errors.New("boom")

type failingField struct {
	at [3]int
}

func (f failingField) Sample(x, y, z int) (float64, error) {
	if [3]int{x, y, z} == f.at {
		return 0, errBoom
	}
	return 1, nil
}
func (f failingField) MinValue() float64 { return 1 }
func (f failingField) MaxValue() float64 { return 1 }

func TestSampleBufferLength(t *testing.T) {
	shapes := []ColumnShape{ShapeSurface, ShapeNether, ShapeEnd, ShapeCaves, ShapeFloatingIslands,
		{MinY: 0, Height: 16, HorizontalCellSize: 16, VerticalCellSize: 16}}
	for _, shape := range shapes {
		col, err := SampleColumn(ColumnPos{X: 1, Z: -1}, shape, Constant(1), Threshold{Solid: MaterialStone}, MaterialAir)
		if err != nil {
			t.Fatalf("%v: unexpected error: %v", shape, err)
		}
		if want := 16 * 16 * shape.Height; len(col.Blocks) != want {
			t.Errorf("%v: expected %d blocks, got %d", shape, want, len(col.Blocks))
		}
	}
}

func TestEveryCornerSampledOnce(t *testing.T) {
	shape := ShapeSurface
	field := NewCountingField(Constant(1))
	pos := ColumnPos{X: 2, Z: -3}

	if _, err := SampleColumn(pos, shape, field, Threshold{Solid: MaterialStone}, MaterialAir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := (16/4 + 1) * (16/4 + 1) * (384/8 + 1)
	if field.Calls() != want {
		t.Errorf("Expected %d density calls, got %d", want, field.Calls())
	}
	points := field.Points()
	if len(points) != want {
		t.Errorf("Expected %d distinct corners, got %d", want, len(points))
	}
	for p, n := range points {
		if n != 1 {
			t.Errorf("Corner %v sampled %d times", p, n)
		}
		if p[0]%4 != 0 || p[2]%4 != 0 || p[1]%8 != 0 {
			t.Errorf("Corner %v is not on the lattice", p)
		}
		if p[0] < 32 || p[0] > 48 || p[2] < -48 || p[2] > -32 || p[1] < -64 || p[1] > 320 {
			t.Errorf("Corner %v outside the column's lattice", p)
		}
	}
}

func TestSingleCellSamplesEightCorners(t *testing.T) {
	shape := ColumnShape{MinY: 0, Height: 32, HorizontalCellSize: 16, VerticalCellSize: 32}
	field := NewCountingField(Constant(1))
	if _, err := SampleColumn(ColumnPos{}, shape, field, Threshold{Solid: MaterialStone}, MaterialAir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if field.Calls() != 8 {
		t.Errorf("Expected 8 density calls, got %d", field.Calls())
	}
}

func TestLinearFieldIsExact(t *testing.T) {
	tests := []struct {
		name  string
		shape ColumnShape
		pos   ColumnPos
	}{
		{"surface", ShapeSurface, ColumnPos{X: 0, Z: 0}},
		{"end negative", ShapeEnd, ColumnPos{X: -2, Z: 5}},
		{"tall cells", ColumnShape{MinY: -32, Height: 64, HorizontalCellSize: 16, VerticalCellSize: 32}, ColumnPos{X: 3, Z: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recordingMaterializer{values: make(map[[3]int]float64)}
			field := DensityFunc(func(x, y, z int) float64 {
				return float64(x) + 2*float64(y) + 3*float64(z)
			})
			if _, err := SampleColumn(tt.pos, tt.shape, field, rec, MaterialAir); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(rec.values) != tt.shape.Volume() {
				t.Fatalf("Expected %d materialized blocks, got %d", tt.shape.Volume(), len(rec.values))
			}
			for p, got := range rec.values {
				want := float64(p[0]) + 2*float64(p[1]) + 3*float64(p[2])
				if !scalar.EqualWithinAbs(got, want, 1e-9) {
					t.Fatalf("At %v: interpolated %v, want %v", p, got, want)
				}
			}
		})
	}
}

func TestUndefinedWritesDefault(t *testing.T) {
	col, err := SampleColumn(ColumnPos{X: 7, Z: 7}, ShapeNether, Constant(Undefined), Threshold{Solid: MaterialStone, Empty: MaterialAir}, MaterialBedrock)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := col.Count(MaterialBedrock); n != len(col.Blocks) {
		t.Errorf("Expected all %d blocks to be the default, got %d", len(col.Blocks), n)
	}
}

func TestSurfaceGradientEndToEnd(t *testing.T) {
	field := DensityFunc(func(_, y, _ int) float64 { return float64(y) })
	m := MaterializerFunc(func(_, _, _ int, d float64) (MaterialID, bool) {
		if d >= 0 {
			return MaterialStone, true
		}
		return MaterialAir, true
	})
	col, err := SampleColumn(ColumnPos{X: -1, Z: 4}, ShapeSurface, field, m, MaterialBedrock)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for x := 0; x < 16; x++ {
		for z := 0; z < 16; z++ {
			for y := 0; y < ShapeSurface.Height; y++ {
				want := MaterialAir
				if y+ShapeSurface.MinY >= 0 {
					want = MaterialStone
				}
				if got := col.At(x, y, z); got != want {
					t.Fatalf("At local (%d, %d, %d) world Y %d: got %d, want %d", x, y, z, y+ShapeSurface.MinY, got, want)
				}
			}
		}
	}
	if top, ok := col.TopY(0, 0, func(id MaterialID) bool { return id == MaterialStone }); !ok || top != ShapeSurface.MaxY()-1 {
		t.Errorf("TopY = %d, %v", top, ok)
	}
}

func TestSamplingIsDeterministic(t *testing.T) {
	field := NewTerrainField(1234)
	m := Chain(NewSeaLevel(63))
	a, err := SampleColumn(ColumnPos{X: 3, Z: -2}, ShapeSurface, field, m, MaterialStone)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s, err := NewColumnSampler(ShapeSurface, field, m, MaterialStone)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Reusing a sampler across columns must not leak state between them.
	if _, err := s.Sample(ColumnPos{X: 9, Z: 9}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := s.Sample(ColumnPos{X: 3, Z: -2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(a.Blocks, b.Blocks) {
		t.Error("Two runs over the same column produced different blocks")
	}
	if a.Count(MaterialStone) == 0 || a.Count(MaterialAir) == 0 {
		t.Errorf("Expected terrain with both stone and air, got stone=%d air=%d", a.Count(MaterialStone), a.Count(MaterialAir))
	}
}

func TestSampleIntoRejectsWrongBuffer(t *testing.T) {
	s, err := NewColumnSampler(ShapeNether, Constant(1), Threshold{Solid: MaterialStone}, MaterialAir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err = s.SampleInto(ColumnPos{}, make([]MaterialID, 10))
	var ce *ContractError
	if !errors.As(err, &ce) {
		t.Fatalf("Expected *ContractError, got %v", err)
	}
}

func TestInvalidShapeRejected(t *testing.T) {
	bad := []ColumnShape{
		{MinY: 0, Height: 128, HorizontalCellSize: 5, VerticalCellSize: 8},
		{MinY: 0, Height: 100, HorizontalCellSize: 4, VerticalCellSize: 8},
		{MinY: 0, Height: 128, HorizontalCellSize: 0, VerticalCellSize: 8},
		{MinY: 0, Height: 0, HorizontalCellSize: 4, VerticalCellSize: 8},
	}
	for _, shape := range bad {
		_, err := NewColumnSampler(shape, Constant(1), Threshold{}, MaterialAir)
		var ce *ContractError
		if !errors.As(err, &ce) {
			t.Errorf("%v: expected *ContractError, got %v", shape, err)
		}
	}
	if _, err := NewColumnSampler(ShapeNether, nil, Threshold{}, MaterialAir); err == nil {
		t.Error("Expected error for nil density function")
	}
}

func TestMisalignedMinYPanics(t *testing.T) {
	// MinY is not on the vertical lattice, so the lowest blocks map below the
	// column and the derived index goes negative.
	shape := ColumnShape{MinY: 4, Height: 64, HorizontalCellSize: 4, VerticalCellSize: 8}
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("Expected panic for negative index")
		}
		if _, ok := r.(*ContractError); !ok {
			t.Fatalf("Expected *ContractError panic, got %T: %v", r, r)
		}
	}()
	_, _ = SampleColumn(ColumnPos{}, shape, Constant(1), Threshold{Solid: MaterialStone}, MaterialAir)
}

func TestDensityErrorAborts(t *testing.T) {
	field := failingField{at: [3]int{4, 8, 12}}
	_, err := SampleColumn(ColumnPos{}, ShapeNether, field, Threshold{Solid: MaterialStone}, MaterialAir)
	if !errors.Is(err, errBoom) {
		t.Fatalf("Expected wrapped errBoom, got %v", err)
	}
}

type failingMaterializer struct{}

func (failingMaterializer) Materialize(x, y, z int, _ float64) (MaterialID, bool, error) {
	if y < 10 {
		return 0, false, errBoom
	}
	return MaterialStone, true, nil
}

func TestMaterializeErrorAborts(t *testing.T) {
	_, err := SampleColumn(ColumnPos{}, ShapeNether, Constant(1), Chain(failingMaterializer{}), MaterialAir)
	if !errors.Is(err, errBoom) {
		t.Fatalf("Expected wrapped errBoom, got %v", err)
	}
}

// traceEvent is one density evaluation or one materialized block.
type traceEvent struct {
	density bool
	x, y, z int
}

// tracer records density and materializer calls in the order they happen.
type tracer struct {
	events []traceEvent
}

func (tr *tracer) Sample(x, y, z int) (float64, error) {
	tr.events = append(tr.events, traceEvent{density: true, x: x, y: y, z: z})
	return float64(y), nil
}
func (tr *tracer) MinValue() float64 { return 0 }
func (tr *tracer) MaxValue() float64 { return 16 }

func (tr *tracer) Materialize(x, y, z int, _ float64) (MaterialID, bool, error) {
	tr.events = append(tr.events, traceEvent{x: x, y: y, z: z})
	return MaterialAir, true, nil
}

func TestTraversalOrder(t *testing.T) {
	shape := ColumnShape{MinY: 0, Height: 16, HorizontalCellSize: 8, VerticalCellSize: 8}
	tr := &tracer{}
	if _, err := SampleColumn(ColumnPos{X: 1, Z: -1}, shape, tr, tr, MaterialBedrock); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Corner planes are Z-major with Y ascending; blocks walk X cells, Z cells,
	// Y cells and Y steps descending, then X and Z steps ascending.
	var want []traceEvent
	plane := func(cellX int) {
		for cz := 0; cz <= 2; cz++ {
			for cy := 0; cy <= 2; cy++ {
				want = append(want, traceEvent{density: true, x: cellX * 8, y: cy * 8, z: (cz - 2) * 8})
			}
		}
	}
	plane(2)
	for cellX := 0; cellX < 2; cellX++ {
		plane(3 + cellX)
		for cellZ := 0; cellZ < 2; cellZ++ {
			for cellY := 1; cellY >= 0; cellY-- {
				for sy := 7; sy >= 0; sy-- {
					for sx := 0; sx < 8; sx++ {
						for sz := 0; sz < 8; sz++ {
							want = append(want, traceEvent{x: 16 + cellX*8 + sx, y: cellY*8 + sy, z: -16 + cellZ*8 + sz})
						}
					}
				}
			}
		}
	}

	if len(tr.events) != len(want) {
		t.Fatalf("Expected %d calls, got %d", len(want), len(tr.events))
	}
	for i := range want {
		if tr.events[i] != want[i] {
			t.Fatalf("Call %d: got %+v, want %+v", i, tr.events[i], want[i])
		}
	}

	spot := []struct {
		i    int
		want traceEvent
	}{
		{0, traceEvent{density: true, x: 16, y: 0, z: -16}},
		{1, traceEvent{density: true, x: 16, y: 8, z: -16}},
		{3, traceEvent{density: true, x: 16, y: 0, z: -8}},
		{9, traceEvent{density: true, x: 24, y: 0, z: -16}},
		{18, traceEvent{x: 16, y: 15, z: -16}},
		{19, traceEvent{x: 16, y: 15, z: -15}},
		{26, traceEvent{x: 17, y: 15, z: -16}},
		{18 + 64, traceEvent{x: 16, y: 14, z: -16}},
		{18 + 512, traceEvent{x: 16, y: 7, z: -16}},
		{18 + 1024, traceEvent{x: 16, y: 15, z: -8}},
		{18 + 2048, traceEvent{density: true, x: 32, y: 0, z: -16}},
		{18 + 2048 + 9, traceEvent{x: 24, y: 15, z: -16}},
	}
	for _, s := range spot {
		if tr.events[s.i] != s.want {
			t.Errorf("Call %d: got %+v, want %+v", s.i, tr.events[s.i], s.want)
		}
	}
}

func BenchmarkSampleSurfaceColumn(b *testing.B) {
	s, err := NewColumnSampler(ShapeSurface, NewTerrainField(42), NewSeaLevel(63), MaterialStone)
	if err != nil {
		b.Fatal(err)
	}
	out := make([]MaterialID, ShapeSurface.Volume())

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := s.SampleInto(ColumnPos{X: i % 8, Z: i / 8}, out); err != nil {
			b.Fatal(err)
		}
	}
}
