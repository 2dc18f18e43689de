package world

import (
	"fmt"

	"chunk-noise/internal/profiling"
)

// cellFrame is the interpolation state of the cell being filled: the eight
// corner densities and the result of each pass (Y, then X, then Z).
//
// Corner layout: bit 0 selects z+1, bit 1 selects y+1, bit 2 selects the end
// (x+1) profile.
type cellFrame struct {
	corners [8]float64
	edgesY  [4]float64
	edgesX  [2]float64
	value   float64
}

// load copies the corners of the cell whose lower profile slot is lo.
// stride is the distance between neighbouring Z rows in a profile.
func (f *cellFrame) load(start, end []float64, lo, stride int) {
	f.corners[0] = start[lo]
	f.corners[1] = start[lo+stride]
	f.corners[4] = end[lo]
	f.corners[5] = end[lo+stride]
	f.corners[2] = start[lo+1]
	f.corners[3] = start[lo+stride+1]
	f.corners[6] = end[lo+1]
	f.corners[7] = end[lo+stride+1]
}

func (f *cellFrame) interpolateY(delta float64) {
	f.edgesY[0] = lerp(f.corners[0], f.corners[2], delta)
	f.edgesY[2] = lerp(f.corners[4], f.corners[6], delta)
	f.edgesY[1] = lerp(f.corners[1], f.corners[3], delta)
	f.edgesY[3] = lerp(f.corners[5], f.corners[7], delta)
}

func (f *cellFrame) interpolateX(delta float64) {
	f.edgesX[0] = lerp(f.edgesY[0], f.edgesY[2], delta)
	f.edgesX[1] = lerp(f.edgesY[1], f.edgesY[3], delta)
}

func (f *cellFrame) interpolateZ(delta float64) {
	f.value = lerp(f.edgesX[0], f.edgesX[1], delta)
}

// ColumnSampler fills columns by evaluating a density function on the
// interpolation lattice and trilinearly interpolating every block in between.
//
// Every lattice corner of a column is evaluated exactly once. A sampler owns
// mutable buffers and must not be used by more than one goroutine at a time;
// sample independent columns concurrently with one sampler each.
type ColumnSampler struct {
	shape        ColumnShape
	density      DensityFunction
	materializer Materializer
	fallback     MaterialID

	// Corner profiles at the current cell's low (start) and high (end) X
	// boundary, laid out cellZ*(VerticalCellCount+1) + cellY.
	start []float64
	end   []float64
	frame cellFrame
}

// NewColumnSampler validates shape and allocates the profile buffers.
// fallback is written wherever the materializer has no result.
func NewColumnSampler(shape ColumnShape, density DensityFunction, materializer Materializer, fallback MaterialID) (*ColumnSampler, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if density == nil || materializer == nil {
		return nil, contractf("sampler", "density function and materializer are required")
	}
	n := (shape.HorizontalCellCount() + 1) * (shape.VerticalCellCount() + 1)
	return &ColumnSampler{
		shape:        shape,
		density:      density,
		materializer: materializer,
		fallback:     fallback,
		start:        make([]float64, n),
		end:          make([]float64, n),
	}, nil
}

// SampleColumn samples a single column with a fresh sampler.
func SampleColumn(pos ColumnPos, shape ColumnShape, density DensityFunction, materializer Materializer, fallback MaterialID) (*Column, error) {
	s, err := NewColumnSampler(shape, density, materializer, fallback)
	if err != nil {
		return nil, err
	}
	return s.Sample(pos)
}

// Shape returns the shape the sampler was built for.
func (s *ColumnSampler) Shape() ColumnShape { return s.shape }

// Sample allocates a column at pos and fills it.
func (s *ColumnSampler) Sample(pos ColumnPos) (*Column, error) {
	defer profiling.Track("world.SampleColumn")()
	col := NewColumn(pos, s.shape)
	if err := s.SampleInto(pos, col.Blocks); err != nil {
		return nil, err
	}
	profiling.Add("world.densitySamples", int64(s.shape.CornerCount()))
	return col, nil
}

// SampleInto fills the caller-owned buffer out, which must hold exactly
// Shape().Volume() entries. Errors from the density function or the
// materializer abort the column and are returned wrapped with the position.
func (s *ColumnSampler) SampleInto(pos ColumnPos, out []MaterialID) error {
	if len(out) != s.shape.Volume() {
		return contractf("sample", "output buffer holds %d blocks, shape needs %d", len(out), s.shape.Volume())
	}

	h := s.shape.HorizontalCellSize
	v := s.shape.VerticalCellSize
	cellsXZ := s.shape.HorizontalCellCount()
	cellsY := s.shape.VerticalCellCount()
	minCellY := s.shape.MinCellY()
	stride := cellsY + 1

	startX, startZ := pos.StartX(), pos.StartZ()
	startCellX, startCellZ := pos.X*cellsXZ, pos.Z*cellsXZ

	if err := s.fillProfile(s.start, startCellX, startCellZ); err != nil {
		return err
	}

	for cellX := 0; cellX < cellsXZ; cellX++ {
		if err := s.fillProfile(s.end, startCellX+cellX+1, startCellZ); err != nil {
			return err
		}

		for cellZ := 0; cellZ < cellsXZ; cellZ++ {
			for cellY := cellsY - 1; cellY >= 0; cellY-- {
				s.frame.load(s.start, s.end, cellZ*stride+cellY, stride)

				for sy := v - 1; sy >= 0; sy-- {
					blockY := (minCellY+cellY)*v + sy
					s.frame.interpolateY(float64(sy) / float64(v))

					for sx := 0; sx < h; sx++ {
						blockX := startX + cellX*h + sx
						s.frame.interpolateX(float64(sx) / float64(h))

						for sz := 0; sz < h; sz++ {
							blockZ := startZ + cellZ*h + sz
							s.frame.interpolateZ(float64(sz) / float64(h))

							id, ok, err := s.materializer.Materialize(blockX, blockY, blockZ, s.frame.value)
							if err != nil {
								return fmt.Errorf("materialize block (%d, %d, %d): %w", blockX, blockY, blockZ, err)
							}
							if !ok {
								id = s.fallback
							}
							out[blockIndex(s.shape, blockX&15, blockY-s.shape.MinY, blockZ&15)] = id
						}
					}
				}
			}
		}

		s.start, s.end = s.end, s.start
	}

	return nil
}

// fillProfile evaluates the corner plane at lattice X cellX into buf, Z-major
// with Y ascending.
func (s *ColumnSampler) fillProfile(buf []float64, cellX, startCellZ int) error {
	h := s.shape.HorizontalCellSize
	v := s.shape.VerticalCellSize
	cellsY := s.shape.VerticalCellCount()
	minCellY := s.shape.MinCellY()

	x := cellX * h
	i := 0
	for cellZ := 0; cellZ <= s.shape.HorizontalCellCount(); cellZ++ {
		z := (startCellZ + cellZ) * h
		for cellY := 0; cellY <= cellsY; cellY++ {
			y := (minCellY + cellY) * v
			d, err := s.density.Sample(x, y, z)
			if err != nil {
				return fmt.Errorf("sample density at (%d, %d, %d): %w", x, y, z, err)
			}
			buf[i] = d
			i++
		}
	}
	return nil
}
