package world

// MaterialID is the raw identifier written into a column's output buffer.
type MaterialID uint16

const (
	MaterialAir MaterialID = iota
	MaterialStone
	MaterialWater
	MaterialLava
	MaterialBedrock
	MaterialDirt
	MaterialGrass
)

// Materializer maps a density sample at a block position to a material.
// ok is false when there is no result for the sample; the sampler then
// writes the column's default material.
type Materializer interface {
	Materialize(x, y, z int, density float64) (id MaterialID, ok bool, err error)
}

// MaterializerFunc adapts a plain function.
type MaterializerFunc func(x, y, z int, density float64) (MaterialID, bool)

func (f MaterializerFunc) Materialize(x, y, z int, density float64) (MaterialID, bool, error) {
	id, ok := f(x, y, z, density)
	return id, ok, nil
}

// Threshold writes Solid where density is positive and Empty elsewhere.
// Undefined densities have no result.
type Threshold struct {
	Solid MaterialID
	Empty MaterialID
}

func (t Threshold) Materialize(_, _, _ int, density float64) (MaterialID, bool, error) {
	if IsUndefined(density) {
		return 0, false, nil
	}
	if density > 0 {
		return t.Solid, true, nil
	}
	return t.Empty, true, nil
}

// LavaLevel is the Y below which open space fills with lava when the sea
// level sits above it.
const LavaLevel = -54

// SeaLevel fills open space with fluid. Solid samples have no result, so the
// column default (normally stone) fills them.
//
// Open space below min(LavaLevel, Level) is Lava, below Level it is Fluid,
// and above it is Air.
type SeaLevel struct {
	Level int
	Fluid MaterialID
	Lava  MaterialID
	Air   MaterialID
}

// NewSeaLevel returns a water sea level with lava lakes at the bottom.
func NewSeaLevel(level int) SeaLevel {
	return SeaLevel{Level: level, Fluid: MaterialWater, Lava: MaterialLava, Air: MaterialAir}
}

func (s SeaLevel) Materialize(_, y, _ int, density float64) (MaterialID, bool, error) {
	if IsUndefined(density) || density > 0 {
		return 0, false, nil
	}
	if y < min(LavaLevel, s.Level) {
		return s.Lava, true, nil
	}
	if y < s.Level {
		return s.Fluid, true, nil
	}
	return s.Air, true, nil
}

type chain []Materializer

// Chain returns the result of the first materializer that has one.
func Chain(ms ...Materializer) Materializer {
	return chain(ms)
}

func (c chain) Materialize(x, y, z int, density float64) (MaterialID, bool, error) {
	for _, m := range c {
		id, ok, err := m.Materialize(x, y, z, density)
		if err != nil {
			return 0, false, err
		}
		if ok {
			return id, true, nil
		}
	}
	return 0, false, nil
}
