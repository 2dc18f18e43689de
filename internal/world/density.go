package world

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// Undefined is the density returned where a field has no data. It propagates
// through interpolation, and materializers report no result for it.
var Undefined = math.NaN()

// IsUndefined reports whether d is the Undefined sentinel.
func IsUndefined(d float64) bool { return math.IsNaN(d) }

// DensityFunction is a continuous scalar field sampled at block positions.
// Positive density means solid. Implementations must be deterministic.
type DensityFunction interface {
	Sample(x, y, z int) (float64, error)
	MinValue() float64
	MaxValue() float64
}

// DensityFunc adapts a plain function. Its bounds are unknown.
type DensityFunc func(x, y, z int) float64

func (f DensityFunc) Sample(x, y, z int) (float64, error) { return f(x, y, z), nil }
func (f DensityFunc) MinValue() float64                   { return math.Inf(-1) }
func (f DensityFunc) MaxValue() float64                   { return math.Inf(1) }

// Constant is a field with the same value everywhere.
type Constant float64

func (c Constant) Sample(_, _, _ int) (float64, error) { return float64(c), nil }
func (c Constant) MinValue() float64                   { return float64(c) }
func (c Constant) MaxValue() float64                   { return float64(c) }

// LinearField is Offset + Gradient·(x, y, z). Trilinear interpolation is exact
// for it, which makes it the reference field for the sampler tests.
type LinearField struct {
	Offset   float64
	Gradient mgl64.Vec3
}

func (f LinearField) Sample(x, y, z int) (float64, error) {
	return f.At(mgl64.Vec3{float64(x), float64(y), float64(z)}), nil
}

// At evaluates the field at a continuous position.
func (f LinearField) At(p mgl64.Vec3) float64 {
	return f.Offset + f.Gradient.Dot(p)
}

func (f LinearField) MinValue() float64 { return math.Inf(-1) }
func (f LinearField) MaxValue() float64 { return math.Inf(1) }

// YClampedGradient maps Y from [FromY, ToY] onto [FromValue, ToValue],
// clamping outside that range.
type YClampedGradient struct {
	FromY, ToY         int
	FromValue, ToValue float64
}

func (g YClampedGradient) Sample(_, y, _ int) (float64, error) {
	return clampedMap(float64(y), float64(g.FromY), float64(g.ToY), g.FromValue, g.ToValue), nil
}

func (g YClampedGradient) MinValue() float64 { return math.Min(g.FromValue, g.ToValue) }
func (g YClampedGradient) MaxValue() float64 { return math.Max(g.FromValue, g.ToValue) }

type binaryField struct {
	a, b     DensityFunction
	op       func(a, b float64) float64
	min, max float64
}

func (f *binaryField) Sample(x, y, z int) (float64, error) {
	a, err := f.a.Sample(x, y, z)
	if err != nil {
		return 0, err
	}
	b, err := f.b.Sample(x, y, z)
	if err != nil {
		return 0, err
	}
	return f.op(a, b), nil
}

func (f *binaryField) MinValue() float64 { return f.min }
func (f *binaryField) MaxValue() float64 { return f.max }

// Add returns a + b.
func Add(a, b DensityFunction) DensityFunction {
	return &binaryField{
		a: a, b: b,
		op:  func(x, y float64) float64 { return x + y },
		min: a.MinValue() + b.MinValue(),
		max: a.MaxValue() + b.MaxValue(),
	}
}

// Mul returns a * b.
func Mul(a, b DensityFunction) DensityFunction {
	products := []float64{
		a.MinValue() * b.MinValue(),
		a.MinValue() * b.MaxValue(),
		a.MaxValue() * b.MinValue(),
		a.MaxValue() * b.MaxValue(),
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range products {
		// 0 * Inf is NaN; such bounds are unknown.
		if math.IsNaN(p) {
			lo, hi = math.Inf(-1), math.Inf(1)
			break
		}
		lo = math.Min(lo, p)
		hi = math.Max(hi, p)
	}
	return &binaryField{
		a: a, b: b,
		op:  func(x, y float64) float64 { return x * y },
		min: lo,
		max: hi,
	}
}

type clampField struct {
	in       DensityFunction
	min, max float64
}

// Clamp limits in to [lo, hi].
func Clamp(in DensityFunction, lo, hi float64) DensityFunction {
	return &clampField{in: in, min: lo, max: hi}
}

func (f *clampField) Sample(x, y, z int) (float64, error) {
	v, err := f.in.Sample(x, y, z)
	if err != nil {
		return 0, err
	}
	if IsUndefined(v) {
		return v, nil
	}
	return clamp(v, f.min, f.max), nil
}

func (f *clampField) MinValue() float64 { return math.Max(f.min, f.in.MinValue()) }
func (f *clampField) MaxValue() float64 { return math.Min(f.max, f.in.MaxValue()) }

// CountingField wraps a field and records every position it is sampled at.
// It is safe for concurrent use.
type CountingField struct {
	In DensityFunction

	mu     sync.Mutex
	calls  int
	points map[[3]int]int
}

// NewCountingField wraps in.
func NewCountingField(in DensityFunction) *CountingField {
	return &CountingField{In: in, points: make(map[[3]int]int)}
}

func (f *CountingField) Sample(x, y, z int) (float64, error) {
	f.mu.Lock()
	f.calls++
	f.points[[3]int{x, y, z}]++
	f.mu.Unlock()
	return f.In.Sample(x, y, z)
}

func (f *CountingField) MinValue() float64 { return f.In.MinValue() }
func (f *CountingField) MaxValue() float64 { return f.In.MaxValue() }

// Calls returns the total number of samples taken.
func (f *CountingField) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// Points returns how often each position was sampled.
func (f *CountingField) Points() map[[3]int]int {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[[3]int]int, len(f.points))
	for k, v := range f.points {
		out[k] = v
	}
	return out
}

// Reset forgets all recorded samples.
func (f *CountingField) Reset() {
	f.mu.Lock()
	f.calls = 0
	clear(f.points)
	f.mu.Unlock()
}

// TerrainField combines 3D octave value noise with an altitude gradient so
// that density falls off above BaseHeight. Positive density is solid.
type TerrainField struct {
	Seed             int64
	Scale            float64 // noise frequency
	BaseHeight       int     // target surface level
	GradientStrength float64 // blocks over which the gradient changes by 1
	Octaves          int
	Persistence      float64
	Lacunarity       float64
}

// NewTerrainField creates a density terrain field with default settings.
func NewTerrainField(seed int64) *TerrainField {
	return &TerrainField{
		Seed:             seed,
		Scale:            1.0 / 64.0,
		BaseHeight:       64,
		GradientStrength: 32.0,
		Octaves:          4,
		Persistence:      0.5,
		Lacunarity:       2.0,
	}
}

func (f *TerrainField) Sample(x, y, z int) (float64, error) {
	p := mgl64.Vec3{float64(x), float64(y), float64(z)}.Mul(f.Scale)

	// [0,1] -> [-1,1]
	n := octaveNoise3D(p[0], p[1], p[2], f.Seed, f.Octaves, f.Persistence, f.Lacunarity)*2.0 - 1.0

	heightGradient := (float64(f.BaseHeight) - float64(y)) / f.GradientStrength
	return n + heightGradient, nil
}

// Bounds are open: the altitude term grows without limit.
func (f *TerrainField) MinValue() float64 { return math.Inf(-1) }
func (f *TerrainField) MaxValue() float64 { return math.Inf(1) }

// SurfaceBound returns the lowest Y above which the field is never solid.
func (f *TerrainField) SurfaceBound() int {
	return f.BaseHeight + int(f.GradientStrength)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampedMap(v, fromStart, fromEnd, toStart, toEnd float64) float64 {
	t := clamp((v-fromStart)/(fromEnd-fromStart), 0, 1)
	return lerp(toStart, toEnd, t)
}
