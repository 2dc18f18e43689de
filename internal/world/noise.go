package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Deterministic 3D value noise with multiple octaves.
// Lattice values come from integer hashing, so results are stable across runs.

// fade is the quintic smoothstep 6t^5 - 15t^4 + 10t^3.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func hash3(x, y, z int64, seed int64) uint64 {
	// SplitMix64 finalizer over per-axis golden ratio variants
	v := uint64(x)*0x9E3779B97F4A7C15 + uint64(y)*0x517CC1B727220A95 + uint64(z)*0x6C62272E07BB0142 + uint64(seed)
	v += 0x9E3779B97F4A7C15
	v = (v ^ (v >> 30)) * 0xBF58476D1CE4E5B9
	v = (v ^ (v >> 27)) * 0x94D049BB133111EB
	v = v ^ (v >> 31)
	return v
}

func latticeValue3D(x, y, z int64, seed int64) float64 {
	h := hash3(x, y, z, seed)
	return float64(h&0xFFFFFFFF) / float64(0xFFFFFFFF)
}

func valueNoise3D(x, y, z float64, seed int64) float64 {
	x0 := math.Floor(x)
	y0 := math.Floor(y)
	z0 := math.Floor(z)
	ix, iy, iz := int64(x0), int64(y0), int64(z0)

	fx := fade(x - x0)
	fy := fade(y - y0)
	fz := fade(z - z0)

	v000 := latticeValue3D(ix, iy, iz, seed)
	v100 := latticeValue3D(ix+1, iy, iz, seed)
	v010 := latticeValue3D(ix, iy+1, iz, seed)
	v110 := latticeValue3D(ix+1, iy+1, iz, seed)
	v001 := latticeValue3D(ix, iy, iz+1, seed)
	v101 := latticeValue3D(ix+1, iy, iz+1, seed)
	v011 := latticeValue3D(ix, iy+1, iz+1, seed)
	v111 := latticeValue3D(ix+1, iy+1, iz+1, seed)

	i00 := lerp(v000, v100, fx)
	i10 := lerp(v010, v110, fx)
	i01 := lerp(v001, v101, fx)
	i11 := lerp(v011, v111, fx)

	i0 := lerp(i00, i10, fy)
	i1 := lerp(i01, i11, fy)

	return lerp(i0, i1, fz) // [0,1]
}

func octaveNoise3D(x, y, z float64, seed int64, octaves int, persistence, lacunarity float64) float64 {
	amplitude := 1.0
	frequency := 1.0
	sum := 0.0
	norm := 0.0
	for i := range octaves {
		v := valueNoise3D(x*frequency, y*frequency, z*frequency, seed+int64(i*131))
		sum += v * amplitude
		norm += amplitude
		amplitude *= persistence
		frequency *= lacunarity
	}
	if norm == 0 {
		return 0
	}
	return sum / norm // [0,1]
}

// ValueNoiseField is octave value noise remapped to [-Amplitude, Amplitude].
type ValueNoiseField struct {
	Seed        int64
	Scale       mgl64.Vec3 // per-axis frequency
	Amplitude   float64
	Octaves     int
	Persistence float64
	Lacunarity  float64
}

// NewValueNoiseField returns a 4-octave field with an isotropic frequency of 1/32.
func NewValueNoiseField(seed int64) *ValueNoiseField {
	return &ValueNoiseField{
		Seed:        seed,
		Scale:       mgl64.Vec3{1.0 / 32.0, 1.0 / 32.0, 1.0 / 32.0},
		Amplitude:   1.0,
		Octaves:     4,
		Persistence: 0.5,
		Lacunarity:  2.0,
	}
}

func (f *ValueNoiseField) Sample(x, y, z int) (float64, error) {
	p := mgl64.Vec3{float64(x) * f.Scale[0], float64(y) * f.Scale[1], float64(z) * f.Scale[2]}
	n := octaveNoise3D(p[0], p[1], p[2], f.Seed, f.Octaves, f.Persistence, f.Lacunarity)
	return (n*2.0 - 1.0) * f.Amplitude, nil
}

func (f *ValueNoiseField) MinValue() float64 { return -math.Abs(f.Amplitude) }
func (f *ValueNoiseField) MaxValue() float64 { return math.Abs(f.Amplitude) }
