package world

import (
	"math"
)

// BiomeField is a density field whose surface height follows the blended
// depth and scale of the surrounding biomes. Positive density is solid.
type BiomeField struct {
	Biomes *BiomeSource
	Seed   int64

	CoordinateScale float64
	HeightScale     float64
	StretchY        float64
	BaseSize        float64 // surface level in units of 8 blocks

	parabolic [25]float64
}

// NewBiomeField builds a biome blended field sharing seed with its biome source.
func NewBiomeField(seed int64) *BiomeField {
	f := &BiomeField{
		Biomes:          NewBiomeSource(seed),
		Seed:            seed,
		CoordinateScale: 0.01,
		HeightScale:     0.01,
		StretchY:        12.0,
		BaseSize:        8.5,
	}
	// 10 / sqrt(dx^2 + dz^2 + 0.2)
	for dx := -2; dx <= 2; dx++ {
		for dz := -2; dz <= 2; dz++ {
			f.parabolic[(dx+2)+(dz+2)*5] = 10.0 / math.Sqrt(float64(dx*dx+dz*dz)+0.2)
		}
	}
	return f
}

// blend averages biome depth and scale over a 5x5 neighbourhood sampled
// every 16 blocks. Higher neighbours weigh half.
func (f *BiomeField) blend(x, z int) (depth, scale float64) {
	center := f.Biomes.BiomeAt(x, z)
	total := 0.0
	for i := -2; i <= 2; i++ {
		for j := -2; j <= 2; j++ {
			b := f.Biomes.BiomeAt(x+i*16, z+j*16)
			w := f.parabolic[(i+2)+(j+2)*5] / (b.Depth + 2.0)
			if b.Depth > center.Depth {
				w /= 2.0
			}
			scale += b.Scale * w
			depth += b.Depth * w
			total += w
		}
	}
	scale = (scale/total)*0.9 + 0.1
	depth = ((depth/total)*4.0 - 1.0) / 8.0
	return depth, scale
}

func (f *BiomeField) Sample(x, y, z int) (float64, error) {
	depth, scale := f.blend(x, z)

	offset := f.BaseSize + depth*4.0
	falloff := (f.StretchY * 0.5) / scale
	heightDensity := (float64(y)/8.0 - offset) * falloff

	px := float64(x) * f.CoordinateScale
	py := float64(y) * f.HeightScale
	pz := float64(z) * f.CoordinateScale

	lo := octaveNoise3D(px, py, pz, f.Seed, 4, 0.5, 2.0)*2.0 - 1.0
	hi := octaveNoise3D(px, py, pz, f.Seed+1000, 4, 0.5, 2.0)*2.0 - 1.0
	sel := octaveNoise3D(px*2.0, py*2.0, pz*2.0, f.Seed+2000, 2, 0.5, 2.0)*2.0 - 1.0

	t := clamp((sel/10.0+1.0)/2.0, 0, 1)
	return lerp(lo, hi, t) - heightDensity, nil
}

// Bounds are open: the height term grows without limit.
func (f *BiomeField) MinValue() float64 { return math.Inf(-1) }
func (f *BiomeField) MaxValue() float64 { return math.Inf(1) }
