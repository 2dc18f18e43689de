package world

import (
	"math"
)

// Biome defines the terrain shape and surface materials of a region.
type Biome struct {
	ID     int
	Name   string
	Depth  float64 // base height offset
	Scale  float64 // height variation
	Top    MaterialID
	Filler MaterialID // material under the top block
}

var (
	BiomeOcean     = &Biome{ID: 0, Name: "ocean", Depth: -1.0, Scale: 0.1, Top: MaterialDirt, Filler: MaterialDirt}
	BiomePlains    = &Biome{ID: 1, Name: "plains", Depth: 0.1, Scale: 0.2, Top: MaterialGrass, Filler: MaterialDirt}
	BiomeHills     = &Biome{ID: 3, Name: "hills", Depth: 0.3, Scale: 1.5, Top: MaterialGrass, Filler: MaterialDirt}
	BiomeForest    = &Biome{ID: 4, Name: "forest", Depth: 0.1, Scale: 0.2, Top: MaterialGrass, Filler: MaterialDirt}
	BiomeMountains = &Biome{ID: 5, Name: "mountains", Depth: 1.0, Scale: 1.0, Top: MaterialStone, Filler: MaterialStone}
)

// Biomes lists every known biome.
var Biomes = []*Biome{BiomeOcean, BiomePlains, BiomeHills, BiomeForest, BiomeMountains}

// BiomeSource picks a biome per column position from low frequency noise.
type BiomeSource struct {
	Seed  int64
	Scale float64
}

// NewBiomeSource returns a source with biomes roughly 400 blocks across.
func NewBiomeSource(seed int64) *BiomeSource {
	return &BiomeSource{Seed: seed, Scale: 1.0 / 400.0}
}

// BiomeAt returns the biome at world x, z.
func (s *BiomeSource) BiomeAt(x, z int) *Biome {
	val := octaveNoise3D(float64(x)*s.Scale, 0, float64(z)*s.Scale, s.Seed, 2, 0.5, 2.0)

	switch {
	case val < 0.35:
		return BiomeOcean
	case val < 0.6:
		if math.Sin(float64(x)*0.01) > 0 {
			return BiomePlains
		}
		return BiomeForest
	case val < 0.8:
		return BiomeHills
	default:
		return BiomeMountains
	}
}
