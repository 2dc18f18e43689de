package world

import "chunk-noise/internal/profiling"

// SurfacePass replaces the top of every solid run with the biome's surface
// materials and scatters bedrock over the bottom layers of a column.
type SurfacePass struct {
	Biomes   *BiomeSource
	SeaLevel int
	Depth    int // filler blocks under the top block
	Bedrock  int // bottom layers that may hold bedrock; 0 disables
}

// NewSurfacePass returns a pass with three filler blocks and five bedrock layers.
func NewSurfacePass(biomes *BiomeSource, seaLevel int) *SurfacePass {
	return &SurfacePass{Biomes: biomes, SeaLevel: seaLevel, Depth: 3, Bedrock: 5}
}

// Apply rewrites col in place. Only stone is replaced.
func (p *SurfacePass) Apply(col *Column) {
	defer profiling.Track("world.SurfacePass.Apply")()
	for lx := 0; lx < ColumnWidth; lx++ {
		for lz := 0; lz < ColumnWidth; lz++ {
			wx := col.Pos.StartX() + lx
			wz := col.Pos.StartZ() + lz
			biome := p.Biomes.BiomeAt(wx, wz)
			p.applyStrip(col, lx, lz, wx, wz, biome)
		}
	}
}

func (p *SurfacePass) applyStrip(col *Column, lx, lz, wx, wz int, biome *Biome) {
	remaining := -1
	for ly := col.Shape.Height - 1; ly >= 0; ly-- {
		y := ly + col.Shape.MinY
		if ly < p.Bedrock && bedrockAt(wx, y, wz, ly, p.Bedrock) {
			col.Set(lx, ly, lz, MaterialBedrock)
			continue
		}

		switch col.At(lx, ly, lz) {
		case MaterialStone:
		case MaterialAir, MaterialWater, MaterialLava:
			remaining = -1
			continue
		default:
			continue
		}

		if remaining == -1 {
			remaining = p.Depth
			if y >= p.SeaLevel-1 {
				col.Set(lx, ly, lz, biome.Top)
			} else {
				col.Set(lx, ly, lz, biome.Filler)
			}
		} else if remaining > 0 {
			remaining--
			col.Set(lx, ly, lz, biome.Filler)
		}
	}
}

// bedrockAt thins bedrock out towards the top of the bottom layers.
// The lowest layer is always bedrock.
func bedrockAt(wx, y, wz, layer, layers int) bool {
	if layer == 0 {
		return true
	}
	hash := uint64(wx)*0x9E3779B9 + uint64(wz)*0x517CC1B7 + uint64(y)*0x6C622723
	hash = (hash ^ (hash >> 16)) * 0x45D9F3B
	return int(hash%uint64(layers)) < layers-layer
}
