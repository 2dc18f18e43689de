package main

import (
	"chunk-noise/internal/config"
	"chunk-noise/internal/world"
)

// buildField returns the density field selected by name. Unknown names
// get the terrain field.
func buildField(name string, seed int64, shape world.ColumnShape, seaLevel int) world.DensityFunction {
	switch name {
	case config.FieldPerlin:
		// Perlin octaves span hundreds of units; scale them down and lean
		// the result on a gradient across the column so it has a surface.
		noise := world.Mul(world.Constant(1.0/128.0), world.NewPerlinField(seed, 8))
		slope := world.YClampedGradient{FromY: shape.MinY, ToY: shape.MaxY(), FromValue: 3, ToValue: -3}
		return world.Clamp(world.Add(noise, slope), -4, 4)
	case config.FieldGradient:
		return world.YClampedGradient{FromY: seaLevel - 32, ToY: seaLevel + 32, FromValue: 1, ToValue: -1}
	case config.FieldBiome:
		return world.NewBiomeField(seed)
	default:
		return world.NewTerrainField(seed)
	}
}
