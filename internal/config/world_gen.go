package config

import "sync"

// Density fields selectable by name
const (
	FieldTerrain  = "terrain"
	FieldPerlin   = "perlin"
	FieldGradient = "gradient"
	FieldBiome    = "biome"
)

// WorldGenSettings holds world generation configuration
type WorldGenSettings struct {
	mu       sync.RWMutex
	seed     int64
	preset   string
	field    string
	seaLevel int
	surface  bool
}

var globalWorldGenSettings = &WorldGenSettings{
	seed:     0,
	preset:   "surface",
	field:    FieldTerrain,
	seaLevel: 63,   // Standard sea level
	surface:  true, // Biome surface layers enabled by default
}

// GetSeed returns the world seed
func GetSeed() int64 {
	globalWorldGenSettings.mu.RLock()
	defer globalWorldGenSettings.mu.RUnlock()
	return globalWorldGenSettings.seed
}

// SetSeed sets the world seed
func SetSeed(seed int64) {
	globalWorldGenSettings.mu.Lock()
	defer globalWorldGenSettings.mu.Unlock()
	globalWorldGenSettings.seed = seed
}

// GetPreset returns the column shape preset name
func GetPreset() string {
	globalWorldGenSettings.mu.RLock()
	defer globalWorldGenSettings.mu.RUnlock()
	return globalWorldGenSettings.preset
}

// SetPreset sets the column shape preset name
func SetPreset(name string) {
	globalWorldGenSettings.mu.Lock()
	defer globalWorldGenSettings.mu.Unlock()
	globalWorldGenSettings.preset = name
}

// GetField returns the density field name
func GetField() string {
	globalWorldGenSettings.mu.RLock()
	defer globalWorldGenSettings.mu.RUnlock()
	return globalWorldGenSettings.field
}

// SetField sets the density field. Unknown names fall back to terrain.
func SetField(name string) {
	globalWorldGenSettings.mu.Lock()
	defer globalWorldGenSettings.mu.Unlock()
	switch name {
	case FieldTerrain, FieldPerlin, FieldGradient, FieldBiome:
		globalWorldGenSettings.field = name
	default:
		globalWorldGenSettings.field = FieldTerrain
	}
}

// GetSeaLevel returns the configured sea level
func GetSeaLevel() int {
	globalWorldGenSettings.mu.RLock()
	defer globalWorldGenSettings.mu.RUnlock()
	return globalWorldGenSettings.seaLevel
}

// SetSeaLevel sets the sea level
func SetSeaLevel(level int) {
	globalWorldGenSettings.mu.Lock()
	defer globalWorldGenSettings.mu.Unlock()
	globalWorldGenSettings.seaLevel = level
}

// GetSurface returns whether biome surface layers are applied
func GetSurface() bool {
	globalWorldGenSettings.mu.RLock()
	defer globalWorldGenSettings.mu.RUnlock()
	return globalWorldGenSettings.surface
}

// SetSurface sets whether biome surface layers are applied
func SetSurface(enabled bool) {
	globalWorldGenSettings.mu.Lock()
	defer globalWorldGenSettings.mu.Unlock()
	globalWorldGenSettings.surface = enabled
}
