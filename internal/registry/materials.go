package registry

import (
	"fmt"
	"log"
	"sort"

	"chunk-noise/internal/world"
	"chunk-noise/pkg/palette"

	"github.com/go-gl/mathgl/mgl32"
)

// MaterialDefinition defines the properties of a material id
type MaterialDefinition struct {
	ID      world.MaterialID
	Name    string
	IsSolid bool
	IsFluid bool
	Color   mgl32.Vec3 // RGB in [0,1], used by slice renders
}

var (
	Materials     = make(map[world.MaterialID]*MaterialDefinition)
	MaterialNames = make(map[string]world.MaterialID)
)

func RegisterMaterial(def *MaterialDefinition) {
	Materials[def.ID] = def
	MaterialNames[def.Name] = def.ID
}

// InitRegistry resets the registry to the built-in materials.
func InitRegistry() {
	clear(Materials)
	clear(MaterialNames)

	RegisterMaterial(&MaterialDefinition{
		ID:    world.MaterialAir,
		Name:  "air",
		Color: mgl32.Vec3{0.62, 0.78, 0.95},
	})

	RegisterMaterial(&MaterialDefinition{
		ID:      world.MaterialStone,
		Name:    "stone",
		IsSolid: true,
		Color:   mgl32.Vec3{0.5, 0.5, 0.5},
	})

	RegisterMaterial(&MaterialDefinition{
		ID:      world.MaterialWater,
		Name:    "water",
		IsFluid: true,
		Color:   mgl32.Vec3{0.15, 0.3, 0.85},
	})

	RegisterMaterial(&MaterialDefinition{
		ID:      world.MaterialLava,
		Name:    "lava",
		IsFluid: true,
		Color:   mgl32.Vec3{0.9, 0.35, 0.05},
	})

	// Bedrock
	RegisterMaterial(&MaterialDefinition{
		ID:      world.MaterialBedrock,
		Name:    "bedrock",
		IsSolid: true,
		Color:   mgl32.Vec3{0.2, 0.2, 0.2},
	})

	RegisterMaterial(&MaterialDefinition{
		ID:      world.MaterialDirt,
		Name:    "dirt",
		IsSolid: true,
		Color:   mgl32.Vec3{0.45, 0.32, 0.2},
	})

	RegisterMaterial(&MaterialDefinition{
		ID:      world.MaterialGrass,
		Name:    "grass",
		IsSolid: true,
		Color:   mgl32.Vec3{0.35, 0.65, 0.25},
	})
}

// Lookup returns the id registered under name
func Lookup(name string) (world.MaterialID, error) {
	id, ok := MaterialNames[name]
	if !ok {
		return 0, fmt.Errorf("unknown material %q", name)
	}
	return id, nil
}

// NameOf returns the registered name of id, or its number
func NameOf(id world.MaterialID) string {
	if def, ok := Materials[id]; ok {
		return def.Name
	}
	return fmt.Sprintf("#%d", id)
}

// IsSolid reports whether id is a registered solid material
func IsSolid(id world.MaterialID) bool {
	def, ok := Materials[id]
	return ok && def.IsSolid
}

// Colors returns the color of every registered material
func Colors() map[world.MaterialID]mgl32.Vec3 {
	out := make(map[world.MaterialID]mgl32.Vec3, len(Materials))
	for id, def := range Materials {
		out[id] = def.Color
	}
	return out
}

// ApplyPalette overrides material colors from p and returns the palette's
// default material. Entries naming unknown materials are skipped.
func ApplyPalette(p *palette.Palette, fallback world.MaterialID) (world.MaterialID, error) {
	names := make([]string, 0, len(p.Colors))
	for name := range p.Colors {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		id, ok := MaterialNames[name]
		if !ok {
			log.Printf("palette: skipping unknown material %q", name)
			continue
		}
		Materials[id].Color = mgl32.Vec3(palette.ResolveColor(name, p))
	}

	if p.Default == "" {
		return fallback, nil
	}
	return Lookup(p.Default)
}
