package palette

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

type Loader struct {
	dir   string
	mu    sync.Mutex
	cache map[string]*Palette
}

func NewLoader(dir string) *Loader {
	return &Loader{
		dir:   dir,
		cache: make(map[string]*Palette),
	}
}

// LoadFile loads the palette at path, resolving parents from the same directory.
func LoadFile(path string) (*Palette, error) {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return NewLoader(filepath.Dir(path)).Load(name)
}

// Load reads <dir>/<name>.json, merges its parent chain and resolves
// references. Results are cached; callers must not modify them.
func (l *Loader) Load(name string) (*Palette, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.load(name, 0)
}

func (l *Loader) load(name string, depth int) (*Palette, error) {
	if p, ok := l.cache[name]; ok {
		return p, nil
	}
	if depth > 16 {
		return nil, fmt.Errorf("palette parent chain too deep at %q", name)
	}

	path := filepath.Join(l.dir, name+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read palette file: %w", err)
	}

	var p Palette
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("could not unmarshal palette json: %w", err)
	}
	if p.Colors == nil {
		p.Colors = make(map[string]Color)
	}

	if p.Parent != "" {
		parent, err := l.load(p.Parent, depth+1)
		if err != nil {
			return nil, fmt.Errorf("could not load parent palette '%s': %w", p.Parent, err)
		}
		if p.Default == "" {
			p.Default = parent.Default
		}
		// The parent is cached and shared; only this palette's map is written.
		merged := maps.Clone(parent.Colors)
		maps.Copy(merged, p.Colors)
		p.Colors = merged
	}

	l.resolveRefs(&p)
	l.cache[name] = &p
	return &p, nil
}

func (l *Loader) resolveRefs(p *Palette) {
	for name, c := range p.Colors {
		if c.Ref == "" {
			continue
		}
		p.Colors[name] = Color{RGB: ResolveColor(name, p)}
	}
}

// ResolveColor follows references from name. Unknown names and reference
// cycles resolve to black.
func ResolveColor(name string, p *Palette) [3]float32 {
	for i := 0; i < 10; i++ {
		c, ok := p.Colors[name]
		if !ok {
			return [3]float32{}
		}
		if c.Ref == "" {
			return c.RGB
		}
		name = c.Ref
	}
	return [3]float32{}
}
