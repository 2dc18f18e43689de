package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"chunk-noise/internal/config"
	"chunk-noise/internal/profiling"
	"chunk-noise/internal/registry"
	"chunk-noise/internal/world"
	"chunk-noise/pkg/palette"

	"github.com/xlab/closer"
)

func main() {
	var (
		preset   = flag.String("preset", config.GetPreset(), "column shape preset: "+strings.Join(world.ShapeNames(), ", "))
		seed     = flag.Int64("seed", config.GetSeed(), "world seed")
		chunk    = flag.String("chunk", "0,0", "center column as x,z")
		radius   = flag.Int("radius", config.GetRadius(), "also sample columns within this many columns of the center")
		field    = flag.String("field", config.GetField(), "density field: terrain, perlin, gradient, biome")
		seaLevel = flag.Int("sea-level", config.GetSeaLevel(), "fluid fills open space below this Y")
		surface  = flag.Bool("surface", config.GetSurface(), "apply biome surface layers and bedrock")
		palPath  = flag.String("palette", "", "palette JSON file for colors and the default material")
		pngDir   = flag.String("png", "", "write one slice PNG per column into this directory")
		workers  = flag.Int("workers", config.GetWorkers(), "sampling workers")
		stats    = flag.Bool("stats", false, "log corner density statistics per column")
		quiet    = flag.Bool("quiet", false, "do not write raw id dumps to stdout")
	)
	flag.Parse()

	center, err := parseChunk(*chunk)
	if err != nil {
		log.Fatalf("invalid -chunk: %v", err)
	}

	config.SetPreset(*preset)
	config.SetSeed(*seed)
	config.SetRadius(*radius)
	config.SetField(*field)
	config.SetSeaLevel(*seaLevel)
	config.SetSurface(*surface)
	config.SetWorkers(*workers)

	ctx, cancel := context.WithCancel(context.Background())
	closer.Bind(cancel)

	opts := outputOptions{palettePath: *palPath, pngDir: *pngDir, stats: *stats, dump: !*quiet}
	if err := run(ctx, center, opts); err != nil {
		var ce *world.ContractError
		switch {
		case errors.As(err, &ce):
			log.Fatalf("columndump: %v", ce)
		case errors.Is(err, context.Canceled):
			log.Printf("columndump: interrupted")
		default:
			log.Fatalf("columndump: %v", err)
		}
	}
	closer.Close()
}

type outputOptions struct {
	palettePath string
	pngDir      string
	stats       bool
	dump        bool
}

func run(ctx context.Context, center world.ColumnPos, opts outputOptions) error {
	defer profiling.Track("columndump.run")()

	shape, ok := world.ShapeByName(config.GetPreset())
	if !ok {
		return fmt.Errorf("unknown preset %q (want one of %s)", config.GetPreset(), strings.Join(world.ShapeNames(), ", "))
	}

	registry.InitRegistry()
	fallback := world.MaterialStone
	if opts.palettePath != "" {
		p, err := palette.LoadFile(opts.palettePath)
		if err != nil {
			return err
		}
		if fallback, err = registry.ApplyPalette(p, fallback); err != nil {
			return err
		}
	}

	seed := config.GetSeed()
	density := buildField(config.GetField(), seed, shape, config.GetSeaLevel())
	materializer := world.Chain(world.NewSeaLevel(config.GetSeaLevel()))

	log.Printf("sampling %s around %d,%d radius %d with %s field, seed %d, %d workers",
		shape, center.X, center.Z, config.GetRadius(), config.GetField(), seed, config.GetWorkers())

	store := world.NewColumnStore()
	streamer := world.NewColumnStreamer(store, func() (*world.ColumnSampler, error) {
		return world.NewColumnSampler(shape, density, materializer, fallback)
	}, config.GetWorkers())
	defer streamer.Close()

	cols, err := streamer.GenerateAround(ctx, center, config.GetRadius())
	if err != nil {
		return err
	}

	if config.GetSurface() {
		pass := world.NewSurfacePass(world.NewBiomeSource(seed), config.GetSeaLevel())
		for _, col := range cols {
			pass.Apply(col)
		}
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	for _, col := range cols {
		if err := ctx.Err(); err != nil {
			return err
		}
		if opts.stats {
			st, err := world.SummarizeCorners(col.Pos, shape, density)
			if err != nil {
				return err
			}
			log.Printf("column %d,%d: %s", col.Pos.X, col.Pos.Z, st)
		}
		if opts.dump {
			if err := world.FormatRawIDs(out, col.Blocks); err != nil {
				return err
			}
		}
		if opts.pngDir != "" {
			if err := writeSlice(opts.pngDir, col); err != nil {
				return err
			}
		}
	}

	log.Printf("%d columns, %d density samples", len(cols), profiling.Counter("world.densitySamples"))
	log.Printf("profile: %s", profiling.TopN(5))
	return nil
}

func writeSlice(dir string, col *world.Column) error {
	img, err := world.RenderSlice(col, world.SliceX, world.ColumnWidth/2, registry.Colors(), 2)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create png dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("column_%d_%d.png", col.Pos.X, col.Pos.Z))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create png: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// parseChunk parses "x,z" column coordinates.
func parseChunk(s string) (world.ColumnPos, error) {
	xs, zs, ok := strings.Cut(s, ",")
	if !ok {
		return world.ColumnPos{}, fmt.Errorf("want x,z, got %q", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return world.ColumnPos{}, fmt.Errorf("bad x: %w", err)
	}
	z, err := strconv.Atoi(strings.TrimSpace(zs))
	if err != nil {
		return world.ColumnPos{}, fmt.Errorf("bad z: %w", err)
	}
	return world.ColumnPos{X: x, Z: z}, nil
}
