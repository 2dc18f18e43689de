package world

import (
	"context"
	"fmt"
	"log"
	"runtime"
	"sync"

	"chunk-noise/internal/profiling"

	"github.com/alitto/pond/v2"
)

// SamplerFactory builds a fresh sampler for one generation task.
type SamplerFactory func() (*ColumnSampler, error)

// ColumnStreamer samples many columns on a worker pool and installs them
// into a ColumnStore. Each task owns its sampler, so samplers are never
// shared between goroutines.
type ColumnStreamer struct {
	pool       pond.Pool
	store      *ColumnStore
	newSampler SamplerFactory
}

// NewColumnStreamer creates a streamer with the given number of workers.
// workers <= 0 uses one worker per CPU.
func NewColumnStreamer(store *ColumnStore, newSampler SamplerFactory, workers int) *ColumnStreamer {
	if workers <= 0 {
		workers = max(runtime.NumCPU(), 1)
	}
	return &ColumnStreamer{
		pool:       pond.NewPool(workers),
		store:      store,
		newSampler: newSampler,
	}
}

// Close stops the worker pool after running tasks finish.
func (cs *ColumnStreamer) Close() {
	cs.pool.StopAndWait()
}

// Store returns the store columns are installed into.
func (cs *ColumnStreamer) Store() *ColumnStore { return cs.store }

// Generate samples every position not yet stored and returns the columns in
// the order of positions. The first error cancels the remaining tasks and is
// returned. A panic in the density function or materializer is returned as
// an error. Cancellation of ctx is checked before each column.
func (cs *ColumnStreamer) Generate(ctx context.Context, positions []ColumnPos) ([]*Column, error) {
	defer profiling.Track("world.ColumnStreamer.Generate")()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	out := make([]*Column, len(positions))

	var (
		wg       sync.WaitGroup
		errMu    sync.Mutex
		firstErr error
	)
	fail := func(err error) {
		errMu.Lock()
		if firstErr == nil {
			firstErr = err
			cancel()
		}
		errMu.Unlock()
	}

	generated := 0
	for i, pos := range positions {
		if col := cs.store.Get(pos); col != nil {
			out[i] = col
			continue
		}
		generated++
		wg.Add(1)
		cs.pool.Submit(func() {
			defer wg.Done()
			defer func() {
				// Index contract violations panic inside the sampler. The pool
				// swallows task panics, so anything else is reported here too.
				if r := recover(); r != nil {
					if ce, ok := r.(*ContractError); ok {
						fail(ce)
						return
					}
					fail(fmt.Errorf("sample column %d,%d: panic: %v", pos.X, pos.Z, r))
				}
			}()
			if err := ctx.Err(); err != nil {
				fail(err)
				return
			}
			s, err := cs.newSampler()
			if err != nil {
				fail(err)
				return
			}
			col, err := s.Sample(pos)
			if err != nil {
				fail(err)
				return
			}
			if !cs.store.Add(col) {
				col = cs.store.Get(pos)
			}
			out[i] = col
		})
	}
	wg.Wait()

	if firstErr != nil {
		log.Printf("column generation stopped after error: %v", firstErr)
		return nil, firstErr
	}
	if generated > 0 {
		log.Printf("generated %d columns (%d requested)", generated, len(positions))
	}
	return out, nil
}

// GenerateAround samples every column within a square radius of center,
// nearest rings first.
func (cs *ColumnStreamer) GenerateAround(ctx context.Context, center ColumnPos, radius int) ([]*Column, error) {
	return cs.Generate(ctx, RingOrder(center, radius))
}

// RingOrder lists the positions of the (2r+1)^2 square around center ring by
// ring, walking each ring clockwise from its low corner.
func RingOrder(center ColumnPos, radius int) []ColumnPos {
	if radius < 0 {
		return nil
	}
	side := 2*radius + 1
	out := make([]ColumnPos, 0, side*side)
	out = append(out, center)

	for r := 1; r <= radius; r++ {
		x0 := center.X - r
		x1 := center.X + r
		z0 := center.Z - r
		z1 := center.Z + r

		for xk := x0; xk <= x1; xk++ {
			out = append(out, ColumnPos{X: xk, Z: z0})
		}
		for zk := z0 + 1; zk <= z1-1; zk++ {
			out = append(out, ColumnPos{X: x1, Z: zk})
		}
		for xk := x1; xk >= x0; xk-- {
			out = append(out, ColumnPos{X: xk, Z: z1})
		}
		for zk := z1 - 1; zk >= z0+1; zk-- {
			out = append(out, ColumnPos{X: x0, Z: zk})
		}
	}
	return out
}
