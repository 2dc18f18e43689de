package config

import (
	"runtime"
	"sync"
)

// StreamSettings holds column streaming configuration
type StreamSettings struct {
	mu      sync.RWMutex
	radius  int // in columns
	workers int
}

var globalStreamSettings = &StreamSettings{
	radius:  0, // only the requested column
	workers: runtime.NumCPU(),
}

// GetRadius returns the generation radius in columns
func GetRadius() int {
	globalStreamSettings.mu.RLock()
	defer globalStreamSettings.mu.RUnlock()
	return globalStreamSettings.radius
}

// SetRadius sets the generation radius in columns
func SetRadius(radius int) {
	globalStreamSettings.mu.Lock()
	defer globalStreamSettings.mu.Unlock()

	// Clamp to reasonable values
	if radius < 0 {
		radius = 0
	}
	if radius > 32 {
		radius = 32
	}

	globalStreamSettings.radius = radius
}

// GetEvictRadius returns the radius beyond which stored columns are dropped
func GetEvictRadius() int {
	return GetRadius() * 2
}

// GetWorkers returns the number of sampling workers
func GetWorkers() int {
	globalStreamSettings.mu.RLock()
	defer globalStreamSettings.mu.RUnlock()
	return globalStreamSettings.workers
}

// SetWorkers sets the number of sampling workers, clamped to [1, 4*NumCPU]
func SetWorkers(n int) {
	globalStreamSettings.mu.Lock()
	defer globalStreamSettings.mu.Unlock()
	globalStreamSettings.workers = min(max(n, 1), 4*runtime.NumCPU())
}
