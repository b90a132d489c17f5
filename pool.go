package mdrender

import (
	"context"
	"runtime"
	"sync"
)

// Fetch pool sizing constants.
const (
	// MinPoolSize ensures at least one fetch can run.
	MinPoolSize = 1

	// MaxPoolSize caps concurrent image fetches.
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for the presentation layer.
	cpuDivisor = 2
)

// FetchPool bounds the number of image fetches running at once. A single
// pool is shared by every tree a Renderer builds.
type FetchPool struct {
	size   int
	sem    chan struct{}
	mu     sync.Mutex
	active int
	peak   int
}

// NewFetchPool creates a pool allowing n concurrent fetches.
func NewFetchPool(n int) *FetchPool {
	if n < 1 {
		n = 1
	}

	return &FetchPool{
		size: n,
		sem:  make(chan struct{}, n),
	}
}

// Acquire blocks until a fetch slot is free or ctx is done. The returned
// release function must be called exactly once when the fetch ends.
func (p *FetchPool) Acquire(ctx context.Context) (release func(), err error) {
	select {
	case p.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	p.mu.Lock()
	p.active++
	p.peak = max(p.peak, p.active)
	p.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			p.mu.Lock()
			p.active--
			p.mu.Unlock()
			<-p.sem
		})
	}, nil
}

// Size returns the pool capacity.
func (p *FetchPool) Size() int {
	return p.size
}

// Peak returns the highest number of fetches observed running at once.
func (p *FetchPool) Peak() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.peak
}

// ResolvePoolSize determines the fetch pool size.
// Priority: explicit workers > GOMAXPROCS-based calculation.
// Exported for use by CLIs.
func ResolvePoolSize(workers int) int {
	// Explicit value takes priority
	if workers > 0 {
		return workers
	}

	// Auto-calculate based on GOMAXPROCS (adjusted by automaxprocs for containers)
	available := runtime.GOMAXPROCS(0)
	n := available / cpuDivisor

	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
