package marksnap

import (
	"context"
	"errors"
	"runtime"
	"sync"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize caps automatic sizing; each browser costs ~200MB.
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for Chrome child processes.
	cpuDivisor = 2
)

// RendererPool hands out PDF renderers, each owning its own browser.
// Renderers are created lazily on first acquire to avoid startup delay.
type RendererPool struct {
	size        int
	newRenderer func() pdfRenderer
	renderers   []pdfRenderer
	sem         chan pdfRenderer
	mu          sync.Mutex
	created     int
	closed      bool
}

// newRendererPool creates a pool with capacity for n renderers.
func newRendererPool(n int, factory func() pdfRenderer) *RendererPool {
	if n < MinPoolSize {
		n = MinPoolSize
	}

	return &RendererPool{
		size:        n,
		newRenderer: factory,
		renderers:   make([]pdfRenderer, 0, n),
		sem:         make(chan pdfRenderer, n),
	}
}

// Acquire gets a renderer, creating one if capacity allows.
// Blocks until one is released or ctx is done.
func (p *RendererPool) Acquire(ctx context.Context) (pdfRenderer, error) {
	select {
	case r, ok := <-p.sem:
		if !ok {
			return nil, ErrRendererPoolClosed
		}
		return r, nil
	default:
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrRendererPoolClosed
	}
	if p.created < p.size {
		p.created++
		r := p.newRenderer()
		p.renderers = append(p.renderers, r)
		p.mu.Unlock()
		return r, nil
	}
	p.mu.Unlock()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r, ok := <-p.sem:
		if !ok {
			return nil, ErrRendererPoolClosed
		}
		return r, nil
	}
}

// Release returns a renderer to the pool. It is a no-op after Close.
// The send happens under the lock so it cannot race with close(p.sem);
// the channel has room for every renderer, so it never blocks.
func (p *RendererPool) Release(r pdfRenderer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.sem <- r
}

// Close releases every browser the pool created.
// Returns an aggregated error if several renderers fail to close.
func (p *RendererPool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.sem)
	renderers := p.renderers
	p.mu.Unlock()

	var errs []error
	for _, r := range renderers {
		if err := r.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Size returns the pool capacity.
func (p *RendererPool) Size() int {
	return p.size
}

// ResolvePoolSize determines how many jobs or browsers run in parallel.
// Priority: explicit workers > GOMAXPROCS-based calculation.
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	// GOMAXPROCS is adjusted for container quotas by automaxprocs in main.
	n := runtime.GOMAXPROCS(0) / cpuDivisor

	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
