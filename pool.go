package hmarkdown

import (
	"context"
	"runtime"
	"sync"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one engine is available.
	MinPoolSize = 1

	// MaxPoolSize caps the number of engines built for one pool.
	MaxPoolSize = 32
)

// EnginePool hands out Engines for parallel rendering.
// Engines share the options given to NewEnginePool and are created lazily
// on first acquire.
type EnginePool struct {
	size    int
	opts    []Option
	sem     chan *Engine
	mu      sync.Mutex
	created int
	closed  bool
}

// NewEnginePool creates a pool with capacity for n engines built with opts.
func NewEnginePool(n int, opts ...Option) *EnginePool {
	if n < MinPoolSize {
		n = MinPoolSize
	}

	return &EnginePool{
		size: n,
		opts: opts,
		sem:  make(chan *Engine, n),
	}
}

// Acquire gets an engine from the pool, creating one if capacity allows.
// Blocks until an engine is released, ctx is done or the pool is closed.
func (p *EnginePool) Acquire(ctx context.Context) (*Engine, error) {
	// Try to get an idle engine (non-blocking)
	select {
	case e, ok := <-p.sem:
		if !ok {
			return nil, ErrPoolClosed
		}
		return e, nil
	default:
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrPoolClosed
	}
	if p.created < p.size {
		p.created++
		p.mu.Unlock()
		return NewEngine(p.opts...), nil
	}
	p.mu.Unlock()

	// All engines created, wait for one to be released
	select {
	case e, ok := <-p.sem:
		if !ok {
			return nil, ErrPoolClosed
		}
		return e, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Release returns an engine to the pool. Releasing into a closed or full
// pool drops the engine.
func (p *EnginePool) Release(e *Engine) {
	if e == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	select {
	case p.sem <- e:
	default:
	}
}

// Close stops the pool. Goroutines blocked in Acquire return ErrPoolClosed.
func (p *EnginePool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	close(p.sem)
}

// Size returns the pool capacity.
func (p *EnginePool) Size() int {
	return p.size
}

// ResolvePoolSize determines the pool size for a worker count.
// Priority: explicit workers > GOMAXPROCS (adjusted by automaxprocs in
// containers). Only the automatic size is clamped to MaxPoolSize.
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	n := runtime.GOMAXPROCS(0)
	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
