package pool

import "sync"

const (
	DefaultInitialSize = 10
	DefaultMaxSize     = 100
)

// Config mirrors the pool options and can be loaded from the environment
// with pkg/config.
type Config struct {
	InitialSize int  `env:"VALIDATOR_POOL_INITIAL_SIZE" envDefault:"10"`
	MaxSize     int  `env:"VALIDATOR_POOL_MAX_SIZE" envDefault:"100"`
	Enabled     bool `env:"VALIDATOR_POOL_ENABLED" envDefault:"true"`
}

func DefaultConfig() Config {
	return Config{
		InitialSize: DefaultInitialSize,
		MaxSize:     DefaultMaxSize,
		Enabled:     true,
	}
}

// Option configures a Pool.
type Option func(*options)

type options struct {
	initialSize int
	maxSize     int
	enabled     bool
}

// WithInitialSize pre-allocates n objects. Negative values are ignored.
func WithInitialSize(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.initialSize = n
		}
	}
}

// WithMaxSize bounds the free list. Non-positive values are ignored.
func WithMaxSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxSize = n
		}
	}
}

func WithEnabled(enabled bool) Option {
	return func(o *options) { o.enabled = enabled }
}

// Stats is a snapshot of pool counters.
type Stats struct {
	Acquired uint64
	Created  uint64
	Released uint64
	Size     int
	MaxSize  int
	// ReuseRate is the percentage of acquisitions served from the free list.
	ReuseRate float64
}

// Pool is a bounded free list of *T.
type Pool[T any] struct {
	mu       sync.Mutex
	free     []*T
	maxSize  int
	enabled  bool
	acquired uint64
	created  uint64
	released uint64
}

// New creates a pool and pre-fills it with the initial size, capped by the
// maximum size.
func New[T any](opts ...Option) *Pool[T] {
	o := &options{
		initialSize: DefaultInitialSize,
		maxSize:     DefaultMaxSize,
		enabled:     true,
	}
	for _, opt := range opts {
		opt(o)
	}

	p := &Pool[T]{
		maxSize: o.maxSize,
		enabled: o.enabled,
	}
	if p.enabled {
		n := min(o.initialSize, o.maxSize)
		p.free = make([]*T, 0, n)
		for range n {
			p.free = append(p.free, new(T))
		}
	}
	return p
}

// NewFromConfig creates a pool from cfg.
func NewFromConfig[T any](cfg Config) *Pool[T] {
	return New[T](
		WithInitialSize(cfg.InitialSize),
		WithMaxSize(cfg.MaxSize),
		WithEnabled(cfg.Enabled),
	)
}

// Acquire returns an object from the free list, or a new one if the list is
// empty. It never fails.
func (p *Pool[T]) Acquire() *T {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enabled {
		return new(T)
	}

	p.acquired++
	if n := len(p.free); n > 0 {
		obj := p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
		return obj
	}

	p.created++
	return new(T)
}

// Release zeroes obj and stores it for reuse. When the free list is full the
// object is dropped. The caller must not touch obj afterwards.
func (p *Pool[T]) Release(obj *T) {
	if obj == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enabled {
		return
	}

	p.released++
	if len(p.free) >= p.maxSize {
		return
	}

	var zero T
	*obj = zero
	p.free = append(p.free, obj)
}

func (p *Pool[T]) ReleaseMany(objs ...*T) {
	for _, obj := range objs {
		p.Release(obj)
	}
}

// Clear drops every pooled object.
func (p *Pool[T]) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	clear(p.free)
	p.free = p.free[:0]
}

// Len returns the number of objects ready for reuse.
func (p *Pool[T]) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.free)
}

func (p *Pool[T]) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}

func (p *Pool[T]) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := Stats{
		Acquired: p.acquired,
		Created:  p.created,
		Released: p.released,
		Size:     len(p.free),
		MaxSize:  p.maxSize,
	}
	if p.acquired > 0 {
		s.ReuseRate = float64(p.acquired-p.created) / float64(p.acquired) * 100
	}
	return s
}

func (p *Pool[T]) ResetStats() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.acquired, p.created, p.released = 0, 0, 0
}
