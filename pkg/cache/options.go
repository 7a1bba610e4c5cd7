package cache

import (
	"log/slog"
	"time"

	"github.com/poly1603/ldesign-validator/pkg/logger"
)

const (
	DefaultMaxSize         = 1000
	DefaultCleanupInterval = time.Minute
)

// Config mirrors the cache options and can be loaded from the environment
// with pkg/config.
type Config struct {
	MaxSize         int           `env:"VALIDATOR_CACHE_MAX_SIZE" envDefault:"1000"`
	TTL             time.Duration `env:"VALIDATOR_CACHE_TTL" envDefault:"0s"`
	Enabled         bool          `env:"VALIDATOR_CACHE_ENABLED" envDefault:"true"`
	AutoCleanup     bool          `env:"VALIDATOR_CACHE_AUTO_CLEANUP" envDefault:"false"`
	CleanupInterval time.Duration `env:"VALIDATOR_CACHE_CLEANUP_INTERVAL" envDefault:"1m"`
}

// DefaultConfig returns the configuration New uses without options.
func DefaultConfig() Config {
	return Config{
		MaxSize:         DefaultMaxSize,
		Enabled:         true,
		CleanupInterval: DefaultCleanupInterval,
	}
}

// Options returns the functional options equivalent to cfg.
func (cfg Config) Options() []Option {
	opts := []Option{
		WithMaxSize(cfg.MaxSize),
		WithTTL(cfg.TTL),
		WithEnabled(cfg.Enabled),
	}
	if cfg.AutoCleanup {
		opts = append(opts, WithAutoCleanup(cfg.CleanupInterval))
	}
	return opts
}

// Option configures a Cache.
type Option func(*options)

type options struct {
	maxSize         int
	ttl             time.Duration
	enabled         bool
	autoCleanup     bool
	cleanupInterval time.Duration
	now             func() time.Time
	logger          *slog.Logger
}

func defaultOptions() *options {
	return &options{
		maxSize:         DefaultMaxSize,
		enabled:         true,
		cleanupInterval: DefaultCleanupInterval,
		now:             time.Now,
	}
}

// WithMaxSize bounds the number of stored entries. Non-positive values are ignored.
func WithMaxSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxSize = n
		}
	}
}

// WithTTL stamps every entry with an expiry of now+ttl at Set time.
// Zero or negative disables expiry.
func WithTTL(ttl time.Duration) Option {
	return func(o *options) {
		if ttl > 0 {
			o.ttl = ttl
		}
	}
}

func WithEnabled(enabled bool) Option {
	return func(o *options) { o.enabled = enabled }
}

// WithAutoCleanup starts a background sweep removing lapsed entries every
// interval. A non-positive interval falls back to DefaultCleanupInterval.
func WithAutoCleanup(interval time.Duration) Option {
	return func(o *options) {
		o.autoCleanup = true
		if interval > 0 {
			o.cleanupInterval = interval
		}
	}
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithLogger receives sweep records (DEBUG, component=cache).
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = logger.For(l, "cache")
		}
	}
}
