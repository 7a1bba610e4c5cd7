package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Format selects the handler New builds.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// Config is the logging section of the engine configuration. Load it with
// pkg/config and turn it into a logger with NewFromConfig.
type Config struct {
	Level   slog.Level `env:"VALIDATOR_LOG_LEVEL" envDefault:"info"`
	Format  string     `env:"VALIDATOR_LOG_FORMAT" envDefault:"json"`
	Service string     `env:"VALIDATOR_LOG_SERVICE"`
}

func DefaultConfig() Config {
	return Config{Level: slog.LevelInfo, Format: string(FormatJSON)}
}

// Options converts cfg into options for New.
func (cfg Config) Options() ([]Option, error) {
	format, err := ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}
	opts := []Option{WithLevel(cfg.Level), WithFormat(format)}
	if cfg.Service != "" {
		opts = append(opts, WithAttr(slog.String("service", cfg.Service)))
	}
	return opts, nil
}

// ParseFormat accepts "json" and "text" in any case. Empty means JSON.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatText:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
}

// Option configures New.
type Option func(*settings)

type settings struct {
	level      slog.Leveler
	format     Format
	output     io.Writer
	attrs      []slog.Attr
	extractors []ContextExtractor
}

// WithLevel sets the minimum level. Pass a *slog.LevelVar to change it at
// runtime, e.g. to turn on cache sweep records while debugging.
func WithLevel(l slog.Leveler) Option {
	return func(s *settings) {
		if l != nil {
			s.level = l
		}
	}
}

// WithFormat panics on an unknown format; use ParseFormat for user input.
func WithFormat(f Format) Option {
	return func(s *settings) {
		if f != FormatJSON && f != FormatText {
			panic(fmt.Errorf("%w: %q", ErrInvalidFormat, f))
		}
		s.format = f
	}
}

// WithOutput ignores nil writers.
func WithOutput(w io.Writer) Option {
	return func(s *settings) {
		if w != nil {
			s.output = w
		}
	}
}

// WithAttr adds attributes to every record.
func WithAttr(attrs ...slog.Attr) Option {
	return func(s *settings) { s.attrs = append(s.attrs, attrs...) }
}

// WithContextExtractors registers callbacks that add attributes taken from
// the context passed to Validate. Nil extractors are skipped.
func WithContextExtractors(extractors ...ContextExtractor) Option {
	return func(s *settings) {
		for _, ex := range extractors {
			if ex != nil {
				s.extractors = append(s.extractors, ex)
			}
		}
	}
}

// WithContextValue logs ctx.Value(key) under name, typically a request id
// carried through Validate.
func WithContextValue(name string, key any) Option {
	return WithContextExtractors(func(ctx context.Context) (slog.Attr, bool) {
		if name == "" || key == nil {
			return slog.Attr{}, false
		}
		if v := ctx.Value(key); v != nil {
			return slog.Any(name, v), true
		}
		return slog.Attr{}, false
	})
}

// New builds a logger for the validation packages: JSON on stderr at INFO
// unless configured otherwise.
func New(opts ...Option) *slog.Logger {
	s := &settings{level: slog.LevelInfo, format: FormatJSON, output: os.Stderr}
	for _, opt := range opts {
		opt(s)
	}

	handlerOpts := &slog.HandlerOptions{Level: s.level}
	var handler slog.Handler = slog.NewJSONHandler(s.output, handlerOpts)
	if s.format == FormatText {
		handler = slog.NewTextHandler(s.output, handlerOpts)
	}
	if len(s.attrs) > 0 {
		handler = handler.WithAttrs(s.attrs)
	}
	return slog.New(newContextHandler(handler, s.extractors))
}

// NewFromConfig is New with the options derived from cfg, followed by opts.
func NewFromConfig(cfg Config, opts ...Option) (*slog.Logger, error) {
	base, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	return New(append(base, opts...)...), nil
}

// For scopes l to one engine component ("validator", "cache", "schema").
// A nil logger stays nil, which the components read as logging disabled.
func For(l *slog.Logger, component string) *slog.Logger {
	if l == nil {
		return nil
	}
	return l.With(Component(component))
}

// Nop returns a logger that drops every record.
func Nop() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
