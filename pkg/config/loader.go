package config

import (
	"errors"
	"fmt"
	"maps"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Option configures a single Load call.
type Option func(*loadOptions)

type loadOptions struct {
	prefix    string
	files     []string
	overrides map[string]string
}

// WithPrefix prepends prefix to every env tag, e.g. "APP_" turns
// VALIDATOR_CACHE_TTL into APP_VALIDATOR_CACHE_TTL.
func WithPrefix(prefix string) Option {
	return func(o *loadOptions) { o.prefix = prefix }
}

// WithEnvFiles reads the given .env files. Values already present in the
// process environment win over file values, matching godotenv.Load.
func WithEnvFiles(files ...string) Option {
	return func(o *loadOptions) { o.files = append(o.files, files...) }
}

// WithEnvironment sets variables that take precedence over both the process
// environment and env files. Mostly useful in tests.
func WithEnvironment(vars map[string]string) Option {
	return func(o *loadOptions) {
		if o.overrides == nil {
			o.overrides = make(map[string]string, len(vars))
		}
		maps.Copy(o.overrides, vars)
	}
}

// Load parses the environment into a new T using `env` struct tags.
// The process environment is never modified.
//
// Example:
//
//	cfg, err := config.Load[cache.Config](config.WithEnvFiles(".env"))
//	if err != nil {
//		return err
//	}
//	c := cache.NewFromConfig[validator.Result](cfg)
func Load[T any](opts ...Option) (T, error) {
	var v T
	err := LoadInto(&v, opts...)
	return v, err
}

// LoadInto works like Load but fills an existing value, keeping fields that
// have no matching variable and no envDefault.
func LoadInto[T any](v *T, opts ...Option) error {
	if v == nil {
		return ErrNilPointer
	}

	o := &loadOptions{}
	for _, opt := range opts {
		opt(o)
	}

	environment := make(map[string]string)
	if len(o.files) > 0 {
		fromFiles, err := godotenv.Read(o.files...)
		if err != nil {
			return errors.Join(ErrLoadingEnvFile, err)
		}
		maps.Copy(environment, fromFiles)
	}
	maps.Copy(environment, env.ToMap(os.Environ()))
	maps.Copy(environment, o.overrides)

	if err := env.ParseWithOptions(v, env.Options{
		Prefix:      o.prefix,
		Environment: environment,
	}); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any](opts ...Option) T {
	v, err := Load[T](opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
	return v
}
