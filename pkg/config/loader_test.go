package config_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poly1603/ldesign-validator/pkg/cache"
	"github.com/poly1603/ldesign-validator/pkg/config"
	"github.com/poly1603/ldesign-validator/pkg/logger"
	"github.com/poly1603/ldesign-validator/pkg/pool"
)

type requiredConfig struct {
	Required string `env:"LDV_TEST_REQUIRED_VALUE,required"`
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load[cache.Config]()
	require.NoError(t, err)

	assert.Equal(t, cache.DefaultConfig(), cfg)
}

func TestLoad_ProcessEnvironment(t *testing.T) {
	t.Setenv("VALIDATOR_CACHE_MAX_SIZE", "42")
	t.Setenv("VALIDATOR_CACHE_TTL", "5m")
	t.Setenv("VALIDATOR_CACHE_ENABLED", "false")

	cfg, err := config.Load[cache.Config]()
	require.NoError(t, err)

	assert.Equal(t, 42, cfg.MaxSize)
	assert.Equal(t, 5*time.Minute, cfg.TTL)
	assert.False(t, cfg.Enabled)
	assert.Equal(t, time.Minute, cfg.CleanupInterval)
}

func TestLoad_EnvFiles(t *testing.T) {
	t.Run("reads values from file", func(t *testing.T) {
		cfg, err := config.Load[cache.Config](config.WithEnvFiles("testdata/validator.env"))
		require.NoError(t, err)

		assert.Equal(t, 250, cfg.MaxSize)
		assert.Equal(t, 30*time.Second, cfg.TTL)
		assert.True(t, cfg.AutoCleanup)
	})

	t.Run("process environment wins over file", func(t *testing.T) {
		t.Setenv("VALIDATOR_POOL_MAX_SIZE", "64")

		cfg, err := config.Load[pool.Config](config.WithEnvFiles("testdata/validator.env"))
		require.NoError(t, err)

		assert.Equal(t, 64, cfg.MaxSize)
		assert.Equal(t, pool.DefaultInitialSize, cfg.InitialSize)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.Load[cache.Config](config.WithEnvFiles("testdata/missing.env"))
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrLoadingEnvFile)
	})
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("VALIDATOR_POOL_MAX_SIZE", "64")

	cfg, err := config.Load[pool.Config](config.WithEnvironment(map[string]string{
		"VALIDATOR_POOL_MAX_SIZE": "8",
		"VALIDATOR_POOL_ENABLED":  "false",
	}))
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.MaxSize)
	assert.False(t, cfg.Enabled)
}

func TestLoad_Prefix(t *testing.T) {
	cfg, err := config.Load[pool.Config](
		config.WithPrefix("APP_"),
		config.WithEnvironment(map[string]string{"APP_VALIDATOR_POOL_INITIAL_SIZE": "0"}),
	)
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.InitialSize)
}

func TestLoad_LoggerConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := config.Load[logger.Config]()
		require.NoError(t, err)
		assert.Equal(t, logger.DefaultConfig(), cfg)
	})

	t.Run("level and format", func(t *testing.T) {
		cfg, err := config.Load[logger.Config](config.WithEnvironment(map[string]string{
			"VALIDATOR_LOG_LEVEL":   "debug",
			"VALIDATOR_LOG_FORMAT":  "text",
			"VALIDATOR_LOG_SERVICE": "signup",
		}))
		require.NoError(t, err)

		assert.Equal(t, slog.LevelDebug, cfg.Level)
		assert.Equal(t, "text", cfg.Format)
		assert.Equal(t, "signup", cfg.Service)

		_, err = logger.NewFromConfig(cfg)
		assert.NoError(t, err)
	})

	t.Run("unknown level", func(t *testing.T) {
		_, err := config.Load[logger.Config](config.WithEnvironment(map[string]string{
			"VALIDATOR_LOG_LEVEL": "loud",
		}))
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})
}

func TestLoad_Errors(t *testing.T) {
	t.Run("required variable missing", func(t *testing.T) {
		_, err := config.Load[requiredConfig]()
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("invalid value", func(t *testing.T) {
		_, err := config.Load[cache.Config](config.WithEnvironment(map[string]string{
			"VALIDATOR_CACHE_MAX_SIZE": "lots",
		}))
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("nil pointer", func(t *testing.T) {
		assert.ErrorIs(t, config.LoadInto[cache.Config](nil), config.ErrNilPointer)
	})

	t.Run("must load panics", func(t *testing.T) {
		assert.Panics(t, func() {
			config.MustLoad[requiredConfig]()
		})
	})
}

func TestLoadInto_KeepsUnsetFields(t *testing.T) {
	type partial struct {
		Name  string `env:"LDV_TEST_PARTIAL_NAME"`
		Level string `env:"LDV_TEST_PARTIAL_LEVEL"`
	}

	cfg := partial{Name: "kept"}
	err := config.LoadInto(&cfg, config.WithEnvironment(map[string]string{"LDV_TEST_PARTIAL_LEVEL": "debug"}))
	require.NoError(t, err)

	assert.Equal(t, "kept", cfg.Name)
	assert.Equal(t, "debug", cfg.Level)
}
