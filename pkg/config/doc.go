// Package config loads typed configuration from environment variables and
// optional .env files.
//
// It wraps `github.com/caarlos0/env/v11` for struct-tag parsing and
// `github.com/joho/godotenv` for reading .env files. Unlike a process-wide
// loader it keeps no global state and never modifies the process
// environment: every Load call builds its own variable set from (lowest to
// highest precedence) the env files, the process environment and explicit
// overrides.
//
// The cache and pool packages expose env-tagged Config structs:
//
//	cacheCfg, err := config.Load[cache.Config](config.WithEnvFiles(".env"))
//	if err != nil {
//		return err
//	}
//	poolCfg := config.MustLoad[pool.Config]()
//
//	v := validator.New(
//		validator.WithCache(cache.NewFromConfig[validator.Result](cacheCfg)),
//		validator.WithPool(pool.NewFromConfig[validator.Result](poolCfg)),
//	)
//
// Errors are joined with ErrParsingConfig or ErrLoadingEnvFile so callers can
// test them with errors.Is.
package config
