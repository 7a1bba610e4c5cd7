// Package logger builds the slog loggers used by the validation packages.
//
// New wraps a JSON or text handler with a context handler that runs the
// registered ContextExtractor callbacks on every record, so values carried
// by the context given to Validate (a request id, a tenant) end up in the
// records the engine writes. For scopes a logger to one component; the
// validator, cache and schema WithLogger options call it themselves.
//
// The attribute helpers (Rule, Field, Code, Value, Error, Count, Component)
// keep key names identical across components.
//
// # Usage
//
//	cfg, err := config.Load[logger.Config]()
//	if err != nil {
//		return err
//	}
//	log, err := logger.NewFromConfig(cfg, logger.WithContextValue("request_id", ctxKeyRequestID))
//	if err != nil {
//		return err
//	}
//
//	v := validator.New(validator.WithLogger(log))
//
// A contained rule failure is then logged as:
//
//	{"level":"ERROR","msg":"validation rule failed","component":"validator","rule":"email","field":"user.email","code":"RULE_ERROR","error":"..."}
//
// Nop returns a logger that discards everything.
package logger
