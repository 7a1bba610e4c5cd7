package logger

import "errors"

// ErrInvalidFormat is returned for log formats other than json and text.
var ErrInvalidFormat = errors.New("logger: invalid log format")
