package sanitizer

import "errors"

// ErrUnknownTransform is returned by Chain for names that are not registered.
var ErrUnknownTransform = errors.New("sanitizer: unknown transform")
