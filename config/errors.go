package config

import "errors"

var (
	ErrValueIsRequired  = errors.New("value is required")
	ErrUnsupportedType  = errors.New("unsupported value type")
	ErrFailedToParseEnv = errors.New("failed to parse value")
)
