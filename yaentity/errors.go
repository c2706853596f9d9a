package yaentity

import "errors"

var (
	ErrInvalidOffset  = errors.New("invalid utf-16 offset")
	ErrUnknownKind    = errors.New("unknown entity kind")
	ErrMissingPayload = errors.New("entity kind payload is missing")
)
