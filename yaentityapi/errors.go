package yaentityapi

import "errors"

var (
	ErrInvalidBody = errors.New("invalid request body")
	ErrInvalidPath = errors.New("invalid path parameter")
)
