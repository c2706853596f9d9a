package yaerrors

import "errors"

// ErrTeapot is reported when a method is called on a nil *yaError.
// It keeps a nil dereference from crashing a caller that forgot to check the error.
var ErrTeapot = errors.New("backend developer is a teapot")
