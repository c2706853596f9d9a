package yatgentity

import "errors"

var ErrUnsupportedEntity = errors.New("unsupported telegram entity")
