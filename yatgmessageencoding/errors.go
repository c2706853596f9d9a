package yatgmessageencoding

import "errors"

var ErrUnknownEncoding = errors.New("unknown message encoding")
