package yaratelimit

import "errors"

var ErrMalformedWindow = errors.New("malformed rate limit window")
