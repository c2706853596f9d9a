package yabackoff

import (
	"context"
	"time"

	"github.com/YaCodeDev/GoYaTgEntities/yaerrors"
)

// Exponential multiplies the delay by a constant factor on every Next, capping at
// maxInterval.
//
// Example:
//
//	backoff := yabackoff.NewExponential(100*time.Millisecond, 2, time.Second)
//	backoff.Next() // 200 ms
//	backoff.Next() // 400 ms
//	backoff.Next() // 800 ms
//	backoff.Next() // 1 s (capped)
//
// The zero value is usable: the package defaults are substituted on first use.
type Exponential struct {
	initialInterval time.Duration
	multiplier      float64
	maxInterval     time.Duration
	currentInterval time.Duration
}

// NewExponential creates an exponential back-off. Zero arguments are replaced by
// the package defaults.
func NewExponential(
	initialInterval time.Duration,
	multiplier float64,
	maxInterval time.Duration,
) Exponential {
	return Exponential{
		initialInterval: initialInterval,
		multiplier:      multiplier,
		maxInterval:     maxInterval,
		currentInterval: initialInterval,
	}
}

func (e *Exponential) Reset() {
	e.safety()

	e.currentInterval = e.initialInterval
}

func (e *Exponential) Next() time.Duration {
	e.safety()

	e.currentInterval = min(time.Duration(float64(e.currentInterval)*e.multiplier), e.maxInterval)

	return e.currentInterval
}

func (e *Exponential) Current() time.Duration {
	return e.currentInterval
}

func (e *Exponential) Wait(ctx context.Context) yaerrors.Error {
	return sleep(ctx, e.Next())
}

// safety substitutes the defaults for zero fields.
func (e *Exponential) safety() {
	if e.initialInterval == 0 {
		e.initialInterval = DefaultInitialInterval
		e.currentInterval = DefaultInitialInterval
	}

	if e.maxInterval == 0 {
		e.maxInterval = DefaultMaxInterval
	}

	if e.multiplier == 0 {
		e.multiplier = DefaultMultiplier
	}
}
