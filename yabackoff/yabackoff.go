// Package yabackoff provides back-off strategies for retry loops. A back-off
// progressively increases the time waited between attempts of an operation that
// might fail, for example connecting to Redis on startup.
//
// # Quick start
//
//	backoff := yabackoff.NewExponential(500*time.Millisecond, 1.5, 10*time.Second)
//	client, err := yabackoff.Retry(ctx, 5, &backoff, func() (*redis.Client, yaerrors.Error) {
//	    return yacache.NewRedisClient(ctx, addr, "", 0, log)
//	})
package yabackoff

import (
	"context"
	"net/http"
	"time"

	"github.com/YaCodeDev/GoYaTgEntities/yaerrors"
)

// Default* constants are applied when the caller provides zero values to
// NewExponential, or when an Exponential is used as a zero value.
const (
	DefaultInitialInterval = 500 * time.Millisecond
	DefaultMultiplier      = 1.5
	DefaultMaxInterval     = 60 * time.Second
)

// Backoff is the behaviour shared by all back-off strategies in this package.
// Implementations are not safe for concurrent use.
type Backoff interface {
	// Next advances the strategy and returns the delay for this attempt.
	Next() time.Duration

	// Current returns the delay produced by the most recent call to Next.
	Current() time.Duration

	// Wait sleeps for Next or until ctx is done.
	//
	// Example usage:
	//
	//   if err := backoff.Wait(ctx); err != nil {
	//       return err
	//   }
	Wait(ctx context.Context) yaerrors.Error

	// Reset puts the strategy back to its initial state.
	Reset()
}

// Retry calls fn until it succeeds, attempts calls were made or ctx is done,
// waiting on backoff between calls. The last error of fn is returned on failure.
func Retry[T any](
	ctx context.Context,
	attempts int,
	backoff Backoff,
	fn func() (T, yaerrors.Error),
) (T, yaerrors.Error) {
	var (
		zero    T
		lastErr yaerrors.Error
	)

	for attempt := range max(attempts, 1) {
		if attempt > 0 {
			if err := backoff.Wait(ctx); err != nil {
				return zero, err.Wrap("retry")
			}
		}

		value, err := fn()
		if err == nil {
			return value, nil
		}

		lastErr = err
	}

	return zero, lastErr.Wrap("retry: attempts exhausted")
}

func sleep(ctx context.Context, delay time.Duration) yaerrors.Error {
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return yaerrors.FromError(http.StatusServiceUnavailable, ctx.Err(), "wait for back-off")
	}
}
