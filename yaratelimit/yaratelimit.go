// Package yaratelimit implements a fixed-window rate limiter backed by a
// yacache.Store. It keeps a per-(subject, group) counter alongside the unix
// timestamp of the first hit in the current window.
//
// # Storage layout
//
// Each subject is addressed by the main key
//
//	rate-limit:<group>:<subject>
//
// whose single field "window" holds the tuple
//
//	"<count>,<first_unix_sec>"
//
// For example "3,1726860000" means 3 hits since unix time 1726860000. The field
// expires together with its window.
package yaratelimit

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/YaCodeDev/GoYaTgEntities/yacache"
	"github.com/YaCodeDev/GoYaTgEntities/yaerrors"
)

const windowField = "window"

// IRateLimit exposes the behaviour of a fixed-window rate limiter.
//
// Example:
//
//	limiter := yaratelimit.NewRateLimit(memory, 5, time.Minute)
//	banned, err := limiter.Increment(ctx, "203.0.113.7", "render")
type IRateLimit interface {
	// Check reports whether the subject has used up the current window.
	Check(ctx context.Context, subject, group string) (bool, yaerrors.Error)

	// Increment records a hit and reports whether it went over the limit.
	Increment(ctx context.Context, subject, group string) (bool, yaerrors.Error)

	// Refresh starts a new window holding a single hit.
	Refresh(ctx context.Context, subject, group string) yaerrors.Error

	// Get returns the window of the subject or yacache.ErrNotFound.
	Get(ctx context.Context, subject, group string) (*Window, yaerrors.Error)
}

// Window is the parsed value of a rate limit record.
type Window struct {
	Count        uint32
	FirstRequest int64
}

// RateLimit is a fixed-window limiter allowing Limit hits per Rate.
// The zero value is not valid; use NewRateLimit.
type RateLimit struct {
	Cache yacache.Store
	Limit uint32
	Rate  time.Duration

	// Now is the clock of the limiter; time.Now when nil.
	Now func() time.Time
}

func NewRateLimit(cache yacache.Store, limit uint32, rate time.Duration) *RateLimit {
	return &RateLimit{
		Cache: cache,
		Limit: limit,
		Rate:  rate,
	}
}

func (r *RateLimit) Check(ctx context.Context, subject, group string) (bool, yaerrors.Error) {
	window, err := r.Get(ctx, subject, group)
	if err != nil {
		if errors.Is(err, yacache.ErrNotFound) {
			return false, nil
		}

		return false, err.Wrap("failed to check window")
	}

	return r.active(window) && window.Count >= r.Limit, nil
}

func (r *RateLimit) Increment(ctx context.Context, subject, group string) (bool, yaerrors.Error) {
	window, err := r.Get(ctx, subject, group)
	if err != nil {
		if !errors.Is(err, yacache.ErrNotFound) {
			return false, err.Wrap("failed to increment")
		}
	}

	if window == nil || !r.active(window) {
		if err := r.Refresh(ctx, subject, group); err != nil {
			return false, err.Wrap("failed to increment")
		}

		return r.Limit == 0, nil
	}

	if window.Count >= r.Limit {
		return true, nil
	}

	window.Count++

	if err := r.store(ctx, subject, group, window); err != nil {
		return false, err.Wrap("failed to increment")
	}

	return false, nil
}

func (r *RateLimit) Refresh(ctx context.Context, subject, group string) yaerrors.Error {
	window := &Window{
		Count:        1,
		FirstRequest: r.clock().Unix(),
	}

	if err := r.store(ctx, subject, group, window); err != nil {
		return err.Wrap("failed to refresh window")
	}

	return nil
}

func (r *RateLimit) Get(ctx context.Context, subject, group string) (*Window, yaerrors.Error) {
	value, err := r.Cache.HGet(ctx, FormatKey(subject, group), windowField)
	if err != nil {
		return nil, err.Wrap("failed to get window")
	}

	window, err := ParseValue(value)
	if err != nil {
		return nil, err.Wrap("failed to get window")
	}

	return window, nil
}

func (r *RateLimit) active(window *Window) bool {
	return r.clock().Before(time.Unix(window.FirstRequest, 0).Add(r.Rate))
}

func (r *RateLimit) clock() time.Time {
	if r.Now == nil {
		return time.Now()
	}

	return r.Now()
}

func (r *RateLimit) store(ctx context.Context, subject, group string, window *Window) yaerrors.Error {
	ttl := time.Unix(window.FirstRequest, 0).Add(r.Rate).Sub(r.clock())
	if ttl <= 0 {
		ttl = r.Rate
	}

	return r.Cache.HSetEX(
		ctx,
		FormatKey(subject, group),
		windowField,
		FormatValue(window.Count, window.FirstRequest),
		ttl,
	)
}

// FormatKey constructs the cache key for (subject, group).
//
// Example:
//
//	yaratelimit.FormatKey("10.0.0.1", "render") // "rate-limit:render:10.0.0.1"
func FormatKey(subject, group string) string {
	return fmt.Sprintf("rate-limit:%s:%s", group, subject)
}

// FormatValue serializes a (count, first_unix) tuple.
func FormatValue(count uint32, firstRequest int64) string {
	return fmt.Sprintf("%d,%d", count, firstRequest)
}

// ParseValue parses a tuple written by FormatValue.
func ParseValue(value string) (*Window, yaerrors.Error) {
	countText, firstText, ok := strings.Cut(value, ",")
	if !ok {
		return nil, yaerrors.FromError(
			http.StatusInternalServerError,
			ErrMalformedWindow,
			fmt.Sprintf("parse window %q", value),
		)
	}

	count, err := strconv.ParseUint(countText, 10, 32)
	if err != nil {
		return nil, yaerrors.FromError(
			http.StatusInternalServerError,
			errors.Join(err, ErrMalformedWindow),
			"couldn't validate count",
		)
	}

	firstRequest, err := strconv.ParseInt(firstText, 10, 64)
	if err != nil {
		return nil, yaerrors.FromError(
			http.StatusInternalServerError,
			errors.Join(err, ErrMalformedWindow),
			"couldn't validate unix time",
		)
	}

	return &Window{
		Count:        uint32(count),
		FirstRequest: firstRequest,
	}, nil
}
