package yaginmiddleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/YaCodeDev/GoYaTgEntities/yaerrors"
	"github.com/YaCodeDev/GoYaTgEntities/yalogger"
	"github.com/gin-gonic/gin"
)

var ErrTooManyRequests = errors.New("too many requests")

// Limiter counts hits of a subject within a group.
type Limiter interface {
	Increment(ctx context.Context, subject, group string) (bool, yaerrors.Error)
}

// RateLimit rejects clients going over the limit with 429. Clients are told apart by
// ctx.ClientIP and every route is counted separately. Limiter failures are logged
// and the request is served.
//
// Example:
//
//	limiter := yaratelimit.NewRateLimit(cache, 100, time.Minute)
//	r.Use(yaginmiddleware.NewRateLimit(limiter, log).Handle)
type RateLimit struct {
	limiter Limiter
	log     yalogger.Logger
}

func NewRateLimit(limiter Limiter, log yalogger.Logger) *RateLimit {
	return &RateLimit{
		limiter: limiter,
		log:     log,
	}
}

func (r *RateLimit) Handle(ctx *gin.Context) {
	group := ctx.FullPath()
	if group == "" {
		group = "unmatched"
	}

	banned, err := r.limiter.Increment(ctx.Request.Context(), ctx.ClientIP(), group)
	if err != nil {
		Logger(ctx, r.log).Warnf("Rate limiter is unavailable: %v", err)
		ctx.Next()

		return
	}

	if banned {
		_ = ctx.Error(yaerrors.FromError(http.StatusTooManyRequests, ErrTooManyRequests, "rate limit "+group))
		ctx.Abort()

		return
	}

	ctx.Next()
}
