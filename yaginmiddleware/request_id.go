package yaginmiddleware

import (
	"strings"

	"github.com/YaCodeDev/GoYaTgEntities/yalogger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	DefaultRequestIDHeader = "X-Request-ID"
	DefaultLoggerKey       = "yalogger"

	maxRequestIDLength = 128
)

// RequestID attaches a logger carrying the request ID to every request.
//
// The ID is taken from the request header when the client sent one and generated
// otherwise. It is echoed back in the response header.
//
// Example:
//
//	r := gin.New()
//	r.Use(yaginmiddleware.NewRequestID(log).Handle)
//
//	r.GET("/ping", func(c *gin.Context) {
//	    yaginmiddleware.Logger(c, log).Info("pong")
//	})
type RequestID struct {
	HeaderName string
	ContextKey string
	log        yalogger.Logger
}

func NewRequestID(log yalogger.Logger) *RequestID {
	return &RequestID{
		HeaderName: DefaultRequestIDHeader,
		ContextKey: DefaultLoggerKey,
		log:        log,
	}
}

func (r *RequestID) Handle(ctx *gin.Context) {
	id := strings.TrimSpace(strings.NewReplacer("\r", "", "\n", "").Replace(ctx.GetHeader(r.HeaderName)))

	var log yalogger.Logger

	if id == "" || len(id) > maxRequestIDLength {
		requestID := uuid.New()
		id = requestID.String()
		log = r.log.WithRequestUUID(requestID)
	} else {
		log = r.log.WithRequestStringID(id)
	}

	ctx.Header(r.HeaderName, id)
	ctx.Set(r.ContextKey, log)

	ctx.Next()
}

// Logger returns the request logger stored by RequestID, or fallback.
func Logger(ctx *gin.Context, fallback yalogger.Logger) yalogger.Logger {
	if value, ok := ctx.Get(DefaultLoggerKey); ok {
		if log, ok := value.(yalogger.Logger); ok {
			return log
		}
	}

	return fallback
}
