// Package yaginmiddleware provides the Gin middlewares shared by the HTTP handlers:
// request scoped loggers, per-client rate limits and the translation of yaerrors.Error
// into JSON responses.
package yaginmiddleware

import "github.com/gin-gonic/gin"

// Middleware represents a generic Gin middleware component
// capable of processing requests via a `Handle` method.
type Middleware interface {
	Handle(ctx *gin.Context)
}
