package yaginmiddleware

import (
	"net/http"

	"github.com/YaCodeDev/GoYaTgEntities/yaerrors"
	"github.com/YaCodeDev/GoYaTgEntities/yalogger"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body written for failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// ErrorHandler turns the last error a handler attached with ctx.Error into a JSON
// response. The status is the code of the yaerrors.Error, 500 for other errors.
//
// Example:
//
//	r.Use(yaginmiddleware.NewErrorHandler(log).Handle)
//
//	r.GET("/fail", func(c *gin.Context) {
//	    _ = c.Error(yaerrors.FromString(http.StatusTeapot, "no coffee"))
//	})
type ErrorHandler struct {
	log yalogger.Logger
}

func NewErrorHandler(log yalogger.Logger) *ErrorHandler {
	return &ErrorHandler{log: log}
}

func (h *ErrorHandler) Handle(ctx *gin.Context) {
	ctx.Next()

	last := ctx.Errors.Last()
	if last == nil {
		return
	}

	code := yaerrors.Code(last.Err)

	log := Logger(ctx, h.log)

	if code >= http.StatusInternalServerError {
		log.Errorf("%s %s: %v", ctx.Request.Method, ctx.FullPath(), last.Err)
	} else {
		log.Debugf("%s %s: %v", ctx.Request.Method, ctx.FullPath(), last.Err)
	}

	if ctx.Writer.Written() {
		return
	}

	ctx.AbortWithStatusJSON(code, ErrorResponse{
		Error: last.Err.Error(),
		Code:  code,
	})
}
