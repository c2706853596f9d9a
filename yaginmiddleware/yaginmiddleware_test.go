package yaginmiddleware_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/YaCodeDev/GoYaTgEntities/yaerrors"
	"github.com/YaCodeDev/GoYaTgEntities/yaginmiddleware"
	"github.com/YaCodeDev/GoYaTgEntities/yalogger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(log yalogger.Logger) *gin.Engine {
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.Use(
		yaginmiddleware.NewRequestID(log).Handle,
		yaginmiddleware.NewErrorHandler(log).Handle,
	)

	return engine
}

func TestRequestID_Flow(t *testing.T) {
	t.Parallel()

	log := yalogger.NewBaseLogger(nil).NewLogger()

	engine := newEngine(log)
	engine.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "%v", yaginmiddleware.Logger(c, nil).GetField(yalogger.KeyRequestID))
	})

	t.Run("[Header] client id is kept", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(yaginmiddleware.DefaultRequestIDHeader, "yacode-42")

		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		assert.Equal(t, "yacode-42", rec.Header().Get(yaginmiddleware.DefaultRequestIDHeader))
		assert.Equal(t, "yacode-42", rec.Body.String())
	})

	t.Run("[Header] missing id is generated", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

		id := rec.Header().Get(yaginmiddleware.DefaultRequestIDHeader)

		_, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, id, rec.Body.String())
	})
}

func TestErrorHandler_Flow(t *testing.T) {
	t.Parallel()

	log := yalogger.NewBaseLogger(nil).NewLogger()

	engine := newEngine(log)
	engine.GET("/teapot", func(c *gin.Context) {
		_ = c.Error(yaerrors.FromString(http.StatusTeapot, "no coffee").Wrap("brew"))
	})
	engine.GET("/plain", func(c *gin.Context) {
		_ = c.Error(errors.New("boom"))
	})
	engine.GET("/ok", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	t.Run("[Code] yaerrors code is used", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/teapot", nil))

		assert.Equal(t, http.StatusTeapot, rec.Code)

		var body yaginmiddleware.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

		assert.Equal(t, http.StatusTeapot, body.Code)
		assert.Contains(t, body.Error, "brew -> no coffee")
	})

	t.Run("[Code] plain errors are internal", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/plain", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("[Code] success is untouched", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})
}
