package yaentityapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/YaCodeDev/GoYaTgEntities/yaarchive"
	"github.com/YaCodeDev/GoYaTgEntities/yacache"
	"github.com/YaCodeDev/GoYaTgEntities/yaentity"
	"github.com/YaCodeDev/GoYaTgEntities/yaentityapi"
	"github.com/YaCodeDev/GoYaTgEntities/yaginmiddleware"
	"github.com/YaCodeDev/GoYaTgEntities/yalogger"
	"github.com/YaCodeDev/GoYaTgEntities/yaratelimit"
	"github.com/YaCodeDev/GoYaTgEntities/yatgmessageencoding"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	messageBody = `{"text":"héllo wörld","entities":[{"type":"bold","offset":0,"length":5}]}`
	invalidBody = `{"text":"😀","entities":[{"type":"bold","offset":1,"length":1}]}`
)

func newServer(t *testing.T, cache yacache.Store) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)

	log := yalogger.NewBaseLogger(nil).NewLogger()

	server := yaentityapi.NewServer(
		yaarchive.NewMemoryArchive(),
		cache,
		yaentityapi.NewRenderer(cache, yaentity.AllKinds, time.Minute),
		log,
	)

	return server.Engine()
}

func newMemoryServer(t *testing.T) *gin.Engine {
	t.Helper()

	memory := yacache.NewMemory(yacache.NewMemoryContainer(), time.Minute)

	t.Cleanup(func() {
		_ = memory.Close()
	})

	return newServer(t, memory)
}

func serve(engine *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request

	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var value T

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &value))

	return value
}

type resolvedBody struct {
	Entities []struct {
		Type  string `json:"type"`
		Start int    `json:"start"`
		End   int    `json:"end"`
		Text  string `json:"text"`
	} `json:"entities"`
}

func TestServer_Resolve(t *testing.T) {
	t.Parallel()

	engine := newMemoryServer(t)

	t.Run("[Resolve] byte offsets", func(t *testing.T) {
		t.Parallel()

		rec := serve(engine, http.MethodPost, "/v1/resolve", messageBody)
		require.Equal(t, http.StatusOK, rec.Code)

		body := decode[resolvedBody](t, rec)
		require.Len(t, body.Entities, 1)

		assert.Equal(t, "bold", body.Entities[0].Type)
		assert.Equal(t, 0, body.Entities[0].Start)
		assert.Equal(t, 6, body.Entities[0].End)
		assert.Equal(t, "héllo", body.Entities[0].Text)
	})

	t.Run("[Resolve] split surrogate pair", func(t *testing.T) {
		t.Parallel()

		rec := serve(engine, http.MethodPost, "/v1/resolve", invalidBody)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		body := decode[yaginmiddleware.ErrorResponse](t, rec)
		assert.Equal(t, http.StatusUnprocessableEntity, body.Code)
		assert.Contains(t, body.Error, "surrogate pair")
	})

	t.Run("[Resolve] malformed body", func(t *testing.T) {
		t.Parallel()

		rec := serve(engine, http.MethodPost, "/v1/resolve", `{"text":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("[Resolve] unknown entity type", func(t *testing.T) {
		t.Parallel()

		rec := serve(engine, http.MethodPost, "/v1/resolve",
			`{"text":"hi","entities":[{"type":"sparkle","offset":0,"length":1}]}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServer_Render(t *testing.T) {
	t.Parallel()

	t.Run("[Render] html then cache hit", func(t *testing.T) {
		t.Parallel()

		engine := newMemoryServer(t)

		rec := serve(engine, http.MethodPost, "/v1/render/html", messageBody)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "miss", rec.Header().Get(yaentityapi.HeaderCache))
		assert.Equal(t, "<b>héllo</b> wörld", decode[yaentityapi.RenderResponse](t, rec).Text)

		rec = serve(engine, http.MethodPost, "/v1/render/HTML", messageBody)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "hit", rec.Header().Get(yaentityapi.HeaderCache))
		assert.Equal(t, "<b>héllo</b> wörld", decode[yaentityapi.RenderResponse](t, rec).Text)
	})

	t.Run("[Render] encodings are cached apart", func(t *testing.T) {
		t.Parallel()

		engine := newMemoryServer(t)

		rec := serve(engine, http.MethodPost, "/v1/render/html", messageBody)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = serve(engine, http.MethodPost, "/v1/render/markdown", messageBody)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "miss", rec.Header().Get(yaentityapi.HeaderCache))
		assert.Equal(t, "**héllo** wörld", decode[yaentityapi.RenderResponse](t, rec).Text)
	})

	t.Run("[Render] unknown encoding", func(t *testing.T) {
		t.Parallel()

		rec := serve(newMemoryServer(t), http.MethodPost, "/v1/render/bbcode", messageBody)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("[Render] invalid offset", func(t *testing.T) {
		t.Parallel()

		rec := serve(newMemoryServer(t), http.MethodPost, "/v1/render/html", invalidBody)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("[Render] redis cache", func(t *testing.T) {
		t.Parallel()

		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

		engine := newServer(t, yacache.NewRedis(client))

		rec := serve(engine, http.MethodPost, "/v1/render/html", messageBody)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "miss", rec.Header().Get(yaentityapi.HeaderCache))

		keys := mr.Keys()
		require.Len(t, keys, 1)
		assert.Equal(t, "render:html", keys[0])

		rec = serve(engine, http.MethodPost, "/v1/render/html", messageBody)
		assert.Equal(t, "hit", rec.Header().Get(yaentityapi.HeaderCache))
	})

	t.Run("[Render] unreachable cache still renders", func(t *testing.T) {
		t.Parallel()

		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

		engine := newServer(t, yacache.NewRedis(client))

		mr.Close()

		rec := serve(engine, http.MethodPost, "/v1/render/html", messageBody)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "miss", rec.Header().Get(yaentityapi.HeaderCache))
		assert.Equal(t, "<b>héllo</b> wörld", decode[yaentityapi.RenderResponse](t, rec).Text)
	})
}

func TestServer_Archive(t *testing.T) {
	t.Parallel()

	t.Run("[Archive] store load render delete", func(t *testing.T) {
		t.Parallel()

		engine := newMemoryServer(t)

		rec := serve(engine, http.MethodPut, "/v1/archive/-100/7", messageBody)
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = serve(engine, http.MethodGet, "/v1/archive/-100/7", "")
		require.Equal(t, http.StatusOK, rec.Code)

		stored := decode[yaentityapi.ArchivedMessageResponse](t, rec)
		assert.Equal(t, int64(-100), stored.ChatID)
		assert.Equal(t, int64(7), stored.MessageID)
		assert.Equal(t, "héllo wörld", stored.Text)
		require.Len(t, stored.Entities, 1)
		assert.True(t, stored.Entities[0].Equal(yaentity.Bold(0, 5)))

		rec = serve(engine, http.MethodGet, "/v1/archive/-100/7/render/markdown", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "**héllo** wörld", decode[yaentityapi.RenderResponse](t, rec).Text)

		rec = serve(engine, http.MethodDelete, "/v1/archive/-100/7", "")
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = serve(engine, http.MethodGet, "/v1/archive/-100/7", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec = serve(engine, http.MethodDelete, "/v1/archive/-100/7", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("[Archive] invalid entities are rejected", func(t *testing.T) {
		t.Parallel()

		rec := serve(newMemoryServer(t), http.MethodPut, "/v1/archive/1/1", invalidBody)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("[Archive] invalid path", func(t *testing.T) {
		t.Parallel()

		engine := newMemoryServer(t)

		rec := serve(engine, http.MethodGet, "/v1/archive/chat/1", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = serve(engine, http.MethodGet, "/v1/archive/1/first", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("[Archive] invalid message id", func(t *testing.T) {
		t.Parallel()

		rec := serve(newMemoryServer(t), http.MethodPut, "/v1/archive/1/0", messageBody)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServer_Ping(t *testing.T) {
	t.Parallel()

	t.Run("[Ping] memory", func(t *testing.T) {
		t.Parallel()

		rec := serve(newMemoryServer(t), http.MethodGet, "/v1/ping", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, rec.Header().Get(yaginmiddleware.DefaultRequestIDHeader))
	})

	t.Run("[Ping] closed cache", func(t *testing.T) {
		t.Parallel()

		memory := yacache.NewMemory(yacache.NewMemoryContainer(), time.Minute)
		require.NoError(t, memory.Close())

		rec := serve(newServer(t, memory), http.MethodGet, "/v1/ping", "")
		assert.NotEqual(t, http.StatusOK, rec.Code)
	})
}

func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	log := yalogger.NewBaseLogger(nil).NewLogger()

	memory := yacache.NewMemory(yacache.NewMemoryContainer(), time.Minute)
	t.Cleanup(func() {
		_ = memory.Close()
	})

	msg := &yaentity.Message{
		Text:     "a b",
		Entities: []yaentity.Entity{yaentity.Bold(0, 1), yaentity.Italic(2, 1)},
	}

	boldOnly := yaentityapi.NewRenderer(memory, yaentity.NewKindSet(yaentity.KindBold), time.Minute)
	all := yaentityapi.NewRenderer(memory, yaentity.AllKinds, time.Minute)

	text, cached, err := boldOnly.Render(ctx, yatgmessageencoding.HTML, msg, log)
	require.Nil(t, err)
	assert.False(t, cached)
	assert.Equal(t, "<b>a</b> b", text)

	text, cached, err = all.Render(ctx, yatgmessageencoding.HTML, msg, log)
	require.Nil(t, err)
	assert.False(t, cached)
	assert.Equal(t, "<b>a</b> <i>b</i>", text)

	text, cached, err = boldOnly.Render(ctx, yatgmessageencoding.HTML, msg, log)
	require.Nil(t, err)
	assert.True(t, cached)
	assert.Equal(t, "<b>a</b> b", text)
}

func TestServer_RateLimit(t *testing.T) {
	t.Parallel()

	gin.SetMode(gin.TestMode)

	memory := yacache.NewMemory(yacache.NewMemoryContainer(), time.Minute)
	t.Cleanup(func() {
		_ = memory.Close()
	})

	log := yalogger.NewBaseLogger(nil).NewLogger()

	engine := yaentityapi.NewServer(
		yaarchive.NewMemoryArchive(),
		memory,
		yaentityapi.NewRenderer(memory, yaentity.AllKinds, time.Minute),
		log,
	).WithRateLimit(yaratelimit.NewRateLimit(memory, 2, time.Minute)).Engine()

	assert.Equal(t, http.StatusOK, serve(engine, http.MethodPost, "/v1/resolve", messageBody).Code)
	assert.Equal(t, http.StatusOK, serve(engine, http.MethodPost, "/v1/resolve", messageBody).Code)

	rec := serve(engine, http.MethodPost, "/v1/resolve", messageBody)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, http.StatusTooManyRequests, decode[yaginmiddleware.ErrorResponse](t, rec).Code)

	assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/v1/ping", "").Code)
}
