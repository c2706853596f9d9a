// Package yaentityapi exposes entity resolution, rendering and the message archive
// over HTTP.
//
// Routes:
//
//	POST   /v1/resolve
//	POST   /v1/render/:encoding
//	PUT    /v1/archive/:chat/:message
//	GET    /v1/archive/:chat/:message
//	DELETE /v1/archive/:chat/:message
//	GET    /v1/archive/:chat/:message/render/:encoding
//	GET    /v1/ping
package yaentityapi

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/YaCodeDev/GoYaTgEntities/yaarchive"
	"github.com/YaCodeDev/GoYaTgEntities/yacache"
	"github.com/YaCodeDev/GoYaTgEntities/yaentity"
	"github.com/YaCodeDev/GoYaTgEntities/yaerrors"
	"github.com/YaCodeDev/GoYaTgEntities/yaginmiddleware"
	"github.com/YaCodeDev/GoYaTgEntities/yalogger"
	"github.com/gin-gonic/gin"
)

const (
	HeaderCache = "X-Cache"

	cacheHit  = "hit"
	cacheMiss = "miss"

	paramChat     = "chat"
	paramMessage  = "message"
	paramEncoding = "encoding"
)

// ResolveResponse is the body of POST /v1/resolve.
type ResolveResponse struct {
	Entities []yaentity.ResolvedEntity `json:"entities"`
}

// RenderResponse is the body of the render routes.
type RenderResponse struct {
	Text string `json:"text"`
}

// ArchivedMessageResponse is the body of GET /v1/archive/:chat/:message.
type ArchivedMessageResponse struct {
	ChatID    int64             `json:"chat_id"`
	MessageID int64             `json:"message_id"`
	Text      string            `json:"text"`
	Entities  []yaentity.Entity `json:"entities"`
	CreatedAt time.Time         `json:"created_at"`
}

// Server holds the dependencies of the HTTP handlers.
type Server struct {
	archive  yaarchive.IArchiveRepo
	cache    yacache.Store
	renderer *Renderer
	limiter  yaginmiddleware.Limiter
	log      yalogger.Logger
}

func NewServer(
	archive yaarchive.IArchiveRepo,
	cache yacache.Store,
	renderer *Renderer,
	log yalogger.Logger,
) *Server {
	return &Server{
		archive:  archive,
		cache:    cache,
		renderer: renderer,
		log:      log,
	}
}

// WithRateLimit makes Engine reject clients going over the limiter.
func (s *Server) WithRateLimit(limiter yaginmiddleware.Limiter) *Server {
	s.limiter = limiter

	return s
}

// Engine returns a gin engine with the middlewares and all routes registered.
func (s *Server) Engine() *gin.Engine {
	engine := gin.New()

	engine.Use(
		gin.Recovery(),
		yaginmiddleware.NewRequestID(s.log).Handle,
		yaginmiddleware.NewErrorHandler(s.log).Handle,
	)

	if s.limiter != nil {
		engine.Use(yaginmiddleware.NewRateLimit(s.limiter, s.log).Handle)
	}

	s.Register(engine)

	return engine
}

// Register adds the routes to router.
func (s *Server) Register(router gin.IRouter) {
	v1 := router.Group("/v1")

	v1.GET("/ping", s.ping)
	v1.POST("/resolve", s.resolve)
	v1.POST("/render/:encoding", s.render)

	archive := v1.Group("/archive/:chat/:message")

	archive.PUT("", s.storeArchived)
	archive.GET("", s.loadArchived)
	archive.DELETE("", s.deleteArchived)
	archive.GET("/render/:encoding", s.renderArchived)
}

func (s *Server) ping(ctx *gin.Context) {
	if err := s.cache.Ping(ctx.Request.Context()); err != nil {
		_ = ctx.Error(err.Wrap("ping cache"))

		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) resolve(ctx *gin.Context) {
	msg, ok := bindMessage(ctx)
	if !ok {
		return
	}

	resolved, err := msg.Resolve()
	if err != nil {
		_ = ctx.Error(err.Wrap("resolve message"))

		return
	}

	ctx.JSON(http.StatusOK, ResolveResponse{Entities: resolved})
}

func (s *Server) render(ctx *gin.Context) {
	msg, ok := bindMessage(ctx)
	if !ok {
		return
	}

	s.writeRendered(ctx, msg)
}

func (s *Server) storeArchived(ctx *gin.Context) {
	chatID, messageID, ok := archivePath(ctx)
	if !ok {
		return
	}

	msg, ok := bindMessage(ctx)
	if !ok {
		return
	}

	if err := s.archive.Store(ctx.Request.Context(), &yaarchive.StoredMessage{
		ChatID:    chatID,
		MessageID: messageID,
		Text:      msg.Text,
		Entities:  msg.Entities,
	}); err != nil {
		_ = ctx.Error(err.Wrap("store archived message"))

		return
	}

	yaginmiddleware.Logger(ctx, s.log).Debugf("Archived message %d:%d", chatID, messageID)

	ctx.Status(http.StatusNoContent)
}

func (s *Server) loadArchived(ctx *gin.Context) {
	stored, ok := s.load(ctx)
	if !ok {
		return
	}

	entities := stored.Entities
	if entities == nil {
		entities = []yaentity.Entity{}
	}

	ctx.JSON(http.StatusOK, ArchivedMessageResponse{
		ChatID:    stored.ChatID,
		MessageID: stored.MessageID,
		Text:      stored.Text,
		Entities:  entities,
		CreatedAt: stored.CreatedAt,
	})
}

func (s *Server) deleteArchived(ctx *gin.Context) {
	chatID, messageID, ok := archivePath(ctx)
	if !ok {
		return
	}

	if err := s.archive.Delete(ctx.Request.Context(), chatID, messageID); err != nil {
		_ = ctx.Error(err.Wrap("delete archived message"))

		return
	}

	ctx.Status(http.StatusNoContent)
}

func (s *Server) renderArchived(ctx *gin.Context) {
	stored, ok := s.load(ctx)
	if !ok {
		return
	}

	msg := stored.Message()

	s.writeRendered(ctx, &msg)
}

func (s *Server) load(ctx *gin.Context) (*yaarchive.StoredMessage, bool) {
	chatID, messageID, ok := archivePath(ctx)
	if !ok {
		return nil, false
	}

	stored, err := s.archive.Load(ctx.Request.Context(), chatID, messageID)
	if err != nil {
		_ = ctx.Error(err.Wrap("load archived message"))

		return nil, false
	}

	return stored, true
}

func (s *Server) writeRendered(ctx *gin.Context, msg *yaentity.Message) {
	text, cached, err := s.renderer.Render(
		ctx.Request.Context(),
		ctx.Param(paramEncoding),
		msg,
		yaginmiddleware.Logger(ctx, s.log),
	)
	if err != nil {
		_ = ctx.Error(err)

		return
	}

	if cached {
		ctx.Header(HeaderCache, cacheHit)
	} else {
		ctx.Header(HeaderCache, cacheMiss)
	}

	ctx.JSON(http.StatusOK, RenderResponse{Text: text})
}

func bindMessage(ctx *gin.Context) (*yaentity.Message, bool) {
	var msg yaentity.Message

	if err := ctx.ShouldBindJSON(&msg); err != nil {
		_ = ctx.Error(yaerrors.FromError(http.StatusBadRequest, err, ErrInvalidBody.Error()))

		return nil, false
	}

	return &msg, true
}

func archivePath(ctx *gin.Context) (int64, int64, bool) {
	chatID, err := strconv.ParseInt(ctx.Param(paramChat), 10, 64)
	if err != nil {
		_ = ctx.Error(yaerrors.FromError(
			http.StatusBadRequest,
			ErrInvalidPath,
			fmt.Sprintf("parse chat id %q", ctx.Param(paramChat)),
		))

		return 0, 0, false
	}

	messageID, err := strconv.ParseInt(ctx.Param(paramMessage), 10, 64)
	if err != nil {
		_ = ctx.Error(yaerrors.FromError(
			http.StatusBadRequest,
			ErrInvalidPath,
			fmt.Sprintf("parse message id %q", ctx.Param(paramMessage)),
		))

		return 0, 0, false
	}

	return chatID, messageID, true
}
