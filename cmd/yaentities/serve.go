package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/YaCodeDev/GoYaTgEntities/config"
	"github.com/YaCodeDev/GoYaTgEntities/yaarchive"
	"github.com/YaCodeDev/GoYaTgEntities/yabackoff"
	"github.com/YaCodeDev/GoYaTgEntities/yacache"
	"github.com/YaCodeDev/GoYaTgEntities/yaentityapi"
	"github.com/YaCodeDev/GoYaTgEntities/yaerrors"
	"github.com/YaCodeDev/GoYaTgEntities/yalogger"
	"github.com/YaCodeDev/GoYaTgEntities/yaratelimit"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

const (
	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 5 * time.Second

	redisConnectAttempts   = 5
	redisInitialBackoff    = 500 * time.Millisecond
	redisBackoffMultiplier = 2
	redisMaxBackoff        = 10 * time.Second
)

func openCache(ctx context.Context, cfg *config.Config, log yalogger.Logger) (yacache.Store, yaerrors.Error) {
	if cfg.RedisAddr == "" {
		log.Info("Using in-memory render cache")

		return yacache.NewMemory(yacache.NewMemoryContainer(), time.Minute), nil
	}

	backoff := yabackoff.NewExponential(redisInitialBackoff, redisBackoffMultiplier, redisMaxBackoff)

	client, err := yabackoff.Retry(ctx, redisConnectAttempts, &backoff, func() (*redis.Client, yaerrors.Error) {
		return yacache.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, log)
	})
	if err != nil {
		return nil, err.Wrap("open render cache")
	}

	return yacache.NewRedis(client), nil
}

func openArchive(cfg *config.Config, log yalogger.Logger) (*yaarchive.GormArchive, func(), yaerrors.Error) {
	sqlDB, err := sql.Open("sqlite", cfg.SQLitePath)
	if err != nil {
		return nil, nil, yaerrors.FromError(http.StatusInternalServerError, err, "open sqlite "+cfg.SQLitePath)
	}

	poolDB, err := gorm.Open(
		gorm.Dialector(
			sqlite.Dialector{
				Conn:       sqlDB,
				DriverName: "sqlite",
			},
		), &gorm.Config{})
	if err != nil {
		_ = sqlDB.Close()

		return nil, nil, yaerrors.FromError(http.StatusInternalServerError, err, "open gorm")
	}

	archive, yaErr := yaarchive.NewGormArchive(poolDB)
	if yaErr != nil {
		_ = sqlDB.Close()

		return nil, nil, yaErr.Wrap("open archive")
	}

	log.Infof("Archive opened at %s", cfg.SQLitePath)

	return archive, func() { _ = sqlDB.Close() }, nil
}

func serve(ctx context.Context, cfg *config.Config, log yalogger.Logger) yaerrors.Error {
	cache, yaErr := openCache(ctx, cfg, log)
	if yaErr != nil {
		return yaErr
	}

	defer func() {
		if err := cache.Close(); err != nil {
			log.Warnf("Failed to close render cache: %v", err)
		}
	}()

	archive, closeArchive, yaErr := openArchive(cfg, log)
	if yaErr != nil {
		return yaErr
	}

	defer closeArchive()

	gin.SetMode(gin.ReleaseMode)

	server := yaentityapi.NewServer(
		archive,
		cache,
		yaentityapi.NewRenderer(cache, cfg.RenderKinds, cfg.CacheTTL),
		log,
	)

	if cfg.RateLimit > 0 {
		log.Infof("Rate limit is %d requests per %s", cfg.RateLimit, cfg.RateWindow)

		server.WithRateLimit(yaratelimit.NewRateLimit(cache, cfg.RateLimit, cfg.RateWindow))
	}

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           server.Engine(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serveErr := make(chan error, 1)

	go func() {
		log.Infof("HTTP server listening on %s", cfg.HTTPAddr)

		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return yaerrors.FromError(http.StatusInternalServerError, err, "serve http")
	case <-ctx.Done():
	}

	log.Info("Shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return yaerrors.FromError(http.StatusInternalServerError, err, "shutdown http")
	}

	return nil
}
