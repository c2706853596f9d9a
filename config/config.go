// Package config loads the service configuration from the environment.
package config

import (
	"os"
	"time"

	"github.com/YaCodeDev/GoYaTgEntities/yaentity"
	"github.com/YaCodeDev/GoYaTgEntities/yalogger"
)

const (
	EnvHTTPAddr        = "YAENTITIES_HTTP_ADDR"
	EnvLogLevel        = "YAENTITIES_LOG_LEVEL"
	EnvRedisAddr       = "YAENTITIES_REDIS_ADDR"
	EnvRedisPassword   = "YAENTITIES_REDIS_PASSWORD"
	EnvRedisDB         = "YAENTITIES_REDIS_DB"
	EnvCacheTTLSeconds = "YAENTITIES_CACHE_TTL_SECONDS"
	EnvSQLitePath      = "YAENTITIES_SQLITE_PATH"
	EnvRenderKinds     = "YAENTITIES_RENDER_KINDS"
	EnvRateLimit       = "YAENTITIES_RATE_LIMIT"
	EnvRateWindow      = "YAENTITIES_RATE_WINDOW_SECONDS"
)

const (
	DefaultHTTPAddr        = ":8080"
	DefaultCacheTTLSeconds = 300
	DefaultSQLitePath      = "yaentities.db"
	DefaultRateWindow      = 60
)

// Config is the configuration of the yaentities service.
type Config struct {
	HTTPAddr string
	LogLevel yalogger.Level

	// RedisAddr selects the Redis cache. The in-memory cache is used when empty.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	CacheTTL time.Duration

	SQLitePath string

	// RenderKinds restricts which entity kinds produce markup when rendering.
	RenderKinds yaentity.KindSet

	// RateLimit is the number of requests a client may send per RateWindow to one
	// route. Zero disables rate limiting.
	RateLimit  uint32
	RateWindow time.Duration
}

// Load reads the configuration from the process environment.
func Load(log yalogger.Logger) *Config {
	return LoadFrom(os.LookupEnv, log)
}

// LoadFrom reads the configuration through lookup.
func LoadFrom(lookup LookupFunc, log yalogger.Logger) *Config {
	ttlSeconds := lookupEnv(lookup, EnvCacheTTLSeconds, uint32(DefaultCacheTTLSeconds), false, log)
	rateWindowSeconds := lookupEnv(lookup, EnvRateWindow, uint32(DefaultRateWindow), false, log)

	return &Config{
		HTTPAddr:      lookupEnv(lookup, EnvHTTPAddr, DefaultHTTPAddr, false, log),
		LogLevel:      lookupEnv(lookup, EnvLogLevel, yalogger.InfoLevel, false, log),
		RedisAddr:     lookupEnv(lookup, EnvRedisAddr, "", false, log),
		RedisPassword: lookupEnv(lookup, EnvRedisPassword, "", false, log),
		RedisDB:       lookupEnv(lookup, EnvRedisDB, 0, false, log),
		CacheTTL:      time.Duration(ttlSeconds) * time.Second,
		SQLitePath:    lookupEnv(lookup, EnvSQLitePath, DefaultSQLitePath, false, log),
		RenderKinds:   lookupEnv(lookup, EnvRenderKinds, yaentity.AllKinds, false, log),
		RateLimit:     lookupEnv(lookup, EnvRateLimit, uint32(0), false, log),
		RateWindow:    time.Duration(rateWindowSeconds) * time.Second,
	}
}
