package config_test

import (
	"testing"
	"time"

	"github.com/YaCodeDev/GoYaTgEntities/config"
	"github.com/YaCodeDev/GoYaTgEntities/yaentity"
	"github.com/YaCodeDev/GoYaTgEntities/yalogger"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) config.LookupFunc {
	return func(key string) (string, bool) {
		value, ok := env[key]

		return value, ok
	}
}

func TestLoadFrom_Defaults(t *testing.T) {
	t.Parallel()

	got := config.LoadFrom(lookupFrom(nil), nil)

	want := &config.Config{
		HTTPAddr:    ":8080",
		LogLevel:    yalogger.InfoLevel,
		CacheTTL:    5 * time.Minute,
		SQLitePath:  "yaentities.db",
		RenderKinds: yaentity.AllKinds,
		RateWindow:  time.Minute,
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LoadFrom() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFrom_Environment(t *testing.T) {
	t.Parallel()

	got := config.LoadFrom(lookupFrom(map[string]string{
		config.EnvHTTPAddr:        "127.0.0.1:9000",
		config.EnvLogLevel:        "debug",
		config.EnvRedisAddr:       "localhost:6379",
		config.EnvRedisPassword:   "yacode",
		config.EnvRedisDB:         "3",
		config.EnvCacheTTLSeconds: "60",
		config.EnvSQLitePath:      ":memory:",
		config.EnvRenderKinds:     "bold,italic",
		config.EnvRateLimit:       "100",
		config.EnvRateWindow:      "10",
	}), nil)

	want := &config.Config{
		HTTPAddr:      "127.0.0.1:9000",
		LogLevel:      yalogger.DebugLevel,
		RedisAddr:     "localhost:6379",
		RedisPassword: "yacode",
		RedisDB:       3,
		CacheTTL:      time.Minute,
		SQLitePath:    ":memory:",
		RenderKinds:   yaentity.NewKindSet(yaentity.KindBold, yaentity.KindItalic),
		RateLimit:     100,
		RateWindow:    10 * time.Second,
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LoadFrom() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFrom_InvalidValuesFallBack(t *testing.T) {
	t.Parallel()

	got := config.LoadFrom(lookupFrom(map[string]string{
		config.EnvLogLevel:        "loud",
		config.EnvRedisDB:         "three",
		config.EnvCacheTTLSeconds: "-1",
		config.EnvRenderKinds:     "bold,marquee",
	}), nil)

	assert.Equal(t, yalogger.InfoLevel, got.LogLevel)
	assert.Equal(t, 0, got.RedisDB)
	assert.Equal(t, 5*time.Minute, got.CacheTTL)
	assert.Equal(t, yaentity.AllKinds, got.RenderKinds)
}

func TestGetEnv_Works(t *testing.T) {
	t.Setenv("YAENTITIES_TEST_GETENV", "42")

	assert.Equal(t, 42, config.GetEnv("YAENTITIES_TEST_GETENV", 0, false, nil))
	assert.Equal(t, "fallback", config.GetEnv("YAENTITIES_TEST_GETENV_MISSING", "fallback", false, nil))
}

func TestParseValue_Works(t *testing.T) {
	t.Parallel()

	t.Run("[Primitive] values", func(t *testing.T) {
		t.Parallel()

		i, err := config.ParseValue[int8]("-8")
		require.Nil(t, err)
		assert.Equal(t, int8(-8), i)

		u, err := config.ParseValue[uint16](" 16 ")
		require.Nil(t, err)
		assert.Equal(t, uint16(16), u)

		f, err := config.ParseValue[float64]("3.14")
		require.Nil(t, err)
		assert.InDelta(t, 3.14, f, 1e-9)

		b, err := config.ParseValue[bool]("true")
		require.Nil(t, err)
		assert.True(t, b)
	})

	t.Run("[Duration] uses time syntax", func(t *testing.T) {
		t.Parallel()

		d, err := config.ParseValue[time.Duration]("1m30s")
		require.Nil(t, err)
		assert.Equal(t, 90*time.Second, d)
	})

	t.Run("[TextUnmarshaler] wins over the underlying type", func(t *testing.T) {
		t.Parallel()

		kinds, err := config.ParseValue[yaentity.KindSet]("formatting")
		require.Nil(t, err)
		assert.Equal(t, yaentity.FormattingKinds, kinds)
	})

	t.Run("[Errors] overflow and unsupported", func(t *testing.T) {
		t.Parallel()

		_, err := config.ParseValue[uint8]("256")
		assert.NotNil(t, err)

		_, err = config.ParseValue[[]string]("a,b")
		assert.ErrorIs(t, err, config.ErrUnsupportedType)
	})
}
