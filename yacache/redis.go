package yacache

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/YaCodeDev/GoYaTgEntities/yaerrors"
	"github.com/YaCodeDev/GoYaTgEntities/yalogger"
	"github.com/redis/go-redis/v9"
)

const backendName = "REDIS"

// Redis wraps a *redis.Client and implements Cache.
//
// Fields share the TTL of their hash: every HSetEX refreshes the expiration of
// the whole main key.
type Redis struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

// NewRedisClient connects to Redis and performs an initial PING.
//
// Example:
//
//	client, err := yacache.NewRedisClient(ctx, "127.0.0.1:6379", "", 0, log)
func NewRedisClient(
	ctx context.Context,
	addr string,
	password string,
	db int,
	log yalogger.Logger,
) (*redis.Client, yaerrors.Error) {
	log.Infof("Redis connecting to addr %s", addr)

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()

		return nil, yaerrors.FromErrorWithLog(
			http.StatusInternalServerError,
			errors.Join(err, ErrFailedPing),
			fmt.Sprintf("[%s] failed to connect to %s", backendName, addr),
			log,
		)
	}

	log.Infof("Redis connected to addr %s", addr)

	return client, nil
}

// Raw exposes the underlying *redis.Client.
func (r *Redis) Raw() *redis.Client {
	return r.client
}

func (r *Redis) HSetEX(
	ctx context.Context,
	mainKey string,
	childKey string,
	value string,
	ttl time.Duration,
) yaerrors.Error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, mainKey, childKey, value)

		if ttl > 0 {
			pipe.Expire(ctx, mainKey, ttl)
		}

		return nil
	})
	if err != nil {
		return yaerrors.FromError(
			http.StatusInternalServerError,
			errors.Join(err, ErrFailedToHSetEx),
			fmt.Sprintf("[%s] failed `HSET` by `%s:%s`", backendName, mainKey, childKey),
		)
	}

	return nil
}

func (r *Redis) HGet(
	ctx context.Context,
	mainKey string,
	childKey string,
) (string, yaerrors.Error) {
	result, err := r.client.HGet(ctx, mainKey, childKey).Result()
	if errors.Is(err, redis.Nil) {
		return "", yaerrors.FromError(
			http.StatusNotFound,
			ErrNotFound,
			fmt.Sprintf("[%s] failed `HGET` by `%s:%s`", backendName, mainKey, childKey),
		)
	}

	if err != nil {
		return "", yaerrors.FromError(
			http.StatusInternalServerError,
			errors.Join(err, ErrFailedToGetValue),
			fmt.Sprintf("[%s] failed `HGET` by `%s:%s`", backendName, mainKey, childKey),
		)
	}

	return result, nil
}

func (r *Redis) HExist(
	ctx context.Context,
	mainKey string,
	childKey string,
) (bool, yaerrors.Error) {
	result, err := r.client.HExists(ctx, mainKey, childKey).Result()
	if err != nil {
		return false, yaerrors.FromError(
			http.StatusInternalServerError,
			errors.Join(err, ErrFailedToHExist),
			fmt.Sprintf("[%s] failed `HEXISTS` by `%s:%s`", backendName, mainKey, childKey),
		)
	}

	return result, nil
}

func (r *Redis) HDelSingle(
	ctx context.Context,
	mainKey string,
	childKey string,
) yaerrors.Error {
	if err := r.client.HDel(ctx, mainKey, childKey).Err(); err != nil {
		return yaerrors.FromError(
			http.StatusInternalServerError,
			errors.Join(err, ErrFailedToHDel),
			fmt.Sprintf("[%s] failed `HDEL` by `%s:%s`", backendName, mainKey, childKey),
		)
	}

	return nil
}

func (r *Redis) Ping(ctx context.Context) yaerrors.Error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return yaerrors.FromError(
			http.StatusInternalServerError,
			errors.Join(err, ErrFailedPing),
			fmt.Sprintf("[%s] failed `PING`", backendName),
		)
	}

	return nil
}

// Close closes the underlying client.
func (r *Redis) Close() yaerrors.Error {
	if err := r.client.Close(); err != nil {
		return yaerrors.FromError(
			http.StatusInternalServerError,
			errors.Join(err, ErrFailedToClose),
			fmt.Sprintf("[%s] failed `CLOSE`", backendName),
		)
	}

	return nil
}
