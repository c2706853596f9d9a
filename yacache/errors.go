package yacache

import "errors"

var (
	ErrNotFound = errors.New("[CACHE] value not found")

	ErrFailedToHSetEx   = errors.New("[CACHE] failed to set value")
	ErrFailedToGetValue = errors.New("[CACHE] failed to get value")
	ErrFailedToHDel     = errors.New("[CACHE] failed to delete value")
	ErrFailedToHExist   = errors.New("[CACHE] failed to check value")
	ErrFailedPing       = errors.New("[CACHE] failed to ping")
	ErrFailedToClose    = errors.New("[CACHE] failed to close")
)
