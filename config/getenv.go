package config

import (
	"os"

	"github.com/YaCodeDev/GoYaTgEntities/yalogger"
)

// LookupFunc looks up a variable the way os.LookupEnv does.
type LookupFunc func(key string) (string, bool)

// GetEnv retrieves the value of an environment variable, parses it to the specified type T,
// and returns it. If the variable is not set or fails to parse, it returns fallback.
// If the variable is required and not set, it logs an error and exits the program.
//
// Example usage:
//
//	port := config.GetEnv("MY_ENV_VAR", 42, false, log)
func GetEnv[T any](
	key string,
	fallback T,
	required bool,
	log yalogger.Logger,
) T {
	return lookupEnv(os.LookupEnv, key, fallback, required, log)
}

func lookupEnv[T any](
	lookup LookupFunc,
	key string,
	fallback T,
	required bool,
	log yalogger.Logger,
) T {
	safetyCheck(&log)

	value, exists := lookup(key)
	if exists {
		parsed, err := ParseValue[T](value)
		if err == nil {
			return parsed
		}

		log.Warnf("Environment variable %s failed to parse, using default value %v: %v", key, fallback, err)

		return fallback
	}

	if required {
		log.Fatalf("Environment variable %s is required: %v", key, ErrValueIsRequired)
	}

	log.Debugf("Environment variable %s is not set, using default value %v", key, fallback)

	return fallback
}

func safetyCheck(log *yalogger.Logger) {
	if *log == nil {
		*log = yalogger.NewBaseLogger(nil).NewLogger()

		(*log).Warn("Logger is nil, using default logger")
	}
}
