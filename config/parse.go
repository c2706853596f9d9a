package config

import (
	"encoding"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/YaCodeDev/GoYaTgEntities/yaerrors"
)

// ParseValue parses a string into T. Supported are types implementing
// encoding.TextUnmarshaler, time.Duration, and types whose underlying type is a
// string, bool, integer or float.
//
// Example usage:
//
//	level, err := config.ParseValue[yalogger.Level]("debug")
//	kinds, err := config.ParseValue[yaentity.KindSet]("bold,italic")
func ParseValue[T any](value string) (T, yaerrors.Error) {
	var result T

	if unmarshaler, ok := any(&result).(encoding.TextUnmarshaler); ok {
		if err := unmarshaler.UnmarshalText([]byte(value)); err != nil {
			return result, yaerrors.FromError(
				http.StatusBadRequest,
				err,
				fmt.Sprintf("parse %q as %T", value, result),
			)
		}

		return result, nil
	}

	target := reflect.ValueOf(&result).Elem()

	if err := setValue(target, strings.TrimSpace(value)); err != nil {
		return result, yaerrors.FromError(
			http.StatusBadRequest,
			err,
			fmt.Sprintf("parse %q as %T", value, result),
		)
	}

	return result, nil
}

func setValue(target reflect.Value, value string) error {
	if target.Type() == reflect.TypeFor[time.Duration]() {
		duration, err := time.ParseDuration(value)
		if err != nil {
			return err
		}

		target.SetInt(int64(duration))

		return nil
	}

	//nolint:exhaustive // Everything else is unsupported
	switch target.Kind() {
	case reflect.String:
		target.SetString(value)
	case reflect.Bool:
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}

		target.SetBool(parsed)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		parsed, err := strconv.ParseInt(value, 10, target.Type().Bits())
		if err != nil {
			return err
		}

		target.SetInt(parsed)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		parsed, err := strconv.ParseUint(value, 10, target.Type().Bits())
		if err != nil {
			return err
		}

		target.SetUint(parsed)
	case reflect.Float32, reflect.Float64:
		parsed, err := strconv.ParseFloat(value, target.Type().Bits())
		if err != nil {
			return err
		}

		target.SetFloat(parsed)
	default:
		return ErrUnsupportedType
	}

	return nil
}
