// Package yaerrors provides the coded error type shared by every package of the module.
//
// An Error carries an HTTP-like status code, the original cause (reachable through
// errors.Is / errors.As) and a human readable traceback that grows every time the
// error is wrapped on its way up the call stack:
//
//	resolve entities -> entity 2: utf-16 offset 7 is not a codepoint boundary: invalid utf-16 offset
package yaerrors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/YaCodeDev/GoYaTgEntities/yalogger"
)

// Error is the error interface returned by fallible operations of the module.
type Error interface {
	error
	Wrap(msg string) Error
	WrapWithLog(msg string, log yalogger.Logger) Error
	Code() int
	Unwrap() error
	UnwrapLastError() string
}

const (
	codeSeparate  = " | "
	errorSeparate = " -> "
)

type yaError struct {
	code      int
	cause     error
	traceback string
}

// FromError creates an Error with the given code around an existing cause.
//
// Example usage:
//
//	return yaerrors.FromError(http.StatusUnprocessableEntity, ErrInvalidOffset, "resolve entities")
func FromError(code int, cause error, wrap string) Error {
	return &yaError{
		code:      code,
		cause:     cause,
		traceback: fmt.Sprintf("%s: %v", wrap, cause),
	}
}

// FromErrorWithLog is FromError that also reports the message at the Error level.
func FromErrorWithLog(code int, cause error, wrap string, log yalogger.Logger) Error {
	err := FromError(code, cause, wrap)

	log.Error(err.Error())

	return err
}

// FromString creates an Error from a bare message.
func FromString(code int, msg string) Error {
	return &yaError{
		code:      code,
		cause:     errors.New(msg), //nolint:err113
		traceback: msg,
	}
}

// FromStringWithLog is FromString that also reports the message at the Error level.
func FromStringWithLog(code int, msg string, log yalogger.Logger) Error {
	log.Error(msg)

	return FromString(code, msg)
}

// Error returns "<code> | <traceback>".
func (e *yaError) Error() string {
	safetyCheck(&e)

	return fmt.Sprintf("%d%s%s", e.code, codeSeparate, e.traceback)
}

// Unwrap returns the cause the error was created from.
func (e *yaError) Unwrap() error {
	safetyCheck(&e)

	return e.cause
}

// UnwrapLastError returns the outermost message of the traceback.
func (e *yaError) UnwrapLastError() string {
	safetyCheck(&e)

	last, _, _ := strings.Cut(e.traceback, errorSeparate)

	return last
}

// Wrap prepends msg to the traceback. Call it each time the error crosses a layer.
func (e *yaError) Wrap(msg string) Error {
	safetyCheck(&e)

	e.traceback = msg + errorSeparate + e.traceback

	return e
}

// WrapWithLog is Wrap that also reports msg at the Error level.
func (e *yaError) WrapWithLog(msg string, log yalogger.Logger) Error {
	log.Error(msg)

	return e.Wrap(msg)
}

// Code returns the status code of the error.
func (e *yaError) Code() int {
	safetyCheck(&e)

	return e.code
}

// Code extracts the status code from any error: the code of an Error found in the chain,
// http.StatusInternalServerError for other errors and http.StatusOK for nil.
func Code(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var yaErr Error
	if errors.As(err, &yaErr) {
		return yaErr.Code()
	}

	return http.StatusInternalServerError
}

func safetyCheck(err **yaError) {
	if *err == nil {
		*err = &yaError{
			code:      http.StatusTeapot,
			cause:     ErrTeapot,
			traceback: ErrTeapot.Error(),
		}
	}
}
