package exceptions

import (
	"errors"
	"fmt"
	"meetocure-service/internal/pkg/constvars"
	"runtime"
	"strings"
)

// Kind classifies a CustomError for callers that branch on the failure
// category rather than on the HTTP status.
type Kind string

const (
	KindValidation        Kind = "ValidationError"
	KindSlotUnavailable   Kind = "SlotUnavailableError"
	KindSlotConflict      Kind = "SlotConflictError"
	KindIllegalTransition Kind = "IllegalTransitionError"
	KindNotFound          Kind = "NotFoundError"
	KindAuthorization     Kind = "AuthorizationError"
	KindAuthentication    Kind = "AuthenticationError"
	KindDeliveryFailure   Kind = "DeliveryFailure"
	KindDuplicate         Kind = "DuplicateError"
	KindInternal          Kind = "InternalError"
)

type CustomError struct {
	StatusCode    int        `json:"status_code"`
	Success       bool       `json:"success"`
	ClientMessage string     `json:"message"`
	Kind          Kind       `json:"kind,omitempty"`
	DevMessage    string     `json:"dev_message,omitempty"`
	Locations     []Location `json:"locations,omitempty"`
	cause         error
}

type Location struct {
	File         string `json:"file"`
	Line         int    `json:"line"`
	FunctionName string `json:"function_name"`
}

func (e *CustomError) Error() string {
	if len(e.Locations) == 0 {
		return e.DevMessage
	}
	location := e.Locations[0]
	return fmt.Sprintf("%s (%s:%d %s)", e.DevMessage, location.File, location.Line, location.FunctionName)
}

func (e *CustomError) Unwrap() error {
	return e.cause
}

// BuildNewCustomError wraps err with the client/dev messages. When err is
// already a CustomError its kind and call chain are kept and the new call
// site is appended.
func BuildNewCustomError(err error, statusCode int, clientMessage, devMessage string) *CustomError {
	location := getLocation(3)

	var existing *CustomError
	if errors.As(err, &existing) {
		existing.Locations = append(existing.Locations, location)
		return existing
	}

	customErr := &CustomError{
		StatusCode:    statusCode,
		ClientMessage: clientMessage,
		Kind:          kindFromStatus(statusCode),
		DevMessage:    devMessage,
		Locations:     []Location{location},
		cause:         err,
	}
	if err != nil {
		customErr.DevMessage = fmt.Sprintf("%s: %s", devMessage, err.Error())
	}
	return customErr
}

func buildKindError(err error, kind Kind, statusCode int, clientMessage, devMessage string) *CustomError {
	customErr := &CustomError{
		StatusCode:    statusCode,
		ClientMessage: clientMessage,
		Kind:          kind,
		DevMessage:    devMessage,
		Locations:     []Location{getLocation(3)},
		cause:         err,
	}
	if err != nil {
		customErr.DevMessage = fmt.Sprintf("%s: %s", devMessage, err.Error())
	}
	return customErr
}

// KindOf reports the kind carried by err, or KindInternal when err is not a
// CustomError.
func KindOf(err error) Kind {
	var customErr *CustomError
	if errors.As(err, &customErr) && customErr.Kind != "" {
		return customErr.Kind
	}
	return KindInternal
}

func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

func kindFromStatus(statusCode int) Kind {
	switch statusCode {
	case constvars.StatusBadRequest:
		return KindValidation
	case constvars.StatusNotFound:
		return KindNotFound
	case constvars.StatusForbidden:
		return KindAuthorization
	case constvars.StatusUnauthorized:
		return KindAuthentication
	default:
		return KindInternal
	}
}

func getLocation(skip int) Location {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return Location{
			File:         constvars.ResponseUnknown,
			Line:         0,
			FunctionName: constvars.ResponseUnknown,
		}
	}
	function := runtime.FuncForPC(pc).Name()
	if idx := strings.LastIndex(file, "/internal/"); idx >= 0 {
		file = file[idx+1:]
	}
	return Location{
		File:         file,
		Line:         line,
		FunctionName: function,
	}
}
