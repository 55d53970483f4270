package errors

import (
	"context"
	stderrors "errors"
	"net/http"
)

// MapToHTTPStatus translates a service error into the status code returned to clients.
func MapToHTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case stderrors.Is(err, ErrInvalidRequest),
		stderrors.Is(err, ErrUnknownCategory):
		return http.StatusBadRequest
	case stderrors.Is(err, ErrNoPreferences),
		stderrors.Is(err, ErrUnknownItem):
		return http.StatusNotFound
	case stderrors.Is(err, context.Canceled):
		return 499
	case stderrors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
