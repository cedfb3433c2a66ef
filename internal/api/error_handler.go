package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/spacehq/space-auth/internal/core/domain"
)

// Error codes form a stable, machine-readable taxonomy. The ERR-1xxx range
// is reserved for generic system errors, ERR-2xxx for auth-specific ones.
const (
	CodeBadRequest      = "ERR-1001"
	CodeInternal        = "ERR-1002"
	CodeNotFound        = "ERR-1003"
	CodeUnauthorized    = "ERR-1004"
	CodeEmailInUse      = "ERR-2001"
	CodeUserNotFound    = "ERR-2002"
	CodeInvalidPassword = "ERR-2003"
	CodeTokenInvalid    = "ERR-2004"
	CodeTooManyAttempts = "ERR-2005"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Status    int       `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	ErrorCode string    `json:"errorCode"`
}

// errorMapping maps one domain sentinel to its wire representation.
type errorMapping struct {
	err     error
	status  int
	code    string
	message string
}

// errorTable is the lookup table from domain errors to wire errors. Order
// matters only for readability; sentinels are disjoint.
var errorTable = []errorMapping{
	{domain.ErrEmailInUse, http.StatusBadRequest, CodeEmailInUse, "Email already in use. Please use a different email."},
	{domain.ErrUserNotFound, http.StatusNotFound, CodeUserNotFound, "User not found"},
	{domain.ErrInvalidPassword, http.StatusBadRequest, CodeInvalidPassword, "Invalid password provided."},
	{domain.ErrTokenInvalid, http.StatusUnauthorized, CodeTokenInvalid, "Token is invalid or expired"},
	{domain.ErrUnauthorized, http.StatusUnauthorized, CodeUnauthorized, "Unauthorized access attempt"},
	{domain.ErrTooManyAttempts, http.StatusTooManyRequests, CodeTooManyAttempts, "Too many login attempts. Please try again later."},
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their status and error code via errorTable.
//   - Logs unexpected errors internally without leaking causes to the client.
//   - Renders a consistent JSON envelope: {status, message, timestamp, errorCode}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, code, msg := resolveError(err, log, c)
		_ = c.JSON(status, errorResponse{
			Status:    status,
			Message:   msg,
			Timestamp: time.Now().UTC(),
			ErrorCode: code,
		})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string, string) {
	for _, m := range errorTable {
		if errors.Is(err, m.err) {
			return m.status, m.code, m.message
		}
	}

	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, genericCode(he.Code), fmt.Sprintf("%v", he.Message)
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, CodeInternal, "Internal server error: Something went wrong"
}

func genericCode(status int) string {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return CodeUnauthorized
	case http.StatusNotFound:
		return CodeNotFound
	default:
		if status >= http.StatusInternalServerError {
			return CodeInternal
		}
		return CodeBadRequest
	}
}
