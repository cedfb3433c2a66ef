package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/spacehq/space-auth/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, errorResponse) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid error json: %v", err)
	}
	return rec.Code, resp
}

func TestErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"email in use", domain.ErrEmailInUse, http.StatusBadRequest, CodeEmailInUse},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound, CodeUserNotFound},
		{"invalid password", domain.ErrInvalidPassword, http.StatusBadRequest, CodeInvalidPassword},
		{"token invalid", domain.ErrTokenInvalid, http.StatusUnauthorized, CodeTokenInvalid},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized, CodeUnauthorized},
		{"too many attempts", domain.ErrTooManyAttempts, http.StatusTooManyRequests, CodeTooManyAttempts},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, resp := renderError(t, tc.err)
			if status != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, status)
			}
			if resp.Status != tc.wantStatus || resp.ErrorCode != tc.wantCode {
				t.Fatalf("unexpected envelope: %+v", resp)
			}
			if resp.Timestamp.IsZero() {
				t.Fatalf("timestamp must be set")
			}
		})
	}
}

func TestErrorHandler_WrappedSentinel(t *testing.T) {
	status, resp := renderError(t, errors.Join(domain.ErrTokenInvalid, errors.New("exp claim in the past")))
	if status != http.StatusUnauthorized || resp.ErrorCode != CodeTokenInvalid {
		t.Fatalf("wrapped sentinel not resolved: %d %+v", status, resp)
	}
}

func TestErrorHandler_UnknownErrorIsOpaque(t *testing.T) {
	status, resp := renderError(t, errors.New("pq: connection refused on 10.0.0.3"))
	if status != http.StatusInternalServerError || resp.ErrorCode != CodeInternal {
		t.Fatalf("unexpected mapping: %d %+v", status, resp)
	}
	if strings.Contains(resp.Message, "10.0.0.3") {
		t.Fatalf("internal cause leaked to the client: %q", resp.Message)
	}
}

func TestErrorHandler_EchoHTTPError(t *testing.T) {
	status, resp := renderError(t, echo.NewHTTPError(http.StatusBadRequest, "email is required"))
	if status != http.StatusBadRequest || resp.ErrorCode != CodeBadRequest {
		t.Fatalf("unexpected mapping: %d %+v", status, resp)
	}
	if resp.Message != "email is required" {
		t.Fatalf("unexpected message: %q", resp.Message)
	}
}
