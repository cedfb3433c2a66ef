package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/spacehq/space-auth/internal/core/domain"
)

func TestAccessPolicy_Decide(t *testing.T) {
	policy := DefaultAccessPolicy()

	cases := []struct {
		name          string
		path          string
		authenticated bool
		wantErr       error
	}{
		{"public auth route unauthenticated", "/api/v1/auth/login", false, nil},
		{"public auth route authenticated", "/api/v1/auth/check", true, nil},
		{"health unauthenticated", "/health", false, nil},
		{"metrics unauthenticated", "/metrics", false, nil},
		{"protected unauthenticated", "/api/profile", false, domain.ErrUnauthorized},
		{"protected authenticated", "/api/profile", true, nil},
		{"unclassified unauthenticated", "/internal/debug", false, domain.ErrUnauthorized},
		{"unclassified authenticated", "/internal/debug", true, domain.ErrUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := policy.Decide(tc.path, tc.authenticated)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("Decide(%q, %v) = %v, want %v", tc.path, tc.authenticated, err, tc.wantErr)
			}
		})
	}
}

func runRequireAccess(t *testing.T, path string, ident *domain.RequestIdentity) (error, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if ident != nil {
		c.Set(IdentityKey, ident)
	}

	nextCalled := false
	mw := RequireAccess(DefaultAccessPolicy())
	handler := mw(func(c echo.Context) error {
		nextCalled = true
		return c.NoContent(http.StatusOK)
	})

	return handler(c), nextCalled
}

func TestRequireAccess_ProtectedWithoutIdentity(t *testing.T) {
	err, nextCalled := runRequireAccess(t, "/api/profile", nil)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if nextCalled {
		t.Fatalf("handler must not run for a rejected request")
	}
}

func TestRequireAccess_ProtectedWithIdentity(t *testing.T) {
	err, nextCalled := runRequireAccess(t, "/api/profile", &domain.RequestIdentity{Email: "a@x.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !nextCalled {
		t.Fatalf("expected handler to run")
	}
}

func TestRequireAccess_PublicRoute(t *testing.T) {
	err, nextCalled := runRequireAccess(t, "/api/v1/auth/login", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !nextCalled {
		t.Fatalf("expected handler to run on public route")
	}
}
