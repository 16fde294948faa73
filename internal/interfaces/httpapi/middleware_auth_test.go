package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dsfl/fantasy-league/internal/domain/user"
	"github.com/dsfl/fantasy-league/internal/usecase"
)

type stubVerifier struct {
	principal user.Principal
	err       error
	gotToken  string
}

func (v *stubVerifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	v.gotToken = token
	if v.err != nil {
		return user.Principal{}, v.err
	}
	return v.principal, nil
}

func TestRequireAuth_PutsPrincipalInContext(t *testing.T) {
	verifier := &stubVerifier{principal: user.Principal{UserID: 7, Name: "Cho Chang"}}

	var seen user.Principal
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := principalFromContext(r.Context())
		if !ok {
			t.Fatalf("principal missing from handler context")
		}
		seen = p
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/teams/me", nil)
	req.Header.Set("Authorization", "Bearer token-abc")
	rec := httptest.NewRecorder()

	RequireAuth(verifier, next).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if verifier.gotToken != "token-abc" {
		t.Fatalf("unexpected token passed to verifier: %q", verifier.gotToken)
	}
	if seen.UserID != 7 {
		t.Fatalf("unexpected principal: %+v", seen)
	}
}

func TestRequireAuth_RejectsBadHeaders(t *testing.T) {
	verifier := &stubVerifier{principal: user.Principal{UserID: 7}}
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatalf("handler must not run without credentials")
	})

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "not bearer", header: "Basic dXNlcjpwYXNz"},
		{name: "empty token", header: "Bearer "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/teams/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			RequireAuth(verifier, next).ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected status 401, got %d", rec.Code)
			}
		})
	}
}

func TestRequireAuth_VerifierOutageIsServiceUnavailable(t *testing.T) {
	verifier := &stubVerifier{err: fmt.Errorf("%w: gatekeeper circuit open", usecase.ErrDependencyUnavailable)}
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatalf("handler must not run when verification fails")
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/teams/me", nil)
	req.Header.Set("Authorization", "Bearer token-abc")
	rec := httptest.NewRecorder()

	RequireAuth(verifier, next).ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("admin passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/admin/matches", nil)
		req = req.WithContext(withPrincipal(req.Context(), user.Principal{UserID: 1, IsAdmin: true}))
		rec := httptest.NewRecorder()

		RequireAdmin(next).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
	})

	t.Run("non-admin forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/admin/matches", nil)
		req = req.WithContext(withPrincipal(req.Context(), user.Principal{UserID: 2}))
		rec := httptest.NewRecorder()

		RequireAdmin(next).ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected status 403, got %d", rec.Code)
		}
	})

	t.Run("missing principal unauthorized", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/admin/matches", nil)
		rec := httptest.NewRecorder()

		RequireAdmin(next).ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected status 401, got %d", rec.Code)
		}
	})
}
