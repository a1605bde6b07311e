package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ptotracker/internal/domain/auth"
)

func TestAuthPopulatesManagerContext(t *testing.T) {
	secret := "test-secret"
	token, err := auth.GenerateToken(secret, auth.Claims{ManagerID: 7, Username: "pat", FullName: "Pat Admin", Role: auth.RoleAdmin}, time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	var got auth.ManagerContext
	var ok bool
	handler := Auth(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = GetManager(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if !ok {
		t.Fatal("expected manager in context")
	}
	if got.ManagerID != 7 || got.Username != "pat" || got.Role != auth.RoleAdmin {
		t.Fatalf("manager mismatch: %+v", got)
	}
}

func TestAuthPassesThroughWithoutToken(t *testing.T) {
	cases := []struct {
		name   string
		header string
	}{
		{name: "no header", header: ""},
		{name: "malformed header", header: "Token abc"},
		{name: "invalid token", header: "Bearer not.a.jwt"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			called := false
			handler := Auth("test-secret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				if _, ok := GetManager(r.Context()); ok {
					t.Fatal("expected no manager in context")
				}
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			handler.ServeHTTP(httptest.NewRecorder(), req)

			if !called {
				t.Fatal("expected next handler to run")
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	secret := "test-secret"
	protected := Auth(secret)(RequireRole(auth.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})))

	t.Run("anonymous gets 401", func(t *testing.T) {
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("wrong role gets 403", func(t *testing.T) {
		token, err := auth.GenerateToken(secret, auth.Claims{ManagerID: 1, Username: "m", Role: auth.RoleManager}, time.Hour)
		if err != nil {
			t.Fatalf("token error: %v", err)
		}
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("status = %d, want 403", rec.Code)
		}
	})

	t.Run("matching role passes", func(t *testing.T) {
		token, err := auth.GenerateToken(secret, auth.Claims{ManagerID: 1, Username: "a", Role: auth.RoleAdmin}, time.Hour)
		if err != nil {
			t.Fatalf("token error: %v", err)
		}
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("status = %d, want 204", rec.Code)
		}
	})
}
