package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("user-1", "manager", "Dana", "dana@example.com")
	if err != nil {
		t.Fatalf("GenerateToken() error: %v", err)
	}

	handler := JWTMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := GetClaims(r)
		if claims == nil {
			t.Fatal("expected claims in context")
		}
		if claims.UserID != "user-1" || claims.Role != "manager" {
			t.Errorf("claims = %q/%q, expected user-1/manager", claims.UserID, claims.Role)
		}
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/v1/jobs", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, expected 200", rec.Code)
	}
}

func TestJWTMiddlewareRejects(t *testing.T) {
	handler := JWTMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc123"},
		{"garbage token", "Bearer not-a-jwt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/v1/jobs", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, expected 401", rec.Code)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	ok := false
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ok = true
		w.WriteHeader(http.StatusOK)
	})
	chain := JWTMiddleware(RequireRole("admin", "manager")(inner))

	token, err := GenerateToken("user-2", "staff", "Sam", "sam@example.com")
	if err != nil {
		t.Fatalf("GenerateToken() error: %v", err)
	}
	req := httptest.NewRequest("DELETE", "/api/v1/jobs/x", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	chain.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, expected 403 for staff", rec.Code)
	}
	if ok {
		t.Error("inner handler ran for a forbidden role")
	}

	token, err = GenerateToken("user-3", "manager", "Max", "max@example.com")
	if err != nil {
		t.Fatalf("GenerateToken() error: %v", err)
	}
	req = httptest.NewRequest("DELETE", "/api/v1/jobs/x", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	chain.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || !ok {
		t.Errorf("status = %d, expected manager to pass", rec.Code)
	}
}
