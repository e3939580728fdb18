package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/teltechdev/teltech-backend/pkg/auth"
	"github.com/teltechdev/teltech-backend/pkg/config"
)

var jwtCfg = config.JWTConfig{
	Secret:            "test-secret",
	Issuer:            "teltech",
	ExpirationMinutes: 60,
}

func protected(t *testing.T) (http.Handler, *string) {
	t.Helper()
	var adminEmail string
	handler := AdminAuth(jwtCfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		adminEmail = AdminEmailFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))
	return handler, &adminEmail
}

func mint(t *testing.T, role auth.Role, at time.Time) string {
	t.Helper()
	token, err := auth.MintAccessToken(jwtCfg, at, auth.AccessTokenPayload{
		Email: "admin@example.com",
		Role:  role,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestAdminAuthAllowsValidToken(t *testing.T) {
	handler, adminEmail := protected(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", nil)
	req.Header.Set("Authorization", "Bearer "+mint(t, auth.RoleAdmin, time.Now()))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204 got %d", resp.Code)
	}
	if *adminEmail != "admin@example.com" {
		t.Fatalf("admin email not in context, got %q", *adminEmail)
	}
}

func TestAdminAuthMissingToken(t *testing.T) {
	handler, _ := protected(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAdminAuthExpiredToken(t *testing.T) {
	handler, _ := protected(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", nil)
	req.Header.Set("Authorization", "Bearer "+mint(t, auth.RoleAdmin, time.Now().Add(-2*time.Hour)))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAdminAuthShopperRoleForbidden(t *testing.T) {
	handler, _ := protected(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", nil)
	req.Header.Set("Authorization", "Bearer "+mint(t, auth.RoleShopper, time.Now()))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
}

func TestAdminAuthMalformedHeader(t *testing.T) {
	handler, _ := protected(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", nil)
	req.Header.Set("Authorization", "Token abc")

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}
