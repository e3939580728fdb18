package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/teltechdev/teltech-backend/internal/accounts"
	pkgerrors "github.com/teltechdev/teltech-backend/pkg/errors"
)

type stubAccounts struct {
	result *accounts.LoginResult
	err    error
}

func (s stubAccounts) Login(ctx context.Context, email, password string) (*accounts.LoginResult, error) {
	return s.result, s.err
}

func loginReq(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestAdminLoginSuccess(t *testing.T) {
	stub := stubAccounts{result: &accounts.LoginResult{Email: "admin@example.com", AccessToken: "jwt-abc"}}
	handler := AdminLogin(stub, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, loginReq(`{"email":"admin@example.com","password":"hunter22"}`))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data accounts.LoginResult `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.AccessToken != "jwt-abc" {
		t.Fatalf("unexpected token %q", envelope.Data.AccessToken)
	}
}

func TestAdminLoginBadCredentials(t *testing.T) {
	stub := stubAccounts{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")}
	handler := AdminLogin(stub, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, loginReq(`{"email":"admin@example.com","password":"wrong"}`))

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAdminLoginInvalidEmail(t *testing.T) {
	handler := AdminLogin(stubAccounts{}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, loginReq(`{"email":"not-an-email","password":"hunter22"}`))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
