package accounts

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/teltechdev/teltech-backend/pkg/auth"
	"github.com/teltechdev/teltech-backend/pkg/config"
	"github.com/teltechdev/teltech-backend/pkg/db/models"
	pkgerrors "github.com/teltechdev/teltech-backend/pkg/errors"
	"github.com/teltechdev/teltech-backend/pkg/security"
)

var testJWT = config.JWTConfig{
	Secret:            "test-secret",
	Issuer:            "teltech",
	ExpirationMinutes: 60,
}

var testPassword = config.PasswordConfig{
	ArgonMemoryKB:    8192,
	ArgonTime:        1,
	ArgonParallelism: 1,
	ArgonSaltLen:     16,
	ArgonKeyLen:      32,
}

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.AdminAccount{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewRepository(conn)
}

func seedAdmin(t *testing.T, repo *Repository, email, password string) {
	t.Helper()
	hash, err := security.HashPassword(password, testPassword)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if err := repo.Create(context.Background(), &models.AdminAccount{Email: email, PasswordHash: hash}); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
}

func TestLoginSuccess(t *testing.T) {
	repo := newTestRepo(t)
	seedAdmin(t, repo, "admin@example.com", "hunter22")

	svc, err := NewService(repo, testJWT)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	result, err := svc.Login(context.Background(), "Admin@Example.com", "hunter22")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Email != "admin@example.com" {
		t.Fatalf("unexpected email: %s", result.Email)
	}

	claims, err := auth.ParseAccessToken(testJWT, result.AccessToken)
	if err != nil {
		t.Fatalf("parse minted token: %v", err)
	}
	if claims.Role != auth.RoleAdmin {
		t.Fatalf("expected admin role, got %s", claims.Role)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newTestRepo(t)
	seedAdmin(t, repo, "admin@example.com", "hunter22")

	svc, _ := NewService(repo, testJWT)

	_, err := svc.Login(context.Background(), "admin@example.com", "wrong")
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginUnknownAccountIsUniform(t *testing.T) {
	repo := newTestRepo(t)
	svc, _ := NewService(repo, testJWT)

	_, err := svc.Login(context.Background(), "ghost@example.com", "whatever")
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if appErr.Message() != "invalid credentials" {
		t.Fatalf("unknown account must not be distinguishable, got %q", appErr.Message())
	}
}

func TestLoginMissingFields(t *testing.T) {
	repo := newTestRepo(t)
	svc, _ := NewService(repo, testJWT)

	_, err := svc.Login(context.Background(), "", "")
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSeedDevAdminIdempotent(t *testing.T) {
	repo := newTestRepo(t)
	cfg := config.AdminConfig{Email: "admin@example.com", Password: "hunter22"}

	if err := SeedDevAdmin(context.Background(), repo, cfg, testPassword, nil); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if err := SeedDevAdmin(context.Background(), repo, cfg, testPassword, nil); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	account, err := repo.FindByEmail(context.Background(), "admin@example.com")
	if err != nil {
		t.Fatalf("find seeded admin: %v", err)
	}
	if account.Email != "admin@example.com" {
		t.Fatalf("unexpected account: %+v", account)
	}
}
