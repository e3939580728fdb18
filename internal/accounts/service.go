package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/teltechdev/teltech-backend/pkg/auth"
	"github.com/teltechdev/teltech-backend/pkg/config"
	pkgerrors "github.com/teltechdev/teltech-backend/pkg/errors"
	"github.com/teltechdev/teltech-backend/pkg/db/models"
	"github.com/teltechdev/teltech-backend/pkg/logger"
	"github.com/teltechdev/teltech-backend/pkg/security"
	"gorm.io/gorm"
)

// Service authenticates dashboard admins and issues access tokens.
type Service interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

// LoginResult carries the minted token back to the HTTP layer.
type LoginResult struct {
	Email       string `json:"email"`
	AccessToken string `json:"access_token"`
}

type service struct {
	repo *Repository
	jwt  config.JWTConfig
	now  func() time.Time
}

// NewService constructs the accounts service.
func NewService(repo *Repository, jwtCfg config.JWTConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("accounts repository required")
	}
	return &service{repo: repo, jwt: jwtCfg, now: time.Now}, nil
}

// Login verifies the credentials against the stored Argon2id hash and mints
// an admin access token. Failures are uniformly unauthorized so the response
// does not reveal whether the account exists.
func (s *service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email and password are required")
	}

	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load account")
	}

	ok, err := security.VerifyPassword(password, account.PasswordHash)
	if err != nil || !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	token, err := auth.MintAccessToken(s.jwt, s.now(), auth.AccessTokenPayload{
		Email: account.Email,
		Role:  auth.RoleAdmin,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}

	_ = s.repo.TouchLastLogin(ctx, account.Email, s.now())

	return &LoginResult{Email: account.Email, AccessToken: token}, nil
}

// SeedDevAdmin creates the configured admin account when it does not exist
// yet. Dev convenience only; the caller gates this on the environment.
func SeedDevAdmin(ctx context.Context, repo *Repository, adminCfg config.AdminConfig, pwCfg config.PasswordConfig, logg *logger.Logger) error {
	email := strings.ToLower(strings.TrimSpace(adminCfg.Email))
	if email == "" || adminCfg.Password == "" {
		return nil
	}

	if _, err := repo.FindByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := security.HashPassword(adminCfg.Password, pwCfg)
	if err != nil {
		return err
	}
	if err := repo.Create(ctx, &models.AdminAccount{Email: email, PasswordHash: hash}); err != nil {
		return err
	}
	if logg != nil {
		logg.Info(logg.WithField(ctx, "email", email), "seeded dev admin account")
	}
	return nil
}
