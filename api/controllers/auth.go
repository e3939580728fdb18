package controllers

import (
	"net/http"

	"github.com/teltechdev/teltech-backend/api/middleware"
	"github.com/teltechdev/teltech-backend/api/responses"
	"github.com/teltechdev/teltech-backend/api/validators"
	"github.com/teltechdev/teltech-backend/internal/accounts"
	pkgerrors "github.com/teltechdev/teltech-backend/pkg/errors"
	"github.com/teltechdev/teltech-backend/pkg/logger"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AdminLogin verifies credentials and hands back an access token for the
// dashboard.
func AdminLogin(svc accounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "accounts service unavailable"))
			return
		}

		var body loginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), body.Email, body.Password)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// AdminLogout acknowledges a sign-out. Access tokens are stateless, so the
// client discards its copy; the handler confirms which account signed out.
func AdminLogout(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := middleware.AdminEmailFromContext(r.Context())
		if logg != nil {
			logg.Info(logg.WithField(r.Context(), "admin", email), "admin logged out")
		}
		responses.WriteSuccess(w, map[string]string{"logged_out": email})
	}
}
