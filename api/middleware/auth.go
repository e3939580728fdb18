package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/teltechdev/teltech-backend/api/responses"
	"github.com/teltechdev/teltech-backend/pkg/auth"
	"github.com/teltechdev/teltech-backend/pkg/config"
	pkgerrors "github.com/teltechdev/teltech-backend/pkg/errors"
	"github.com/teltechdev/teltech-backend/pkg/logger"
)

type ctxKeyAdminEmail struct{}

// AdminAuth gates catalog mutations behind a valid admin access token.
func AdminAuth(jwtCfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing access token"))
				return
			}

			claims, err := auth.ParseAccessToken(jwtCfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid access token"))
				return
			}
			if claims.Role != auth.RoleAdmin {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "admin access required"))
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyAdminEmail{}, claims.Email)
			if logg != nil {
				ctx = logg.WithField(ctx, "admin", claims.Email)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminEmailFromContext returns the authenticated admin email, if any.
func AdminEmailFromContext(ctx context.Context) string {
	if email, ok := ctx.Value(ctxKeyAdminEmail{}).(string); ok {
		return email
	}
	return ""
}

func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
