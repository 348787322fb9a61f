package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/akazakov/scorefeed/internal/apperrors"
	"github.com/akazakov/scorefeed/internal/handlers/render"
	"github.com/akazakov/scorefeed/internal/logger"
	"github.com/akazakov/scorefeed/internal/models"
)

type authService interface {
	// Resolve request to authenticated user
	// Has to return error wrapping apperrors.ErrUnauthenticated on any failure
	Auth(ctx context.Context, r *http.Request) (models.User, error)
}

// AuthMiddleware gates handlers behind the identity resolver
// Every auth failure renders the same 401 body: the caller can't tell a
// missing token from an expired one from a forged one, but the reason is
// logged. Non-auth errors (storage faults) render 500
func AuthMiddleware(as authService, l logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := as.Auth(r.Context(), r)
			if err != nil {
				// A storage fault during resolution is the server's problem,
				// not the caller's credentials
				if !errors.Is(err, apperrors.ErrUnauthenticated) {
					l.Error("identity resolution failed", "uri", r.RequestURI, "error", err.Error())
					render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
					return
				}

				l.Debug("request not authenticated", "uri", r.RequestURI, "reason", err.Error())
				render.ServiceError(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := NewContextWithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
