package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/akazakov/scorefeed/internal/apperrors"
	"github.com/akazakov/scorefeed/internal/handlers/render"
	"github.com/akazakov/scorefeed/internal/logger"
	"github.com/akazakov/scorefeed/internal/models"
)

type authService interface {
	// Login user with username and password
	// Has to return apperrors.ErrInvalidCredentials on unknown username or
	// wrong password, without telling which
	Login(ctx context.Context, username string, password string) (models.IssuedToken, error)
}

// Login with username and password, get bearer access token
func handleLogin(auth authService, l logger.Logger) http.Handler {
	type request struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}
	type response struct {
		AccessToken string    `json:"access_token"`
		TokenType   string    `json:"token_type"`
		ExpiresAt   time.Time `json:"expires_at"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		token, err := auth.Login(r.Context(), data.Username, data.Password)
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrInvalidCredentials):
				render.ServiceError(w, "Invalid username or password", http.StatusUnauthorized)
			default:
				l.Error("login failed", "error", err.Error())
				render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		render.JSON(w, response{
			AccessToken: token.Value,
			TokenType:   "bearer",
			ExpiresAt:   token.ExpiresAt,
		})
	})
}
