package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/akazakov/scorefeed/internal/apperrors"
	"github.com/akazakov/scorefeed/internal/handlers/middleware"
	"github.com/akazakov/scorefeed/internal/handlers/render"
	"github.com/akazakov/scorefeed/internal/logger"
	"github.com/akazakov/scorefeed/internal/models"
)

type userService interface {
	// Create user
	// Has to return apperrors.ErrUserAlreadyExists if username or email is taken
	CreateUser(ctx context.Context, username string, email *string, password string) (models.User, error)
}

type userResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     *string   `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Register new user. Anonymous: the only unauthenticated write endpoint
func handleRegister(users userService, l logger.Logger) http.Handler {
	type request struct {
		Username string  `json:"username" validate:"required,min=2,max=50"`
		Password string  `json:"password" validate:"required,min=8"`
		Email    *string `json:"email" validate:"omitempty,email"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		user, err := users.CreateUser(r.Context(), data.Username, data.Email, data.Password)
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrUserAlreadyExists):
				render.ServiceError(w, "Username or email already exists", http.StatusConflict)
			default:
				l.Error("user registration failed", "error", err.Error())
				render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		render.JSONWithStatus(w, userResponse{
			ID:        user.ID,
			Username:  user.Username,
			Email:     user.Email,
			CreatedAt: user.CreatedAt,
		}, http.StatusCreated)
	})
}

// Return the authenticated user profile
func handleUserMe() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := middleware.UserFromContext(r.Context())
		if !ok {
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, userResponse{
			ID:        user.ID,
			Username:  user.Username,
			Email:     user.Email,
			CreatedAt: user.CreatedAt,
		})
	})
}
