package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akazakov/scorefeed/internal/apperrors"
	"github.com/akazakov/scorefeed/internal/logger"
	"github.com/akazakov/scorefeed/internal/models"
)

type authFunc func(ctx context.Context, r *http.Request) (models.User, error)

func (f authFunc) Auth(ctx context.Context, r *http.Request) (models.User, error) {
	return f(ctx, r)
}

func Test_AuthMiddleware(t *testing.T) {
	t.Parallel()

	user := models.User{ID: uuid.New(), Username: "alice"}

	// Next handler reports whether the user landed in the context
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok := UserFromContext(r.Context())
		require.True(t, ok, "user must be set in context")
		assert.Equal(t, user, got)
		w.WriteHeader(http.StatusTeapot)
	})

	t.Run("resolved user passes through", func(t *testing.T) {
		as := authFunc(func(ctx context.Context, r *http.Request) (models.User, error) {
			return user, nil
		})
		mw := AuthMiddleware(as, logger.NewNoOpLogger())

		w := httptest.NewRecorder()
		mw(next).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

		assert.Equal(t, http.StatusTeapot, w.Code, "next handler should be called")
	})

	t.Run("auth failure renders uniform 401", func(t *testing.T) {
		as := authFunc(func(ctx context.Context, r *http.Request) (models.User, error) {
			return models.User{}, fmt.Errorf("%w: %w", apperrors.ErrUnauthenticated, apperrors.ErrTokenExpired)
		})
		mw := AuthMiddleware(as, logger.NewNoOpLogger())

		w := httptest.NewRecorder()
		mw(next).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error": "service_error", "message": "Unauthorized"}`, w.Body.String(), "reason must not leak to the client")
	})

	t.Run("storage fault renders 500, not 401", func(t *testing.T) {
		as := authFunc(func(ctx context.Context, r *http.Request) (models.User, error) {
			return models.User{}, fmt.Errorf("error while getting user. Err: %w", errors.New("db connection refused"))
		})
		mw := AuthMiddleware(as, logger.NewNoOpLogger())

		w := httptest.NewRecorder()
		mw(next).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code, "db fault is a server error, not bad credentials")
		assert.JSONEq(t, `{"error": "service_error", "message": "Internal server error"}`, w.Body.String())
	})
}
