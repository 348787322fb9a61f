package handlers

import (
	"context"
	"net/http"

	"github.com/akazakov/scorefeed/internal/handlers/middleware"
	"github.com/akazakov/scorefeed/internal/logger"
	"github.com/akazakov/scorefeed/internal/models"
)

// chain applies middlewares in the given order: m1(m2(...(h)))
func chain(h http.Handler, mds ...func(next http.Handler) http.Handler) http.Handler {
	for i := len(mds) - 1; i >= 0; i-- {
		h = mds[i](h)
	}
	return h
}

// Auth service as the router needs it: login plus identity resolution
type routerAuthService interface {
	authService

	// Resolve request to authenticated user
	// Has to return error wrapping apperrors.ErrUnauthenticated on any failure
	Auth(ctx context.Context, r *http.Request) (models.User, error)
}

func NewRouter(
	auth routerAuthService,
	users userService,
	posts postService,
	l logger.Logger,
) http.Handler {
	authMiddleware := middleware.AuthMiddleware(auth, l)
	withAuth := func(h http.Handler) http.Handler {
		return authMiddleware(h)
	}

	mux := http.NewServeMux()

	// Anonymous endpoints
	mux.Handle("POST /user", handleRegister(users, l))
	mux.Handle("POST /login", handleLogin(auth, l))
	mux.Handle("GET /posts", handleListPosts(posts, l))
	mux.Handle("GET /courses", handleListCourses(posts, l))

	// Protected endpoints: the acting user is always the resolved identity
	mux.Handle("GET /me", withAuth(handleUserMe()))
	mux.Handle("POST /post", withAuth(handleCreatePost(posts, l)))
	mux.Handle("POST /like", withAuth(handleLike(posts, l)))
	mux.Handle("POST /unlike", withAuth(handleUnlike(posts, l)))

	return chain(mux,
		middleware.LoggerMiddleware(l),
	)
}
