package e2e

import (
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stretchr/testify/require"

	"github.com/akazakov/scorefeed/internal/handlers"
	"github.com/akazakov/scorefeed/internal/logger"
	"github.com/akazakov/scorefeed/internal/repository/postgres"
	"github.com/akazakov/scorefeed/internal/service/auth"
	"github.com/akazakov/scorefeed/internal/service/auth/tokenmanager"
	"github.com/akazakov/scorefeed/internal/service/post"
	"github.com/akazakov/scorefeed/internal/service/user"
	"github.com/akazakov/scorefeed/internal/testutil"
)

type Services struct {
	AuthService *auth.AuthService
	UserService *user.UserService
	PostService *post.PostService
}

// Create db transaction and run server with that connection (one connection cause one transaction)
// The created transaction passed to inner function: so, you can safely use testutil.WithTx with it
func ServeWithTx(dbpool *pgxpool.Pool, t *testing.T, fn func(tx pgx.Tx, srvURL string, services Services)) {
	testutil.WithTx(dbpool, t, func(tx pgx.Tx) {
		// Initialize repositories
		userRepo := &postgres.UserRepo{DB: tx}
		postRepo := &postgres.PostRepo{DB: tx}
		likeRepo := &postgres.LikeRepo{DB: tx}

		// Initialize services
		tokenManager, err := tokenmanager.New(tokenmanager.Config{SecretKey: "test-secret"})
		require.NoError(t, err, "token manager should be created without errors")

		as, err := auth.NewService(auth.Config{}, tokenManager, userRepo)
		require.NoError(t, err, "auth service starting error", err)

		us := user.NewService(auth.DefaultHasher, userRepo)
		ps := post.NewService(postRepo, likeRepo)

		// Complete all together as router
		router := handlers.NewRouter(as, us, ps, logger.NewNoOpLogger())

		// Run http server with the router in transaction
		srv := httptest.NewServer(router)
		defer srv.Close()

		fn(tx, srv.URL, Services{
			AuthService: as,
			UserService: us,
			PostService: ps,
		})
	})
}
