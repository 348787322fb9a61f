package user

import (
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/akazakov/scorefeed/internal/apperrors"
	"github.com/akazakov/scorefeed/internal/repository/postgres"
	"github.com/akazakov/scorefeed/internal/service/auth"
	"github.com/akazakov/scorefeed/internal/testutil"
)

func Test_UserService(t *testing.T) {
	t.Parallel()

	pg := testutil.StartPostgresContainer(t)
	t.Cleanup(pg.Terminate)

	withTx := func(t *testing.T, fn func(s *UserService)) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			fn(NewService(nil, &postgres.UserRepo{DB: tx}))
		})
	}

	t.Run("create user ok", func(t *testing.T) {
		withTx(t, func(s *UserService) {
			email := "alice@example.com"

			user, err := s.CreateUser(t.Context(), "alice", &email, "pw1secret")

			require.NoError(t, err)
			require.Equal(t, "alice", user.Username)
			require.NotNil(t, user.Email)
			require.Equal(t, email, *user.Email)
		})
	})

	t.Run("password is stored hashed", func(t *testing.T) {
		withTx(t, func(s *UserService) {
			user, err := s.CreateUser(t.Context(), "alice", nil, "pw1secret")

			require.NoError(t, err)
			require.NotEqual(t, "pw1secret", user.HashedPassword, "plaintext must never be stored")
			require.NoError(t, auth.DefaultHasher.Compare(user.HashedPassword, "pw1secret"), "stored hash should verify against the password")
		})
	})

	t.Run("duplicate username fails", func(t *testing.T) {
		withTx(t, func(s *UserService) {
			_, err := s.CreateUser(t.Context(), "alice", nil, "pw1secret")
			require.NoError(t, err)

			_, err = s.CreateUser(t.Context(), "alice", nil, "other-password")

			require.Error(t, err)
			require.ErrorIs(t, err, apperrors.ErrUserAlreadyExists)
		})
	})
}
