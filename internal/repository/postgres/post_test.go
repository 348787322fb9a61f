package postgres

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akazakov/scorefeed/internal/apperrors"
	"github.com/akazakov/scorefeed/internal/models"
	"github.com/akazakov/scorefeed/internal/testutil"
)

func Test_PostRepo(t *testing.T) {
	t.Parallel()

	pg := testutil.StartPostgresContainer(t)
	t.Cleanup(pg.Terminate)

	createUser := func(t *testing.T, tx pgx.Tx, username string) models.User {
		user, err := (&UserRepo{DB: tx}).CreateUser(t.Context(), username, nil, "hash")
		require.NoError(t, err)
		return user
	}

	t.Run("create post ok", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			r := PostRepo{DB: tx}
			user := createUser(t, tx, "golfer")
			caption := "eagle on 18"

			post, err := r.CreatePost(t.Context(), user.ID, "Shuttle Meadow", 65, &caption)

			require.NoError(t, err)
			assert.Equal(t, user.ID, post.UserID)
			assert.Equal(t, "Shuttle Meadow", post.Course)
			assert.Equal(t, int32(65), post.Score)
			require.NotNil(t, post.Caption)
			assert.Equal(t, caption, *post.Caption)
			assert.WithinDuration(t, time.Now(), post.CreatedAt, time.Second)
		})
	})

	t.Run("create post without caption ok", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			r := PostRepo{DB: tx}
			user := createUser(t, tx, "golfer")

			post, err := r.CreatePost(t.Context(), user.ID, "Shuttle Meadow", 72, nil)

			require.NoError(t, err)
			assert.Nil(t, post.Caption)
		})
	})

	t.Run("create post for unknown user fails", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			r := PostRepo{DB: tx}

			_, err := r.CreatePost(t.Context(), uuid.New(), "Shuttle Meadow", 72, nil)

			require.Error(t, err)
			require.ErrorIs(t, err, apperrors.ErrUserNotFound, "should return well known error")
		})
	})

	t.Run("get post by id", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			r := PostRepo{DB: tx}
			user := createUser(t, tx, "golfer")
			created, err := r.CreatePost(t.Context(), user.ID, "Shuttle Meadow", 65, nil)
			require.NoError(t, err)

			got, err := r.GetPostByID(t.Context(), created.ID)

			require.NoError(t, err)
			assert.Equal(t, created.ID, got.ID)
			assert.Equal(t, created.Course, got.Course)
			assert.Equal(t, created.Score, got.Score)
		})
	})

	t.Run("get post by id not found", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			r := PostRepo{DB: tx}

			_, err := r.GetPostByID(t.Context(), uuid.New())

			require.Error(t, err)
			require.ErrorIs(t, err, apperrors.ErrPostNotFound, "should return well known error")
		})
	})

	t.Run("list posts newest first with likes and author", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			r := PostRepo{DB: tx}
			likes := LikeRepo{DB: tx}
			alice := createUser(t, tx, "alice")
			bob := createUser(t, tx, "bob")

			first, err := r.CreatePost(t.Context(), alice.ID, "Shuttle Meadow", 65, nil)
			require.NoError(t, err)
			second, err := r.CreatePost(t.Context(), bob.ID, "Keney Park", 80, nil)
			require.NoError(t, err)

			_, err = likes.AddLike(t.Context(), first.ID, bob.ID)
			require.NoError(t, err)
			_, err = likes.AddLike(t.Context(), first.ID, alice.ID)
			require.NoError(t, err)

			feed, err := r.ListPosts(t.Context())

			require.NoError(t, err)
			require.Len(t, feed, 2)

			assert.Equal(t, second.ID, feed[0].ID, "newest post should come first")
			assert.Equal(t, "bob", feed[0].Author)
			assert.Equal(t, int64(0), feed[0].Likes)

			assert.Equal(t, first.ID, feed[1].ID)
			assert.Equal(t, "alice", feed[1].Author)
			assert.Equal(t, int64(2), feed[1].Likes)
		})
	})

	t.Run("list course stats", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			r := PostRepo{DB: tx}
			user := createUser(t, tx, "golfer")

			for _, p := range []struct {
				course string
				score  int32
			}{
				{"Shuttle Meadow", 65},
				{"Shuttle Meadow", 70},
				{"Keney Park", 81},
			} {
				_, err := r.CreatePost(t.Context(), user.ID, p.course, p.score, nil)
				require.NoError(t, err)
			}

			stats, err := r.ListCourseStats(t.Context())

			require.NoError(t, err)
			require.Len(t, stats, 2)

			assert.Equal(t, "Keney Park", stats[0].Course)
			assert.Equal(t, int64(1), stats[0].Rounds)
			assert.True(t, decimal.NewFromInt(81).Equal(stats[0].AverageScore), "got %s", stats[0].AverageScore)

			assert.Equal(t, "Shuttle Meadow", stats[1].Course)
			assert.Equal(t, int64(2), stats[1].Rounds)
			assert.True(t, decimal.RequireFromString("67.5").Equal(stats[1].AverageScore), "got %s", stats[1].AverageScore)
		})
	})
}
