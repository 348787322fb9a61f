package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/akazakov/scorefeed/internal/apperrors"
	"github.com/akazakov/scorefeed/internal/models"
)

type LikeRepo struct {
	DB DBTX
}

const addLike = `-- name: AddLike
INSERT INTO likes (id, post_id, user_id)
VALUES ($1, $2, $3)
RETURNING id, created_at, post_id, user_id
`

// Add like relying on db constraints
// Unique violation means the pair exists already, fk violation means no such post
func (r *LikeRepo) AddLike(ctx context.Context, postID uuid.UUID, userID uuid.UUID) (models.Like, error) {
	rows, _ := r.DB.Query(ctx, addLike, uuid.New(), postID, userID)
	like, err := pgx.CollectOneRow(rows, rowToLike)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgerrcode.UniqueViolation:
				return like, apperrors.ErrLikeAlreadyExists
			case pgerrcode.ForeignKeyViolation:
				return like, apperrors.ErrPostNotFound
			}
		}

		return like, fmt.Errorf("db error: %w", err)
	}

	return like, nil
}

const removeLike = `-- name: RemoveLike
DELETE FROM likes
WHERE post_id = $1 AND user_id = $2
`

// Remove the concrete (post, user) row
// Zero affected rows means there was nothing to remove
func (r *LikeRepo) RemoveLike(ctx context.Context, postID uuid.UUID, userID uuid.UUID) error {
	tag, err := r.DB.Exec(ctx, removeLike, postID, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperrors.ErrLikeNotFound
	}

	return nil
}

func rowToLike(row pgx.CollectableRow) (models.Like, error) {
	var l models.Like
	err := row.Scan(&l.ID, &l.CreatedAt, &l.PostID, &l.UserID)
	return l, err
}
