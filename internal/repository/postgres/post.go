package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/akazakov/scorefeed/internal/apperrors"
	"github.com/akazakov/scorefeed/internal/models"
)

type PostRepo struct {
	DB DBTX
}

const createPost = `-- name: CreatePost
INSERT INTO posts (id, created_at, user_id, course, score, caption)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, created_at, user_id, course, score, caption
`

func (r *PostRepo) CreatePost(ctx context.Context, userID uuid.UUID, course string, score int32, caption *string) (models.Post, error) {
	// created_at is set here and not by column default: now() is transaction
	// scoped in postgres and would tie for posts created in one transaction
	rows, _ := r.DB.Query(ctx, createPost, uuid.New(), time.Now(), userID, course, score, caption)
	post, err := pgx.CollectOneRow(rows, rowToPost)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return post, apperrors.ErrUserNotFound
		}

		return post, fmt.Errorf("db error: %w", err)
	}

	return post, nil
}

const getPostByID = `-- name: getPostByID
SELECT id, created_at, user_id, course, score, caption FROM posts
WHERE id = $1
`

func (r *PostRepo) GetPostByID(ctx context.Context, postID uuid.UUID) (models.Post, error) {
	rows, _ := r.DB.Query(ctx, getPostByID, postID)
	post, err := pgx.CollectOneRow(rows, rowToPost)

	switch {
	case err == nil:
		return post, nil
	case errors.Is(err, pgx.ErrNoRows):
		return post, apperrors.ErrPostNotFound
	default:
		return post, fmt.Errorf("db error: %w", err)
	}
}

const listPosts = `-- name: listPosts
SELECT p.id, p.created_at, p.user_id, p.course, p.score, p.caption, u.username, count(l.id)
FROM posts p
JOIN users u ON u.id = p.user_id
LEFT JOIN likes l ON l.post_id = p.id
GROUP BY p.id, u.username
ORDER BY p.created_at DESC, p.id
`

func (r *PostRepo) ListPosts(ctx context.Context) ([]models.FeedPost, error) {
	rows, _ := r.DB.Query(ctx, listPosts)
	posts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.FeedPost, error) {
		var p models.FeedPost
		err := row.Scan(&p.ID, &p.CreatedAt, &p.UserID, &p.Course, &p.Score, &p.Caption, &p.Author, &p.Likes)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return posts, nil
}

const listCourseStats = `-- name: listCourseStats
SELECT course, count(*), round(avg(score), 2)
FROM posts
GROUP BY course
ORDER BY course
`

func (r *PostRepo) ListCourseStats(ctx context.Context) ([]models.CourseStats, error) {
	rows, _ := r.DB.Query(ctx, listCourseStats)
	stats, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.CourseStats, error) {
		var s models.CourseStats
		err := row.Scan(&s.Course, &s.Rounds, &s.AverageScore)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return stats, nil
}

func rowToPost(row pgx.CollectableRow) (models.Post, error) {
	var p models.Post
	err := row.Scan(&p.ID, &p.CreatedAt, &p.UserID, &p.Course, &p.Score, &p.Caption)
	return p, err
}
