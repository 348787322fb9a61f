package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/akazakov/scorefeed/internal/models"
)

// User repository interface
type UserRepo interface {
	// Create user
	// If user with same username or email exists has to return apperrors.ErrUserAlreadyExists
	CreateUser(ctx context.Context, username string, email *string, hashedPassword string) (models.User, error)

	// Get user by it's id or username
	// If user not found must return apperrors.ErrUserNotFound
	GetUserByID(ctx context.Context, userID uuid.UUID) (models.User, error)
	GetUserByUsername(ctx context.Context, username string) (models.User, error)
}

// Post repository interface
type PostRepo interface {
	// Create post owned by userID
	// If the user not exists must return apperrors.ErrUserNotFound
	CreatePost(ctx context.Context, userID uuid.UUID, course string, score int32, caption *string) (models.Post, error)

	// Get post by id
	// If post not found must return apperrors.ErrPostNotFound
	GetPostByID(ctx context.Context, postID uuid.UUID) (models.Post, error)

	// List posts newest first with author username and like count
	ListPosts(ctx context.Context) ([]models.FeedPost, error)

	// Aggregate posted scores per course
	ListCourseStats(ctx context.Context) ([]models.CourseStats, error)
}

// Like repository interface
type LikeRepo interface {
	// Add like of userID to postID
	// If the pair (postID, userID) exists already must return apperrors.ErrLikeAlreadyExists
	// If the post not exists must return apperrors.ErrPostNotFound
	AddLike(ctx context.Context, postID uuid.UUID, userID uuid.UUID) (models.Like, error)

	// Remove like of userID from postID
	// If no such like exists must return apperrors.ErrLikeNotFound
	RemoveLike(ctx context.Context, postID uuid.UUID, userID uuid.UUID) error
}

// Storage combines all repositories backed by the same database
type Storage interface {
	User() UserRepo
	Post() PostRepo
	Like() LikeRepo
}
