package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/akazakov/scorefeed/internal/apperrors"
	"github.com/akazakov/scorefeed/internal/handlers/middleware"
	"github.com/akazakov/scorefeed/internal/handlers/render"
	"github.com/akazakov/scorefeed/internal/logger"
	"github.com/akazakov/scorefeed/internal/models"
)

type postService interface {
	CreatePost(ctx context.Context, user *models.User, course string, score int32, caption *string) (models.Post, error)
	ListPosts(ctx context.Context) ([]models.FeedPost, error)
	ListCourseStats(ctx context.Context) ([]models.CourseStats, error)

	// Like has to return apperrors.ErrLikeAlreadyExists on repeated like
	// and apperrors.ErrPostNotFound if the post not exists
	Like(ctx context.Context, user *models.User, postID uuid.UUID) (models.Like, error)

	// Unlike has to return apperrors.ErrLikeNotFound if there is nothing to remove
	Unlike(ctx context.Context, user *models.User, postID uuid.UUID) error
}

type postResponse struct {
	ID        uuid.UUID `json:"id"`
	Course    string    `json:"course"`
	Score     int32     `json:"score"`
	Caption   *string   `json:"caption"`
	CreatedAt time.Time `json:"created_at"`
}

// Post a course score. The owner is always the authenticated user
func handleCreatePost(posts postService, l logger.Logger) http.Handler {
	type request struct {
		Course  string  `json:"course" validate:"required,max=200"`
		Score   int32   `json:"score" validate:"required,min=1,max=300"`
		Caption *string `json:"caption" validate:"omitempty,max=500"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := middleware.UserFromContext(r.Context())
		if !ok {
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		post, err := posts.CreatePost(r.Context(), &user, data.Course, data.Score, data.Caption)
		if err != nil {
			l.Error("post creation failed", "error", err.Error())
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSONWithStatus(w, postResponse{
			ID:        post.ID,
			Course:    post.Course,
			Score:     post.Score,
			Caption:   post.Caption,
			CreatedAt: post.CreatedAt,
		}, http.StatusCreated)
	})
}

// The feed: all posts newest first with author and like count
func handleListPosts(posts postService, l logger.Logger) http.Handler {
	type response struct {
		postResponse
		Author string `json:"author"`
		Likes  int64  `json:"likes"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		feed, err := posts.ListPosts(r.Context())
		if err != nil {
			l.Error("listing posts failed", "error", err.Error())
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		res := make([]response, 0, len(feed))
		for _, p := range feed {
			res = append(res, response{
				postResponse: postResponse{
					ID:        p.ID,
					Course:    p.Course,
					Score:     p.Score,
					Caption:   p.Caption,
					CreatedAt: p.CreatedAt,
				},
				Author: p.Author,
				Likes:  p.Likes,
			})
		}

		render.JSON(w, res)
	})
}

// Per course score aggregates
func handleListCourses(posts postService, l logger.Logger) http.Handler {
	type response struct {
		Course       string          `json:"course"`
		Rounds       int64           `json:"rounds"`
		AverageScore decimal.Decimal `json:"average_score"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stats, err := posts.ListCourseStats(r.Context())
		if err != nil {
			l.Error("listing course stats failed", "error", err.Error())
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		res := make([]response, 0, len(stats))
		for _, s := range stats {
			res = append(res, response{
				Course:       s.Course,
				Rounds:       s.Rounds,
				AverageScore: s.AverageScore,
			})
		}

		render.JSON(w, res)
	})
}

type likeRequest struct {
	PostID uuid.UUID `json:"post_id" validate:"required"`
}

// Like a post as the authenticated user
func handleLike(posts postService, l logger.Logger) http.Handler {
	type response struct {
		ID        uuid.UUID `json:"id"`
		PostID    uuid.UUID `json:"post_id"`
		UserID    uuid.UUID `json:"user_id"`
		CreatedAt time.Time `json:"created_at"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := middleware.UserFromContext(r.Context())
		if !ok {
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		data, err := render.BindAndValidate[likeRequest](w, r)
		if err != nil {
			return
		}

		like, err := posts.Like(r.Context(), &user, data.PostID)
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrLikeAlreadyExists):
				render.ServiceError(w, "Post already liked", http.StatusConflict)
			case errors.Is(err, apperrors.ErrPostNotFound):
				render.ServiceError(w, "Post not found", http.StatusNotFound)
			default:
				l.Error("like failed", "error", err.Error())
				render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		render.JSONWithStatus(w, response{
			ID:        like.ID,
			PostID:    like.PostID,
			UserID:    like.UserID,
			CreatedAt: like.CreatedAt,
		}, http.StatusCreated)
	})
}

// Remove the authenticated user's like from a post
func handleUnlike(posts postService, l logger.Logger) http.Handler {
	type response struct {
		Message string `json:"message"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := middleware.UserFromContext(r.Context())
		if !ok {
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		data, err := render.BindAndValidate[likeRequest](w, r)
		if err != nil {
			return
		}

		err = posts.Unlike(r.Context(), &user, data.PostID)
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrLikeNotFound):
				render.ServiceError(w, "Like not found", http.StatusNotFound)
			default:
				l.Error("unlike failed", "error", err.Error())
				render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		render.JSON(w, response{Message: "Like removed"})
	})
}
