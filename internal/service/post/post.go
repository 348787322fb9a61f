package post

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/akazakov/scorefeed/internal/models"
	"github.com/akazakov/scorefeed/internal/repository"
)

// Post service: posts, the feed and likes
// The acting user is always the authenticated one resolved by the auth
// middleware, never an id supplied in the request payload
type PostService struct {
	postRepo repository.PostRepo
	likeRepo repository.LikeRepo
}

func NewService(postRepo repository.PostRepo, likeRepo repository.LikeRepo) *PostService {
	return &PostService{
		postRepo: postRepo,
		likeRepo: likeRepo,
	}
}

func (s *PostService) CreatePost(ctx context.Context, user *models.User, course string, score int32, caption *string) (models.Post, error) {
	post, err := s.postRepo.CreatePost(ctx, user.ID, course, score, caption)
	if err != nil {
		return post, fmt.Errorf("can't create post. Err: %w", err)
	}

	return post, nil
}

func (s *PostService) ListPosts(ctx context.Context) ([]models.FeedPost, error) {
	posts, err := s.postRepo.ListPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("can't list posts. Err: %w", err)
	}

	return posts, nil
}

func (s *PostService) ListCourseStats(ctx context.Context) ([]models.CourseStats, error) {
	stats, err := s.postRepo.ListCourseStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("can't list course stats. Err: %w", err)
	}

	return stats, nil
}

func (s *PostService) Like(ctx context.Context, user *models.User, postID uuid.UUID) (models.Like, error) {
	like, err := s.likeRepo.AddLike(ctx, postID, user.ID)
	if err != nil {
		return like, fmt.Errorf("can't like post. Err: %w", err)
	}

	return like, nil
}

func (s *PostService) Unlike(ctx context.Context, user *models.User, postID uuid.UUID) error {
	if err := s.likeRepo.RemoveLike(ctx, postID, user.ID); err != nil {
		return fmt.Errorf("can't unlike post. Err: %w", err)
	}

	return nil
}
