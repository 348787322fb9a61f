package user

import (
	"context"
	"fmt"

	"github.com/akazakov/scorefeed/internal/models"
	"github.com/akazakov/scorefeed/internal/repository"
	"github.com/akazakov/scorefeed/internal/service/auth"
)

type UserService struct {
	hasher   auth.PasswordHasher
	userRepo repository.UserRepo
}

func NewService(hasher auth.PasswordHasher, userRepo repository.UserRepo) *UserService {
	if hasher == nil {
		hasher = auth.DefaultHasher
	}

	return &UserService{
		hasher:   hasher,
		userRepo: userRepo,
	}
}

// Create user with hashed password
// Uniqueness is enforced by storage, not pre-checked here: a pre-check would
// race with concurrent registrations
func (s *UserService) CreateUser(ctx context.Context, username string, email *string, password string) (models.User, error) {
	var user models.User

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return user, fmt.Errorf("can't use this as password. Err: %w", err)
	}

	user, err = s.userRepo.CreateUser(ctx, username, email, hash)
	if err != nil {
		return user, fmt.Errorf("can't create user. Err: %w", err)
	}

	return user, nil
}
