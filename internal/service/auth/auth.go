package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/akazakov/scorefeed/internal/apperrors"
	"github.com/akazakov/scorefeed/internal/models"
	"github.com/akazakov/scorefeed/internal/repository"
	"github.com/akazakov/scorefeed/internal/service/auth/tokenmanager"
)

const (
	defaultAccessHeaderName = "Authorization"
	defaultAccessAuthScheme = "Bearer"
)

// Valid bcrypt hash that no real password hashes to (the input was random)
// Compared against on the unknown-username login path so timing matches the
// known-username path
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Interface to create or compare user password hashes
type PasswordHasher interface {
	// Generate Hash from password
	Hash(password string) (string, error)

	// Compare known hashedPassword and user provided password
	// Must be protected against timing attacks
	Compare(hashedPassword string, password string) error
}

type Config struct {
	// Hasher to use during login
	// If not set than DefaultHasher is used
	Hasher PasswordHasher

	// Header and scheme to read access token from
	// If not set than defaults are used
	AccessHeaderName string
	AccessAuthScheme string
}

// Auth service: logs users in and resolves request identity
type AuthService struct {
	// Manager to issue and verify access tokens
	token *tokenmanager.TokenManager

	// Hasher to compare user passwords
	hasher PasswordHasher

	// Repository to access long term data
	userRepo repository.UserRepo

	accessHeaderName string
	accessAuthScheme string
}

func NewService(cfg Config, token *tokenmanager.TokenManager, userRepo repository.UserRepo) (*AuthService, error) {
	hasher := cfg.Hasher
	if hasher == nil {
		hasher = DefaultHasher
	}

	if cfg.AccessHeaderName == "" {
		cfg.AccessHeaderName = defaultAccessHeaderName
	}
	if cfg.AccessAuthScheme == "" {
		cfg.AccessAuthScheme = defaultAccessAuthScheme
	}

	if token == nil || userRepo == nil {
		return nil, errors.New("token manager and user repo must not be nil")
	}

	return &AuthService{
		token:            token,
		hasher:           hasher,
		userRepo:         userRepo,
		accessHeaderName: cfg.AccessHeaderName,
		accessAuthScheme: cfg.AccessAuthScheme,
	}, nil
}

// Login with username and password and get fresh access token
// Unknown username and wrong password both fail with
// apperrors.ErrInvalidCredentials
func (s *AuthService) Login(ctx context.Context, username string, password string) (models.IssuedToken, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			// Keep the timing profile of the found-user path
			_ = s.hasher.Compare(dummyHash, password)
			return models.IssuedToken{}, apperrors.ErrInvalidCredentials
		}
		return models.IssuedToken{}, fmt.Errorf("error while getting user. Err: %w", err)
	}

	if err := s.hasher.Compare(user.HashedPassword, password); err != nil {
		return models.IssuedToken{}, apperrors.ErrInvalidCredentials
	}

	issued, err := s.token.Issue(user.Username)
	if err != nil {
		return models.IssuedToken{}, fmt.Errorf("token could not be issued. Err: %w", err)
	}

	return issued, nil
}

// Auth resolves the request to an authenticated user
// Missing token, bad token and token for nonexistent user all fail with
// apperrors.ErrUnauthenticated; the wrapped reason stays available for logging
// Storage faults propagate as plain errors: they are not auth failures
func (s *AuthService) Auth(ctx context.Context, r *http.Request) (models.User, error) {
	access, err := s.readAccessToken(r)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", apperrors.ErrUnauthenticated, err)
	}

	subject, err := s.token.Parse(access)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", apperrors.ErrUnauthenticated, err)
	}

	user, err := s.userRepo.GetUserByUsername(ctx, subject)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			// Valid token for a user that no longer exists is still not authenticated
			return models.User{}, fmt.Errorf("%w: %w", apperrors.ErrUnauthenticated, err)
		}

		// Anything else is a storage fault, not an auth failure
		return models.User{}, fmt.Errorf("error while getting user. Err: %w", err)
	}

	return user, nil
}

// SetTokenToRequest sets the issued access token on the request auth header
// Useful in tests and clients: the header layout stays in one place
func (s *AuthService) SetTokenToRequest(r *http.Request, issued models.IssuedToken) {
	r.Header.Set(s.accessHeaderName, s.accessAuthScheme+" "+issued.Value)
}

// Read access token from the request auth header
func (s *AuthService) readAccessToken(r *http.Request) (string, error) {
	header := r.Header.Get(s.accessHeaderName)
	if header == "" {
		return "", errors.New("missing auth header")
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, s.accessAuthScheme) || token == "" {
		return "", errors.New("malformed auth header")
	}

	return token, nil
}
