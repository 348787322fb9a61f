package tokenmanager

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/akazakov/scorefeed/internal/apperrors"
	"github.com/akazakov/scorefeed/internal/models"
)

const (
	defaultAccessTokenTTL = 60 * time.Minute
	defaultSigningMethod  = "HS256"
)

type AccessTokenClaims struct {
	jwt.RegisteredClaims
}

// Token manager config with sensible defaults
type Config struct {
	// Secret key to sign access tokens
	// Required to be set
	SecretKey string

	// JWT MAC (Message Authentication Code) algorithm
	// If not set than default is used
	Alg string

	// Access token lifetime
	// If not set than default is used
	AccessTTL time.Duration
}

// TokenManager issues and verifies signed access tokens
// Tokens are stateless: nothing is persisted, every request verifies the
// signature and expiry from scratch
type TokenManager struct {
	// Secret key to sign access tokens
	key string

	// JWT MAC (Message Authentication Code) algorithm
	alg jwt.SigningMethod

	// Access token lifetime
	accessTTL time.Duration
}

func New(cfg Config) (*TokenManager, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("secret key must not be empty")
	}

	if cfg.Alg == "" {
		cfg.Alg = defaultSigningMethod
	}

	if cfg.AccessTTL == 0 {
		cfg.AccessTTL = defaultAccessTokenTTL
	}

	// GetSigningMethod returns nil for names it doesn't know
	// Fail at startup instead of panicking on the first issued token
	alg := jwt.GetSigningMethod(cfg.Alg)
	if alg == nil {
		return nil, fmt.Errorf("unknown signing method: %q", cfg.Alg)
	}

	return &TokenManager{
		key:       cfg.SecretKey,
		alg:       alg,
		accessTTL: cfg.AccessTTL,
	}, nil
}

// Issue signed access token with the username as subject
func (m *TokenManager) Issue(username string) (models.IssuedToken, error) {
	now := time.Now().Truncate(time.Second)
	expiresAt := now.Add(m.accessTTL)

	token := jwt.NewWithClaims(
		m.alg,
		AccessTokenClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				ID:        uuid.NewString(),
				Subject:   username,
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(expiresAt),
			},
		},
	)

	access, err := token.SignedString([]byte(m.key))
	if err != nil {
		return models.IssuedToken{}, fmt.Errorf("error while signing access token. Err: %w", err)
	}

	return models.IssuedToken{Value: access, ExpiresAt: expiresAt}, nil
}

// Parse and validate access token, return the subject username
// Fails with apperrors.ErrTokenExpired on expired token and with
// apperrors.ErrTokenInvalid on everything else: malformed input, wrong
// signature, unexpected signing method. Attacker controlled input never
// leads to a panic here
func (m *TokenManager) Parse(access string) (subject string, err error) {
	claims := &AccessTokenClaims{}

	_, err = jwt.ParseWithClaims(
		access,
		claims,
		func(t *jwt.Token) (any, error) { return []byte(m.key), nil },
		jwt.WithValidMethods([]string{m.alg.Alg()}),
		jwt.WithExpirationRequired(),
	)

	switch {
	case err == nil:
		return claims.Subject, nil
	case errors.Is(err, jwt.ErrTokenExpired):
		return "", fmt.Errorf("%w: %w", apperrors.ErrTokenExpired, err)
	default:
		return "", fmt.Errorf("%w: %w", apperrors.ErrTokenInvalid, err)
	}
}
