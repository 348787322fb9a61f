package apperrors

import (
	"errors"
)

var (
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUserNotFound      = errors.New("user not found")

	// Login failed: unknown username or wrong password
	// Both cases collapse to this error so callers can't tell which part was wrong
	ErrInvalidCredentials = errors.New("invalid username or password")

	// Request identity could not be resolved: missing, malformed, expired
	// or forged token, or a token for a user that no longer exists
	ErrUnauthenticated = errors.New("not authenticated")

	ErrTokenExpired = errors.New("token is expired")
	ErrTokenInvalid = errors.New("token is invalid")

	ErrPostNotFound = errors.New("post not found")

	ErrLikeAlreadyExists = errors.New("post already liked by this user")
	ErrLikeNotFound      = errors.New("like not found")
)
