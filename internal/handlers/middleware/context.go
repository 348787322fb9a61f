package middleware

import (
	"context"

	"github.com/akazakov/scorefeed/internal/models"
)

type ctxKey string

const userKey ctxKey = "user"

// Create a new context carrying the authenticated user
func NewContextWithUser(ctx context.Context, u models.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// Extract the authenticated user from the context
func UserFromContext(ctx context.Context) (models.User, bool) {
	u, ok := ctx.Value(userKey).(models.User)
	return u, ok
}
