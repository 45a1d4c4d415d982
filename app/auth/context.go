package auth

import (
	"context"

	"blogicum/app/models"
)

type ctxKey string

const userKey ctxKey = "user"

// WithUser stores the authenticated user in ctx.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFrom returns the authenticated user, or nil for anonymous requests.
func UserFrom(ctx context.Context) *models.User {
	user, _ := ctx.Value(userKey).(*models.User)
	return user
}

// UserIDFrom returns the authenticated user's ID, 0 when anonymous.
func UserIDFrom(ctx context.Context) int {
	if user := UserFrom(ctx); user != nil {
		return user.ID
	}
	return 0
}
