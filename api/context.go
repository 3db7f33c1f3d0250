package api

import (
	"context"

	"github.com/inkwell-app/backend/models"
)

type keyType string

const userKey keyType = "user"

// ctxWithUser attaches the authenticated user to the request context.
func ctxWithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// ctxGetUser retrieves the authenticated user, or nil for anonymous requests.
func ctxGetUser(ctx context.Context) *models.User {
	user, ok := ctx.Value(userKey).(*models.User)
	if !ok {
		return nil
	}
	return user
}
