package auth

import (
	"context"

	"github.com/Sonchiik/Workout-Traker/internal/common"
)

type ctxKey string

const identityKey ctxKey = "identity"

// WithIdentity stores the verified caller in ctx.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext returns the caller stored by WithIdentity, or nil.
func IdentityFromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityKey).(*Identity)
	return id
}

// RequireAdmin allows only callers whose token carries is_admin=true.
func RequireAdmin(id *Identity) error {
	if id == nil {
		return common.ErrorUnauthorized
	}
	if !id.IsAdmin {
		return common.ErrorForbidden
	}
	return nil
}

// RequireOwner allows the caller to see a resource only if it exists and is
// owned by the caller. Absent and foreign resources both yield
// common.ErrorNotFound so non-owners cannot probe for existence.
func RequireOwner(id *Identity, ownerID int64, exists bool) error {
	if id == nil {
		return common.ErrorUnauthorized
	}
	if !exists || ownerID != id.UserID {
		return common.ErrorNotFound
	}
	return nil
}
