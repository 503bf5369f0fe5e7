package auth

import (
	"context"

	"github.com/byron-a/ExciteTrade-backend/internal/apperror"
	"github.com/byron-a/ExciteTrade-backend/internal/model"
)

// Principal is the authenticated identity attached to every request.
// Authentication itself happens upstream (gateway / session layer); the core
// only performs role checks against it.
type Principal struct {
	ID       string
	UserType model.UserType
}

type principalKey struct{}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom extracts the authenticated principal, if any.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

// RequireRole returns PermissionDenied unless the principal carries one of the
// given roles.
func RequireRole(p Principal, roles ...model.UserType) error {
	for _, r := range roles {
		if p.UserType == r {
			return nil
		}
	}
	return apperror.PermissionDenied("unauthorized user")
}
