package auth

import (
	"context"
	"fmt"

	"github.com/nbelhadj/maintenance-management/internal/account"
)

// User is the per-request authenticated identity resolved from the session
// header. It never carries password material.
type User struct {
	ID       int64
	Username string
	Role     string
}

func (u *User) IsAdmin() bool {
	return u.Role == account.RoleAdmin
}

// SessionToken renders the bearer credential handed to the front-end at
// login. The scheme carries no signature or expiry, only the account id.
func SessionToken(accountID int64) string {
	return fmt.Sprintf("session-%d", accountID)
}

type ctxKey struct{}

// WithUser attaches the authenticated identity to the request context.
func WithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// UserFrom returns the authenticated identity, if any.
func UserFrom(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(ctxKey{}).(*User)
	return u, ok
}
