package identity

import (
	"context"
	"errors"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrEmailExists        = errors.New("email already registered")
)

// Store is the external account service: it owns credentials and session
// tokens. Member profile data lives in the content store, keyed by the uid
// returned here.
type Store interface {
	// CreateUser provisions an account and returns its stable uid.
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
	// SignIn authenticates by email and password and returns a session token.
	SignIn(ctx context.Context, email, password string) (string, error)
	// VerifyToken resolves a bearer token to the uid it was issued for.
	VerifyToken(ctx context.Context, token string) (string, error)
	// SignOut invalidates the sessions behind the token where the backend
	// supports revocation.
	SignOut(ctx context.Context, token string) error
}
