package usecase

import "context"

// AuthProvider is the identity backend: Firebase Auth in production or the local JWT issuer.
type AuthProvider interface {
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
	// SignIn checks the credentials and returns a bearer token for them.
	SignIn(ctx context.Context, email, password string) (string, error)
	// VerifyToken returns the uid the token was issued for.
	VerifyToken(ctx context.Context, token string) (string, error)
	UpdatePassword(ctx context.Context, uid, newPassword string) error
}
