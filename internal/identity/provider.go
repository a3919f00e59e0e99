// Package identity resolves bearer tokens into classified accounts and
// carries the role guards used by every protected route.
//
// Token verification and credential storage sit behind the Provider
// interface so the directory service itself never handles passwords
// outside of the configured provider.
package identity

import "context"

// VerifiedIdentity is what a provider extracts from a valid token:
// a stable account id and the email it was issued for.
type VerifiedIdentity struct {
	ID    string
	Email string
}

// Provider is the authentication backend boundary.
type Provider interface {
	// VerifyToken validates a bearer token and returns the identity it
	// carries. Invalid or expired tokens return ErrInvalidToken.
	VerifyToken(ctx context.Context, token string) (*VerifiedIdentity, error)

	// CreateAccount registers credentials for a new account id.
	CreateAccount(ctx context.Context, accountID, email, password string) error

	// SignIn checks credentials and mints an access token.
	SignIn(ctx context.Context, email, password string) (accountID, token string, err error)

	// DeleteAccount removes stored credentials, used when a signup is
	// rolled back.
	DeleteAccount(ctx context.Context, accountID string) error
}
