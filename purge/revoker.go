package purge

import "context"

// Revoker removes the account from the identity provider.
type Revoker struct {
	provider IdentityProvider
}

// NewRevoker creates a Revoker backed by provider
func NewRevoker(provider IdentityProvider) *Revoker {
	return &Revoker{provider: provider}
}

// Revoke must only be called once every deletion step has succeeded.
func (r *Revoker) Revoke(ctx context.Context, userID string) error {
	if err := ctx.Err(); err != nil {
		return &RevocationError{UserID: userID, Cause: err}
	}
	if err := r.provider.RevokeIdentity(ctx, userID); err != nil {
		return &RevocationError{UserID: userID, Cause: err}
	}
	return nil
}
