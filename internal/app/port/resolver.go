package port

import "context"

// IdentityResolver turns user input (a wallet address or a human-readable
// domain name) into a canonical wallet address. Malformed input resolves to
// entity.ErrInvalidInput.
type IdentityResolver interface {
	Resolve(ctx context.Context, input string) (string, error)
}
