package port

import (
	"context"

	"account_search/internal/domain/entity"
)

// ChainSource provides the per-group on-chain data needed for one search:
// the bank/price snapshot and the accounts a wallet owns within a group.
type ChainSource interface {
	// GroupSnapshot fetches the group's banks and their oracle prices as an
	// immutable snapshot.
	GroupSnapshot(ctx context.Context, group string) (entity.GroupSnapshot, error)

	// AccountsForAuthority fetches the raw lending accounts owned by the
	// given wallet within the group. Zero accounts is not an error.
	AccountsForAuthority(ctx context.Context, group, authority string) ([]entity.RawAccount, error)
}
