package port

import (
	"context"

	"account_search/internal/domain/entity"
)

// GroupRegistry produces the list of known lending-group addresses.
type GroupRegistry interface {
	Groups(ctx context.Context) ([]string, error)
}

// TokenRegistry produces token metadata keyed by mint address. Lookups on
// the returned map may miss; missing mints enrich to empty fields.
type TokenRegistry interface {
	TokenMap(ctx context.Context) (map[string]entity.TokenMetadata, error)
}
