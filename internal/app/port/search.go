package port

import (
	"context"

	"account_search/internal/domain/entity"
)

// SearchService runs one wallet search across every known lending group.
// The returned result keeps partial successes together with per-group and
// per-account failure records; an error is returned only when the search as
// a whole could not run (no group data source reachable at all).
type SearchService interface {
	Search(ctx context.Context, wallet string) (entity.SearchResult, error)
}
