package registry

import (
	"context"
	"sort"
	"time"

	jsoniter "github.com/json-iterator/go"
	cache "github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const groupsCacheKey = "groups"

// GroupClient implements port.GroupRegistry against the public trade-group
// document, a JSON object keyed by group address.
type GroupClient struct {
	fetcher httpFetcher
	url     string
	cache   *cache.Cache
	logger  *zap.Logger
}

// NewGroupClient creates a new GroupClient.
func NewGroupClient(url string, timeout time.Duration, cacheTTL time.Duration, logger *zap.Logger) *GroupClient {
	l := logger.Named("GroupClient")
	return &GroupClient{
		fetcher: newHTTPFetcher(timeout, l),
		url:     url,
		cache:   cache.New(cacheTTL, 10*time.Minute),
		logger:  l,
	}
}

// Groups returns the known lending-group addresses, sorted for a stable
// processing order.
func (c *GroupClient) Groups(ctx context.Context) ([]string, error) {
	if cached, found := c.cache.Get(groupsCacheKey); found {
		return cached.([]string), nil
	}

	body, err := c.fetcher.fetch(ctx, c.url)
	if err != nil {
		return nil, err
	}

	groups, err := parseGroups(body)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Loaded group registry", zap.Int("count", len(groups)))
	c.cache.Set(groupsCacheKey, groups, cache.DefaultExpiration)
	return groups, nil
}

// parseGroups extracts the object keys of the trade-group document.
func parseGroups(body []byte) ([]string, error) {
	var doc map[string]jsoniter.RawMessage
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal group registry document")
	}

	groups := make([]string, 0, len(doc))
	for group := range doc {
		groups = append(groups, group)
	}
	sort.Strings(groups)
	return groups, nil
}
