package registry

import (
	"context"
	"fmt"
	"strings"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"account_search/internal/domain/entity"
)

const tokensCacheKey = "tokens"

// TokenClient implements port.TokenRegistry against the public token
// metadata cache, a JSON array of token records. Logo URLs are derived from
// the configured icon base URL since the document itself carries none.
type TokenClient struct {
	fetcher     httpFetcher
	url         string
	iconBaseURL string
	cache       *cache.Cache
	logger      *zap.Logger
}

// NewTokenClient creates a new TokenClient.
func NewTokenClient(url, iconBaseURL string, timeout time.Duration, cacheTTL time.Duration, logger *zap.Logger) *TokenClient {
	l := logger.Named("TokenClient")
	return &TokenClient{
		fetcher:     newHTTPFetcher(timeout, l),
		url:         url,
		iconBaseURL: strings.TrimRight(iconBaseURL, "/"),
		cache:       cache.New(cacheTTL, 10*time.Minute),
		logger:      l,
	}
}

// TokenMap returns token metadata keyed by mint address.
func (c *TokenClient) TokenMap(ctx context.Context) (map[string]entity.TokenMetadata, error) {
	if cached, found := c.cache.Get(tokensCacheKey); found {
		return cached.(map[string]entity.TokenMetadata), nil
	}

	body, err := c.fetcher.fetch(ctx, c.url)
	if err != nil {
		return nil, err
	}

	tokens, err := parseTokenMetadata(body, c.iconBaseURL)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Loaded token metadata cache", zap.Int("count", len(tokens)))
	c.cache.Set(tokensCacheKey, tokens, cache.DefaultExpiration)
	return tokens, nil
}

type tokenRecord struct {
	Address string `json:"address"`
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
}

// parseTokenMetadata decodes the token metadata array into a mint-keyed map.
func parseTokenMetadata(body []byte, iconBaseURL string) (map[string]entity.TokenMetadata, error) {
	var records []tokenRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal token metadata document")
	}

	tokens := make(map[string]entity.TokenMetadata, len(records))
	for _, rec := range records {
		if rec.Address == "" {
			continue
		}
		tokens[rec.Address] = entity.TokenMetadata{
			Address: rec.Address,
			Name:    rec.Name,
			Symbol:  rec.Symbol,
			LogoURL: fmt.Sprintf("%s/%s.png", iconBaseURL, rec.Address),
		}
	}
	return tokens, nil
}
