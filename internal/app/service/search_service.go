package service

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"account_search/internal/app/port"
	"account_search/internal/domain/entity"
	"account_search/internal/domain/risk"
)

// SearchServiceImpl implements port.SearchService.
type SearchServiceImpl struct {
	groupRegistry       port.GroupRegistry
	tokenRegistry       port.TokenRegistry
	chain               port.ChainSource
	engine              risk.Engine
	logger              port.Logger
	maxConcurrentGroups int
}

// NewSearchService creates a new instance of SearchServiceImpl.
func NewSearchService(
	gr port.GroupRegistry,
	tr port.TokenRegistry,
	chain port.ChainSource,
	engine risk.Engine,
	l port.Logger,
	maxConcurrentGroups int,
) port.SearchService {
	if maxConcurrentGroups <= 0 {
		maxConcurrentGroups = 1
	}
	return &SearchServiceImpl{
		groupRegistry:       gr,
		tokenRegistry:       tr,
		chain:               chain,
		engine:              engine,
		logger:              l,
		maxConcurrentGroups: maxConcurrentGroups,
	}
}

// groupOutcome is the result of evaluating one group for the wallet. Keeping
// results indexed per group makes the final concatenation deterministic
// regardless of goroutine scheduling.
type groupOutcome struct {
	accounts []entity.AccountSummary
	errs     []entity.SearchError
	failed   bool
}

// Search fetches the wallet's accounts in every known lending group,
// evaluates each against the group's bank/price snapshot and returns the
// merged summaries. Groups are evaluated concurrently and independently; a
// failing group contributes an error record instead of aborting its
// siblings. Only a failure of every group (or of the registries themselves)
// surfaces as a request-level error.
func (s *SearchServiceImpl) Search(ctx context.Context, wallet string) (entity.SearchResult, error) {
	s.logger.Debug("Starting account search", "wallet", wallet)

	groups, err := s.groupRegistry.Groups(ctx)
	if err != nil {
		s.logger.Error("Failed to load group registry", "error", err)
		return entity.SearchResult{}, fmt.Errorf("load group registry: %w", entity.ErrUpstreamUnavailable)
	}
	if len(groups) == 0 {
		s.logger.Warn("Group registry returned no groups")
		return entity.SearchResult{Accounts: []entity.AccountSummary{}}, nil
	}

	tokenMap, err := s.tokenRegistry.TokenMap(ctx)
	if err != nil {
		s.logger.Error("Failed to load token registry", "error", err)
		return entity.SearchResult{}, fmt.Errorf("load token registry: %w", entity.ErrUpstreamUnavailable)
	}

	outcomes := make([]groupOutcome, len(groups))
	var mu sync.Mutex

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(s.maxConcurrentGroups)
	for i, group := range groups {
		i, group := i, group
		eg.Go(func() error {
			outcome := s.evaluateGroup(egCtx, group, wallet)
			mu.Lock()
			outcomes[i] = outcome
			mu.Unlock()
			// Group failures are recorded in the outcome; only context
			// cancellation is surfaced to the errgroup.
			return egCtx.Err()
		})
	}
	if err := eg.Wait(); err != nil {
		return entity.SearchResult{}, err
	}

	result := entity.SearchResult{Accounts: []entity.AccountSummary{}}
	failedGroups := 0
	for _, outcome := range outcomes {
		result.Accounts = append(result.Accounts, outcome.accounts...)
		result.Errors = append(result.Errors, outcome.errs...)
		if outcome.failed {
			failedGroups++
		}
	}

	s.enrich(result.Accounts, tokenMap)

	if failedGroups == len(groups) {
		s.logger.Error("Every group source failed", "wallet", wallet, "groups", len(groups))
		return result, fmt.Errorf("all %d groups failed: %w", len(groups), entity.ErrUpstreamUnavailable)
	}

	s.logger.Info("Account search finished",
		"wallet", wallet,
		"accounts", len(result.Accounts),
		"failed_groups", failedGroups)
	return result, nil
}

// evaluateGroup loads one group's snapshot and evaluates every account the
// wallet owns in it. Accounts with no open positions are dropped; an account
// whose evaluation fails (missing bank, missing price) is recorded and
// skipped while its siblings proceed.
func (s *SearchServiceImpl) evaluateGroup(ctx context.Context, group, wallet string) groupOutcome {
	snap, err := s.chain.GroupSnapshot(ctx, group)
	if err != nil {
		s.logger.Warn("Failed to load group snapshot", "group", group, "error", err)
		return groupOutcome{
			errs:   []entity.SearchError{{Group: group, Message: fmt.Sprintf("load group snapshot: %v", err)}},
			failed: true,
		}
	}

	rawAccounts, err := s.chain.AccountsForAuthority(ctx, group, wallet)
	if err != nil {
		s.logger.Warn("Failed to fetch accounts for wallet", "group", group, "wallet", wallet, "error", err)
		return groupOutcome{
			errs:   []entity.SearchError{{Group: group, Message: fmt.Sprintf("fetch accounts: %v", err)}},
			failed: true,
		}
	}

	var outcome groupOutcome
	for _, raw := range rawAccounts {
		summary, err := s.engine.EvaluateAccount(raw, snap)
		if err != nil {
			s.logger.Warn("Account evaluation failed",
				"group", group, "account", raw.Address, "error", err)
			outcome.errs = append(outcome.errs, entity.SearchError{
				Group:   group,
				Account: raw.Address,
				Message: err.Error(),
			})
			continue
		}
		if !summary.HasOpenPositions() {
			s.logger.Debug("Dropping account with no open positions", "group", group, "account", raw.Address)
			continue
		}
		outcome.accounts = append(outcome.accounts, summary)
	}
	return outcome
}

// enrich joins token metadata onto every classified balance by exact mint
// address. Unknown mints keep empty name/symbol/logo.
func (s *SearchServiceImpl) enrich(accounts []entity.AccountSummary, tokenMap map[string]entity.TokenMetadata) {
	for ai := range accounts {
		enrichDetails(accounts[ai].Balances.Lending, tokenMap)
		enrichDetails(accounts[ai].Balances.Borrowing, tokenMap)
	}
}

func enrichDetails(details []entity.BalanceDetail, tokenMap map[string]entity.TokenMetadata) {
	for i := range details {
		meta, ok := tokenMap[details[i].MintAddress]
		if !ok {
			continue
		}
		details[i].Name = meta.Name
		details[i].Symbol = meta.Symbol
		details[i].Logo = meta.LogoURL
	}
}
