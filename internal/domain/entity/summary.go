package entity

// PositionValue is one side of a valued balance: the token quantity in UI
// units and its USD value.
type PositionValue struct {
	Quantity float64 `json:"quantity"`
	Usd      float64 `json:"usd"`
}

// BalanceDetail is a single valued position as reported to the caller.
// Name, Symbol and Logo are filled in by metadata enrichment and stay empty
// when the mint is unknown to the token registry.
type BalanceDetail struct {
	BankAddress string `json:"bankAddress"`
	MintAddress string `json:"mintAddress"`
	Name        string `json:"name,omitempty"`
	Symbol      string `json:"symbol,omitempty"`
	Logo        string `json:"logo,omitempty"`

	Assets      PositionValue `json:"assets"`
	Liabilities PositionValue `json:"liabilities"`
}

// ClassifiedBalances splits an account's positions into open lending and
// borrowing sides. A position appears in at most one of the two lists; dust
// positions appear in neither.
type ClassifiedBalances struct {
	Lending   []BalanceDetail `json:"lending"`
	Borrowing []BalanceDetail `json:"borrowing"`
}

// AccountSummary is the reportable risk summary of one lending account.
// Assets and Liabilities are the unbiased (equity mode) USD totals;
// HealthFactor is a percentage rounded to two decimals and may be negative
// for underwater accounts.
type AccountSummary struct {
	Group        string             `json:"group"`
	Address      string             `json:"address"`
	Assets       float64            `json:"assets"`
	Liabilities  float64            `json:"liabilities"`
	HealthFactor float64            `json:"healthFactor"`
	Balances     ClassifiedBalances `json:"balances"`
}

// HasOpenPositions reports whether the summary carries at least one
// classified position. Summaries without any are dropped from search
// results.
func (s AccountSummary) HasOpenPositions() bool {
	return len(s.Balances.Lending) > 0 || len(s.Balances.Borrowing) > 0
}

// TokenMetadata is the registry entry for one token mint.
type TokenMetadata struct {
	Address string `json:"address"`
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
	LogoURL string `json:"logoURI,omitempty"`
}

// SearchResult is the outcome of one wallet search: every successfully
// evaluated account plus the per-group and per-account failures that were
// recorded along the way. Partial results are always kept.
type SearchResult struct {
	Accounts []AccountSummary `json:"accounts"`
	Errors   []SearchError    `json:"errors,omitempty"`
}
