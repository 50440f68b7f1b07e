package entity

import "errors"

// Error taxonomy of a search. Group- and account-level failures are recorded
// as SearchError values and never abort sibling work; only the sentinels
// below bubble up to the HTTP boundary.
var (
	// ErrInvalidInput marks malformed wallet addresses or domain names.
	ErrInvalidInput = errors.New("invalid address or domain name")

	// ErrUpstreamUnavailable marks a reference data source (group registry,
	// token registry, chain RPC) that could not be reached at all.
	ErrUpstreamUnavailable = errors.New("upstream data source unavailable")

	// ErrMissingBank marks a balance referencing a bank absent from the
	// loaded group snapshot. This fails the owning account's evaluation.
	ErrMissingBank = errors.New("bank not present in group snapshot")

	// ErrMissingPrice marks a bank without an oracle price in the snapshot.
	// Evaluation never substitutes a partial or zero price.
	ErrMissingPrice = errors.New("oracle price not present in group snapshot")

	// ErrZeroExchangeRate marks a bank whose share exchange rate is zero or
	// negative. This is an input validation failure, not a runtime fault.
	ErrZeroExchangeRate = errors.New("share exchange rate must be positive")

	// ErrZeroPrice marks an oracle quote with a non-positive price.
	ErrZeroPrice = errors.New("oracle price must be positive")
)

// SearchError records a failure scoped to one group or one account within a
// search. The wallet-level search carries these alongside whatever accounts
// were evaluated successfully.
type SearchError struct {
	Group   string `json:"group,omitempty"`
	Account string `json:"account,omitempty"`
	Message string `json:"message"`
}
