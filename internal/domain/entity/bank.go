package entity

import "github.com/shopspring/decimal"

// Bank represents a single lending pool of the protocol. One bank wraps one
// underlying token mint and defines the share exchange rates and risk weights
// used when valuing positions against it.
type Bank struct {
	Address      string `json:"address"`
	GroupAddress string `json:"groupAddress"`
	Mint         string `json:"mint"`
	MintDecimals uint8  `json:"mintDecimals"`

	// Share exchange rates. Deposits and borrows are tracked on-chain as
	// shares; multiplying by the share value yields the token amount in
	// native units.
	AssetShareValue     decimal.Decimal `json:"assetShareValue"`
	LiabilityShareValue decimal.Decimal `json:"liabilityShareValue"`

	// Maintenance risk weights applied during solvency checks.
	AssetWeightMaint     decimal.Decimal `json:"assetWeightMaint"`
	LiabilityWeightMaint decimal.Decimal `json:"liabilityWeightMaint"`

	OracleKey string `json:"oracleKey"`
}

// OraclePrice is a price quote for a bank's underlying token. Confidence is
// the oracle-reported uncertainty band around Price, in USD.
type OraclePrice struct {
	Price      decimal.Decimal `json:"price"`
	Confidence decimal.Decimal `json:"confidence"`
}

// GroupSnapshot is the immutable per-request view of one lending group: its
// banks and their oracle prices, both keyed by bank address. A snapshot is
// fetched once per search and never mutated afterwards, which is what makes
// concurrent per-account evaluation safe.
type GroupSnapshot struct {
	Group  string
	Banks  map[string]Bank
	Prices map[string]OraclePrice
}
