package entity

import "github.com/shopspring/decimal"

// RawBalance is a single position slot of an on-chain account, still in
// share units. The protocol keeps at most one of the two sides economically
// non-zero per slot, but nothing downstream relies on that.
type RawBalance struct {
	BankAddress     string
	AssetShares     decimal.Decimal
	LiabilityShares decimal.Decimal
}

// RawAccount is an on-chain lending account as fetched for one wallet. It is
// constructed fresh per search request and discarded after the response.
type RawAccount struct {
	Address      string
	GroupAddress string
	Authority    string
	Balances     []RawBalance
}
