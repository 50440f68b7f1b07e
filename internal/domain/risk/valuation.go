// Package risk is the account risk-aggregation engine: it turns raw on-chain
// share balances, bank parameters and oracle prices into valued positions,
// classified balance sheets and health factors. Everything in here is a pure
// function of its inputs.
package risk

import (
	"fmt"

	"github.com/shopspring/decimal"

	"account_search/internal/domain/entity"
)

// ValuationMode selects the pricing policy for a valuation pass.
type ValuationMode int

const (
	// ModeEquity values positions at the raw oracle price with no weights.
	// Used for headline asset/liability totals.
	ModeEquity ValuationMode = iota

	// ModeMaintenance values positions conservatively: prices are biased by
	// the oracle confidence band and bank maintenance weights apply. Used
	// strictly for solvency checks.
	ModeMaintenance
)

// Side tells the valuation which direction is conservative.
type Side int

const (
	SideAsset Side = iota
	SideLiability
)

// QuantityFromShares converts a raw share amount into a token quantity in UI
// units through the bank's share exchange rate. A non-positive exchange rate
// is an input validation failure.
func QuantityFromShares(shares, shareValue decimal.Decimal, mintDecimals uint8) (decimal.Decimal, error) {
	if shareValue.Sign() <= 0 {
		return decimal.Zero, fmt.Errorf("share value %s: %w", shareValue, entity.ErrZeroExchangeRate)
	}
	if shares.Sign() == 0 {
		return decimal.Zero, nil
	}
	return shares.Mul(shareValue).Shift(-int32(mintDecimals)), nil
}

// EffectivePrice applies the mode's confidence bias to an oracle quote. In
// maintenance mode assets are valued at the low end of the confidence band
// and liabilities at the high end; equity mode uses the quote as-is. The
// biased asset price never drops below zero.
func EffectivePrice(quote entity.OraclePrice, mode ValuationMode, side Side) (decimal.Decimal, error) {
	if quote.Price.Sign() <= 0 {
		return decimal.Zero, fmt.Errorf("price %s: %w", quote.Price, entity.ErrZeroPrice)
	}
	if mode == ModeEquity {
		return quote.Price, nil
	}
	if side == SideLiability {
		return quote.Price.Add(quote.Confidence), nil
	}
	low := quote.Price.Sub(quote.Confidence)
	if low.Sign() < 0 {
		return decimal.Zero, nil
	}
	return low, nil
}

// Valuer carries the valuation policy knobs shared by a whole search request.
type Valuer struct {
	// DustThresholdUsd suppresses residual dust: positions whose USD value
	// falls below it are reported with zero quantity.
	DustThresholdUsd decimal.Decimal
}

// ValueShares values one side of a balance. It returns the token quantity in
// UI units and the USD value under the requested mode. Quantities valued
// below the dust threshold are reported as zero so that classification drops
// them.
func (v Valuer) ValueShares(bank entity.Bank, quote entity.OraclePrice, shares decimal.Decimal, mode ValuationMode, side Side) (quantity, usd decimal.Decimal, err error) {
	shareValue := bank.AssetShareValue
	if side == SideLiability {
		shareValue = bank.LiabilityShareValue
	}

	quantity, err = QuantityFromShares(shares, shareValue, bank.MintDecimals)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	price, err := EffectivePrice(quote, mode, side)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	usd = quantity.Mul(price)
	if mode == ModeMaintenance {
		usd = usd.Mul(maintWeight(bank, side))
	}
	if usd.Sign() < 0 {
		usd = decimal.Zero
	}

	if usd.LessThan(v.DustThresholdUsd) {
		quantity = decimal.Zero
	}
	return quantity, usd, nil
}

func maintWeight(bank entity.Bank, side Side) decimal.Decimal {
	if side == SideLiability {
		return bank.LiabilityWeightMaint
	}
	return bank.AssetWeightMaint
}
