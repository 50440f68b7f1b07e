package risk

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// HealthComponents are the maintenance-mode USD totals of one account.
type HealthComponents struct {
	Assets      decimal.Decimal
	Liabilities decimal.Decimal
}

// HealthFactor derives the account solvency percentage from maintenance-mode
// totals, rounded to two decimals. An account with zero weighted collateral
// is 100% healthy by protocol convention. The value goes negative for
// underwater accounts and is deliberately not clamped.
func HealthFactor(c HealthComponents) decimal.Decimal {
	if c.Assets.Sign() == 0 {
		return hundred
	}
	return c.Assets.Sub(c.Liabilities).Div(c.Assets).Mul(hundred).Round(2)
}
