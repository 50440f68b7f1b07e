package risk

import (
	"fmt"

	"github.com/shopspring/decimal"

	"account_search/internal/domain/entity"
)

// usdPrecision is the rounding precision of reported USD amounts.
const usdPrecision = 2

// Engine evaluates whole accounts against a group snapshot.
type Engine struct {
	valuer Valuer
}

// NewEngine builds an engine with the given dust threshold in USD.
func NewEngine(dustThresholdUsd decimal.Decimal) Engine {
	return Engine{valuer: Valuer{DustThresholdUsd: dustThresholdUsd}}
}

// EvaluateAccount produces the reportable summary of one account: equity
// totals, maintenance health factor and the classified, USD-valued balance
// sheet. A balance referencing a bank or price missing from the snapshot
// fails the whole account; partial valuations are never reported.
func (e Engine) EvaluateAccount(acc entity.RawAccount, snap entity.GroupSnapshot) (entity.AccountSummary, error) {
	var equity, maint HealthComponents
	details := make([]entity.BalanceDetail, 0, len(acc.Balances))

	for _, bal := range acc.Balances {
		bank, ok := snap.Banks[bal.BankAddress]
		if !ok {
			return entity.AccountSummary{}, fmt.Errorf("account %s, bank %s: %w", acc.Address, bal.BankAddress, entity.ErrMissingBank)
		}
		quote, ok := snap.Prices[bal.BankAddress]
		if !ok {
			return entity.AccountSummary{}, fmt.Errorf("account %s, bank %s: %w", acc.Address, bal.BankAddress, entity.ErrMissingPrice)
		}

		assetQty, assetUsd, err := e.valuer.ValueShares(bank, quote, bal.AssetShares, ModeEquity, SideAsset)
		if err != nil {
			return entity.AccountSummary{}, fmt.Errorf("account %s, bank %s: %w", acc.Address, bal.BankAddress, err)
		}
		liabQty, liabUsd, err := e.valuer.ValueShares(bank, quote, bal.LiabilityShares, ModeEquity, SideLiability)
		if err != nil {
			return entity.AccountSummary{}, fmt.Errorf("account %s, bank %s: %w", acc.Address, bal.BankAddress, err)
		}

		_, maintAssetUsd, err := e.valuer.ValueShares(bank, quote, bal.AssetShares, ModeMaintenance, SideAsset)
		if err != nil {
			return entity.AccountSummary{}, fmt.Errorf("account %s, bank %s: %w", acc.Address, bal.BankAddress, err)
		}
		_, maintLiabUsd, err := e.valuer.ValueShares(bank, quote, bal.LiabilityShares, ModeMaintenance, SideLiability)
		if err != nil {
			return entity.AccountSummary{}, fmt.Errorf("account %s, bank %s: %w", acc.Address, bal.BankAddress, err)
		}

		equity.Assets = equity.Assets.Add(assetUsd)
		equity.Liabilities = equity.Liabilities.Add(liabUsd)
		maint.Assets = maint.Assets.Add(maintAssetUsd)
		maint.Liabilities = maint.Liabilities.Add(maintLiabUsd)

		details = append(details, entity.BalanceDetail{
			BankAddress: bal.BankAddress,
			MintAddress: bank.Mint,
			Assets: entity.PositionValue{
				Quantity: assetQty.InexactFloat64(),
				Usd:      assetUsd.Round(usdPrecision).InexactFloat64(),
			},
			Liabilities: entity.PositionValue{
				Quantity: liabQty.InexactFloat64(),
				Usd:      liabUsd.Round(usdPrecision).InexactFloat64(),
			},
		})
	}

	return entity.AccountSummary{
		Group:        acc.GroupAddress,
		Address:      acc.Address,
		Assets:       equity.Assets.Round(usdPrecision).InexactFloat64(),
		Liabilities:  equity.Liabilities.Round(usdPrecision).InexactFloat64(),
		HealthFactor: HealthFactor(maint).InexactFloat64(),
		Balances:     Classify(details),
	}, nil
}
