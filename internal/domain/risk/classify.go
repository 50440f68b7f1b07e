package risk

import "account_search/internal/domain/entity"

// Classify partitions an account's valued balances into lending and
// borrowing positions. Order inside each list follows the account's native
// balance order. A balance with zero quantity on both sides (including dust
// zeroed by valuation) lands in neither list; a balance that somehow carries
// both sides lands on its larger USD side only, so the two lists never share
// an entry.
func Classify(details []entity.BalanceDetail) entity.ClassifiedBalances {
	out := entity.ClassifiedBalances{
		Lending:   []entity.BalanceDetail{},
		Borrowing: []entity.BalanceDetail{},
	}
	for _, d := range details {
		lending := d.Assets.Quantity > 0
		borrowing := d.Liabilities.Quantity > 0
		switch {
		case lending && borrowing:
			if d.Assets.Usd >= d.Liabilities.Usd {
				out.Lending = append(out.Lending, d)
			} else {
				out.Borrowing = append(out.Borrowing, d)
			}
		case lending:
			out.Lending = append(out.Lending, d)
		case borrowing:
			out.Borrowing = append(out.Borrowing, d)
		}
	}
	return out
}
