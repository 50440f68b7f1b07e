package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"account_search/internal/domain/entity"
)

func detail(bank string, assetQty, liabQty float64) entity.BalanceDetail {
	return entity.BalanceDetail{
		BankAddress: bank,
		Assets:      entity.PositionValue{Quantity: assetQty, Usd: assetQty},
		Liabilities: entity.PositionValue{Quantity: liabQty, Usd: liabQty},
	}
}

func TestClassifyPartition(t *testing.T) {
	out := Classify([]entity.BalanceDetail{
		detail("a", 100, 0),
		detail("b", 0, 25),
		detail("c", 0, 0),
		detail("d", 1, 0),
	})

	require.Len(t, out.Lending, 2)
	require.Len(t, out.Borrowing, 1)
	// Native balance order is preserved, never re-sorted.
	assert.Equal(t, "a", out.Lending[0].BankAddress)
	assert.Equal(t, "d", out.Lending[1].BankAddress)
	assert.Equal(t, "b", out.Borrowing[0].BankAddress)
}

func TestClassifyMutuallyExclusive(t *testing.T) {
	// A slot with both sides open is outside protocol convention but must
	// still land in exactly one list.
	out := Classify([]entity.BalanceDetail{detail("x", 10, 4)})
	assert.Len(t, out.Lending, 1)
	assert.Empty(t, out.Borrowing)

	out = Classify([]entity.BalanceDetail{detail("y", 4, 10)})
	assert.Empty(t, out.Lending)
	assert.Len(t, out.Borrowing, 1)
}

func TestClassifyEmptyInput(t *testing.T) {
	out := Classify(nil)
	assert.NotNil(t, out.Lending)
	assert.NotNil(t, out.Borrowing)
	assert.Empty(t, out.Lending)
	assert.Empty(t, out.Borrowing)
}
