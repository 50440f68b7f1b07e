package risk

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestHealthFactorZeroAssets(t *testing.T) {
	hf := HealthFactor(HealthComponents{})
	assert.True(t, hf.Equal(dec("100")))

	// The convention holds even with outstanding liabilities.
	hf = HealthFactor(HealthComponents{Liabilities: dec("10")})
	assert.True(t, hf.Equal(dec("100")))
}

func TestHealthFactor(t *testing.T) {
	cases := []struct {
		name   string
		assets string
		liabs  string
		want   string
	}{
		{"no liabilities", "100", "0", "100"},
		{"half borrowed", "100", "50", "50"},
		{"underwater", "100", "150", "-50"},
		{"rounded to two decimals", "3", "1", "66.67"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hf := HealthFactor(HealthComponents{Assets: dec(tc.assets), Liabilities: dec(tc.liabs)})
			assert.True(t, hf.Equal(dec(tc.want)), "want %s, got %s", tc.want, hf)
		})
	}
}

func TestHealthFactorNotClamped(t *testing.T) {
	hf := HealthFactor(HealthComponents{Assets: dec("1"), Liabilities: dec("100")})
	assert.True(t, hf.LessThan(decimal.Zero))
	assert.True(t, hf.Equal(dec("-9900")))
}
