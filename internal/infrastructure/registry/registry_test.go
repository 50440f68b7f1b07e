package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGroups(t *testing.T) {
	body := []byte(`{
		"GRoUPb111": {"some": "payload"},
		"GRoUPa111": {},
		"GRoUPc111": {"nested": {"deep": true}}
	}`)

	groups, err := parseGroups(body)
	require.NoError(t, err)
	assert.Equal(t, []string{"GRoUPa111", "GRoUPb111", "GRoUPc111"}, groups)
}

func TestParseGroupsMalformed(t *testing.T) {
	_, err := parseGroups([]byte(`[1, 2, 3]`))
	require.Error(t, err)
}

func TestParseTokenMetadata(t *testing.T) {
	body := []byte(`[
		{"address": "mint-usdc", "name": "USD Coin", "symbol": "USDC"},
		{"address": "mint-sol", "name": "Wrapped SOL", "symbol": "SOL"},
		{"name": "no address, skipped", "symbol": "X"}
	]`)

	tokens, err := parseTokenMetadata(body, "https://icons.test")
	require.NoError(t, err)
	require.Len(t, tokens, 2)

	usdc := tokens["mint-usdc"]
	assert.Equal(t, "USD Coin", usdc.Name)
	assert.Equal(t, "USDC", usdc.Symbol)
	assert.Equal(t, "https://icons.test/mint-usdc.png", usdc.LogoURL)
}

func TestParseTokenMetadataMalformed(t *testing.T) {
	_, err := parseTokenMetadata([]byte(`{"not": "an array"}`), "https://icons.test")
	require.Error(t, err)
}
