package nameservice

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"account_search/internal/domain/entity"
)

func testLogger() *zap.Logger { return zap.NewNop() }

func TestResolvePlainAddress(t *testing.T) {
	r := NewResolver("https://rpc.invalid", time.Second, testLogger())

	// A plain base58 address never touches the RPC endpoint.
	got, err := r.Resolve(context.Background(), "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")
	require.NoError(t, err)
	assert.Equal(t, "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v", got)
}

func TestResolveTrimsWhitespace(t *testing.T) {
	r := NewResolver("https://rpc.invalid", time.Second, testLogger())
	got, err := r.Resolve(context.Background(), "  EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v\n")
	require.NoError(t, err)
	assert.Equal(t, "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v", got)
}

func TestResolveInvalidInput(t *testing.T) {
	r := NewResolver("https://rpc.invalid", time.Second, testLogger())

	for _, input := range []string{"", "   ", "not-a-key", "0xdeadbeef", ".sol"} {
		_, err := r.Resolve(context.Background(), input)
		assert.ErrorIs(t, err, entity.ErrInvalidInput, "input %q", input)
	}
}

func TestDomainKeyDeterministic(t *testing.T) {
	first, err := DomainKey("bonfida")
	require.NoError(t, err)
	second, err := DomainKey("bonfida")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	other, err := DomainKey("different")
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}
