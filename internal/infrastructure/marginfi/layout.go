// Package marginfi implements port.ChainSource against the deployed lending
// program. Accounts are fetched over JSON-RPC and decoded straight from
// their on-chain byte layout; only the fields the risk engine needs are
// decoded, everything else is skipped by offset.
package marginfi

import "crypto/sha256"

// Anchor account discriminator: first 8 bytes of sha256("account:<Name>").
func anchorDiscriminator(name string) []byte {
	h := sha256.Sum256([]byte("account:" + name))
	return h[:8]
}

var (
	bankDiscriminator    = anchorDiscriminator("Bank")
	accountDiscriminator = anchorDiscriminator("MarginfiAccount")
)

// Bank account layout. All offsets are absolute, in bytes, including the
// 8-byte discriminator. Vault addresses, bump seeds, fee accumulators and
// the interest rate configuration sit between the decoded fields and are
// skipped.
const (
	bankMintOffset         = 8   // mint: 32-byte public key
	bankMintDecimalsOffset = 40  // mint_decimals: u8, followed by 7 bytes alignment padding
	bankGroupOffset        = 48  // group: 32-byte public key
	bankAssetShareOffset   = 80  // asset_share_value: I80F48
	bankLiabShareOffset    = 96  // liability_share_value: I80F48
	bankAssetWInitOffset   = 264 // config.asset_weight_init: I80F48
	bankAssetWMaintOffset  = 280 // config.asset_weight_maint: I80F48
	bankLiabWInitOffset    = 296 // config.liability_weight_init: I80F48
	bankLiabWMaintOffset   = 312 // config.liability_weight_maint: I80F48
	bankOracleKeyOffset    = 584 // config.oracle_keys[0]: 32-byte public key
	bankMinDataLen         = bankOracleKeyOffset + 32
)

// Lending account layout.
const (
	accountGroupOffset     = 8  // group: 32-byte public key
	accountAuthorityOffset = 40 // authority: 32-byte public key
	accountBalancesOffset  = 72 // lending_account.balances: [16]Balance
	accountBalanceSlots    = 16

	// Per-slot balance layout, relative to the slot start: active flag,
	// bank key, 7 bytes alignment padding, then three I80F48 values
	// (asset shares, liability shares, outstanding emissions) and the last
	// update timestamp with trailing padding.
	balanceActiveOffset     = 0
	balanceBankOffset       = 1
	balanceAssetShareOffset = 40
	balanceLiabShareOffset  = 56
	balanceSlotSize         = 104

	accountMinDataLen = accountBalancesOffset + accountBalanceSlots*balanceSlotSize
)

// Pyth price account layout (v2 aggregate).
const (
	pythMagic          = 0xa1b2c3d4
	pythMagicOffset    = 0   // u32
	pythExponentOffset = 20  // i32
	pythAggPriceOffset = 208 // i64
	pythAggConfOffset  = 216 // u64
	pythMinDataLen     = pythAggConfOffset + 8
)
