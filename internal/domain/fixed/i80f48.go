// Package fixed converts the lending program's I80F48 fixed-point numbers
// into decimals. I80F48 is a signed 128-bit value stored little-endian with
// 48 fractional bits; share amounts, exchange rates and risk weights all
// arrive on-chain in this format.
package fixed

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// ByteLen is the wire size of one I80F48 value.
const ByteLen = 16

var (
	scale   = new(big.Int).Lsh(big.NewInt(1), 48)
	modulus = new(big.Int).Lsh(big.NewInt(1), 128)

	scaleDec = decimal.NewFromBigInt(scale, 0)
)

// DecimalFromLE decodes a little-endian I80F48 value into a decimal.
// The slice must be exactly 16 bytes long.
func DecimalFromLE(b []byte) (decimal.Decimal, error) {
	if len(b) != ByteLen {
		return decimal.Zero, fmt.Errorf("i80f48: want %d bytes, got %d", ByteLen, len(b))
	}

	be := make([]byte, ByteLen)
	for i, v := range b {
		be[ByteLen-1-i] = v
	}

	v := new(big.Int).SetBytes(be)
	// Two's complement: values with the top bit set are negative.
	if be[0]&0x80 != 0 {
		v.Sub(v, modulus)
	}

	return decimal.NewFromBigInt(v, 0).Div(scaleDec), nil
}

// BytesLE encodes a decimal as a little-endian I80F48 value. Fractional
// precision beyond 48 bits is truncated toward zero.
func BytesLE(d decimal.Decimal) []byte {
	scaled := d.Mul(scaleDec)
	v := new(big.Int).Set(scaled.BigInt())
	if v.Sign() < 0 {
		v.Add(v, modulus)
	}

	be := v.Bytes()
	out := make([]byte, ByteLen)
	for i := 0; i < len(be) && i < ByteLen; i++ {
		out[i] = be[len(be)-1-i]
	}
	return out
}
