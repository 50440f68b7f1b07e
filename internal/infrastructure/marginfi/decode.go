package marginfi

import (
	"bytes"
	"encoding/binary"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"account_search/internal/domain/entity"
	"account_search/internal/domain/fixed"
)

func pubkeyAt(data []byte, offset int) string {
	return solana.PublicKeyFromBytes(data[offset : offset+32]).String()
}

func i80f48At(data []byte, offset int) (decimal.Decimal, error) {
	return fixed.DecimalFromLE(data[offset : offset+fixed.ByteLen])
}

// decodeBank decodes a bank account into its engine representation.
func decodeBank(address solana.PublicKey, data []byte) (entity.Bank, error) {
	if len(data) < bankMinDataLen {
		return entity.Bank{}, errors.Errorf("bank %s: data too short (%d bytes)", address, len(data))
	}
	if !bytes.Equal(data[:8], bankDiscriminator) {
		return entity.Bank{}, errors.Errorf("bank %s: discriminator mismatch", address)
	}

	assetShareValue, err := i80f48At(data, bankAssetShareOffset)
	if err != nil {
		return entity.Bank{}, errors.Wrapf(err, "bank %s: asset share value", address)
	}
	liabShareValue, err := i80f48At(data, bankLiabShareOffset)
	if err != nil {
		return entity.Bank{}, errors.Wrapf(err, "bank %s: liability share value", address)
	}
	assetWeightMaint, err := i80f48At(data, bankAssetWMaintOffset)
	if err != nil {
		return entity.Bank{}, errors.Wrapf(err, "bank %s: asset weight", address)
	}
	liabWeightMaint, err := i80f48At(data, bankLiabWMaintOffset)
	if err != nil {
		return entity.Bank{}, errors.Wrapf(err, "bank %s: liability weight", address)
	}

	return entity.Bank{
		Address:              address.String(),
		GroupAddress:         pubkeyAt(data, bankGroupOffset),
		Mint:                 pubkeyAt(data, bankMintOffset),
		MintDecimals:         data[bankMintDecimalsOffset],
		AssetShareValue:      assetShareValue,
		LiabilityShareValue:  liabShareValue,
		AssetWeightMaint:     assetWeightMaint,
		LiabilityWeightMaint: liabWeightMaint,
		OracleKey:            pubkeyAt(data, bankOracleKeyOffset),
	}, nil
}

// decodeAccount decodes a lending account, keeping only the active balance
// slots.
func decodeAccount(address solana.PublicKey, data []byte) (entity.RawAccount, error) {
	if len(data) < accountMinDataLen {
		return entity.RawAccount{}, errors.Errorf("account %s: data too short (%d bytes)", address, len(data))
	}
	if !bytes.Equal(data[:8], accountDiscriminator) {
		return entity.RawAccount{}, errors.Errorf("account %s: discriminator mismatch", address)
	}

	acc := entity.RawAccount{
		Address:      address.String(),
		GroupAddress: pubkeyAt(data, accountGroupOffset),
		Authority:    pubkeyAt(data, accountAuthorityOffset),
	}

	for slot := 0; slot < accountBalanceSlots; slot++ {
		base := accountBalancesOffset + slot*balanceSlotSize
		if data[base+balanceActiveOffset] == 0 {
			continue
		}

		assetShares, err := i80f48At(data, base+balanceAssetShareOffset)
		if err != nil {
			return entity.RawAccount{}, errors.Wrapf(err, "account %s: slot %d asset shares", address, slot)
		}
		liabShares, err := i80f48At(data, base+balanceLiabShareOffset)
		if err != nil {
			return entity.RawAccount{}, errors.Wrapf(err, "account %s: slot %d liability shares", address, slot)
		}

		acc.Balances = append(acc.Balances, entity.RawBalance{
			BankAddress:     pubkeyAt(data, base+balanceBankOffset),
			AssetShares:     assetShares,
			LiabilityShares: liabShares,
		})
	}

	return acc, nil
}

// decodePythPrice decodes a pyth v2 price account into an oracle quote.
func decodePythPrice(address solana.PublicKey, data []byte) (entity.OraclePrice, error) {
	if len(data) < pythMinDataLen {
		return entity.OraclePrice{}, errors.Errorf("oracle %s: data too short (%d bytes)", address, len(data))
	}
	if binary.LittleEndian.Uint32(data[pythMagicOffset:]) != pythMagic {
		return entity.OraclePrice{}, errors.Errorf("oracle %s: not a pyth price account", address)
	}

	exponent := int32(binary.LittleEndian.Uint32(data[pythExponentOffset:]))
	rawPrice := int64(binary.LittleEndian.Uint64(data[pythAggPriceOffset:]))
	rawConf := int64(binary.LittleEndian.Uint64(data[pythAggConfOffset:]))

	return entity.OraclePrice{
		Price:      decimal.New(rawPrice, exponent),
		Confidence: decimal.New(rawConf, exponent),
	}, nil
}
