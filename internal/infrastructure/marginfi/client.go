package marginfi

import (
	"context"
	"sort"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"account_search/internal/domain/entity"
)

// Client fetches bank, price and account data for one lending program over
// JSON-RPC. All reads use confirmed commitment and every RPC call goes
// through a shared rate limiter.
type Client struct {
	rpc       *rpc.Client
	programID solana.PublicKey
	limiter   *rate.Limiter
	timeout   time.Duration
	logger    *zap.Logger
}

// NewClient creates a new Client for the given RPC endpoint and program.
func NewClient(rpcURL, programID string, rateLimit float64, burstLimit int, timeout time.Duration, logger *zap.Logger) (*Client, error) {
	pid, err := solana.PublicKeyFromBase58(programID)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid lending program id %q", programID)
	}
	return &Client{
		rpc:       rpc.New(rpcURL),
		programID: pid,
		limiter:   rate.NewLimiter(rate.Limit(rateLimit), burstLimit),
		timeout:   timeout,
		logger:    logger.Named("MarginfiClient"),
	}, nil
}

// GroupSnapshot loads every bank of the group and the oracle prices the
// banks point at. A bank that fails to decode fails the whole snapshot; an
// oracle account that is missing or undecodable only leaves its banks
// without a price, which later fails exactly the accounts that reference
// them.
func (c *Client) GroupSnapshot(ctx context.Context, group string) (entity.GroupSnapshot, error) {
	groupPk, err := solana.PublicKeyFromBase58(group)
	if err != nil {
		return entity.GroupSnapshot{}, errors.Wrapf(err, "invalid group address %q", group)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return entity.GroupSnapshot{}, err
	}

	res, err := c.rpc.GetProgramAccountsWithOpts(ctx, c.programID, &rpc.GetProgramAccountsOpts{
		Commitment: rpc.CommitmentConfirmed,
		Encoding:   solana.EncodingBase64,
		Filters: []rpc.RPCFilter{
			{Memcmp: &rpc.RPCFilterMemcmp{Offset: 0, Bytes: solana.Base58(bankDiscriminator)}},
			{Memcmp: &rpc.RPCFilterMemcmp{Offset: bankGroupOffset, Bytes: solana.Base58(groupPk.Bytes())}},
		},
	})
	if err != nil {
		return entity.GroupSnapshot{}, errors.Wrapf(err, "fetch banks for group %s", group)
	}

	snap := entity.GroupSnapshot{
		Group:  group,
		Banks:  make(map[string]entity.Bank, len(res)),
		Prices: make(map[string]entity.OraclePrice, len(res)),
	}

	oracleKeys := make([]solana.PublicKey, 0, len(res))
	banksByOracle := make(map[string][]string, len(res))
	for _, keyed := range res {
		bank, err := decodeBank(keyed.Pubkey, keyed.Account.Data.GetBinary())
		if err != nil {
			return entity.GroupSnapshot{}, errors.Wrapf(err, "decode bank in group %s", group)
		}
		snap.Banks[bank.Address] = bank

		if _, seen := banksByOracle[bank.OracleKey]; !seen {
			oracleKey, err := solana.PublicKeyFromBase58(bank.OracleKey)
			if err != nil {
				return entity.GroupSnapshot{}, errors.Wrapf(err, "bank %s: invalid oracle key", bank.Address)
			}
			oracleKeys = append(oracleKeys, oracleKey)
		}
		banksByOracle[bank.OracleKey] = append(banksByOracle[bank.OracleKey], bank.Address)
	}

	if len(oracleKeys) == 0 {
		return snap, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return entity.GroupSnapshot{}, err
	}

	oracles, err := c.rpc.GetMultipleAccountsWithOpts(ctx, oracleKeys, &rpc.GetMultipleAccountsOpts{
		Commitment: rpc.CommitmentConfirmed,
	})
	if err != nil {
		return entity.GroupSnapshot{}, errors.Wrapf(err, "fetch oracle prices for group %s", group)
	}

	for i, acc := range oracles.Value {
		oracleKey := oracleKeys[i].String()
		if acc == nil {
			c.logger.Warn("Oracle account missing",
				zap.String("group", group), zap.String("oracle", oracleKey))
			continue
		}
		quote, err := decodePythPrice(oracleKeys[i], acc.Data.GetBinary())
		if err != nil {
			c.logger.Warn("Failed to decode oracle price",
				zap.String("group", group), zap.String("oracle", oracleKey), zap.Error(err))
			continue
		}
		for _, bankAddr := range banksByOracle[oracleKey] {
			snap.Prices[bankAddr] = quote
		}
	}

	return snap, nil
}

// AccountsForAuthority fetches the wallet's lending accounts within the
// group, sorted by address for a stable order.
func (c *Client) AccountsForAuthority(ctx context.Context, group, authority string) ([]entity.RawAccount, error) {
	groupPk, err := solana.PublicKeyFromBase58(group)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid group address %q", group)
	}
	authorityPk, err := solana.PublicKeyFromBase58(authority)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid authority address %q", authority)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	res, err := c.rpc.GetProgramAccountsWithOpts(ctx, c.programID, &rpc.GetProgramAccountsOpts{
		Commitment: rpc.CommitmentConfirmed,
		Encoding:   solana.EncodingBase64,
		Filters: []rpc.RPCFilter{
			{Memcmp: &rpc.RPCFilterMemcmp{Offset: 0, Bytes: solana.Base58(accountDiscriminator)}},
			{Memcmp: &rpc.RPCFilterMemcmp{Offset: accountGroupOffset, Bytes: solana.Base58(groupPk.Bytes())}},
			{Memcmp: &rpc.RPCFilterMemcmp{Offset: accountAuthorityOffset, Bytes: solana.Base58(authorityPk.Bytes())}},
		},
	})
	if err != nil {
		return nil, errors.Wrapf(err, "fetch accounts for authority %s in group %s", authority, group)
	}

	accounts := make([]entity.RawAccount, 0, len(res))
	for _, keyed := range res {
		acc, err := decodeAccount(keyed.Pubkey, keyed.Account.Data.GetBinary())
		if err != nil {
			return nil, errors.Wrapf(err, "decode account in group %s", group)
		}
		accounts = append(accounts, acc)
	}

	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Address < accounts[j].Address })
	return accounts, nil
}
