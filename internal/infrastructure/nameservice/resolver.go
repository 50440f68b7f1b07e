// Package nameservice implements port.IdentityResolver. Plain inputs are
// parsed as base58 wallet addresses; inputs ending in ".sol" are resolved
// through the SPL name service to the registered owner wallet.
package nameservice

import (
	"context"
	"crypto/sha256"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"account_search/internal/domain/entity"
)

const domainSuffix = ".sol"

// SPL name service constants: the name program, the .sol top-level domain
// authority, and the prefix mixed into every hashed name.
var (
	nameProgramID    = solana.MustPublicKeyFromBase58("namesLPneVptA9Z5rqUDD9tMTWEJwofgaYwp8cawRkX")
	solTLDAuthority  = solana.MustPublicKeyFromBase58("58PwtjSDuFHuUkYjH9BYnnQKHfwo9reZhC2zMJv9JPkx")
	hashPrefix       = "SPL Name Service"
	emptyNameClass   = solana.PublicKey{}
	registryOwnerOff = 32 // registry layout: parent(32), owner(32), class(32)
	registryMinLen   = 96
)

// Resolver resolves user input to a canonical wallet address.
type Resolver struct {
	rpc     *rpc.Client
	timeout time.Duration
	logger  *zap.Logger
}

// NewResolver creates a new Resolver on the given RPC endpoint.
func NewResolver(rpcURL string, timeout time.Duration, logger *zap.Logger) *Resolver {
	return &Resolver{
		rpc:     rpc.New(rpcURL),
		timeout: timeout,
		logger:  logger.Named("NameResolver"),
	}
}

// Resolve turns a wallet address or a .sol domain into a canonical wallet
// address string. Malformed input and unregistered domains both map to
// entity.ErrInvalidInput.
func (r *Resolver) Resolve(ctx context.Context, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", errors.Wrap(entity.ErrInvalidInput, "empty input")
	}

	if strings.HasSuffix(strings.ToLower(input), domainSuffix) {
		return r.resolveDomain(ctx, input)
	}

	pk, err := solana.PublicKeyFromBase58(input)
	if err != nil {
		return "", errors.Wrapf(entity.ErrInvalidInput, "parse address %q: %v", input, err)
	}
	return pk.String(), nil
}

func (r *Resolver) resolveDomain(ctx context.Context, domain string) (string, error) {
	name := strings.TrimSuffix(strings.ToLower(domain), domainSuffix)
	if name == "" {
		return "", errors.Wrap(entity.ErrInvalidInput, "empty domain name")
	}

	nameAccount, err := DomainKey(name)
	if err != nil {
		return "", errors.Wrapf(entity.ErrInvalidInput, "derive domain key for %q: %v", domain, err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.rpc.GetAccountInfoWithOpts(ctx, nameAccount, &rpc.GetAccountInfoOpts{
		Commitment: rpc.CommitmentConfirmed,
	})
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return "", errors.Wrapf(entity.ErrInvalidInput, "domain %q is not registered", domain)
		}
		return "", errors.Wrapf(err, "fetch name registry for %q", domain)
	}
	if res == nil || res.Value == nil {
		return "", errors.Wrapf(entity.ErrInvalidInput, "domain %q is not registered", domain)
	}

	data := res.Value.Data.GetBinary()
	if len(data) < registryMinLen {
		return "", errors.Errorf("name registry for %q: data too short (%d bytes)", domain, len(data))
	}

	owner := solana.PublicKeyFromBytes(data[registryOwnerOff : registryOwnerOff+32])
	r.logger.Debug("Resolved domain",
		zap.String("domain", domain), zap.String("owner", owner.String()))
	return owner.String(), nil
}

// DomainKey derives the name-registry account of "<name>.sol": the name is
// hashed with the service prefix, then used as a seed under the name
// program together with the empty name class and the .sol TLD authority.
func DomainKey(name string) (solana.PublicKey, error) {
	hashed := sha256.Sum256([]byte(hashPrefix + name))
	key, _, err := solana.FindProgramAddress(
		[][]byte{hashed[:], emptyNameClass.Bytes(), solTLDAuthority.Bytes()},
		nameProgramID,
	)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return key, nil
}
