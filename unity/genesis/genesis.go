// Package genesis assembles the first block of a Unity chain.
//
// Genesis is deterministic: the same inputs always produce the same state root
// and the same block hash on every node. The builder collects optional
// overrides, falls back to the network defaults for everything left unset and
// derives:
//   - the extra data, carrying the chain id in bytes 30-31
//   - the world-state root, folding every premined account and the network
//     balance contract into a secure trie
//   - the genesis mining block (number 0) and its companion staking block
//
// Usage:
//   g, err := genesis.NewBuilder().
//       WithChainID(256).
//       AddPremined(addr, big.NewInt(1e18)).
//       WithStakingDifficulty(big.NewInt(2e9)).
//       Build()

package genesis

import (
	"math/big"

	"github.com/Fantom-foundation/lachesis-base/common/bigendian"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/log"
	"github.com/pkg/errors"

	"github.com/rony4d/go-unity-asset/inter"
	"github.com/rony4d/go-unity-asset/unity"
)

// chainIDOffset is where the two chain id bytes sit inside the genesis extra data.
const chainIDOffset = inter.MaxExtraDataLength - 2

var (
	// ErrMissingStakingDifficulty is returned by Build when no genesis
	// staking difficulty was given. There is no safe default: the value
	// anchors the proof-of-stake difficulty series of the whole chain.
	ErrMissingStakingDifficulty = errors.New("genesis staking difficulty not set")

	// ErrInvalidGenesis wraps every other builder input error.
	ErrInvalidGenesis = errors.New("invalid genesis")

	// NetworkBalanceAddress is the account whose storage holds the balance
	// of every chain index.
	NetworkBalanceAddress = inter.HexToAddress("0x0000000000000000000000000000000000000000000000000000000000000100")

	// DefaultStakingContract is the address the staking contract is
	// deployed at unless configured otherwise.
	DefaultStakingContract = inter.HexToAddress("0x0000000000000000000000000000000000000000000000000000000000000200")
)

// Account is the genesis state of a premined account.
type Account struct {
	Nonce   uint64
	Balance *big.Int
}

// Block is the genesis mining block plus the inputs its state was built from.
type Block struct {
	*inter.MiningBlock

	// Premine holds the funded accounts, by address.
	Premine map[inter.Address]Account
	// NetworkBalances maps chain index to balance.
	NetworkBalances map[uint64]*big.Int
	// StakingContract is the address of the staking contract.
	StakingContract inter.Address

	chainID uint16
	staking *GenesisStakingBlock
}

// ChainID returns the chain id stored in the extra data.
func (g *Block) ChainID() uint16 { return g.chainID }

// StakingBlock returns the companion staking anchor block.
func (g *Block) StakingBlock() *GenesisStakingBlock { return g.staking }

// ChainIDFromExtraData reads the chain id back from genesis extra data.
func ChainIDFromExtraData(extra []byte) (uint16, error) {
	if len(extra) != inter.MaxExtraDataLength {
		return 0, errors.Wrapf(ErrInvalidGenesis, "extra data is %d bytes, want %d", len(extra), inter.MaxExtraDataLength)
	}
	return uint16(extra[chainIDOffset])<<8 | uint16(extra[chainIDOffset+1]), nil
}

func chainIDExtraData(chainID uint16) []byte {
	extra := make([]byte, inter.MaxExtraDataLength)
	copy(extra[chainIDOffset:], bigendian.Uint32ToBytes(uint32(chainID))[2:])
	return extra
}

// Builder accumulates genesis overrides. The zero value is not usable; call
// NewBuilder or NewBuilderFromRules.
type Builder struct {
	parentHash        common.Hash
	coinbase          inter.Address
	difficulty        *big.Int
	chainID           uint16
	timestamp         uint64
	energyLimit       uint64
	nonce             inter.Nonce
	premine           map[inter.Address]Account
	networkBalances   map[uint64]*big.Int
	stakingContract   inter.Address
	stakingDifficulty *big.Int

	defaultNetworkBalance *big.Int
	err                   error
}

// NewBuilder returns a builder with the mainnet defaults and no staking difficulty.
func NewBuilder() *Builder {
	return newBuilder(unity.MainNetRules())
}

// NewBuilderFromRules returns a builder with the defaults of rules, including
// its staking difficulty.
func NewBuilderFromRules(rules unity.Rules) *Builder {
	b := newBuilder(rules)
	if rules.Genesis.StakingDifficulty != nil {
		b.WithStakingDifficulty(rules.Genesis.StakingDifficulty)
	}
	return b
}

func newBuilder(rules unity.Rules) *Builder {
	r := rules.Copy()
	return &Builder{
		difficulty:            r.Genesis.Difficulty,
		chainID:               r.ChainID(),
		timestamp:             r.Genesis.Timestamp,
		energyLimit:           r.Genesis.EnergyLimit,
		premine:               make(map[inter.Address]Account),
		stakingContract:       DefaultStakingContract,
		defaultNetworkBalance: r.Genesis.NetworkBalance,
	}
}

func (b *Builder) WithParentHash(h common.Hash) *Builder {
	b.parentHash = h
	return b
}

func (b *Builder) WithCoinbase(a inter.Address) *Builder {
	b.coinbase = a
	return b
}

// WithDifficulty sets the genesis mining difficulty. It must fit in
// inter.MaxDifficultyLength bytes.
func (b *Builder) WithDifficulty(d *big.Int) *Builder {
	if d == nil || d.Sign() < 0 || len(d.Bytes()) > inter.MaxDifficultyLength {
		b.fail(errors.Wrapf(ErrInvalidGenesis, "difficulty %v", d))
		return b
	}
	b.difficulty = new(big.Int).Set(d)
	return b
}

func (b *Builder) WithChainID(id uint16) *Builder {
	b.chainID = id
	return b
}

func (b *Builder) WithTimestamp(t uint64) *Builder {
	b.timestamp = t
	return b
}

func (b *Builder) WithEnergyLimit(limit uint64) *Builder {
	b.energyLimit = limit
	return b
}

func (b *Builder) WithNonce(n inter.Nonce) *Builder {
	b.nonce = n
	return b
}

// AddPremined funds addr with balance. Adding the same address twice keeps
// the last value.
func (b *Builder) AddPremined(addr inter.Address, balance *big.Int) *Builder {
	if balance == nil || balance.Sign() < 0 {
		b.fail(errors.Wrapf(ErrInvalidGenesis, "premine balance of %s", addr))
		return b
	}
	if addr == NetworkBalanceAddress {
		b.fail(errors.Wrapf(ErrInvalidGenesis, "%s is reserved for network balances", addr))
		return b
	}
	b.premine[addr] = Account{Balance: new(big.Int).Set(balance)}
	return b
}

// AddNetworkBalance sets the balance of a chain index. Once any network
// balance is added, the default table is no longer used.
func (b *Builder) AddNetworkBalance(chainIndex uint64, balance *big.Int) *Builder {
	if balance == nil || balance.Sign() < 0 {
		b.fail(errors.Wrapf(ErrInvalidGenesis, "network balance of chain %d", chainIndex))
		return b
	}
	if b.networkBalances == nil {
		b.networkBalances = make(map[uint64]*big.Int)
	}
	b.networkBalances[chainIndex] = new(big.Int).Set(balance)
	return b
}

func (b *Builder) WithStakingContract(a inter.Address) *Builder {
	b.stakingContract = a
	return b
}

// WithStakingDifficulty sets the difficulty of the genesis staking block.
func (b *Builder) WithStakingDifficulty(d *big.Int) *Builder {
	if d == nil || d.Sign() <= 0 || len(d.Bytes()) > inter.MaxDifficultyLength {
		b.fail(errors.Wrapf(ErrInvalidGenesis, "staking difficulty %v", d))
		return b
	}
	b.stakingDifficulty = new(big.Int).Set(d)
	return b
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Build assembles the genesis block.
//
// Returns:
//   - *Block: the sealed genesis block with its staking companion
//   - error: ErrMissingStakingDifficulty, or the first invalid input
func (b *Builder) Build() (*Block, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.stakingDifficulty == nil {
		return nil, ErrMissingStakingDifficulty
	}

	balances := b.networkBalances
	if balances == nil {
		balances = make(map[uint64]*big.Int)
		if b.defaultNetworkBalance != nil {
			balances[0] = new(big.Int).Set(b.defaultNetworkBalance)
		}
	}
	root, err := stateRoot(b.premine, balances)
	if err != nil {
		return nil, err
	}

	header := inter.NewMiningHeaderBuilder().
		Number(0).
		ParentHash(b.parentHash).
		Coinbase(b.coinbase).
		Difficulty(b.difficulty).
		ExtraData(chainIDExtraData(b.chainID)).
		EnergyLimit(b.energyLimit).
		Timestamp(b.timestamp).
		Nonce(b.nonce).
		Build()
	block := inter.NewMiningBlock(header, nil)
	block.UpdateTransactionAndState(nil, types.EmptyRootHash, root, types.Bloom{}, types.EmptyRootHash, 0)

	g := &Block{
		MiningBlock:     block,
		Premine:         copyPremine(b.premine),
		NetworkBalances: copyBalances(balances),
		StakingContract: b.stakingContract,
		chainID:         b.chainID,
		staking:         newGenesisStakingBlock(block.MiningHeader(), b.stakingDifficulty),
	}
	log.Info("Assembled genesis", "hash", g.Hash(), "root", root, "chainId", b.chainID,
		"accounts", len(g.Premine), "stakingHash", g.staking.Hash())
	return g, nil
}

// MustBuild is Build for startup code: a misconfigured genesis is fatal.
func (b *Builder) MustBuild() *Block {
	g, err := b.Build()
	if err != nil {
		log.Crit("Failed to build genesis", "err", err)
	}
	return g
}

func copyPremine(in map[inter.Address]Account) map[inter.Address]Account {
	out := make(map[inter.Address]Account, len(in))
	for addr, acc := range in {
		out[addr] = Account{Nonce: acc.Nonce, Balance: new(big.Int).Set(acc.Balance)}
	}
	return out
}

func copyBalances(in map[uint64]*big.Int) map[uint64]*big.Int {
	out := make(map[uint64]*big.Int, len(in))
	for k, v := range in {
		out[k] = new(big.Int).Set(v)
	}
	return out
}
