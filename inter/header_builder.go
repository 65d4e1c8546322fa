package inter

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/rony4d/go-unity-asset/inter/validatorpk"
)

// The builders in this file are the trusted construction path: the node uses
// them for headers it assembles itself. Setters take typed values, nothing is
// validated, and every field left unset falls back to its default:
//
//	parentHash, coinbase       all zeroes
//	stateRoot, txTrieRoot,
//	receiptTrieRoot            types.EmptyRootHash
//	logsBloom                  empty bloom
//	difficulty, extraData      empty byte strings
//	numbers                    0
//	nonce                      all zeroes (mining)
//	solution                   SolutionLength zero bytes (mining)
//
// Data read from the network or from disk must go through
// NewMiningHeaderFromUnsafeSource / NewStakingHeaderFromUnsafeSource instead.
//
// Builders are single-owner values and must not be shared between goroutines.

// MiningHeaderBuilder assembles MiningHeader values.
type MiningHeaderBuilder struct {
	f        headerFields
	nonce    Nonce
	solution []byte
}

// NewMiningHeaderBuilder returns a builder holding the default field values.
func NewMiningHeaderBuilder() *MiningHeaderBuilder {
	return &MiningHeaderBuilder{
		f:        defaultHeaderFields(),
		solution: make([]byte, SolutionLength),
	}
}

// MiningHeaderBuilderFrom returns a builder seeded with every field of h.
func MiningHeaderBuilderFrom(h *MiningHeader) *MiningHeaderBuilder {
	return &MiningHeaderBuilder{
		f:        h.headerFields.clone(),
		nonce:    h.nonce,
		solution: common.CopyBytes(h.solution),
	}
}

func (b *MiningHeaderBuilder) Number(n uint64) *MiningHeaderBuilder {
	b.f.number = n
	return b
}

func (b *MiningHeaderBuilder) ParentHash(h common.Hash) *MiningHeaderBuilder {
	b.f.parentHash = h
	return b
}

func (b *MiningHeaderBuilder) Coinbase(a Address) *MiningHeaderBuilder {
	b.f.coinbase = a
	return b
}

func (b *MiningHeaderBuilder) StateRoot(h common.Hash) *MiningHeaderBuilder {
	b.f.stateRoot = h
	return b
}

func (b *MiningHeaderBuilder) TxTrieRoot(h common.Hash) *MiningHeaderBuilder {
	b.f.txTrieRoot = h
	return b
}

func (b *MiningHeaderBuilder) ReceiptTrieRoot(h common.Hash) *MiningHeaderBuilder {
	b.f.receiptTrieRoot = h
	return b
}

func (b *MiningHeaderBuilder) LogsBloom(bloom types.Bloom) *MiningHeaderBuilder {
	b.f.logsBloom = bloom
	return b
}

// Difficulty stores d as its minimal big-endian bytes; nil means zero.
func (b *MiningHeaderBuilder) Difficulty(d *big.Int) *MiningHeaderBuilder {
	b.f.difficulty = difficultyBytes(d)
	return b
}

// DifficultyBytes stores the raw difficulty encoding as given.
func (b *MiningHeaderBuilder) DifficultyBytes(d []byte) *MiningHeaderBuilder {
	b.f.difficulty = nonNil(d)
	return b
}

func (b *MiningHeaderBuilder) ExtraData(extra []byte) *MiningHeaderBuilder {
	b.f.extraData = nonNil(extra)
	return b
}

func (b *MiningHeaderBuilder) EnergyConsumed(v uint64) *MiningHeaderBuilder {
	b.f.energyConsumed = v
	return b
}

func (b *MiningHeaderBuilder) EnergyLimit(v uint64) *MiningHeaderBuilder {
	b.f.energyLimit = v
	return b
}

func (b *MiningHeaderBuilder) Timestamp(t uint64) *MiningHeaderBuilder {
	b.f.timestamp = t
	return b
}

func (b *MiningHeaderBuilder) Nonce(n Nonce) *MiningHeaderBuilder {
	b.nonce = n
	return b
}

// Solution stores a copy of the proof-of-work solution. Its length is not checked.
func (b *MiningHeaderBuilder) Solution(s []byte) *MiningHeaderBuilder {
	b.solution = nonNil(s)
	return b
}

// Build returns the header. The builder can be reused afterwards; the header
// does not share memory with it.
func (b *MiningHeaderBuilder) Build() *MiningHeader {
	return &MiningHeader{
		headerFields: b.f.clone(),
		nonce:        b.nonce,
		solution:     common.CopyBytes(b.solution),
	}
}

// StakingHeaderBuilder assembles StakingHeader values. Unlike a mining header
// a staking header has no defaultable seal: seed or proof, signature and
// signing key must all be set explicitly, even to zero values.
type StakingHeaderBuilder struct {
	f           headerFields
	seedOrProof []byte
	signature   *Signature
	signingKey  *validatorpk.PubKey
}

// NewStakingHeaderBuilder returns a builder holding the default shared field
// values and no seal fields.
func NewStakingHeaderBuilder() *StakingHeaderBuilder {
	return &StakingHeaderBuilder{f: defaultHeaderFields()}
}

// StakingHeaderBuilderFrom returns a builder seeded with every field of h.
func StakingHeaderBuilderFrom(h *StakingHeader) *StakingHeaderBuilder {
	sig, key := h.signature, h.signingKey
	return &StakingHeaderBuilder{
		f:           h.headerFields.clone(),
		seedOrProof: common.CopyBytes(h.seedOrProof),
		signature:   &sig,
		signingKey:  &key,
	}
}

func (b *StakingHeaderBuilder) Number(n uint64) *StakingHeaderBuilder {
	b.f.number = n
	return b
}

func (b *StakingHeaderBuilder) ParentHash(h common.Hash) *StakingHeaderBuilder {
	b.f.parentHash = h
	return b
}

func (b *StakingHeaderBuilder) Coinbase(a Address) *StakingHeaderBuilder {
	b.f.coinbase = a
	return b
}

func (b *StakingHeaderBuilder) StateRoot(h common.Hash) *StakingHeaderBuilder {
	b.f.stateRoot = h
	return b
}

func (b *StakingHeaderBuilder) TxTrieRoot(h common.Hash) *StakingHeaderBuilder {
	b.f.txTrieRoot = h
	return b
}

func (b *StakingHeaderBuilder) ReceiptTrieRoot(h common.Hash) *StakingHeaderBuilder {
	b.f.receiptTrieRoot = h
	return b
}

func (b *StakingHeaderBuilder) LogsBloom(bloom types.Bloom) *StakingHeaderBuilder {
	b.f.logsBloom = bloom
	return b
}

// Difficulty stores d as its minimal big-endian bytes; nil means zero.
func (b *StakingHeaderBuilder) Difficulty(d *big.Int) *StakingHeaderBuilder {
	b.f.difficulty = difficultyBytes(d)
	return b
}

// DifficultyBytes stores the raw difficulty encoding as given.
func (b *StakingHeaderBuilder) DifficultyBytes(d []byte) *StakingHeaderBuilder {
	b.f.difficulty = nonNil(d)
	return b
}

func (b *StakingHeaderBuilder) ExtraData(extra []byte) *StakingHeaderBuilder {
	b.f.extraData = nonNil(extra)
	return b
}

func (b *StakingHeaderBuilder) EnergyConsumed(v uint64) *StakingHeaderBuilder {
	b.f.energyConsumed = v
	return b
}

func (b *StakingHeaderBuilder) EnergyLimit(v uint64) *StakingHeaderBuilder {
	b.f.energyLimit = v
	return b
}

func (b *StakingHeaderBuilder) Timestamp(t uint64) *StakingHeaderBuilder {
	b.f.timestamp = t
	return b
}

// SeedOrProof stores the seed (SeedLength bytes) or VRF proof (ProofLength bytes).
func (b *StakingHeaderBuilder) SeedOrProof(v []byte) *StakingHeaderBuilder {
	b.seedOrProof = nonNil(v)
	return b
}

func (b *StakingHeaderBuilder) Signature(sig Signature) *StakingHeaderBuilder {
	b.signature = &sig
	return b
}

func (b *StakingHeaderBuilder) SigningPublicKey(key validatorpk.PubKey) *StakingHeaderBuilder {
	b.signingKey = &key
	return b
}

// Build returns the header, or ErrMissingStakingField if any of the seal
// fields was never set.
func (b *StakingHeaderBuilder) Build() (*StakingHeader, error) {
	if b.seedOrProof == nil || b.signature == nil || b.signingKey == nil {
		return nil, ErrMissingStakingField
	}
	return &StakingHeader{
		headerFields: b.f.clone(),
		seedOrProof:  common.CopyBytes(b.seedOrProof),
		signature:    *b.signature,
		signingKey:   *b.signingKey,
	}, nil
}

// mustBuild is used where the builder was seeded from a complete header.
func (b *StakingHeaderBuilder) mustBuild() *StakingHeader {
	h, err := b.Build()
	if err != nil {
		panic(err)
	}
	return h
}

func difficultyBytes(d *big.Int) []byte {
	if d == nil || d.Sign() == 0 {
		return []byte{}
	}
	return d.Bytes()
}

func nonNil(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return common.CopyBytes(b)
}
