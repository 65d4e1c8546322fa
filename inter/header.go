// Package inter defines the Unity block and block-header data model shared by
// the execution, consensus, sync and storage layers of the node.
//
// Unity is a hybrid chain: blocks are sealed either by proof-of-work (mining
// blocks) or by proof-of-stake (staking blocks). Both variants share thirteen
// header fields and differ only in the seal they carry. This package provides:
//   - MiningHeader / StakingHeader and the closed BlockHeader interface over them
//   - trusted builders (defaulting) and untrusted constructors (validating)
//   - MiningBlock / StakingBlock with lazily decoded bodies
//   - dispatch from raw or decoded input to the right variant
//   - UnityDifficulty, the combined fork-choice weight
//
// Encoded header layout (RLP list, order is consensus-critical):
//   [sealType, number, parentHash, coinbase, stateRoot, txTrieRoot,
//    receiptTrieRoot, logsBloom, difficulty, extraData, energyConsumed,
//    energyLimit, timestamp, <variant tail...>]
//
// Headers are immutable once built. Every "update" goes through a builder
// seeded from the old header and produces a new value, so headers can be read
// from any goroutine without locking.
package inter

import (
	"fmt"
	"io"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"golang.org/x/crypto/blake2b"

	"github.com/rony4d/go-unity-asset/inter/sealtype"
	"github.com/rony4d/go-unity-asset/inter/validatorpk"
	"github.com/rony4d/go-unity-asset/utils/rlptree"
)

// Fixed field sizes of the header encoding.
const (
	HashLength          = common.HashLength
	BloomLength         = types.BloomByteLength
	NonceLength         = 32
	SolutionLength      = 1408
	SeedLength          = 64
	ProofLength         = 80
	SignatureLength     = validatorpk.SignatureSize
	PubKeyLength        = validatorpk.Size
	MaxDifficultyLength = 16
	MaxNumericLength    = 8
	MaxExtraDataLength  = 32
)

// commonFieldCount is the number of header elements shared by every seal type,
// seal-type byte included.
const commonFieldCount = 13

// BlockHeader is the capability set common to mining and staking headers.
// The interface is closed: only *MiningHeader and *StakingHeader implement it,
// and consumers switch on SealType (or a type switch) to reach variant fields.
type BlockHeader interface {
	SealType() sealtype.Type
	Number() uint64
	ParentHash() common.Hash
	Coinbase() Address
	StateRoot() common.Hash
	TxTrieRoot() common.Hash
	ReceiptsRoot() common.Hash
	LogsBloom() types.Bloom
	Difficulty() []byte
	DifficultyAsInteger() *big.Int
	ExtraData() []byte
	EnergyConsumed() uint64
	EnergyLimit() uint64
	Timestamp() uint64
	IsGenesis() bool

	// Hash is the BLAKE2b-256 digest of Encoded.
	Hash() common.Hash
	// MineHash is the digest of the header without its seal.
	MineHash() common.Hash
	// Encoded returns the canonical RLP encoding.
	Encoded() []byte
	// EncodeRLP makes headers usable as rlp.Encoder values.
	EncodeRLP(w io.Writer) error
	// ToMap is the human-readable projection used by RPC and reporting.
	ToMap() map[string]string

	fmt.Stringer

	isBlockHeader()
}

// Nonce is the 32-byte proof-of-work nonce of a mining header.
type Nonce [NonceLength]byte

// Signature is the 64-byte staker signature of a staking header.
type Signature [SignatureLength]byte

// IsZero reports whether the signature is all zeroes, i.e. unset.
func (s Signature) IsZero() bool { return s == Signature{} }

// headerFields holds the thirteen shared fields. Its getters are promoted to
// both header variants.
type headerFields struct {
	number          uint64
	parentHash      common.Hash
	coinbase        Address
	stateRoot       common.Hash
	txTrieRoot      common.Hash
	receiptTrieRoot common.Hash
	logsBloom       types.Bloom
	difficulty      []byte
	extraData       []byte
	energyConsumed  uint64
	energyLimit     uint64
	timestamp       uint64
}

// defaultHeaderFields are the values the trusted builders start from.
func defaultHeaderFields() headerFields {
	return headerFields{
		stateRoot:       types.EmptyRootHash,
		txTrieRoot:      types.EmptyRootHash,
		receiptTrieRoot: types.EmptyRootHash,
		difficulty:      []byte{},
		extraData:       []byte{},
	}
}

func (f *headerFields) Number() uint64            { return f.number }
func (f *headerFields) ParentHash() common.Hash   { return f.parentHash }
func (f *headerFields) Coinbase() Address         { return f.coinbase }
func (f *headerFields) StateRoot() common.Hash    { return f.stateRoot }
func (f *headerFields) TxTrieRoot() common.Hash   { return f.txTrieRoot }
func (f *headerFields) ReceiptsRoot() common.Hash { return f.receiptTrieRoot }
func (f *headerFields) LogsBloom() types.Bloom    { return f.logsBloom }
func (f *headerFields) Difficulty() []byte        { return common.CopyBytes(f.difficulty) }
func (f *headerFields) ExtraData() []byte         { return common.CopyBytes(f.extraData) }
func (f *headerFields) EnergyConsumed() uint64    { return f.energyConsumed }
func (f *headerFields) EnergyLimit() uint64       { return f.energyLimit }
func (f *headerFields) Timestamp() uint64         { return f.timestamp }
func (f *headerFields) IsGenesis() bool           { return f.number == 0 }

// DifficultyAsInteger interprets the difficulty bytes as a big-endian unsigned integer.
func (f *headerFields) DifficultyAsInteger() *big.Int {
	return new(big.Int).SetBytes(f.difficulty)
}

// clone deep-copies the variable-length fields.
func (f headerFields) clone() headerFields {
	f.difficulty = common.CopyBytes(f.difficulty)
	f.extraData = common.CopyBytes(f.extraData)
	if f.difficulty == nil {
		f.difficulty = []byte{}
	}
	if f.extraData == nil {
		f.extraData = []byte{}
	}
	return f
}

// encodeElems returns the encoded common elements in wire order.
func (f *headerFields) encodeElems(seal sealtype.Type) [][]byte {
	elems := make([][]byte, 0, commonFieldCount+3)
	return append(elems,
		rlptree.EncodeUint(uint64(seal)),
		rlptree.EncodeUint(f.number),
		rlptree.EncodeBytes(f.parentHash[:]),
		rlptree.EncodeBytes(f.coinbase[:]),
		rlptree.EncodeBytes(f.stateRoot[:]),
		rlptree.EncodeBytes(f.txTrieRoot[:]),
		rlptree.EncodeBytes(f.receiptTrieRoot[:]),
		rlptree.EncodeBytes(f.logsBloom[:]),
		rlptree.EncodeBytes(f.difficulty),
		rlptree.EncodeBytes(f.extraData),
		rlptree.EncodeUint(f.energyConsumed),
		rlptree.EncodeUint(f.energyLimit),
		rlptree.EncodeUint(f.timestamp),
	)
}

// projection fills the common part of ToMap.
func (f *headerFields) projection(seal sealtype.Type, hash common.Hash) map[string]string {
	return map[string]string{
		"hash":             hash.Hex(),
		"sealType":         hexutil.EncodeUint64(uint64(seal)),
		"number":           hexutil.EncodeUint64(f.number),
		"parentHash":       f.parentHash.Hex(),
		"coinbase":         f.coinbase.Hex(),
		"stateRoot":        f.stateRoot.Hex(),
		"transactionsRoot": f.txTrieRoot.Hex(),
		"receiptsRoot":     f.receiptTrieRoot.Hex(),
		"logsBloom":        hexutil.Encode(f.logsBloom[:]),
		"difficulty":       hexutil.Encode(f.difficulty),
		"extraData":        hexutil.Encode(f.extraData),
		"energyConsumed":   hexutil.EncodeUint64(f.energyConsumed),
		"energyLimit":      hexutil.EncodeUint64(f.energyLimit),
		"timestamp":        hexutil.EncodeUint64(f.timestamp),
	}
}

// headerCache memoizes the encoding and the two digests of an immutable header.
type headerCache struct {
	encOnce  sync.Once
	encoded  []byte
	hash     common.Hash
	mineOnce sync.Once
	mineHash common.Hash
}

func (c *headerCache) encode(build func() []byte) {
	c.encOnce.Do(func() {
		c.encoded = build()
		c.hash = digest(c.encoded)
	})
}

func (c *headerCache) mine(build func() []byte) common.Hash {
	c.mineOnce.Do(func() {
		c.mineHash = digest(build())
	})
	return c.mineHash
}

// digest is the chain hash function.
func digest(b []byte) common.Hash {
	return common.Hash(blake2b.Sum256(b))
}

func writeEncoded(w io.Writer, enc []byte) error {
	_, err := w.Write(enc)
	return err
}
