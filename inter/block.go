// This file contains the Block abstraction: a header of either seal type plus
// the ordered transaction list it commits to.
//
// Key concepts:
//   - Block: closed interface over *MiningBlock and *StakingBlock
//   - BlockState: Open (built locally, waiting for execution results) or
//     Sealed (post-execution roots attached, or decoded from bytes)
//   - Lazy body: blocks read from storage keep the encoded transaction list and
//     decode it on first access, exactly once
//
// Usage:
//   block := inter.NewMiningBlock(header, txs)
//   block.UpdateTransactionAndState(txs, txRoot, stateRoot, bloom, receiptRoot, used)
//   enc := block.Encoded() // [header, [tx...]]

package inter

import (
	"fmt"
	"io"
	"math/big"
	"sync"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/ethereum/go-ethereum/trie"

	"github.com/rony4d/go-unity-asset/inter/sealtype"
	"github.com/rony4d/go-unity-asset/utils/rlptree"
)

// BlockState is the lifecycle stage of a block.
type BlockState uint8

const (
	// Open blocks were built locally and still accept a transaction and
	// state update.
	Open BlockState = iota
	// Sealed blocks carry their post-execution roots. Only the seal itself
	// (nonce and solution, or signature and key) may still change.
	Sealed
)

func (s BlockState) String() string {
	if s == Sealed {
		return "sealed"
	}
	return "open"
}

// Block is the capability set shared by mining and staking blocks. Header
// accessors delegate to the current header.
//
// The interface is closed: only *MiningBlock and *StakingBlock implement it.
type Block interface {
	Header() BlockHeader
	SealType() sealtype.Type
	Hash() common.Hash
	ParentHash() common.Hash
	Number() uint64
	BlockIndex() idx.Block
	Timestamp() uint64
	Coinbase() Address
	Difficulty() []byte
	DifficultyAsInteger() *big.Int
	ExtraData() []byte
	EnergyConsumed() uint64
	EnergyLimit() uint64
	StateRoot() common.Hash
	TxTrieRoot() common.Hash
	ReceiptsRoot() common.Hash
	LogsBloom() types.Bloom
	IsGenesis() bool

	// Transactions returns the body, decoding it first if needed. It panics
	// with *LazyDecodeError if the stored body is corrupt.
	Transactions() types.Transactions
	// DecodeBody forces the lazy decode and reports its outcome.
	DecodeBody() error

	// UpdateTransactionAndState attaches the execution results and seals the block.
	UpdateTransactionAndState(txs types.Transactions, txTrieRoot, stateRoot common.Hash,
		logsBloom types.Bloom, receiptRoot common.Hash, energyConsumed uint64)

	State() BlockState
	Encoded() []byte
	EncodeRLP(w io.Writer) error
	Size() common.StorageSize

	fmt.Stringer

	isBlock()
}

// CalcTxTrieRoot returns the root of the transaction trie of txs. An empty
// list hashes to types.EmptyRootHash.
func CalcTxTrieRoot(txs types.Transactions) common.Hash {
	if len(txs) == 0 {
		return types.EmptyRootHash
	}
	return types.DeriveSha(txs, trie.NewStackTrie(nil))
}

// txBody is the transaction list of a block, held either decoded or as the
// encoded RLP list still waiting to be decoded.
type txBody struct {
	once sync.Once
	raw  []byte
	txs  types.Transactions
	err  error
}

func newTxBody(txs types.Transactions) *txBody {
	b := &txBody{txs: txs}
	if b.txs == nil {
		b.txs = types.Transactions{}
	}
	b.once.Do(func() {})
	return b
}

// newLazyTxBody keeps raw, the encoded transaction list, for decoding on first access.
func newLazyTxBody(raw []byte) *txBody {
	return &txBody{raw: raw}
}

// decode runs at most once and is safe to call from concurrent readers.
// Every caller observes the same result.
func (b *txBody) decode() error {
	b.once.Do(func() {
		var txs types.Transactions
		if err := rlp.DecodeBytes(b.raw, &txs); err != nil {
			b.err = err
			return
		}
		if txs == nil {
			txs = types.Transactions{}
		}
		b.txs = txs
	})
	return b.err
}

// encoded returns the RLP list of transactions, reusing the original bytes
// when the body came from an encoding.
func (b *txBody) encoded() []byte {
	if b.raw != nil {
		return b.raw
	}
	enc, err := rlp.EncodeToBytes(b.txs)
	if err != nil {
		panic(err)
	}
	return enc
}

// blockCore is the state shared by both block variants. The header and body
// pointers are replaced as a whole under mu; the values they point to are
// never modified, so readers only hold the lock long enough to load them.
type blockCore struct {
	mu      sync.RWMutex
	header  BlockHeader
	body    *txBody
	encoded []byte
	state   BlockState
}

func (b *blockCore) load() (BlockHeader, *txBody) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.header, b.body
}

// Header returns the current header.
func (b *blockCore) Header() BlockHeader {
	h, _ := b.load()
	return h
}

func (b *blockCore) SealType() sealtype.Type       { return b.Header().SealType() }
func (b *blockCore) Hash() common.Hash             { return b.Header().Hash() }
func (b *blockCore) ParentHash() common.Hash       { return b.Header().ParentHash() }
func (b *blockCore) Number() uint64                { return b.Header().Number() }
func (b *blockCore) BlockIndex() idx.Block         { return idx.Block(b.Header().Number()) }
func (b *blockCore) Timestamp() uint64             { return b.Header().Timestamp() }
func (b *blockCore) Coinbase() Address             { return b.Header().Coinbase() }
func (b *blockCore) Difficulty() []byte            { return b.Header().Difficulty() }
func (b *blockCore) DifficultyAsInteger() *big.Int { return b.Header().DifficultyAsInteger() }
func (b *blockCore) ExtraData() []byte             { return b.Header().ExtraData() }
func (b *blockCore) EnergyConsumed() uint64        { return b.Header().EnergyConsumed() }
func (b *blockCore) EnergyLimit() uint64           { return b.Header().EnergyLimit() }
func (b *blockCore) StateRoot() common.Hash        { return b.Header().StateRoot() }
func (b *blockCore) TxTrieRoot() common.Hash       { return b.Header().TxTrieRoot() }
func (b *blockCore) ReceiptsRoot() common.Hash     { return b.Header().ReceiptsRoot() }
func (b *blockCore) LogsBloom() types.Bloom        { return b.Header().LogsBloom() }
func (b *blockCore) IsGenesis() bool               { return b.Header().IsGenesis() }

// State returns the lifecycle stage of the block.
func (b *blockCore) State() BlockState {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.state
}

// Transactions returns a copy of the transaction list.
//
// For a block decoded from storage the first call decodes the body. If the
// stored bytes turn out to be corrupt the call panics with *LazyDecodeError:
// storage handed us data it had already accepted, so there is no recovery
// path for the caller. Use DecodeBody to check up front.
func (b *blockCore) Transactions() types.Transactions {
	h, body := b.load()
	if err := body.decode(); err != nil {
		panic(&LazyDecodeError{BlockHash: h.Hash().Hex(), Err: err})
	}
	return append(types.Transactions(nil), body.txs...)
}

// DecodeBody decodes a lazily held body. It is a no-op for bodies that are
// already decoded.
func (b *blockCore) DecodeBody() error {
	_, body := b.load()
	return body.decode()
}

// Encoded returns the block encoding [header, [tx...]]. The result is cached
// until the header or body is replaced, and must not be modified.
func (b *blockCore) Encoded() []byte {
	b.mu.RLock()
	enc := b.encoded
	b.mu.RUnlock()
	if enc != nil {
		return enc
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.encoded == nil {
		b.encoded = rlptree.EncodeList(b.header.Encoded(), b.body.encoded())
	}
	return b.encoded
}

// EncodeRLP implements rlp.Encoder.
func (b *blockCore) EncodeRLP(w io.Writer) error {
	return writeEncoded(w, b.Encoded())
}

// Size returns the encoded size of the block.
func (b *blockCore) Size() common.StorageSize {
	return common.StorageSize(len(b.Encoded()))
}

// replace swaps in a new header and, if given, a new body, and drops the
// cached encoding.
func (b *blockCore) replace(h BlockHeader, body *txBody) {
	b.header = h
	if body != nil {
		b.body = body
	}
	b.encoded = nil
}

// updateTransactionAndState is the shared part of sealing. rebuild produces
// the new header from the old one; it runs under the write lock.
func (b *blockCore) updateTransactionAndState(txs types.Transactions, rebuild func(BlockHeader) BlockHeader) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == Sealed {
		panic(ErrBlockSealed)
	}
	b.replace(rebuild(b.header), newTxBody(txs))
	b.state = Sealed
}

func (b *blockCore) describe(kind string) string {
	h := b.Header()
	return fmt.Sprintf("%s{number=%d hash=%s parent=%s state=%s}",
		kind, h.Number(), h.Hash().TerminalString(), h.ParentHash().TerminalString(), b.State())
}
