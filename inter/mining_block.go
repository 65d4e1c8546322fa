package inter

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// MiningBlock is a block sealed by proof-of-work.
type MiningBlock struct {
	blockCore
}

// NewMiningBlock returns an open block. The header is taken as is; its
// txTrieRoot is not checked against txs until the block is sealed through
// UpdateTransactionAndState.
func NewMiningBlock(h *MiningHeader, txs types.Transactions) *MiningBlock {
	return &MiningBlock{blockCore{header: h, body: newTxBody(txs), state: Open}}
}

// newDecodedMiningBlock wraps a header and body read from an encoding. Such a
// block has already been executed somewhere, so it starts out sealed.
func newDecodedMiningBlock(h *MiningHeader, body *txBody, enc []byte) *MiningBlock {
	return &MiningBlock{blockCore{header: h, body: body, encoded: enc, state: Sealed}}
}

// MiningHeader returns the current header.
func (b *MiningBlock) MiningHeader() *MiningHeader {
	return b.Header().(*MiningHeader)
}

// UpdateTransactionAndState replaces the transaction list and attaches the
// post-execution roots in one step, then seals the block. Calling it on a
// sealed block panics with ErrBlockSealed.
//
// Parameters:
//   - txs: executed transactions, in block order
//   - txTrieRoot: CalcTxTrieRoot(txs)
//   - stateRoot: world-state root after execution
//   - logsBloom: union of all receipt blooms
//   - receiptRoot: root of the receipt trie
//   - energyConsumed: total energy used by txs
func (b *MiningBlock) UpdateTransactionAndState(txs types.Transactions, txTrieRoot, stateRoot common.Hash,
	logsBloom types.Bloom, receiptRoot common.Hash, energyConsumed uint64) {
	b.updateTransactionAndState(txs, func(old BlockHeader) BlockHeader {
		return MiningHeaderBuilderFrom(old.(*MiningHeader)).
			TxTrieRoot(txTrieRoot).
			StateRoot(stateRoot).
			LogsBloom(logsBloom).
			ReceiptTrieRoot(receiptRoot).
			EnergyConsumed(energyConsumed).
			Build()
	})
}

// SealPoW sets the proof-of-work nonce and solution. It may be called in any
// state; the solution is not verified here, only its length.
func (b *MiningBlock) SealPoW(nonce Nonce, solution []byte) error {
	if len(solution) != SolutionLength {
		return invalidField("solution", "expected %d bytes, got %d", SolutionLength, len(solution))
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.replace(b.header.(*MiningHeader).WithSeal(nonce, solution), nil)
	return nil
}

// UpdateExtraData replaces the extra data of an open block. Sealed blocks
// commit to their extra data, so the call panics with ErrBlockSealed on them.
func (b *MiningBlock) UpdateExtraData(extra []byte) error {
	if len(extra) > MaxExtraDataLength {
		return invalidField("extraData", "at most %d bytes allowed, got %d", MaxExtraDataLength, len(extra))
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == Sealed {
		panic(ErrBlockSealed)
	}
	b.replace(MiningHeaderBuilderFrom(b.header.(*MiningHeader)).ExtraData(extra).Build(), nil)
	return nil
}

func (b *MiningBlock) String() string { return b.describe("MiningBlock") }

func (b *MiningBlock) isBlock() {}
