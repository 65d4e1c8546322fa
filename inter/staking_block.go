package inter

import (
	"crypto/ed25519"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/rony4d/go-unity-asset/inter/validatorpk"
)

// StakingBlock is a block sealed by a staker signature.
type StakingBlock struct {
	blockCore
}

// NewStakingBlock returns an open block around h and txs.
func NewStakingBlock(h *StakingHeader, txs types.Transactions) *StakingBlock {
	return &StakingBlock{blockCore{header: h, body: newTxBody(txs), state: Open}}
}

func newDecodedStakingBlock(h *StakingHeader, body *txBody, enc []byte) *StakingBlock {
	return &StakingBlock{blockCore{header: h, body: body, encoded: enc, state: Sealed}}
}

// StakingHeader returns the current header.
func (b *StakingBlock) StakingHeader() *StakingHeader {
	return b.Header().(*StakingHeader)
}

// UpdateTransactionAndState replaces the transaction list and attaches the
// post-execution roots, then seals the block. The existing signature is kept
// even though it no longer matches the mine hash; the staker is expected to
// call Seal or SignWith afterwards. Calling it on a sealed block panics with
// ErrBlockSealed.
func (b *StakingBlock) UpdateTransactionAndState(txs types.Transactions, txTrieRoot, stateRoot common.Hash,
	logsBloom types.Bloom, receiptRoot common.Hash, energyConsumed uint64) {
	b.updateTransactionAndState(txs, func(old BlockHeader) BlockHeader {
		return StakingHeaderBuilderFrom(old.(*StakingHeader)).
			TxTrieRoot(txTrieRoot).
			StateRoot(stateRoot).
			LogsBloom(logsBloom).
			ReceiptTrieRoot(receiptRoot).
			EnergyConsumed(energyConsumed).
			mustBuild()
	})
}

// Seal sets the signature and the signing key. It is the only change allowed
// once the block is sealed.
func (b *StakingBlock) Seal(signature Signature, key validatorpk.PubKey) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.replace(b.header.(*StakingHeader).WithSeal(signature, key), nil)
}

// SignWith signs the mine hash with priv and seals the block with the result.
func (b *StakingBlock) SignWith(priv ed25519.PrivateKey) {
	var sig Signature
	copy(sig[:], ed25519.Sign(priv, b.StakingHeader().MineHash().Bytes()))
	b.Seal(sig, validatorpk.FromPrivateKey(priv))
}

func (b *StakingBlock) String() string { return b.describe("StakingBlock") }

func (b *StakingBlock) isBlock() {}
