// This file is the single place where encoded input is routed to a header or
// block variant by its seal-type byte.
//
// Every entry point returns nil for input it cannot turn into a valid value:
// malformed encodings, wrong arity, unknown seal types, invalid fields and
// transaction trie mismatches all look the same to the caller. The reason is
// logged at debug level. Callers on the sync and storage side treat nil as
// "the peer (or the disk) gave us garbage" and never see decode errors.

package inter

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/rony4d/go-unity-asset/inter/sealtype"
	"github.com/rony4d/go-unity-asset/utils/rlptree"
)

// NewHeaderFromRLP decodes an encoded header of either seal type.
func NewHeaderFromRLP(raw []byte) BlockHeader {
	h, err := decodeHeader(raw)
	if err != nil {
		log.Debug("Discarded header", "size", len(raw), "err", err)
		return nil
	}
	return h
}

// NewHeaderFromItem builds a header of either seal type from a decoded list.
func NewHeaderFromItem(item *rlptree.Item) BlockHeader {
	h, err := headerFromItem(item)
	if err != nil {
		log.Debug("Discarded header", "err", err)
		return nil
	}
	return h
}

// NewBlockFromRLP decodes a block read from local storage. The header is fully
// validated, the transactions are decoded on first access and the transaction
// trie is not recomputed.
func NewBlockFromRLP(raw []byte) Block {
	b, err := decodeBlock(raw, false)
	if err != nil {
		log.Debug("Discarded stored block", "size", len(raw), "err", err)
		return nil
	}
	return b
}

// NewBlockFromUnsafeSource decodes a block received from a peer. The body is
// decoded right away and has to hash to the header's txTrieRoot.
func NewBlockFromUnsafeSource(raw []byte) Block {
	b, err := decodeBlock(raw, true)
	if err != nil {
		log.Debug("Discarded block from unsafe source", "size", len(raw), "err", err)
		return nil
	}
	return b
}

// NewBlockFromItem builds and verifies a block from a decoded [header, [tx...]] list.
func NewBlockFromItem(item *rlptree.Item) Block {
	b, err := blockFromItem(item, true)
	if err != nil {
		log.Debug("Discarded block", "err", err)
		return nil
	}
	return b
}

// NewBlockWithHeaderAndBody joins a header and a transaction list delivered
// separately, as the sync protocol does, and verifies that they match.
func NewBlockWithHeaderAndBody(headerRLP, bodyRLP []byte) Block {
	h, err := decodeHeader(headerRLP)
	if err != nil {
		log.Debug("Discarded block header", "size", len(headerRLP), "err", err)
		return nil
	}
	if _, _, err := rlp.SplitList(bodyRLP); err != nil {
		log.Debug("Discarded block body", "hash", h.Hash(), "err", err)
		return nil
	}
	b, err := assemble(h, newLazyTxBody(common.CopyBytes(bodyRLP)), nil, true)
	if err != nil {
		log.Debug("Discarded block body", "hash", h.Hash(), "err", err)
		return nil
	}
	return b
}

func decodeHeader(raw []byte) (BlockHeader, error) {
	seal, err := sealtype.Peek(raw)
	if err != nil {
		return nil, errors.Wrap(ErrMalformedBlock, err.Error())
	}
	switch seal {
	case sealtype.Mining:
		h, err := DecodeMiningHeader(raw)
		if err != nil {
			return nil, err
		}
		return h, nil
	case sealtype.Staking:
		h, err := DecodeStakingHeader(raw)
		if err != nil {
			return nil, err
		}
		return h, nil
	default:
		return nil, errors.Wrapf(ErrUnknownSealType, "%s", seal)
	}
}

func headerFromItem(item *rlptree.Item) (BlockHeader, error) {
	if item == nil || !item.IsList() || item.Len() == 0 {
		return nil, errors.Wrap(ErrHeaderArity, "header is not a non-empty list")
	}
	first := item.At(0)
	if first.IsList() || first.Len() != 1 {
		return nil, errors.Wrap(ErrUnknownSealType, "seal type is not a single byte")
	}
	switch seal := sealtype.Type(first.Bytes()[0]); seal {
	case sealtype.Mining:
		h, err := MiningHeaderFromItem(item)
		if err != nil {
			return nil, err
		}
		return h, nil
	case sealtype.Staking:
		h, err := StakingHeaderFromItem(item)
		if err != nil {
			return nil, err
		}
		return h, nil
	default:
		return nil, errors.Wrapf(ErrUnknownSealType, "%s", seal)
	}
}

func decodeBlock(raw []byte, verify bool) (Block, error) {
	item, err := rlptree.Decode(raw)
	if err != nil {
		return nil, err
	}
	return blockFromItem(item, verify)
}

func blockFromItem(item *rlptree.Item, verify bool) (Block, error) {
	if item == nil || !item.IsList() || item.Len() != 2 {
		return nil, errors.Wrap(ErrMalformedBlock, "expected [header, transactions]")
	}
	h, err := headerFromItem(item.At(0))
	if err != nil {
		return nil, err
	}
	body := item.At(1)
	if !body.IsList() {
		return nil, errors.Wrap(ErrMalformedBlock, "transactions are not a list")
	}
	// the body is the tail of the block encoding; both share one private copy
	enc := common.CopyBytes(item.Raw())
	return assemble(h, newLazyTxBody(enc[len(enc)-len(body.Raw()):]), enc, verify)
}

// assemble wraps a validated header and a body into the matching block
// variant. With verify set the body is decoded immediately and checked
// against the header's txTrieRoot.
func assemble(h BlockHeader, body *txBody, enc []byte, verify bool) (Block, error) {
	if verify {
		if err := body.decode(); err != nil {
			return nil, errors.Wrap(ErrMalformedBlock, err.Error())
		}
		if root := CalcTxTrieRoot(body.txs); root != h.TxTrieRoot() {
			return nil, errors.Wrapf(ErrTxTrieRootMismatch, "header %s, computed %s", h.TxTrieRoot().Hex(), root.Hex())
		}
	}
	switch h := h.(type) {
	case *MiningHeader:
		return newDecodedMiningBlock(h, body, enc), nil
	case *StakingHeader:
		return newDecodedStakingBlock(h, body, enc), nil
	default:
		return nil, ErrUnknownSealType
	}
}
