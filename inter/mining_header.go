package inter

import (
	"fmt"
	"io"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/rony4d/go-unity-asset/inter/sealtype"
	"github.com/rony4d/go-unity-asset/utils/rlptree"
)

var (
	big1   = big.NewInt(1)
	two256 = new(big.Int).Lsh(big1, 256)
)

// MiningHeader is the header of a proof-of-work block. On top of the shared
// fields it carries the 32-byte nonce and the fixed-size puzzle solution.
//
// The zero value is not usable; build headers with NewMiningHeaderBuilder or
// decode them with DecodeMiningHeader.
type MiningHeader struct {
	headerFields
	nonce    Nonce
	solution []byte

	cache headerCache
}

// SealType always returns sealtype.Mining.
func (h *MiningHeader) SealType() sealtype.Type { return sealtype.Mining }

// Nonce returns the proof-of-work nonce.
func (h *MiningHeader) Nonce() Nonce { return h.nonce }

// Solution returns a copy of the proof-of-work solution.
func (h *MiningHeader) Solution() []byte { return common.CopyBytes(h.solution) }

// Encoded returns the canonical RLP encoding. The slice is shared with the
// cache and must not be modified.
func (h *MiningHeader) Encoded() []byte {
	h.cache.encode(h.encode)
	return h.cache.encoded
}

func (h *MiningHeader) encode() []byte {
	elems := h.encodeElems(sealtype.Mining)
	elems = append(elems, rlptree.EncodeBytes(h.nonce[:]), rlptree.EncodeBytes(h.solution))
	return rlptree.EncodeList(elems...)
}

// EncodeRLP implements rlp.Encoder.
func (h *MiningHeader) EncodeRLP(w io.Writer) error {
	return writeEncoded(w, h.Encoded())
}

// Hash returns the digest of the full encoding. Computed once.
func (h *MiningHeader) Hash() common.Hash {
	h.cache.encode(h.encode)
	return h.cache.hash
}

// MineHash returns the digest of the shared fields only, the input of the
// proof-of-work puzzle. Nonce and solution do not affect it.
func (h *MiningHeader) MineHash() common.Hash {
	return h.cache.mine(func() []byte {
		return rlptree.EncodeList(h.encodeElems(sealtype.Mining)...)
	})
}

// PowBoundary returns 2^256 / difficulty, the upper bound a solution hash has
// to stay below. A zero difficulty is treated as one.
func (h *MiningHeader) PowBoundary() *big.Int {
	d := h.DifficultyAsInteger()
	if d.Sign() == 0 {
		d = big1
	}
	return new(big.Int).Div(two256, d)
}

// WithSeal returns a copy of the header carrying a new nonce and solution.
func (h *MiningHeader) WithSeal(nonce Nonce, solution []byte) *MiningHeader {
	return MiningHeaderBuilderFrom(h).Nonce(nonce).Solution(solution).Build()
}

// ToMap returns the field name to hex string projection of the header.
func (h *MiningHeader) ToMap() map[string]string {
	m := h.projection(sealtype.Mining, h.Hash())
	m["nonce"] = hexutil.Encode(h.nonce[:])
	m["solution"] = hexutil.Encode(h.solution)
	m["mineHash"] = h.MineHash().Hex()
	return m
}

func (h *MiningHeader) String() string {
	return fmt.Sprintf("MiningHeader{number=%d hash=%s parent=%s difficulty=%s energy=%d/%d time=%d}",
		h.number, h.Hash().TerminalString(), h.parentHash.TerminalString(),
		h.DifficultyAsInteger(), h.energyConsumed, h.energyLimit, h.timestamp)
}

func (h *MiningHeader) isBlockHeader() {}
