package inter

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/rony4d/go-unity-asset/inter/sealtype"
	"github.com/rony4d/go-unity-asset/inter/validatorpk"
	"github.com/rony4d/go-unity-asset/utils/rlptree"
)

// StakingHeader is the header of a proof-of-stake block. It carries either a
// 64-byte seed or an 80-byte VRF proof (told apart by length), the staker's
// signature over the mine hash, and the key that produced the signature.
type StakingHeader struct {
	headerFields
	seedOrProof []byte
	signature   Signature
	signingKey  validatorpk.PubKey

	cache headerCache
}

// SealType always returns sealtype.Staking.
func (h *StakingHeader) SealType() sealtype.Type { return sealtype.Staking }

// SeedOrProof returns a copy of the combined seed/proof field.
func (h *StakingHeader) SeedOrProof() []byte { return common.CopyBytes(h.seedOrProof) }

// IsSeed reports whether the header carries a seed.
func (h *StakingHeader) IsSeed() bool { return len(h.seedOrProof) == SeedLength }

// IsProof reports whether the header carries a VRF proof.
func (h *StakingHeader) IsProof() bool { return len(h.seedOrProof) == ProofLength }

// Seed returns the seed, or nil if the header carries a proof.
func (h *StakingHeader) Seed() []byte {
	if !h.IsSeed() {
		return nil
	}
	return h.SeedOrProof()
}

// Proof returns the VRF proof, or nil if the header carries a seed.
func (h *StakingHeader) Proof() []byte {
	if !h.IsProof() {
		return nil
	}
	return h.SeedOrProof()
}

func (h *StakingHeader) Signature() Signature       { return h.signature }
func (h *StakingHeader) SigningPublicKey() []byte   { return h.signingKey.Bytes() }
func (h *StakingHeader) PubKey() validatorpk.PubKey { return h.signingKey }

// IsSealed reports whether both the signature and the signing key are set.
func (h *StakingHeader) IsSealed() bool {
	return !h.signature.IsZero() && !h.signingKey.Empty()
}

// VerifySignature checks the signature against the mine hash and the signing key.
func (h *StakingHeader) VerifySignature() bool {
	return h.signingKey.Verify(h.MineHash().Bytes(), h.signature[:])
}

// Encoded returns the canonical RLP encoding. The slice is shared with the
// cache and must not be modified.
func (h *StakingHeader) Encoded() []byte {
	h.cache.encode(h.encode)
	return h.cache.encoded
}

func (h *StakingHeader) encode() []byte {
	elems := h.encodeElems(sealtype.Staking)
	elems = append(elems,
		rlptree.EncodeBytes(h.seedOrProof),
		rlptree.EncodeBytes(h.signature[:]),
		rlptree.EncodeBytes(h.signingKey[:]),
	)
	return rlptree.EncodeList(elems...)
}

// EncodeRLP implements rlp.Encoder.
func (h *StakingHeader) EncodeRLP(w io.Writer) error {
	return writeEncoded(w, h.Encoded())
}

// Hash returns the digest of the full encoding. Computed once.
func (h *StakingHeader) Hash() common.Hash {
	h.cache.encode(h.encode)
	return h.cache.hash
}

// MineHash is the digest of the shared fields followed by the seed or proof.
// It is the message the staker signs, so signature and key are excluded.
func (h *StakingHeader) MineHash() common.Hash {
	return h.cache.mine(func() []byte {
		elems := h.encodeElems(sealtype.Staking)
		elems = append(elems, rlptree.EncodeBytes(h.seedOrProof))
		return rlptree.EncodeList(elems...)
	})
}

// WithSeal returns a copy of the header carrying the given signature and key.
func (h *StakingHeader) WithSeal(signature Signature, key validatorpk.PubKey) *StakingHeader {
	return StakingHeaderBuilderFrom(h).Signature(signature).SigningPublicKey(key).mustBuild()
}

// ToMap returns the field name to hex string projection of the header.
func (h *StakingHeader) ToMap() map[string]string {
	m := h.projection(sealtype.Staking, h.Hash())
	if h.IsProof() {
		m["proof"] = hexutil.Encode(h.seedOrProof)
	} else {
		m["seed"] = hexutil.Encode(h.seedOrProof)
	}
	m["signature"] = hexutil.Encode(h.signature[:])
	m["signingPublicKey"] = h.signingKey.String()
	m["mineHash"] = h.MineHash().Hex()
	return m
}

func (h *StakingHeader) String() string {
	return fmt.Sprintf("StakingHeader{number=%d hash=%s parent=%s difficulty=%s sealed=%t time=%d}",
		h.number, h.Hash().TerminalString(), h.parentHash.TerminalString(),
		h.DifficultyAsInteger(), h.IsSealed(), h.timestamp)
}

func (h *StakingHeader) isBlockHeader() {}
