// Package sealtype defines the one-byte discriminant that tells a proof-of-work
// (mining) header apart from a proof-of-stake (staking) header. The byte is
// always the first element of an encoded header list, so block dispatch can
// route raw input to the right decoder before decoding anything else.

package sealtype

import (
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"
)

// Type is the seal-type discriminant carried by every header.
type Type byte

const (
	// Mining marks a header sealed by a proof-of-work nonce and solution.
	Mining Type = 0x01

	// Staking marks a header sealed by a validator signature over a seed or VRF proof.
	Staking Type = 0x02
)

// IsValid reports whether t is one of the known seal types.
func (t Type) IsValid() bool {
	return t == Mining || t == Staking
}

// String returns a short human-readable name.
func (t Type) String() string {
	switch t {
	case Mining:
		return "mining"
	case Staking:
		return "staking"
	default:
		return fmt.Sprintf("unknown(0x%02x)", byte(t))
	}
}

// Peek reads the seal type of an encoded header without decoding the rest of
// it. The input must start with an RLP list whose first element is a single
// byte. The returned type is not checked for validity.
func Peek(encodedHeader []byte) (Type, error) {
	content, _, err := rlp.SplitList(encodedHeader)
	if err != nil {
		return 0, err
	}
	kind, first, _, err := rlp.Split(content)
	if err != nil {
		return 0, err
	}
	if kind == rlp.List || len(first) != 1 {
		return 0, fmt.Errorf("seal type must be a single byte, got %d bytes", len(first))
	}
	return Type(first[0]), nil
}
