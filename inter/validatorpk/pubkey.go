// Package validatorpk holds the public key a staker signs staking block headers
// with. Unity stakers sign with Ed25519, so a key is always exactly 32 bytes
// and a signature exactly 64 bytes; both are carried verbatim in the header
// encoding.

package validatorpk

import (
	"crypto/ed25519"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

const (
	// Size is the length of an encoded signing public key.
	Size = ed25519.PublicKeySize

	// SignatureSize is the length of a signature produced by the key.
	SignatureSize = ed25519.SignatureSize
)

// PubKey is a staker's signing public key. The zero value is the "unset" key
// a staking header carries before it is sealed.
type PubKey [Size]byte

// Empty reports whether the key is all zeroes.
func (pk PubKey) Empty() bool {
	return pk == PubKey{}
}

// Bytes returns a copy of the raw key bytes.
func (pk PubKey) Bytes() []byte {
	return common.CopyBytes(pk[:])
}

// String returns the 0x-prefixed hex form of the key.
func (pk PubKey) String() string {
	return hexutil.Encode(pk[:])
}

// Verify checks sig as an Ed25519 signature of msg under pk. An empty key
// never verifies.
func (pk PubKey) Verify(msg, sig []byte) bool {
	if pk.Empty() || len(sig) != SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pk[:]), msg, sig)
}

// FromBytes builds a key from exactly Size bytes.
func FromBytes(b []byte) (PubKey, error) {
	var pk PubKey
	if len(b) != Size {
		return pk, fmt.Errorf("signing public key must be %d bytes, got %d", Size, len(b))
	}
	copy(pk[:], b)
	return pk, nil
}

// FromString parses a hex string, with or without the 0x prefix.
func FromString(str string) (PubKey, error) {
	return FromBytes(common.FromHex(str))
}

// FromPrivateKey derives the public half of an Ed25519 private key.
func FromPrivateKey(priv ed25519.PrivateKey) PubKey {
	var pk PubKey
	copy(pk[:], priv.Public().(ed25519.PublicKey))
	return pk
}

// MarshalText implements encoding.TextMarshaler.
func (pk PubKey) MarshalText() ([]byte, error) {
	return []byte(pk.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (pk *PubKey) UnmarshalText(input []byte) error {
	res, err := FromString(string(input))
	if err != nil {
		return err
	}
	*pk = res
	return nil
}
