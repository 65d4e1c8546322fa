package inter

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/rony4d/go-unity-asset/inter/validatorpk"
)

// AddressLength is the size of a Unity account address.
const AddressLength = 32

// Address is a 32-byte Unity account address. Unlike Ethereum addresses the
// identifier is not truncated from the key hash; the whole digest is kept.
type Address [AddressLength]byte

// BytesToAddress converts b to an address. If b is longer than AddressLength
// the leading bytes are dropped, shorter input is left-padded with zeroes.
func BytesToAddress(b []byte) Address {
	var a Address
	if len(b) > len(a) {
		b = b[len(b)-AddressLength:]
	}
	copy(a[AddressLength-len(b):], b)
	return a
}

// HexToAddress parses a hex string (0x prefix optional) into an address.
func HexToAddress(s string) Address { return BytesToAddress(common.FromHex(s)) }

// Bytes returns a copy of the address bytes.
func (a Address) Bytes() []byte { return common.CopyBytes(a[:]) }

// Hex returns the 0x-prefixed hex form of the address.
func (a Address) Hex() string { return hexutil.Encode(a[:]) }

// String implements fmt.Stringer.
func (a Address) String() string { return a.Hex() }

// IsZero reports whether every byte of the address is zero.
func (a Address) IsZero() bool { return a == Address{} }

// MarshalText encodes the address as 0x-prefixed hex.
func (a Address) MarshalText() ([]byte, error) {
	return hexutil.Bytes(a[:]).MarshalText()
}

// UnmarshalText decodes a 0x-prefixed hex address of exactly AddressLength bytes.
func (a *Address) UnmarshalText(input []byte) error {
	return hexutil.UnmarshalFixedText("Address", input, a[:])
}

// AccountAddressPrefix is the first byte of every account address derived
// from an Ed25519 key.
const AccountAddressPrefix = 0xa0

// PubKeyToAddress derives the account address of a signing key: the prefix
// byte followed by the last 31 bytes of the key's BLAKE2b-256 digest.
func PubKeyToAddress(pk validatorpk.PubKey) Address {
	a := Address(digest(pk[:]))
	a[0] = AccountAddressPrefix
	return a
}
