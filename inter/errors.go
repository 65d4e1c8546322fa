package inter

import (
	"fmt"

	"github.com/pkg/errors"
)

// Errors raised while building, decoding or mutating headers and blocks.
var (
	// ErrInvalidField is the root of every field validation failure on the
	// untrusted path. Match it with errors.Is.
	ErrInvalidField = errors.New("invalid header field")

	// ErrHeaderArity is returned when an encoded header list does not have
	// the number of elements its seal type requires.
	ErrHeaderArity = errors.New("wrong number of header elements")

	// ErrSealTypeMismatch is returned when a decoder for one seal type is
	// handed a header carrying another.
	ErrSealTypeMismatch = errors.New("seal type mismatch")

	// ErrUnknownSealType is returned for headers whose first element is not a
	// known seal-type byte.
	ErrUnknownSealType = errors.New("unknown seal type")

	// ErrMissingStakingField is returned by StakingHeaderBuilder.Build when
	// the seed or proof, the signature or the signing key was never set.
	ErrMissingStakingField = errors.New("staking header requires seed or proof, signature and signing public key")

	// ErrTxTrieRootMismatch is returned when the transactions of a block do
	// not hash to the root its header declares.
	ErrTxTrieRootMismatch = errors.New("transaction trie root mismatch")

	// ErrMalformedBlock is returned for block encodings that are not a
	// two-element [header, transactions] list.
	ErrMalformedBlock = errors.New("malformed block encoding")

	// ErrBlockSealed is the panic value raised when a sealed block is asked
	// to replace its transactions, state or extra data again.
	ErrBlockSealed = errors.New("block already sealed")
)

// ValidationError describes a single rejected header field.
type ValidationError struct {
	Field  string
	Reason string
}

// Error implements error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v %s: %s", ErrInvalidField, e.Field, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidField.
func (e *ValidationError) Unwrap() error { return ErrInvalidField }

func invalidField(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// LazyDecodeError is the panic value raised when the deferred decoding of a
// block body fails on first access.
type LazyDecodeError struct {
	BlockHash string
	Err       error
}

func (e *LazyDecodeError) Error() string {
	return fmt.Sprintf("lazy decode of block %s body failed: %v", e.BlockHash, e.Err)
}

func (e *LazyDecodeError) Unwrap() error { return e.Err }
