package inter

import (
	"bytes"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/rony4d/go-unity-asset/inter/sealtype"
	"github.com/rony4d/go-unity-asset/inter/validatorpk"
	"github.com/rony4d/go-unity-asset/utils/rlptree"
)

// RawHeaderFields carries the shared header fields exactly as they were read
// from an untrusted source. A nil slice is a missing field.
type RawHeaderFields struct {
	Number          []byte
	ParentHash      []byte
	Coinbase        []byte
	StateRoot       []byte
	TxTrieRoot      []byte
	ReceiptTrieRoot []byte
	LogsBloom       []byte
	Difficulty      []byte
	ExtraData       []byte
	EnergyConsumed  []byte
	EnergyLimit     []byte
	Timestamp       []byte
}

// RawMiningFields is the untrusted input of a mining header.
type RawMiningFields struct {
	RawHeaderFields
	Nonce    []byte
	Solution []byte
}

// RawStakingFields is the untrusted input of a staking header.
type RawStakingFields struct {
	RawHeaderFields
	SeedOrProof      []byte
	Signature        []byte
	SigningPublicKey []byte
}

// NewMiningHeaderFromUnsafeSource validates every field and returns the
// header, or the first *ValidationError found. Nothing is defaulted.
func NewMiningHeaderFromUnsafeSource(raw RawMiningFields) (*MiningHeader, error) {
	f, err := raw.RawHeaderFields.validate()
	if err != nil {
		return nil, err
	}
	if err := exactLength("nonce", raw.Nonce, NonceLength); err != nil {
		return nil, err
	}
	if err := exactLength("solution", raw.Solution, SolutionLength); err != nil {
		return nil, err
	}
	h := &MiningHeader{
		headerFields: f,
		solution:     common.CopyBytes(raw.Solution),
	}
	copy(h.nonce[:], raw.Nonce)
	return h, nil
}

// NewStakingHeaderFromUnsafeSource validates every field and returns the
// header, or the first *ValidationError found. The seed-or-proof field must be
// either SeedLength or ProofLength bytes long.
func NewStakingHeaderFromUnsafeSource(raw RawStakingFields) (*StakingHeader, error) {
	f, err := raw.RawHeaderFields.validate()
	if err != nil {
		return nil, err
	}
	switch {
	case raw.SeedOrProof == nil:
		return nil, invalidField("seedOrProof", "missing")
	case len(raw.SeedOrProof) != SeedLength && len(raw.SeedOrProof) != ProofLength:
		return nil, invalidField("seedOrProof", "length %d is neither a seed (%d) nor a proof (%d)",
			len(raw.SeedOrProof), SeedLength, ProofLength)
	}
	if err := exactLength("signature", raw.Signature, SignatureLength); err != nil {
		return nil, err
	}
	key, err := validatorpk.FromBytes(raw.SigningPublicKey)
	if err != nil {
		if raw.SigningPublicKey == nil {
			return nil, invalidField("signingPublicKey", "missing")
		}
		return nil, invalidField("signingPublicKey", "%v", err)
	}
	h := &StakingHeader{
		headerFields: f,
		seedOrProof:  common.CopyBytes(raw.SeedOrProof),
		signingKey:   key,
	}
	copy(h.signature[:], raw.Signature)
	return h, nil
}

func (raw *RawHeaderFields) validate() (f headerFields, err error) {
	if f.number, err = numeric("number", raw.Number); err != nil {
		return
	}
	if f.parentHash, err = hashField("parentHash", raw.ParentHash); err != nil {
		return
	}
	if err = exactLength("coinbase", raw.Coinbase, AddressLength); err != nil {
		return
	}
	f.coinbase = BytesToAddress(raw.Coinbase)
	if f.stateRoot, err = hashField("stateRoot", raw.StateRoot); err != nil {
		return
	}
	if f.txTrieRoot, err = hashField("txTrieRoot", raw.TxTrieRoot); err != nil {
		return
	}
	if f.receiptTrieRoot, err = hashField("receiptTrieRoot", raw.ReceiptTrieRoot); err != nil {
		return
	}
	if err = exactLength("logsBloom", raw.LogsBloom, BloomLength); err != nil {
		return
	}
	copy(f.logsBloom[:], raw.LogsBloom)
	if err = maxLength("difficulty", raw.Difficulty, MaxDifficultyLength); err != nil {
		return
	}
	f.difficulty = common.CopyBytes(raw.Difficulty)
	if err = maxLength("extraData", raw.ExtraData, MaxExtraDataLength); err != nil {
		return
	}
	f.extraData = common.CopyBytes(raw.ExtraData)
	if f.energyConsumed, err = numeric("energyConsumed", raw.EnergyConsumed); err != nil {
		return
	}
	if f.energyLimit, err = numeric("energyLimit", raw.EnergyLimit); err != nil {
		return
	}
	f.timestamp, err = numeric("timestamp", raw.Timestamp)
	return
}

func exactLength(field string, b []byte, size int) error {
	if b == nil {
		return invalidField(field, "missing")
	}
	if len(b) != size {
		return invalidField(field, "expected %d bytes, got %d", size, len(b))
	}
	return nil
}

func maxLength(field string, b []byte, max int) error {
	if b == nil {
		return invalidField(field, "missing")
	}
	if len(b) > max {
		return invalidField(field, "at most %d bytes allowed, got %d", max, len(b))
	}
	return nil
}

func hashField(field string, b []byte) (common.Hash, error) {
	if err := exactLength(field, b, HashLength); err != nil {
		return common.Hash{}, err
	}
	return common.BytesToHash(b), nil
}

// numeric parses a big-endian unsigned integer. Leading zero bytes are
// rejected so that re-encoding reproduces the input.
func numeric(field string, b []byte) (uint64, error) {
	if err := maxLength(field, b, MaxNumericLength); err != nil {
		return 0, err
	}
	if len(b) > 0 && b[0] == 0 {
		return 0, invalidField(field, "non-canonical integer %x", b)
	}
	var v uint64
	for _, x := range b {
		v = v<<8 | uint64(x)
	}
	return v, nil
}

// DecodeMiningHeader decodes and validates an encoded mining header.
func DecodeMiningHeader(enc []byte) (*MiningHeader, error) {
	item, err := rlptree.Decode(enc)
	if err != nil {
		return nil, err
	}
	return MiningHeaderFromItem(item)
}

// DecodeStakingHeader decodes and validates an encoded staking header.
func DecodeStakingHeader(enc []byte) (*StakingHeader, error) {
	item, err := rlptree.Decode(enc)
	if err != nil {
		return nil, err
	}
	return StakingHeaderFromItem(item)
}

// MiningHeaderFromItem builds a mining header from an already decoded list.
func MiningHeaderFromItem(item *rlptree.Item) (*MiningHeader, error) {
	elems, err := headerElems(item, sealtype.Mining, commonFieldCount+2)
	if err != nil {
		return nil, err
	}
	return NewMiningHeaderFromUnsafeSource(RawMiningFields{
		RawHeaderFields: rawCommon(elems),
		Nonce:           elems[13],
		Solution:        elems[14],
	})
}

// StakingHeaderFromItem builds a staking header from an already decoded list.
func StakingHeaderFromItem(item *rlptree.Item) (*StakingHeader, error) {
	elems, err := headerElems(item, sealtype.Staking, commonFieldCount+3)
	if err != nil {
		return nil, err
	}
	return NewStakingHeaderFromUnsafeSource(RawStakingFields{
		RawHeaderFields:  rawCommon(elems),
		SeedOrProof:      elems[13],
		Signature:        elems[14],
		SigningPublicKey: elems[15],
	})
}

// headerElems checks the shape of an encoded header and returns the payload of
// every element. Decoded payloads are never nil, so absent fields can only
// show up as wrong arity.
func headerElems(item *rlptree.Item, want sealtype.Type, arity int) ([][]byte, error) {
	if item == nil || !item.IsList() {
		return nil, errors.Wrap(ErrHeaderArity, "header is not a list")
	}
	if item.Len() != arity {
		return nil, errors.Wrapf(ErrHeaderArity, "%s header needs %d elements, got %d", want, arity, item.Len())
	}
	elems := make([][]byte, arity)
	for i, el := range item.List() {
		if el.IsList() {
			return nil, invalidField(headerFieldNames[i], "unexpected list")
		}
		elems[i] = nonNilPayload(el.Bytes())
	}
	if !bytes.Equal(elems[0], []byte{byte(want)}) {
		return nil, errors.Wrapf(ErrSealTypeMismatch, "expected %s, got %x", want, elems[0])
	}
	return elems, nil
}

func rawCommon(elems [][]byte) RawHeaderFields {
	return RawHeaderFields{
		Number:          elems[1],
		ParentHash:      elems[2],
		Coinbase:        elems[3],
		StateRoot:       elems[4],
		TxTrieRoot:      elems[5],
		ReceiptTrieRoot: elems[6],
		LogsBloom:       elems[7],
		Difficulty:      elems[8],
		ExtraData:       elems[9],
		EnergyConsumed:  elems[10],
		EnergyLimit:     elems[11],
		Timestamp:       elems[12],
	}
}

func nonNilPayload(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}

// headerFieldNames names the encoded elements by position, for errors.
var headerFieldNames = [...]string{
	"sealType", "number", "parentHash", "coinbase", "stateRoot", "txTrieRoot",
	"receiptTrieRoot", "logsBloom", "difficulty", "extraData", "energyConsumed",
	"energyLimit", "timestamp", "seal0", "seal1", "seal2",
}
