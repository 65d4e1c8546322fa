// Package rlptree decodes RLP input into a tree of byte strings and lists and
// builds RLP output from already-encoded elements.
//
// The go-ethereum rlp package decodes straight into Go values, which is what
// we want for trusted data. Headers arriving from peers have to be inspected
// field by field before any typed value exists (the seal-type byte picks the
// variant, lengths are validated one by one), so this package exposes the
// intermediate tree instead. All length-prefix parsing is delegated to
// rlp.Split, which already rejects truncated and non-canonical prefixes.
//
// Usage:
//   item, err := rlptree.Decode(raw)
//   if err != nil || !item.IsList() { ... }
//   sealByte := item.At(0).Bytes()
package rlptree

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"
)

// MaxDepth bounds list nesting. Block encodings nest at most four levels, the
// limit only exists to keep hostile input from recursing without bound.
const MaxDepth = 64

var (
	// ErrMalformed is returned for any input that is not exactly one
	// well-formed RLP value.
	ErrMalformed = errors.New("rlptree: malformed encoding")

	// ErrTooDeep is returned when list nesting exceeds MaxDepth.
	ErrTooDeep = errors.New("rlptree: nesting too deep")
)

// Item is one decoded RLP value: either a byte string or a list of items.
type Item struct {
	isList bool
	str    []byte
	list   []*Item
	raw    []byte
}

// Decode parses b as a single RLP value. The whole input must be consumed;
// trailing bytes are an error. On failure no partial tree is returned.
func Decode(b []byte) (*Item, error) {
	item, rest, err := decode(b, 0)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, errors.Wrapf(ErrMalformed, "%d trailing bytes", len(rest))
	}
	return item, nil
}

func decode(b []byte, depth int) (*Item, []byte, error) {
	if depth > MaxDepth {
		return nil, nil, ErrTooDeep
	}
	kind, content, rest, err := rlp.Split(b)
	if err != nil {
		return nil, nil, errors.Wrap(ErrMalformed, err.Error())
	}
	item := &Item{raw: b[:len(b)-len(rest)]}
	if kind != rlp.List {
		item.str = content
		return item, rest, nil
	}
	item.isList = true
	item.list = make([]*Item, 0, 16)
	for len(content) > 0 {
		child, tail, err := decode(content, depth+1)
		if err != nil {
			return nil, nil, err
		}
		item.list = append(item.list, child)
		content = tail
	}
	return item, rest, nil
}

// IsList reports whether the item is a list.
func (it *Item) IsList() bool { return it.isList }

// Bytes returns the payload of a string item, nil for lists.
func (it *Item) Bytes() []byte { return it.str }

// List returns the children of a list item, nil for strings.
func (it *Item) List() []*Item { return it.list }

// Len is the number of children of a list item or the payload length of a string.
func (it *Item) Len() int {
	if it.isList {
		return len(it.list)
	}
	return len(it.str)
}

// At returns the i-th child of a list item.
func (it *Item) At(i int) *Item { return it.list[i] }

// Raw returns the exact encoded bytes the item was decoded from, prefix included.
func (it *Item) Raw() []byte { return it.raw }

// Encode is rlp.EncodeToBytes; it lives here so callers composing encodings
// only import one codec package.
func Encode(v interface{}) ([]byte, error) {
	return rlp.EncodeToBytes(v)
}

// EncodeBytes returns the RLP string encoding of b.
func EncodeBytes(b []byte) []byte {
	enc, err := rlp.EncodeToBytes(b)
	if err != nil {
		// byte slices always encode
		panic(err)
	}
	return enc
}

// EncodeUint returns the canonical RLP encoding of an unsigned integer.
func EncodeUint(v uint64) []byte {
	enc, err := rlp.EncodeToBytes(v)
	if err != nil {
		panic(err)
	}
	return enc
}

// EncodeList wraps already-encoded elements into an RLP list.
func EncodeList(elems ...[]byte) []byte {
	raws := make([]rlp.RawValue, len(elems))
	for i, e := range elems {
		raws[i] = e
	}
	enc, err := rlp.EncodeToBytes(raws)
	if err != nil {
		panic(err)
	}
	return enc
}
