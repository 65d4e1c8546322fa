package inter

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rony4d/go-unity-asset/inter/sealtype"
	"github.com/rony4d/go-unity-asset/utils/rlptree"
)

// relabel re-encodes a block with the header's seal byte replaced.
func relabel(t *testing.T, enc []byte, seal byte) []byte {
	item, err := rlptree.Decode(enc)
	require.NoError(t, err)
	header := item.At(0)
	elems := [][]byte{rlptree.EncodeUint(uint64(seal))}
	for _, el := range header.List()[1:] {
		elems = append(elems, el.Raw())
	}
	return rlptree.EncodeList(rlptree.EncodeList(elems...), item.At(1).Raw())
}

func TestDispatchBySealType(t *testing.T) {
	require := require.New(t)

	txs := fakeTxs(2, nil)
	mining := fakeMiningBlock(txs).Encoded()
	staking := fakeStakingBlock(txs).Encoded()

	for _, decode := range []func([]byte) Block{NewBlockFromRLP, NewBlockFromUnsafeSource} {
		b := decode(mining)
		require.IsType(&MiningBlock{}, b)
		require.Equal(sealtype.Mining, b.SealType())

		b = decode(staking)
		require.IsType(&StakingBlock{}, b)
		require.Equal(sealtype.Staking, b.SealType())

		for _, seal := range []byte{0x00, 0x03, 0x7f} {
			require.Nil(decode(relabel(t, mining, seal)), "seal 0x%02x", seal)
		}
		// known seal byte, wrong variant
		require.Nil(decode(relabel(t, mining, byte(sealtype.Staking))))
		require.Nil(decode(relabel(t, staking, byte(sealtype.Mining))))
	}
}

func TestDispatchHeaders(t *testing.T) {
	require := require.New(t)

	m := fakeMiningHeader()
	s := fakeStakingHeader()

	require.IsType(&MiningHeader{}, NewHeaderFromRLP(m.Encoded()))
	require.IsType(&StakingHeader{}, NewHeaderFromRLP(s.Encoded()))
	require.Equal(m.Hash(), NewHeaderFromRLP(m.Encoded()).Hash())

	item, err := rlptree.Decode(s.Encoded())
	require.NoError(err)
	require.Equal(s.Hash(), NewHeaderFromItem(item).Hash())

	require.Nil(NewHeaderFromRLP(nil))
	require.Nil(NewHeaderFromRLP([]byte{0xc0}))
	require.Nil(NewHeaderFromRLP(m.Encoded()[:len(m.Encoded())-1]))
	require.Nil(NewHeaderFromItem(nil))
}

func TestDispatchRejectsGarbage(t *testing.T) {
	require := require.New(t)

	good := fakeMiningBlock(nil).Encoded()
	header := fakeMiningHeader().Encoded()

	inputs := map[string][]byte{
		"empty":          nil,
		"truncated":      good[:len(good)-1],
		"trailing":       append(append([]byte{}, good...), 0x00),
		"header only":    rlptree.EncodeList(header),
		"three elements": rlptree.EncodeList(header, rlptree.EncodeList(), rlptree.EncodeList()),
		"body not list":  rlptree.EncodeList(header, rlptree.EncodeBytes([]byte{0x01})),
		"string":         rlptree.EncodeBytes([]byte("block")),
	}
	for name, in := range inputs {
		require.Nil(NewBlockFromRLP(in), name)
		require.Nil(NewBlockFromUnsafeSource(in), name)
	}
}

// TestTxTrieRejection flips one byte inside a transaction payload. The storage
// path does not look at the trie, the network path must drop the block.
func TestTxTrieRejection(t *testing.T) {
	require := require.New(t)

	payload := bytes.Repeat([]byte{0xab}, 64)
	enc := fakeMiningBlock(fakeTxs(3, payload)).Encoded()
	require.NotNil(NewBlockFromUnsafeSource(enc))

	pos := bytes.Index(enc, payload)
	require.True(pos > 0)
	tampered := append([]byte{}, enc...)
	tampered[pos+10] ^= 0x01

	require.Nil(NewBlockFromUnsafeSource(tampered))

	item, err := rlptree.Decode(tampered)
	require.NoError(err)
	require.Nil(NewBlockFromItem(item))

	stored := NewBlockFromRLP(tampered)
	require.NotNil(stored)
	require.NoError(stored.DecodeBody())
}

func TestNewBlockWithHeaderAndBody(t *testing.T) {
	require := require.New(t)

	txs := fakeTxs(2, []byte("body"))
	b := fakeMiningBlock(txs)
	item, err := rlptree.Decode(b.Encoded())
	require.NoError(err)
	body := item.At(1).Raw()

	joined := NewBlockWithHeaderAndBody(b.Header().Encoded(), body)
	require.NotNil(joined)
	require.Equal(b.Encoded(), joined.Encoded())

	// a body belonging to another block
	other, err := rlptree.Decode(fakeMiningBlock(fakeTxs(1, nil)).Encoded())
	require.NoError(err)
	require.Nil(NewBlockWithHeaderAndBody(b.Header().Encoded(), other.At(1).Raw()))

	require.Nil(NewBlockWithHeaderAndBody(b.Header().Encoded(), []byte{0x01}))
	require.Nil(NewBlockWithHeaderAndBody([]byte{0xc0}, body))
}

// TestDecodedInputNotAliased checks that decoded blocks keep no reference to
// the caller's buffer.
func TestDecodedInputNotAliased(t *testing.T) {
	enc := fakeMiningBlock(fakeTxs(1, nil)).Encoded()
	in := append([]byte{}, enc...)

	b := NewBlockFromRLP(in)
	require.NotNil(t, b)
	for i := range in {
		in[i] = 0
	}
	require.Equal(t, enc, b.Encoded())
	require.NoError(t, b.DecodeBody())
}
