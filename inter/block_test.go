package inter

import (
	"bytes"
	"crypto/ed25519"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/require"

	"github.com/rony4d/go-unity-asset/inter/validatorpk"
	"github.com/rony4d/go-unity-asset/utils/rlptree"
)

// fakeMiningBlock returns an open block whose header commits to txs.
func fakeMiningBlock(txs types.Transactions) *MiningBlock {
	h := fakeMiningBuilder().TxTrieRoot(CalcTxTrieRoot(txs)).Build()
	return NewMiningBlock(h, txs)
}

func TestCalcTxTrieRoot(t *testing.T) {
	require.Equal(t, types.EmptyRootHash, CalcTxTrieRoot(nil))
	require.Equal(t, types.EmptyRootHash, CalcTxTrieRoot(types.Transactions{}))

	a := CalcTxTrieRoot(fakeTxs(3, nil))
	require.NotEqual(t, types.EmptyRootHash, a)
	require.Equal(t, a, CalcTxTrieRoot(fakeTxs(3, nil)))
	require.NotEqual(t, a, CalcTxTrieRoot(fakeTxs(2, nil)))
}

func TestBlockEncoding(t *testing.T) {
	require := require.New(t)

	txs := fakeTxs(4, []byte("payload"))
	b := fakeMiningBlock(txs)

	item, err := rlptree.Decode(b.Encoded())
	require.NoError(err)
	require.Equal(2, item.Len())
	require.Equal(b.Header().Encoded(), item.At(0).Raw())
	require.True(item.At(1).IsList())
	require.Equal(4, item.At(1).Len())

	require.Equal(common.StorageSize(len(b.Encoded())), b.Size())
	require.Equal(b.Header().Hash(), b.Hash())
	require.Equal(uint64(42), uint64(b.BlockIndex()))
}

func TestBlockRoundTrip(t *testing.T) {
	require := require.New(t)

	txs := fakeTxs(3, []byte{0x01, 0x02})
	for _, orig := range []Block{fakeMiningBlock(txs), fakeStakingBlock(txs)} {
		enc := orig.Encoded()

		dec := NewBlockFromUnsafeSource(enc)
		require.NotNil(dec)
		require.Equal(enc, dec.Encoded())
		require.Equal(orig.Hash(), dec.Hash())
		require.Equal(orig.SealType(), dec.SealType())
		require.Equal(Sealed, dec.State())

		got := dec.Transactions()
		require.Len(got, len(txs))
		for i := range txs {
			require.Equal(txs[i].Hash(), got[i].Hash())
		}
	}
}

func fakeStakingBlock(txs types.Transactions) *StakingBlock {
	h, err := fakeStakingBuilder().TxTrieRoot(CalcTxTrieRoot(txs)).Build()
	if err != nil {
		panic(err)
	}
	return NewStakingBlock(h, txs)
}

func TestUpdateTransactionAndState(t *testing.T) {
	require := require.New(t)

	b := NewMiningBlock(fakeMiningHeader(), nil)
	require.Equal(Open, b.State())
	before := b.Encoded()

	txs := fakeTxs(2, nil)
	txRoot := CalcTxTrieRoot(txs)
	stateRoot := common.HexToHash("0xaaaa")
	receiptRoot := common.HexToHash("0xbbbb")
	var bloom types.Bloom
	bloom[7] = 0x01

	b.UpdateTransactionAndState(txs, txRoot, stateRoot, bloom, receiptRoot, 42000)
	require.Equal(Sealed, b.State())
	require.Equal(txRoot, b.TxTrieRoot())
	require.Equal(stateRoot, b.StateRoot())
	require.Equal(receiptRoot, b.ReceiptsRoot())
	require.Equal(bloom, b.LogsBloom())
	require.Equal(uint64(42000), b.EnergyConsumed())
	require.Len(b.Transactions(), 2)
	require.NotEqual(before, b.Encoded())

	// the new header still verifies against its body
	require.NotNil(NewBlockFromUnsafeSource(b.Encoded()))

	require.PanicsWithValue(ErrBlockSealed, func() {
		b.UpdateTransactionAndState(txs, txRoot, stateRoot, bloom, receiptRoot, 42000)
	})
	require.PanicsWithValue(ErrBlockSealed, func() {
		_ = b.UpdateExtraData([]byte("late"))
	})
}

func TestSealPoWInvalidatesEncoding(t *testing.T) {
	require := require.New(t)

	b := fakeMiningBlock(nil)
	hash, enc := b.Hash(), b.Encoded()
	require.Equal(enc, b.Encoded())

	solution := bytes.Repeat([]byte{0x77}, SolutionLength)
	require.NoError(b.SealPoW(Nonce{0x99}, solution))
	require.NotEqual(hash, b.Hash())
	require.NotEqual(enc, b.Encoded())
	require.Equal(Nonce{0x99}, b.MiningHeader().Nonce())
	require.Equal(solution, b.MiningHeader().Solution())

	dec := NewBlockFromRLP(b.Encoded())
	require.NotNil(dec)
	require.Equal(b.Hash(), dec.Hash())

	require.Error(b.SealPoW(Nonce{}, make([]byte, 10)))
}

func TestUpdateExtraData(t *testing.T) {
	require := require.New(t)

	b := fakeMiningBlock(nil)
	enc := b.Encoded()
	require.NoError(b.UpdateExtraData([]byte("hello")))
	require.Equal([]byte("hello"), b.ExtraData())
	require.NotEqual(enc, b.Encoded())

	require.Error(b.UpdateExtraData(make([]byte, MaxExtraDataLength+1)))
	require.Equal([]byte("hello"), b.ExtraData())
}

func TestStakingBlockSeal(t *testing.T) {
	require := require.New(t)

	b := fakeStakingBlock(nil)
	require.True(b.StakingHeader().IsSeed())
	require.False(b.StakingHeader().IsSealed())

	b.UpdateTransactionAndState(nil, types.EmptyRootHash, common.HexToHash("0x01"), types.Bloom{}, types.EmptyRootHash, 0)
	require.False(b.StakingHeader().IsSealed())

	// re-signing stays allowed after sealing
	b.Seal(Signature{0x01}, validatorpk.PubKey{0x02})
	require.True(b.StakingHeader().IsSealed())
	require.False(b.StakingHeader().VerifySignature())

	priv := fakeSigner()
	b.SignWith(priv)
	h := b.StakingHeader()
	require.True(h.IsSealed())
	require.True(h.VerifySignature())
	require.Equal([]byte(priv.Public().(ed25519.PublicKey)), h.SigningPublicKey())

	dec := NewBlockFromUnsafeSource(b.Encoded())
	require.NotNil(dec)
	require.True(dec.(*StakingBlock).StakingHeader().VerifySignature())
}

func TestLazyBodyConcurrentDecode(t *testing.T) {
	require := require.New(t)

	txs := fakeTxs(50, []byte("lazy"))
	b := NewBlockFromRLP(fakeMiningBlock(txs).Encoded())
	require.NotNil(b)

	const readers = 16
	results := make([]types.Transactions, readers)
	var wg sync.WaitGroup
	wg.Add(readers)
	for i := 0; i < readers; i++ {
		go func(i int) {
			defer wg.Done()
			results[i] = b.Transactions()
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		require.Len(got, len(txs))
		for i := range txs {
			require.Equal(txs[i].Hash(), got[i].Hash())
		}
	}
}

func TestLazyBodyCorrupt(t *testing.T) {
	require := require.New(t)

	h := fakeMiningHeader()
	// a single-byte string is not a valid typed transaction
	enc := rlptree.EncodeList(h.Encoded(), rlptree.EncodeList(rlptree.EncodeBytes([]byte{0x05})))

	b := NewBlockFromRLP(enc)
	require.NotNil(b)
	require.Error(b.DecodeBody())

	defer func() {
		r := recover()
		require.NotNil(r)
		lazyErr, ok := r.(*LazyDecodeError)
		require.True(ok, "unexpected panic value %v", r)
		require.Equal(h.Hash().Hex(), lazyErr.BlockHash)
	}()
	b.Transactions()
}
