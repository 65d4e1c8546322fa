package inter

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/require"
)

func TestUnityDifficultyProduct(t *testing.T) {
	d := NewUnityDifficulty(big.NewInt(6), big.NewInt(7))
	require.Equal(t, big.NewInt(42), d.TotalDifficulty())
	require.Equal(t, big.NewInt(6), d.TotalMiningDifficulty())
	require.Equal(t, big.NewInt(7), d.TotalStakingDifficulty())

	// returned values are copies
	d.TotalDifficulty().SetInt64(0)
	require.Equal(t, big.NewInt(42), d.TotalDifficulty())
}

func TestUnityDifficultyMonotonic(t *testing.T) {
	pairs := []struct{ m1, m2, s int64 }{
		{0, 0, 0},
		{1, 2, 1},
		{10, 10, 5},
		{10, 11, 5},
		{1000, 1 << 40, 3},
	}
	for _, p := range pairs {
		lo := NewUnityDifficulty(big.NewInt(p.m1), big.NewInt(p.s))
		hi := NewUnityDifficulty(big.NewInt(p.m2), big.NewInt(p.s))
		require.True(t, hi.Cmp(lo) >= 0, "%s < %s", hi, lo)

		// same for the staking side
		lo = NewUnityDifficulty(big.NewInt(p.s), big.NewInt(p.m1))
		hi = NewUnityDifficulty(big.NewInt(p.s), big.NewInt(p.m2))
		require.True(t, hi.Cmp(lo) >= 0, "%s < %s", hi, lo)
	}
}

// TestUnityDifficultyComparesProduct checks chains are ordered by the product,
// not component by component.
func TestUnityDifficultyComparesProduct(t *testing.T) {
	a := NewUnityDifficulty(big.NewInt(100), big.NewInt(2)) // 200
	b := NewUnityDifficulty(big.NewInt(20), big.NewInt(20)) // 400
	require.Equal(t, -1, a.Cmp(b))
	require.Equal(t, 0, a.Cmp(NewUnityDifficulty(big.NewInt(2), big.NewInt(100))))
}

func TestUnityDifficultyAccumulate(t *testing.T) {
	require := require.New(t)

	d := NewUnityDifficulty(big.NewInt(1), big.NewInt(1))
	d2 := d.AddMining(big.NewInt(4)).AddStaking(big.NewInt(2))
	require.Equal(big.NewInt(15), d2.TotalDifficulty())
	require.Equal(big.NewInt(1), d.TotalDifficulty())

	d3 := d.AddBlock(fakeMiningHeader()).AddBlock(fakeStakingHeader())
	require.Equal(big.NewInt(17), d3.TotalMiningDifficulty())
	require.Equal(big.NewInt(1001), d3.TotalStakingDifficulty())
}

func TestUnityDifficultyContract(t *testing.T) {
	require.Panics(t, func() { NewUnityDifficulty(nil, big.NewInt(1)) })
	require.Panics(t, func() { NewUnityDifficulty(big.NewInt(1), nil) })
	require.Panics(t, func() { NewUnityDifficulty(big.NewInt(-1), big.NewInt(1)) })
}

func TestUnityDifficultyRLP(t *testing.T) {
	d := NewUnityDifficulty(new(big.Int).Lsh(big.NewInt(1), 100), big.NewInt(12345))
	enc, err := rlp.EncodeToBytes(d)
	require.NoError(t, err)

	var dec UnityDifficulty
	require.NoError(t, rlp.DecodeBytes(enc, &dec))
	require.Equal(t, 0, d.Cmp(&dec))
	require.Equal(t, d.TotalMiningDifficulty(), dec.TotalMiningDifficulty())
	require.Equal(t, d.String(), dec.String())
}
