package genesis

import (
	"math/big"

	"github.com/ethereum/go-ethereum/core/types"

	"github.com/rony4d/go-unity-asset/inter"
	"github.com/rony4d/go-unity-asset/inter/validatorpk"
)

// GenesisStakingBlock anchors the proof-of-stake side of the chain before any
// real staking block exists. It is a degenerate staking block: number 0, an
// all-zero seed, no extra data, no signature and no signing key. Its
// difficulty is the genesis staking difficulty, the first value of the
// staking difficulty series.
type GenesisStakingBlock struct {
	*inter.StakingBlock
}

func newGenesisStakingBlock(mining *inter.MiningHeader, stakingDifficulty *big.Int) *GenesisStakingBlock {
	header, err := inter.NewStakingHeaderBuilder().
		Number(0).
		ParentHash(mining.ParentHash()).
		Coinbase(mining.Coinbase()).
		StateRoot(mining.StateRoot()).
		Difficulty(stakingDifficulty).
		EnergyLimit(mining.EnergyLimit()).
		Timestamp(mining.Timestamp()).
		SeedOrProof(make([]byte, inter.SeedLength)).
		Signature(inter.Signature{}).
		SigningPublicKey(validatorpk.PubKey{}).
		Build()
	if err != nil {
		// every seal field is set above
		panic(err)
	}
	block := inter.NewStakingBlock(header, nil)
	block.UpdateTransactionAndState(nil, types.EmptyRootHash, mining.StateRoot(), types.Bloom{}, types.EmptyRootHash, 0)
	return &GenesisStakingBlock{StakingBlock: block}
}
