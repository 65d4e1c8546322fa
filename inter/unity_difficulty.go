package inter

import (
	"fmt"
	"io"
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"
)

// UnityDifficulty is the fork-choice weight of a chain: the accumulated
// mining difficulty, the accumulated staking difficulty and their product.
// Chains are compared by the product only.
//
// Values are immutable; the Add methods return new values.
type UnityDifficulty struct {
	total   *big.Int
	mining  *big.Int
	staking *big.Int
}

// NewUnityDifficulty combines the two accumulated difficulties. A nil or
// negative component is a programming error and panics.
func NewUnityDifficulty(mining, staking *big.Int) *UnityDifficulty {
	if mining == nil || staking == nil {
		panic("unity difficulty component is nil")
	}
	if mining.Sign() < 0 || staking.Sign() < 0 {
		panic("unity difficulty component is negative")
	}
	return &UnityDifficulty{
		total:   new(big.Int).Mul(mining, staking),
		mining:  new(big.Int).Set(mining),
		staking: new(big.Int).Set(staking),
	}
}

// TotalDifficulty returns miningDifficulty * stakingDifficulty.
func (d *UnityDifficulty) TotalDifficulty() *big.Int { return new(big.Int).Set(d.total) }

// TotalMiningDifficulty returns the accumulated mining difficulty.
func (d *UnityDifficulty) TotalMiningDifficulty() *big.Int { return new(big.Int).Set(d.mining) }

// TotalStakingDifficulty returns the accumulated staking difficulty.
func (d *UnityDifficulty) TotalStakingDifficulty() *big.Int { return new(big.Int).Set(d.staking) }

// AddMining returns the weight after a mining block of the given difficulty.
func (d *UnityDifficulty) AddMining(diff *big.Int) *UnityDifficulty {
	return NewUnityDifficulty(new(big.Int).Add(d.mining, diff), d.staking)
}

// AddStaking returns the weight after a staking block of the given difficulty.
func (d *UnityDifficulty) AddStaking(diff *big.Int) *UnityDifficulty {
	return NewUnityDifficulty(d.mining, new(big.Int).Add(d.staking, diff))
}

// AddBlock accumulates the difficulty of h into the component matching its seal type.
func (d *UnityDifficulty) AddBlock(h BlockHeader) *UnityDifficulty {
	if _, ok := h.(*StakingHeader); ok {
		return d.AddStaking(h.DifficultyAsInteger())
	}
	return d.AddMining(h.DifficultyAsInteger())
}

// Cmp compares the total difficulties of d and o.
func (d *UnityDifficulty) Cmp(o *UnityDifficulty) int {
	return d.total.Cmp(o.total)
}

func (d *UnityDifficulty) String() string {
	return fmt.Sprintf("UnityDifficulty{total=%s mining=%s staking=%s}", d.total, d.mining, d.staking)
}

type unityDifficultyRLP struct {
	Mining  *big.Int
	Staking *big.Int
}

// EncodeRLP stores the two components; the total is derived on decode.
func (d *UnityDifficulty) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &unityDifficultyRLP{Mining: d.mining, Staking: d.staking})
}

// DecodeRLP implements rlp.Decoder.
func (d *UnityDifficulty) DecodeRLP(s *rlp.Stream) error {
	var dec unityDifficultyRLP
	if err := s.Decode(&dec); err != nil {
		return errors.Wrap(err, "unity difficulty")
	}
	*d = *NewUnityDifficulty(dec.Mining, dec.Staking)
	return nil
}
