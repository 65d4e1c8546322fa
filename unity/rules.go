// Package unity defines the network rules and chain parameters of the Unity
// hybrid proof-of-work/proof-of-stake network.
//
// This package provides:
//   - Network identification constants (MainNet, Mastery testnet, FakeNet)
//   - Genesis parameters each network starts from
//   - Block-level limits shared by the header codec
//
// The Rules type is the single structure consensus-critical parameters are
// read from for a given deployment.

package unity

import (
	"encoding/json"
	"math/big"

	"github.com/rony4d/go-unity-asset/inter"
)

// Network identification constants. Chain ids are embedded in two bytes of
// the genesis extra data, so they must fit in a uint16.
const (
	// MainNetworkID is the chain ID of the Unity mainnet.
	MainNetworkID uint64 = 256

	// MasteryNetworkID is the chain ID of the Mastery testnet.
	MasteryNetworkID uint64 = 32

	// FakeNetworkID is the chain ID of local networks used in testing.
	FakeNetworkID uint64 = 0xfa3

	// DefaultEnergyLimit is the genesis block energy limit on every network.
	DefaultEnergyLimit uint64 = 15000000
)

// Rules describes the configuration of a Unity network.
//
// Note: Copy must deep-copy every *big.Int field.
type Rules struct {
	Name      string // Network name identifier ("main", "mastery", "fake")
	NetworkID uint64 // Chain ID, stored in the genesis extra data

	// Genesis holds the values the genesis builder falls back to.
	Genesis GenesisRules

	// Blocks holds header limits.
	Blocks BlocksRules
}

// GenesisRules are the parameters of the first block of a network.
type GenesisRules struct {
	// Difficulty is the mining difficulty of the genesis block.
	Difficulty *big.Int

	// StakingDifficulty anchors the proof-of-stake difficulty series. The
	// genesis builder has no default for it; networks configure it here.
	StakingDifficulty *big.Int

	// EnergyLimit is the energy limit of the genesis block.
	EnergyLimit uint64

	// Timestamp is the genesis time in Unix seconds.
	Timestamp uint64

	// NetworkBalance is the balance credited to chain index 0 in the
	// network balance contract.
	NetworkBalance *big.Int
}

// BlocksRules are the header limits every block on the network obeys.
type BlocksRules struct {
	// MaxExtraData is the maximum extra-data size in bytes.
	MaxExtraData uint32

	// SolutionSize is the size of the proof-of-work solution in bytes.
	SolutionSize uint32

	// MaxDifficultyBytes bounds the encoded difficulty.
	MaxDifficultyBytes uint32
}

// MainNetRules returns the configuration rules of the Unity mainnet.
func MainNetRules() Rules {
	return Rules{
		Name:      "main",
		NetworkID: MainNetworkID,
		Genesis:   DefaultGenesisRules(),
		Blocks:    DefaultBlocksRules(),
	}
}

// MasteryRules returns the configuration rules of the Mastery testnet. It
// shares the mainnet genesis values except for the staking difficulty.
func MasteryRules() Rules {
	genesis := DefaultGenesisRules()
	genesis.StakingDifficulty = big.NewInt(1000000)
	return Rules{
		Name:      "mastery",
		NetworkID: MasteryNetworkID,
		Genesis:   genesis,
		Blocks:    DefaultBlocksRules(),
	}
}

// FakeNetRules returns the configuration rules of local networks. Difficulties
// are minimal so blocks can be produced without real work.
func FakeNetRules() Rules {
	genesis := DefaultGenesisRules()
	genesis.Difficulty = big.NewInt(1)
	genesis.StakingDifficulty = big.NewInt(1)
	return Rules{
		Name:      "fake",
		NetworkID: FakeNetworkID,
		Genesis:   genesis,
		Blocks:    DefaultBlocksRules(),
	}
}

// RulesByName returns the preset with the given name.
func RulesByName(name string) (Rules, bool) {
	switch name {
	case "main":
		return MainNetRules(), true
	case "mastery":
		return MasteryRules(), true
	case "fake":
		return FakeNetRules(), true
	}
	return Rules{}, false
}

// DefaultGenesisRules returns the mainnet genesis parameters.
func DefaultGenesisRules() GenesisRules {
	balance, _ := new(big.Int).SetString("465934586660000000000000000", 10)
	return GenesisRules{
		Difficulty:        big.NewInt(16),
		StakingDifficulty: big.NewInt(2000000000),
		EnergyLimit:       DefaultEnergyLimit,
		Timestamp:         1497536993,
		NetworkBalance:    balance,
	}
}

// DefaultBlocksRules mirrors the limits enforced by the header codec.
func DefaultBlocksRules() BlocksRules {
	return BlocksRules{
		MaxExtraData:       inter.MaxExtraDataLength,
		SolutionSize:       inter.SolutionLength,
		MaxDifficultyBytes: inter.MaxDifficultyLength,
	}
}

// ChainID returns the network id in the two-byte form the genesis block stores.
func (r Rules) ChainID() uint16 {
	return uint16(r.NetworkID)
}

// Copy creates a deep copy of Rules.
func (r Rules) Copy() Rules {
	cp := r
	cp.Genesis.Difficulty = copyBig(r.Genesis.Difficulty)
	cp.Genesis.StakingDifficulty = copyBig(r.Genesis.StakingDifficulty)
	cp.Genesis.NetworkBalance = copyBig(r.Genesis.NetworkBalance)
	return cp
}

// String returns a JSON representation of Rules for debugging and logging.
func (r Rules) String() string {
	b, _ := json.Marshal(&r)
	return string(b)
}

func copyBig(v *big.Int) *big.Int {
	if v == nil {
		return nil
	}
	return new(big.Int).Set(v)
}
