package genesis

import (
	"bufio"
	"fmt"
	"math/big"
	"os"
	"reflect"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/naoina/toml"
	"github.com/pkg/errors"

	"github.com/rony4d/go-unity-asset/inter"
	"github.com/rony4d/go-unity-asset/unity"
)

// TOML keys use the same names as the Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		return fmt.Errorf("field '%s' is not defined in %s", field, rt.String())
	},
}

// Config is the file form of a genesis definition. Zero values leave the
// network preset untouched. Big numbers are strings in decimal or 0x hex
// because TOML integers stop at 64 bits.
type Config struct {
	Network           string // preset name, "main" when empty
	ChainID           uint16
	ParentHash        common.Hash
	Coinbase          inter.Address
	Difficulty        string
	Timestamp         uint64
	EnergyLimit       uint64
	StakingDifficulty string
	StakingContract   inter.Address

	Premine         []PremineEntry
	NetworkBalances []NetworkBalanceEntry
}

// PremineEntry funds one account.
type PremineEntry struct {
	Address inter.Address
	Balance string
}

// NetworkBalanceEntry sets the balance of one chain index.
type NetworkBalanceEntry struct {
	ChainIndex uint64
	Balance    string
}

// LoadConfig reads a genesis definition from a TOML file.
func LoadConfig(file string) (*Config, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg := new(Config)
	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// MarshalTOML renders cfg in the same layout LoadConfig reads.
func (cfg *Config) MarshalTOML() ([]byte, error) {
	return tomlSettings.Marshal(cfg)
}

// Builder returns a genesis builder seeded from the named network preset
// with every non-zero field of cfg applied on top.
func (cfg *Config) Builder() (*Builder, error) {
	network := cfg.Network
	if network == "" {
		network = "main"
	}
	rules, ok := unity.RulesByName(network)
	if !ok {
		return nil, errors.Wrapf(ErrInvalidGenesis, "unknown network %q", network)
	}

	b := NewBuilderFromRules(rules)
	if cfg.ChainID != 0 {
		b.WithChainID(cfg.ChainID)
	}
	if cfg.ParentHash != (common.Hash{}) {
		b.WithParentHash(cfg.ParentHash)
	}
	if !cfg.Coinbase.IsZero() {
		b.WithCoinbase(cfg.Coinbase)
	}
	if cfg.Timestamp != 0 {
		b.WithTimestamp(cfg.Timestamp)
	}
	if cfg.EnergyLimit != 0 {
		b.WithEnergyLimit(cfg.EnergyLimit)
	}
	if !cfg.StakingContract.IsZero() {
		b.WithStakingContract(cfg.StakingContract)
	}
	if cfg.Difficulty != "" {
		d, err := parseBig("Difficulty", cfg.Difficulty)
		if err != nil {
			return nil, err
		}
		b.WithDifficulty(d)
	}
	if cfg.StakingDifficulty != "" {
		d, err := parseBig("StakingDifficulty", cfg.StakingDifficulty)
		if err != nil {
			return nil, err
		}
		b.WithStakingDifficulty(d)
	}
	for i, p := range cfg.Premine {
		balance, err := parseBig(fmt.Sprintf("Premine[%d].Balance", i), p.Balance)
		if err != nil {
			return nil, err
		}
		b.AddPremined(p.Address, balance)
	}
	for i, nb := range cfg.NetworkBalances {
		balance, err := parseBig(fmt.Sprintf("NetworkBalances[%d].Balance", i), nb.Balance)
		if err != nil {
			return nil, err
		}
		b.AddNetworkBalance(nb.ChainIndex, balance)
	}
	return b, b.err
}

func parseBig(field, s string) (*big.Int, error) {
	v, ok := math.ParseBig256(s)
	if !ok {
		return nil, errors.Wrapf(ErrInvalidGenesis, "%s: invalid number %q", field, s)
	}
	return v, nil
}
