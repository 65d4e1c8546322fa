package genesis

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/rony4d/go-unity-asset/unity"
)

const testConfig = `
Network = "mastery"
ChainID = 4660
Timestamp = 1600000000
StakingDifficulty = "12345"

[[Premine]]
Address = "0xa000000000000000000000000000000000000000000000000000000000000001"
Balance = "1000000000000000000000000000"

[[NetworkBalances]]
ChainIndex = 3
Balance = "0x10"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir, err := ioutil.TempDir("", "unity-genesis")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	file := filepath.Join(dir, "genesis.toml")
	require.NoError(t, ioutil.WriteFile(file, []byte(content), 0o644))
	return file
}

func TestLoadConfig(t *testing.T) {
	require := require.New(t)

	cfg, err := LoadConfig(writeConfig(t, testConfig))
	require.NoError(err)
	require.Equal("mastery", cfg.Network)
	require.Equal(uint16(4660), cfg.ChainID)
	require.Len(cfg.Premine, 1)
	require.Equal(byte(0xa0), cfg.Premine[0].Address[0])
	require.Len(cfg.NetworkBalances, 1)

	b, err := cfg.Builder()
	require.NoError(err)
	g, err := b.Build()
	require.NoError(err)

	require.Equal(uint16(4660), g.ChainID())
	require.Equal(uint64(1600000000), g.Timestamp())
	require.Equal(int64(12345), g.StakingBlock().DifficultyAsInteger().Int64())
	require.Equal("1000000000000000000000000000", g.Premine[cfg.Premine[0].Address].Balance.String())
	require.Equal(int64(16), g.NetworkBalances[3].Int64())
	require.NotContains(g.NetworkBalances, uint64(0))
}

func TestLoadConfigDefaultsToPreset(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `Network = "fake"`))
	require.NoError(t, err)

	b, err := cfg.Builder()
	require.NoError(t, err)
	g, err := b.Build()
	require.NoError(t, err)

	require.Equal(t, FakeGenesis(0, nil).Hash(), g.Hash())
	require.Equal(t, uint16(unity.FakeNetworkID), g.ChainID())
}

func TestLoadConfigUnknownField(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "Bogus = 1\n"))
	require.Error(t, err)
}

func TestConfigBuilderRejects(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"unknown network", Config{Network: "moon"}},
		{"bad difficulty", Config{Difficulty: "sixteen"}},
		{"bad balance", Config{Premine: []PremineEntry{{Address: FakeAddress(1), Balance: "-"}}}},
		{"reserved address", Config{Premine: []PremineEntry{{Address: NetworkBalanceAddress, Balance: "1"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.cfg.Builder()
			require.True(t, errors.Is(err, ErrInvalidGenesis), "err = %v", err)
		})
	}
}
