package launcher

import (
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/log"
	"github.com/pkg/errors"
	"gopkg.in/urfave/cli.v1"

	"github.com/rony4d/go-unity-asset/unity/genesis"
)

// makeGenesis builds the genesis block cfg describes, premining the fake
// accounts when a fakenet size is configured.
func makeGenesis(cfg Config) (*genesis.Block, error) {
	b, err := cfg.Genesis.Builder()
	if err != nil {
		return nil, err
	}
	if cfg.FakeNet.Accounts > 0 {
		balance, ok := math.ParseBig256(cfg.FakeNet.Balance)
		if !ok {
			return nil, errors.Errorf("invalid fakenet balance %q", cfg.FakeNet.Balance)
		}
		for i := 0; i < cfg.FakeNet.Accounts; i++ {
			b.AddPremined(genesis.FakeAddress(i), balance)
		}
	}
	return b.Build()
}

// genesisReport is the printed form of a genesis block.
type genesisReport struct {
	ChainID         uint16            `json:"chainId"`
	Mining          map[string]string `json:"mining"`
	Staking         map[string]string `json:"staking"`
	Premine         map[string]string `json:"premine,omitempty"`
	NetworkBalances map[string]string `json:"networkBalances,omitempty"`
	StakingContract string            `json:"stakingContract"`
}

func newGenesisReport(g *genesis.Block) genesisReport {
	r := genesisReport{
		ChainID:         g.ChainID(),
		Mining:          g.Header().ToMap(),
		Staking:         g.StakingBlock().Header().ToMap(),
		Premine:         make(map[string]string, len(g.Premine)),
		NetworkBalances: make(map[string]string, len(g.NetworkBalances)),
		StakingContract: g.StakingContract.Hex(),
	}
	for addr, acc := range g.Premine {
		r.Premine[addr.Hex()] = acc.Balance.String()
	}
	for index, balance := range g.NetworkBalances {
		r.NetworkBalances[fmt.Sprint(index)] = balance.String()
	}
	return r
}

func genesisAction(ctx *cli.Context) error {
	cfg, err := MakeAllConfigs(ctx)
	if err != nil {
		return err
	}
	if err := setupLogging(cfg.Logging, errWriter(ctx)); err != nil {
		return err
	}

	g, err := makeGenesis(cfg)
	if err != nil {
		return err
	}

	if out := ctx.String("genesis.out"); out != "" {
		if err := ioutil.WriteFile(out, []byte(hexutil.Encode(g.Encoded())), 0o644); err != nil {
			return err
		}
		log.Info("Wrote genesis block", "file", out, "size", g.Size())
	}
	return printJSON(ctx, newGenesisReport(g))
}

func errWriter(ctx *cli.Context) io.Writer {
	if ctx.App.ErrWriter != nil {
		return ctx.App.ErrWriter
	}
	return os.Stderr
}

func printJSON(ctx *cli.Context, v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(ctx.App.Writer, string(out))
	return err
}
