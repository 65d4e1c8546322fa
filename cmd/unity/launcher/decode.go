package launcher

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"gopkg.in/urfave/cli.v1"

	"github.com/rony4d/go-unity-asset/inter"
)

// blockReport is the printed form of a decoded block.
type blockReport struct {
	Header       map[string]string `json:"header"`
	State        string            `json:"state"`
	Size         string            `json:"size"`
	TxCount      int               `json:"txCount"`
	Transactions []common.Hash     `json:"transactions,omitempty"`
}

func decodeAction(ctx *cli.Context) error {
	cfg, err := MakeAllConfigs(ctx)
	if err != nil {
		return err
	}
	if err := setupLogging(cfg.Logging, errWriter(ctx)); err != nil {
		return err
	}

	if ctx.NArg() != 1 {
		return errors.New("decode takes exactly one hex argument")
	}
	raw, err := hexutil.Decode(ctx.Args().First())
	if err != nil {
		return errors.Wrap(err, "input")
	}

	if ctx.Bool("header") {
		h := inter.NewHeaderFromRLP(raw)
		if h == nil {
			return errors.New("input is not a valid header")
		}
		return printJSON(ctx, h.ToMap())
	}

	var b inter.Block
	if ctx.Bool("unsafe") {
		b = inter.NewBlockFromUnsafeSource(raw)
	} else {
		b = inter.NewBlockFromRLP(raw)
	}
	if b == nil {
		return errors.New("input is not a valid block")
	}
	if err := b.DecodeBody(); err != nil {
		return errors.Wrap(err, "block body")
	}

	txs := b.Transactions()
	report := blockReport{
		Header:  b.Header().ToMap(),
		State:   b.State().String(),
		Size:    b.Size().String(),
		TxCount: len(txs),
	}
	if ctx.Bool("txs") {
		for _, tx := range txs {
			report.Transactions = append(report.Transactions, tx.Hash())
		}
	}
	return printJSON(ctx, report)
}
