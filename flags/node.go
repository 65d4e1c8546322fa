package flags

import (
	"gopkg.in/urfave/cli.v1"
)

// DecodeFlags holds the knobs of the decode command.

func DecodeFlags() []cli.Flag {
	return []cli.Flag{
		cli.BoolFlag{
			Name:  "header",
			Usage: "Input is a single header rather than a block",
		},
		cli.BoolFlag{
			Name:  "unsafe",
			Usage: "Validate every field and the transaction trie root (input from an untrusted peer)",
		},
		cli.BoolFlag{
			Name:  "txs",
			Usage: "Also list the transaction hashes of the block",
		},
	}
}
