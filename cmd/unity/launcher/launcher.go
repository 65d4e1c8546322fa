package launcher

import (
	"gopkg.in/urfave/cli.v1"

	"github.com/rony4d/go-unity-asset/flags"
)

var app = newApp()

func newApp() *cli.App {
	a := flags.NewApp()
	a.Commands = []cli.Command{
		genesisCommand,
		decodeCommand,
		dumpConfigCommand,
	}
	return a
}

var (
	genesisCommand = cli.Command{
		Action:    genesisAction,
		Name:      "genesis",
		Usage:     "Assemble the genesis block of a network and print it",
		ArgsUsage: "",
		Flags:     flags.GenesisFlags(),
		Description: `
Builds the genesis mining block and its staking companion from the network
preset, an optional genesis file and command line overrides, then prints
both headers as JSON.`,
	}

	decodeCommand = cli.Command{
		Action:    decodeAction,
		Name:      "decode",
		Usage:     "Decode a hex-encoded block or header",
		ArgsUsage: "<hex>",
		Flags:     flags.DecodeFlags(),
		Description: `
Dispatches on the seal type byte and prints the decoded header fields.
With --unsafe every field is validated and the transaction trie root is
checked against the body.`,
	}

	dumpConfigCommand = cli.Command{
		Action:      dumpConfigAction,
		Name:        "dumpconfig",
		Usage:       "Show configuration values",
		ArgsUsage:   "",
		Flags:       flags.GenesisFlags(),
		Description: `The dumpconfig command shows configuration values.`,
	}
)

// Launch parses args and runs the selected command.
func Launch(args []string) error {
	return app.Run(args)
}
