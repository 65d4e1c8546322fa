package flags

import (
	"gopkg.in/urfave/cli.v1"
)

// GenesisFlags covers network selection and genesis overrides.

func GenesisFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "network",
			Usage: "Network preset (main|mastery|fake)",
			Value: "main",
		},
		cli.StringFlag{
			Name:  "genesis.file",
			Usage: "TOML genesis definition applied on top of the network preset",
		},
		cli.UintFlag{
			Name:  "chainid",
			Usage: "Chain id stored in the genesis extra data (overrides the preset)",
		},
		cli.StringFlag{
			Name:  "genesis.stakingdifficulty",
			Usage: "Difficulty of the genesis staking block (decimal or 0x hex)",
		},
		cli.IntFlag{
			Name:  "fakenet",
			Usage: "Premine N deterministic fake accounts on the fake network",
		},
		cli.StringFlag{
			Name:  "genesis.out",
			Usage: "Write the RLP-encoded genesis block as hex to this file",
		},
	}
}
