// This file maps CLI context to the launcher config struct.

package launcher

import (
	"bufio"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/naoina/toml"
	"github.com/pkg/errors"
	"gopkg.in/urfave/cli.v1"

	"github.com/rony4d/go-unity-asset/unity/genesis"
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

// Config aggregates every subsystem's configuration the launcher needs.
type Config struct {
	Logging LoggingConfig
	Genesis genesis.Config
	FakeNet FakeNetConfig
}

type LoggingConfig struct {
	Verbosity int
	Format    string
	Color     bool
	SentryDSN string `toml:",omitempty"`
}

type FakeNetConfig struct {
	Accounts int
	Balance  string // decimal or 0x hex
}

// -----------------------------------------------------------------------------
// Default config + builders
// -----------------------------------------------------------------------------

func defaultConfig() Config {
	d := DefaultConfig()
	return Config{
		Logging: LoggingConfig{
			Verbosity: d.Logging.Verbosity,
			Format:    d.Logging.Format,
			Color:     d.Logging.Color,
			SentryDSN: d.Logging.SentryDSN,
		},
		Genesis: genesis.Config{
			Network: d.Network.Name,
		},
		FakeNet: FakeNetConfig{
			Accounts: d.FakeNet.Accounts,
			Balance:  d.FakeNet.Balance.String(),
		},
	}
}

// MakeAllConfigs merges defaults, config-file values, the genesis file and
// CLI overrides into a single config struct, in that order.
func MakeAllConfigs(ctx *cli.Context) (Config, error) {
	cfg := defaultConfig()

	if file := stringFlag(ctx, "config"); file != "" {
		if err := loadConfigFile(file, &cfg); err != nil {
			return cfg, err
		}
	}
	if file := stringFlag(ctx, "genesis.file"); file != "" {
		g, err := genesis.LoadConfig(file)
		if err != nil {
			return cfg, errors.Wrap(err, "genesis file")
		}
		if g.Network == "" {
			g.Network = cfg.Genesis.Network
		}
		cfg.Genesis = *g
	}

	if err := applyCLIOverrides(ctx, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// -----------------------------------------------------------------------------
// Config-file / CLI wiring
// -----------------------------------------------------------------------------

func loadConfigFile(file string, cfg *Config) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	return err
}

func applyCLIOverrides(ctx *cli.Context, cfg *Config) error {
	if isSet(ctx, "log.format") {
		cfg.Logging.Format = stringFlag(ctx, "log.format")
	}
	if isSet(ctx, "log.verbosity") {
		cfg.Logging.Verbosity = intFlag(ctx, "log.verbosity")
	}
	if isSet(ctx, "log.color") {
		cfg.Logging.Color = boolFlag(ctx, "log.color")
	}
	if isSet(ctx, "sentry.dsn") {
		cfg.Logging.SentryDSN = stringFlag(ctx, "sentry.dsn")
	}

	if isSet(ctx, "network") {
		cfg.Genesis.Network = stringFlag(ctx, "network")
	}
	if isSet(ctx, "chainid") {
		id := ctx.Uint("chainid")
		if id > 0xffff {
			return errors.Errorf("chain id %d does not fit in two bytes", id)
		}
		cfg.Genesis.ChainID = uint16(id)
	}
	if isSet(ctx, "genesis.stakingdifficulty") {
		cfg.Genesis.StakingDifficulty = stringFlag(ctx, "genesis.stakingdifficulty")
	}
	if isSet(ctx, "fakenet") {
		cfg.Genesis.Network = "fake"
		cfg.FakeNet.Accounts = intFlag(ctx, "fakenet")
	}
	return nil
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

// Flags live either on the command or on the app; look in both.

func isSet(ctx *cli.Context, name string) bool {
	return ctx.IsSet(name) || ctx.GlobalIsSet(name)
}

func stringFlag(ctx *cli.Context, name string) string {
	if ctx.IsSet(name) {
		return ctx.String(name)
	}
	if v := ctx.GlobalString(name); v != "" {
		return v
	}
	return ctx.String(name)
}

func intFlag(ctx *cli.Context, name string) int {
	if ctx.IsSet(name) {
		return ctx.Int(name)
	}
	return ctx.GlobalInt(name)
}

func boolFlag(ctx *cli.Context, name string) bool {
	return ctx.Bool(name) || ctx.GlobalBool(name)
}

func dumpConfigAction(ctx *cli.Context) error {
	cfg, err := MakeAllConfigs(ctx)
	if err != nil {
		return err
	}
	out, err := tomlSettings.Marshal(&cfg)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(ctx.App.Writer, strings.TrimSpace(string(out))+"\n")
	return err
}
