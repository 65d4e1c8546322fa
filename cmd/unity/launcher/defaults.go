package launcher

import "math/big"

// Defaults bundles the baseline configuration values the launcher will use
// before config files and flags override them.

type Defaults struct {
	Network NetworkDefaults
	FakeNet FakeNetDefaults
	Logging LoggingDefaults
}

// NetworkDefaults selects the chain rules.
type NetworkDefaults struct {
	Name string //	Network preset the genesis builder starts from (main, mastery or fake). Every other genesis value falls back to this preset when left unset.
}

// FakeNetDefaults tunes the deterministic fakenet helper.
type FakeNetDefaults struct {
	Accounts int      //	Number of fake accounts premined in the genesis block; 0 leaves the premine to the genesis file.
	Balance  *big.Int //	Balance credited to every fake account, in the smallest unit.
}

// LoggingDefaults controls log verbosity/format.
type LoggingDefaults struct {
	Verbosity int    //	Log level numeric (0=crit, 1=error, 2=warn, 3=info, 4=debug, 5=trace).
	Format    string //	Log output format (text vs json).
	Color     bool   //	Whether to use ANSI color codes in logs (helpful on terminals, best disabled when piping to files).
	SentryDSN string //	Sentry project DSN; when set, error and critical records are also reported there.
}

// DefaultConfig returns a fully populated Defaults instance.

func DefaultConfig() Defaults {
	balance, _ := new(big.Int).SetString("1000000000000000000000000", 10)
	return Defaults{
		Network: NetworkDefaults{
			Name: "main",
		},
		FakeNet: FakeNetDefaults{
			Accounts: 0,
			Balance:  balance,
		},
		Logging: LoggingDefaults{
			Verbosity: 3,
			Format:    "text",
			Color:     false,
		},
	}
}
