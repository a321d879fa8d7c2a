package config

import (
	"flag"
	"os"

	"github.com/proyectoforocine/forocore/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   sqlite DSN of the local database
//	-s string   credential scheme: plain or bcrypt
//	-l string   log level: debug, info, warn, error
//
// Note: the function filters os.Args to only include the flags it knows
// about, using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-s", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "sqlite DSN of the local database")
	fs.StringVar(&cfg.CredentialScheme, "s", cfg.CredentialScheme, "credential scheme (plain|bcrypt)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug|info|warn|error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
