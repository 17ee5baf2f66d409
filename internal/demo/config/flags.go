package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/sqlrecord/internal/flagx"
)

// parseFlags populates selected demo Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-e string   database engine: "postgres" or "sqlite"
//	-d string   database DSN
//	-n int      number of products to seed
//	-b int      chunk size for the batched select pass
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-e", "-d", "-n", "-b"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.Engine, "e", config.Engine, "database engine (postgres|sqlite)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.IntVar(&config.Rows, "n", config.Rows, "number of products to seed")
	fs.IntVar(&config.BatchSize, "b", config.BatchSize, "batched select chunk size")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
