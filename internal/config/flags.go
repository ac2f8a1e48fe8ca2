package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/markbook/internal/flagx"
)

// parseFlags overlays cfg with -b, -d, -dsn and -l. Other arguments are
// filtered out first so flags owned by other loaders do not fail parsing.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"b", "d", "dsn", "l"})

	fs := flag.NewFlagSet("markbook", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.StorageBackend, "b", cfg.StorageBackend, "storage backend: fs, s3, sqlite or postgres")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")
	fs.StringVar(&cfg.DatabaseDSN, "dsn", cfg.DatabaseDSN, "database dsn")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	return fs.Parse(args)
}
