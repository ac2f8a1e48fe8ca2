package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"github.com/dmitrijs2005/markbook/internal/flagx"
)

// EnvPrefix is prepended to every variable name in the env tags.
const EnvPrefix = "MARKBOOK_"

// DefaultEnvFile is the dotenv file read when -env-file is not given.
const DefaultEnvFile = ".env"

// parseEnv overlays cfg with MARKBOOK_* variables. Unset variables leave the
// field alone.
func parseEnv(cfg *Config, args, environ []string) error {
	vars, err := environment(flagx.StringFlag(args, DefaultEnvFile, "e", "env-file"), environ)
	if err != nil {
		return err
	}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix, Environment: vars}); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	return nil
}

// environment merges the dotenv file under the process environment. A missing
// file is not an error.
func environment(dotenvPath string, environ []string) (map[string]string, error) {
	vars := map[string]string{}
	if dotenvPath != "" {
		file, err := godotenv.Read(dotenvPath)
		switch {
		case err == nil:
			vars = file
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("read %s: %w", dotenvPath, err)
		}
	}

	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if ok {
			vars[k] = v
		}
	}
	return vars, nil
}
