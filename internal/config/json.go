package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/markbook/internal/flagx"
)

// parseJson overlays cfg with the JSON file named by -c or -config. Without
// either flag nothing changes.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}
