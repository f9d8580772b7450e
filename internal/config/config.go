// Package config loads cmd/apigen's optional project file, apigen.toml.
// It supplies defaults for the --language and --output flags when a
// project wants to pin them rather than repeat them on every invocation —
// a small ambient layer the distilled spec never names but any CLI front
// end accumulates, modeled on dingo's pkg/config (BurntSushi/toml,
// missing-file-is-not-an-error, CLI flags override the file).
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is apigen.toml's shape.
type Config struct {
	Language       string `toml:"language"`
	Output         string `toml:"output"`
	Implementation bool   `toml:"implementation"`
}

// Load reads path if it exists and returns the parsed Config. A missing
// file is not an error — the zero Config (no defaults) is returned, the
// same way dingo's loadConfigFile treats an absent project file.
func Load(path string) (Config, error) {
	var cfg Config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}
