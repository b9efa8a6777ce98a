package manifest

import (
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// Load reads, parses, and validates a manifest file. known holds the handler
// implementation names the binary ships with.
func Load(path string, known map[string]struct{}) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := toml.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(known); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
