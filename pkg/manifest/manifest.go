// Package manifest defines the TOML deployment manifest: which models the
// server exposes and which built-in handler backs each one.
package manifest

import (
	"errors"
	"fmt"
	"strings"
)

// Config is the top-level manifest.
type Config struct {
	Models []Model `toml:"model"`
}

// Model binds a public model id to a handler implementation name from the
// handler catalog.
type Model struct {
	ID      string   `toml:"id"`
	Handler string   `toml:"handler"`
	Tags    []string `toml:"tags"`
}

func (m *Model) normalize() error {
	m.ID = strings.TrimSpace(m.ID)
	m.Handler = strings.TrimSpace(m.Handler)
	if m.ID == "" {
		return errors.New("model id is required")
	}
	if m.Handler == "" {
		return errors.New("handler name is required")
	}
	return nil
}

// Validate normalizes entries and checks them against the set of known
// handler implementation names.
func (c *Config) Validate(known map[string]struct{}) error {
	if len(c.Models) == 0 {
		return errors.New("no models defined")
	}
	seen := map[string]struct{}{}
	for i := range c.Models {
		m := &c.Models[i]
		if err := m.normalize(); err != nil {
			return fmt.Errorf("model %d: %w", i, err)
		}
		if _, dup := seen[m.ID]; dup {
			return fmt.Errorf("model %d: duplicate id %q", i, m.ID)
		}
		seen[m.ID] = struct{}{}
		if _, ok := known[m.Handler]; !ok {
			return fmt.Errorf("model %d (%s): handler %q not registered", i, m.ID, m.Handler)
		}
	}
	return nil
}
