package handlers

import "github.com/modelwire/mcpd/pkg/model"

// Catalog returns the built-in handlers keyed by the implementation name
// referenced from manifest.toml. The returned map is a fresh copy per call.
func Catalog() map[string]model.Handler {
	return map[string]model.Handler{
		"echo":     model.HandlerFunc(Echo),
		"greeting": model.HandlerFunc(Greeting),
	}
}
