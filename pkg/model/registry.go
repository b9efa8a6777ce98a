package model

import "sort"

// Registry maps model ids to handlers. It is populated once at construction
// and never mutated afterwards, so concurrent lookups need no locking.
type Registry struct {
	handlers map[string]Handler
}

// NewRegistry builds a Registry from the given bindings. The input map is
// copied; later mutation by the caller does not affect the registry.
func NewRegistry(bindings map[string]Handler) *Registry {
	m := make(map[string]Handler, len(bindings))
	for id, h := range bindings {
		m[id] = h
	}
	return &Registry{handlers: m}
}

// Lookup retrieves the handler registered under id. Exact string match only:
// no fuzzy matching, no case normalization.
func (r *Registry) Lookup(id string) (Handler, bool) {
	h, ok := r.handlers[id]
	return h, ok
}

// IDs returns the registered model ids, sorted for stable logging.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.handlers))
	for id := range r.handlers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len reports the number of registered models.
func (r *Registry) Len() int { return len(r.handlers) }
