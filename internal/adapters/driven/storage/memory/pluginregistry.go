package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/itsharex/ReFast-sub000/internal/core/domain"
	"github.com/itsharex/ReFast-sub000/internal/core/ports/driven"
)

// Ensure PluginRegistry implements the interface.
var _ driven.PluginRegistry = (*PluginRegistry)(nil)

// PluginRegistry is an in-memory implementation of driven.PluginRegistry.
type PluginRegistry struct {
	mu      sync.RWMutex
	plugins []domain.PluginDescriptor
}

// NewPluginRegistry creates a registry over the given plugins.
func NewPluginRegistry(plugins ...domain.PluginDescriptor) *PluginRegistry {
	return &PluginRegistry{plugins: plugins}
}

// List returns every installed plugin.
func (r *PluginRegistry) List(_ context.Context) ([]domain.PluginDescriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.PluginDescriptor, len(r.plugins))
	copy(out, r.plugins)
	return out, nil
}

// Search returns plugins whose name or description contains query,
// case-insensitively.
func (r *PluginRegistry) Search(_ context.Context, query string) ([]domain.PluginDescriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(query)
	var out []domain.PluginDescriptor
	for _, p := range r.plugins {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) {
			out = append(out, p)
		}
	}
	return out, nil
}
