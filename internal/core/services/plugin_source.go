package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/itsharex/ReFast-sub000/internal/core/domain"
	"github.com/itsharex/ReFast-sub000/internal/core/ports/driven"
	"github.com/itsharex/ReFast-sub000/internal/logger"
)

// Ensure PluginSource implements the interface.
var _ Source = (*PluginSource)(nil)

// PluginSource surfaces installed plugins. Matching is delegated to the
// registry's own substring search over name and description.
type PluginSource struct {
	registry driven.PluginRegistry
}

// NewPluginSource creates a plugin source over the registry.
func NewPluginSource(registry driven.PluginRegistry) *PluginSource {
	return &PluginSource{registry: registry}
}

// Name identifies the source in logs.
func (s *PluginSource) Name() string { return "plugin" }

// Search delegates to the registry.
func (s *PluginSource) Search(ctx context.Context, q domain.Query) ([]domain.SearchResult, error) {
	if q.IsEmpty() {
		return nil, nil
	}

	plugins, err := s.registry.Search(ctx, q.Text)
	if err != nil {
		return nil, fmt.Errorf("plugin registry search: %w", err)
	}

	results := make([]domain.SearchResult, 0, len(plugins))
	for _, p := range plugins {
		results = append(results, pluginResult(p))
	}

	logger.Debug("plugin source: %d results", len(results))
	return results, nil
}

// pluginResult converts a plugin descriptor into a SearchResult.
func pluginResult(p domain.PluginDescriptor) domain.SearchResult {
	return domain.SearchResult{
		Source:         domain.SourcePlugin,
		DisplayName:    p.Name,
		Path:           "plugin://" + p.ID,
		NormalizedPath: "plugin://" + strings.ToLower(p.ID),
		Icon:           p.Icon,
		Description:    p.Description,
	}
}
