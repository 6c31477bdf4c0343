package ecommerce

import (
	"sync"

	"github.com/viamoe/haady-business-sub003/internal/domain/integration"
)

// CatalogSourceRegistry is the in-memory adapter registry. Adapters are
// registered once during startup wiring and looked up per request.
type CatalogSourceRegistry struct {
	mu      sync.RWMutex
	sources map[integration.PlatformCode]integration.CatalogSource
}

// NewCatalogSourceRegistry creates an empty adapter registry
func NewCatalogSourceRegistry() *CatalogSourceRegistry {
	return &CatalogSourceRegistry{
		sources: make(map[integration.PlatformCode]integration.CatalogSource),
	}
}

// Register adds an adapter under its own platform code, replacing any
// previously registered adapter for that code.
func (r *CatalogSourceRegistry) Register(source integration.CatalogSource) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources[source.Platform()] = source
}

// GetSource returns the adapter for the specified platform
func (r *CatalogSourceRegistry) GetSource(platform integration.PlatformCode) (integration.CatalogSource, error) {
	if !platform.IsValid() {
		return nil, integration.ErrPlatformNotSupported
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	source, ok := r.sources[platform]
	if !ok {
		return nil, integration.ErrPlatformNotConfigured
	}
	return source, nil
}

// ListSources returns all registered adapters
func (r *CatalogSourceRegistry) ListSources() []integration.CatalogSource {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sources := make([]integration.CatalogSource, 0, len(r.sources))
	for _, source := range r.sources {
		sources = append(sources, source)
	}
	return sources
}

// Ensure CatalogSourceRegistry implements the registry interface
var _ integration.CatalogSourceRegistry = (*CatalogSourceRegistry)(nil)
