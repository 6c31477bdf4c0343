package sync

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/viamoe/haady-business-sub003/internal/domain/catalog"
	"github.com/viamoe/haady-business-sub003/internal/domain/integration"
	"github.com/viamoe/haady-business-sub003/internal/domain/shared"
)

// Resolution is the outcome of identity matching for one platform record
type Resolution struct {
	Product *catalog.Product
	// Link is nil when the product was matched without a source link; the
	// reconciler creates one transparently.
	Link *integration.SourceLink
}

// IdentityResolver decides whether an incoming platform record corresponds to
// a product that already exists in the store. Matching layers run in strict
// order because the source link lookup is authoritative while SKU and name
// matching are best-effort fallbacks that risk false positives.
type IdentityResolver struct {
	products catalog.ProductReader
	links    integration.SourceLinkReader
}

// NewIdentityResolver creates a new resolver over the read capabilities
func NewIdentityResolver(products catalog.ProductReader, links integration.SourceLinkReader) *IdentityResolver {
	return &IdentityResolver{
		products: products,
		links:    links,
	}
}

// Resolve runs the layered match. It returns ErrProductNotMatched when every
// layer misses and ErrDuplicateSKUConflict when the SKU fallback lands on a
// product that is already linked to a different record on the same platform.
func (r *IdentityResolver) Resolve(ctx context.Context, storeID uuid.UUID, platform integration.PlatformCode, platformProductID, sku, name string) (*Resolution, error) {
	// Layer 1: exact source link match
	link, err := r.links.FindByPlatformProduct(ctx, storeID, platform, platformProductID)
	if err != nil && !errors.Is(err, integration.ErrLinkNotFound) {
		return nil, err
	}
	if link != nil {
		product, err := r.products.FindByID(ctx, storeID, link.ProductID)
		if err == nil {
			return &Resolution{Product: product, Link: link}, nil
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		// Link points at a product that no longer exists; fall through to
		// the SKU layers so the record can be re-matched or re-created.
	}

	if sku == "" {
		return nil, integration.ErrProductNotMatched
	}

	// Layer 2: SKU fallback
	product, err := r.products.FindBySKU(ctx, storeID, sku)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if product != nil {
		return r.acceptFallback(ctx, storeID, platform, platformProductID, product)
	}

	// Layer 3: last-resort name heuristic. Rescues products whose SKU
	// diverged from the platform record while the name stayed identical.
	// Probabilistic, may miss a product spelled differently.
	if name != "" {
		product, err = r.products.FindByNameExcludingSKU(ctx, storeID, name, sku)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		if product != nil {
			return r.acceptFallback(ctx, storeID, platform, platformProductID, product)
		}
	}

	return nil, integration.ErrProductNotMatched
}

// ResolveLinked is the reduced match used by the inventory refresh path. It
// runs the same link-then-SKU ordering without the heuristic layer and
// without the conflict check, since that path never writes new links.
func (r *IdentityResolver) ResolveLinked(ctx context.Context, storeID uuid.UUID, platform integration.PlatformCode, platformProductID, sku string) (*Resolution, error) {
	link, err := r.links.FindByPlatformProduct(ctx, storeID, platform, platformProductID)
	if err != nil && !errors.Is(err, integration.ErrLinkNotFound) {
		return nil, err
	}
	if link != nil {
		product, err := r.products.FindByID(ctx, storeID, link.ProductID)
		if err == nil {
			return &Resolution{Product: product, Link: link}, nil
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
	}

	if sku == "" {
		return nil, integration.ErrProductNotMatched
	}

	product, err := r.products.FindBySKU(ctx, storeID, sku)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, integration.ErrProductNotMatched
		}
		return nil, err
	}

	existing, err := r.links.FindByProductAndPlatform(ctx, storeID, product.ID, platform)
	if err != nil && !errors.Is(err, integration.ErrLinkNotFound) {
		return nil, err
	}

	return &Resolution{Product: product, Link: existing}, nil
}

// acceptFallback validates a product matched by SKU against the per-platform
// uniqueness invariant. A product already linked to a different record on the
// same platform means the SKU collides across distinct platform records, and
// accepting the match would overwrite unrelated data.
func (r *IdentityResolver) acceptFallback(ctx context.Context, storeID uuid.UUID, platform integration.PlatformCode, platformProductID string, product *catalog.Product) (*Resolution, error) {
	existing, err := r.links.FindByProductAndPlatform(ctx, storeID, product.ID, platform)
	if err != nil {
		if errors.Is(err, integration.ErrLinkNotFound) {
			return &Resolution{Product: product}, nil
		}
		return nil, err
	}

	if existing.PlatformProductID != platformProductID {
		return nil, integration.ErrDuplicateSKUConflict
	}

	return &Resolution{Product: product, Link: existing}, nil
}
