package sync

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/viamoe/haady-business-sub003/internal/domain/catalog"
	"github.com/viamoe/haady-business-sub003/internal/domain/integration"
)

// Reconciler decides create versus update for one normalized record and
// performs the writes. Per-item failures are returned as outcomes, never
// propagated; a bad record must not abort the batch.
type Reconciler struct {
	products catalog.ProductWriter
	links    integration.SourceLinkWriter
	logger   *zap.Logger
}

// NewReconciler creates a new reconciler over the write capabilities
func NewReconciler(products catalog.ProductWriter, links integration.SourceLinkWriter, logger *zap.Logger) *Reconciler {
	return &Reconciler{
		products: products,
		links:    links,
		logger:   logger,
	}
}

// Reconcile writes one resolved record. A nil resolution means the record is
// new and both the product and its link are inserted; a non-nil resolution
// updates the matched product and refreshes or creates its link.
func (rc *Reconciler) Reconcile(ctx context.Context, storeID uuid.UUID, platform integration.PlatformCode, record *integration.PlatformProduct, normalized *NormalizedProduct, resolution *Resolution) integration.ItemOutcome {
	if resolution == nil {
		return rc.create(ctx, storeID, platform, record, normalized)
	}
	return rc.update(ctx, storeID, platform, record, normalized, resolution)
}

func (rc *Reconciler) create(ctx context.Context, storeID uuid.UUID, platform integration.PlatformCode, record *integration.PlatformProduct, normalized *NormalizedProduct) integration.ItemOutcome {
	product, err := catalog.NewProduct(storeID, normalized.NameEn, normalized.NameAr)
	if err != nil {
		return integration.ItemOutcome{Kind: integration.ItemFailed, Err: err}
	}
	applyNormalized(product, normalized)

	if err := rc.products.Insert(ctx, product); err != nil {
		return integration.ItemOutcome{Kind: integration.ItemFailed, Err: fmt.Errorf("failed to create product: %w", err)}
	}

	outcome := integration.ItemOutcome{Kind: integration.ItemCreated}
	if warning := rc.writeLink(ctx, storeID, platform, record, normalized, product.ID, nil); warning != "" {
		outcome.Warning = warning
	}
	return outcome
}

func (rc *Reconciler) update(ctx context.Context, storeID uuid.UUID, platform integration.PlatformCode, record *integration.PlatformProduct, normalized *NormalizedProduct, resolution *Resolution) integration.ItemOutcome {
	product := resolution.Product
	changed := applyNormalized(product, normalized)

	if changed {
		if err := rc.products.Update(ctx, product); err != nil {
			return integration.ItemOutcome{Kind: integration.ItemFailed, Err: fmt.Errorf("failed to update product: %w", err)}
		}
	}

	kind := integration.ItemUnchanged
	if changed {
		kind = integration.ItemUpdated
	}

	outcome := integration.ItemOutcome{Kind: kind}
	if warning := rc.writeLink(ctx, storeID, platform, record, normalized, product.ID, resolution.Link); warning != "" {
		outcome.Warning = warning
	}
	return outcome
}

// writeLink refreshes an existing link or creates one for a product matched
// without linkage. Link failures are reported as warnings because linkage is
// best-effort metadata; the product write already succeeded.
func (rc *Reconciler) writeLink(ctx context.Context, storeID uuid.UUID, platform integration.PlatformCode, record *integration.PlatformProduct, normalized *NormalizedProduct, productID uuid.UUID, link *integration.SourceLink) string {
	if link == nil {
		created, err := integration.NewSourceLink(storeID, productID, platform, record.ID)
		if err != nil {
			return rc.linkWarning(record.ID, err)
		}
		link = created
	}

	link.Touch(normalized.SKU, record.Raw)
	if err := rc.links.Save(ctx, link); err != nil {
		return rc.linkWarning(record.ID, err)
	}
	return ""
}

func (rc *Reconciler) linkWarning(platformProductID string, err error) string {
	rc.logger.Warn("source link write failed",
		zap.String("platform_product_id", platformProductID),
		zap.Error(err))
	return fmt.Sprintf("warning: product %s synced but its platform link could not be saved: %v", platformProductID, err)
}

// applyNormalized copies the normalized fields onto the product, reporting
// whether anything actually changed so an untouched catalog produces zero
// updates on a second run.
func applyNormalized(product *catalog.Product, normalized *NormalizedProduct) bool {
	changed := false

	if product.NameEn != normalized.NameEn {
		product.NameEn = normalized.NameEn
		changed = true
	}
	if product.NameAr != normalized.NameAr {
		product.NameAr = normalized.NameAr
		changed = true
	}
	if product.DescriptionEn != normalized.DescriptionEn {
		product.DescriptionEn = normalized.DescriptionEn
		changed = true
	}
	if product.DescriptionAr != normalized.DescriptionAr {
		product.DescriptionAr = normalized.DescriptionAr
		changed = true
	}
	if product.SKU != normalized.SKU {
		product.SKU = normalized.SKU
		changed = true
	}
	if !product.Price.Equal(normalized.Price) {
		product.Price = normalized.Price
		changed = true
	}
	if !equalComparePrice(product.ComparePrice, normalized.ComparePrice) {
		product.ComparePrice = normalized.ComparePrice
		changed = true
	}
	if product.ImageURL != normalized.ImageURL {
		product.ImageURL = normalized.ImageURL
		changed = true
	}
	if product.IsAvailable != normalized.IsAvailable {
		product.IsAvailable = normalized.IsAvailable
		changed = true
	}

	return changed
}

func equalComparePrice(a, b *decimal.Decimal) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
