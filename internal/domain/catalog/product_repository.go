package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductReader is the store-scoped read capability. Every query is bounded
// to a single store; callers holding only this handle cannot see or touch
// another merchant's catalog.
type ProductReader interface {
	// FindByID finds a product by its ID within a store
	FindByID(ctx context.Context, storeID uuid.UUID, id uuid.UUID) (*Product, error)

	// FindBySKU finds a product by exact SKU within a store
	FindBySKU(ctx context.Context, storeID uuid.UUID, sku string) (*Product, error)

	// FindByNameExcludingSKU is the last-resort duplicate heuristic. It
	// matches a case-insensitive name (either language) against products
	// whose stored SKU is empty or differs from excludeSKU, rescuing records
	// whose platform-side SKU changed while the name stayed the same. Rows
	// carrying excludeSKU itself belong to the exact SKU lookup and are
	// skipped here. Probabilistic; a miss is inconclusive.
	FindByNameExcludingSKU(ctx context.Context, storeID uuid.UUID, name, excludeSKU string) (*Product, error)

	// ListByStore lists products for a store
	ListByStore(ctx context.Context, storeID uuid.UUID, offset, limit int) ([]Product, error)

	// CountByStore counts products for a store
	CountByStore(ctx context.Context, storeID uuid.UUID) (int64, error)
}

// ProductWriter is the privileged write capability. The sync engine writes
// through this handle regardless of row-level restrictions that apply to
// interactive dashboard sessions; it must therefore only ever be handed to
// trusted server-side components.
type ProductWriter interface {
	// Insert creates a new product
	Insert(ctx context.Context, product *Product) error

	// Update persists changes to an existing product
	Update(ctx context.Context, product *Product) error
}

// ProductRepository combines both capabilities for wiring convenience
type ProductRepository interface {
	ProductReader
	ProductWriter
}
