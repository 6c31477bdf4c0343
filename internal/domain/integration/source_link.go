package integration

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/viamoe/haady-business-sub003/internal/domain/shared"
)

// ---------------------------------------------------------------------------
// SourceLink Entity
// ---------------------------------------------------------------------------

// SourceLink ties one dashboard product to the platform record it was
// imported from. At most one link exists per (platform, platform product id),
// and a product carries at most one link per platform. A product without a
// link is tolerated; resolution then degrades to the SKU fallback.
type SourceLink struct {
	ID        uuid.UUID
	StoreID   uuid.UUID
	ProductID uuid.UUID
	Platform  PlatformCode
	// PlatformProductID is the product's ID on the platform
	PlatformProductID string
	// PlatformSKU is the SKU the platform reported at last sync
	PlatformSKU string
	// RawPayload caches the platform's native record from the last sync
	RawPayload json.RawMessage
	// LastSyncedAt is when this link was last written by a sync run
	LastSyncedAt time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewSourceLink creates a new source link
func NewSourceLink(storeID, productID uuid.UUID, platform PlatformCode, platformProductID string) (*SourceLink, error) {
	if storeID == uuid.Nil || productID == uuid.Nil {
		return nil, ErrLinkInvalidProduct
	}
	if !platform.IsValid() {
		return nil, ErrPlatformNotSupported
	}
	if platformProductID == "" {
		return nil, ErrLinkInvalidPlatformID
	}

	now := time.Now()
	return &SourceLink{
		ID:                uuid.New(),
		StoreID:           storeID,
		ProductID:         productID,
		Platform:          platform,
		PlatformProductID: platformProductID,
		LastSyncedAt:      now,
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}

// Touch records a sync pass over this link, refreshing the cached payload
// and SKU snapshot.
func (l *SourceLink) Touch(platformSKU string, rawPayload json.RawMessage) {
	now := time.Now()
	l.PlatformSKU = platformSKU
	if len(rawPayload) > 0 {
		l.RawPayload = rawPayload
	}
	l.LastSyncedAt = now
	l.UpdatedAt = now
}

// UpdateCachedQuantity rewrites only the quantity field inside the cached raw
// payload. The inventory refresh path uses this so the cached snapshot stays
// truthful about stock without resyncing the full record.
func (l *SourceLink) UpdateCachedQuantity(quantity int64) error {
	if len(l.RawPayload) == 0 {
		return nil
	}
	var payload map[string]any
	if err := json.Unmarshal(l.RawPayload, &payload); err != nil {
		return ErrLinkCorruptPayload
	}
	payload["quantity"] = quantity
	updated, err := json.Marshal(payload)
	if err != nil {
		return ErrLinkCorruptPayload
	}
	l.RawPayload = updated
	l.LastSyncedAt = time.Now()
	l.UpdatedAt = l.LastSyncedAt
	return nil
}

// Errors for source links
var (
	ErrLinkInvalidProduct    = shared.NewDomainError("INVALID_LINK_PRODUCT", "Source link requires valid store and product IDs")
	ErrLinkInvalidPlatformID = shared.NewDomainError("INVALID_PLATFORM_ID", "Source link requires a platform product ID")
	ErrLinkNotFound          = shared.NewDomainError("LINK_NOT_FOUND", "Source link not found")
	ErrLinkCorruptPayload    = shared.NewDomainError("CORRUPT_PAYLOAD", "Source link cached payload is not valid JSON")
)

// ---------------------------------------------------------------------------
// SourceLinkRepository Interface
// ---------------------------------------------------------------------------

// SourceLinkReader defines the read side of source link persistence
type SourceLinkReader interface {
	// FindByPlatformProduct finds the link for a platform record. This lookup
	// is authoritative: it guarantees the per-platform uniqueness invariant.
	FindByPlatformProduct(ctx context.Context, storeID uuid.UUID, platform PlatformCode, platformProductID string) (*SourceLink, error)

	// FindByProductAndPlatform finds a product's link for one platform
	FindByProductAndPlatform(ctx context.Context, storeID uuid.UUID, productID uuid.UUID, platform PlatformCode) (*SourceLink, error)

	// FindByProduct returns all links for a product
	FindByProduct(ctx context.Context, storeID uuid.UUID, productID uuid.UUID) ([]SourceLink, error)
}

// SourceLinkWriter defines the write side of source link persistence
type SourceLinkWriter interface {
	// Save creates or updates a link
	Save(ctx context.Context, link *SourceLink) error

	// Delete deletes a link
	Delete(ctx context.Context, id uuid.UUID) error
}

// SourceLinkRepository defines the full interface for source link persistence
type SourceLinkRepository interface {
	SourceLinkReader
	SourceLinkWriter
}
