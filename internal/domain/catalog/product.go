package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/viamoe/haady-business-sub003/internal/domain/shared"
)

// Product is the dashboard's own representation of a merchant product,
// independent of which platform (if any) it was imported from. It is created
// either by the sync engine on first import or by the merchant directly, and
// is never deleted by the sync engine.
type Product struct {
	ID      uuid.UUID
	StoreID uuid.UUID
	// NameEn / NameAr are the bilingual display names. The sync engine always
	// fills both sides so a storefront locale switch never shows an empty name.
	NameEn        string
	NameAr        string
	DescriptionEn string
	DescriptionAr string
	SKU           string
	Price         decimal.Decimal
	// ComparePrice is the optional strike-through price; nil when the platform
	// did not provide one.
	ComparePrice *decimal.Decimal
	ImageURL     string
	IsAvailable  bool
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewProduct creates a new store-scoped product
func NewProduct(storeID uuid.UUID, nameEn, nameAr string) (*Product, error) {
	if storeID == uuid.Nil {
		return nil, ErrProductInvalidStoreID
	}
	if strings.TrimSpace(nameEn) == "" && strings.TrimSpace(nameAr) == "" {
		return nil, ErrProductMissingName
	}

	now := time.Now()
	return &Product{
		ID:        uuid.New(),
		StoreID:   storeID,
		NameEn:    nameEn,
		NameAr:    nameAr,
		Price:     decimal.Zero,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Validate validates the product
func (p *Product) Validate() error {
	if p.StoreID == uuid.Nil {
		return ErrProductInvalidStoreID
	}
	if strings.TrimSpace(p.NameEn) == "" && strings.TrimSpace(p.NameAr) == "" {
		return ErrProductMissingName
	}
	if p.Price.IsNegative() {
		return ErrProductNegativePrice
	}
	return nil
}

// SetPricing updates the selling price and the optional compare-at price
func (p *Product) SetPricing(price decimal.Decimal, comparePrice *decimal.Decimal) error {
	if price.IsNegative() {
		return ErrProductNegativePrice
	}
	p.Price = price
	p.ComparePrice = comparePrice
	p.UpdatedAt = time.Now()
	return nil
}

// SetAvailability updates the stock-derived availability flag
func (p *Product) SetAvailability(available bool) {
	p.IsAvailable = available
	p.UpdatedAt = time.Now()
}

// Deactivate hides the product from the storefront without deleting it
func (p *Product) Deactivate() {
	p.IsActive = false
	p.UpdatedAt = time.Now()
}

// Errors for the catalog domain
var (
	ErrProductInvalidStoreID = shared.NewDomainError("INVALID_STORE", "Product requires a valid store ID")
	ErrProductMissingName    = shared.NewDomainError("MISSING_NAME", "Product requires a name in at least one language")
	ErrProductNegativePrice  = shared.NewDomainError("NEGATIVE_PRICE", "Product price cannot be negative")
)
