package integration

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Errors
// ---------------------------------------------------------------------------

var (
	ErrPlatformNotConfigured   = errors.New("integration: platform not configured")
	ErrPlatformNotSupported    = errors.New("integration: platform not supported")
	ErrPlatformInvalidResponse = errors.New("integration: invalid platform response")
	ErrInvalidCredentials      = errors.New("integration: invalid platform credentials")

	// ErrProductNotMatched indicates an incoming platform record matched no
	// stored product through any resolution layer.
	ErrProductNotMatched = errors.New("integration: platform product not matched")

	// ErrDuplicateSKUConflict indicates the SKU fallback matched a product that
	// is already linked to a different record on the same platform. Writing
	// through such a match would overwrite unrelated data, so it is rejected.
	ErrDuplicateSKUConflict = errors.New("integration: SKU already linked to a different platform product")

	// ErrSyncAlreadyRunning indicates another sync for the same store holds
	// the single-flight lock.
	ErrSyncAlreadyRunning = errors.New("integration: a sync for this store is already running")
)

// FetchError is returned when a platform's listing endpoint responds with a
// non-success status or the request times out. It aborts further pagination
// for the run; records fetched from earlier pages are still processed.
type FetchError struct {
	Platform   PlatformCode
	StatusCode int
	Body       string
}

// Error implements the error interface
func (e *FetchError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s: fetch failed: %s", e.Platform, e.Body)
	}
	return fmt.Sprintf("%s: fetch failed with HTTP %d: %s", e.Platform, e.StatusCode, e.Body)
}

// ---------------------------------------------------------------------------
// PlatformCode
// ---------------------------------------------------------------------------

// PlatformCode identifies an external e-commerce platform a merchant's
// catalog can be imported from.
type PlatformCode string

const (
	// PlatformCodeSalla represents the Salla platform
	PlatformCodeSalla PlatformCode = "SALLA"
	// PlatformCodeZid represents the Zid platform
	PlatformCodeZid PlatformCode = "ZID"
)

// IsValid returns true if the platform code is valid
func (c PlatformCode) IsValid() bool {
	switch c {
	case PlatformCodeSalla, PlatformCodeZid:
		return true
	default:
		return false
	}
}

// String returns the string representation of PlatformCode
func (c PlatformCode) String() string {
	return string(c)
}

// ---------------------------------------------------------------------------
// Credentials
// ---------------------------------------------------------------------------

// Credentials carries the access grant the OAuth callback flow produced for a
// merchant's platform store. The engine treats the token as opaque.
type Credentials struct {
	Platform    PlatformCode
	AccessToken string
	// StoreRef is the platform-side store domain or identifier, required by
	// platforms whose APIs scope requests per store.
	StoreRef string
}

// Validate validates the credentials
func (c Credentials) Validate() error {
	if !c.Platform.IsValid() {
		return ErrPlatformNotSupported
	}
	if c.AccessToken == "" {
		return ErrInvalidCredentials
	}
	return nil
}

// ---------------------------------------------------------------------------
// PlatformProduct
// ---------------------------------------------------------------------------

// PlatformVariant is a purchasable sub-unit of a platform product
type PlatformVariant struct {
	ID           string
	SKU          string
	Price        decimal.Decimal
	ComparePrice *decimal.Decimal
	Quantity     int64
}

// PlatformProduct is the platform-agnostic shape every adapter produces from
// its native listing payload. Adapters do shaping only; all business logic
// operates on this type.
type PlatformProduct struct {
	ID          string
	Name        string
	Description string // may contain HTML
	SKU         string
	Price       decimal.Decimal
	// ComparePrice is nil when the platform reported no strike-through price
	ComparePrice *decimal.Decimal
	// Quantity is the platform's top-level stock figure; ignored when the
	// product exposes variants.
	Quantity int64
	// VariantBased marks records whose only price-bearing units are variants.
	// A VariantBased record with an empty Variants slice has no usable price
	// and is skipped by normalization.
	VariantBased bool
	Variants     []PlatformVariant
	ImageURLs []string
	// Raw is the unmodified platform payload, cached on the source link
	Raw json.RawMessage
}

// HasVariants reports whether the product exposes purchasable variants
func (p *PlatformProduct) HasVariants() bool {
	return len(p.Variants) > 0
}

// TotalQuantity returns the stock figure used for availability: the sum of
// variant quantities when variants exist, the flat quantity otherwise.
func (p *PlatformProduct) TotalQuantity() int64 {
	if !p.HasVariants() {
		return p.Quantity
	}
	var total int64
	for _, v := range p.Variants {
		total += v.Quantity
	}
	return total
}

// ---------------------------------------------------------------------------
// Pagination
// ---------------------------------------------------------------------------

// PageCursor is the unified pagination primitive. Page-counter platforms use
// Page; token platforms use Token. A nil *PageCursor returned from FetchPage
// means the catalog is exhausted, regardless of the platform's native style.
type PageCursor struct {
	Page  int
	Token string
}

// ---------------------------------------------------------------------------
// CatalogSource Port Interface
// ---------------------------------------------------------------------------

// CatalogSource is the port every platform adapter implements. Adapters page
// through the platform's product-listing endpoint and shape native JSON into
// PlatformProduct records; they perform no business logic.
//
// Implementations must fetch pages strictly one at a time and surface
// non-success responses as *FetchError.
type CatalogSource interface {
	// Platform returns the platform code this adapter handles
	Platform() PlatformCode

	// FetchPage fetches one page of the store's product listing. Pass a nil
	// cursor for the first page; a nil next cursor means the last page was
	// reached.
	FetchPage(ctx context.Context, creds Credentials, cursor *PageCursor) ([]PlatformProduct, *PageCursor, error)
}

// CatalogSourceRegistry resolves the adapter for a platform code
type CatalogSourceRegistry interface {
	// GetSource returns the adapter for the specified platform
	GetSource(platform PlatformCode) (CatalogSource, error)

	// ListSources returns all registered adapters
	ListSources() []CatalogSource
}
