package sync

import (
	"html"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/viamoe/haady-business-sub003/internal/domain/integration"
)

// NormalizedProduct is the canonical shape of one platform record after field
// mapping, language detection and availability derivation. It carries exactly
// the mutable fields the reconciler writes to a product.
type NormalizedProduct struct {
	NameEn        string
	NameAr        string
	DescriptionEn string
	DescriptionAr string
	SKU           string
	Price         decimal.Decimal
	ComparePrice  *decimal.Decimal
	ImageURL      string
	IsAvailable   bool
	// Quantity is the stock figure the availability flag was derived from,
	// kept for the cached payload on the source link.
	Quantity int64
}

// Normalize maps a platform record to its canonical form. It is a pure
// function with no I/O. A nil return means the record has no usable
// price-bearing unit and must be skipped, not failed.
func Normalize(record *integration.PlatformProduct) *NormalizedProduct {
	price := record.Price
	comparePrice := record.ComparePrice
	sku := record.SKU

	if record.VariantBased {
		if !record.HasVariants() {
			// A variant-based record with zero variants carries no price
			return nil
		}
		primary := record.Variants[0]
		price = primary.Price
		comparePrice = primary.ComparePrice
		if sku == "" {
			sku = primary.SKU
		}
	}

	normalized := &NormalizedProduct{
		SKU:          strings.TrimSpace(sku),
		Price:        price,
		ComparePrice: comparePrice,
		Quantity:     record.TotalQuantity(),
	}
	normalized.IsAvailable = normalized.Quantity > 0

	// Both language sides are always filled so a storefront locale switch
	// never lands on an empty name.
	name := strings.TrimSpace(record.Name)
	if containsArabic(name) {
		normalized.NameAr = name
		normalized.NameEn = name
	} else {
		normalized.NameEn = name
		normalized.NameAr = name
	}

	description := strings.TrimSpace(stripHTML(record.Description))
	if containsArabic(description) {
		normalized.DescriptionAr = description
		normalized.DescriptionEn = description
	} else {
		normalized.DescriptionEn = description
		normalized.DescriptionAr = description
	}

	if len(record.ImageURLs) > 0 {
		normalized.ImageURL = record.ImageURLs[0]
	}

	return normalized
}

// containsArabic reports whether the string holds any code point from the
// Arabic script
func containsArabic(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Arabic, r) {
			return true
		}
	}
	return false
}

// stripHTML removes markup from a platform description, leaving plain text.
// Tag boundaries become spaces so adjacent blocks do not run together, and
// HTML entities are decoded.
func stripHTML(s string) string {
	if !strings.ContainsRune(s, '<') {
		return html.UnescapeString(s)
	}

	var b strings.Builder
	b.Grow(len(s))
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
			b.WriteRune(' ')
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(html.UnescapeString(b.String())), " ")
}
