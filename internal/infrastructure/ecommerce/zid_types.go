package ecommerce

import "github.com/shopspring/decimal"

// ZidProductListResponse is the envelope of GET /products
type ZidProductListResponse struct {
	Results []ZidProduct `json:"results"`
	Count   int          `json:"count"`
	// Next holds the absolute URL of the next page, empty on the last page
	Next     string `json:"next"`
	Previous string `json:"previous"`
}

// ZidProduct is a product record as returned by the Zid merchant API.
// Textual fields come as ar/en pairs; either side may be empty.
type ZidProduct struct {
	// Zid product IDs are UUID strings
	ID          string            `json:"id"`
	Name        ZidLocalizedText  `json:"name"`
	Description ZidLocalizedText  `json:"description"`
	SKU         string            `json:"sku"`
	Price       decimal.Decimal   `json:"price"`
	SalePrice   *decimal.Decimal  `json:"sale_price"`
	Quantity    *int64            `json:"quantity"`
	IsInfinite  bool              `json:"is_infinite"`
	IsPublished bool              `json:"is_published"`
	HasOptions  bool              `json:"has_options"`
	Images      []ZidProductImage `json:"images"`
	Variants    []ZidVariant      `json:"variants"`
}

// ZidLocalizedText is Zid's ar/en text pair
type ZidLocalizedText struct {
	Ar string `json:"ar"`
	En string `json:"en"`
}

// Flatten returns the English text when present, falling back to Arabic.
// Language detection downstream re-splits the value, so the adapter only
// needs to pick a non-empty side.
func (t ZidLocalizedText) Flatten() string {
	if t.En != "" {
		return t.En
	}
	return t.Ar
}

// ZidProductImage is one entry of a product's image list
type ZidProductImage struct {
	ID    string `json:"id"`
	Image struct {
		Full      string `json:"full_size"`
		Thumbnail string `json:"thumbnail"`
	} `json:"image"`
	Order int `json:"order"`
}

// ZidVariant is a purchasable variant of a product with options
type ZidVariant struct {
	ID        string           `json:"id"`
	SKU       string           `json:"sku"`
	Price     decimal.Decimal  `json:"price"`
	SalePrice *decimal.Decimal `json:"sale_price"`
	Quantity  *int64           `json:"quantity"`
}

// ZidErrorResponse is Zid's error envelope
type ZidErrorResponse struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}
