package ecommerce

import "github.com/shopspring/decimal"

// SallaProductListResponse is the envelope of GET /products
type SallaProductListResponse struct {
	Status     int              `json:"status"`
	Success    bool             `json:"success"`
	Data       []SallaProduct   `json:"data"`
	Pagination *SallaPagination `json:"pagination"`
}

// SallaPagination carries Salla's page-counter pagination block
type SallaPagination struct {
	Count       int `json:"count"`
	Total       int `json:"total"`
	PerPage     int `json:"perPage"`
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
}

// HasNextPage reports whether more pages remain
func (p *SallaPagination) HasNextPage() bool {
	return p != nil && p.CurrentPage < p.TotalPages
}

// SallaProduct is a product record as returned by the Salla admin API
type SallaProduct struct {
	ID   int64  `json:"id"`
	Type string `json:"type"` // "product", "service", or "variable"
	// Name and Description are single strings in the merchant's language
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	SKU          string        `json:"sku"`
	Price        SallaMoney    `json:"price"`
	SalePrice    *SallaMoney   `json:"sale_price"`
	RegularPrice *SallaMoney   `json:"regular_price"`
	Quantity     int64         `json:"quantity"`
	Status       string        `json:"status"` // "sale", "out", "hidden"
	Images       []SallaImage  `json:"images"`
	Skus         []SallaSku    `json:"skus"`
	Options      []SallaOption `json:"options"`
}

// IsVariable reports whether the product's priced units are its SKUs
func (p *SallaProduct) IsVariable() bool {
	return p.Type == "variable" || len(p.Options) > 0
}

// SallaMoney is Salla's amount/currency pair
type SallaMoney struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// SallaImage is one entry of a product's image list
type SallaImage struct {
	ID   int64  `json:"id"`
	URL  string `json:"url"`
	Main bool   `json:"main"`
	Alt  string `json:"alt"`
}

// SallaSku is a purchasable variant of a variable product
type SallaSku struct {
	ID             int64       `json:"id"`
	SKU            string      `json:"sku"`
	Price          SallaMoney  `json:"price"`
	RegularPrice   *SallaMoney `json:"regular_price"`
	StockQuantity  int64       `json:"stock_quantity"`
	UnlimitedStock bool        `json:"unlimited_quantity"`
}

// SallaOption is a variant axis (e.g. size); used only to detect variability
type SallaOption struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// SallaErrorResponse is Salla's error envelope
type SallaErrorResponse struct {
	Status  int  `json:"status"`
	Success bool `json:"success"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
