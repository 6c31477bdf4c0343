package ecommerce

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/viamoe/haady-business-sub003/internal/domain/integration"
)

// maxSallaResponseSize limits the response body size to prevent memory exhaustion
const maxSallaResponseSize = 10 * 1024 * 1024 // 10MB max response

// SallaAdapter implements the CatalogSource interface for the Salla platform.
// Salla paginates with a page counter; the adapter walks pages until the
// reported totalPages is reached.
type SallaAdapter struct {
	config     *SallaConfig
	httpClient *http.Client
}

// NewSallaAdapter creates a new Salla adapter with the given configuration
func NewSallaAdapter(config *SallaConfig) (*SallaAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &SallaAdapter{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
	}, nil
}

// Platform returns the platform code this adapter handles
func (a *SallaAdapter) Platform() integration.PlatformCode {
	return integration.PlatformCodeSalla
}

// FetchPage retrieves one page of the merchant's catalog. A nil cursor
// requests the first page; a nil next cursor means the listing is complete.
func (a *SallaAdapter) FetchPage(ctx context.Context, creds integration.Credentials, cursor *integration.PageCursor) ([]integration.PlatformProduct, *integration.PageCursor, error) {
	if err := creds.Validate(); err != nil {
		return nil, nil, err
	}

	page := 1
	if cursor != nil && cursor.Page > 0 {
		page = cursor.Page
	}

	respBody, err := a.doRequest(ctx, creds, page)
	if err != nil {
		return nil, nil, err
	}

	var resp SallaProductListResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, nil, fmt.Errorf("salla: failed to parse response: %w", err)
	}

	if !resp.Success {
		return nil, nil, fmt.Errorf("%w: salla status %d", integration.ErrPlatformInvalidResponse, resp.Status)
	}

	products := make([]integration.PlatformProduct, 0, len(resp.Data))
	for i := range resp.Data {
		products = append(products, a.toPlatformProduct(&resp.Data[i]))
	}

	var next *integration.PageCursor
	if resp.Pagination.HasNextPage() {
		next = &integration.PageCursor{Page: resp.Pagination.CurrentPage + 1}
	}

	return products, next, nil
}

// doRequest performs a product listing request against the Salla admin API
func (a *SallaAdapter) doRequest(ctx context.Context, creds integration.Credentials, page int) ([]byte, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("per_page", strconv.Itoa(a.config.PerPage))

	endpoint := fmt.Sprintf("%s/products?%s", a.config.APIBaseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("salla: failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+creds.AccessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, &integration.FetchError{
			Platform: integration.PlatformCodeSalla,
			Body:     err.Error(),
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSallaResponseSize))
	if err != nil {
		return nil, fmt.Errorf("salla: failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &integration.FetchError{
			Platform:   integration.PlatformCodeSalla,
			StatusCode: resp.StatusCode,
			Body:       truncateBody(body),
		}
	}

	return body, nil
}

// toPlatformProduct converts a Salla product record to the platform-neutral form
func (a *SallaAdapter) toPlatformProduct(item *SallaProduct) integration.PlatformProduct {
	product := integration.PlatformProduct{
		ID:           strconv.FormatInt(item.ID, 10),
		Name:         item.Name,
		Description:  item.Description,
		SKU:          item.SKU,
		Price:        item.Price.Amount,
		Quantity:     item.Quantity,
		VariantBased: item.IsVariable(),
	}

	// Salla reports the pre-discount price as regular_price when a sale
	// price is active; that becomes the strikethrough price.
	if item.SalePrice != nil && item.SalePrice.Amount.IsPositive() {
		product.Price = item.SalePrice.Amount
		if item.RegularPrice != nil && item.RegularPrice.Amount.GreaterThan(product.Price) {
			product.ComparePrice = decimalPtr(item.RegularPrice.Amount)
		}
	}

	for _, img := range item.Images {
		if img.URL == "" {
			continue
		}
		if img.Main {
			// Main image goes first regardless of list order
			product.ImageURLs = append([]string{img.URL}, product.ImageURLs...)
			continue
		}
		product.ImageURLs = append(product.ImageURLs, img.URL)
	}

	for _, sku := range item.Skus {
		variant := integration.PlatformVariant{
			ID:       strconv.FormatInt(sku.ID, 10),
			SKU:      sku.SKU,
			Price:    sku.Price.Amount,
			Quantity: sku.StockQuantity,
		}
		if sku.RegularPrice != nil && sku.RegularPrice.Amount.GreaterThan(sku.Price.Amount) {
			variant.ComparePrice = decimalPtr(sku.RegularPrice.Amount)
		}
		if sku.UnlimitedStock && variant.Quantity == 0 {
			variant.Quantity = 1
		}
		product.Variants = append(product.Variants, variant)
	}

	if raw, err := json.Marshal(item); err == nil {
		product.Raw = raw
	}

	return product
}

// truncateBody caps an error body at a size safe to carry in error strings
func truncateBody(body []byte) string {
	const maxErrBody = 512
	if len(body) > maxErrBody {
		return string(body[:maxErrBody]) + "..."
	}
	return string(body)
}

// decimalPtr is a small helper used by adapter conversions
func decimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}

// Ensure SallaAdapter implements CatalogSource interface
var _ integration.CatalogSource = (*SallaAdapter)(nil)
