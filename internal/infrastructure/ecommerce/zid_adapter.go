package ecommerce

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/viamoe/haady-business-sub003/internal/domain/integration"
)

// maxZidResponseSize limits the response body size to prevent memory exhaustion
const maxZidResponseSize = 10 * 1024 * 1024 // 10MB max response

// ZidAdapter implements the CatalogSource interface for the Zid platform.
// Zid paginates with an opaque continuation link; the adapter carries the
// link's query string forward as the cursor token.
type ZidAdapter struct {
	config     *ZidConfig
	httpClient *http.Client
}

// NewZidAdapter creates a new Zid adapter with the given configuration
func NewZidAdapter(config *ZidConfig) (*ZidAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &ZidAdapter{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
	}, nil
}

// Platform returns the platform code this adapter handles
func (a *ZidAdapter) Platform() integration.PlatformCode {
	return integration.PlatformCodeZid
}

// FetchPage retrieves one page of the merchant's catalog. A nil cursor
// requests the first page; a nil next cursor means the listing is complete.
func (a *ZidAdapter) FetchPage(ctx context.Context, creds integration.Credentials, cursor *integration.PageCursor) ([]integration.PlatformProduct, *integration.PageCursor, error) {
	if err := creds.Validate(); err != nil {
		return nil, nil, err
	}

	respBody, err := a.doRequest(ctx, creds, cursor)
	if err != nil {
		return nil, nil, err
	}

	var resp ZidProductListResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, nil, fmt.Errorf("zid: failed to parse response: %w", err)
	}

	products := make([]integration.PlatformProduct, 0, len(resp.Results))
	for i := range resp.Results {
		products = append(products, a.toPlatformProduct(&resp.Results[i]))
	}

	var next *integration.PageCursor
	if resp.Next != "" {
		token, err := extractZidCursorToken(resp.Next)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", integration.ErrPlatformInvalidResponse, err)
		}
		next = &integration.PageCursor{Token: token}
	}

	return products, next, nil
}

// doRequest performs a product listing request against the Zid merchant API
func (a *ZidAdapter) doRequest(ctx context.Context, creds integration.Credentials, cursor *integration.PageCursor) ([]byte, error) {
	query := url.Values{}
	query.Set("page_size", strconv.Itoa(a.config.PageSize))
	if cursor != nil && cursor.Token != "" {
		query.Set("cursor", cursor.Token)
	}

	endpoint := fmt.Sprintf("%s/products?%s", a.config.APIBaseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("zid: failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+creds.AccessToken)
	req.Header.Set("Accept", "application/json")
	if creds.StoreRef != "" {
		req.Header.Set("Store-Id", creds.StoreRef)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, &integration.FetchError{
			Platform: integration.PlatformCodeZid,
			Body:     err.Error(),
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxZidResponseSize))
	if err != nil {
		return nil, fmt.Errorf("zid: failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &integration.FetchError{
			Platform:   integration.PlatformCodeZid,
			StatusCode: resp.StatusCode,
			Body:       truncateBody(body),
		}
	}

	return body, nil
}

// extractZidCursorToken pulls the cursor parameter out of Zid's next-page link
func extractZidCursorToken(next string) (string, error) {
	parsed, err := url.Parse(next)
	if err != nil {
		return "", fmt.Errorf("zid: malformed next link: %w", err)
	}
	token := parsed.Query().Get("cursor")
	if token == "" {
		return "", fmt.Errorf("zid: next link carries no cursor")
	}
	return token, nil
}

// toPlatformProduct converts a Zid product record to the platform-neutral form
func (a *ZidAdapter) toPlatformProduct(item *ZidProduct) integration.PlatformProduct {
	product := integration.PlatformProduct{
		ID:           item.ID,
		Name:         item.Name.Flatten(),
		Description:  item.Description.Flatten(),
		SKU:          item.SKU,
		Price:        item.Price,
		VariantBased: item.HasOptions,
	}

	if item.SalePrice != nil && item.SalePrice.IsPositive() && item.Price.GreaterThan(*item.SalePrice) {
		product.ComparePrice = decimalPtr(item.Price)
		product.Price = *item.SalePrice
	}

	if item.Quantity != nil {
		product.Quantity = *item.Quantity
	} else if item.IsInfinite {
		product.Quantity = 1
	}

	// Zid orders images explicitly; sort before flattening to URLs
	images := make([]ZidProductImage, len(item.Images))
	copy(images, item.Images)
	sort.SliceStable(images, func(i, j int) bool { return images[i].Order < images[j].Order })
	for _, img := range images {
		if img.Image.Full != "" {
			product.ImageURLs = append(product.ImageURLs, img.Image.Full)
		}
	}

	for _, v := range item.Variants {
		variant := integration.PlatformVariant{
			ID:    v.ID,
			SKU:   v.SKU,
			Price: v.Price,
		}
		if v.SalePrice != nil && v.SalePrice.IsPositive() && v.Price.GreaterThan(*v.SalePrice) {
			variant.ComparePrice = decimalPtr(v.Price)
			variant.Price = *v.SalePrice
		}
		if v.Quantity != nil {
			variant.Quantity = *v.Quantity
		}
		product.Variants = append(product.Variants, variant)
	}

	if raw, err := json.Marshal(item); err == nil {
		product.Raw = raw
	}

	return product
}

// Ensure ZidAdapter implements CatalogSource interface
var _ integration.CatalogSource = (*ZidAdapter)(nil)
