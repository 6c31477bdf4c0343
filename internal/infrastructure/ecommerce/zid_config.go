package ecommerce

import "errors"

// ZidProductionAPIURL is the production endpoint for the Zid merchant API
const ZidProductionAPIURL = "https://api.zid.sa/v1"

// ErrZidConfigInvalidPageSize indicates the page size is out of range
var ErrZidConfigInvalidPageSize = errors.New("zid: page size must be between 1 and 100")

// ZidConfig holds the configuration for Zid API access
type ZidConfig struct {
	// APIBaseURL is the base URL for API requests
	APIBaseURL string

	// PageSize is the number of products requested per page
	PageSize int

	// TimeoutSeconds is the HTTP request timeout in seconds
	TimeoutSeconds int
}

// NewZidConfig creates a new Zid configuration with sensible defaults
func NewZidConfig() *ZidConfig {
	return &ZidConfig{
		APIBaseURL:     ZidProductionAPIURL,
		PageSize:       50,
		TimeoutSeconds: 30,
	}
}

// Validate checks the configuration and fills in defaults for zero values
func (c *ZidConfig) Validate() error {
	if c.APIBaseURL == "" {
		c.APIBaseURL = ZidProductionAPIURL
	}
	if c.PageSize == 0 {
		c.PageSize = 50
	}
	if c.PageSize < 1 || c.PageSize > 100 {
		return ErrZidConfigInvalidPageSize
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	return nil
}
