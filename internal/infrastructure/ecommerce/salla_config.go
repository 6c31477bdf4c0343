package ecommerce

import "errors"

// SallaConfig holds configuration for the Salla merchant API
type SallaConfig struct {
	// APIBaseURL is the base URL for the Salla admin API
	APIBaseURL string
	// PerPage is the number of products requested per listing page
	PerPage int
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

// SallaProductionAPIURL is the production API endpoint
const SallaProductionAPIURL = "https://api.salla.dev/admin/v2"

// ErrSallaConfigInvalidPerPage indicates an out-of-range page size
var ErrSallaConfigInvalidPerPage = errors.New("salla: per_page must be between 1 and 100")

// NewSallaConfig creates a new Salla configuration with defaults
func NewSallaConfig() *SallaConfig {
	return &SallaConfig{
		APIBaseURL:     SallaProductionAPIURL,
		PerPage:        50,
		TimeoutSeconds: 30,
	}
}

// Validate validates the Salla configuration and fills defaults
func (c *SallaConfig) Validate() error {
	if c.APIBaseURL == "" {
		c.APIBaseURL = SallaProductionAPIURL
	}
	if c.PerPage == 0 {
		c.PerPage = 50
	}
	if c.PerPage < 1 || c.PerPage > 100 {
		return ErrSallaConfigInvalidPerPage
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	return nil
}
