package sync

import (
	"time"

	"github.com/google/uuid"

	"github.com/viamoe/haady-business-sub003/internal/domain/integration"
)

// SyncCatalogRequest carries one sync invocation's parameters. Credentials
// come from the OAuth flow and are opaque to the engine beyond handing them
// to the adapter.
type SyncCatalogRequest struct {
	MerchantID  uuid.UUID
	StoreID     uuid.UUID
	Credentials integration.Credentials
	// SelectedPlatformProductIDs restricts the run to the listed platform
	// records. The filter applies after full pagination; platforms offer no
	// reliable server-side id filter.
	SelectedPlatformProductIDs []string
}

// RefreshInventoryRequest carries an inventory-only refresh invocation
type RefreshInventoryRequest struct {
	MerchantID  uuid.UUID
	StoreID     uuid.UUID
	Credentials integration.Credentials
}

// SyncRunResponse is the run-history record shaped for the dashboard
type SyncRunResponse struct {
	ID              uuid.UUID `json:"id"`
	Platform        string    `json:"platform"`
	Trigger         string    `json:"trigger"`
	Success         bool      `json:"success"`
	ProductsSynced  int       `json:"products_synced"`
	ProductsCreated int       `json:"products_created"`
	ProductsUpdated int       `json:"products_updated"`
	Errors          []string  `json:"errors"`
	StartedAt       time.Time `json:"started_at"`
	FinishedAt      time.Time `json:"finished_at"`
	DurationMs      int64     `json:"duration_ms"`
}

// ToSyncRunResponse converts a run entity to its response form
func ToSyncRunResponse(run *integration.SyncRun) SyncRunResponse {
	return SyncRunResponse{
		ID:              run.ID,
		Platform:        run.Platform.String(),
		Trigger:         string(run.Trigger),
		Success:         run.Success,
		ProductsSynced:  run.ProductsSynced,
		ProductsCreated: run.ProductsCreated,
		ProductsUpdated: run.ProductsUpdated,
		Errors:          run.Errors,
		StartedAt:       run.StartedAt,
		FinishedAt:      run.FinishedAt,
		DurationMs:      run.Duration().Milliseconds(),
	}
}
