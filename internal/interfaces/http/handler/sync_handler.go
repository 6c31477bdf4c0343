package handler

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appsync "github.com/viamoe/haady-business-sub003/internal/application/sync"
	"github.com/viamoe/haady-business-sub003/internal/domain/integration"
	"github.com/viamoe/haady-business-sub003/internal/interfaces/http/middleware"
)

// CatalogSyncService is the slice of the sync application service this
// handler needs
type CatalogSyncService interface {
	SyncCatalog(ctx context.Context, req appsync.SyncCatalogRequest) (*integration.SyncResult, error)
	RefreshInventory(ctx context.Context, req appsync.RefreshInventoryRequest) (*integration.SyncResult, error)
	ListRuns(ctx context.Context, storeID uuid.UUID, limit int) ([]appsync.SyncRunResponse, error)
}

// SyncHandler exposes the catalog sync engine to the dashboard
type SyncHandler struct {
	BaseHandler
	service         CatalogSyncService
	runHistoryLimit int
}

// NewSyncHandler creates a new SyncHandler
func NewSyncHandler(service CatalogSyncService, runHistoryLimit int) *SyncHandler {
	return &SyncHandler{
		service:         service,
		runHistoryLimit: runHistoryLimit,
	}
}

// SyncCatalogRequest is the request body for a catalog sync
type SyncCatalogRequest struct {
	// AccessToken is the platform token obtained by the OAuth flow
	AccessToken string `json:"access_token" binding:"required"`
	// StoreRef is the platform-side store domain or identifier
	StoreRef string `json:"store_ref"`
	// SelectedProductIDs optionally restricts the sync to these platform
	// product ids
	SelectedProductIDs []string `json:"selected_product_ids"`
}

// RefreshInventoryRequest is the request body for an inventory refresh
type RefreshInventoryRequest struct {
	AccessToken string `json:"access_token" binding:"required"`
	StoreRef    string `json:"store_ref"`
}

// SyncCatalog handles POST /api/v1/integrations/:platform/sync
func (h *SyncHandler) SyncCatalog(c *gin.Context) {
	platform, ok := h.platformParam(c)
	if !ok {
		return
	}

	merchantID, storeID, err := getIdentity(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req SyncCatalogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.service.SyncCatalog(c.Request.Context(), appsync.SyncCatalogRequest{
		MerchantID: merchantID,
		StoreID:    storeID,
		Credentials: integration.Credentials{
			Platform:    platform,
			AccessToken: req.AccessToken,
			StoreRef:    req.StoreRef,
		},
		SelectedPlatformProductIDs: req.SelectedProductIDs,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// RefreshInventory handles POST /api/v1/integrations/:platform/inventory/refresh
func (h *SyncHandler) RefreshInventory(c *gin.Context) {
	platform, ok := h.platformParam(c)
	if !ok {
		return
	}

	merchantID, storeID, err := getIdentity(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req RefreshInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.service.RefreshInventory(c.Request.Context(), appsync.RefreshInventoryRequest{
		MerchantID: merchantID,
		StoreID:    storeID,
		Credentials: integration.Credentials{
			Platform:    platform,
			AccessToken: req.AccessToken,
			StoreRef:    req.StoreRef,
		},
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ListRuns handles GET /api/v1/integrations/runs
func (h *SyncHandler) ListRuns(c *gin.Context) {
	_, storeID, err := getIdentity(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	runs, err := h.service.ListRuns(c.Request.Context(), storeID, h.runHistoryLimit)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, runs)
}

// platformParam parses and validates the :platform path parameter
func (h *SyncHandler) platformParam(c *gin.Context) (integration.PlatformCode, bool) {
	platform := integration.PlatformCode(strings.ToUpper(c.Param("platform")))
	if !platform.IsValid() {
		h.BadRequest(c, "Unknown platform: "+c.Param("platform"))
		return "", false
	}
	return platform, true
}
