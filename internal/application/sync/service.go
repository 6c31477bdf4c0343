package sync

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/viamoe/haady-business-sub003/internal/domain/catalog"
	"github.com/viamoe/haady-business-sub003/internal/domain/integration"
)

// CatalogSyncService orchestrates the fetch, normalize, resolve, reconcile
// pipeline for one store and platform. A run is strictly sequential: page
// N+1 is not requested until page N is collected, and items reconcile one at
// a time in list order, because the write path checks SKU uniqueness against
// shared per-store state.
type CatalogSyncService struct {
	sources  integration.CatalogSourceRegistry
	products catalog.ProductRepository
	links    integration.SourceLinkRepository
	runs     integration.SyncRunRepository
	lock     integration.StoreLock
	logger   *zap.Logger

	resolver   *IdentityResolver
	reconciler *Reconciler
}

// NewCatalogSyncService creates a new sync service
func NewCatalogSyncService(
	sources integration.CatalogSourceRegistry,
	products catalog.ProductRepository,
	links integration.SourceLinkRepository,
	runs integration.SyncRunRepository,
	lock integration.StoreLock,
	logger *zap.Logger,
) *CatalogSyncService {
	return &CatalogSyncService{
		sources:    sources,
		products:   products,
		links:      links,
		runs:       runs,
		lock:       lock,
		logger:     logger,
		resolver:   NewIdentityResolver(products, links),
		reconciler: NewReconciler(products, links, logger),
	}
}

// SyncCatalog runs a full catalog sync. Setup failures (bad credentials,
// unknown platform, a run already in flight) are returned as errors before
// any work happens; once the loop starts, per-item failures are collected
// into the result and never abort the run.
func (s *CatalogSyncService) SyncCatalog(ctx context.Context, req SyncCatalogRequest) (*integration.SyncResult, error) {
	if err := s.validateRequest(req.StoreID, req.MerchantID, req.Credentials); err != nil {
		return nil, err
	}

	source, err := s.sources.GetSource(req.Credentials.Platform)
	if err != nil {
		return nil, err
	}

	release, err := s.lock.Acquire(ctx, req.StoreID)
	if err != nil {
		return nil, err
	}
	defer release()

	run := integration.NewSyncRun(req.StoreID, req.MerchantID, req.Credentials.Platform, integration.SyncTriggerManual)
	result := integration.NewSyncResult()

	s.logger.Info("catalog sync started",
		zap.String("store_id", req.StoreID.String()),
		zap.String("platform", req.Credentials.Platform.String()),
		zap.Int("selected_ids", len(req.SelectedPlatformProductIDs)))

	records := s.fetchAll(ctx, source, req.Credentials, result)
	records = filterSelected(records, req.SelectedPlatformProductIDs)

	for i := range records {
		record := &records[i]
		outcome := s.processRecord(ctx, req.StoreID, req.Credentials.Platform, record)

		switch outcome.Kind {
		case integration.ItemCreated:
			result.ProductsCreated++
			result.ProductsSynced++
		case integration.ItemUpdated:
			result.ProductsUpdated++
			result.ProductsSynced++
		case integration.ItemUnchanged:
			result.ProductsSynced++
		case integration.ItemSkipped:
			// Excluded from every count
		case integration.ItemFailed:
			result.RecordError(fmt.Sprintf("product %s: %v", record.ID, outcome.Err))
		}

		if outcome.Warning != "" {
			result.RecordError(outcome.Warning)
		}
	}

	result.Finalize()
	s.completeRun(ctx, run, result)

	s.logger.Info("catalog sync finished",
		zap.String("store_id", req.StoreID.String()),
		zap.Bool("success", result.Success),
		zap.Int("synced", result.ProductsSynced),
		zap.Int("created", result.ProductsCreated),
		zap.Int("updated", result.ProductsUpdated),
		zap.Int("errors", len(result.Errors)))

	return result, nil
}

// RefreshInventory runs the reduced inventory-only pipeline. It reuses the
// same adapter and pagination but only updates stock-derived availability on
// products that already resolve; unresolved records are skipped, never
// created.
func (s *CatalogSyncService) RefreshInventory(ctx context.Context, req RefreshInventoryRequest) (*integration.SyncResult, error) {
	if err := s.validateRequest(req.StoreID, req.MerchantID, req.Credentials); err != nil {
		return nil, err
	}

	source, err := s.sources.GetSource(req.Credentials.Platform)
	if err != nil {
		return nil, err
	}

	release, err := s.lock.Acquire(ctx, req.StoreID)
	if err != nil {
		return nil, err
	}
	defer release()

	run := integration.NewSyncRun(req.StoreID, req.MerchantID, req.Credentials.Platform, integration.SyncTriggerInventory)
	result := integration.NewSyncResult()

	records := s.fetchAll(ctx, source, req.Credentials, result)

	for i := range records {
		record := &records[i]
		outcome := s.refreshRecord(ctx, req.StoreID, req.Credentials.Platform, record)

		switch outcome.Kind {
		case integration.ItemUpdated:
			result.ProductsUpdated++
			result.ProductsSynced++
		case integration.ItemUnchanged:
			result.ProductsSynced++
		case integration.ItemSkipped:
			// Unresolved records are out of scope for this path
		case integration.ItemFailed:
			result.RecordError(fmt.Sprintf("product %s: %v", record.ID, outcome.Err))
		}
	}

	result.Finalize()
	s.completeRun(ctx, run, result)

	return result, nil
}

// ListRuns returns the store's recent run history, newest first
func (s *CatalogSyncService) ListRuns(ctx context.Context, storeID uuid.UUID, limit int) ([]SyncRunResponse, error) {
	runs, err := s.runs.ListByStore(ctx, storeID, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]SyncRunResponse, 0, len(runs))
	for i := range runs {
		responses = append(responses, ToSyncRunResponse(&runs[i]))
	}
	return responses, nil
}

// ---------------------------------------------------------------------------
// Internal Pipeline Steps
// ---------------------------------------------------------------------------

func (s *CatalogSyncService) validateRequest(storeID, merchantID uuid.UUID, creds integration.Credentials) error {
	if storeID == uuid.Nil || merchantID == uuid.Nil {
		return integration.ErrInvalidCredentials
	}
	return creds.Validate()
}

// fetchAll pages through the platform catalog one page at a time. A fetch
// failure stops requesting further pages but keeps everything already
// collected; the failure is recorded on the result.
func (s *CatalogSyncService) fetchAll(ctx context.Context, source integration.CatalogSource, creds integration.Credentials, result *integration.SyncResult) []integration.PlatformProduct {
	var records []integration.PlatformProduct
	var cursor *integration.PageCursor

	for {
		page, next, err := source.FetchPage(ctx, creds, cursor)
		if err != nil {
			s.logger.Warn("catalog page fetch failed, keeping partial results",
				zap.String("platform", source.Platform().String()),
				zap.Int("records_so_far", len(records)),
				zap.Error(err))
			result.RecordError(fmt.Sprintf("fetch aborted: %v", err))
			return records
		}

		records = append(records, page...)
		if next == nil {
			return records
		}
		cursor = next
	}
}

// processRecord runs one record through normalize, resolve, reconcile
func (s *CatalogSyncService) processRecord(ctx context.Context, storeID uuid.UUID, platform integration.PlatformCode, record *integration.PlatformProduct) integration.ItemOutcome {
	normalized := Normalize(record)
	if normalized == nil {
		return integration.ItemOutcome{Kind: integration.ItemSkipped}
	}

	resolution, err := s.resolver.Resolve(ctx, storeID, platform, record.ID, normalized.SKU, normalized.NameEn)
	if err != nil {
		if errors.Is(err, integration.ErrProductNotMatched) {
			return s.reconciler.Reconcile(ctx, storeID, platform, record, normalized, nil)
		}
		return integration.ItemOutcome{Kind: integration.ItemFailed, Err: err}
	}

	return s.reconciler.Reconcile(ctx, storeID, platform, record, normalized, resolution)
}

// refreshRecord updates only availability and the cached quantity for one
// already-linked record
func (s *CatalogSyncService) refreshRecord(ctx context.Context, storeID uuid.UUID, platform integration.PlatformCode, record *integration.PlatformProduct) integration.ItemOutcome {
	normalized := Normalize(record)
	if normalized == nil {
		return integration.ItemOutcome{Kind: integration.ItemSkipped}
	}

	resolution, err := s.resolver.ResolveLinked(ctx, storeID, platform, record.ID, normalized.SKU)
	if err != nil {
		if errors.Is(err, integration.ErrProductNotMatched) {
			return integration.ItemOutcome{Kind: integration.ItemSkipped}
		}
		return integration.ItemOutcome{Kind: integration.ItemFailed, Err: err}
	}

	changed := false
	if resolution.Product.IsAvailable != normalized.IsAvailable {
		resolution.Product.SetAvailability(normalized.IsAvailable)
		if err := s.products.Update(ctx, resolution.Product); err != nil {
			return integration.ItemOutcome{Kind: integration.ItemFailed, Err: fmt.Errorf("failed to update availability: %w", err)}
		}
		changed = true
	}

	if resolution.Link != nil {
		if err := resolution.Link.UpdateCachedQuantity(normalized.Quantity); err != nil {
			return integration.ItemOutcome{Kind: integration.ItemFailed, Err: err}
		}
		if err := s.links.Save(ctx, resolution.Link); err != nil {
			return integration.ItemOutcome{Kind: integration.ItemFailed, Err: fmt.Errorf("failed to update cached quantity: %w", err)}
		}
	}

	if changed {
		return integration.ItemOutcome{Kind: integration.ItemUpdated}
	}
	return integration.ItemOutcome{Kind: integration.ItemUnchanged}
}

// completeRun stamps and persists the run history record. History is
// reporting metadata; a save failure is logged, not surfaced.
func (s *CatalogSyncService) completeRun(ctx context.Context, run *integration.SyncRun, result *integration.SyncResult) {
	run.Complete(result)
	if err := s.runs.Save(ctx, run); err != nil {
		s.logger.Warn("failed to persist sync run history",
			zap.String("run_id", run.ID.String()),
			zap.Error(err))
	}
}

// filterSelected keeps only records whose platform id is in the allow-list.
// An empty list means no filtering.
func filterSelected(records []integration.PlatformProduct, selected []string) []integration.PlatformProduct {
	if len(selected) == 0 {
		return records
	}

	allow := make(map[string]struct{}, len(selected))
	for _, id := range selected {
		allow[id] = struct{}{}
	}

	filtered := records[:0]
	for _, record := range records {
		if _, ok := allow[record.ID]; ok {
			filtered = append(filtered, record)
		}
	}
	return filtered
}
