package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/viamoe/haady-business-sub003/internal/domain/catalog"
	"github.com/viamoe/haady-business-sub003/internal/domain/integration"
	"github.com/viamoe/haady-business-sub003/internal/domain/shared"
)

// ---------------------------------------------------------------------------
// In-Memory Fakes
// ---------------------------------------------------------------------------

type fakeProductRepo struct {
	byID map[uuid.UUID]*catalog.Product
	// failInsertSKU forces Insert to fail for products with this SKU
	failInsertSKU string
	insertCount   int
	updateCount   int
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{byID: make(map[uuid.UUID]*catalog.Product)}
}

func (f *fakeProductRepo) FindByID(_ context.Context, storeID, id uuid.UUID) (*catalog.Product, error) {
	p, ok := f.byID[id]
	if !ok || p.StoreID != storeID {
		return nil, shared.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (f *fakeProductRepo) FindBySKU(_ context.Context, storeID uuid.UUID, sku string) (*catalog.Product, error) {
	for _, p := range f.byID {
		if p.StoreID == storeID && p.SKU == sku {
			clone := *p
			return &clone, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeProductRepo) FindByNameExcludingSKU(_ context.Context, storeID uuid.UUID, name, excludeSKU string) (*catalog.Product, error) {
	for _, p := range f.byID {
		if p.StoreID == storeID && p.SKU != excludeSKU && (p.NameEn == name || p.NameAr == name) {
			clone := *p
			return &clone, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeProductRepo) ListByStore(_ context.Context, storeID uuid.UUID, _, _ int) ([]catalog.Product, error) {
	var out []catalog.Product
	for _, p := range f.byID {
		if p.StoreID == storeID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) CountByStore(_ context.Context, storeID uuid.UUID) (int64, error) {
	var n int64
	for _, p := range f.byID {
		if p.StoreID == storeID {
			n++
		}
	}
	return n, nil
}

func (f *fakeProductRepo) Insert(_ context.Context, product *catalog.Product) error {
	if f.failInsertSKU != "" && product.SKU == f.failInsertSKU {
		return fmt.Errorf("forced insert failure")
	}
	f.insertCount++
	clone := *product
	f.byID[product.ID] = &clone
	return nil
}

func (f *fakeProductRepo) Update(_ context.Context, product *catalog.Product) error {
	if _, ok := f.byID[product.ID]; !ok {
		return shared.ErrNotFound
	}
	f.updateCount++
	clone := *product
	f.byID[product.ID] = &clone
	return nil
}

type fakeLinkRepo struct {
	byID     map[uuid.UUID]*integration.SourceLink
	failSave bool
}

func newFakeLinkRepo() *fakeLinkRepo {
	return &fakeLinkRepo{byID: make(map[uuid.UUID]*integration.SourceLink)}
}

func (f *fakeLinkRepo) FindByPlatformProduct(_ context.Context, storeID uuid.UUID, platform integration.PlatformCode, platformProductID string) (*integration.SourceLink, error) {
	for _, l := range f.byID {
		if l.StoreID == storeID && l.Platform == platform && l.PlatformProductID == platformProductID {
			clone := *l
			return &clone, nil
		}
	}
	return nil, integration.ErrLinkNotFound
}

func (f *fakeLinkRepo) FindByProductAndPlatform(_ context.Context, storeID, productID uuid.UUID, platform integration.PlatformCode) (*integration.SourceLink, error) {
	for _, l := range f.byID {
		if l.StoreID == storeID && l.ProductID == productID && l.Platform == platform {
			clone := *l
			return &clone, nil
		}
	}
	return nil, integration.ErrLinkNotFound
}

func (f *fakeLinkRepo) FindByProduct(_ context.Context, storeID, productID uuid.UUID) ([]integration.SourceLink, error) {
	var out []integration.SourceLink
	for _, l := range f.byID {
		if l.StoreID == storeID && l.ProductID == productID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (f *fakeLinkRepo) Save(_ context.Context, link *integration.SourceLink) error {
	if f.failSave {
		return fmt.Errorf("forced link failure")
	}
	clone := *link
	f.byID[link.ID] = &clone
	return nil
}

func (f *fakeLinkRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.byID, id)
	return nil
}

type fakeRunRepo struct {
	saved []integration.SyncRun
}

func (f *fakeRunRepo) Save(_ context.Context, run *integration.SyncRun) error {
	f.saved = append(f.saved, *run)
	return nil
}

func (f *fakeRunRepo) ListByStore(_ context.Context, storeID uuid.UUID, _ int) ([]integration.SyncRun, error) {
	var out []integration.SyncRun
	for i := len(f.saved) - 1; i >= 0; i-- {
		if f.saved[i].StoreID == storeID {
			out = append(out, f.saved[i])
		}
	}
	return out, nil
}

func (f *fakeRunRepo) FindLatest(_ context.Context, storeID uuid.UUID, platform integration.PlatformCode) (*integration.SyncRun, error) {
	for i := len(f.saved) - 1; i >= 0; i-- {
		if f.saved[i].StoreID == storeID && f.saved[i].Platform == platform {
			run := f.saved[i]
			return &run, nil
		}
	}
	return nil, shared.ErrNotFound
}

// fakeSource serves preset pages; a non-nil failPage makes that page fail
type fakeSource struct {
	platform integration.PlatformCode
	pages    [][]integration.PlatformProduct
	failPage int // 1-based, 0 disables
	fetches  int
}

func (f *fakeSource) Platform() integration.PlatformCode { return f.platform }

func (f *fakeSource) FetchPage(_ context.Context, _ integration.Credentials, cursor *integration.PageCursor) ([]integration.PlatformProduct, *integration.PageCursor, error) {
	page := 1
	if cursor != nil {
		page = cursor.Page
	}
	f.fetches++

	if f.failPage != 0 && page == f.failPage {
		return nil, nil, &integration.FetchError{Platform: f.platform, StatusCode: 500, Body: "boom"}
	}

	records := f.pages[page-1]
	var next *integration.PageCursor
	if page < len(f.pages) {
		next = &integration.PageCursor{Page: page + 1}
	}
	return records, next, nil
}

type fakeRegistry struct {
	source integration.CatalogSource
}

func (f *fakeRegistry) GetSource(platform integration.PlatformCode) (integration.CatalogSource, error) {
	if f.source == nil || f.source.Platform() != platform {
		return nil, integration.ErrPlatformNotConfigured
	}
	return f.source, nil
}

func (f *fakeRegistry) ListSources() []integration.CatalogSource {
	if f.source == nil {
		return nil
	}
	return []integration.CatalogSource{f.source}
}

type fakeLock struct {
	held map[uuid.UUID]bool
}

func newFakeLock() *fakeLock { return &fakeLock{held: make(map[uuid.UUID]bool)} }

func (f *fakeLock) Acquire(_ context.Context, storeID uuid.UUID) (func(), error) {
	if f.held[storeID] {
		return nil, integration.ErrSyncAlreadyRunning
	}
	f.held[storeID] = true
	return func() { f.held[storeID] = false }, nil
}

// ---------------------------------------------------------------------------
// Test Harness
// ---------------------------------------------------------------------------

type syncFixture struct {
	service  *CatalogSyncService
	products *fakeProductRepo
	links    *fakeLinkRepo
	runs     *fakeRunRepo
	lock     *fakeLock
	source   *fakeSource
	storeID  uuid.UUID
	merchant uuid.UUID
}

func newSyncFixture(t *testing.T, pages ...[]integration.PlatformProduct) *syncFixture {
	t.Helper()
	if len(pages) == 0 {
		pages = [][]integration.PlatformProduct{{}}
	}

	f := &syncFixture{
		products: newFakeProductRepo(),
		links:    newFakeLinkRepo(),
		runs:     &fakeRunRepo{},
		lock:     newFakeLock(),
		source:   &fakeSource{platform: integration.PlatformCodeSalla, pages: pages},
		storeID:  uuid.New(),
		merchant: uuid.New(),
	}
	f.service = NewCatalogSyncService(
		&fakeRegistry{source: f.source},
		f.products,
		f.links,
		f.runs,
		f.lock,
		zap.NewNop(),
	)
	return f
}

func (f *syncFixture) request() SyncCatalogRequest {
	return SyncCatalogRequest{
		MerchantID: f.merchant,
		StoreID:    f.storeID,
		Credentials: integration.Credentials{
			Platform:    integration.PlatformCodeSalla,
			AccessToken: "token",
		},
	}
}

func (f *syncFixture) inventoryRequest() RefreshInventoryRequest {
	return RefreshInventoryRequest{
		MerchantID: f.merchant,
		StoreID:    f.storeID,
		Credentials: integration.Credentials{
			Platform:    integration.PlatformCodeSalla,
			AccessToken: "token",
		},
	}
}

func platformRecord(id, name, sku string, price int64, quantity int64) integration.PlatformProduct {
	raw, _ := json.Marshal(map[string]any{"id": id, "sku": sku, "quantity": quantity})
	return integration.PlatformProduct{
		ID:       id,
		Name:     name,
		SKU:      sku,
		Price:    decimal.NewFromInt(price),
		Quantity: quantity,
		Raw:      raw,
	}
}

// ---------------------------------------------------------------------------
// SyncCatalog Tests
// ---------------------------------------------------------------------------

func TestCatalogSyncService_SyncCatalog_CreatesNewProducts(t *testing.T) {
	f := newSyncFixture(t, []integration.PlatformProduct{
		platformRecord("101", "قميص", "SKU-1", 100, 5),
		platformRecord("102", "Shirt", "SKU-2", 50, 0),
	})

	result, err := f.service.SyncCatalog(context.Background(), f.request())
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 2, result.ProductsSynced)
	assert.Equal(t, 2, result.ProductsCreated)
	assert.Equal(t, 0, result.ProductsUpdated)
	assert.Empty(t, result.Errors)
	assert.Len(t, f.products.byID, 2)
	assert.Len(t, f.links.byID, 2)

	// Run history recorded
	require.Len(t, f.runs.saved, 1)
	assert.Equal(t, integration.SyncTriggerManual, f.runs.saved[0].Trigger)
	assert.True(t, f.runs.saved[0].Success)
}

func TestCatalogSyncService_SyncCatalog_Idempotent(t *testing.T) {
	f := newSyncFixture(t, []integration.PlatformProduct{
		platformRecord("101", "قميص", "SKU-1", 100, 5),
		platformRecord("102", "Shirt", "SKU-2", 50, 3),
	})

	first, err := f.service.SyncCatalog(context.Background(), f.request())
	require.NoError(t, err)
	assert.Equal(t, 2, first.ProductsCreated)

	second, err := f.service.SyncCatalog(context.Background(), f.request())
	require.NoError(t, err)

	assert.True(t, second.Success)
	assert.Equal(t, 0, second.ProductsCreated)
	assert.Equal(t, 0, second.ProductsUpdated)
	assert.Equal(t, 2, second.ProductsSynced)
	assert.Len(t, f.products.byID, 2)
	assert.Len(t, f.links.byID, 2)
}

func TestCatalogSyncService_SyncCatalog_OneProductPerPlatformRecord(t *testing.T) {
	f := newSyncFixture(t, []integration.PlatformProduct{
		platformRecord("101", "Shirt", "SKU-1", 100, 5),
		platformRecord("102", "Mug", "SKU-2", 50, 3),
	})

	_, err := f.service.SyncCatalog(context.Background(), f.request())
	require.NoError(t, err)

	// The platform renames one SKU between runs; the second run must re-match
	// the existing product instead of minting a second one.
	f.source.pages[0][0].SKU = "SKU-1B"

	second, err := f.service.SyncCatalog(context.Background(), f.request())
	require.NoError(t, err)
	assert.Equal(t, 0, second.ProductsCreated)

	// After repeated runs every platform record maps to exactly one product
	seen := make(map[string]uuid.UUID)
	for _, l := range f.links.byID {
		key := string(l.Platform) + "/" + l.PlatformProductID
		if prior, ok := seen[key]; ok {
			t.Fatalf("platform record %s linked to products %s and %s", key, prior, l.ProductID)
		}
		seen[key] = l.ProductID
	}
	assert.Len(t, seen, 2)
	assert.Len(t, f.products.byID, 2)
}

func TestCatalogSyncService_SyncCatalog_UpdatesChangedProducts(t *testing.T) {
	f := newSyncFixture(t, []integration.PlatformProduct{
		platformRecord("101", "قميص", "SKU-1", 100, 5),
	})

	_, err := f.service.SyncCatalog(context.Background(), f.request())
	require.NoError(t, err)

	// Platform-side price change
	f.source.pages[0][0].Price = decimal.NewFromInt(80)

	result, err := f.service.SyncCatalog(context.Background(), f.request())
	require.NoError(t, err)

	assert.Equal(t, 0, result.ProductsCreated)
	assert.Equal(t, 1, result.ProductsUpdated)
	assert.Equal(t, 1, result.ProductsSynced)

	for _, p := range f.products.byID {
		assert.True(t, p.Price.Equal(decimal.NewFromInt(80)))
	}
}

func TestCatalogSyncService_SyncCatalog_SelectedSubset(t *testing.T) {
	f := newSyncFixture(t, []integration.PlatformProduct{
		platformRecord("101", "A", "SKU-1", 10, 1),
		platformRecord("102", "B", "SKU-2", 10, 1),
		platformRecord("103", "C", "SKU-3", 10, 1),
	})

	req := f.request()
	req.SelectedPlatformProductIDs = []string{"101"}

	result, err := f.service.SyncCatalog(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1, result.ProductsSynced)
	assert.Equal(t, 1, result.ProductsCreated)
	assert.Len(t, f.products.byID, 1)
	// Filter applies after pagination, not pushed down to the adapter
	assert.Equal(t, 1, f.source.fetches)
}

func TestCatalogSyncService_SyncCatalog_PartialFailureIsolation(t *testing.T) {
	f := newSyncFixture(t, []integration.PlatformProduct{
		platformRecord("101", "A", "SKU-1", 10, 1),
		platformRecord("102", "B", "SKU-2", 10, 1),
		platformRecord("103", "C", "SKU-3", 10, 1),
	})
	f.products.failInsertSKU = "SKU-2"

	result, err := f.service.SyncCatalog(context.Background(), f.request())
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Equal(t, 2, result.ProductsCreated)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "102")
}

func TestCatalogSyncService_SyncCatalog_FetchErrorKeepsPartialProgress(t *testing.T) {
	f := newSyncFixture(t,
		[]integration.PlatformProduct{platformRecord("101", "A", "SKU-1", 10, 1)},
		[]integration.PlatformProduct{platformRecord("102", "B", "SKU-2", 10, 1)},
	)
	f.source.failPage = 2

	result, err := f.service.SyncCatalog(context.Background(), f.request())
	require.NoError(t, err)

	// Page one's record still processed, page two's never fetched
	assert.False(t, result.Success)
	assert.Equal(t, 1, result.ProductsCreated)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "fetch aborted")
}

func TestCatalogSyncService_SyncCatalog_SkuConflictRejected(t *testing.T) {
	f := newSyncFixture(t, []integration.PlatformProduct{
		platformRecord("2", "A", "ABC", 10, 1),
	})

	// Seed a product with SKU ABC already linked to platform record "1"
	existing, err := catalog.NewProduct(f.storeID, "A", "")
	require.NoError(t, err)
	existing.SKU = "ABC"
	originalPrice := decimal.NewFromInt(999)
	existing.Price = originalPrice
	require.NoError(t, f.products.Insert(context.Background(), existing))
	link, err := integration.NewSourceLink(f.storeID, existing.ID, integration.PlatformCodeSalla, "1")
	require.NoError(t, err)
	require.NoError(t, f.links.Save(context.Background(), link))

	result, err := f.service.SyncCatalog(context.Background(), f.request())
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Equal(t, 0, result.ProductsCreated)
	assert.Equal(t, 0, result.ProductsUpdated)
	require.Len(t, result.Errors, 1)

	// The existing product must be untouched
	stored, err := f.products.FindByID(context.Background(), f.storeID, existing.ID)
	require.NoError(t, err)
	assert.True(t, stored.Price.Equal(originalPrice))
}

func TestCatalogSyncService_SyncCatalog_LinkFailureIsWarning(t *testing.T) {
	f := newSyncFixture(t, []integration.PlatformProduct{
		platformRecord("101", "A", "SKU-1", 10, 1),
	})
	f.links.failSave = true

	result, err := f.service.SyncCatalog(context.Background(), f.request())
	require.NoError(t, err)

	// Product still counts as created; the link failure is a warning entry
	assert.Equal(t, 1, result.ProductsCreated)
	assert.Equal(t, 1, result.ProductsSynced)
	assert.False(t, result.Success)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "warning")
	assert.Len(t, f.products.byID, 1)
}

func TestCatalogSyncService_SyncCatalog_LinksLegacyProduct(t *testing.T) {
	f := newSyncFixture(t, []integration.PlatformProduct{
		platformRecord("101", "Legacy", "LEG-1", 10, 1),
	})

	// A manually entered product with a matching SKU and no link
	legacy, err := catalog.NewProduct(f.storeID, "Legacy", "")
	require.NoError(t, err)
	legacy.SKU = "LEG-1"
	require.NoError(t, f.products.Insert(context.Background(), legacy))

	result, err := f.service.SyncCatalog(context.Background(), f.request())
	require.NoError(t, err)

	assert.Equal(t, 0, result.ProductsCreated)
	assert.Len(t, f.products.byID, 1)
	// The legacy product gained a link on first sync
	created, err := f.links.FindByProductAndPlatform(context.Background(), f.storeID, legacy.ID, integration.PlatformCodeSalla)
	require.NoError(t, err)
	assert.Equal(t, "101", created.PlatformProductID)
}

func TestCatalogSyncService_SyncCatalog_SkipsUnpriceableRecords(t *testing.T) {
	f := newSyncFixture(t, []integration.PlatformProduct{
		{ID: "101", Name: "Broken", VariantBased: true},
		platformRecord("102", "Good", "SKU-2", 10, 1),
	})

	result, err := f.service.SyncCatalog(context.Background(), f.request())
	require.NoError(t, err)

	// The skipped record is absent from every count
	assert.True(t, result.Success)
	assert.Equal(t, 1, result.ProductsSynced)
	assert.Equal(t, 1, result.ProductsCreated)
	assert.Empty(t, result.Errors)
}

func TestCatalogSyncService_SyncCatalog_RejectsConcurrentRun(t *testing.T) {
	f := newSyncFixture(t, []integration.PlatformProduct{})
	f.lock.held[f.storeID] = true

	_, err := f.service.SyncCatalog(context.Background(), f.request())
	assert.ErrorIs(t, err, integration.ErrSyncAlreadyRunning)
	assert.Empty(t, f.runs.saved)
}

func TestCatalogSyncService_SyncCatalog_SetupErrors(t *testing.T) {
	f := newSyncFixture(t)

	t.Run("missing token", func(t *testing.T) {
		req := f.request()
		req.Credentials.AccessToken = ""
		_, err := f.service.SyncCatalog(context.Background(), req)
		assert.ErrorIs(t, err, integration.ErrInvalidCredentials)
	})

	t.Run("unknown platform", func(t *testing.T) {
		req := f.request()
		req.Credentials.Platform = integration.PlatformCode("SHOPIFY")
		_, err := f.service.SyncCatalog(context.Background(), req)
		assert.Error(t, err)
	})

	t.Run("missing store identity", func(t *testing.T) {
		req := f.request()
		req.StoreID = uuid.Nil
		_, err := f.service.SyncCatalog(context.Background(), req)
		assert.Error(t, err)
	})
}

// ---------------------------------------------------------------------------
// RefreshInventory Tests
// ---------------------------------------------------------------------------

func TestCatalogSyncService_RefreshInventory_NeverCreates(t *testing.T) {
	f := newSyncFixture(t, []integration.PlatformProduct{
		platformRecord("brand-new", "Never Seen", "NEW-1", 10, 5),
	})

	result, err := f.service.RefreshInventory(context.Background(), f.inventoryRequest())
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 0, result.ProductsCreated)
	assert.Equal(t, 0, result.ProductsUpdated)
	assert.Empty(t, f.products.byID)
	assert.Empty(t, f.links.byID)
}

func TestCatalogSyncService_RefreshInventory_UpdatesAvailabilityOnly(t *testing.T) {
	f := newSyncFixture(t, []integration.PlatformProduct{
		platformRecord("101", "Renamed On Platform", "SKU-1", 500, 0),
	})

	// Seed a linked, available product with a different name and price
	product, err := catalog.NewProduct(f.storeID, "Original Name", "")
	require.NoError(t, err)
	product.SKU = "SKU-1"
	product.Price = decimal.NewFromInt(100)
	product.IsAvailable = true
	require.NoError(t, f.products.Insert(context.Background(), product))

	link, err := integration.NewSourceLink(f.storeID, product.ID, integration.PlatformCodeSalla, "101")
	require.NoError(t, err)
	link.Touch("SKU-1", json.RawMessage(`{"id":"101","quantity":9}`))
	require.NoError(t, f.links.Save(context.Background(), link))

	result, err := f.service.RefreshInventory(context.Background(), f.inventoryRequest())
	require.NoError(t, err)

	assert.Equal(t, 1, result.ProductsUpdated)
	assert.Equal(t, 1, result.ProductsSynced)

	stored, err := f.products.FindByID(context.Background(), f.storeID, product.ID)
	require.NoError(t, err)
	// Stock went to zero so availability flips, nothing else moves
	assert.False(t, stored.IsAvailable)
	assert.Equal(t, "Original Name", stored.NameEn)
	assert.True(t, stored.Price.Equal(decimal.NewFromInt(100)))

	// Cached quantity inside the link payload is rewritten
	updatedLink, err := f.links.FindByPlatformProduct(context.Background(), f.storeID, integration.PlatformCodeSalla, "101")
	require.NoError(t, err)
	var payload map[string]any
	require.NoError(t, json.Unmarshal(updatedLink.RawPayload, &payload))
	assert.Equal(t, float64(0), payload["quantity"])
}

func TestCatalogSyncService_RefreshInventory_UnchangedWhenStockSame(t *testing.T) {
	f := newSyncFixture(t, []integration.PlatformProduct{
		platformRecord("101", "A", "SKU-1", 10, 4),
	})

	product, err := catalog.NewProduct(f.storeID, "A", "")
	require.NoError(t, err)
	product.SKU = "SKU-1"
	product.IsAvailable = true
	require.NoError(t, f.products.Insert(context.Background(), product))
	link, err := integration.NewSourceLink(f.storeID, product.ID, integration.PlatformCodeSalla, "101")
	require.NoError(t, err)
	require.NoError(t, f.links.Save(context.Background(), link))

	result, err := f.service.RefreshInventory(context.Background(), f.inventoryRequest())
	require.NoError(t, err)

	assert.Equal(t, 0, result.ProductsUpdated)
	assert.Equal(t, 1, result.ProductsSynced)
	require.Len(t, f.runs.saved, 1)
	assert.Equal(t, integration.SyncTriggerInventory, f.runs.saved[0].Trigger)
}

// ---------------------------------------------------------------------------
// Run History Tests
// ---------------------------------------------------------------------------

func TestCatalogSyncService_ListRuns(t *testing.T) {
	f := newSyncFixture(t, []integration.PlatformProduct{
		platformRecord("101", "A", "SKU-1", 10, 1),
	})

	_, err := f.service.SyncCatalog(context.Background(), f.request())
	require.NoError(t, err)
	_, err = f.service.RefreshInventory(context.Background(), f.inventoryRequest())
	require.NoError(t, err)

	runs, err := f.service.ListRuns(context.Background(), f.storeID, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	// Newest first
	assert.Equal(t, string(integration.SyncTriggerInventory), runs[0].Trigger)
	assert.Equal(t, string(integration.SyncTriggerManual), runs[1].Trigger)
}
