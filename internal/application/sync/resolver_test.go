package sync

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/viamoe/haady-business-sub003/internal/domain/catalog"
	"github.com/viamoe/haady-business-sub003/internal/domain/integration"
	"github.com/viamoe/haady-business-sub003/internal/domain/shared"
)

// MockProductReader is a mock implementation of ProductReader
type MockProductReader struct {
	mock.Mock
}

func (m *MockProductReader) FindByID(ctx context.Context, storeID, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, storeID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductReader) FindBySKU(ctx context.Context, storeID uuid.UUID, sku string) (*catalog.Product, error) {
	args := m.Called(ctx, storeID, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductReader) FindByNameExcludingSKU(ctx context.Context, storeID uuid.UUID, name, excludeSKU string) (*catalog.Product, error) {
	args := m.Called(ctx, storeID, name, excludeSKU)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductReader) ListByStore(ctx context.Context, storeID uuid.UUID, offset, limit int) ([]catalog.Product, error) {
	args := m.Called(ctx, storeID, offset, limit)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductReader) CountByStore(ctx context.Context, storeID uuid.UUID) (int64, error) {
	args := m.Called(ctx, storeID)
	return args.Get(0).(int64), args.Error(1)
}

// MockSourceLinkReader is a mock implementation of SourceLinkReader
type MockSourceLinkReader struct {
	mock.Mock
}

func (m *MockSourceLinkReader) FindByPlatformProduct(ctx context.Context, storeID uuid.UUID, platform integration.PlatformCode, platformProductID string) (*integration.SourceLink, error) {
	args := m.Called(ctx, storeID, platform, platformProductID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.SourceLink), args.Error(1)
}

func (m *MockSourceLinkReader) FindByProductAndPlatform(ctx context.Context, storeID, productID uuid.UUID, platform integration.PlatformCode) (*integration.SourceLink, error) {
	args := m.Called(ctx, storeID, productID, platform)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.SourceLink), args.Error(1)
}

func (m *MockSourceLinkReader) FindByProduct(ctx context.Context, storeID, productID uuid.UUID) ([]integration.SourceLink, error) {
	args := m.Called(ctx, storeID, productID)
	return args.Get(0).([]integration.SourceLink), args.Error(1)
}

func testProduct(t *testing.T, storeID uuid.UUID, sku string) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(storeID, "Test Product", "منتج تجريبي")
	require.NoError(t, err)
	product.SKU = sku
	return product
}

func testLink(t *testing.T, storeID, productID uuid.UUID, platformProductID string) *integration.SourceLink {
	t.Helper()
	link, err := integration.NewSourceLink(storeID, productID, integration.PlatformCodeSalla, platformProductID)
	require.NoError(t, err)
	return link
}

func TestIdentityResolver_Resolve(t *testing.T) {
	storeID := uuid.New()
	platform := integration.PlatformCodeSalla
	ctx := context.Background()

	t.Run("source link match is authoritative", func(t *testing.T) {
		products := new(MockProductReader)
		links := new(MockSourceLinkReader)
		resolver := NewIdentityResolver(products, links)

		product := testProduct(t, storeID, "ABC")
		link := testLink(t, storeID, product.ID, "101")

		links.On("FindByPlatformProduct", ctx, storeID, platform, "101").Return(link, nil)
		products.On("FindByID", ctx, storeID, product.ID).Return(product, nil)

		resolution, err := resolver.Resolve(ctx, storeID, platform, "101", "ABC", "Test Product")
		require.NoError(t, err)
		assert.Equal(t, product.ID, resolution.Product.ID)
		assert.NotNil(t, resolution.Link)
		// SKU layer must not run when the link matched
		products.AssertNotCalled(t, "FindBySKU", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("sku fallback without existing link", func(t *testing.T) {
		products := new(MockProductReader)
		links := new(MockSourceLinkReader)
		resolver := NewIdentityResolver(products, links)

		product := testProduct(t, storeID, "ABC")

		links.On("FindByPlatformProduct", ctx, storeID, platform, "101").Return(nil, integration.ErrLinkNotFound)
		products.On("FindBySKU", ctx, storeID, "ABC").Return(product, nil)
		links.On("FindByProductAndPlatform", ctx, storeID, product.ID, platform).Return(nil, integration.ErrLinkNotFound)

		resolution, err := resolver.Resolve(ctx, storeID, platform, "101", "ABC", "Test Product")
		require.NoError(t, err)
		assert.Equal(t, product.ID, resolution.Product.ID)
		assert.Nil(t, resolution.Link)
	})

	t.Run("sku fallback rejects cross-record collision", func(t *testing.T) {
		products := new(MockProductReader)
		links := new(MockSourceLinkReader)
		resolver := NewIdentityResolver(products, links)

		product := testProduct(t, storeID, "ABC")
		// The product is already linked to a different platform record
		existing := testLink(t, storeID, product.ID, "1")

		links.On("FindByPlatformProduct", ctx, storeID, platform, "2").Return(nil, integration.ErrLinkNotFound)
		products.On("FindBySKU", ctx, storeID, "ABC").Return(product, nil)
		links.On("FindByProductAndPlatform", ctx, storeID, product.ID, platform).Return(existing, nil)

		_, err := resolver.Resolve(ctx, storeID, platform, "2", "ABC", "Test Product")
		assert.ErrorIs(t, err, integration.ErrDuplicateSKUConflict)
	})

	t.Run("sku fallback accepts link to same record", func(t *testing.T) {
		products := new(MockProductReader)
		links := new(MockSourceLinkReader)
		resolver := NewIdentityResolver(products, links)

		product := testProduct(t, storeID, "ABC")
		existing := testLink(t, storeID, product.ID, "101")

		links.On("FindByPlatformProduct", ctx, storeID, platform, "101").Return(nil, integration.ErrLinkNotFound)
		products.On("FindBySKU", ctx, storeID, "ABC").Return(product, nil)
		links.On("FindByProductAndPlatform", ctx, storeID, product.ID, platform).Return(existing, nil)

		resolution, err := resolver.Resolve(ctx, storeID, platform, "101", "ABC", "Test Product")
		require.NoError(t, err)
		assert.NotNil(t, resolution.Link)
	})

	t.Run("name heuristic rescues a renamed sku", func(t *testing.T) {
		products := new(MockProductReader)
		links := new(MockSourceLinkReader)
		resolver := NewIdentityResolver(products, links)

		// The stored product still carries the old SKU; the platform record
		// now reports a new one, so the exact SKU layer misses.
		product := testProduct(t, storeID, "OLD-SKU")

		links.On("FindByPlatformProduct", ctx, storeID, platform, "101").Return(nil, integration.ErrLinkNotFound)
		products.On("FindBySKU", ctx, storeID, "NEW-SKU").Return(nil, shared.ErrNotFound)
		products.On("FindByNameExcludingSKU", ctx, storeID, "Test Product", "NEW-SKU").Return(product, nil)
		links.On("FindByProductAndPlatform", ctx, storeID, product.ID, platform).Return(nil, integration.ErrLinkNotFound)

		resolution, err := resolver.Resolve(ctx, storeID, platform, "101", "NEW-SKU", "Test Product")
		require.NoError(t, err)
		assert.Equal(t, product.ID, resolution.Product.ID)
	})

	t.Run("not found when every layer misses", func(t *testing.T) {
		products := new(MockProductReader)
		links := new(MockSourceLinkReader)
		resolver := NewIdentityResolver(products, links)

		links.On("FindByPlatformProduct", ctx, storeID, platform, "101").Return(nil, integration.ErrLinkNotFound)
		products.On("FindBySKU", ctx, storeID, "ABC").Return(nil, shared.ErrNotFound)
		products.On("FindByNameExcludingSKU", ctx, storeID, "Test Product", "ABC").Return(nil, shared.ErrNotFound)

		_, err := resolver.Resolve(ctx, storeID, platform, "101", "ABC", "Test Product")
		assert.ErrorIs(t, err, integration.ErrProductNotMatched)
	})

	t.Run("empty sku skips fallback layers", func(t *testing.T) {
		products := new(MockProductReader)
		links := new(MockSourceLinkReader)
		resolver := NewIdentityResolver(products, links)

		links.On("FindByPlatformProduct", ctx, storeID, platform, "101").Return(nil, integration.ErrLinkNotFound)

		_, err := resolver.Resolve(ctx, storeID, platform, "101", "", "Test Product")
		assert.ErrorIs(t, err, integration.ErrProductNotMatched)
		products.AssertNotCalled(t, "FindBySKU", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("dangling link falls through to sku", func(t *testing.T) {
		products := new(MockProductReader)
		links := new(MockSourceLinkReader)
		resolver := NewIdentityResolver(products, links)

		product := testProduct(t, storeID, "ABC")
		dangling := testLink(t, storeID, uuid.New(), "101")

		links.On("FindByPlatformProduct", ctx, storeID, platform, "101").Return(dangling, nil)
		products.On("FindByID", ctx, storeID, dangling.ProductID).Return(nil, shared.ErrNotFound)
		products.On("FindBySKU", ctx, storeID, "ABC").Return(product, nil)
		links.On("FindByProductAndPlatform", ctx, storeID, product.ID, platform).Return(nil, integration.ErrLinkNotFound)

		resolution, err := resolver.Resolve(ctx, storeID, platform, "101", "ABC", "Test Product")
		require.NoError(t, err)
		assert.Equal(t, product.ID, resolution.Product.ID)
	})
}

func TestIdentityResolver_ResolveLinked(t *testing.T) {
	storeID := uuid.New()
	platform := integration.PlatformCodeZid
	ctx := context.Background()

	t.Run("unmatched record is not found, never conflicting", func(t *testing.T) {
		products := new(MockProductReader)
		links := new(MockSourceLinkReader)
		resolver := NewIdentityResolver(products, links)

		links.On("FindByPlatformProduct", ctx, storeID, platform, "z-9").Return(nil, integration.ErrLinkNotFound)
		products.On("FindBySKU", ctx, storeID, "NEW").Return(nil, shared.ErrNotFound)

		_, err := resolver.ResolveLinked(ctx, storeID, platform, "z-9", "NEW")
		assert.ErrorIs(t, err, integration.ErrProductNotMatched)
		products.AssertNotCalled(t, "FindByNameExcludingSKU", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("sku match carries existing link regardless of record id", func(t *testing.T) {
		products := new(MockProductReader)
		links := new(MockSourceLinkReader)
		resolver := NewIdentityResolver(products, links)

		product := testProduct(t, storeID, "ABC")
		existing := testLink(t, storeID, product.ID, "other-id")

		links.On("FindByPlatformProduct", ctx, storeID, platform, "z-1").Return(nil, integration.ErrLinkNotFound)
		products.On("FindBySKU", ctx, storeID, "ABC").Return(product, nil)
		links.On("FindByProductAndPlatform", ctx, storeID, product.ID, platform).Return(existing, nil)

		resolution, err := resolver.ResolveLinked(ctx, storeID, platform, "z-1", "ABC")
		require.NoError(t, err)
		assert.Equal(t, product.ID, resolution.Product.ID)
		assert.NotNil(t, resolution.Link)
	})
}
