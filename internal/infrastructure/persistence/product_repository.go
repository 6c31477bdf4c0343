package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/viamoe/haady-business-sub003/internal/domain/catalog"
	"github.com/viamoe/haady-business-sub003/internal/domain/shared"
	"github.com/viamoe/haady-business-sub003/internal/infrastructure/persistence/models"
)

// GormProductRepository implements catalog.ProductRepository using GORM.
// Reads are store-scoped; writes go through the privileged connection the
// repository was constructed with.
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// ---------------------------------------------------------------------------
// ProductReader implementation
// ---------------------------------------------------------------------------

// FindByID finds a product by its ID within a store
func (r *GormProductRepository) FindByID(ctx context.Context, storeID uuid.UUID, id uuid.UUID) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ? AND store_id = ?", id, storeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBySKU finds a product by exact SKU within a store
func (r *GormProductRepository) FindBySKU(ctx context.Context, storeID uuid.UUID, sku string) (*catalog.Product, error) {
	if sku == "" {
		return nil, shared.ErrNotFound
	}
	var model models.ProductModel
	if err := r.db.WithContext(ctx).
		Where("store_id = ? AND sku = ?", storeID, sku).
		Order("created_at ASC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNameExcludingSKU matches on case-insensitive name (either language)
// against rows whose SKU is empty or differs from excludeSKU; rows carrying
// excludeSKU itself are the exact SKU lookup's territory. Best-effort
// heuristic only; callers must treat a miss as inconclusive.
func (r *GormProductRepository) FindByNameExcludingSKU(ctx context.Context, storeID uuid.UUID, name, excludeSKU string) (*catalog.Product, error) {
	if name == "" {
		return nil, shared.ErrNotFound
	}
	var model models.ProductModel
	lowered := strings.ToLower(name)
	if err := r.db.WithContext(ctx).
		Where("store_id = ? AND (sku = '' OR sku <> ?) AND (LOWER(name_en) = ? OR LOWER(name_ar) = ?)",
			storeID, excludeSKU, lowered, lowered).
		Order("created_at ASC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListByStore lists products for a store
func (r *GormProductRepository) ListByStore(ctx context.Context, storeID uuid.UUID, offset, limit int) ([]catalog.Product, error) {
	var productModels []models.ProductModel
	query := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("created_at DESC")
	if offset > 0 {
		query = query.Offset(offset)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&productModels).Error; err != nil {
		return nil, err
	}

	products := make([]catalog.Product, len(productModels))
	for i, model := range productModels {
		products[i] = *model.ToDomain()
	}
	return products, nil
}

// CountByStore counts products for a store
func (r *GormProductRepository) CountByStore(ctx context.Context, storeID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("store_id = ?", storeID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ---------------------------------------------------------------------------
// ProductWriter implementation
// ---------------------------------------------------------------------------

// Insert creates a new product
func (r *GormProductRepository) Insert(ctx context.Context, product *catalog.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}
	model := models.ProductModelFromDomain(product)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update persists changes to an existing product
func (r *GormProductRepository) Update(ctx context.Context, product *catalog.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}
	model := models.ProductModelFromDomain(product)
	result := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("id = ? AND store_id = ?", product.ID, product.StoreID).
		Select("*").Omit("id", "store_id", "created_at").
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormProductRepository implements ProductRepository
var _ catalog.ProductRepository = (*GormProductRepository)(nil)
