package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/viamoe/haady-business-sub003/internal/domain/integration"
	"github.com/viamoe/haady-business-sub003/internal/infrastructure/persistence/models"
)

// GormSourceLinkRepository implements SourceLinkRepository using GORM
type GormSourceLinkRepository struct {
	db *gorm.DB
}

// NewGormSourceLinkRepository creates a new GormSourceLinkRepository
func NewGormSourceLinkRepository(db *gorm.DB) *GormSourceLinkRepository {
	return &GormSourceLinkRepository{db: db}
}

// FindByPlatformProduct finds the link for a platform record
func (r *GormSourceLinkRepository) FindByPlatformProduct(ctx context.Context, storeID uuid.UUID, platform integration.PlatformCode, platformProductID string) (*integration.SourceLink, error) {
	var model models.SourceLinkModel
	if err := r.db.WithContext(ctx).
		Where("store_id = ? AND platform = ? AND platform_product_id = ?", storeID, platform, platformProductID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, integration.ErrLinkNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByProductAndPlatform finds a product's link for one platform
func (r *GormSourceLinkRepository) FindByProductAndPlatform(ctx context.Context, storeID uuid.UUID, productID uuid.UUID, platform integration.PlatformCode) (*integration.SourceLink, error) {
	var model models.SourceLinkModel
	if err := r.db.WithContext(ctx).
		Where("store_id = ? AND product_id = ? AND platform = ?", storeID, productID, platform).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, integration.ErrLinkNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByProduct returns all links for a product
func (r *GormSourceLinkRepository) FindByProduct(ctx context.Context, storeID uuid.UUID, productID uuid.UUID) ([]integration.SourceLink, error) {
	var linkModels []models.SourceLinkModel
	if err := r.db.WithContext(ctx).
		Where("store_id = ? AND product_id = ?", storeID, productID).
		Order("platform ASC").
		Find(&linkModels).Error; err != nil {
		return nil, err
	}

	links := make([]integration.SourceLink, len(linkModels))
	for i, model := range linkModels {
		links[i] = *model.ToDomain()
	}
	return links, nil
}

// Save creates or updates a link
func (r *GormSourceLinkRepository) Save(ctx context.Context, link *integration.SourceLink) error {
	model := models.SourceLinkModelFromDomain(link)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a link
func (r *GormSourceLinkRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.SourceLinkModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return integration.ErrLinkNotFound
	}
	return nil
}

// Ensure GormSourceLinkRepository implements SourceLinkRepository
var _ integration.SourceLinkRepository = (*GormSourceLinkRepository)(nil)
