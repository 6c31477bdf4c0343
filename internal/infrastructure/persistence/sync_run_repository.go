package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/viamoe/haady-business-sub003/internal/domain/integration"
	"github.com/viamoe/haady-business-sub003/internal/domain/shared"
	"github.com/viamoe/haady-business-sub003/internal/infrastructure/persistence/models"
)

// GormSyncRunRepository implements SyncRunRepository using GORM
type GormSyncRunRepository struct {
	db *gorm.DB
}

// NewGormSyncRunRepository creates a new GormSyncRunRepository
func NewGormSyncRunRepository(db *gorm.DB) *GormSyncRunRepository {
	return &GormSyncRunRepository{db: db}
}

// Save persists a completed run
func (r *GormSyncRunRepository) Save(ctx context.Context, run *integration.SyncRun) error {
	model := models.SyncRunModelFromDomain(run)
	return r.db.WithContext(ctx).Save(model).Error
}

// ListByStore returns the most recent runs for a store, newest first
func (r *GormSyncRunRepository) ListByStore(ctx context.Context, storeID uuid.UUID, limit int) ([]integration.SyncRun, error) {
	if limit <= 0 {
		limit = 20
	}
	var runModels []models.SyncRunModel
	if err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("started_at DESC").
		Limit(limit).
		Find(&runModels).Error; err != nil {
		return nil, err
	}

	runs := make([]integration.SyncRun, len(runModels))
	for i, model := range runModels {
		runs[i] = *model.ToDomain()
	}
	return runs, nil
}

// FindLatest returns the most recent run for a store and platform
func (r *GormSyncRunRepository) FindLatest(ctx context.Context, storeID uuid.UUID, platform integration.PlatformCode) (*integration.SyncRun, error) {
	var model models.SyncRunModel
	if err := r.db.WithContext(ctx).
		Where("store_id = ? AND platform = ?", storeID, platform).
		Order("started_at DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Ensure GormSyncRunRepository implements SyncRunRepository
var _ integration.SyncRunRepository = (*GormSyncRunRepository)(nil)
