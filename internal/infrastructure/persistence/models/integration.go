package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/viamoe/haady-business-sub003/internal/domain/integration"
)

// SourceLinkModel is the persistence model for the SourceLink entity.
// The unique index on (platform, platform_product_id, store_id) enforces the
// one-link-per-platform-record invariant at the storage layer as well.
type SourceLinkModel struct {
	ID                uuid.UUID                `gorm:"type:uuid;primary_key"`
	StoreID           uuid.UUID                `gorm:"type:uuid;not null;index:idx_source_links_store,priority:1;uniqueIndex:idx_source_links_platform_product,priority:1"`
	ProductID         uuid.UUID                `gorm:"type:uuid;not null;index:idx_source_links_product,priority:1"`
	Platform          integration.PlatformCode `gorm:"type:varchar(20);not null;uniqueIndex:idx_source_links_platform_product,priority:2"`
	PlatformProductID string                   `gorm:"type:varchar(100);not null;uniqueIndex:idx_source_links_platform_product,priority:3"`
	PlatformSKU       string                   `gorm:"type:varchar(100)"`
	RawPayload        string                   `gorm:"type:jsonb;column:raw_payload"`
	LastSyncedAt      time.Time                `gorm:"index"`
	CreatedAt         time.Time                `gorm:"not null"`
	UpdatedAt         time.Time                `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SourceLinkModel) TableName() string {
	return "product_source_links"
}

// ToDomain converts the persistence model to a domain SourceLink entity.
func (m *SourceLinkModel) ToDomain() *integration.SourceLink {
	link := &integration.SourceLink{
		ID:                m.ID,
		StoreID:           m.StoreID,
		ProductID:         m.ProductID,
		Platform:          m.Platform,
		PlatformProductID: m.PlatformProductID,
		PlatformSKU:       m.PlatformSKU,
		LastSyncedAt:      m.LastSyncedAt,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
	if m.RawPayload != "" {
		link.RawPayload = json.RawMessage(m.RawPayload)
	}
	return link
}

// FromDomain populates the persistence model from a domain SourceLink entity.
func (m *SourceLinkModel) FromDomain(l *integration.SourceLink) {
	m.ID = l.ID
	m.StoreID = l.StoreID
	m.ProductID = l.ProductID
	m.Platform = l.Platform
	m.PlatformProductID = l.PlatformProductID
	m.PlatformSKU = l.PlatformSKU
	if len(l.RawPayload) > 0 {
		m.RawPayload = string(l.RawPayload)
	}
	m.LastSyncedAt = l.LastSyncedAt
	m.CreatedAt = l.CreatedAt
	m.UpdatedAt = l.UpdatedAt
}

// SourceLinkModelFromDomain creates a new persistence model from a domain SourceLink entity.
func SourceLinkModelFromDomain(l *integration.SourceLink) *SourceLinkModel {
	m := &SourceLinkModel{}
	m.FromDomain(l)
	return m
}

// SyncRunModel is the persistence model for the SyncRun history record.
type SyncRunModel struct {
	ID              uuid.UUID                `gorm:"type:uuid;primary_key"`
	StoreID         uuid.UUID                `gorm:"type:uuid;not null;index:idx_sync_runs_store,priority:1"`
	MerchantID      uuid.UUID                `gorm:"type:uuid;not null"`
	Platform        integration.PlatformCode `gorm:"type:varchar(20);not null"`
	Trigger         integration.SyncTrigger  `gorm:"type:varchar(20);not null"`
	Success         bool                     `gorm:"not null"`
	ProductsSynced  int                      `gorm:"not null;default:0"`
	ProductsCreated int                      `gorm:"not null;default:0"`
	ProductsUpdated int                      `gorm:"not null;default:0"`
	ErrorsJSON      string                   `gorm:"type:jsonb;column:errors"`
	StartedAt       time.Time                `gorm:"not null;index"`
	FinishedAt      time.Time                `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SyncRunModel) TableName() string {
	return "catalog_sync_runs"
}

// ToDomain converts the persistence model to a domain SyncRun.
func (m *SyncRunModel) ToDomain() *integration.SyncRun {
	run := &integration.SyncRun{
		ID:              m.ID,
		StoreID:         m.StoreID,
		MerchantID:      m.MerchantID,
		Platform:        m.Platform,
		Trigger:         m.Trigger,
		Success:         m.Success,
		ProductsSynced:  m.ProductsSynced,
		ProductsCreated: m.ProductsCreated,
		ProductsUpdated: m.ProductsUpdated,
		Errors:          make([]string, 0),
		StartedAt:       m.StartedAt,
		FinishedAt:      m.FinishedAt,
	}
	if m.ErrorsJSON != "" {
		var errs []string
		if err := json.Unmarshal([]byte(m.ErrorsJSON), &errs); err == nil {
			run.Errors = errs
		}
	}
	return run
}

// SyncRunModelFromDomain creates a new persistence model from a domain SyncRun.
func SyncRunModelFromDomain(r *integration.SyncRun) *SyncRunModel {
	m := &SyncRunModel{
		ID:              r.ID,
		StoreID:         r.StoreID,
		MerchantID:      r.MerchantID,
		Platform:        r.Platform,
		Trigger:         r.Trigger,
		Success:         r.Success,
		ProductsSynced:  r.ProductsSynced,
		ProductsCreated: r.ProductsCreated,
		ProductsUpdated: r.ProductsUpdated,
		StartedAt:       r.StartedAt,
		FinishedAt:      r.FinishedAt,
	}
	if len(r.Errors) > 0 {
		if jsonBytes, err := json.Marshal(r.Errors); err == nil {
			m.ErrorsJSON = string(jsonBytes)
		}
	} else {
		m.ErrorsJSON = "[]"
	}
	return m
}
