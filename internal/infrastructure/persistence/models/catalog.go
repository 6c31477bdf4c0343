package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/viamoe/haady-business-sub003/internal/domain/catalog"
)

// ProductModel is the persistence model for the catalog Product entity.
type ProductModel struct {
	ID            uuid.UUID        `gorm:"type:uuid;primary_key"`
	StoreID       uuid.UUID        `gorm:"type:uuid;not null;index:idx_products_store,priority:1;index:idx_products_store_sku,priority:1"`
	NameEn        string           `gorm:"type:varchar(255)"`
	NameAr        string           `gorm:"type:varchar(255)"`
	DescriptionEn string           `gorm:"type:text"`
	DescriptionAr string           `gorm:"type:text"`
	SKU           string           `gorm:"type:varchar(100);index:idx_products_store_sku,priority:2"`
	Price         decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	ComparePrice  *decimal.Decimal `gorm:"type:decimal(18,4)"`
	ImageURL      string           `gorm:"type:text"`
	IsAvailable   bool             `gorm:"not null;default:false"`
	IsActive      bool             `gorm:"not null;default:true"`
	CreatedAt     time.Time        `gorm:"not null"`
	UpdatedAt     time.Time        `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		ID:            m.ID,
		StoreID:       m.StoreID,
		NameEn:        m.NameEn,
		NameAr:        m.NameAr,
		DescriptionEn: m.DescriptionEn,
		DescriptionAr: m.DescriptionAr,
		SKU:           m.SKU,
		Price:         m.Price,
		ComparePrice:  m.ComparePrice,
		ImageURL:      m.ImageURL,
		IsAvailable:   m.IsAvailable,
		IsActive:      m.IsActive,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain Product entity.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.ID = p.ID
	m.StoreID = p.StoreID
	m.NameEn = p.NameEn
	m.NameAr = p.NameAr
	m.DescriptionEn = p.DescriptionEn
	m.DescriptionAr = p.DescriptionAr
	m.SKU = p.SKU
	m.Price = p.Price
	m.ComparePrice = p.ComparePrice
	m.ImageURL = p.ImageURL
	m.IsAvailable = p.IsAvailable
	m.IsActive = p.IsActive
	m.CreatedAt = p.CreatedAt
	m.UpdatedAt = p.UpdatedAt
}

// ProductModelFromDomain creates a new persistence model from a domain Product entity.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}
