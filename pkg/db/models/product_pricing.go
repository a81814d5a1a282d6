package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PricingTripleIndex is the unique index guarding one price per
// product, region and rental period.
const PricingTripleIndex = "ux_product_pricing_triple"

// ProductPricing is the price of a product in a region for a rental period.
type ProductPricing struct {
	ID             uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	ProductID      uuid.UUID       `gorm:"column:product_id;type:uuid;not null;uniqueIndex:ux_product_pricing_triple,priority:1"`
	RegionID       uuid.UUID       `gorm:"column:region_id;type:uuid;not null;uniqueIndex:ux_product_pricing_triple,priority:2"`
	RentalPeriodID uuid.UUID       `gorm:"column:rental_period_id;type:uuid;not null;uniqueIndex:ux_product_pricing_triple,priority:3"`
	Price          decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	IsActive       bool            `gorm:"column:is_active;not null"`
	Product        *Product        `gorm:"foreignKey:ProductID"`
	Region         *Region         `gorm:"foreignKey:RegionID;constraint:OnDelete:RESTRICT"`
	RentalPeriod   *RentalPeriod   `gorm:"foreignKey:RentalPeriodID;constraint:OnDelete:RESTRICT"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (ProductPricing) TableName() string {
	return "product_pricing"
}

func (p *ProductPricing) BeforeCreate(*gorm.DB) error {
	ensureID(&p.ID)
	return nil
}
