package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/rentalhub-backend/pkg/enums"
	"github.com/angelmondragon/rentalhub-backend/pkg/types"
)

// RentalTransaction is a customer booking. Price is copied from the pricing
// row at booking time and never recomputed.
type RentalTransaction struct {
	ID              uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	ProductID       uuid.UUID          `gorm:"column:product_id;type:uuid;not null;index"`
	RegionID        uuid.UUID          `gorm:"column:region_id;type:uuid;not null;index"`
	RentalPeriodID  uuid.UUID          `gorm:"column:rental_period_id;type:uuid;not null"`
	CustomerName    string             `gorm:"column:customer_name;size:255;not null"`
	CustomerEmail   string             `gorm:"column:customer_email;size:255;not null"`
	CustomerAddress string             `gorm:"column:customer_address;type:text;not null"`
	StartDate       types.Date         `gorm:"column:start_date;type:date;not null"`
	EndDate         types.Date         `gorm:"column:end_date;type:date;not null"`
	Price           decimal.Decimal    `gorm:"column:price;type:numeric(10,2);not null"`
	Status          enums.RentalStatus `gorm:"column:status;size:20;not null;index"`
	Notes           *string            `gorm:"column:notes;type:text"`
	Product         *Product           `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT"`
	Region          *Region            `gorm:"foreignKey:RegionID;constraint:OnDelete:RESTRICT"`
	RentalPeriod    *RentalPeriod      `gorm:"foreignKey:RentalPeriodID;constraint:OnDelete:RESTRICT"`
	CreatedAt       time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

func (r *RentalTransaction) BeforeCreate(*gorm.DB) error {
	ensureID(&r.ID)
	return nil
}
