package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RentalPeriod is a bookable duration expressed in whole days.
type RentalPeriod struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name      string    `gorm:"column:name;size:255;not null"`
	Days      int       `gorm:"column:days;not null;uniqueIndex:ux_rental_periods_days"`
	IsActive  bool      `gorm:"column:is_active;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (p *RentalPeriod) BeforeCreate(*gorm.DB) error {
	ensureID(&p.ID)
	return nil
}
