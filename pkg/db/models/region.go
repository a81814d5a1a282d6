package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Region is a pricing zone such as North America or EU.
type Region struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name      string    `gorm:"column:name;size:255;not null"`
	Code      string    `gorm:"column:code;size:10;not null;uniqueIndex:ux_regions_code"`
	IsActive  bool      `gorm:"column:is_active;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (r *Region) BeforeCreate(*gorm.DB) error {
	ensureID(&r.ID)
	return nil
}
