package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/rentalhub-backend/pkg/enums"
)

// Attribute is a product characteristic such as color or size.
type Attribute struct {
	ID           uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	Name         string              `gorm:"column:name;size:255;not null;uniqueIndex:ux_attributes_name"`
	Type         enums.AttributeType `gorm:"column:type;size:20;not null"`
	IsFilterable bool                `gorm:"column:is_filterable;not null"`
	IsRequired   bool                `gorm:"column:is_required;not null"`
	Values       []AttributeValue    `gorm:"foreignKey:AttributeID"`
	CreatedAt    time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

func (a *Attribute) BeforeCreate(*gorm.DB) error {
	ensureID(&a.ID)
	return nil
}
