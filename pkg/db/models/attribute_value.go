package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AttributeValue is one allowed value of an Attribute.
type AttributeValue struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	AttributeID uuid.UUID  `gorm:"column:attribute_id;type:uuid;not null;uniqueIndex:ux_attribute_values_attribute_value,priority:1"`
	Value       string     `gorm:"column:value;size:255;not null;uniqueIndex:ux_attribute_values_attribute_value,priority:2"`
	Attribute   *Attribute `gorm:"foreignKey:AttributeID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (v *AttributeValue) BeforeCreate(*gorm.DB) error {
	ensureID(&v.ID)
	return nil
}
