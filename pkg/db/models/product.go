package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductAttributeValuesTable is the join table between products and
// attribute values.
const ProductAttributeValuesTable = "product_attribute_values"

// Product is a rentable catalog item.
type Product struct {
	ID              uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	Name            string           `gorm:"column:name;size:255;not null"`
	Description     *string          `gorm:"column:description;type:text"`
	SKU             string           `gorm:"column:sku;size:255;not null;uniqueIndex:ux_products_sku"`
	IsActive        bool             `gorm:"column:is_active;not null"`
	AttributeValues []AttributeValue `gorm:"many2many:product_attribute_values;joinForeignKey:ProductID;joinReferences:AttributeValueID"`
	Pricing         []ProductPricing `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

func (p *Product) BeforeCreate(*gorm.DB) error {
	ensureID(&p.ID)
	return nil
}

// ProductAttributeValue is a row of the product/attribute value join table.
type ProductAttributeValue struct {
	ProductID        uuid.UUID `gorm:"column:product_id;type:uuid;primaryKey"`
	AttributeValueID uuid.UUID `gorm:"column:attribute_value_id;type:uuid;primaryKey"`
}

func (ProductAttributeValue) TableName() string {
	return ProductAttributeValuesTable
}
