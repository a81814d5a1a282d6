package products

import (
	"time"

	"github.com/angelmondragon/rentalhub-backend/internal/attributes"
	"github.com/angelmondragon/rentalhub-backend/internal/pricing"
	"github.com/angelmondragon/rentalhub-backend/internal/regions"
	"github.com/angelmondragon/rentalhub-backend/pkg/db/models"
	"github.com/google/uuid"
)

// ProductDTO represents the catalog product payload returned to clients.
type ProductDTO struct {
	ID              uuid.UUID                      `json:"id"`
	Name            string                         `json:"name"`
	Description     *string                        `json:"description"`
	SKU             string                         `json:"sku"`
	IsActive        bool                           `json:"is_active"`
	AttributeValues []attributes.AttributeValueDTO `json:"attribute_values"`
	Pricing         []pricing.PricingDTO           `json:"pricing,omitempty"`
	CreatedAt       time.Time                      `json:"created_at"`
	UpdatedAt       time.Time                      `json:"updated_at"`
}

// ProductDetailDTO pairs a product with the region its pricing was resolved for.
type ProductDetailDTO struct {
	Product *ProductDTO        `json:"product"`
	Region  *regions.RegionDTO `json:"region"`
}

// NewProductDTO builds a DTO from the persisted model and whatever
// associations were loaded.
func NewProductDTO(product *models.Product) *ProductDTO {
	dto := &ProductDTO{
		ID:              product.ID,
		Name:            product.Name,
		Description:     product.Description,
		SKU:             product.SKU,
		IsActive:        product.IsActive,
		AttributeValues: make([]attributes.AttributeValueDTO, 0, len(product.AttributeValues)),
		CreatedAt:       product.CreatedAt,
		UpdatedAt:       product.UpdatedAt,
	}

	for i := range product.AttributeValues {
		dto.AttributeValues = append(dto.AttributeValues, *attributes.NewAttributeValueDTO(&product.AttributeValues[i]))
	}

	if len(product.Pricing) > 0 {
		dto.Pricing = make([]pricing.PricingDTO, len(product.Pricing))
		for i := range product.Pricing {
			dto.Pricing[i] = *pricing.NewPricingDTO(&product.Pricing[i])
		}
	}

	return dto
}
