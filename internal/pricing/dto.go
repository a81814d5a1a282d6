package pricing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/rentalhub-backend/internal/regions"
	"github.com/angelmondragon/rentalhub-backend/internal/rentalperiods"
	"github.com/angelmondragon/rentalhub-backend/pkg/db/models"
)

// PricingDTO is the API shape of a pricing row. Relations are set when loaded.
type PricingDTO struct {
	ID             uuid.UUID                      `json:"id"`
	ProductID      uuid.UUID                      `json:"product_id"`
	RegionID       uuid.UUID                      `json:"region_id"`
	RentalPeriodID uuid.UUID                      `json:"rental_period_id"`
	Price          string                         `json:"price"`
	IsActive       bool                           `json:"is_active"`
	Product        *ProductSummary                `json:"product,omitempty"`
	Region         *regions.RegionDTO             `json:"region,omitempty"`
	RentalPeriod   *rentalperiods.RentalPeriodDTO `json:"rental_period,omitempty"`
	CreatedAt      time.Time                      `json:"created_at"`
	UpdatedAt      time.Time                      `json:"updated_at"`
}

// ProductSummary is the compact product embedded in pricing responses.
type ProductSummary struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	SKU      string    `json:"sku"`
	IsActive bool      `json:"is_active"`
}

// PricingSummary is the row shape of the product pricing listing.
type PricingSummary struct {
	ID           uuid.UUID                          `json:"id"`
	Region       *regions.RegionSummary             `json:"region"`
	RentalPeriod *rentalperiods.RentalPeriodSummary `json:"rental_period"`
	Price        string                             `json:"price"`
}

// FormatPrice renders a monetary amount with two decimals.
func FormatPrice(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func NewPricingDTO(m *models.ProductPricing) *PricingDTO {
	if m == nil {
		return nil
	}
	dto := &PricingDTO{
		ID:             m.ID,
		ProductID:      m.ProductID,
		RegionID:       m.RegionID,
		RentalPeriodID: m.RentalPeriodID,
		Price:          FormatPrice(m.Price),
		IsActive:       m.IsActive,
		Region:         regions.NewRegionDTO(m.Region),
		RentalPeriod:   rentalperiods.NewRentalPeriodDTO(m.RentalPeriod),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	if m.Product != nil {
		dto.Product = &ProductSummary{
			ID:       m.Product.ID,
			Name:     m.Product.Name,
			SKU:      m.Product.SKU,
			IsActive: m.Product.IsActive,
		}
	}
	return dto
}

func NewPricingSummary(m *models.ProductPricing) PricingSummary {
	return PricingSummary{
		ID:           m.ID,
		Region:       regions.NewRegionSummary(m.Region),
		RentalPeriod: rentalperiods.NewRentalPeriodSummary(m.RentalPeriod),
		Price:        FormatPrice(m.Price),
	}
}
