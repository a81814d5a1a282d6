package rentals

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/rentalhub-backend/internal/pricing"
	"github.com/angelmondragon/rentalhub-backend/internal/regions"
	"github.com/angelmondragon/rentalhub-backend/internal/rentalperiods"
	"github.com/angelmondragon/rentalhub-backend/pkg/db/models"
	"github.com/angelmondragon/rentalhub-backend/pkg/enums"
	"github.com/angelmondragon/rentalhub-backend/pkg/types"
)

// RentalDTO is the API shape of a rental transaction joined with its
// product, region and rental period.
type RentalDTO struct {
	ID              uuid.UUID                      `json:"id"`
	ProductID       uuid.UUID                      `json:"product_id"`
	RegionID        uuid.UUID                      `json:"region_id"`
	RentalPeriodID  uuid.UUID                      `json:"rental_period_id"`
	CustomerName    string                         `json:"customer_name"`
	CustomerEmail   string                         `json:"customer_email"`
	CustomerAddress string                         `json:"customer_address"`
	StartDate       types.Date                     `json:"start_date"`
	EndDate         types.Date                     `json:"end_date"`
	Price           string                         `json:"price"`
	Status          enums.RentalStatus             `json:"status"`
	Notes           *string                        `json:"notes"`
	Product         *pricing.ProductSummary        `json:"product,omitempty"`
	Region          *regions.RegionDTO             `json:"region,omitempty"`
	RentalPeriod    *rentalperiods.RentalPeriodDTO `json:"rental_period,omitempty"`
	CreatedAt       time.Time                      `json:"created_at"`
	UpdatedAt       time.Time                      `json:"updated_at"`
}

func NewRentalDTO(m *models.RentalTransaction) *RentalDTO {
	if m == nil {
		return nil
	}
	dto := &RentalDTO{
		ID:              m.ID,
		ProductID:       m.ProductID,
		RegionID:        m.RegionID,
		RentalPeriodID:  m.RentalPeriodID,
		CustomerName:    m.CustomerName,
		CustomerEmail:   m.CustomerEmail,
		CustomerAddress: m.CustomerAddress,
		StartDate:       m.StartDate,
		EndDate:         m.EndDate,
		Price:           pricing.FormatPrice(m.Price),
		Status:          m.Status,
		Notes:           m.Notes,
		Region:          regions.NewRegionDTO(m.Region),
		RentalPeriod:    rentalperiods.NewRentalPeriodDTO(m.RentalPeriod),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
	if m.Product != nil {
		dto.Product = &pricing.ProductSummary{
			ID:       m.Product.ID,
			Name:     m.Product.Name,
			SKU:      m.Product.SKU,
			IsActive: m.Product.IsActive,
		}
	}
	return dto
}
