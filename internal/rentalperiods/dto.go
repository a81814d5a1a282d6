package rentalperiods

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/rentalhub-backend/pkg/db/models"
)

type RentalPeriodDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Days      int       `json:"days"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewRentalPeriodDTO(m *models.RentalPeriod) *RentalPeriodDTO {
	if m == nil {
		return nil
	}
	return &RentalPeriodDTO{
		ID:        m.ID,
		Name:      m.Name,
		Days:      m.Days,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// RentalPeriodSummary is the compact period embedded in pricing rows.
type RentalPeriodSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Days int       `json:"days"`
}

func NewRentalPeriodSummary(m *models.RentalPeriod) *RentalPeriodSummary {
	if m == nil {
		return nil
	}
	return &RentalPeriodSummary{ID: m.ID, Name: m.Name, Days: m.Days}
}
