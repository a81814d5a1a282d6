package regions

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/rentalhub-backend/pkg/db/models"
)

// RegionDTO is the API shape of a region.
type RegionDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewRegionDTO(m *models.Region) *RegionDTO {
	if m == nil {
		return nil
	}
	return &RegionDTO{
		ID:        m.ID,
		Name:      m.Name,
		Code:      m.Code,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// RegionSummary is the compact region embedded in pricing rows.
type RegionSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Code string    `json:"code"`
}

func NewRegionSummary(m *models.Region) *RegionSummary {
	if m == nil {
		return nil
	}
	return &RegionSummary{ID: m.ID, Name: m.Name, Code: m.Code}
}
