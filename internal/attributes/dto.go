package attributes

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/rentalhub-backend/pkg/db/models"
	"github.com/angelmondragon/rentalhub-backend/pkg/enums"
)

// AttributeDTO is the API shape of an attribute. Values is only set on
// listings that load them.
type AttributeDTO struct {
	ID           uuid.UUID           `json:"id"`
	Name         string              `json:"name"`
	Type         enums.AttributeType `json:"type"`
	IsFilterable bool                `json:"is_filterable"`
	IsRequired   bool                `json:"is_required"`
	Values       []AttributeValueDTO `json:"values,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// AttributeValueDTO is the API shape of an attribute value, with its
// attribute when loaded.
type AttributeValueDTO struct {
	ID          uuid.UUID     `json:"id"`
	AttributeID uuid.UUID     `json:"attribute_id"`
	Value       string        `json:"value"`
	Attribute   *AttributeDTO `json:"attribute,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func NewAttributeDTO(m *models.Attribute) *AttributeDTO {
	if m == nil {
		return nil
	}
	dto := &AttributeDTO{
		ID:           m.ID,
		Name:         m.Name,
		Type:         m.Type,
		IsFilterable: m.IsFilterable,
		IsRequired:   m.IsRequired,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.Values != nil {
		dto.Values = make([]AttributeValueDTO, 0, len(m.Values))
		for i := range m.Values {
			dto.Values = append(dto.Values, *NewAttributeValueDTO(&m.Values[i]))
		}
	}
	return dto
}

func NewAttributeValueDTO(m *models.AttributeValue) *AttributeValueDTO {
	if m == nil {
		return nil
	}
	return &AttributeValueDTO{
		ID:          m.ID,
		AttributeID: m.AttributeID,
		Value:       m.Value,
		Attribute:   NewAttributeDTO(m.Attribute),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
