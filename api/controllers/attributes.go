package controllers

import (
	"net/http"
	"strings"

	"github.com/angelmondragon/rentalhub-backend/api/responses"
	"github.com/angelmondragon/rentalhub-backend/api/validators"
	"github.com/angelmondragon/rentalhub-backend/internal/attributes"
	"github.com/angelmondragon/rentalhub-backend/pkg/logger"
)

type createAttributeRequest struct {
	Name         string `json:"name" validate:"required,max=255"`
	Type         string `json:"type" validate:"required,oneof=text number boolean select"`
	IsFilterable *bool  `json:"is_filterable,omitempty"`
	IsRequired   *bool  `json:"is_required,omitempty"`
}

type updateAttributeRequest struct {
	Name         *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Type         *string `json:"type,omitempty" validate:"omitempty,oneof=text number boolean select"`
	IsFilterable *bool   `json:"is_filterable,omitempty"`
	IsRequired   *bool   `json:"is_required,omitempty"`
}

type createAttributeValueRequest struct {
	AttributeID string `json:"attribute_id" validate:"required,uuid"`
	Value       string `json:"value" validate:"required,max=255"`
}

type updateAttributeValueRequest struct {
	Value *string `json:"value,omitempty" validate:"omitempty,min=1,max=255"`
}

// ListAttributes returns every attribute with its values.
func ListAttributes(svc attributes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			writeUnavailable(w, r, logg, "attribute")
			return
		}
		list, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func CreateAttribute(svc attributes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			writeUnavailable(w, r, logg, "attribute")
			return
		}
		var payload createAttributeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		attr, err := svc.Create(r.Context(), attributes.CreateAttributeInput{
			Name:         strings.TrimSpace(payload.Name),
			Type:         payload.Type,
			IsFilterable: payload.IsFilterable,
			IsRequired:   payload.IsRequired,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCreated(w, "Attribute created successfully", attr)
	}
}

func UpdateAttribute(svc attributes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			writeUnavailable(w, r, logg, "attribute")
			return
		}
		id, err := validators.ParseURLUUID(r, "id", "attribute")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload updateAttributeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		attr, err := svc.Update(r.Context(), id, attributes.UpdateAttributeInput{
			Name:         trimOptional(payload.Name),
			Type:         payload.Type,
			IsFilterable: payload.IsFilterable,
			IsRequired:   payload.IsRequired,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, "Attribute updated successfully", attr)
	}
}

// DeleteAttribute removes the attribute and its values in one transaction,
// unless any value is still attached to a product.
func DeleteAttribute(svc attributes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			writeUnavailable(w, r, logg, "attribute")
			return
		}
		id, err := validators.ParseURLUUID(r, "id", "attribute")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, "Attribute and all associated values deleted successfully", nil)
	}
}

func ListAttributeValues(svc attributes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			writeUnavailable(w, r, logg, "attribute")
			return
		}
		attributeID, err := validators.ParseQueryUUID(r, "attribute_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		list, err := svc.ListValues(r.Context(), attributeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func CreateAttributeValue(svc attributes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			writeUnavailable(w, r, logg, "attribute")
			return
		}
		var payload createAttributeValueRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		value, err := svc.CreateValue(r.Context(), attributes.CreateValueInput{
			AttributeID: mustUUID(payload.AttributeID),
			Value:       strings.TrimSpace(payload.Value),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCreated(w, "Attribute value created successfully", value)
	}
}

func UpdateAttributeValue(svc attributes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			writeUnavailable(w, r, logg, "attribute")
			return
		}
		id, err := validators.ParseURLUUID(r, "id", "attribute value")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload updateAttributeValueRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		value, err := svc.UpdateValue(r.Context(), id, attributes.UpdateValueInput{Value: trimOptional(payload.Value)})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, "Attribute value updated successfully", value)
	}
}

func DeleteAttributeValue(svc attributes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			writeUnavailable(w, r, logg, "attribute")
			return
		}
		id, err := validators.ParseURLUUID(r, "id", "attribute value")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteValue(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, "Attribute value deleted successfully", nil)
	}
}
