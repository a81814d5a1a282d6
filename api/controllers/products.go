package controllers

import (
	"net/http"
	"strings"

	"github.com/angelmondragon/rentalhub-backend/api/responses"
	"github.com/angelmondragon/rentalhub-backend/api/validators"
	"github.com/angelmondragon/rentalhub-backend/internal/products"
	"github.com/angelmondragon/rentalhub-backend/pkg/logger"
)

const maxDescriptionLen = 5000

type createProductRequest struct {
	Name              string   `json:"name" validate:"required,max=255"`
	Description       *string  `json:"description,omitempty" validate:"omitempty,max=5000"`
	SKU               string   `json:"sku" validate:"required,max=100"`
	IsActive          *bool    `json:"is_active,omitempty"`
	AttributeValueIDs []string `json:"attribute_value_ids,omitempty" validate:"omitempty,dive,uuid"`
}

type updateProductRequest struct {
	Name              *string   `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description       *string   `json:"description,omitempty" validate:"omitempty,max=5000"`
	SKU               *string   `json:"sku,omitempty" validate:"omitempty,min=1,max=100"`
	IsActive          *bool     `json:"is_active,omitempty"`
	AttributeValueIDs *[]string `json:"attribute_value_ids,omitempty" validate:"omitempty,dive,uuid"`
}

// ListProducts pages the active catalog, optionally narrowed to products
// priced in a region and/or rental period.
func ListProducts(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			writeUnavailable(w, r, logg, "product")
			return
		}
		regionID, err := validators.ParseQueryUUID(r, "region_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		periodID, err := validators.ParseQueryUUID(r, "rental_period_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		page, err := svc.ListProducts(r.Context(), products.ListProductsInput{
			RegionID:       regionID,
			RentalPeriodID: periodID,
			Pagination:     validators.ParsePagination(r),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WritePage(w, page)
	}
}

// GetProduct returns the product with pricing resolved for region_id, or
// for the first active region when none is given.
func GetProduct(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			writeUnavailable(w, r, logg, "product")
			return
		}
		id, err := validators.ParseURLUUID(r, "id", "product")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		regionID, err := validators.ParseQueryUUID(r, "region_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		detail, err := svc.GetProduct(r.Context(), id, regionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

func ListProductPricing(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			writeUnavailable(w, r, logg, "product")
			return
		}
		id, err := validators.ParseURLUUID(r, "id", "product")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		regionID, err := validators.ParseQueryUUID(r, "region_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		periodID, err := validators.ParseQueryUUID(r, "rental_period_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rows, err := svc.ListProductPricing(r.Context(), id, products.ListPricingInput{
			RegionID:       regionID,
			RentalPeriodID: periodID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

func CreateProduct(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			writeUnavailable(w, r, logg, "product")
			return
		}
		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := svc.CreateProduct(r.Context(), products.CreateProductInput{
			Name:              strings.TrimSpace(payload.Name),
			Description:       validators.SanitizeOptional(payload.Description, maxDescriptionLen),
			SKU:               strings.TrimSpace(payload.SKU),
			IsActive:          payload.IsActive,
			AttributeValueIDs: uuidList(payload.AttributeValueIDs),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCreated(w, "Product created successfully", product)
	}
}

// UpdateProduct replaces the attribute values only when attribute_value_ids
// is present; an empty list detaches them all.
func UpdateProduct(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			writeUnavailable(w, r, logg, "product")
			return
		}
		id, err := validators.ParseURLUUID(r, "id", "product")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input := products.UpdateProductInput{
			Name:        trimOptional(payload.Name),
			Description: validators.SanitizeOptional(payload.Description, maxDescriptionLen),
			SKU:         trimOptional(payload.SKU),
			IsActive:    payload.IsActive,
		}
		if payload.AttributeValueIDs != nil {
			ids := uuidList(*payload.AttributeValueIDs)
			input.AttributeValueIDs = &ids
		}
		product, err := svc.UpdateProduct(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, "Product updated successfully", product)
	}
}

func DeleteProduct(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			writeUnavailable(w, r, logg, "product")
			return
		}
		id, err := validators.ParseURLUUID(r, "id", "product")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteProduct(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, "Product deleted successfully", nil)
	}
}
