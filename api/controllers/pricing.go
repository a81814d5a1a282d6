package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/angelmondragon/rentalhub-backend/api/responses"
	"github.com/angelmondragon/rentalhub-backend/api/validators"
	"github.com/angelmondragon/rentalhub-backend/internal/pricing"
	"github.com/angelmondragon/rentalhub-backend/pkg/logger"
)

type createPricingRequest struct {
	ProductID      string      `json:"product_id" validate:"required,uuid"`
	RegionID       string      `json:"region_id" validate:"required,uuid"`
	RentalPeriodID string      `json:"rental_period_id" validate:"required,uuid"`
	Price          *priceField `json:"price" validate:"required"`
	IsActive       *bool       `json:"is_active,omitempty"`
}

type updatePricingRequest struct {
	Price    *priceField `json:"price,omitempty"`
	IsActive *bool       `json:"is_active,omitempty"`
}

type productPricingRequest struct {
	RegionID       string      `json:"region_id" validate:"required,uuid"`
	RentalPeriodID string      `json:"rental_period_id" validate:"required,uuid"`
	Price          *priceField `json:"price" validate:"required"`
	IsActive       *bool       `json:"is_active,omitempty"`
}

type updateProductPricingRequest struct {
	RegionID       *string     `json:"region_id,omitempty" validate:"omitempty,uuid"`
	RentalPeriodID *string     `json:"rental_period_id,omitempty" validate:"omitempty,uuid"`
	Price          *priceField `json:"price,omitempty"`
	IsActive       *bool       `json:"is_active,omitempty"`
}

// CreatePricing adds the price of one product/region/period triple.
func CreatePricing(svc pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			writeUnavailable(w, r, logg, "pricing")
			return
		}
		var payload createPricingRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		row, err := svc.Create(r.Context(), pricing.CreatePricingInput{
			ProductID:      mustUUID(payload.ProductID),
			RegionID:       mustUUID(payload.RegionID),
			RentalPeriodID: mustUUID(payload.RentalPeriodID),
			Price:          payload.Price.Decimal,
			IsActive:       payload.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCreated(w, "Product pricing created successfully", row)
	}
}

func UpdatePricing(svc pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			writeUnavailable(w, r, logg, "pricing")
			return
		}
		id, err := validators.ParseURLUUID(r, "id", "pricing")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload updatePricingRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		row, err := svc.Update(r.Context(), id, pricing.UpdatePricingInput{
			Price:    payload.Price.value(),
			IsActive: payload.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, "Product pricing updated successfully", row)
	}
}

func DeletePricing(svc pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			writeUnavailable(w, r, logg, "pricing")
			return
		}
		id, err := validators.ParseURLUUID(r, "id", "pricing")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, "Product pricing deleted successfully", nil)
	}
}

// CreateProductPricing creates a row for the product named in the path.
func CreateProductPricing(svc pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			writeUnavailable(w, r, logg, "pricing")
			return
		}
		productID, err := validators.ParseURLUUID(r, "id", "product")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload productPricingRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		row, err := svc.CreateForProduct(r.Context(), productID, pricing.ProductPricingInput{
			RegionID:       mustUUID(payload.RegionID),
			RentalPeriodID: mustUUID(payload.RentalPeriodID),
			Price:          payload.Price.Decimal,
			IsActive:       payload.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCreated(w, "Product pricing created successfully", row)
	}
}

// GetProductPricing answers 404 when the pricing row belongs to another product.
func GetProductPricing(svc pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			writeUnavailable(w, r, logg, "pricing")
			return
		}
		productID, pricingID, err := productPricingIDs(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		row, err := svc.GetForProduct(r.Context(), productID, pricingID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, row)
	}
}

func UpdateProductPricing(svc pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			writeUnavailable(w, r, logg, "pricing")
			return
		}
		productID, pricingID, err := productPricingIDs(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload updateProductPricingRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		row, err := svc.UpdateForProduct(r.Context(), productID, pricingID, pricing.UpdateProductPricingInput{
			RegionID:       optionalUUID(payload.RegionID),
			RentalPeriodID: optionalUUID(payload.RentalPeriodID),
			Price:          payload.Price.value(),
			IsActive:       payload.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, "Product pricing updated successfully", row)
	}
}

func DeleteProductPricing(svc pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			writeUnavailable(w, r, logg, "pricing")
			return
		}
		productID, pricingID, err := productPricingIDs(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteForProduct(r.Context(), productID, pricingID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, "Product pricing deleted successfully", nil)
	}
}

func productPricingIDs(r *http.Request) (productID, pricingID uuid.UUID, err error) {
	productID, err = validators.ParseURLUUID(r, "id", "product")
	if err != nil {
		return productID, pricingID, err
	}
	pricingID, err = validators.ParseURLUUID(r, "pricingId", "pricing")
	return productID, pricingID, err
}
