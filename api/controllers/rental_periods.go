package controllers

import (
	"net/http"
	"strings"

	"github.com/angelmondragon/rentalhub-backend/api/responses"
	"github.com/angelmondragon/rentalhub-backend/api/validators"
	"github.com/angelmondragon/rentalhub-backend/internal/rentalperiods"
	"github.com/angelmondragon/rentalhub-backend/pkg/logger"
)

type createRentalPeriodRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Days     int    `json:"days" validate:"required,min=1"`
	IsActive *bool  `json:"is_active,omitempty"`
}

type updateRentalPeriodRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Days     *int    `json:"days,omitempty" validate:"omitempty,min=1"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// ListRentalPeriods returns the periods ordered by length.
func ListRentalPeriods(svc rentalperiods.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			writeUnavailable(w, r, logg, "rental period")
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

func GetRentalPeriod(svc rentalperiods.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			writeUnavailable(w, r, logg, "rental period")
			return
		}
		id, err := validators.ParseURLUUID(r, "id", "rental period")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		period, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, period)
	}
}

func CreateRentalPeriod(svc rentalperiods.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			writeUnavailable(w, r, logg, "rental period")
			return
		}
		var payload createRentalPeriodRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		period, err := svc.Create(r.Context(), rentalperiods.CreateRentalPeriodInput{
			Name:     strings.TrimSpace(payload.Name),
			Days:     payload.Days,
			IsActive: payload.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCreated(w, "Rental period created successfully", period)
	}
}

func UpdateRentalPeriod(svc rentalperiods.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			writeUnavailable(w, r, logg, "rental period")
			return
		}
		id, err := validators.ParseURLUUID(r, "id", "rental period")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload updateRentalPeriodRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		period, err := svc.Update(r.Context(), id, rentalperiods.UpdateRentalPeriodInput{
			Name:     trimOptional(payload.Name),
			Days:     payload.Days,
			IsActive: payload.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, "Rental period updated successfully", period)
	}
}

func DeleteRentalPeriod(svc rentalperiods.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			writeUnavailable(w, r, logg, "rental period")
			return
		}
		id, err := validators.ParseURLUUID(r, "id", "rental period")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, "Rental period deleted successfully", nil)
	}
}
