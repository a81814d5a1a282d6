package controllers

import (
	"net/http"
	"strings"

	"github.com/angelmondragon/rentalhub-backend/api/responses"
	"github.com/angelmondragon/rentalhub-backend/api/validators"
	"github.com/angelmondragon/rentalhub-backend/internal/rentals"
	"github.com/angelmondragon/rentalhub-backend/pkg/enums"
	"github.com/angelmondragon/rentalhub-backend/pkg/logger"
)

type createRentalRequest struct {
	ProductID       string     `json:"product_id" validate:"required,uuid"`
	RegionID        string     `json:"region_id" validate:"required,uuid"`
	RentalPeriodID  string     `json:"rental_period_id" validate:"required,uuid"`
	CustomerName    string     `json:"customer_name" validate:"required,max=255"`
	CustomerEmail   string     `json:"customer_email" validate:"required,email,max=255"`
	CustomerAddress string     `json:"customer_address" validate:"required"`
	StartDate       *dateField `json:"start_date" validate:"required"`
	Notes           *string    `json:"notes,omitempty"`
}

type updateRentalRequest struct {
	CustomerName    *string        `json:"customer_name,omitempty" validate:"omitempty,min=1,max=255"`
	CustomerEmail   *string        `json:"customer_email,omitempty" validate:"omitempty,email,max=255"`
	CustomerAddress *string        `json:"customer_address,omitempty" validate:"omitempty,min=1"`
	Notes           nullableString `json:"notes"`
	Status          *string        `json:"status,omitempty" validate:"omitempty,oneof=confirmed cancelled completed"`
	StartDate       *dateField     `json:"start_date,omitempty"`
}

// ListRentals pages bookings newest first, filtered by product_id,
// region_id and status.
func ListRentals(svc rentals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			writeUnavailable(w, r, logg, "rental")
			return
		}
		productID, err := validators.ParseQueryUUID(r, "product_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		regionID, err := validators.ParseQueryUUID(r, "region_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filter := rentals.ListFilter{ProductID: productID, RegionID: regionID}
		if raw := validators.ParseQueryString(r, "status"); raw != nil {
			status := enums.RentalStatus(strings.ToLower(*raw))
			filter.Status = &status
		}
		page, err := svc.ListBookings(r.Context(), rentals.ListBookingsInput{
			Filter:     filter,
			Pagination: validators.ParsePagination(r),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WritePage(w, page)
	}
}

func GetRental(svc rentals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			writeUnavailable(w, r, logg, "rental")
			return
		}
		id, err := validators.ParseURLUUID(r, "id", "rental")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rental, err := svc.GetBooking(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rental)
	}
}

// CreateRental books a product. The price is frozen from the active pricing
// row and end_date is start_date plus the period length.
func CreateRental(svc rentals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			writeUnavailable(w, r, logg, "rental")
			return
		}
		var payload createRentalRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rental, err := svc.CreateBooking(r.Context(), rentals.CreateBookingInput{
			ProductID:       mustUUID(payload.ProductID),
			RegionID:        mustUUID(payload.RegionID),
			RentalPeriodID:  mustUUID(payload.RentalPeriodID),
			CustomerName:    strings.TrimSpace(payload.CustomerName),
			CustomerEmail:   strings.TrimSpace(payload.CustomerEmail),
			CustomerAddress: strings.TrimSpace(payload.CustomerAddress),
			StartDate:       payload.StartDate.Date,
			Notes:           payload.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCreated(w, "Product rental created successfully", rental)
	}
}

func UpdateRental(svc rentals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			writeUnavailable(w, r, logg, "rental")
			return
		}
		id, err := validators.ParseURLUUID(r, "id", "rental")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload updateRentalRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input := rentals.UpdateBookingInput{
			CustomerName:    trimOptional(payload.CustomerName),
			CustomerEmail:   trimOptional(payload.CustomerEmail),
			CustomerAddress: trimOptional(payload.CustomerAddress),
			Notes:           payload.Notes.Value,
			NotesSet:        payload.Notes.Set,
			StartDate:       payload.StartDate.value(),
		}
		if payload.Status != nil {
			status := enums.RentalStatus(*payload.Status)
			input.Status = &status
		}
		rental, err := svc.UpdateBooking(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, "Rental updated successfully", rental)
	}
}

// DeleteRental removes a confirmed booking that has not started yet and
// cancels any other, keeping the row.
func DeleteRental(svc rentals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			writeUnavailable(w, r, logg, "rental")
			return
		}
		id, err := validators.ParseURLUUID(r, "id", "rental")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		outcome, err := svc.DeleteBooking(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		message := "Rental transaction deleted successfully"
		if outcome == rentals.RemovalCancelled {
			message = "Rental transaction cancelled successfully"
		}
		responses.WriteMessage(w, message, map[string]string{"outcome": string(outcome)})
	}
}
