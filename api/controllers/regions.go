package controllers

import (
	"net/http"
	"strings"

	"github.com/angelmondragon/rentalhub-backend/api/responses"
	"github.com/angelmondragon/rentalhub-backend/api/validators"
	"github.com/angelmondragon/rentalhub-backend/internal/regions"
	"github.com/angelmondragon/rentalhub-backend/pkg/logger"
)

type createRegionRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Code     string `json:"code" validate:"required,max=10"`
	IsActive *bool  `json:"is_active,omitempty"`
}

type updateRegionRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Code     *string `json:"code,omitempty" validate:"omitempty,min=1,max=10"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// ListRegions returns every region, active or not.
func ListRegions(svc regions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			writeUnavailable(w, r, logg, "region")
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

func GetRegion(svc regions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			writeUnavailable(w, r, logg, "region")
			return
		}
		id, err := validators.ParseURLUUID(r, "id", "region")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		region, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, region)
	}
}

func CreateRegion(svc regions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			writeUnavailable(w, r, logg, "region")
			return
		}
		var payload createRegionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		region, err := svc.Create(r.Context(), regions.CreateRegionInput{
			Name:     strings.TrimSpace(payload.Name),
			Code:     strings.TrimSpace(payload.Code),
			IsActive: payload.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCreated(w, "Region created successfully", region)
	}
}

func UpdateRegion(svc regions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			writeUnavailable(w, r, logg, "region")
			return
		}
		id, err := validators.ParseURLUUID(r, "id", "region")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload updateRegionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		region, err := svc.Update(r.Context(), id, regions.UpdateRegionInput{
			Name:     trimOptional(payload.Name),
			Code:     trimOptional(payload.Code),
			IsActive: payload.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, "Region updated successfully", region)
	}
}

// DeleteRegion refuses while pricing rows or rentals still reference the region.
func DeleteRegion(svc regions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			writeUnavailable(w, r, logg, "region")
			return
		}
		id, err := validators.ParseURLUUID(r, "id", "region")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, "Region deleted successfully", nil)
	}
}
