package validators

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	pkgerrors "github.com/angelmondragon/rentalhub-backend/pkg/errors"
	"github.com/angelmondragon/rentalhub-backend/pkg/pagination"
)

// ParsePagination reads ?page=N. Missing, malformed or non-positive values
// fall back to the first page; huge values are capped at pagination.MaxPage.
func ParsePagination(r *http.Request) pagination.Params {
	page, err := strconv.Atoi(strings.TrimSpace(r.URL.Query().Get("page")))
	if err != nil || page < 1 {
		page = 1
	}
	return pagination.Params{Page: page, PerPage: pagination.PerPage}.Normalize()
}

// ParseQueryUUID returns nil when key is absent and a VALIDATION error when
// it is present but not a UUID.
func ParseQueryUUID(r *http.Request, key string) (*uuid.UUID, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, validationFailedMsg).
			WithDetails(map[string]string{key: "must be a valid UUID"})
	}
	return &id, nil
}

// ParseQueryString returns the trimmed value or nil when absent.
func ParseQueryString(r *http.Request, key string) *string {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil
	}
	return &raw
}

// ParseURLUUID reads a chi path parameter. A malformed id cannot match any
// row, so it is reported as NOT_FOUND.
func ParseURLUUID(r *http.Request, param, resource string) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, param))
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, resource+" not found")
	}
	return id, nil
}
