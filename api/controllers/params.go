package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/rentalhub-backend/api/responses"
	"github.com/angelmondragon/rentalhub-backend/api/validators"
	pkgerrors "github.com/angelmondragon/rentalhub-backend/pkg/errors"
	"github.com/angelmondragon/rentalhub-backend/pkg/logger"
	"github.com/angelmondragon/rentalhub-backend/pkg/types"
)

// priceField accepts a price as a JSON number or numeric string.
type priceField struct {
	decimal.Decimal
}

func (p *priceField) UnmarshalJSON(data []byte) error {
	if err := p.Decimal.UnmarshalJSON(data); err != nil {
		return &validators.FieldError{Field: "price", Message: "must be a number"}
	}
	return nil
}

func (p *priceField) value() *decimal.Decimal {
	if p == nil {
		return nil
	}
	v := p.Decimal
	return &v
}

// dateField accepts a YYYY-MM-DD calendar date.
type dateField struct {
	types.Date
}

func (d *dateField) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return &validators.FieldError{Field: "start_date", Message: "must be a date in YYYY-MM-DD format"}
	}
	parsed, err := types.ParseDate(raw)
	if err != nil {
		return &validators.FieldError{Field: "start_date", Message: "must be a date in YYYY-MM-DD format"}
	}
	d.Date = parsed
	return nil
}

func (d *dateField) value() *types.Date {
	if d == nil {
		return nil
	}
	v := d.Date
	return &v
}

// nullableString tells an omitted key apart from an explicit null.
type nullableString struct {
	Set   bool
	Value *string
}

func (n *nullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &validators.FieldError{Field: "notes", Message: "must be a string"}
	}
	n.Value = &s
	return nil
}

// mustUUID parses an id already checked by the uuid validate tag.
func mustUUID(value string) uuid.UUID {
	return uuid.MustParse(strings.TrimSpace(value))
}

func optionalUUID(value *string) *uuid.UUID {
	if value == nil {
		return nil
	}
	id := mustUUID(*value)
	return &id
}

func uuidList(values []string) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(values))
	for _, v := range values {
		out = append(out, mustUUID(v))
	}
	return out
}

func trimOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	return &trimmed
}

func writeUnavailable(w http.ResponseWriter, r *http.Request, logg *logger.Logger, name string) {
	responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, name+" service unavailable"))
}
