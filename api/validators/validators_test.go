package validators

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/angelmondragon/rentalhub-backend/pkg/errors"
	"github.com/angelmondragon/rentalhub-backend/pkg/pagination"
)

type bookingBody struct {
	CustomerName  string `json:"customer_name" validate:"required,max=10"`
	CustomerEmail string `json:"customer_email" validate:"required,email"`
	Status        string `json:"status" validate:"omitempty,oneof=confirmed cancelled"`
}

func details(t *testing.T, err error) map[string]string {
	t.Helper()
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	got, ok := typed.Details().(map[string]string)
	require.True(t, ok, "unexpected details type %T", typed.Details())
	return got
}

func TestDecodeJSONBodyKeysErrorsByJSONName(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"customer_name":"a very long name","customer_email":"nope","status":"lost"}`))
	var body bookingBody
	got := details(t, DecodeJSONBody(r, &body))

	assert.Equal(t, "may not be greater than 10 characters", got["customer_name"])
	assert.Equal(t, "must be a valid email address", got["customer_email"])
	assert.Equal(t, "must be one of: confirmed cancelled", got["status"])
}

func TestDecodeJSONBodyRejectsMalformedInput(t *testing.T) {
	cases := map[string]struct {
		body  string
		field string
		msg   string
	}{
		"empty":      {body: "", field: "body", msg: "is required"},
		"unknown":    {body: `{"customer_name":"a","customer_email":"a@b.co","extra":1}`, field: "extra", msg: "is not allowed"},
		"wrong type": {body: `{"customer_name":5}`, field: "customer_name", msg: "must be a string"},
		"not json":   {body: `[`, field: "body", msg: "must be a valid JSON object"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			var body bookingBody
			got := details(t, DecodeJSONBody(r, &body))
			assert.Equal(t, tc.msg, got[tc.field])
		})
	}
}

func TestParsePaginationFallsBackToFirstPage(t *testing.T) {
	for raw, want := range map[string]int{"": 1, "abc": 1, "-2": 1, "0": 1, "3": 3} {
		r := httptest.NewRequest(http.MethodGet, "/?page="+raw, nil)
		assert.Equal(t, want, ParsePagination(r).Page, "page=%q", raw)
	}
}

func TestParsePaginationCapsHugePages(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?page=9223372036854775807", nil)
	params := ParsePagination(r)
	assert.Equal(t, pagination.MaxPage, params.Page)
	assert.Equal(t, (pagination.MaxPage-1)*pagination.PerPage, params.Offset())
	assert.Positive(t, params.Offset())
}

func TestParseQueryUUID(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	id, err := ParseQueryUUID(r, "region_id")
	require.NoError(t, err)
	assert.Nil(t, id)

	r = httptest.NewRequest(http.MethodGet, "/?region_id=nope", nil)
	_, err = ParseQueryUUID(r, "region_id")
	assert.Equal(t, "must be a valid UUID", details(t, err)["region_id"])
}

func TestParseURLUUIDReportsNotFound(t *testing.T) {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "not-a-uuid")
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))

	_, err := ParseURLUUID(r, "id", "product")
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "hello\tworld", SanitizeString("  hello\t\x00world\x07 ", 0))
	assert.Equal(t, "héll", SanitizeString("héllo", 4))
	assert.Nil(t, SanitizeOptional(nil, 10))
	assert.Equal(t, "", *SanitizeOptional(strPtr("   "), 10))
}

func strPtr(s string) *string { return &s }
