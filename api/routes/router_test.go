package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/rentalhub-backend/internal/regions"
	"github.com/angelmondragon/rentalhub-backend/internal/rentals"
	"github.com/angelmondragon/rentalhub-backend/pkg/config"
	"github.com/angelmondragon/rentalhub-backend/pkg/logger"
	"github.com/angelmondragon/rentalhub-backend/pkg/metrics"
	"github.com/angelmondragon/rentalhub-backend/pkg/pagination"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubRegions struct {
	regions.Service
}

func (stubRegions) List(context.Context) ([]regions.RegionDTO, error) {
	return []regions.RegionDTO{{ID: uuid.New(), Name: "North America", Code: "NA"}}, nil
}

type stubRentals struct {
	rentals.Service
	lastID uuid.UUID
}

func (s *stubRentals) GetBooking(_ context.Context, id uuid.UUID) (*rentals.RentalDTO, error) {
	s.lastID = id
	return &rentals.RentalDTO{ID: id}, nil
}

func (s *stubRentals) ListBookings(_ context.Context, input rentals.ListBookingsInput) (*pagination.Page[rentals.RentalDTO], error) {
	page := pagination.NewPage([]rentals.RentalDTO{}, input.Pagination.Normalize(), 0)
	return &page, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App:  config.AppConfig{Env: "test"},
		CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
	}
}

func newTestRouter(t *testing.T, reg *prometheus.Registry, rentalSvc *stubRentals) http.Handler {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(testConfig(), logg, Dependencies{
		DB:          stubPinger{},
		HTTPMetrics: metrics.NewHTTPMetrics(reg),
		Gatherer:    reg,
		Regions:     stubRegions{},
		Rentals:     rentalSvc,
	})
}

func TestRouterServesRoutes(t *testing.T) {
	reg := prometheus.NewRegistry()
	rentalSvc := &stubRentals{}
	router := newTestRouter(t, reg, rentalSvc)

	id := uuid.New()
	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/health/live", http.StatusOK},
		{http.MethodGet, "/health/ready", http.StatusOK},
		{http.MethodGet, "/v1/user", http.StatusOK},
		{http.MethodGet, "/v1/regions", http.StatusOK},
		{http.MethodGet, "/v1/rentals", http.StatusOK},
		{http.MethodGet, "/v1/rentals/" + id.String(), http.StatusOK},
		{http.MethodGet, "/v1/rentals/not-a-uuid", http.StatusNotFound},
		{http.MethodGet, "/v1/products", http.StatusInternalServerError},
		{http.MethodGet, "/v1/unknown", http.StatusNotFound},
		{http.MethodPatch, "/v1/regions", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
		if rec.Code != tt.want {
			t.Fatalf("%s %s: expected %d got %d (%s)", tt.method, tt.path, tt.want, rec.Code, rec.Body.String())
		}
	}
	if rentalSvc.lastID != id {
		t.Fatalf("expected path id forwarded, got %s", rentalSvc.lastID)
	}
}

func TestRouterExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	router := newTestRouter(t, reg, &stubRentals{})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/regions", nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "rentalhub_http_request_duration_seconds") {
		t.Fatalf("expected http histogram in exposition")
	}
	if !strings.Contains(body, `route="/v1/regions"`) {
		t.Fatalf("expected route pattern label, got:\n%s", body)
	}
}

func TestRouterRequestIDHeader(t *testing.T) {
	router := newTestRouter(t, prometheus.NewRegistry(), &stubRentals{})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected request id header")
	}
}
