package controllers

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/angelmondragon/rentalhub-backend/internal/regions"
	pkgerrors "github.com/angelmondragon/rentalhub-backend/pkg/errors"
)

type stubRegionService struct {
	regions.Service
	created *regions.CreateRegionInput
	updated *regions.UpdateRegionInput
	err     error
}

func (s *stubRegionService) Create(_ context.Context, input regions.CreateRegionInput) (*regions.RegionDTO, error) {
	s.created = &input
	if s.err != nil {
		return nil, s.err
	}
	return &regions.RegionDTO{ID: uuid.New(), Name: input.Name, Code: input.Code, IsActive: true}, nil
}

func (s *stubRegionService) Update(_ context.Context, id uuid.UUID, input regions.UpdateRegionInput) (*regions.RegionDTO, error) {
	s.updated = &input
	if s.err != nil {
		return nil, s.err
	}
	return &regions.RegionDTO{ID: id}, nil
}

func (s *stubRegionService) Delete(context.Context, uuid.UUID) error {
	return s.err
}

func TestCreateRegion(t *testing.T) {
	logg := testLogger()

	t.Run("created", func(t *testing.T) {
		svc := &stubRegionService{}
		rec := serve(CreateRegion(svc, logg), newRequest(http.MethodPost, "/v1/regions", `{"name":"  Europe ","code":"EU"}`, nil))
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		env := decodeEnvelope(t, rec)
		if !env.Success || env.Message != "Region created successfully" {
			t.Fatalf("unexpected envelope %+v", env)
		}
		if svc.created.Name != "Europe" {
			t.Fatalf("expected trimmed name, got %q", svc.created.Name)
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		svc := &stubRegionService{}
		rec := serve(CreateRegion(svc, logg), newRequest(http.MethodPost, "/v1/regions", `{"code":"TOOLONGCODE1"}`, nil))
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rec.Code)
		}
		env := decodeEnvelope(t, rec)
		if env.Errors["name"] == "" || env.Errors["code"] == "" {
			t.Fatalf("expected name and code errors, got %v", env.Errors)
		}
		if svc.created != nil {
			t.Fatalf("service should not be called")
		}
	})

	t.Run("unknown field", func(t *testing.T) {
		rec := serve(CreateRegion(&stubRegionService{}, logg), newRequest(http.MethodPost, "/v1/regions", `{"name":"EU","code":"EU","rank":1}`, nil))
		env := decodeEnvelope(t, rec)
		if rec.Code != http.StatusUnprocessableEntity || env.Errors["rank"] != "is not allowed" {
			t.Fatalf("expected rank rejected, got %d %v", rec.Code, env.Errors)
		}
	})

	t.Run("duplicate code", func(t *testing.T) {
		svc := &stubRegionService{err: pkgerrors.New(pkgerrors.CodeDuplicateValue, "The code has already been taken.")}
		rec := serve(CreateRegion(svc, logg), newRequest(http.MethodPost, "/v1/regions", `{"name":"EU","code":"EU"}`, nil))
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rec.Code)
		}
	})
}

func TestUpdateRegionPartial(t *testing.T) {
	svc := &stubRegionService{}
	id := uuid.New()
	rec := serve(UpdateRegion(svc, testLogger()), newRequest(http.MethodPut, "/v1/regions/"+id.String(), `{"is_active":false}`, map[string]string{"id": id.String()}))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.updated.Name != nil || svc.updated.Code != nil {
		t.Fatalf("absent fields must stay nil")
	}
	if svc.updated.IsActive == nil || *svc.updated.IsActive {
		t.Fatalf("expected is_active=false to be forwarded")
	}
}

func TestDeleteRegion(t *testing.T) {
	logg := testLogger()

	t.Run("malformed id is not found", func(t *testing.T) {
		rec := serve(DeleteRegion(&stubRegionService{}, logg), newRequest(http.MethodDelete, "/v1/regions/abc", "", map[string]string{"id": "abc"}))
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("in use", func(t *testing.T) {
		svc := &stubRegionService{err: pkgerrors.New(pkgerrors.CodeInUse, "Cannot delete region that is in use.")}
		id := uuid.NewString()
		rec := serve(DeleteRegion(svc, logg), newRequest(http.MethodDelete, "/v1/regions/"+id, "", map[string]string{"id": id}))
		env := decodeEnvelope(t, rec)
		if rec.Code != http.StatusUnprocessableEntity || env.Code != string(pkgerrors.CodeInUse) {
			t.Fatalf("expected IN_USE 422, got %d %+v", rec.Code, env)
		}
		if env.Message != "Cannot delete region that is in use." {
			t.Fatalf("expected domain message, got %q", env.Message)
		}
	})

	t.Run("deleted", func(t *testing.T) {
		id := uuid.NewString()
		rec := serve(DeleteRegion(&stubRegionService{}, logg), newRequest(http.MethodDelete, "/v1/regions/"+id, "", map[string]string{"id": id}))
		env := decodeEnvelope(t, rec)
		if rec.Code != http.StatusOK || env.Message != "Region deleted successfully" {
			t.Fatalf("unexpected response %d %+v", rec.Code, env)
		}
	})
}

func TestRegionHandlersWithoutService(t *testing.T) {
	rec := serve(ListRegions(nil, testLogger()), newRequest(http.MethodGet, "/v1/regions", "", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
