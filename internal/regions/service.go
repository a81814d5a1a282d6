package regions

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/rentalhub-backend/internal/guard"
	"github.com/angelmondragon/rentalhub-backend/pkg/db"
	"github.com/angelmondragon/rentalhub-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/rentalhub-backend/pkg/errors"
)

const (
	inUseMessage = "Cannot delete region that is in use. Consider deactivating it instead."
	codeTakenMsg = "The code has already been taken."
)

// Service manages the region reference data.
type Service interface {
	List(ctx context.Context) ([]RegionDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*RegionDTO, error)
	Create(ctx context.Context, input CreateRegionInput) (*RegionDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateRegionInput) (*RegionDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CreateRegionInput holds the validated payload to create a region.
type CreateRegionInput struct {
	Name     string
	Code     string
	IsActive *bool
}

// UpdateRegionInput holds optional mutation values for a region.
type UpdateRegionInput struct {
	Name     *string
	Code     *string
	IsActive *bool
}

type service struct {
	repo     *Repository
	dbClient *db.Client
}

// NewService constructs a region service instance.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("region repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

func (s *service) List(ctx context.Context) ([]RegionDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list regions")
	}
	out := make([]RegionDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *NewRegionDTO(&rows[i]))
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*RegionDTO, error) {
	region, err := s.load(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	return NewRegionDTO(region), nil
}

func (s *service) Create(ctx context.Context, input CreateRegionInput) (*RegionDTO, error) {
	region := &models.Region{
		Name:     strings.TrimSpace(input.Name),
		Code:     strings.TrimSpace(input.Code),
		IsActive: true,
	}
	if input.IsActive != nil {
		region.IsActive = *input.IsActive
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := ensureCodeFree(ctx, txRepo, region.Code, uuid.Nil); err != nil {
			return err
		}
		return txRepo.Create(ctx, region)
	}); err != nil {
		return nil, mapWriteError(err, "insert region")
	}
	return NewRegionDTO(region), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateRegionInput) (*RegionDTO, error) {
	var updated *models.Region
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		region, err := s.load(ctx, txRepo, id)
		if err != nil {
			return err
		}
		if input.Name != nil {
			region.Name = strings.TrimSpace(*input.Name)
		}
		if input.Code != nil {
			code := strings.TrimSpace(*input.Code)
			if code != region.Code {
				if err := ensureCodeFree(ctx, txRepo, code, region.ID); err != nil {
					return err
				}
			}
			region.Code = code
		}
		if input.IsActive != nil {
			region.IsActive = *input.IsActive
		}
		if err := txRepo.Update(ctx, region); err != nil {
			return err
		}
		updated = region
		return nil
	}); err != nil {
		return nil, mapWriteError(err, "update region")
	}
	return NewRegionDTO(updated), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if _, err := s.load(ctx, txRepo, id); err != nil {
			return err
		}
		return guard.GuardedDelete(ctx, txRepo, id, inUseMessage, func(ctx context.Context) error {
			return txRepo.Delete(ctx, id)
		})
	})
	if err != nil && pkgerrors.As(err) == nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete region")
	}
	return err
}

func (s *service) load(ctx context.Context, repo *Repository, id uuid.UUID) (*models.Region, error) {
	region, err := repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "region not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load region")
	}
	return region, nil
}

func ensureCodeFree(ctx context.Context, repo *Repository, code string, excludeID uuid.UUID) error {
	taken, err := repo.CodeTaken(ctx, code, excludeID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check region code")
	}
	if taken {
		return duplicateCode()
	}
	return nil
}

func duplicateCode() error {
	return pkgerrors.New(pkgerrors.CodeDuplicateValue, codeTakenMsg).WithDetails(map[string]string{"code": codeTakenMsg})
}

func mapWriteError(err error, step string) error {
	if pkgerrors.As(err) != nil {
		return err
	}
	if db.IsUniqueViolation(err, "") {
		return duplicateCode()
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, step)
}
