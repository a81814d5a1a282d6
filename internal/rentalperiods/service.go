package rentalperiods

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
	inUseMessage = "Cannot delete rental period that is in use. Consider deactivating it instead."
	daysTakenMsg = "The days has already been taken."
	daysMinMsg   = "The days field must be at least 1."
)

// Service manages rental period reference data.
type Service interface {
	List(ctx context.Context) ([]RentalPeriodDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*RentalPeriodDTO, error)
	Create(ctx context.Context, input CreateRentalPeriodInput) (*RentalPeriodDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateRentalPeriodInput) (*RentalPeriodDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type CreateRentalPeriodInput struct {
	Name     string
	Days     int
	IsActive *bool
}

type UpdateRentalPeriodInput struct {
	Name     *string
	Days     *int
	IsActive *bool
}

type service struct {
	repo     *Repository
	dbClient *db.Client
}

func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("rental period repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

func (s *service) List(ctx context.Context) ([]RentalPeriodDTO, error) {
	rows, err := s.repo.ListByDays(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list rental periods")
	}
	out := make([]RentalPeriodDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *NewRentalPeriodDTO(&rows[i]))
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*RentalPeriodDTO, error) {
	period, err := load(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	return NewRentalPeriodDTO(period), nil
}

func (s *service) Create(ctx context.Context, input CreateRentalPeriodInput) (*RentalPeriodDTO, error) {
	if err := validateDays(input.Days); err != nil {
		return nil, err
	}
	period := &models.RentalPeriod{
		Name:     strings.TrimSpace(input.Name),
		Days:     input.Days,
		IsActive: true,
	}
	if input.IsActive != nil {
		period.IsActive = *input.IsActive
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := ensureDaysFree(ctx, txRepo, period.Days, uuid.Nil); err != nil {
			return err
		}
		return txRepo.Create(ctx, period)
	}); err != nil {
		return nil, mapWriteError(err, "insert rental period")
	}
	return NewRentalPeriodDTO(period), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateRentalPeriodInput) (*RentalPeriodDTO, error) {
	if input.Days != nil {
		if err := validateDays(*input.Days); err != nil {
			return nil, err
		}
	}

	var updated *models.RentalPeriod
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		period, err := load(ctx, txRepo, id)
		if err != nil {
			return err
		}
		if input.Name != nil {
			period.Name = strings.TrimSpace(*input.Name)
		}
		if input.Days != nil && *input.Days != period.Days {
			if err := ensureDaysFree(ctx, txRepo, *input.Days, period.ID); err != nil {
				return err
			}
			period.Days = *input.Days
		}
		if input.IsActive != nil {
			period.IsActive = *input.IsActive
		}
		if err := txRepo.Update(ctx, period); err != nil {
			return err
		}
		updated = period
		return nil
	}); err != nil {
		return nil, mapWriteError(err, "update rental period")
	}
	return NewRentalPeriodDTO(updated), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if _, err := load(ctx, txRepo, id); err != nil {
			return err
		}
		return guard.GuardedDelete(ctx, txRepo, id, inUseMessage, func(ctx context.Context) error {
			return txRepo.Delete(ctx, id)
		})
	})
	if err != nil && pkgerrors.As(err) == nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete rental period")
	}
	return err
}

func load(ctx context.Context, repo *Repository, id uuid.UUID) (*models.RentalPeriod, error) {
	period, err := repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "rental period not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load rental period")
	}
	return period, nil
}

func validateDays(days int) error {
	if days < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(map[string]string{"days": daysMinMsg})
	}
	return nil
}

func ensureDaysFree(ctx context.Context, repo *Repository, days int, excludeID uuid.UUID) error {
	taken, err := repo.DaysTaken(ctx, days, excludeID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check rental period days")
	}
	if taken {
		return duplicateDays()
	}
	return nil
}

func duplicateDays() error {
	return pkgerrors.New(pkgerrors.CodeDuplicateValue, daysTakenMsg).WithDetails(map[string]string{"days": daysTakenMsg})
}

func mapWriteError(err error, step string) error {
	if pkgerrors.As(err) != nil {
		return err
	}
	if db.IsUniqueViolation(err, "") {
		return duplicateDays()
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, step)
}
