package rentalperiods

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/rentalhub-backend/internal/repo"
	"github.com/angelmondragon/rentalhub-backend/pkg/db/models"
)

// Repository persists rental periods.
type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return NewRepository(tx)
}

// ListByDays returns every period, shortest first.
func (r *Repository) ListByDays(ctx context.Context) ([]models.RentalPeriod, error) {
	var periods []models.RentalPeriod
	if err := r.DB(ctx).Order("days ASC").Find(&periods).Error; err != nil {
		return nil, err
	}
	return periods, nil
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.RentalPeriod, error) {
	var period models.RentalPeriod
	if err := r.DB(ctx).First(&period, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &period, nil
}

func (r *Repository) Create(ctx context.Context, period *models.RentalPeriod) error {
	return r.DB(ctx).Create(period).Error
}

func (r *Repository) Update(ctx context.Context, period *models.RentalPeriod) error {
	return r.DB(ctx).Save(period).Error
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.DB(ctx).Delete(&models.RentalPeriod{}, "id = ?", id).Error
}

// DaysTaken reports whether another period already spans the same number of days.
func (r *Repository) DaysTaken(ctx context.Context, days int, excludeID uuid.UUID) (bool, error) {
	if excludeID == uuid.Nil {
		return r.Exists(ctx, &models.RentalPeriod{}, "days = ?", days)
	}
	return r.Exists(ctx, &models.RentalPeriod{}, "days = ? AND id <> ?", days, excludeID)
}

// HasDependents reports whether any pricing row references the period.
func (r *Repository) HasDependents(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.Exists(ctx, &models.ProductPricing{}, "rental_period_id = ?", id)
}
