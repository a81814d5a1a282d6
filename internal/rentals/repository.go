package rentals

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/rentalhub-backend/internal/repo"
	"github.com/angelmondragon/rentalhub-backend/pkg/db/models"
	"github.com/angelmondragon/rentalhub-backend/pkg/enums"
	"github.com/angelmondragon/rentalhub-backend/pkg/pagination"
	"github.com/angelmondragon/rentalhub-backend/pkg/types"
)

// ListFilter narrows the rental listing. Nil fields are ignored.
type ListFilter struct {
	ProductID *uuid.UUID
	RegionID  *uuid.UUID
	Status    *enums.RentalStatus
}

// Repository persists rental transactions.
type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return NewRepository(tx)
}

func withRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Product").Preload("Region").Preload("RentalPeriod")
}

// FindByID loads the rental with its product, region and rental period.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.RentalTransaction, error) {
	var row models.RentalTransaction
	if err := r.DB(ctx).Scopes(withRelations).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// List returns one page of rentals, newest first.
func (r *Repository) List(ctx context.Context, filter ListFilter, params pagination.Params) ([]models.RentalTransaction, int64, error) {
	scoped := func() *gorm.DB {
		query := r.DB(ctx).Model(&models.RentalTransaction{})
		if filter.ProductID != nil {
			query = query.Where("product_id = ?", *filter.ProductID)
		}
		if filter.RegionID != nil {
			query = query.Where("region_id = ?", *filter.RegionID)
		}
		if filter.Status != nil {
			query = query.Where("status = ?", *filter.Status)
		}
		return query
	}

	var rows []models.RentalTransaction
	total, err := r.Paginate(scoped, func(db *gorm.DB) *gorm.DB {
		return db.Scopes(withRelations).Order("created_at DESC")
	}, params, &rows)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *Repository) FindProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.DB(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *Repository) RegionExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.Exists(ctx, &models.Region{}, "id = ?", id)
}

func (r *Repository) RentalPeriodExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.Exists(ctx, &models.RentalPeriod{}, "id = ?", id)
}

func (r *Repository) Create(ctx context.Context, row *models.RentalTransaction) error {
	return r.DB(ctx).Omit("Product", "Region", "RentalPeriod").Create(row).Error
}

func (r *Repository) Update(ctx context.Context, row *models.RentalTransaction) error {
	return r.DB(ctx).Omit("Product", "Region", "RentalPeriod").Save(row).Error
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.DB(ctx).Delete(&models.RentalTransaction{}, "id = ?", id).Error
}

// ListEndedConfirmedIDs returns up to limit confirmed rentals whose end date
// is before today.
func (r *Repository) ListEndedConfirmedIDs(ctx context.Context, today types.Date, limit int) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.DB(ctx).
		Model(&models.RentalTransaction{}).
		Where("status = ? AND end_date < ?", enums.RentalStatusConfirmed, today).
		Order("end_date ASC").
		Limit(limit).
		Pluck("id", &ids).
		Error
	return ids, err
}

// MarkCompleted moves a still-confirmed rental to completed. It reports
// false when the row changed status in the meantime.
func (r *Repository) MarkCompleted(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.DB(ctx).
		Model(&models.RentalTransaction{}).
		Where("id = ? AND status = ?", id, enums.RentalStatusConfirmed).
		Update("status", enums.RentalStatusCompleted)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
