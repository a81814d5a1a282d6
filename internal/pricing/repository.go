package pricing

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/rentalhub-backend/internal/repo"
	"github.com/angelmondragon/rentalhub-backend/pkg/db/models"
)

// Filter narrows pricing lookups to a region and/or rental period.
type Filter struct {
	RegionID       *uuid.UUID
	RentalPeriodID *uuid.UUID
}

// Active reports whether any narrowing is requested.
func (f Filter) Active() bool {
	return f.RegionID != nil || f.RentalPeriodID != nil
}

// Apply adds the filter conditions to a product_pricing query.
func (f Filter) Apply(db *gorm.DB) *gorm.DB {
	if f.RegionID != nil {
		db = db.Where("product_pricing.region_id = ?", *f.RegionID)
	}
	if f.RentalPeriodID != nil {
		db = db.Where("product_pricing.rental_period_id = ?", *f.RentalPeriodID)
	}
	return db
}

// Repository persists product pricing rows.
type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return NewRepository(tx)
}

// FindActive returns the active row for the exact triple.
func (r *Repository) FindActive(ctx context.Context, productID, regionID, rentalPeriodID uuid.UUID) (*models.ProductPricing, error) {
	var row models.ProductPricing
	err := r.DB(ctx).
		Preload("RentalPeriod").
		Where("product_id = ? AND region_id = ? AND rental_period_id = ? AND is_active = ?", productID, regionID, rentalPeriodID, true).
		Take(&row).
		Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// FindByID loads the row with its product, region and rental period.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.ProductPricing, error) {
	var row models.ProductPricing
	err := r.DB(ctx).
		Preload("Product").
		Preload("Region").
		Preload("RentalPeriod").
		First(&row, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// ListActiveForProduct returns the product's active rows with region and
// rental period, narrowed by filter.
func (r *Repository) ListActiveForProduct(ctx context.Context, productID uuid.UUID, filter Filter) ([]models.ProductPricing, error) {
	var rows []models.ProductPricing
	err := filter.Apply(r.DB(ctx).
		Preload("Region").
		Preload("RentalPeriod").
		Where("product_pricing.product_id = ? AND product_pricing.is_active = ?", productID, true)).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) Create(ctx context.Context, row *models.ProductPricing) error {
	return r.DB(ctx).Omit("Product", "Region", "RentalPeriod").Create(row).Error
}

func (r *Repository) Update(ctx context.Context, row *models.ProductPricing) error {
	return r.DB(ctx).Omit("Product", "Region", "RentalPeriod").Save(row).Error
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.DB(ctx).Delete(&models.ProductPricing{}, "id = ?", id).Error
}

// TripleTaken reports whether another row already prices the triple.
func (r *Repository) TripleTaken(ctx context.Context, productID, regionID, rentalPeriodID, excludeID uuid.UUID) (bool, error) {
	query := "product_id = ? AND region_id = ? AND rental_period_id = ?"
	args := []any{productID, regionID, rentalPeriodID}
	if excludeID != uuid.Nil {
		query += " AND id <> ?"
		args = append(args, excludeID)
	}
	return r.Exists(ctx, &models.ProductPricing{}, query, args...)
}

func (r *Repository) ProductExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.Exists(ctx, &models.Product{}, "id = ?", id)
}

func (r *Repository) RegionExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.Exists(ctx, &models.Region{}, "id = ?", id)
}

func (r *Repository) RentalPeriodExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.Exists(ctx, &models.RentalPeriod{}, "id = ?", id)
}
