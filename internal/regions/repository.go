package regions

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/rentalhub-backend/internal/repo"
	"github.com/angelmondragon/rentalhub-backend/pkg/db/models"
)

// Repository persists regions.
type Repository struct {
	repo.Base
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return NewRepository(tx)
}

// List returns every region in storage order.
func (r *Repository) List(ctx context.Context) ([]models.Region, error) {
	var regions []models.Region
	if err := r.DB(ctx).Find(&regions).Error; err != nil {
		return nil, err
	}
	return regions, nil
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Region, error) {
	var region models.Region
	if err := r.DB(ctx).First(&region, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &region, nil
}

// FindFirstActive returns whichever active region storage yields first.
// No ordering is applied.
func (r *Repository) FindFirstActive(ctx context.Context) (*models.Region, error) {
	var region models.Region
	if err := r.DB(ctx).Where("is_active = ?", true).Take(&region).Error; err != nil {
		return nil, err
	}
	return &region, nil
}

func (r *Repository) Create(ctx context.Context, region *models.Region) error {
	return r.DB(ctx).Create(region).Error
}

func (r *Repository) Update(ctx context.Context, region *models.Region) error {
	return r.DB(ctx).Save(region).Error
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.DB(ctx).Delete(&models.Region{}, "id = ?", id).Error
}

// CodeTaken reports whether another region already uses code.
func (r *Repository) CodeTaken(ctx context.Context, code string, excludeID uuid.UUID) (bool, error) {
	if excludeID == uuid.Nil {
		return r.Exists(ctx, &models.Region{}, "code = ?", code)
	}
	return r.Exists(ctx, &models.Region{}, "code = ? AND id <> ?", code, excludeID)
}

// HasDependents reports whether any pricing row references the region.
func (r *Repository) HasDependents(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.Exists(ctx, &models.ProductPricing{}, "region_id = ?", id)
}
