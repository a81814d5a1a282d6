package attributes

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/rentalhub-backend/internal/repo"
	"github.com/angelmondragon/rentalhub-backend/pkg/db/models"
)

// Repository persists attributes and their values.
type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return NewRepository(tx)
}

// ListWithValues returns every attribute with its values loaded.
func (r *Repository) ListWithValues(ctx context.Context) ([]models.Attribute, error) {
	var attrs []models.Attribute
	if err := r.DB(ctx).Preload("Values").Find(&attrs).Error; err != nil {
		return nil, err
	}
	return attrs, nil
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Attribute, error) {
	var attr models.Attribute
	if err := r.DB(ctx).First(&attr, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &attr, nil
}

func (r *Repository) Create(ctx context.Context, attr *models.Attribute) error {
	return r.DB(ctx).Omit("Values").Create(attr).Error
}

func (r *Repository) Update(ctx context.Context, attr *models.Attribute) error {
	return r.DB(ctx).Omit("Values").Save(attr).Error
}

// DeleteWithValues removes the attribute's values and then the attribute.
// Callers run it inside a transaction.
func (r *Repository) DeleteWithValues(ctx context.Context, id uuid.UUID) error {
	tx := r.DB(ctx)
	if err := tx.Where("attribute_id = ?", id).Delete(&models.AttributeValue{}).Error; err != nil {
		return err
	}
	return tx.Delete(&models.Attribute{}, "id = ?", id).Error
}

func (r *Repository) NameTaken(ctx context.Context, name string, excludeID uuid.UUID) (bool, error) {
	if excludeID == uuid.Nil {
		return r.Exists(ctx, &models.Attribute{}, "name = ?", name)
	}
	return r.Exists(ctx, &models.Attribute{}, "name = ? AND id <> ?", name, excludeID)
}

// HasDependents reports whether any value of the attribute is attached to a product.
func (r *Repository) HasDependents(ctx context.Context, id uuid.UUID) (bool, error) {
	values := r.DB(ctx).Model(&models.AttributeValue{}).Select("id").Where("attribute_id = ?", id)
	return r.Exists(ctx, &models.ProductAttributeValue{}, "attribute_value_id IN (?)", values)
}

// ListValues returns values with their attribute, optionally narrowed to one attribute.
func (r *Repository) ListValues(ctx context.Context, attributeID *uuid.UUID) ([]models.AttributeValue, error) {
	query := r.DB(ctx).Preload("Attribute")
	if attributeID != nil {
		query = query.Where("attribute_id = ?", *attributeID)
	}
	var values []models.AttributeValue
	if err := query.Find(&values).Error; err != nil {
		return nil, err
	}
	return values, nil
}

func (r *Repository) FindValueByID(ctx context.Context, id uuid.UUID) (*models.AttributeValue, error) {
	var value models.AttributeValue
	if err := r.DB(ctx).Preload("Attribute").First(&value, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &value, nil
}

// FindValuesByIDs loads the requested values; missing ids are simply absent.
func (r *Repository) FindValuesByIDs(ctx context.Context, ids []uuid.UUID) ([]models.AttributeValue, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var values []models.AttributeValue
	if err := r.DB(ctx).Where("id IN ?", ids).Find(&values).Error; err != nil {
		return nil, err
	}
	return values, nil
}

func (r *Repository) CreateValue(ctx context.Context, value *models.AttributeValue) error {
	return r.DB(ctx).Omit("Attribute").Create(value).Error
}

func (r *Repository) UpdateValue(ctx context.Context, value *models.AttributeValue) error {
	return r.DB(ctx).Omit("Attribute").Save(value).Error
}

func (r *Repository) DeleteValue(ctx context.Context, id uuid.UUID) error {
	return r.DB(ctx).Delete(&models.AttributeValue{}, "id = ?", id).Error
}

func (r *Repository) ValueTaken(ctx context.Context, attributeID uuid.UUID, value string, excludeID uuid.UUID) (bool, error) {
	if excludeID == uuid.Nil {
		return r.Exists(ctx, &models.AttributeValue{}, "attribute_id = ? AND value = ?", attributeID, value)
	}
	return r.Exists(ctx, &models.AttributeValue{}, "attribute_id = ? AND value = ? AND id <> ?", attributeID, value, excludeID)
}

// ValueHasDependents reports whether the value is attached to any product.
func (r *Repository) ValueHasDependents(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.Exists(ctx, &models.ProductAttributeValue{}, "attribute_value_id = ?", id)
}
