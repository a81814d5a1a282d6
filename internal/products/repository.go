package products

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/rentalhub-backend/internal/pricing"
	"github.com/angelmondragon/rentalhub-backend/internal/repo"
	"github.com/angelmondragon/rentalhub-backend/pkg/db/models"
	"github.com/angelmondragon/rentalhub-backend/pkg/pagination"
)

// Repository wires together all product-related persistence helpers.
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

// FindByID loads the product without associations.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.DB(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindWithAttributes loads the product with its attribute values and their attribute.
func (r *Repository) FindWithAttributes(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.DB(ctx).
		Preload("AttributeValues.Attribute").
		First(&product, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetProductDetail loads the product with attribute values and the active
// pricing of one region, each with its rental period.
func (r *Repository) GetProductDetail(ctx context.Context, id, regionID uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.DB(ctx).
		Preload("AttributeValues.Attribute").
		Preload("Pricing", "region_id = ? AND is_active = ?", regionID, true).
		Preload("Pricing.RentalPeriod").
		First(&product, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ListActiveProducts returns one page of active products. With a filter, only
// products holding a matching active price are returned and only those
// prices are loaded. Rows come back in storage order.
func (r *Repository) ListActiveProducts(ctx context.Context, filter pricing.Filter, params pagination.Params) ([]models.Product, int64, error) {
	scoped := func() *gorm.DB {
		query := r.DB(ctx).Model(&models.Product{}).Where("products.is_active = ?", true)
		if filter.Active() {
			matching := filter.Apply(r.DB(ctx).
				Model(&models.ProductPricing{}).
				Select("1").
				Where("product_pricing.product_id = products.id AND product_pricing.is_active = ?", true))
			query = query.Where("EXISTS (?)", matching)
		}
		return query
	}

	load := func(db *gorm.DB) *gorm.DB {
		db = db.Preload("AttributeValues.Attribute")
		if filter.Active() {
			db = db.
				Preload("Pricing", func(db *gorm.DB) *gorm.DB {
					return filter.Apply(db.Where("product_pricing.is_active = ?", true))
				}).
				Preload("Pricing.Region").
				Preload("Pricing.RentalPeriod")
		}
		return db
	}

	var rows []models.Product
	total, err := r.Paginate(scoped, load, params, &rows)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// CreateProduct inserts a new product row.
func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.DB(ctx).Omit("AttributeValues", "Pricing").Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct updates an existing product row.
func (r *Repository) UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.DB(ctx).Omit("AttributeValues", "Pricing").Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// ReplaceAttributeValues swaps the product's attribute value links.
func (r *Repository) ReplaceAttributeValues(ctx context.Context, productID uuid.UUID, valueIDs []uuid.UUID) error {
	tx := r.DB(ctx)
	if err := tx.Where("product_id = ?", productID).Delete(&models.ProductAttributeValue{}).Error; err != nil {
		return err
	}
	if len(valueIDs) == 0 {
		return nil
	}
	links := make([]models.ProductAttributeValue, len(valueIDs))
	for i, id := range valueIDs {
		links[i] = models.ProductAttributeValue{ProductID: productID, AttributeValueID: id}
	}
	return tx.Create(&links).Error
}

// CountAttributeValues returns how many of ids exist.
func (r *Repository) CountAttributeValues(ctx context.Context, ids []uuid.UUID) (int64, error) {
	var count int64
	if len(ids) == 0 {
		return 0, nil
	}
	err := r.DB(ctx).Model(&models.AttributeValue{}).Where("id IN ?", ids).Count(&count).Error
	return count, err
}

// SKUTaken reports whether another product already uses the sku.
func (r *Repository) SKUTaken(ctx context.Context, sku string, excludeID uuid.UUID) (bool, error) {
	if excludeID == uuid.Nil {
		return r.Exists(ctx, &models.Product{}, "sku = ?", sku)
	}
	return r.Exists(ctx, &models.Product{}, "sku = ? AND id <> ?", sku, excludeID)
}

// HasDependents reports whether any rental transaction references the product.
func (r *Repository) HasDependents(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.Exists(ctx, &models.RentalTransaction{}, "product_id = ?", id)
}

// DeleteProduct removes the product with its pricing rows and attribute links.
// Callers run it inside a transaction.
func (r *Repository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	tx := r.DB(ctx)
	if err := tx.Where("product_id = ?", id).Delete(&models.ProductPricing{}).Error; err != nil {
		return err
	}
	if err := tx.Where("product_id = ?", id).Delete(&models.ProductAttributeValue{}).Error; err != nil {
		return err
	}
	return tx.Where("id = ?", id).Delete(&models.Product{}).Error
}
