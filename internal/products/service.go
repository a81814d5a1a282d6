package products

import (
	"context"
	"fmt"
	"strings"

	"github.com/angelmondragon/rentalhub-backend/internal/guard"
	"github.com/angelmondragon/rentalhub-backend/internal/pricing"
	"github.com/angelmondragon/rentalhub-backend/internal/regions"
	"github.com/angelmondragon/rentalhub-backend/pkg/db"
	"github.com/angelmondragon/rentalhub-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/rentalhub-backend/pkg/errors"
	"github.com/angelmondragon/rentalhub-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	invalidRegionMsg       = "Invalid region ID"
	invalidRentalPeriodMsg = "Invalid rental period ID"
	skuTakenMsg            = "The sku has already been taken."
	invalidValuesMsg       = "The selected attribute value ids is invalid."
	productInUseMsg        = "Cannot delete product that has rental transactions."
)

// Service exposes catalog product operations.
type Service interface {
	ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error)
	GetProduct(ctx context.Context, productID uuid.UUID, regionID *uuid.UUID) (*ProductDetailDTO, error)
	ListProductPricing(ctx context.Context, productID uuid.UUID, input ListPricingInput) ([]pricing.PricingSummary, error)
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, productID uuid.UUID) error
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Name              string
	Description       *string
	SKU               string
	IsActive          *bool
	AttributeValueIDs []uuid.UUID
}

// UpdateProductInput holds optional mutation values for a product. A non-nil
// AttributeValueIDs replaces the product's attribute values.
type UpdateProductInput struct {
	Name              *string
	Description       *string
	SKU               *string
	IsActive          *bool
	AttributeValueIDs *[]uuid.UUID
}

type regionLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Region, error)
	FindFirstActive(ctx context.Context) (*models.Region, error)
}

type rentalPeriodLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.RentalPeriod, error)
}

type pricingLister interface {
	ListActiveForProduct(ctx context.Context, productID uuid.UUID, filter pricing.Filter) ([]models.ProductPricing, error)
}

// service implements the product service.
type service struct {
	repo        *Repository
	dbClient    *db.Client
	regionRepo  regionLoader
	periodRepo  rentalPeriodLoader
	pricingRepo pricingLister
}

// NewService constructs a product service instance.
func NewService(repo *Repository, dbClient *db.Client, regionRepo regionLoader, periodRepo rentalPeriodLoader, pricingRepo pricingLister) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if regionRepo == nil {
		return nil, fmt.Errorf("region repository required")
	}
	if periodRepo == nil {
		return nil, fmt.Errorf("rental period repository required")
	}
	if pricingRepo == nil {
		return nil, fmt.Errorf("pricing repository required")
	}
	return &service{
		repo:        repo,
		dbClient:    dbClient,
		regionRepo:  regionRepo,
		periodRepo:  periodRepo,
		pricingRepo: pricingRepo,
	}, nil
}

// ListProducts pages through active products, optionally narrowed to those
// priced in a region and/or rental period.
func (s *service) ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error) {
	if err := s.ensureFilterTargets(ctx, input.RegionID, input.RentalPeriodID); err != nil {
		return nil, err
	}

	params := input.Pagination.Normalize()
	rows, total, err := s.repo.ListActiveProducts(ctx, input.pricingFilter(), params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}

	items := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		items = append(items, *NewProductDTO(&rows[i]))
	}
	page := pagination.NewPage(items, params, total)
	return &page, nil
}

// GetProduct returns the product priced for the requested region, or for the
// first active region when none is given.
func (s *service) GetProduct(ctx context.Context, productID uuid.UUID, regionID *uuid.UUID) (*ProductDetailDTO, error) {
	if _, err := s.loadProduct(ctx, s.repo, productID); err != nil {
		return nil, err
	}

	region, err := s.resolveRegion(ctx, regionID)
	if err != nil {
		return nil, err
	}

	product, err := s.repo.GetProductDetail(ctx, productID, region.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product detail")
	}
	return &ProductDetailDTO{
		Product: NewProductDTO(product),
		Region:  regions.NewRegionDTO(region),
	}, nil
}

func (s *service) ListProductPricing(ctx context.Context, productID uuid.UUID, input ListPricingInput) ([]pricing.PricingSummary, error) {
	if _, err := s.loadProduct(ctx, s.repo, productID); err != nil {
		return nil, err
	}
	if err := s.ensureFilterTargets(ctx, input.RegionID, input.RentalPeriodID); err != nil {
		return nil, err
	}

	rows, err := s.pricingRepo.ListActiveForProduct(ctx, productID, pricing.Filter{
		RegionID:       input.RegionID,
		RentalPeriodID: input.RentalPeriodID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list product pricing")
	}

	out := make([]pricing.PricingSummary, 0, len(rows))
	for i := range rows {
		out = append(out, pricing.NewPricingSummary(&rows[i]))
	}
	return out, nil
}

// CreateProduct creates the product and links its attribute values.
func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	valueIDs := uniqueIDs(input.AttributeValueIDs)
	product := &models.Product{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		SKU:         strings.TrimSpace(input.SKU),
		IsActive:    true,
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	var created *models.Product
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := ensureSKUFree(ctx, txRepo, product.SKU, uuid.Nil); err != nil {
			return err
		}
		if err := ensureAttributeValues(ctx, txRepo, valueIDs); err != nil {
			return err
		}
		if _, err := txRepo.CreateProduct(ctx, product); err != nil {
			return err
		}
		if err := txRepo.ReplaceAttributeValues(ctx, product.ID, valueIDs); err != nil {
			return err
		}
		loaded, err := txRepo.FindWithAttributes(ctx, product.ID)
		if err != nil {
			return err
		}
		created = loaded
		return nil
	}); err != nil {
		return nil, mapWriteError(err, "create product")
	}
	return NewProductDTO(created), nil
}

// UpdateProduct applies the provided fields and optionally replaces the
// attribute value links.
func (s *service) UpdateProduct(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	var updated *models.Product
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		product, err := s.loadProduct(ctx, txRepo, productID)
		if err != nil {
			return err
		}

		if input.SKU != nil {
			sku := strings.TrimSpace(*input.SKU)
			if sku != product.SKU {
				if err := ensureSKUFree(ctx, txRepo, sku, product.ID); err != nil {
					return err
				}
			}
		}
		applyUpdateToProduct(product, input)
		if _, err := txRepo.UpdateProduct(ctx, product); err != nil {
			return err
		}

		if input.AttributeValueIDs != nil {
			valueIDs := uniqueIDs(*input.AttributeValueIDs)
			if err := ensureAttributeValues(ctx, txRepo, valueIDs); err != nil {
				return err
			}
			if err := txRepo.ReplaceAttributeValues(ctx, product.ID, valueIDs); err != nil {
				return err
			}
		}

		loaded, err := txRepo.FindWithAttributes(ctx, product.ID)
		if err != nil {
			return err
		}
		updated = loaded
		return nil
	}); err != nil {
		return nil, mapWriteError(err, "update product")
	}
	return NewProductDTO(updated), nil
}

// DeleteProduct removes a product that no rental references.
func (s *service) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if _, err := s.loadProduct(ctx, txRepo, productID); err != nil {
			return err
		}
		return guard.GuardedDelete(ctx, txRepo, productID, productInUseMsg, func(ctx context.Context) error {
			return txRepo.DeleteProduct(ctx, productID)
		})
	})
	if err != nil && pkgerrors.As(err) == nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return err
}

func (s *service) loadProduct(ctx context.Context, repo *Repository, productID uuid.UUID) (*models.Product, error) {
	product, err := repo.FindByID(ctx, productID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

func (s *service) resolveRegion(ctx context.Context, regionID *uuid.UUID) (*models.Region, error) {
	var (
		region *models.Region
		err    error
	)
	if regionID != nil {
		region, err = s.regionRepo.FindByID(ctx, *regionID)
	} else {
		region, err = s.regionRepo.FindFirstActive(ctx)
	}
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeInvalidRegion, invalidRegionMsg)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve region")
	}
	return region, nil
}

// ensureFilterTargets rejects filters naming a region or rental period that
// does not exist.
func (s *service) ensureFilterTargets(ctx context.Context, regionID, rentalPeriodID *uuid.UUID) error {
	if regionID != nil {
		if _, err := s.regionRepo.FindByID(ctx, *regionID); err != nil {
			if db.IsNotFound(err) {
				return pkgerrors.New(pkgerrors.CodeValidation, invalidRegionMsg).
					WithDetails(map[string]string{"region_id": invalidRegionMsg})
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load region")
		}
	}
	if rentalPeriodID != nil {
		if _, err := s.periodRepo.FindByID(ctx, *rentalPeriodID); err != nil {
			if db.IsNotFound(err) {
				return pkgerrors.New(pkgerrors.CodeValidation, invalidRentalPeriodMsg).
					WithDetails(map[string]string{"rental_period_id": invalidRentalPeriodMsg})
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load rental period")
		}
	}
	return nil
}

func ensureSKUFree(ctx context.Context, repo *Repository, sku string, excludeID uuid.UUID) error {
	taken, err := repo.SKUTaken(ctx, sku, excludeID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check sku")
	}
	if taken {
		return duplicateSKU()
	}
	return nil
}

func ensureAttributeValues(ctx context.Context, repo *Repository, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	found, err := repo.CountAttributeValues(ctx, ids)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check attribute values")
	}
	if found != int64(len(ids)) {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails(map[string]string{"attribute_value_ids": invalidValuesMsg})
	}
	return nil
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func applyUpdateToProduct(product *models.Product, input UpdateProductInput) {
	if input.Name != nil {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.SKU != nil {
		product.SKU = strings.TrimSpace(*input.SKU)
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
}

func duplicateSKU() error {
	return pkgerrors.New(pkgerrors.CodeDuplicateValue, skuTakenMsg).WithDetails(map[string]string{"sku": skuTakenMsg})
}

func mapWriteError(err error, step string) error {
	if pkgerrors.As(err) != nil {
		return err
	}
	if db.IsUniqueViolation(err, "ux_products_sku") {
		return duplicateSKU()
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, step)
}
