package pricing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/rentalhub-backend/pkg/db"
	"github.com/angelmondragon/rentalhub-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/rentalhub-backend/pkg/errors"
)

const (
	duplicateTripleMsg = "Pricing for this product-region-period combination already exists"
	duplicateNestedMsg = "Pricing for this region and rental period already exists"
	notOwnedMsg        = "Pricing does not belong to this product"
	noPricingMsg       = "No pricing available for this product in the selected region and rental period"
)

var maxPrice = decimal.RequireFromString("99999999.99")

// Service manages pricing rows and resolves the price of a booking.
type Service interface {
	ResolvePrice(ctx context.Context, productID, regionID, rentalPeriodID uuid.UUID) (*models.ProductPricing, error)

	Create(ctx context.Context, input CreatePricingInput) (*PricingDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdatePricingInput) (*PricingDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error

	CreateForProduct(ctx context.Context, productID uuid.UUID, input ProductPricingInput) (*PricingDTO, error)
	GetForProduct(ctx context.Context, productID, pricingID uuid.UUID) (*PricingDTO, error)
	UpdateForProduct(ctx context.Context, productID, pricingID uuid.UUID, input UpdateProductPricingInput) (*PricingDTO, error)
	DeleteForProduct(ctx context.Context, productID, pricingID uuid.UUID) error
}

// CreatePricingInput holds the validated payload for POST /v1/pricing.
type CreatePricingInput struct {
	ProductID      uuid.UUID
	RegionID       uuid.UUID
	RentalPeriodID uuid.UUID
	Price          decimal.Decimal
	IsActive       *bool
}

// UpdatePricingInput only carries the mutable price fields.
type UpdatePricingInput struct {
	Price    *decimal.Decimal
	IsActive *bool
}

// ProductPricingInput creates a row under a product taken from the route.
type ProductPricingInput struct {
	RegionID       uuid.UUID
	RentalPeriodID uuid.UUID
	Price          decimal.Decimal
	IsActive       *bool
}

// UpdateProductPricingInput may also move the row to another region or period.
type UpdateProductPricingInput struct {
	RegionID       *uuid.UUID
	RentalPeriodID *uuid.UUID
	Price          *decimal.Decimal
	IsActive       *bool
}

type service struct {
	repo     *Repository
	dbClient *db.Client
}

// NewService constructs a pricing service instance.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("pricing repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

// Resolve looks up the active price of the triple through repo, which may be
// bound to a caller's transaction. The rental period is preloaded.
func Resolve(ctx context.Context, repo *Repository, productID, regionID, rentalPeriodID uuid.UUID) (*models.ProductPricing, error) {
	row, err := repo.FindActive(ctx, productID, regionID, rentalPeriodID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNoPricingAvailable, noPricingMsg)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve pricing")
	}
	return row, nil
}

func (s *service) ResolvePrice(ctx context.Context, productID, regionID, rentalPeriodID uuid.UUID) (*models.ProductPricing, error) {
	return Resolve(ctx, s.repo, productID, regionID, rentalPeriodID)
}

func (s *service) Create(ctx context.Context, input CreatePricingInput) (*PricingDTO, error) {
	price, err := normalizePrice(input.Price)
	if err != nil {
		return nil, err
	}
	row := &models.ProductPricing{
		ProductID:      input.ProductID,
		RegionID:       input.RegionID,
		RentalPeriodID: input.RentalPeriodID,
		Price:          price,
		IsActive:       true,
	}
	if input.IsActive != nil {
		row.IsActive = *input.IsActive
	}

	var created *models.ProductPricing
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := ensureReferences(ctx, txRepo, &row.ProductID, &row.RegionID, &row.RentalPeriodID); err != nil {
			return err
		}
		if err := ensureTripleFree(ctx, txRepo, row, duplicateTripleMsg); err != nil {
			return err
		}
		if err := txRepo.Create(ctx, row); err != nil {
			return err
		}
		created, err = reload(ctx, txRepo, row.ID)
		return err
	}); err != nil {
		return nil, mapWriteError(err, "insert pricing", duplicateTripleMsg)
	}
	return NewPricingDTO(created), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdatePricingInput) (*PricingDTO, error) {
	var updated *models.ProductPricing
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		row, err := load(ctx, txRepo, id)
		if err != nil {
			return err
		}
		if err := applyPriceFields(row, input.Price, input.IsActive); err != nil {
			return err
		}
		if err := txRepo.Update(ctx, row); err != nil {
			return err
		}
		updated, err = reload(ctx, txRepo, row.ID)
		return err
	}); err != nil {
		return nil, mapWriteError(err, "update pricing", duplicateTripleMsg)
	}
	return NewPricingDTO(updated), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if _, err := load(ctx, txRepo, id); err != nil {
			return err
		}
		if err := txRepo.Delete(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete pricing")
		}
		return nil
	})
}

func (s *service) CreateForProduct(ctx context.Context, productID uuid.UUID, input ProductPricingInput) (*PricingDTO, error) {
	price, err := normalizePrice(input.Price)
	if err != nil {
		return nil, err
	}
	row := &models.ProductPricing{
		ProductID:      productID,
		RegionID:       input.RegionID,
		RentalPeriodID: input.RentalPeriodID,
		Price:          price,
		IsActive:       true,
	}
	if input.IsActive != nil {
		row.IsActive = *input.IsActive
	}

	var created *models.ProductPricing
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := ensureProduct(ctx, txRepo, productID); err != nil {
			return err
		}
		if err := ensureReferences(ctx, txRepo, nil, &row.RegionID, &row.RentalPeriodID); err != nil {
			return err
		}
		if err := ensureTripleFree(ctx, txRepo, row, duplicateNestedMsg); err != nil {
			return err
		}
		if err := txRepo.Create(ctx, row); err != nil {
			return err
		}
		created, err = reload(ctx, txRepo, row.ID)
		return err
	}); err != nil {
		return nil, mapWriteError(err, "insert pricing", duplicateNestedMsg)
	}
	return NewPricingDTO(created), nil
}

func (s *service) GetForProduct(ctx context.Context, productID, pricingID uuid.UUID) (*PricingDTO, error) {
	if err := ensureProduct(ctx, s.repo, productID); err != nil {
		return nil, err
	}
	row, err := loadOwned(ctx, s.repo, productID, pricingID)
	if err != nil {
		return nil, err
	}
	return NewPricingDTO(row), nil
}

func (s *service) UpdateForProduct(ctx context.Context, productID, pricingID uuid.UUID, input UpdateProductPricingInput) (*PricingDTO, error) {
	var updated *models.ProductPricing
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := ensureProduct(ctx, txRepo, productID); err != nil {
			return err
		}
		row, err := loadOwned(ctx, txRepo, productID, pricingID)
		if err != nil {
			return err
		}
		if err := ensureReferences(ctx, txRepo, nil, input.RegionID, input.RentalPeriodID); err != nil {
			return err
		}

		moved := false
		if input.RegionID != nil && *input.RegionID != row.RegionID {
			row.RegionID = *input.RegionID
			moved = true
		}
		if input.RentalPeriodID != nil && *input.RentalPeriodID != row.RentalPeriodID {
			row.RentalPeriodID = *input.RentalPeriodID
			moved = true
		}
		if moved {
			row.Region, row.RentalPeriod = nil, nil
			if err := ensureTripleFree(ctx, txRepo, row, duplicateNestedMsg); err != nil {
				return err
			}
		}
		if err := applyPriceFields(row, input.Price, input.IsActive); err != nil {
			return err
		}
		if err := txRepo.Update(ctx, row); err != nil {
			return err
		}
		updated, err = reload(ctx, txRepo, row.ID)
		return err
	}); err != nil {
		return nil, mapWriteError(err, "update pricing", duplicateNestedMsg)
	}
	return NewPricingDTO(updated), nil
}

func (s *service) DeleteForProduct(ctx context.Context, productID, pricingID uuid.UUID) error {
	return s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := ensureProduct(ctx, txRepo, productID); err != nil {
			return err
		}
		if _, err := loadOwned(ctx, txRepo, productID, pricingID); err != nil {
			return err
		}
		if err := txRepo.Delete(ctx, pricingID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete pricing")
		}
		return nil
	})
}

func load(ctx context.Context, repo *Repository, id uuid.UUID) (*models.ProductPricing, error) {
	row, err := repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "pricing not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load pricing")
	}
	return row, nil
}

func loadOwned(ctx context.Context, repo *Repository, productID, pricingID uuid.UUID) (*models.ProductPricing, error) {
	row, err := load(ctx, repo, pricingID)
	if err != nil {
		return nil, err
	}
	if row.ProductID != productID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, notOwnedMsg)
	}
	return row, nil
}

func reload(ctx context.Context, repo *Repository, id uuid.UUID) (*models.ProductPricing, error) {
	row, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload pricing")
	}
	return row, nil
}

func ensureProduct(ctx context.Context, repo *Repository, productID uuid.UUID) error {
	ok, err := repo.ProductExists(ctx, productID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return nil
}

// ensureReferences validates the foreign keys present in a body. Nil ids are skipped.
func ensureReferences(ctx context.Context, repo *Repository, productID, regionID, rentalPeriodID *uuid.UUID) error {
	details := map[string]string{}
	checks := []struct {
		field string
		id    *uuid.UUID
		probe func(context.Context, uuid.UUID) (bool, error)
	}{
		{"product_id", productID, repo.ProductExists},
		{"region_id", regionID, repo.RegionExists},
		{"rental_period_id", rentalPeriodID, repo.RentalPeriodExists},
	}
	for _, check := range checks {
		if check.id == nil {
			continue
		}
		ok, err := check.probe(ctx, *check.id)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check "+check.field)
		}
		if !ok {
			details[check.field] = invalidReferenceMsg(check.field)
		}
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return nil
}

func ensureTripleFree(ctx context.Context, repo *Repository, row *models.ProductPricing, message string) error {
	taken, err := repo.TripleTaken(ctx, row.ProductID, row.RegionID, row.RentalPeriodID, row.ID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check pricing triple")
	}
	if taken {
		return pkgerrors.New(pkgerrors.CodeDuplicatePricing, message)
	}
	return nil
}

func applyPriceFields(row *models.ProductPricing, price *decimal.Decimal, isActive *bool) error {
	if price != nil {
		normalized, err := normalizePrice(*price)
		if err != nil {
			return err
		}
		row.Price = normalized
	}
	if isActive != nil {
		row.IsActive = *isActive
	}
	return nil
}

// normalizePrice rounds to cents and enforces the numeric(10,2) range.
func normalizePrice(price decimal.Decimal) (decimal.Decimal, error) {
	if price.IsNegative() {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails(map[string]string{"price": "The price field must be at least 0."})
	}
	rounded := price.Round(2)
	if rounded.GreaterThan(maxPrice) {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails(map[string]string{"price": "The price field must not be greater than " + maxPrice.StringFixed(2) + "."})
	}
	return rounded, nil
}

func invalidReferenceMsg(field string) string {
	switch field {
	case "product_id":
		return "The selected product id is invalid."
	case "region_id":
		return "The selected region id is invalid."
	default:
		return "The selected rental period id is invalid."
	}
}

func mapWriteError(err error, step, duplicateMsg string) error {
	if pkgerrors.As(err) != nil {
		return err
	}
	if db.IsUniqueViolation(err, models.PricingTripleIndex) {
		return pkgerrors.Wrap(pkgerrors.CodeDuplicatePricing, err, duplicateMsg)
	}
	if db.IsForeignKeyViolation(err) {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, step)
}
