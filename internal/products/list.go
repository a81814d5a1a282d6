package products

import (
	"github.com/angelmondragon/rentalhub-backend/internal/pricing"
	"github.com/angelmondragon/rentalhub-backend/pkg/pagination"
	"github.com/google/uuid"
)

// ListProductsInput captures the inputs needed to paginate/filter the catalog.
// A region or rental period narrows the listing to products with an active
// price there.
type ListProductsInput struct {
	RegionID       *uuid.UUID
	RentalPeriodID *uuid.UUID
	Pagination     pagination.Params
}

func (in ListProductsInput) pricingFilter() pricing.Filter {
	return pricing.Filter{RegionID: in.RegionID, RentalPeriodID: in.RentalPeriodID}
}

// ListPricingInput filters the pricing listing of one product.
type ListPricingInput struct {
	RegionID       *uuid.UUID
	RentalPeriodID *uuid.UUID
}

// ProductListResult is one page of the catalog.
type ProductListResult = pagination.Page[ProductDTO]
