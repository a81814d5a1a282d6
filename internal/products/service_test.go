package products

import (
	"context"
	"testing"
	"time"

	"github.com/angelmondragon/rentalhub-backend/internal/pricing"
	"github.com/angelmondragon/rentalhub-backend/internal/regions"
	"github.com/angelmondragon/rentalhub-backend/internal/rentalperiods"
	"github.com/angelmondragon/rentalhub-backend/pkg/db/dbtest"
	"github.com/angelmondragon/rentalhub-backend/pkg/db/models"
	"github.com/angelmondragon/rentalhub-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/rentalhub-backend/pkg/errors"
	"github.com/angelmondragon/rentalhub-backend/pkg/pagination"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (Service, *dbtest.Fixtures) {
	t.Helper()
	client := dbtest.Open(t)
	conn := client.DB()
	svc, err := NewService(
		NewRepository(conn),
		client,
		regions.NewRepository(conn),
		rentalperiods.NewRepository(conn),
		pricing.NewRepository(conn),
	)
	require.NoError(t, err)
	return svc, dbtest.NewFixtures(t, client)
}

func stringPtr(v string) *string { return &v }
func boolPtr(v bool) *bool       { return &v }

func TestNewServiceRequiresDependencies(t *testing.T) {
	if _, err := NewService(nil, nil, nil, nil, nil); err == nil {
		t.Fatal("expected error for missing repository")
	}
}

func TestListProductsFiltersByActivePricing(t *testing.T) {
	svc, fx := newTestService(t)
	ctx := context.Background()
	na := fx.Region("NA", true)
	eu := fx.Region("EU", true)
	weekly := fx.RentalPeriod("Weekly", 7, true)
	monthly := fx.RentalPeriod("Monthly", 30, true)

	pricedNA := fx.Product("SKU-NA", true)
	fx.Pricing(pricedNA.ID, na.ID, weekly.ID, "300.00", true)
	fx.Pricing(pricedNA.ID, na.ID, monthly.ID, "900.00", true)
	fx.Pricing(pricedNA.ID, eu.ID, weekly.ID, "360.00", true)

	inactivePrice := fx.Product("SKU-OFF", true)
	fx.Pricing(inactivePrice.ID, na.ID, weekly.ID, "100.00", false)

	inactiveProduct := fx.Product("SKU-GONE", false)
	fx.Pricing(inactiveProduct.ID, na.ID, weekly.ID, "100.00", true)

	fx.Product("SKU-BARE", true)

	all, err := svc.ListProducts(ctx, ListProductsInput{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, all.Total)
	for _, item := range all.Data {
		assert.Empty(t, item.Pricing)
	}

	inNA, err := svc.ListProducts(ctx, ListProductsInput{RegionID: &na.ID})
	require.NoError(t, err)
	require.Len(t, inNA.Data, 1)
	assert.EqualValues(t, 1, inNA.Total)
	assert.Equal(t, pricedNA.ID, inNA.Data[0].ID)
	assert.Len(t, inNA.Data[0].Pricing, 2)
	for _, row := range inNA.Data[0].Pricing {
		require.NotNil(t, row.Region)
		assert.Equal(t, "NA", row.Region.Code)
		assert.NotNil(t, row.RentalPeriod)
	}

	narrowed, err := svc.ListProducts(ctx, ListProductsInput{RegionID: &eu.ID, RentalPeriodID: &weekly.ID})
	require.NoError(t, err)
	require.Len(t, narrowed.Data, 1)
	require.Len(t, narrowed.Data[0].Pricing, 1)
	assert.Equal(t, "360.00", narrowed.Data[0].Pricing[0].Price)
}

func TestListProductsRejectsUnknownFilters(t *testing.T) {
	svc, _ := newTestService(t)
	missing := uuid.New()

	_, err := svc.ListProducts(context.Background(), ListProductsInput{RegionID: &missing})
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
	assert.Equal(t, invalidRegionMsg, pkgerrors.As(err).Message())

	_, err = svc.ListProducts(context.Background(), ListProductsInput{RentalPeriodID: &missing})
	require.Error(t, err)
	assert.Equal(t, invalidRentalPeriodMsg, pkgerrors.As(err).Message())
}

func TestListProductsPaginates(t *testing.T) {
	svc, fx := newTestService(t)
	for i := 0; i < pagination.PerPage+2; i++ {
		fx.Product(uuid.NewString(), true)
	}

	first, err := svc.ListProducts(context.Background(), ListProductsInput{})
	require.NoError(t, err)
	assert.Len(t, first.Data, pagination.PerPage)
	assert.Equal(t, 2, first.LastPage)

	second, err := svc.ListProducts(context.Background(), ListProductsInput{Pagination: pagination.Params{Page: 2}})
	require.NoError(t, err)
	assert.Len(t, second.Data, 2)
	require.NotNil(t, second.From)
	assert.Equal(t, pagination.PerPage+1, *second.From)
}

func TestGetProductResolvesRegion(t *testing.T) {
	svc, fx := newTestService(t)
	ctx := context.Background()
	color := fx.Attribute("Color", enums.AttributeTypeSelect)
	red := fx.AttributeValue(color.ID, "Red")
	product := fx.Product("SKU-1", true, red)

	_, err := svc.GetProduct(ctx, product.ID, nil)
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeInvalidRegion))

	closed := fx.Region("EU", false)
	na := fx.Region("NA", true)
	weekly := fx.RentalPeriod("Weekly", 7, true)
	fx.Pricing(product.ID, na.ID, weekly.ID, "300.00", true)
	fx.Pricing(product.ID, closed.ID, weekly.ID, "360.00", true)

	detail, err := svc.GetProduct(ctx, product.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, na.ID, detail.Region.ID)
	require.Len(t, detail.Product.Pricing, 1)
	assert.Equal(t, "300.00", detail.Product.Pricing[0].Price)
	require.NotNil(t, detail.Product.Pricing[0].RentalPeriod)
	require.Len(t, detail.Product.AttributeValues, 1)
	require.NotNil(t, detail.Product.AttributeValues[0].Attribute)
	assert.Equal(t, "Color", detail.Product.AttributeValues[0].Attribute.Name)

	explicit, err := svc.GetProduct(ctx, product.ID, &closed.ID)
	require.NoError(t, err)
	assert.Equal(t, closed.ID, explicit.Region.ID)

	missing := uuid.New()
	_, err = svc.GetProduct(ctx, product.ID, &missing)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeInvalidRegion))

	_, err = svc.GetProduct(ctx, uuid.New(), nil)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
}

func TestListProductPricing(t *testing.T) {
	svc, fx := newTestService(t)
	ctx := context.Background()
	product := fx.Product("SKU-1", true)
	na := fx.Region("NA", true)
	weekly := fx.RentalPeriod("Weekly", 7, true)
	monthly := fx.RentalPeriod("Monthly", 30, true)
	row := fx.Pricing(product.ID, na.ID, weekly.ID, "300.00", true)
	fx.Pricing(product.ID, na.ID, monthly.ID, "900.00", false)

	rows, err := svc.ListProductPricing(ctx, product.ID, ListPricingInput{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, row.ID, rows[0].ID)
	assert.Equal(t, "NA", rows[0].Region.Code)
	assert.Equal(t, 7, rows[0].RentalPeriod.Days)
	assert.Equal(t, "300.00", rows[0].Price)

	none, err := svc.ListProductPricing(ctx, product.ID, ListPricingInput{RentalPeriodID: &monthly.ID})
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = svc.ListProductPricing(ctx, uuid.New(), ListPricingInput{})
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
}

func TestCreateProductLinksAttributeValues(t *testing.T) {
	svc, fx := newTestService(t)
	ctx := context.Background()
	color := fx.Attribute("Color", enums.AttributeTypeSelect)
	red := fx.AttributeValue(color.ID, "Red")
	blue := fx.AttributeValue(color.ID, "Blue")

	created, err := svc.CreateProduct(ctx, CreateProductInput{
		Name:              " Camera ",
		Description:       stringPtr("Mirrorless body"),
		SKU:               "CAM-1",
		AttributeValueIDs: []uuid.UUID{red.ID, blue.ID, red.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, "Camera", created.Name)
	assert.True(t, created.IsActive)
	assert.Len(t, created.AttributeValues, 2)

	_, err = svc.CreateProduct(ctx, CreateProductInput{Name: "Other", SKU: "CAM-1"})
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeDuplicateValue))

	_, err = svc.CreateProduct(ctx, CreateProductInput{Name: "Other", SKU: "CAM-2", AttributeValueIDs: []uuid.UUID{uuid.New()}})
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
	assert.Equal(t, map[string]string{"attribute_value_ids": invalidValuesMsg}, pkgerrors.As(err).Details())
}

func TestUpdateProduct(t *testing.T) {
	svc, fx := newTestService(t)
	ctx := context.Background()
	color := fx.Attribute("Color", enums.AttributeTypeSelect)
	red := fx.AttributeValue(color.ID, "Red")
	blue := fx.AttributeValue(color.ID, "Blue")
	product := fx.Product("SKU-1", true, red)
	fx.Product("SKU-2", true)

	keep, err := svc.UpdateProduct(ctx, product.ID, UpdateProductInput{Name: stringPtr("Renamed")})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", keep.Name)
	require.Len(t, keep.AttributeValues, 1)
	assert.Equal(t, red.ID, keep.AttributeValues[0].ID)

	swapped, err := svc.UpdateProduct(ctx, product.ID, UpdateProductInput{
		IsActive:          boolPtr(false),
		AttributeValueIDs: &[]uuid.UUID{blue.ID},
	})
	require.NoError(t, err)
	assert.False(t, swapped.IsActive)
	require.Len(t, swapped.AttributeValues, 1)
	assert.Equal(t, blue.ID, swapped.AttributeValues[0].ID)

	_, err = svc.UpdateProduct(ctx, product.ID, UpdateProductInput{SKU: stringPtr("SKU-2")})
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeDuplicateValue))

	_, err = svc.UpdateProduct(ctx, uuid.New(), UpdateProductInput{Name: stringPtr("x")})
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
}

func TestDeleteProductGuardedByRentals(t *testing.T) {
	svc, fx := newTestService(t)
	ctx := context.Background()
	na := fx.Region("NA", true)
	weekly := fx.RentalPeriod("Weekly", 7, true)
	booked := fx.Product("SKU-1", true)
	row := fx.Pricing(booked.ID, na.ID, weekly.ID, "300.00", true)
	fx.Rental(row, time.Now().AddDate(0, 0, 3), weekly.Days, enums.RentalStatusConfirmed)

	err := svc.DeleteProduct(ctx, booked.ID)
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeInUse))
	assert.Equal(t, productInUseMsg, pkgerrors.As(err).Message())

	color := fx.Attribute("Color", enums.AttributeTypeSelect)
	red := fx.AttributeValue(color.ID, "Red")
	free := fx.Product("SKU-2", true, red)
	fx.Pricing(free.ID, na.ID, weekly.ID, "10.00", true)
	require.NoError(t, svc.DeleteProduct(ctx, free.ID))

	_, err = svc.GetProduct(ctx, free.ID, nil)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
}

func TestUniqueIDs(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	got := uniqueIDs([]uuid.UUID{a, b, a})
	if len(got) != 2 || got[0] != a || got[1] != b {
		t.Fatalf("unexpected ids %v", got)
	}
}

func TestApplyUpdateToProductTrims(t *testing.T) {
	product := &models.Product{SKU: "old", Name: "old"}
	applyUpdateToProduct(product, UpdateProductInput{SKU: stringPtr("  new-sku "), Name: stringPtr(" New ")})
	if product.SKU != "new-sku" {
		t.Fatalf("expected trimmed sku, got %s", product.SKU)
	}
	if product.Name != "New" {
		t.Fatalf("expected trimmed name, got %s", product.Name)
	}
}
