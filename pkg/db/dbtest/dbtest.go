// Package dbtest opens throwaway sqlite databases carrying the full schema
// for repository and service tests.
package dbtest

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/angelmondragon/rentalhub-backend/pkg/db"
	"github.com/angelmondragon/rentalhub-backend/pkg/db/models"
	"github.com/angelmondragon/rentalhub-backend/pkg/enums"
	"github.com/angelmondragon/rentalhub-backend/pkg/types"
)

// Open returns a client over a private in-memory database with every model
// migrated. The database is dropped when the test finishes.
func Open(t testing.TB) *db.Client {
	t.Helper()

	name := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '_'
	}, t.Name())
	dsn := fmt.Sprintf("file:%s_%s?mode=memory&cache=shared&_foreign_keys=1", name, uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("sqlite handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := conn.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db.Wrap(conn)
}

// Fixtures creates rows with sensible defaults for tests.
type Fixtures struct {
	t    testing.TB
	conn *gorm.DB
}

// NewFixtures binds fixture helpers to the client.
func NewFixtures(t testing.TB, client *db.Client) *Fixtures {
	return &Fixtures{t: t, conn: client.DB().WithContext(context.Background())}
}

func (f *Fixtures) create(value any) {
	f.t.Helper()
	if err := f.conn.Create(value).Error; err != nil {
		f.t.Fatalf("create %T: %v", value, err)
	}
}

func (f *Fixtures) Region(code string, active bool) *models.Region {
	f.t.Helper()
	region := &models.Region{Name: "Region " + code, Code: code, IsActive: active}
	f.create(region)
	return region
}

func (f *Fixtures) RentalPeriod(name string, days int, active bool) *models.RentalPeriod {
	f.t.Helper()
	period := &models.RentalPeriod{Name: name, Days: days, IsActive: active}
	f.create(period)
	return period
}

func (f *Fixtures) Attribute(name string, attrType enums.AttributeType) *models.Attribute {
	f.t.Helper()
	attr := &models.Attribute{Name: name, Type: attrType, IsFilterable: true}
	f.create(attr)
	return attr
}

func (f *Fixtures) AttributeValue(attributeID uuid.UUID, value string) *models.AttributeValue {
	f.t.Helper()
	val := &models.AttributeValue{AttributeID: attributeID, Value: value}
	f.create(val)
	return val
}

func (f *Fixtures) Product(sku string, active bool, values ...*models.AttributeValue) *models.Product {
	f.t.Helper()
	product := &models.Product{Name: "Product " + sku, SKU: sku, IsActive: active}
	f.create(product)
	for _, value := range values {
		f.create(&models.ProductAttributeValue{ProductID: product.ID, AttributeValueID: value.ID})
	}
	return product
}

func (f *Fixtures) Pricing(productID, regionID, periodID uuid.UUID, price string, active bool) *models.ProductPricing {
	f.t.Helper()
	row := &models.ProductPricing{
		ProductID:      productID,
		RegionID:       regionID,
		RentalPeriodID: periodID,
		Price:          decimal.RequireFromString(price),
		IsActive:       active,
	}
	f.create(row)
	return row
}

// Rental inserts a booking directly, bypassing the booking rules.
func (f *Fixtures) Rental(pricing *models.ProductPricing, start time.Time, days int, status enums.RentalStatus) *models.RentalTransaction {
	f.t.Helper()
	row := &models.RentalTransaction{
		ProductID:       pricing.ProductID,
		RegionID:        pricing.RegionID,
		RentalPeriodID:  pricing.RentalPeriodID,
		CustomerName:    "Jane Renter",
		CustomerEmail:   "jane@example.com",
		CustomerAddress: "1 Main St",
		Price:           pricing.Price,
		Status:          status,
	}
	row.StartDate = types.DateOf(start)
	row.EndDate = row.StartDate.AddDays(days)
	f.create(row)
	return row
}
