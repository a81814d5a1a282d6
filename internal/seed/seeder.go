// Package seed loads the demo catalog: regions, rental periods, attributes,
// products and a price for every product, region and period combination.
package seed

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/angelmondragon/rentalhub-backend/pkg/db"
	"github.com/angelmondragon/rentalhub-backend/pkg/db/models"
)

// Report counts rows inserted by a run. Rows that already existed are not
// counted and are left untouched.
type Report struct {
	Regions         int
	RentalPeriods   int
	Attributes      int
	AttributeValues int
	Products        int
	Pricing         int
}

// Total is the number of inserted rows.
func (r Report) Total() int {
	return r.Regions + r.RentalPeriods + r.Attributes + r.AttributeValues + r.Products + r.Pricing
}

// Seeder writes a Catalog. Reruns are no-ops because every row is matched on
// its natural key first.
type Seeder struct {
	dbClient *db.Client
	catalog  Catalog
}

// NewSeeder validates the catalog and binds it to the database.
func NewSeeder(dbClient *db.Client, catalog Catalog) (*Seeder, error) {
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if err := catalog.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return &Seeder{dbClient: dbClient, catalog: catalog}, nil
}

// Run seeds everything in a single transaction.
func (s *Seeder) Run(ctx context.Context) (Report, error) {
	var report Report
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		report = Report{}
		run := &seedRun{tx: tx, report: &report}

		regions, err := run.regions(s.catalog.Regions)
		if err != nil {
			return err
		}
		periods, err := run.periods(s.catalog.Periods)
		if err != nil {
			return err
		}
		values, err := run.attributes(s.catalog.Attributes)
		if err != nil {
			return err
		}
		for _, p := range s.catalog.Products {
			product, err := run.product(p, values)
			if err != nil {
				return err
			}
			if err := run.pricing(product, p, regions, periods); err != nil {
				return err
			}
		}
		return nil
	})
	return report, err
}

type seedRun struct {
	tx     *gorm.DB
	report *Report
}

type seededRegion struct {
	row  *models.Region
	seed RegionSeed
}

// ensureRow loads the row matching key's non-zero fields into row, inserting
// row as given when none exists.
func ensureRow[T any](tx *gorm.DB, key T, row *T) (bool, error) {
	var existing T
	err := tx.Where(&key).Take(&existing).Error
	switch {
	case err == nil:
		*row = existing
		return false, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return true, tx.Create(row).Error
	default:
		return false, err
	}
}

func count(n *int, created bool) {
	if created {
		*n++
	}
}

func (r *seedRun) regions(seeds []RegionSeed) ([]seededRegion, error) {
	out := make([]seededRegion, 0, len(seeds))
	for _, s := range seeds {
		row := &models.Region{Code: s.Code, Name: s.Name, IsActive: true}
		created, err := ensureRow(r.tx, models.Region{Code: s.Code}, row)
		if err != nil {
			return nil, fmt.Errorf("seed region %s: %w", s.Code, err)
		}
		count(&r.report.Regions, created)
		out = append(out, seededRegion{row: row, seed: s})
	}
	return out, nil
}

func (r *seedRun) periods(seeds []PeriodSeed) ([]*models.RentalPeriod, error) {
	out := make([]*models.RentalPeriod, 0, len(seeds))
	for _, s := range seeds {
		row := &models.RentalPeriod{Name: s.Name, Days: s.Days, IsActive: true}
		created, err := ensureRow(r.tx, models.RentalPeriod{Days: s.Days}, row)
		if err != nil {
			return nil, fmt.Errorf("seed rental period %s: %w", s.Name, err)
		}
		count(&r.report.RentalPeriods, created)
		out = append(out, row)
	}
	return out, nil
}

// attributes returns value rows keyed by attribute name, then value.
func (r *seedRun) attributes(seeds []AttributeSeed) (map[string]map[string]*models.AttributeValue, error) {
	out := make(map[string]map[string]*models.AttributeValue, len(seeds))
	for _, s := range seeds {
		attr := &models.Attribute{
			Name:         s.Name,
			Type:         s.Type,
			IsFilterable: s.IsFilterable,
			IsRequired:   s.IsRequired,
		}
		created, err := ensureRow(r.tx, models.Attribute{Name: s.Name}, attr)
		if err != nil {
			return nil, fmt.Errorf("seed attribute %s: %w", s.Name, err)
		}
		count(&r.report.Attributes, created)

		byValue := make(map[string]*models.AttributeValue, len(s.Values))
		for _, v := range s.Values {
			row := &models.AttributeValue{AttributeID: attr.ID, Value: v}
			created, err := ensureRow(r.tx, models.AttributeValue{AttributeID: attr.ID, Value: v}, row)
			if err != nil {
				return nil, fmt.Errorf("seed %s value %s: %w", s.Name, v, err)
			}
			count(&r.report.AttributeValues, created)
			byValue[v] = row
		}
		out[s.Name] = byValue
	}
	return out, nil
}

func (r *seedRun) product(s ProductSeed, values map[string]map[string]*models.AttributeValue) (*models.Product, error) {
	description := s.Description
	row := &models.Product{SKU: s.SKU, Name: s.Name, Description: &description, IsActive: true}
	created, err := ensureRow(r.tx, models.Product{SKU: s.SKU}, row)
	if err != nil {
		return nil, fmt.Errorf("seed product %s: %w", s.SKU, err)
	}
	count(&r.report.Products, created)

	for attr, value := range s.Attributes {
		link := models.ProductAttributeValue{ProductID: row.ID, AttributeValueID: values[attr][value].ID}
		if _, err := ensureRow(r.tx, link, &link); err != nil {
			return nil, fmt.Errorf("link product %s to %s=%s: %w", s.SKU, attr, value, err)
		}
	}
	return row, nil
}

func (r *seedRun) pricing(product *models.Product, s ProductSeed, regions []seededRegion, periods []*models.RentalPeriod) error {
	for _, region := range regions {
		for _, period := range periods {
			key := models.ProductPricing{
				ProductID:      product.ID,
				RegionID:       region.row.ID,
				RentalPeriodID: period.ID,
			}
			row := key
			row.Price = PriceFor(s.DailyRate, region.seed.Multiplier, period.Days)
			row.IsActive = true
			created, err := ensureRow(r.tx, key, &row)
			if err != nil {
				return fmt.Errorf("seed pricing %s/%s/%d: %w", s.SKU, region.row.Code, period.Days, err)
			}
			count(&r.report.Pricing, created)
		}
	}
	return nil
}
