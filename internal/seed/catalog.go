package seed

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"github.com/angelmondragon/rentalhub-backend/pkg/enums"
)

// RegionSeed is a region keyed by code. Multiplier scales base prices.
type RegionSeed struct {
	Code       string
	Name       string
	Multiplier decimal.Decimal
}

// PeriodSeed is a rental period keyed by its day count.
type PeriodSeed struct {
	Name string
	Days int
}

// AttributeSeed is an attribute keyed by name with its allowed values.
type AttributeSeed struct {
	Name         string
	Type         enums.AttributeType
	IsFilterable bool
	IsRequired   bool
	Values       []string
}

// ProductSeed is a product keyed by sku. Attributes maps attribute name to
// value and DailyRate is the base price for one day in a 1.0 region.
type ProductSeed struct {
	SKU         string
	Name        string
	Description string
	DailyRate   decimal.Decimal
	Attributes  map[string]string
}

// Catalog is the full demo data set.
type Catalog struct {
	Regions    []RegionSeed
	Periods    []PeriodSeed
	Attributes []AttributeSeed
	Products   []ProductSeed
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// DefaultCatalog returns the demo catalog loaded by cmd/seed.
func DefaultCatalog() Catalog {
	return Catalog{
		Regions: []RegionSeed{
			{Code: "NA", Name: "North America", Multiplier: dec("1.0")},
			{Code: "EU", Name: "Europe", Multiplier: dec("1.2")},
			{Code: "APAC", Name: "Asia Pacific", Multiplier: dec("0.9")},
			{Code: "ME", Name: "Middle East", Multiplier: dec("1.3")},
			{Code: "AF", Name: "Africa", Multiplier: dec("0.8")},
			{Code: "LATAM", Name: "Latin America", Multiplier: dec("0.85")},
		},
		Periods: []PeriodSeed{
			{Name: "Daily", Days: 1},
			{Name: "Weekly", Days: 7},
			{Name: "Bi-Weekly", Days: 14},
			{Name: "Monthly", Days: 30},
			{Name: "3 Months", Days: 90},
			{Name: "6 Months", Days: 180},
			{Name: "12 Months", Days: 365},
		},
		Attributes: []AttributeSeed{
			{
				Name: "Color", Type: enums.AttributeTypeSelect, IsFilterable: true, IsRequired: true,
				Values: []string{"Red", "Blue", "Green", "Black", "White", "Silver"},
			},
			{
				Name: "Size", Type: enums.AttributeTypeSelect, IsFilterable: true, IsRequired: true,
				Values: []string{"Small", "Medium", "Large", "X-Large"},
			},
			{
				Name: "Material", Type: enums.AttributeTypeSelect, IsFilterable: true,
				Values: []string{"Cotton", "Polyester", "Leather", "Metal", "Plastic", "Wood"},
			},
		},
		Products: []ProductSeed{
			{
				SKU: "CAM-PRO-001", Name: "Professional Camera",
				Description: "High-end DSLR camera for professional photography",
				DailyRate:   dec("50.00"),
				Attributes:  map[string]string{"Color": "Black", "Size": "Medium", "Material": "Metal"},
			},
			{
				SKU: "DRN-4K-002", Name: "Drone",
				Description: "Aerial photography drone with 4K camera",
				DailyRate:   dec("75.00"),
				Attributes:  map[string]string{"Color": "White", "Size": "Medium", "Material": "Plastic"},
			},
			{
				SKU: "PRJ-HD-003", Name: "Projector",
				Description: "HD projector for presentations and home cinema",
				DailyRate:   dec("40.00"),
				Attributes:  map[string]string{"Color": "Black", "Size": "Small", "Material": "Plastic"},
			},
			{
				SKU: "AUD-MIX-004", Name: "Audio Mixer",
				Description: "Professional audio mixer for studio recording",
				DailyRate:   dec("60.00"),
				Attributes:  map[string]string{"Color": "Silver", "Size": "Large", "Material": "Metal"},
			},
			{
				SKU: "LGT-KIT-005", Name: "Lighting Kit",
				Description: "Professional lighting kit for photography and videography",
				DailyRate:   dec("45.00"),
				Attributes:  map[string]string{"Color": "Black", "Size": "Large", "Material": "Metal"},
			},
		},
	}
}

// DurationDiscount is the share of the daily rate charged per day for a
// period of the given length.
func DurationDiscount(days int) decimal.Decimal {
	switch {
	case days >= 180:
		return dec("0.5")
	case days >= 90:
		return dec("0.6")
	case days >= 30:
		return dec("0.7")
	case days >= 14:
		return dec("0.8")
	case days >= 7:
		return dec("0.9")
	default:
		return decimal.NewFromInt(1)
	}
}

// PriceFor computes the seeded price of a product in a region for a period,
// rounded half away from zero to cents.
func PriceFor(dailyRate, regionMultiplier decimal.Decimal, days int) decimal.Decimal {
	return dailyRate.
		Mul(regionMultiplier).
		Mul(decimal.NewFromInt(int64(days))).
		Mul(DurationDiscount(days)).
		Round(2)
}

// Validate reports every inconsistency in the catalog at once.
func (c Catalog) Validate() error {
	var errs error
	codes := map[string]bool{}
	for _, r := range c.Regions {
		if codes[r.Code] {
			errs = multierr.Append(errs, fmt.Errorf("region %q listed twice", r.Code))
		}
		codes[r.Code] = true
		if !r.Multiplier.IsPositive() {
			errs = multierr.Append(errs, fmt.Errorf("region %q multiplier must be positive", r.Code))
		}
	}
	days := map[int]bool{}
	for _, p := range c.Periods {
		if p.Days < 1 {
			errs = multierr.Append(errs, fmt.Errorf("period %q must last at least one day", p.Name))
		}
		if days[p.Days] {
			errs = multierr.Append(errs, fmt.Errorf("period length %d listed twice", p.Days))
		}
		days[p.Days] = true
	}
	values := map[string]map[string]bool{}
	for _, a := range c.Attributes {
		if !a.Type.IsValid() {
			errs = multierr.Append(errs, fmt.Errorf("attribute %q has invalid type %q", a.Name, a.Type))
		}
		set := map[string]bool{}
		for _, v := range a.Values {
			set[v] = true
		}
		values[a.Name] = set
	}
	skus := map[string]bool{}
	for _, p := range c.Products {
		if skus[p.SKU] {
			errs = multierr.Append(errs, fmt.Errorf("product sku %q listed twice", p.SKU))
		}
		skus[p.SKU] = true
		if p.DailyRate.IsNegative() {
			errs = multierr.Append(errs, fmt.Errorf("product %q daily rate is negative", p.SKU))
		}
		for attr, value := range p.Attributes {
			set, ok := values[attr]
			if !ok {
				errs = multierr.Append(errs, fmt.Errorf("product %q references unknown attribute %q", p.SKU, attr))
				continue
			}
			if !set[value] {
				errs = multierr.Append(errs, fmt.Errorf("product %q references unknown %s value %q", p.SKU, attr, value))
			}
		}
	}
	return errs
}
