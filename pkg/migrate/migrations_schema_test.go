package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/angelmondragon/rentalhub-backend/pkg/migrate"
)

func readMigration(t *testing.T, suffix string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", "*_"+suffix+".sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected one %s migration, found %d", suffix, len(matches))
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}

func TestSchemaMigrationsContainConstraints(t *testing.T) {
	tests := []struct {
		suffix string
		checks []string
	}{
		{
			suffix: "create_regions_table",
			checks: []string{
				"CREATE TABLE IF NOT EXISTS regions",
				"code varchar(10) NOT NULL",
				"CREATE UNIQUE INDEX IF NOT EXISTS ux_regions_code",
			},
		},
		{
			suffix: "create_rental_periods_table",
			checks: []string{
				"CHECK (days >= 1)",
				"CREATE UNIQUE INDEX IF NOT EXISTS ux_rental_periods_days",
			},
		},
		{
			suffix: "create_attributes_tables",
			checks: []string{
				"CHECK (type IN ('text', 'number', 'boolean', 'select'))",
				"CREATE UNIQUE INDEX IF NOT EXISTS ux_attributes_name",
				"CREATE UNIQUE INDEX IF NOT EXISTS ux_attribute_values_attribute_value ON attribute_values (attribute_id, value)",
			},
		},
		{
			suffix: "create_products_table",
			checks: []string{
				"CREATE UNIQUE INDEX IF NOT EXISTS ux_products_sku",
				"CREATE TABLE IF NOT EXISTS product_attribute_values",
				"PRIMARY KEY (product_id, attribute_value_id)",
			},
		},
		{
			suffix: "create_product_pricing_table",
			checks: []string{
				"price numeric(10,2) NOT NULL CHECK (price >= 0)",
				"REFERENCES products (id) ON DELETE CASCADE",
				"CREATE UNIQUE INDEX IF NOT EXISTS ux_product_pricing_triple ON product_pricing (product_id, region_id, rental_period_id)",
			},
		},
		{
			suffix: "create_rental_transactions_table",
			checks: []string{
				"start_date date NOT NULL",
				"end_date date NOT NULL",
				"REFERENCES products (id) ON DELETE RESTRICT",
				"CHECK (status IN ('confirmed', 'cancelled', 'completed'))",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.suffix, func(t *testing.T) {
			content := readMigration(t, tt.suffix)
			for _, sub := range tt.checks {
				if !strings.Contains(content, sub) {
					t.Errorf("missing expected statement %q", sub)
				}
			}
		})
	}
}

func TestMigrationsDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("ValidateDir() returned error: %v", err)
	}
}
