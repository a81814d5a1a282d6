package migrate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestCreateSQLMigrationSanitizesName(t *testing.T) {
	dir := t.TempDir()
	path, err := CreateSQLMigration(dir, "Add Rental Notes!")
	if err != nil {
		t.Fatalf("CreateSQLMigration() returned error: %v", err)
	}
	if !strings.HasSuffix(path, "_add_rental_notes.sql") {
		t.Fatalf("unexpected filename %s", filepath.Base(path))
	}
	if err := ValidateDir(dir); err != nil {
		t.Fatalf("created migration should validate: %v", err)
	}
}

func TestCreateSQLMigrationRejectsEmptyName(t *testing.T) {
	if _, err := CreateSQLMigration(t.TempDir(), "!!!"); err == nil {
		t.Fatal("expected sanitized empty name to fail")
	}
}

func TestValidateDirRejectsBadFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "create_things.sql"), []byte("-- +goose Up\n-- +goose Down\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := ValidateDir(dir); err == nil {
		t.Fatal("expected unversioned filename to fail")
	}

	dir = t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "20250101000000_no_down.sql"), []byte("-- +goose Up\nSELECT 1;\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := ValidateDir(dir); err == nil {
		t.Fatal("expected missing down section to fail")
	}
}

func TestCreateSQLMigrationTableSkeleton(t *testing.T) {
	dir := t.TempDir()
	path, err := CreateSQLMigration(dir, "create_damage_reports_table")
	if err != nil {
		t.Fatalf("CreateSQLMigration() returned error: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(raw), "CREATE TABLE IF NOT EXISTS damage_reports (") {
		t.Fatalf("expected table skeleton, got:\n%s", raw)
	}
	if !strings.Contains(string(raw), "DROP TABLE IF EXISTS damage_reports;") {
		t.Fatalf("expected drop statement, got:\n%s", raw)
	}
}

func TestCreateSQLMigrationKeepsVersionsOrdered(t *testing.T) {
	dir := t.TempDir()
	first, err := CreateSQLMigration(dir, "first")
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := CreateSQLMigration(dir, "second")
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if filepath.Base(first)[:14] >= filepath.Base(second)[:14] {
		t.Fatalf("expected %s to sort before %s", filepath.Base(first), filepath.Base(second))
	}
	if err := ValidateDir(dir); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestNextVersionBumpsPastFutureVersions(t *testing.T) {
	now := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	got := nextVersion(now, []string{"20250401090000"})
	if got != "20250401090001" {
		t.Fatalf("nextVersion() = %s", got)
	}
	if got := nextVersion(now, nil); got != "20250401090000" {
		t.Fatalf("nextVersion(empty) = %s", got)
	}
}

func TestCheckSectionsRejectsUnbalancedBlocks(t *testing.T) {
	cases := map[string]string{
		"down first":   "-- +goose Down\n-- +goose Up\n",
		"unterminated": "-- +goose Up\n-- +goose StatementBegin\nSELECT 1;\n-- +goose Down\n",
		"stray end":    "-- +goose Up\n-- +goose StatementEnd\n-- +goose Down\n",
	}
	for name, sql := range cases {
		if err := checkSections(sql); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestShippedMigrationsValidate(t *testing.T) {
	if err := ValidateDir("migrations"); err != nil {
		t.Fatalf("shipped migrations: %v", err)
	}
}

func TestEmbeddedMigrationsMatchSourceTree(t *testing.T) {
	embeddedVersions, err := EmbeddedVersions()
	if err != nil {
		t.Fatalf("embedded: %v", err)
	}
	onDisk, err := listVersions("migrations")
	if err != nil {
		t.Fatalf("on disk: %v", err)
	}
	if strings.Join(embeddedVersions, ",") != strings.Join(onDisk, ",") {
		t.Fatalf("embedded %v != on disk %v", embeddedVersions, onDisk)
	}
	if len(onDisk) == 0 {
		t.Fatal("expected shipped migrations")
	}
}
