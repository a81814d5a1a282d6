package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		constraint string
		want       bool
	}{
		{name: "nil", err: nil, want: false},
		{
			name:       "pgx matching constraint",
			err:        fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "ux_product_pricing_triple"}),
			constraint: "ux_product_pricing_triple",
			want:       true,
		},
		{
			name:       "pgx other constraint",
			err:        &pgconn.PgError{Code: "23505", ConstraintName: "regions_code_key"},
			constraint: "ux_product_pricing_triple",
			want:       false,
		},
		{
			name: "pgx foreign key",
			err:  &pgconn.PgError{Code: "23503"},
			want: false,
		},
		{
			name:       "lib/pq",
			err:        &pq.Error{Code: "23505", Constraint: "ux_attribute_values_attribute_value"},
			constraint: "ux_attribute_values_attribute_value",
			want:       true,
		},
		{
			name: "sqlite",
			err:  errors.New("UNIQUE constraint failed: product_pricing.product_id, product_pricing.region_id"),
			want: true,
		},
		{
			name: "gorm translated",
			err:  gorm.ErrDuplicatedKey,
			want: true,
		},
		{
			name: "other",
			err:  errors.New("connection refused"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUniqueViolation(tt.err, tt.constraint); got != tt.want {
				t.Fatalf("IsUniqueViolation() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(fmt.Errorf("load: %w", gorm.ErrRecordNotFound)) {
		t.Fatal("expected wrapped record-not-found to match")
	}
	if IsNotFound(errors.New("boom")) {
		t.Fatal("expected unrelated error not to match")
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	if !IsForeignKeyViolation(&pgconn.PgError{Code: "23503"}) {
		t.Fatal("expected pgx 23503 to match")
	}
	if !IsForeignKeyViolation(&pq.Error{Code: "23503"}) {
		t.Fatal("expected pq 23503 to match")
	}
	if !IsForeignKeyViolation(errors.New("FOREIGN KEY constraint failed")) {
		t.Fatal("expected sqlite message to match")
	}
	if IsForeignKeyViolation(&pgconn.PgError{Code: "23505"}) || IsForeignKeyViolation(nil) {
		t.Fatal("expected unique violation and nil not to match")
	}
}
