package repo

import (
	"context"
	"fmt"
	"math"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/angelmondragon/rentalhub-backend/pkg/pagination"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	return conn
}

func TestNewBaseStoresConnection(t *testing.T) {
	db := newTestDB(t)
	base := NewBase(db)

	if base.db != db {
		t.Fatalf("expected base db to match provided connection")
	}
}

func TestBaseDB_BindsContext(t *testing.T) {
	db := newTestDB(t)
	base := NewBase(db)

	ctx := context.WithValue(context.Background(), struct{}{}, "value")
	withCtx := base.DB(ctx)

	if withCtx == nil {
		t.Fatalf("expected non-nil DB when context provided")
	}
	if withCtx.Statement == nil {
		t.Fatalf("expected statement created after WithContext")
	}
	if withCtx.Statement.Context != ctx {
		t.Fatalf("expected context to flow through, got %v", withCtx.Statement.Context)
	}

	withoutCtx := base.DB(nil)
	if withoutCtx != db {
		t.Fatalf("expected nil context to return raw connection")
	}
}

type widget struct {
	ID   int
	Name string
}

func TestBaseExists(t *testing.T) {
	db := newTestDB(t)
	if err := db.AutoMigrate(&widget{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := db.Create(&widget{Name: "lamp"}).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	base := NewBase(db)

	ok, err := base.Exists(context.Background(), &widget{}, "name = ?", "lamp")
	if err != nil || !ok {
		t.Fatalf("expected lamp to exist, ok=%v err=%v", ok, err)
	}
	ok, err = base.Exists(context.Background(), &widget{}, "name = ?", "desk")
	if err != nil || ok {
		t.Fatalf("expected desk to be missing, ok=%v err=%v", ok, err)
	}
}

func TestBasePaginate(t *testing.T) {
	db := newTestDB(t)
	if err := db.AutoMigrate(&widget{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	for i := 1; i <= 5; i++ {
		if err := db.Create(&widget{Name: fmt.Sprintf("w%d", i)}).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	base := NewBase(db)
	ctx := context.Background()
	scoped := func() *gorm.DB { return base.DB(ctx).Model(&widget{}).Where("name <> ?", "w1") }
	byID := func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }

	var rows []widget
	total, err := base.Paginate(scoped, byID, pagination.Params{Page: 2, PerPage: 3}, &rows)
	if err != nil {
		t.Fatalf("paginate: %v", err)
	}
	if total != 4 {
		t.Fatalf("expected 4 matching rows, got %d", total)
	}
	if len(rows) != 1 || rows[0].Name != "w5" {
		t.Fatalf("unexpected second page %+v", rows)
	}

	rows = nil
	total, err = base.Paginate(scoped, byID, pagination.Params{Page: math.MaxInt}, &rows)
	if err != nil || total != 4 || len(rows) != 0 {
		t.Fatalf("expected no rows past the last page, total=%d rows=%v err=%v", total, rows, err)
	}

	rows = nil
	empty := func() *gorm.DB { return base.DB(ctx).Model(&widget{}).Where("name = ?", "none") }
	total, err = base.Paginate(empty, nil, pagination.Params{Page: 1}, &rows)
	if err != nil || total != 0 || len(rows) != 0 {
		t.Fatalf("expected empty page, total=%d rows=%v err=%v", total, rows, err)
	}
}
