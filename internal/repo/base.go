package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/angelmondragon/rentalhub-backend/pkg/pagination"
)

// Base provides a shared foundation for domain repositories.
type Base struct {
	db *gorm.DB
}

// NewBase constructs a Base repository backed by the provided GORM connection.
func NewBase(db *gorm.DB) Base {
	return Base{db: db}
}

// DB returns the GORM connection bound to the supplied context (if any).
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}

// Exists reports whether any row of model matches the condition.
func (b Base) Exists(ctx context.Context, model any, query string, args ...any) (bool, error) {
	var found int
	err := b.DB(ctx).
		Model(model).
		Select("1").
		Where(query, args...).
		Limit(1).
		Scan(&found).
		Error
	if err != nil {
		return false, err
	}
	return found == 1, nil
}

// Paginate counts the rows matched by scoped and loads the requested page
// into dest. load decorates the page query with preloads and ordering. An
// empty result skips the second query.
func (b Base) Paginate(scoped func() *gorm.DB, load func(*gorm.DB) *gorm.DB, params pagination.Params, dest any) (int64, error) {
	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}
	query := scoped()
	if load != nil {
		query = load(query)
	}
	if err := query.Scopes(pagination.Scope(params)).Find(dest).Error; err != nil {
		return 0, err
	}
	return total, nil
}
