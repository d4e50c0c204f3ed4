package sqlite

import (
	"context"
	"database/sql"

	"github.com/krishisetu/krishisetu/internal/domain"
)

// Compile-time check: CategoryRepository implements domain.CategoryRepository.
var _ domain.CategoryRepository = (*CategoryRepository)(nil)

// CategoryRepository reads the seeded machinery categories.
type CategoryRepository struct {
	db *sql.DB
}

func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (domain.Category, error) {
	var c domain.Category
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, description FROM categories WHERE id = ?`, id,
	).Scan(&c.ID, &c.Name, &c.Description)
	if err != nil {
		if isNoRows(err) {
			return domain.Category{}, domain.ErrCategoryNotFound
		}
		return domain.Category{}, storageError("scanning category", err)
	}
	return c, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, description FROM categories ORDER BY id`)
	if err != nil {
		return nil, storageError("listing categories", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, storageError("scanning category row", err)
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}
