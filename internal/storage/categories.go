package storage

import (
	"context"

	"tirelire/internal/core"
)

// ListCategories returns the global registry ordered by name, optionally
// filtered by direction. Categories are shared across users and managed by
// migrations; there is no write path at runtime.
func (r *Repository) ListCategories(ctx context.Context, kind core.CategoryKind) ([]core.Category, error) {
	query := `SELECT id, name, type, color FROM categories`
	args := []any{}
	if kind != "" {
		query += ` WHERE type = ?`
		args = append(args, kind)
	}
	query += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageErr("query categories", err)
	}
	defer rows.Close()

	var categories []core.Category
	for rows.Next() {
		var c core.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Kind, &c.Color); err != nil {
			return nil, storageErr("scan category", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate categories", err)
	}

	return categories, nil
}

// GetCategory looks up one registry entry by id.
func (r *Repository) GetCategory(ctx context.Context, id int64) (core.Category, error) {
	var c core.Category
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, type, color FROM categories WHERE id = ?`, id,
	).Scan(&c.ID, &c.Name, &c.Kind, &c.Color)
	if err != nil {
		return core.Category{}, notFoundOr(err, "query category")
	}
	return c, nil
}

// GetCategoryByName looks up one registry entry by its unique name.
func (r *Repository) GetCategoryByName(ctx context.Context, name string) (core.Category, error) {
	var c core.Category
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, type, color FROM categories WHERE name = ?`, name,
	).Scan(&c.ID, &c.Name, &c.Kind, &c.Color)
	if err != nil {
		return core.Category{}, notFoundOr(err, "query category")
	}
	return c, nil
}
