package readstore

import (
	"context"

	"restobook/internal/infra"
	"restobook/internal/infra/db"
	"restobook/internal/pkg/pgconv"
	"restobook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type MenuReadStore struct {
	db db.DBTX
}

func NewMenuReadStore(dbtx db.DBTX) *MenuReadStore {
	return &MenuReadStore{db: dbtx}
}

const menuViewColumns = `id, name, description, price_minor, category, available,
	image_url, created_at, updated_at`

func (r *MenuReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.MenuItemView, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+menuViewColumns+` FROM menu_items WHERE id = $1`,
		pgconv.UUIDToPgtype(id),
	)

	view, err := scanMenuItemView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("menu item not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find menu item", err)
	}
	return view, nil
}

func (r *MenuReadStore) FindAll(ctx context.Context) ([]*queries.MenuItemView, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+menuViewColumns+` FROM menu_items ORDER BY category, name`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list menu items", err)
	}
	return collectMenuItemViews(rows)
}

func (r *MenuReadStore) FindByCategory(ctx context.Context, category string) ([]*queries.MenuItemView, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+menuViewColumns+` FROM menu_items WHERE category = $1 ORDER BY name`,
		category,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list menu items by category", err)
	}
	return collectMenuItemViews(rows)
}

func (r *MenuReadStore) FindAvailable(ctx context.Context) ([]*queries.MenuItemView, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+menuViewColumns+` FROM menu_items WHERE available ORDER BY category, name`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list available menu items", err)
	}
	return collectMenuItemViews(rows)
}

func collectMenuItemViews(rows pgx.Rows) ([]*queries.MenuItemView, error) {
	defer rows.Close()

	var result []*queries.MenuItemView
	for rows.Next() {
		view, err := scanMenuItemView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan menu item", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list menu items", err)
	}
	return result, nil
}

func scanMenuItemView(row pgx.Row) (*queries.MenuItemView, error) {
	var view queries.MenuItemView
	err := row.Scan(
		&view.ID, &view.Name, &view.Description, &view.PriceMinor,
		&view.Category, &view.Available, &view.ImageURL,
		&view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &view, nil
}
