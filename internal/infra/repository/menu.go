package repository

import (
	"context"
	"time"

	"restobook/internal/domain/menu"
	"restobook/internal/domain/money"
	"restobook/internal/infra"
	"restobook/internal/infra/db"
	"restobook/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type MenuRepository struct {
	db db.DBTX
}

func NewMenuRepository(dbtx db.DBTX) *MenuRepository {
	return &MenuRepository{db: dbtx}
}

func (r *MenuRepository) Create(ctx context.Context, item *menu.Item) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO menu_items (
			id, name, description, price_minor, category, available,
			image_url, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		pgconv.UUIDToPgtype(item.ID()),
		item.Name(),
		item.Description(),
		item.Price().MinorUnits(),
		item.Category(),
		item.Available(),
		item.ImageURL(),
		pgconv.TimeToPgtype(item.CreatedAt()),
		pgconv.TimeToPgtype(item.UpdatedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create menu item", err)
	}
	return nil
}

func (r *MenuRepository) Update(ctx context.Context, item *menu.Item) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE menu_items
		SET name = $2, description = $3, price_minor = $4, category = $5,
		    available = $6, image_url = $7, updated_at = $8
		WHERE id = $1`,
		pgconv.UUIDToPgtype(item.ID()),
		item.Name(),
		item.Description(),
		item.Price().MinorUnits(),
		item.Category(),
		item.Available(),
		item.ImageURL(),
		pgconv.TimeToPgtype(item.UpdatedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update menu item", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("menu item not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *MenuRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM menu_items WHERE id = $1`, pgconv.UUIDToPgtype(id))
	if err != nil {
		return infra.WrapRepoErr("failed to delete menu item", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("menu item not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *MenuRepository) FindByID(ctx context.Context, id uuid.UUID) (*menu.Item, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, name, description, price_minor, category, available,
		       image_url, created_at, updated_at
		FROM menu_items
		WHERE id = $1`,
		pgconv.UUIDToPgtype(id),
	)

	var (
		itemID               uuid.UUID
		name, description    string
		priceMinor           int64
		category             string
		available            bool
		imageURL             string
		createdAt, updatedAt time.Time
	)
	err := row.Scan(
		&itemID, &name, &description, &priceMinor, &category,
		&available, &imageURL, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("menu item not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find menu item", err)
	}

	return menu.Reconstruct(
		itemID, name, description, money.New(priceMinor),
		category, available, imageURL, createdAt, updatedAt,
	), nil
}
