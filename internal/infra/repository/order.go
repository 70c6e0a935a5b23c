package repository

import (
	"context"
	"time"

	"restobook/internal/domain/money"
	"restobook/internal/domain/order"
	"restobook/internal/infra"
	"restobook/internal/infra/db"
	"restobook/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type OrderRepository struct {
	db db.DBTX
}

func NewOrderRepository(dbtx db.DBTX) *OrderRepository {
	return &OrderRepository{db: dbtx}
}

func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO orders (
			id, customer_id, booking_id, status, total_minor,
			special_instructions, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		pgconv.UUIDToPgtype(o.ID()),
		pgconv.UUIDToPgtype(o.CustomerID()),
		pgconv.UUIDPtrToPgtype(o.BookingID()),
		o.Status().String(),
		o.TotalAmount().MinorUnits(),
		o.SpecialInstructions(),
		pgconv.TimeToPgtype(o.CreatedAt()),
		pgconv.TimeToPgtype(o.UpdatedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create order", err)
	}

	for pos, item := range o.Items() {
		_, err := r.db.Exec(ctx, `
			INSERT INTO order_items (
				id, order_id, menu_item_id, menu_item_name, quantity,
				unit_price_minor, special_instructions, position
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			pgconv.UUIDToPgtype(uuid.New()),
			pgconv.UUIDToPgtype(o.ID()),
			pgconv.UUIDToPgtype(item.MenuItemID()),
			item.MenuItemName(),
			item.Quantity(),
			item.UnitPrice().MinorUnits(),
			item.SpecialInstructions(),
			int32(pos),
		)
		if err != nil {
			return infra.WrapRepoErr("failed to create order item", err)
		}
	}

	return nil
}

func (r *OrderRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, customer_id, booking_id, status, total_minor,
		       special_instructions, created_at, updated_at
		FROM orders
		WHERE id = $1
		FOR UPDATE`,
		pgconv.UUIDToPgtype(id),
	)

	var (
		orderID, customerID  uuid.UUID
		bookingID            *uuid.UUID
		status               string
		totalMinor           int64
		specialInstructions  string
		createdAt, updatedAt time.Time
	)
	err := row.Scan(
		&orderID, &customerID, &bookingID, &status, &totalMinor,
		&specialInstructions, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find order", err)
	}

	items, err := r.loadItems(ctx, orderID)
	if err != nil {
		return nil, err
	}

	st, err := order.NewStatus(status)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find order", err)
	}

	return order.Reconstruct(
		orderID, customerID, bookingID, st,
		money.New(totalMinor), specialInstructions, items,
		createdAt, updatedAt,
	), nil
}

func (r *OrderRepository) loadItems(ctx context.Context, orderID uuid.UUID) ([]order.Item, error) {
	rows, err := r.db.Query(ctx, `
		SELECT menu_item_id, menu_item_name, quantity, unit_price_minor, special_instructions
		FROM order_items
		WHERE order_id = $1
		ORDER BY position`,
		pgconv.UUIDToPgtype(orderID),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load order items", err)
	}
	defer rows.Close()

	var items []order.Item
	for rows.Next() {
		var (
			menuItemID          uuid.UUID
			menuItemName        string
			quantity            int32
			unitPriceMinor      int64
			specialInstructions string
		)
		if err := rows.Scan(&menuItemID, &menuItemName, &quantity, &unitPriceMinor, &specialInstructions); err != nil {
			return nil, infra.WrapRepoErr("failed to scan order item", err)
		}

		item, err := order.NewItem(menuItemID, menuItemName, quantity, money.New(unitPriceMinor), specialInstructions)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to rebuild order item", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to load order items", err)
	}

	return items, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status order.Status, updatedAt time.Time) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE orders SET status = $2, updated_at = $3 WHERE id = $1`,
		pgconv.UUIDToPgtype(id),
		status.String(),
		pgconv.TimeToPgtype(updatedAt),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update order status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("order not found", nil, infra.KindNotFound)
	}
	return nil
}

// Delete removes the order; its line items go with it via ON DELETE CASCADE.
func (r *OrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM orders WHERE id = $1`, pgconv.UUIDToPgtype(id))
	if err != nil {
		return infra.WrapRepoErr("failed to delete order", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("order not found", nil, infra.KindNotFound)
	}
	return nil
}
