package readstore

import (
	"context"
	"time"

	"restobook/internal/infra"
	"restobook/internal/infra/db"
	"restobook/internal/pkg/pgconv"
	"restobook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type OrderReadStore struct {
	db db.DBTX
}

func NewOrderReadStore(dbtx db.DBTX) *OrderReadStore {
	return &OrderReadStore{db: dbtx}
}

func (r *OrderReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.OrderView, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, customer_id, booking_id, status, total_minor,
		       special_instructions, created_at, updated_at
		FROM orders
		WHERE id = $1`,
		pgconv.UUIDToPgtype(id),
	)

	var view queries.OrderView
	err := row.Scan(
		&view.ID, &view.CustomerID, &view.BookingID, &view.Status,
		&view.TotalMinor, &view.SpecialInstructions, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find order", err)
	}

	items, err := r.findItems(ctx, id)
	if err != nil {
		return nil, err
	}
	view.Items = items

	return &view, nil
}

func (r *OrderReadStore) findItems(ctx context.Context, orderID uuid.UUID) ([]queries.OrderItemView, error) {
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

	var items []queries.OrderItemView
	for rows.Next() {
		var item queries.OrderItemView
		err := rows.Scan(
			&item.MenuItemID, &item.MenuItemName, &item.Quantity,
			&item.UnitPriceMinor, &item.SpecialInstructions,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan order item", err)
		}
		item.SubtotalMinor = item.UnitPriceMinor * int64(item.Quantity)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to load order items", err)
	}

	return items, nil
}

const orderListQuery = `
	SELECT o.id, o.customer_id, o.status, o.total_minor,
	       (SELECT count(*) FROM order_items oi WHERE oi.order_id = o.id) AS item_count,
	       o.created_at
	FROM orders o`

func (r *OrderReadStore) FindByCustomerFirstPage(ctx context.Context, customerID uuid.UUID, limit int32) ([]*queries.OrderListItem, error) {
	rows, err := r.db.Query(ctx,
		orderListQuery+`
		WHERE o.customer_id = $1
		ORDER BY o.created_at DESC, o.id DESC
		LIMIT $2`,
		pgconv.UUIDToPgtype(customerID),
		limit,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list orders by customer", err)
	}
	return collectOrderListItems(rows)
}

func (r *OrderReadStore) FindByCustomerKeyset(ctx context.Context, customerID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.OrderListItem, error) {
	rows, err := r.db.Query(ctx,
		orderListQuery+`
		WHERE o.customer_id = $1
		  AND (o.created_at, o.id) < ($2, $3)
		ORDER BY o.created_at DESC, o.id DESC
		LIMIT $4`,
		pgconv.UUIDToPgtype(customerID),
		pgconv.TimeToPgtype(lastCreatedAt),
		pgconv.UUIDToPgtype(lastID),
		limit,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list orders by customer", err)
	}
	return collectOrderListItems(rows)
}

// Status listings walk oldest first so the kitchen works its queue in FIFO
// order; the keyset therefore advances forward.
func (r *OrderReadStore) FindByStatusFirstPage(ctx context.Context, status string, limit int32) ([]*queries.OrderListItem, error) {
	rows, err := r.db.Query(ctx,
		orderListQuery+`
		WHERE o.status = $1
		ORDER BY o.created_at, o.id
		LIMIT $2`,
		status,
		limit,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list orders by status", err)
	}
	return collectOrderListItems(rows)
}

func (r *OrderReadStore) FindByStatusKeyset(ctx context.Context, status string, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.OrderListItem, error) {
	rows, err := r.db.Query(ctx,
		orderListQuery+`
		WHERE o.status = $1
		  AND (o.created_at, o.id) > ($2, $3)
		ORDER BY o.created_at, o.id
		LIMIT $4`,
		status,
		pgconv.TimeToPgtype(lastCreatedAt),
		pgconv.UUIDToPgtype(lastID),
		limit,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list orders by status", err)
	}
	return collectOrderListItems(rows)
}

func collectOrderListItems(rows pgx.Rows) ([]*queries.OrderListItem, error) {
	defer rows.Close()

	var result []*queries.OrderListItem
	for rows.Next() {
		var item queries.OrderListItem
		err := rows.Scan(
			&item.ID, &item.CustomerID, &item.Status,
			&item.TotalMinor, &item.ItemCount, &item.CreatedAt,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan order", err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list orders", err)
	}
	return result, nil
}
