package queries

import (
	"context"
	"time"

	"restobook/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrOrderAccessDenied = errs.New("order belongs to another customer")

type OrderItemView struct {
	MenuItemID          uuid.UUID `json:"menu_item_id"`
	MenuItemName        string    `json:"menu_item_name"`
	Quantity            int32     `json:"quantity"`
	UnitPriceMinor      int64     `json:"unit_price_minor"`
	SubtotalMinor       int64     `json:"subtotal_minor"`
	SpecialInstructions string    `json:"special_instructions,omitempty"`
}

type OrderView struct {
	ID                  uuid.UUID       `json:"id"`
	CustomerID          uuid.UUID       `json:"customer_id"`
	BookingID           *uuid.UUID      `json:"booking_id,omitempty"`
	Status              string          `json:"status"`
	TotalMinor          int64           `json:"total_minor"`
	SpecialInstructions string          `json:"special_instructions,omitempty"`
	Items               []OrderItemView `json:"items"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

type OrderListItem struct {
	ID         uuid.UUID `json:"id"`
	CustomerID uuid.UUID `json:"customer_id"`
	Status     string    `json:"status"`
	TotalMinor int64     `json:"total_minor"`
	ItemCount  int32     `json:"item_count"`
	CreatedAt  time.Time `json:"created_at"`
}

type OrderReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*OrderView, error)
	FindByCustomerFirstPage(ctx context.Context, customerID uuid.UUID, limit int32) ([]*OrderListItem, error)
	FindByCustomerKeyset(ctx context.Context, customerID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*OrderListItem, error)
	FindByStatusFirstPage(ctx context.Context, status string, limit int32) ([]*OrderListItem, error)
	FindByStatusKeyset(ctx context.Context, status string, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*OrderListItem, error)
}

type OrderQueries interface {
	GetByID(ctx context.Context, actorID uuid.UUID, actorIsStaff bool, id uuid.UUID) (*OrderView, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID, cursor *Cursor, limit int) ([]*OrderListItem, *Cursor, error)
	// ListByStatus feeds the kitchen displays (PREPARING, READY, ...).
	ListByStatus(ctx context.Context, status string, cursor *Cursor, limit int) ([]*OrderListItem, *Cursor, error)
}

type orderQueriesImpl struct {
	store OrderReadStore
}

func NewOrderQueries(store OrderReadStore) OrderQueries {
	return &orderQueriesImpl{store: store}
}

func (q *orderQueriesImpl) GetByID(ctx context.Context, actorID uuid.UUID, actorIsStaff bool, id uuid.UUID) (*OrderView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actorIsStaff && view.CustomerID != actorID {
		return nil, ErrOrderAccessDenied
	}
	return view, nil
}

func (q *orderQueriesImpl) ListByCustomer(ctx context.Context, customerID uuid.UUID, cursor *Cursor, limit int) ([]*OrderListItem, *Cursor, error) {
	limit = ValidateLimit(limit)

	var (
		rows []*OrderListItem
		err  error
	)
	if cursor == nil || cursor.After == "" {
		rows, err = q.store.FindByCustomerFirstPage(ctx, customerID, int32(limit+1))
	} else {
		lastCreatedAt, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, ErrInvalidCursor
		}
		rows, err = q.store.FindByCustomerKeyset(ctx, customerID, lastCreatedAt, lastID, int32(limit+1))
	}
	if err != nil {
		return nil, nil, err
	}

	return orderPage(rows, limit)
}

func (q *orderQueriesImpl) ListByStatus(ctx context.Context, status string, cursor *Cursor, limit int) ([]*OrderListItem, *Cursor, error) {
	limit = ValidateLimit(limit)

	var (
		rows []*OrderListItem
		err  error
	)
	if cursor == nil || cursor.After == "" {
		rows, err = q.store.FindByStatusFirstPage(ctx, status, int32(limit+1))
	} else {
		lastCreatedAt, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, ErrInvalidCursor
		}
		rows, err = q.store.FindByStatusKeyset(ctx, status, lastCreatedAt, lastID, int32(limit+1))
	}
	if err != nil {
		return nil, nil, err
	}

	return orderPage(rows, limit)
}

func orderPage(rows []*OrderListItem, limit int) ([]*OrderListItem, *Cursor, error) {
	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
		rows = rows[:limit]
	}
	return rows, next, nil
}
