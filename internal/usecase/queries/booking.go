package queries

import (
	"context"
	"time"

	"restobook/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrBookingAccessDenied = errs.New("booking belongs to another customer")

type BookingView struct {
	ID              uuid.UUID `json:"id"`
	CustomerID      uuid.UUID `json:"customer_id"`
	TableID         uuid.UUID `json:"table_id"`
	TableNumber     int32     `json:"table_number"`
	BookingDate     time.Time `json:"booking_date"`
	Slot            string    `json:"slot"`
	DurationMin     int32     `json:"duration_min"`
	Guests          int32     `json:"guests"`
	Status          string    `json:"status"`
	SpecialRequests string    `json:"special_requests"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindByCustomerFirstPage(ctx context.Context, customerID uuid.UUID, limit int32) ([]*BookingView, error)
	FindByCustomerKeyset(ctx context.Context, customerID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*BookingView, error)
	FindByDateFirstPage(ctx context.Context, date time.Time, limit int32) ([]*BookingView, error)
	FindByDateKeyset(ctx context.Context, date time.Time, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*BookingView, error)
}

type BookingQueries interface {
	// GetByID enforces ownership: customers see only their own bookings,
	// staff roles see any.
	GetByID(ctx context.Context, actorID uuid.UUID, actorIsStaff bool, id uuid.UUID) (*BookingView, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID, cursor *Cursor, limit int) ([]*BookingView, *Cursor, error)
	ListByDate(ctx context.Context, date time.Time, cursor *Cursor, limit int) ([]*BookingView, *Cursor, error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
}

func NewBookingQueries(store BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{store: store}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, actorID uuid.UUID, actorIsStaff bool, id uuid.UUID) (*BookingView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actorIsStaff && view.CustomerID != actorID {
		return nil, ErrBookingAccessDenied
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListByCustomer(ctx context.Context, customerID uuid.UUID, cursor *Cursor, limit int) ([]*BookingView, *Cursor, error) {
	limit = ValidateLimit(limit)

	var (
		rows []*BookingView
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

	return bookingPage(rows, limit)
}

func (q *bookingQueriesImpl) ListByDate(ctx context.Context, date time.Time, cursor *Cursor, limit int) ([]*BookingView, *Cursor, error) {
	limit = ValidateLimit(limit)

	var (
		rows []*BookingView
		err  error
	)
	if cursor == nil || cursor.After == "" {
		rows, err = q.store.FindByDateFirstPage(ctx, date, int32(limit+1))
	} else {
		lastCreatedAt, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, ErrInvalidCursor
		}
		rows, err = q.store.FindByDateKeyset(ctx, date, lastCreatedAt, lastID, int32(limit+1))
	}
	if err != nil {
		return nil, nil, err
	}

	return bookingPage(rows, limit)
}

func bookingPage(rows []*BookingView, limit int) ([]*BookingView, *Cursor, error) {
	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
		rows = rows[:limit]
	}
	return rows, next, nil
}
