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

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

const bookingViewQuery = `
	SELECT b.id, b.customer_id, b.table_id, t.number, b.booking_date, b.slot,
	       b.duration_min, b.guests, b.status, b.special_requests,
	       b.created_at, b.updated_at
	FROM bookings b
	JOIN tables t ON t.id = b.table_id`

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	row := r.db.QueryRow(ctx,
		bookingViewQuery+` WHERE b.id = $1`,
		pgconv.UUIDToPgtype(id),
	)

	view, err := scanBookingView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}
	return view, nil
}

func (r *BookingReadStore) FindByCustomerFirstPage(ctx context.Context, customerID uuid.UUID, limit int32) ([]*queries.BookingView, error) {
	rows, err := r.db.Query(ctx,
		bookingViewQuery+`
		WHERE b.customer_id = $1
		ORDER BY b.created_at DESC, b.id DESC
		LIMIT $2`,
		pgconv.UUIDToPgtype(customerID),
		limit,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by customer", err)
	}
	return collectBookingViews(rows)
}

func (r *BookingReadStore) FindByCustomerKeyset(ctx context.Context, customerID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.BookingView, error) {
	rows, err := r.db.Query(ctx,
		bookingViewQuery+`
		WHERE b.customer_id = $1
		  AND (b.created_at, b.id) < ($2, $3)
		ORDER BY b.created_at DESC, b.id DESC
		LIMIT $4`,
		pgconv.UUIDToPgtype(customerID),
		pgconv.TimeToPgtype(lastCreatedAt),
		pgconv.UUIDToPgtype(lastID),
		limit,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by customer", err)
	}
	return collectBookingViews(rows)
}

func (r *BookingReadStore) FindByDateFirstPage(ctx context.Context, date time.Time, limit int32) ([]*queries.BookingView, error) {
	rows, err := r.db.Query(ctx,
		bookingViewQuery+`
		WHERE b.booking_date = $1
		ORDER BY b.created_at DESC, b.id DESC
		LIMIT $2`,
		pgconv.DateToPgtype(date),
		limit,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by date", err)
	}
	return collectBookingViews(rows)
}

func (r *BookingReadStore) FindByDateKeyset(ctx context.Context, date time.Time, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.BookingView, error) {
	rows, err := r.db.Query(ctx,
		bookingViewQuery+`
		WHERE b.booking_date = $1
		  AND (b.created_at, b.id) < ($2, $3)
		ORDER BY b.created_at DESC, b.id DESC
		LIMIT $4`,
		pgconv.DateToPgtype(date),
		pgconv.TimeToPgtype(lastCreatedAt),
		pgconv.UUIDToPgtype(lastID),
		limit,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by date", err)
	}
	return collectBookingViews(rows)
}

func collectBookingViews(rows pgx.Rows) ([]*queries.BookingView, error) {
	defer rows.Close()

	var result []*queries.BookingView
	for rows.Next() {
		view, err := scanBookingView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	return result, nil
}

func scanBookingView(row pgx.Row) (*queries.BookingView, error) {
	var view queries.BookingView
	err := row.Scan(
		&view.ID, &view.CustomerID, &view.TableID, &view.TableNumber,
		&view.BookingDate, &view.Slot, &view.DurationMin, &view.Guests,
		&view.Status, &view.SpecialRequests, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &view, nil
}
