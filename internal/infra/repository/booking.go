package repository

import (
	"context"
	"time"

	"restobook/internal/domain/booking"
	"restobook/internal/infra"
	"restobook/internal/infra/db"
	"restobook/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(dbtx db.DBTX) *BookingRepository {
	return &BookingRepository{db: dbtx}
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO bookings (
			id, customer_id, table_id, booking_date, slot, duration_min,
			guests, status, special_requests, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		pgconv.UUIDToPgtype(b.ID()),
		pgconv.UUIDToPgtype(b.CustomerID()),
		pgconv.UUIDToPgtype(b.TableID()),
		pgconv.DateToPgtype(b.BookingDate().Value()),
		b.Slot().String(),
		b.DurationMin(),
		b.Guests().Value(),
		b.Status().String(),
		b.SpecialRequests(),
		pgconv.TimeToPgtype(b.CreatedAt()),
		pgconv.TimeToPgtype(b.UpdatedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create booking", err)
	}
	return nil
}

func (r *BookingRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, customer_id, table_id, booking_date, slot, duration_min,
		       guests, status, special_requests, created_at, updated_at
		FROM bookings
		WHERE id = $1
		FOR UPDATE`,
		pgconv.UUIDToPgtype(id),
	)

	b, err := scanBooking(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}
	return b, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status booking.Status, updatedAt time.Time) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE bookings SET status = $2, updated_at = $3 WHERE id = $1`,
		pgconv.UUIDToPgtype(id),
		status.String(),
		pgconv.TimeToPgtype(updatedAt),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookingRepository) CountActiveByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `
		SELECT count(*)
		FROM bookings
		WHERE customer_id = $1
		  AND status IN ('PENDING', 'CONFIRMED', 'IN_PROGRESS')`,
		pgconv.UUIDToPgtype(customerID),
	).Scan(&count)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count active bookings", err)
	}
	return count, nil
}

func (r *BookingRepository) ExistsActiveForSlot(ctx context.Context, tableID uuid.UUID, date time.Time, slot string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM bookings
			WHERE table_id = $1
			  AND booking_date = $2
			  AND slot = $3
			  AND status IN ('PENDING', 'CONFIRMED', 'IN_PROGRESS')
		)`,
		pgconv.UUIDToPgtype(tableID),
		pgconv.DateToPgtype(date),
		slot,
	).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check slot conflict", err)
	}
	return exists, nil
}

func scanBooking(row rowScanner) (*booking.Booking, error) {
	var (
		id, customerID, tableID      uuid.UUID
		bookingDate                  time.Time
		slot                         string
		durationMin, guests          int32
		status, specialRequests      string
		createdAt, updatedAt         time.Time
	)
	err := row.Scan(
		&id, &customerID, &tableID, &bookingDate, &slot, &durationMin,
		&guests, &status, &specialRequests, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	st, err := booking.NewStatus(status)
	if err != nil {
		return nil, err
	}
	slotVO, err := booking.NewSlot(slot)
	if err != nil {
		return nil, err
	}
	guestsVO, err := booking.NewGuestCount(guests)
	if err != nil {
		return nil, err
	}

	return booking.Reconstruct(
		id, customerID, tableID,
		booking.ReconstructBookingDate(bookingDate),
		slotVO, durationMin, guestsVO, st, specialRequests,
		createdAt, updatedAt,
	), nil
}
