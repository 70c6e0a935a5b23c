package booking

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus     = errors.New("invalid booking status")
	ErrInvalidTransition = errors.New("booking transition not permitted from current status")
)

type Booking struct {
	id              uuid.UUID
	customerID      uuid.UUID
	tableID         uuid.UUID
	bookingDate     BookingDate
	slot            Slot
	durationMin     int32
	guests          GuestCount
	status          Status
	specialRequests string
	createdAt       time.Time
	updatedAt       time.Time
}

func NewBooking(
	customerID, tableID uuid.UUID,
	date BookingDate,
	slot Slot,
	durationMin int32,
	guests GuestCount,
	specialRequests string,
	now time.Time,
) (*Booking, error) {
	if durationMin <= 0 {
		return nil, ErrInvalidDuration
	}

	return &Booking{
		id:              uuid.New(),
		customerID:      customerID,
		tableID:         tableID,
		bookingDate:     date,
		slot:            slot,
		durationMin:     durationMin,
		guests:          guests,
		status:          StatusPending,
		specialRequests: strings.TrimSpace(specialRequests),
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

func Reconstruct(
	id, customerID, tableID uuid.UUID,
	date BookingDate,
	slot Slot,
	durationMin int32,
	guests GuestCount,
	status Status,
	specialRequests string,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:              id,
		customerID:      customerID,
		tableID:         tableID,
		bookingDate:     date,
		slot:            slot,
		durationMin:     durationMin,
		guests:          guests,
		status:          status,
		specialRequests: specialRequests,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

func (b *Booking) transitionTo(next Status, now time.Time) error {
	if !b.status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	b.status = next
	b.updatedAt = now
	return nil
}

func (b *Booking) Confirm(now time.Time) error {
	if b.status != StatusPending {
		return ErrInvalidTransition
	}
	return b.transitionTo(StatusConfirmed, now)
}

// Cancel is only allowed while the booking has not been seated.
func (b *Booking) Cancel(now time.Time) error {
	if b.status != StatusPending && b.status != StatusConfirmed {
		return ErrInvalidTransition
	}
	return b.transitionTo(StatusCancelled, now)
}

func (b *Booking) CheckIn(now time.Time) error {
	if b.status != StatusPending && b.status != StatusConfirmed {
		return ErrInvalidTransition
	}
	return b.transitionTo(StatusInProgress, now)
}

func (b *Booking) CheckOut(now time.Time) error {
	if b.status != StatusInProgress {
		return ErrInvalidTransition
	}
	return b.transitionTo(StatusCompleted, now)
}

// MarkNoShow is invoked by the external scheduler sweep for lapsed bookings.
func (b *Booking) MarkNoShow(now time.Time) error {
	if b.status != StatusPending && b.status != StatusConfirmed {
		return ErrInvalidTransition
	}
	return b.transitionTo(StatusNoShow, now)
}

func (b *Booking) IsActive() bool {
	return b.status.IsActive()
}

func (b *Booking) ID() uuid.UUID            { return b.id }
func (b *Booking) CustomerID() uuid.UUID    { return b.customerID }
func (b *Booking) TableID() uuid.UUID       { return b.tableID }
func (b *Booking) BookingDate() BookingDate { return b.bookingDate }
func (b *Booking) Slot() Slot               { return b.slot }
func (b *Booking) DurationMin() int32       { return b.durationMin }
func (b *Booking) Guests() GuestCount       { return b.guests }
func (b *Booking) Status() Status           { return b.status }
func (b *Booking) SpecialRequests() string  { return b.specialRequests }
func (b *Booking) CreatedAt() time.Time     { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time     { return b.updatedAt }
