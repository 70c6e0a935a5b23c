package commands

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"restobook/internal/domain/booking"
	"restobook/internal/domain/table"
	reqdto "restobook/internal/handler/dto/request"
	"restobook/internal/infra"
	"restobook/internal/pkg/clock"
	"restobook/internal/pkg/errs"
	"restobook/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrTableNotFound            = errs.New("table not found")
	ErrTableUnavailable         = errs.New("table is not available for booking")
	ErrTableTooSmall            = errs.New("table capacity is below the party size")
	ErrSlotConflict             = errs.New("table already booked for this date and slot")
	ErrCustomerHasActiveBooking = errs.New("customer already has an active booking")
	ErrBookingNotFound          = errs.New("booking not found")
	ErrBookingNotOwned          = errs.New("booking belongs to another customer")
	ErrBookingStateConflict     = errs.New("booking state does not allow this operation")
	ErrBookingValidation        = errs.New("booking validation error")
)

const (
	topicBookingCreated   = "booking.created"
	topicBookingConfirmed = "booking.confirmed"
	topicBookingCancelled = "booking.cancelled"
	topicBookingCheckedIn = "booking.checked_in"
	topicBookingCompleted = "booking.completed"
	topicBookingNoShow    = "booking.no_show"
)

type BookingCommands interface {
	CreateBooking(ctx context.Context, req reqdto.CreateBookingRequest, customerID uuid.UUID) (uuid.UUID, error)
	ConfirmBooking(ctx context.Context, id uuid.UUID) error
	CancelBooking(ctx context.Context, id uuid.UUID, actorID uuid.UUID, actorIsStaff bool) error
	CheckIn(ctx context.Context, id uuid.UUID) error
	CheckOut(ctx context.Context, id uuid.UUID) error
	MarkNoShow(ctx context.Context, id uuid.UUID) error
}

type bookingCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewBookingCommands(uow shared.UnitOfWork, clk clock.Clock) BookingCommands {
	return &bookingCommandsImpl{uow: uow, clock: clk}
}

type bookingEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	CustomerID uuid.UUID `json:"customer_id"`
	TableID    uuid.UUID `json:"table_id"`
	Date       string    `json:"date"`
	Slot       string    `json:"slot"`
	Status     string    `json:"status"`
}

// CreateBooking admits a booking only if, at commit time, the customer has no
// active booking, the table is AVAILABLE, and no active booking holds the
// requested date and slot. An accepted booking flips the table to RESERVED in
// the same transaction. The table row lock serializes racing requests for the
// same table; the partial unique indexes reject anything that slips past.
func (c *bookingCommandsImpl) CreateBooking(ctx context.Context, req reqdto.CreateBookingRequest, customerID uuid.UUID) (uuid.UUID, error) {
	now := c.clock.Now()

	date, err := booking.NewBookingDate(req.BookingDate, now)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrBookingValidation)
	}
	slot, err := booking.NewSlot(req.Slot)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrBookingValidation)
	}
	guests, err := booking.NewGuestCount(req.Guests)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrBookingValidation)
	}

	var bookingID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		// The customer check comes first so a customer who already holds an
		// active booking hears about that conflict regardless of which table
		// the new request names.
		activeCount, err := tx.Bookings().CountActiveByCustomer(ctx, customerID)
		if err != nil {
			return err
		}
		if activeCount > 0 {
			return ErrCustomerHasActiveBooking
		}

		t, err := tx.Tables().FindByIDForUpdate(ctx, req.TableID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrTableNotFound)
			}
			return err
		}

		if !t.IsAvailable() {
			return ErrTableUnavailable
		}
		if !t.Seats(guests.Value()) {
			return ErrTableTooSmall
		}

		// Backstop in case an admin override put the table back to
		// AVAILABLE while an active booking still holds the slot.
		taken, err := tx.Bookings().ExistsActiveForSlot(ctx, t.ID(), date.Value(), slot.String())
		if err != nil {
			return err
		}
		if taken {
			return ErrSlotConflict
		}

		b, err := booking.NewBooking(customerID, t.ID(), date, slot, req.DurationMin, guests, req.SpecialRequests, now)
		if err != nil {
			return errs.Mark(err, ErrBookingValidation)
		}

		if err := tx.Bookings().Create(ctx, b); err != nil {
			return mapBookingWriteErr(err)
		}
		bookingID = b.ID()

		if err := tx.Tables().UpdateStatus(ctx, t.ID(), table.StatusReserved, now); err != nil {
			return err
		}

		return enqueueBookingEvent(ctx, tx, topicBookingCreated, b, now)
	})
	if err != nil {
		return uuid.Nil, err
	}

	return bookingID, nil
}

// mapBookingWriteErr turns the invariant backstop indexes into the same
// deterministic conflicts the pre-checks produce, so a racing loser gets a
// clean rejection instead of a bare constraint violation.
func mapBookingWriteErr(err error) error {
	if infra.IsKind(err, infra.KindDuplicateKey) {
		switch infra.ViolatedConstraint(err) {
		case "uq_bookings_active_slot":
			return errs.Mark(err, ErrSlotConflict)
		case "uq_bookings_active_customer":
			return errs.Mark(err, ErrCustomerHasActiveBooking)
		}
	}
	return err
}

func (c *bookingCommandsImpl) ConfirmBooking(ctx context.Context, id uuid.UUID) error {
	return c.transition(ctx, id, topicBookingConfirmed, func(b *booking.Booking, now time.Time) error {
		return b.Confirm(now)
	}, nil)
}

// CancelBooking releases the table back to AVAILABLE along with the status
// change.
func (c *bookingCommandsImpl) CancelBooking(ctx context.Context, id uuid.UUID, actorID uuid.UUID, actorIsStaff bool) error {
	return c.transition(ctx, id, topicBookingCancelled, func(b *booking.Booking, now time.Time) error {
		if !actorIsStaff && b.CustomerID() != actorID {
			return ErrBookingNotOwned
		}
		return b.Cancel(now)
	}, releaseTable)
}

// CheckIn seats the party and flips the table to OCCUPIED in the same
// transaction.
func (c *bookingCommandsImpl) CheckIn(ctx context.Context, id uuid.UUID) error {
	return c.transition(ctx, id, topicBookingCheckedIn, func(b *booking.Booking, now time.Time) error {
		return b.CheckIn(now)
	}, func(ctx context.Context, tx shared.Tx, b *booking.Booking, now time.Time) error {
		return tx.Tables().UpdateStatus(ctx, b.TableID(), table.StatusOccupied, now)
	})
}

func (c *bookingCommandsImpl) CheckOut(ctx context.Context, id uuid.UUID) error {
	return c.transition(ctx, id, topicBookingCompleted, func(b *booking.Booking, now time.Time) error {
		return b.CheckOut(now)
	}, releaseTable)
}

func (c *bookingCommandsImpl) MarkNoShow(ctx context.Context, id uuid.UUID) error {
	return c.transition(ctx, id, topicBookingNoShow, func(b *booking.Booking, now time.Time) error {
		return b.MarkNoShow(now)
	}, releaseTable)
}

func releaseTable(ctx context.Context, tx shared.Tx, b *booking.Booking, now time.Time) error {
	return tx.Tables().UpdateStatus(ctx, b.TableID(), table.StatusAvailable, now)
}

func (c *bookingCommandsImpl) transition(
	ctx context.Context,
	id uuid.UUID,
	topic string,
	apply func(b *booking.Booking, now time.Time) error,
	sideEffect func(ctx context.Context, tx shared.Tx, b *booking.Booking, now time.Time) error,
) error {
	now := c.clock.Now()

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByIDForUpdate(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrBookingNotFound)
			}
			return err
		}

		if err := apply(b, now); err != nil {
			if errors.Is(err, booking.ErrInvalidTransition) {
				return errs.Mark(err, ErrBookingStateConflict)
			}
			return err
		}

		if err := tx.Bookings().UpdateStatus(ctx, b.ID(), b.Status(), now); err != nil {
			return err
		}

		if sideEffect != nil {
			if err := sideEffect(ctx, tx, b, now); err != nil {
				return err
			}
		}

		return enqueueBookingEvent(ctx, tx, topic, b, now)
	})
}

func enqueueBookingEvent(ctx context.Context, tx shared.Tx, topic string, b *booking.Booking, now time.Time) error {
	payload, err := json.Marshal(bookingEvent{
		BookingID:  b.ID(),
		CustomerID: b.CustomerID(),
		TableID:    b.TableID(),
		Date:       b.BookingDate().String(),
		Slot:       b.Slot().String(),
		Status:     b.Status().String(),
	})
	if err != nil {
		slog.Warn("failed to marshal booking event", "booking_id", b.ID(), "error", err.Error())
		return nil
	}
	return tx.Outbox().CreateJob(ctx, topic, payload, now)
}
