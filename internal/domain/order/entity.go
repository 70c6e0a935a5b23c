package order

import (
	"errors"
	"strings"
	"time"

	"restobook/internal/domain/money"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrInvalidTransition = errors.New("order transition not permitted from current status")
	ErrNotCancellable    = errors.New("only pending orders can be cancelled")
)

type Order struct {
	id                  uuid.UUID
	customerID          uuid.UUID
	bookingID           *uuid.UUID
	status              Status
	totalAmount         money.Money
	specialInstructions string
	items               []Item
	createdAt           time.Time
	updatedAt           time.Time
}

// NewOrder computes the total from the item snapshots once, at creation.
func NewOrder(
	customerID uuid.UUID,
	bookingID *uuid.UUID,
	items []Item,
	specialInstructions string,
	now time.Time,
) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}

	total := money.New(0)
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}

	return &Order{
		id:                  uuid.New(),
		customerID:          customerID,
		bookingID:           bookingID,
		status:              StatusPending,
		totalAmount:         total,
		specialInstructions: strings.TrimSpace(specialInstructions),
		items:               append([]Item(nil), items...),
		createdAt:           now,
		updatedAt:           now,
	}, nil
}

func Reconstruct(
	id, customerID uuid.UUID,
	bookingID *uuid.UUID,
	status Status,
	totalAmount money.Money,
	specialInstructions string,
	items []Item,
	createdAt, updatedAt time.Time,
) *Order {
	return &Order{
		id:                  id,
		customerID:          customerID,
		bookingID:           bookingID,
		status:              status,
		totalAmount:         totalAmount,
		specialInstructions: specialInstructions,
		items:               append([]Item(nil), items...),
		createdAt:           createdAt,
		updatedAt:           updatedAt,
	}
}

func (o *Order) TransitionTo(next Status, now time.Time) error {
	if !next.IsValid() {
		return ErrInvalidStatus
	}
	if !o.status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	o.status = next
	o.updatedAt = now
	return nil
}

func (o *Order) Cancel(now time.Time) error {
	if o.status != StatusPending {
		return ErrNotCancellable
	}
	return o.TransitionTo(StatusCancelled, now)
}

// ConfirmPaid advances the order after its payment is finalized.
func (o *Order) ConfirmPaid(now time.Time) error {
	return o.TransitionTo(StatusConfirmed, now)
}

func (o *Order) ID() uuid.UUID               { return o.id }
func (o *Order) CustomerID() uuid.UUID       { return o.customerID }
func (o *Order) BookingID() *uuid.UUID       { return o.bookingID }
func (o *Order) Status() Status              { return o.status }
func (o *Order) TotalAmount() money.Money    { return o.totalAmount }
func (o *Order) SpecialInstructions() string { return o.specialInstructions }
func (o *Order) Items() []Item               { return append([]Item(nil), o.items...) }
func (o *Order) CreatedAt() time.Time        { return o.createdAt }
func (o *Order) UpdatedAt() time.Time        { return o.updatedAt }
