package shared

import (
	"context"
	"time"

	"restobook/internal/domain/booking"
	"restobook/internal/domain/feedback"
	"restobook/internal/domain/menu"
	"restobook/internal/domain/order"
	"restobook/internal/domain/payment"
	"restobook/internal/domain/table"
	"restobook/internal/domain/user"

	"github.com/google/uuid"
)

// UnitOfWork runs write paths in a single transaction so a precondition check
// and the write it guards commit (or roll back) together.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Tables() TableRepository
	Bookings() BookingRepository
	Orders() OrderRepository
	Payments() PaymentRepository
	Menu() MenuRepository
	Users() UserRepository
	Feedback() FeedbackRepository
	Outbox() OutboxRepository
}

type TableRepository interface {
	Create(ctx context.Context, t *table.Table) error
	Update(ctx context.Context, t *table.Table) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*table.Table, error)
	// FindByIDForUpdate locks the table row, serializing concurrent booking
	// attempts against the same table.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*table.Table, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status table.Status, updatedAt time.Time) error
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status booking.Status, updatedAt time.Time) error
	CountActiveByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error)
	ExistsActiveForSlot(ctx context.Context, tableID uuid.UUID, date time.Time, slot string) (bool, error)
}

type OrderRepository interface {
	Create(ctx context.Context, o *order.Order) error
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*order.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status order.Status, updatedAt time.Time) error
	// Delete removes the order and its line items together.
	Delete(ctx context.Context, id uuid.UUID) error
}

type PaymentRepository interface {
	Create(ctx context.Context, p *payment.Payment) error
	Save(ctx context.Context, p *payment.Payment) error
	FindByOrderIDForUpdate(ctx context.Context, orderID uuid.UUID) (*payment.Payment, error)
	FindByGatewayOrderRefForUpdate(ctx context.Context, gatewayOrderRef string) (*payment.Payment, error)
}

type MenuRepository interface {
	Create(ctx context.Context, item *menu.Item) error
	Update(ctx context.Context, item *menu.Item) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*menu.Item, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

// FeedbackRepository persists customer feedback. Every write is followed by
// RecalcStats in the same transaction so the aggregate row never drifts from
// the entries it summarizes.
type FeedbackRepository interface {
	Create(ctx context.Context, f *feedback.Feedback) error
	Save(ctx context.Context, f *feedback.Feedback) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*feedback.Feedback, error)
	RecalcStats(ctx context.Context) error
}

// OutboxRepository queues domain events in the same transaction as the state
// change that produced them; a relay publishes them after commit.
type OutboxRepository interface {
	CreateJob(ctx context.Context, topic string, payload []byte, runAt time.Time) error
}
