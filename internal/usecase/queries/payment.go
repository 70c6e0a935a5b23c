package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type PaymentView struct {
	ID                uuid.UUID  `json:"id"`
	OrderID           uuid.UUID  `json:"order_id"`
	AmountMinor       int64      `json:"amount_minor"`
	Method            string     `json:"method"`
	GatewayOrderRef   string     `json:"gateway_order_ref,omitempty"`
	GatewayPaymentRef string     `json:"gateway_payment_ref,omitempty"`
	Status            string     `json:"status"`
	Success           bool       `json:"success"`
	PaymentDate       *time.Time `json:"payment_date,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

type PaymentReadStore interface {
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*PaymentView, error)
}

type PaymentQueries interface {
	GetByOrderID(ctx context.Context, orderID uuid.UUID) (*PaymentView, error)
}

type paymentQueriesImpl struct {
	store PaymentReadStore
}

func NewPaymentQueries(store PaymentReadStore) PaymentQueries {
	return &paymentQueriesImpl{store: store}
}

func (q *paymentQueriesImpl) GetByOrderID(ctx context.Context, orderID uuid.UUID) (*PaymentView, error) {
	return q.store.FindByOrderID(ctx, orderID)
}
