package payment

import (
	"errors"
	"time"

	"restobook/internal/domain/money"

	"github.com/google/uuid"
)

var (
	ErrInvalidMethod    = errors.New("invalid payment method")
	ErrAlreadyFinalized = errors.New("payment already finalized")
)

// Payment holds the single payment record for an order. Until it succeeds,
// re-requesting an intent updates the same record instead of inserting a
// duplicate; success is recorded exactly once.
type Payment struct {
	id                uuid.UUID
	orderID           uuid.UUID
	amount            money.Money
	method            Method
	gatewayOrderRef   string
	gatewayPaymentRef string
	gatewaySignature  string
	status            Status
	success           bool
	paymentDate       *time.Time
	createdAt         time.Time
	updatedAt         time.Time
}

func NewIntent(orderID uuid.UUID, amount money.Money, method Method, gatewayOrderRef string, now time.Time) *Payment {
	return &Payment{
		id:              uuid.New(),
		orderID:         orderID,
		amount:          amount,
		method:          method,
		gatewayOrderRef: gatewayOrderRef,
		status:          StatusPending,
		success:         false,
		createdAt:       now,
		updatedAt:       now,
	}
}

// NewSettled records an offline (cash/manual) payment as immediately successful.
func NewSettled(orderID uuid.UUID, amount money.Money, method Method, now time.Time) *Payment {
	paidAt := now
	return &Payment{
		id:                uuid.New(),
		orderID:           orderID,
		amount:            amount,
		method:            method,
		gatewayPaymentRef: uuid.NewString(),
		status:            StatusSuccess,
		success:           true,
		paymentDate:       &paidAt,
		createdAt:         now,
		updatedAt:         now,
	}
}

func Reconstruct(
	id, orderID uuid.UUID,
	amount money.Money,
	method Method,
	gatewayOrderRef, gatewayPaymentRef, gatewaySignature string,
	status Status,
	success bool,
	paymentDate *time.Time,
	createdAt, updatedAt time.Time,
) *Payment {
	return &Payment{
		id:                id,
		orderID:           orderID,
		amount:            amount,
		method:            method,
		gatewayOrderRef:   gatewayOrderRef,
		gatewayPaymentRef: gatewayPaymentRef,
		gatewaySignature:  gatewaySignature,
		status:            status,
		success:           success,
		paymentDate:       paymentDate,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}
}

// Reissue points an unsettled payment at a fresh gateway order.
func (p *Payment) Reissue(amount money.Money, method Method, gatewayOrderRef string, now time.Time) error {
	if p.success {
		return ErrAlreadyFinalized
	}
	p.amount = amount
	p.method = method
	p.gatewayOrderRef = gatewayOrderRef
	p.status = StatusPending
	p.updatedAt = now
	return nil
}

// MarkSucceeded finalizes the payment. Finalizing twice is rejected so the
// caller can treat a replayed confirmation as a no-op.
func (p *Payment) MarkSucceeded(gatewayPaymentRef, gatewaySignature string, now time.Time) error {
	if p.success {
		return ErrAlreadyFinalized
	}
	p.gatewayPaymentRef = gatewayPaymentRef
	p.gatewaySignature = gatewaySignature
	p.status = StatusSuccess
	p.success = true
	p.paymentDate = &now
	p.updatedAt = now
	return nil
}

func (p *Payment) MarkFailed(now time.Time) error {
	if p.success {
		return ErrAlreadyFinalized
	}
	p.status = StatusFailed
	p.success = false
	p.updatedAt = now
	return nil
}

func (p *Payment) IsFinalized() bool {
	return p.success
}

func (p *Payment) ID() uuid.UUID             { return p.id }
func (p *Payment) OrderID() uuid.UUID        { return p.orderID }
func (p *Payment) Amount() money.Money       { return p.amount }
func (p *Payment) Method() Method            { return p.method }
func (p *Payment) GatewayOrderRef() string   { return p.gatewayOrderRef }
func (p *Payment) GatewayPaymentRef() string { return p.gatewayPaymentRef }
func (p *Payment) GatewaySignature() string  { return p.gatewaySignature }
func (p *Payment) Status() Status            { return p.status }
func (p *Payment) Success() bool             { return p.success }
func (p *Payment) PaymentDate() *time.Time   { return p.paymentDate }
func (p *Payment) CreatedAt() time.Time      { return p.createdAt }
func (p *Payment) UpdatedAt() time.Time      { return p.updatedAt }
