package commands

import (
	"context"
)

// GatewayOrder is the write-side snapshot of an order registered with the
// payment gateway.
type GatewayOrder struct {
	Ref         string
	AmountMinor int64
	Currency    string
}

// PaymentGateway abstracts the external payment provider.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*GatewayOrder, error)
	// VerifySignature reports whether signature is a valid HMAC for the
	// "orderRef|paymentRef" pair. Comparison must be constant-time.
	VerifySignature(orderRef, paymentRef, signature string) bool
	KeyID() string
}

// MenuCache is notified after menu writes commit so stale listings are dropped.
type MenuCache interface {
	Invalidate(ctx context.Context) error
}
