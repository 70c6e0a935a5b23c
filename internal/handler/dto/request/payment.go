package request

import (
	"github.com/google/uuid"
)

type CreatePaymentIntentRequest struct {
	OrderID uuid.UUID `json:"orderId" binding:"required"`
	Method  string    `json:"method" binding:"required"`
}

// VerifyPaymentRequest carries the gateway callback triplet. The signature is
// an HMAC over "orderRef|paymentRef" and is checked before any state changes.
type VerifyPaymentRequest struct {
	GatewayOrderRef   string `json:"gatewayOrderRef" binding:"required"`
	GatewayPaymentRef string `json:"gatewayPaymentRef" binding:"required"`
	GatewaySignature  string `json:"gatewaySignature" binding:"required"`
}

type ProcessPaymentRequest struct {
	OrderID uuid.UUID `json:"orderId" binding:"required"`
	Method  string    `json:"method" binding:"required"`
}
