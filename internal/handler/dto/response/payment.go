package response

import (
	"time"

	"restobook/internal/usecase/commands"
	"restobook/internal/usecase/queries"

	"github.com/google/uuid"
)

type PaymentIntentResponse struct {
	PaymentID       uuid.UUID `json:"paymentId"`
	OrderID         uuid.UUID `json:"orderId"`
	GatewayOrderRef string    `json:"gatewayOrderRef"`
	AmountMinor     int64     `json:"amountMinor"`
	Currency        string    `json:"currency"`
	GatewayKeyID    string    `json:"gatewayKeyId"`
}

type VerifyPaymentResponse struct {
	OrderID   uuid.UUID `json:"orderId"`
	PaymentID uuid.UUID `json:"paymentId"`
	Status    string    `json:"status"`
	Replayed  bool      `json:"replayed"`
}

type PaymentResponse struct {
	ID                uuid.UUID  `json:"id"`
	OrderID           uuid.UUID  `json:"orderId"`
	AmountMinor       int64      `json:"amountMinor"`
	Method            string     `json:"method"`
	GatewayOrderRef   string     `json:"gatewayOrderRef,omitempty"`
	GatewayPaymentRef string     `json:"gatewayPaymentRef,omitempty"`
	Status            string     `json:"status"`
	Success           bool       `json:"success"`
	PaymentDate       *time.Time `json:"paymentDate,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
}

func FromPaymentIntent(r *commands.PaymentIntentResult) *PaymentIntentResponse {
	return &PaymentIntentResponse{
		PaymentID:       r.PaymentID,
		OrderID:         r.OrderID,
		GatewayOrderRef: r.GatewayOrderRef,
		AmountMinor:     r.AmountMinor,
		Currency:        r.Currency,
		GatewayKeyID:    r.GatewayKeyID,
	}
}

func FromVerifyResult(r *commands.VerifyPaymentResult) *VerifyPaymentResponse {
	return &VerifyPaymentResponse{
		OrderID:   r.OrderID,
		PaymentID: r.PaymentID,
		Status:    "SUCCESS",
		Replayed:  r.Replayed,
	}
}

func FromPaymentView(v *queries.PaymentView) *PaymentResponse {
	return &PaymentResponse{
		ID:                v.ID,
		OrderID:           v.OrderID,
		AmountMinor:       v.AmountMinor,
		Method:            v.Method,
		GatewayOrderRef:   v.GatewayOrderRef,
		GatewayPaymentRef: v.GatewayPaymentRef,
		Status:            v.Status,
		Success:           v.Success,
		PaymentDate:       v.PaymentDate,
		CreatedAt:         v.CreatedAt,
	}
}
