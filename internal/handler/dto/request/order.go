package request

import (
	"github.com/google/uuid"
)

type OrderItemRequest struct {
	MenuItemID          uuid.UUID `json:"menuItemId" binding:"required"`
	Quantity            int32     `json:"quantity" binding:"required,gte=1"`
	SpecialInstructions string    `json:"specialInstructions,omitempty"`
}

type CreateOrderRequest struct {
	BookingID           *uuid.UUID         `json:"bookingId,omitempty"`
	Items               []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	SpecialInstructions string             `json:"specialInstructions,omitempty"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
