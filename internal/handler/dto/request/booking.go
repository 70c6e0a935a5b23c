package request

import (
	"time"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	TableID         uuid.UUID `json:"tableId" binding:"required"`
	BookingDate     time.Time `json:"bookingDate" binding:"required"`
	Slot            string    `json:"slot" binding:"required"`
	DurationMin     int32     `json:"durationMin" binding:"required,gt=0"`
	Guests          int32     `json:"guests" binding:"required,gt=0"`
	SpecialRequests string    `json:"specialRequests,omitempty"`
}
