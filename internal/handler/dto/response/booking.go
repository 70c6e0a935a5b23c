package response

import (
	"time"

	"restobook/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID              uuid.UUID `json:"id"`
	CustomerID      uuid.UUID `json:"customerId"`
	TableID         uuid.UUID `json:"tableId"`
	TableNumber     int32     `json:"tableNumber"`
	BookingDate     string    `json:"bookingDate"`
	Slot            string    `json:"slot"`
	DurationMin     int32     `json:"durationMin"`
	Guests          int32     `json:"guests"`
	Status          string    `json:"status"`
	SpecialRequests string    `json:"specialRequests,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type CreateBookingResponse struct {
	ID uuid.UUID `json:"id"`
}

func FromBookingView(v *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:              v.ID,
		CustomerID:      v.CustomerID,
		TableID:         v.TableID,
		TableNumber:     v.TableNumber,
		BookingDate:     v.BookingDate.Format("2006-01-02"),
		Slot:            v.Slot,
		DurationMin:     v.DurationMin,
		Guests:          v.Guests,
		Status:          v.Status,
		SpecialRequests: v.SpecialRequests,
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
	}
}

type BookingListResponse struct {
	Bookings   []*BookingResponse `json:"bookings"`
	NextCursor string             `json:"nextCursor,omitempty"`
}

func FromBookingViews(views []*queries.BookingView, next *queries.Cursor) *BookingListResponse {
	result := make([]*BookingResponse, len(views))
	for i, v := range views {
		result[i] = FromBookingView(v)
	}
	resp := &BookingListResponse{Bookings: result}
	if next != nil {
		resp.NextCursor = next.After
	}
	return resp
}
