package response

import (
	"time"

	"restobook/internal/usecase/queries"

	"github.com/google/uuid"
)

type OrderItemResponse struct {
	MenuItemID          uuid.UUID `json:"menuItemId"`
	MenuItemName        string    `json:"menuItemName"`
	Quantity            int32     `json:"quantity"`
	UnitPriceMinor      int64     `json:"unitPriceMinor"`
	SubtotalMinor       int64     `json:"subtotalMinor"`
	SpecialInstructions string    `json:"specialInstructions,omitempty"`
}

type OrderResponse struct {
	ID                  uuid.UUID           `json:"id"`
	CustomerID          uuid.UUID           `json:"customerId"`
	BookingID           *uuid.UUID          `json:"bookingId,omitempty"`
	Status              string              `json:"status"`
	TotalMinor          int64               `json:"totalMinor"`
	SpecialInstructions string              `json:"specialInstructions,omitempty"`
	Items               []OrderItemResponse `json:"items"`
	CreatedAt           time.Time           `json:"createdAt"`
	UpdatedAt           time.Time           `json:"updatedAt"`
}

type OrderListResponse struct {
	ID         uuid.UUID `json:"id"`
	CustomerID uuid.UUID `json:"customerId"`
	Status     string    `json:"status"`
	TotalMinor int64     `json:"totalMinor"`
	ItemCount  int32     `json:"itemCount"`
	CreatedAt  time.Time `json:"createdAt"`
}

type CreateOrderResponse struct {
	ID uuid.UUID `json:"id"`
}

func FromOrderView(v *queries.OrderView) *OrderResponse {
	items := make([]OrderItemResponse, len(v.Items))
	for i, item := range v.Items {
		items[i] = OrderItemResponse{
			MenuItemID:          item.MenuItemID,
			MenuItemName:        item.MenuItemName,
			Quantity:            item.Quantity,
			UnitPriceMinor:      item.UnitPriceMinor,
			SubtotalMinor:       item.SubtotalMinor,
			SpecialInstructions: item.SpecialInstructions,
		}
	}

	return &OrderResponse{
		ID:                  v.ID,
		CustomerID:          v.CustomerID,
		BookingID:           v.BookingID,
		Status:              v.Status,
		TotalMinor:          v.TotalMinor,
		SpecialInstructions: v.SpecialInstructions,
		Items:               items,
		CreatedAt:           v.CreatedAt,
		UpdatedAt:           v.UpdatedAt,
	}
}

type OrderPageResponse struct {
	Orders     []*OrderListResponse `json:"orders"`
	NextCursor string               `json:"nextCursor,omitempty"`
}

func FromOrderListItems(items []*queries.OrderListItem, next *queries.Cursor) *OrderPageResponse {
	result := make([]*OrderListResponse, len(items))
	for i, item := range items {
		result[i] = &OrderListResponse{
			ID:         item.ID,
			CustomerID: item.CustomerID,
			Status:     item.Status,
			TotalMinor: item.TotalMinor,
			ItemCount:  item.ItemCount,
			CreatedAt:  item.CreatedAt,
		}
	}
	resp := &OrderPageResponse{Orders: result}
	if next != nil {
		resp.NextCursor = next.After
	}
	return resp
}
