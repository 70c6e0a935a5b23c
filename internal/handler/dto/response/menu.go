package response

import (
	"log/slog"
	"time"

	"restobook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type MenuItemResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	PriceMinor  int64     `json:"priceMinor"`
	Category    string    `json:"category,omitempty"`
	Available   bool      `json:"available"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CreateMenuItemResponse struct {
	ID uuid.UUID `json:"id"`
}

func FromMenuItemView(v *queries.MenuItemView) *MenuItemResponse {
	var resp MenuItemResponse
	if err := copier.Copy(&resp, v); err != nil {
		slog.Warn("failed to map menu item view", "error", err.Error())
	}
	return &resp
}

type MenuListResponse struct {
	Items      []*MenuItemResponse `json:"items"`
	NextCursor string              `json:"nextCursor,omitempty"`
}

func FromMenuItemViews(views []*queries.MenuItemView, next *queries.Cursor) *MenuListResponse {
	result := make([]*MenuItemResponse, len(views))
	for i, v := range views {
		result[i] = FromMenuItemView(v)
	}
	resp := &MenuListResponse{Items: result}
	if next != nil {
		resp.NextCursor = next.After
	}
	return resp
}
