package response

import (
	"time"

	"restobook/internal/usecase/queries"

	"github.com/google/uuid"
)

type FeedbackResponse struct {
	ID            uuid.UUID  `json:"id"`
	CustomerID    uuid.UUID  `json:"customerId"`
	CustomerName  string     `json:"customerName"`
	CustomerEmail string     `json:"customerEmail"`
	OrderID       *uuid.UUID `json:"orderId,omitempty"`
	Rating        int32      `json:"rating"`
	Comment       string     `json:"comment,omitempty"`
	Category      string     `json:"category"`
	Status        string     `json:"status"`
	AdminNotes    string     `json:"adminNotes,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

type SubmitFeedbackResponse struct {
	ID uuid.UUID `json:"id"`
}

type FeedbackListItemResponse struct {
	ID            uuid.UUID `json:"id"`
	CustomerEmail string    `json:"customerEmail"`
	Rating        int32     `json:"rating"`
	Comment       string    `json:"comment,omitempty"`
	Category      string    `json:"category"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

type FeedbackListResponse struct {
	Feedback   []*FeedbackListItemResponse `json:"feedback"`
	NextCursor string                      `json:"nextCursor,omitempty"`
}

type FeedbackCategoryCountResponse struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

type FeedbackStatsResponse struct {
	TotalFeedback int64                           `json:"totalFeedback"`
	AverageRating float64                         `json:"averageRating"`
	Rating1Count  int64                           `json:"rating1Count"`
	Rating2Count  int64                           `json:"rating2Count"`
	Rating3Count  int64                           `json:"rating3Count"`
	Rating4Count  int64                           `json:"rating4Count"`
	Rating5Count  int64                           `json:"rating5Count"`
	PendingCount  int64                           `json:"pendingCount"`
	ReviewedCount int64                           `json:"reviewedCount"`
	ResolvedCount int64                           `json:"resolvedCount"`
	Categories    []FeedbackCategoryCountResponse `json:"categories"`
	UpdatedAt     time.Time                       `json:"updatedAt"`
}

func FromFeedbackView(v *queries.FeedbackView) *FeedbackResponse {
	return &FeedbackResponse{
		ID:            v.ID,
		CustomerID:    v.CustomerID,
		CustomerName:  v.CustomerName,
		CustomerEmail: v.CustomerEmail,
		OrderID:       v.OrderID,
		Rating:        v.Rating,
		Comment:       v.Comment,
		Category:      v.Category,
		Status:        v.Status,
		AdminNotes:    v.AdminNotes,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
}

func FromFeedbackList(items []*queries.FeedbackListItem, next *queries.Cursor) *FeedbackListResponse {
	out := make([]*FeedbackListItemResponse, len(items))
	for i, item := range items {
		out[i] = &FeedbackListItemResponse{
			ID:            item.ID,
			CustomerEmail: item.CustomerEmail,
			Rating:        item.Rating,
			Comment:       item.Comment,
			Category:      item.Category,
			Status:        item.Status,
			CreatedAt:     item.CreatedAt,
		}
	}
	resp := &FeedbackListResponse{Feedback: out}
	if next != nil {
		resp.NextCursor = next.After
	}
	return resp
}

func FromFeedbackStats(v *queries.FeedbackStatsView) *FeedbackStatsResponse {
	categories := make([]FeedbackCategoryCountResponse, len(v.Categories))
	for i, cc := range v.Categories {
		categories[i] = FeedbackCategoryCountResponse{Category: cc.Category, Count: cc.Count}
	}
	return &FeedbackStatsResponse{
		TotalFeedback: v.TotalFeedback,
		AverageRating: v.AverageRating,
		Rating1Count:  v.Rating1Count,
		Rating2Count:  v.Rating2Count,
		Rating3Count:  v.Rating3Count,
		Rating4Count:  v.Rating4Count,
		Rating5Count:  v.Rating5Count,
		PendingCount:  v.PendingCount,
		ReviewedCount: v.ReviewedCount,
		ResolvedCount: v.ResolvedCount,
		Categories:    categories,
		UpdatedAt:     v.UpdatedAt,
	}
}
