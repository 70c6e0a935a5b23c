package request

import "github.com/google/uuid"

type SubmitFeedbackRequest struct {
	OrderID  *uuid.UUID `json:"orderId,omitempty"`
	Rating   int32      `json:"rating" binding:"required,min=1,max=5"`
	Comment  string     `json:"comment,omitempty"`
	Category string     `json:"category" binding:"required"`
}

type UpdateFeedbackRequest struct {
	Rating  int32  `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment,omitempty"`
}

type ModerateFeedbackRequest struct {
	Status     string `json:"status" binding:"required"`
	AdminNotes string `json:"adminNotes,omitempty"`
}
