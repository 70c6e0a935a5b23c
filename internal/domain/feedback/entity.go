package feedback

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrLocked rejects customer edits once staff has picked the entry up.
	ErrLocked = errors.New("feedback is no longer editable")
)

// Feedback is a customer's rating of a visit. It may reference the completed
// order it rates, or stand alone as general feedback about the restaurant.
type Feedback struct {
	id         uuid.UUID
	customerID uuid.UUID
	orderID    *uuid.UUID
	rating     Rating
	comment    Comment
	category   Category
	status     Status
	adminNotes string
	createdAt  time.Time
	updatedAt  time.Time
}

func NewFeedback(
	customerID uuid.UUID,
	orderID *uuid.UUID,
	rating Rating,
	comment Comment,
	category Category,
	now time.Time,
) *Feedback {
	return &Feedback{
		id:         uuid.New(),
		customerID: customerID,
		orderID:    orderID,
		rating:     rating,
		comment:    comment,
		category:   category,
		status:     StatusPending,
		createdAt:  now,
		updatedAt:  now,
	}
}

func Reconstruct(
	id, customerID uuid.UUID,
	orderID *uuid.UUID,
	rating Rating,
	comment Comment,
	category Category,
	status Status,
	adminNotes string,
	createdAt, updatedAt time.Time,
) *Feedback {
	return &Feedback{
		id:         id,
		customerID: customerID,
		orderID:    orderID,
		rating:     rating,
		comment:    comment,
		category:   category,
		status:     status,
		adminNotes: adminNotes,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// Revise lets the author amend rating and comment while the entry is still
// PENDING. Once staff has moved it on, the text is frozen so admin notes
// keep referring to what was actually reviewed.
func (f *Feedback) Revise(rating Rating, comment Comment, now time.Time) error {
	if f.status != StatusPending {
		return ErrLocked
	}
	f.rating = rating
	f.comment = comment
	f.updatedAt = now
	return nil
}

// Moderate records the staff triage decision and optional internal notes.
func (f *Feedback) Moderate(status Status, adminNotes string, now time.Time) error {
	if !status.IsValid() {
		return ErrInvalidStatus
	}
	f.status = status
	f.adminNotes = strings.TrimSpace(adminNotes)
	f.updatedAt = now
	return nil
}

func (f *Feedback) ID() uuid.UUID         { return f.id }
func (f *Feedback) CustomerID() uuid.UUID { return f.customerID }
func (f *Feedback) OrderID() *uuid.UUID   { return f.orderID }
func (f *Feedback) Rating() Rating        { return f.rating }
func (f *Feedback) Comment() Comment      { return f.comment }
func (f *Feedback) Category() Category    { return f.category }
func (f *Feedback) Status() Status        { return f.status }
func (f *Feedback) AdminNotes() string    { return f.adminNotes }
func (f *Feedback) CreatedAt() time.Time  { return f.createdAt }
func (f *Feedback) UpdatedAt() time.Time  { return f.updatedAt }
