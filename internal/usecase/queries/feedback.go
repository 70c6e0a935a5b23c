package queries

import (
	"context"
	"time"

	"restobook/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrFeedbackAccessDenied = errs.New("feedback belongs to another customer")

type FeedbackView struct {
	ID            uuid.UUID  `json:"id"`
	CustomerID    uuid.UUID  `json:"customer_id"`
	CustomerName  string     `json:"customer_name"`
	CustomerEmail string     `json:"customer_email"`
	OrderID       *uuid.UUID `json:"order_id,omitempty"`
	Rating        int32      `json:"rating"`
	Comment       string     `json:"comment"`
	Category      string     `json:"category"`
	Status        string     `json:"status"`
	AdminNotes    string     `json:"admin_notes"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type FeedbackListItem struct {
	ID            uuid.UUID `json:"id"`
	CustomerEmail string    `json:"customer_email"`
	Rating        int32     `json:"rating"`
	Comment       string    `json:"comment"`
	Category      string    `json:"category"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// FeedbackStatsView is the maintained aggregate row plus a per-category
// breakdown computed at read time.
type FeedbackStatsView struct {
	TotalFeedback int64           `json:"total_feedback"`
	AverageRating float64         `json:"average_rating"`
	Rating1Count  int64           `json:"rating_1_count"`
	Rating2Count  int64           `json:"rating_2_count"`
	Rating3Count  int64           `json:"rating_3_count"`
	Rating4Count  int64           `json:"rating_4_count"`
	Rating5Count  int64           `json:"rating_5_count"`
	PendingCount  int64           `json:"pending_count"`
	ReviewedCount int64           `json:"reviewed_count"`
	ResolvedCount int64           `json:"resolved_count"`
	Categories    []CategoryCount `json:"categories"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// FeedbackFilters narrows the staff listing; nil fields mean no filter.
// Search matches against the comment text.
type FeedbackFilters struct {
	Status   *string
	Category *string
	Search   *string
}

type FeedbackReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*FeedbackView, error)
	FindAllFirstPage(ctx context.Context, filters FeedbackFilters, limit int32) ([]*FeedbackListItem, error)
	FindAllKeyset(ctx context.Context, filters FeedbackFilters, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*FeedbackListItem, error)
	FindByCustomerFirstPage(ctx context.Context, customerID uuid.UUID, limit int32) ([]*FeedbackListItem, error)
	FindByCustomerKeyset(ctx context.Context, customerID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*FeedbackListItem, error)
	GetStats(ctx context.Context) (*FeedbackStatsView, error)
}

type FeedbackQueries interface {
	// GetByID enforces ownership: customers see only their own entries,
	// staff see any.
	GetByID(ctx context.Context, actorID uuid.UUID, actorIsStaff bool, id uuid.UUID) (*FeedbackView, error)
	ListAll(ctx context.Context, filters FeedbackFilters, cursor *Cursor, limit int) ([]*FeedbackListItem, *Cursor, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID, cursor *Cursor, limit int) ([]*FeedbackListItem, *Cursor, error)
	GetStats(ctx context.Context) (*FeedbackStatsView, error)
}

type feedbackQueriesImpl struct {
	store FeedbackReadStore
}

func NewFeedbackQueries(store FeedbackReadStore) FeedbackQueries {
	return &feedbackQueriesImpl{store: store}
}

func (q *feedbackQueriesImpl) GetByID(ctx context.Context, actorID uuid.UUID, actorIsStaff bool, id uuid.UUID) (*FeedbackView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actorIsStaff && view.CustomerID != actorID {
		return nil, ErrFeedbackAccessDenied
	}
	return view, nil
}

func (q *feedbackQueriesImpl) ListAll(ctx context.Context, filters FeedbackFilters, cursor *Cursor, limit int) ([]*FeedbackListItem, *Cursor, error) {
	limit = ValidateLimit(limit)

	var (
		rows []*FeedbackListItem
		err  error
	)
	if cursor == nil || cursor.After == "" {
		rows, err = q.store.FindAllFirstPage(ctx, filters, int32(limit+1))
	} else {
		lastCreatedAt, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, ErrInvalidCursor
		}
		rows, err = q.store.FindAllKeyset(ctx, filters, lastCreatedAt, lastID, int32(limit+1))
	}
	if err != nil {
		return nil, nil, err
	}

	return feedbackPage(rows, limit)
}

func (q *feedbackQueriesImpl) ListByCustomer(ctx context.Context, customerID uuid.UUID, cursor *Cursor, limit int) ([]*FeedbackListItem, *Cursor, error) {
	limit = ValidateLimit(limit)

	var (
		rows []*FeedbackListItem
		err  error
	)
	if cursor == nil || cursor.After == "" {
		rows, err = q.store.FindByCustomerFirstPage(ctx, customerID, int32(limit+1))
	} else {
		lastCreatedAt, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, ErrInvalidCursor
		}
		rows, err = q.store.FindByCustomerKeyset(ctx, customerID, lastCreatedAt, lastID, int32(limit+1))
	}
	if err != nil {
		return nil, nil, err
	}

	return feedbackPage(rows, limit)
}

func (q *feedbackQueriesImpl) GetStats(ctx context.Context) (*FeedbackStatsView, error) {
	return q.store.GetStats(ctx)
}

// feedbackPage trims the limit+1 overfetch down to a page and, when a row was
// trimmed, returns the cursor of the last kept row.
func feedbackPage(rows []*FeedbackListItem, limit int) ([]*FeedbackListItem, *Cursor, error) {
	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
		rows = rows[:limit]
	}
	return rows, next, nil
}
