package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type MenuItemView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	PriceMinor  int64     `json:"price_minor"`
	Category    string    `json:"category,omitempty"`
	Available   bool      `json:"available"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MenuReadStore is implemented by the Postgres store and by the Redis
// read-through cache that wraps it.
type MenuReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*MenuItemView, error)
	FindAll(ctx context.Context) ([]*MenuItemView, error)
	FindByCategory(ctx context.Context, category string) ([]*MenuItemView, error)
	FindAvailable(ctx context.Context) ([]*MenuItemView, error)
}

type MenuQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*MenuItemView, error)
	List(ctx context.Context, cursor *Cursor, limit int) ([]*MenuItemView, *Cursor, error)
	ListByCategory(ctx context.Context, category string, cursor *Cursor, limit int) ([]*MenuItemView, *Cursor, error)
	ListAvailable(ctx context.Context, cursor *Cursor, limit int) ([]*MenuItemView, *Cursor, error)
}

type menuQueriesImpl struct {
	store MenuReadStore
}

func NewMenuQueries(store MenuReadStore) MenuQueries {
	return &menuQueriesImpl{store: store}
}

func (q *menuQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*MenuItemView, error) {
	return q.store.FindByID(ctx, id)
}

func (q *menuQueriesImpl) List(ctx context.Context, cursor *Cursor, limit int) ([]*MenuItemView, *Cursor, error) {
	views, err := q.store.FindAll(ctx)
	if err != nil {
		return nil, nil, err
	}
	return menuPage(views, cursor, limit)
}

func (q *menuQueriesImpl) ListByCategory(ctx context.Context, category string, cursor *Cursor, limit int) ([]*MenuItemView, *Cursor, error) {
	views, err := q.store.FindByCategory(ctx, category)
	if err != nil {
		return nil, nil, err
	}
	return menuPage(views, cursor, limit)
}

func (q *menuQueriesImpl) ListAvailable(ctx context.Context, cursor *Cursor, limit int) ([]*MenuItemView, *Cursor, error) {
	views, err := q.store.FindAvailable(ctx)
	if err != nil {
		return nil, nil, err
	}
	return menuPage(views, cursor, limit)
}

// menuPage walks the cached list in memory. Menu lists are cached whole in
// Redis ordered by (category, name), so the cursor resumes after the row
// whose id it carries rather than re-deriving a SQL keyset.
func menuPage(views []*MenuItemView, cursor *Cursor, limit int) ([]*MenuItemView, *Cursor, error) {
	limit = ValidateLimit(limit)

	start := 0
	if cursor != nil && cursor.After != "" {
		_, lastID, err := DecodeAfterCursor(cursor.After)
		if err != nil {
			return nil, nil, ErrInvalidCursor
		}
		start = len(views)
		for i, v := range views {
			if v.ID == lastID {
				start = i + 1
				break
			}
		}
	}

	end := start + limit
	var next *Cursor
	if end < len(views) {
		last := views[end-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
	} else {
		end = len(views)
	}
	return views[start:end], next, nil
}
