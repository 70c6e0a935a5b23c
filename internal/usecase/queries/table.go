package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type TableView struct {
	ID        uuid.UUID `json:"id"`
	Number    int32     `json:"number"`
	Capacity  int32     `json:"capacity"`
	Location  string    `json:"location"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type TableReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*TableView, error)
	FindAll(ctx context.Context) ([]*TableView, error)
	// FindAvailable returns AVAILABLE tables seating at least guests with no
	// active booking for the given date and slot.
	FindAvailable(ctx context.Context, date time.Time, slot string, guests int32) ([]*TableView, error)
}

type TableQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*TableView, error)
	List(ctx context.Context) ([]*TableView, error)
	ListAvailable(ctx context.Context, date time.Time, slot string, guests int32) ([]*TableView, error)
}

type tableQueriesImpl struct {
	store TableReadStore
}

func NewTableQueries(store TableReadStore) TableQueries {
	return &tableQueriesImpl{store: store}
}

func (q *tableQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*TableView, error) {
	return q.store.FindByID(ctx, id)
}

func (q *tableQueriesImpl) List(ctx context.Context) ([]*TableView, error) {
	return q.store.FindAll(ctx)
}

func (q *tableQueriesImpl) ListAvailable(ctx context.Context, date time.Time, slot string, guests int32) ([]*TableView, error) {
	return q.store.FindAvailable(ctx, date, slot, guests)
}
