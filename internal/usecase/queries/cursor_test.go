//go:build unit

package queries_test

import (
	"context"
	"encoding/base64"
	"fmt"
	"testing"
	"time"

	"restobook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAfterCursorRoundTrip(t *testing.T) {
	id := uuid.New()
	at := time.Date(2026, 8, 31, 19, 30, 0, 123456789, time.UTC)

	gotAt, gotID, err := queries.DecodeAfterCursor(queries.EncodeAfterCursor(at, id))
	require.NoError(t, err)
	assert.Equal(t, id, gotID)
	// timestamptz keeps microseconds; the nanosecond tail is shed.
	assert.Equal(t, at.Truncate(time.Microsecond), gotAt)
}

func TestDecodeAfterCursorRejectsGarbage(t *testing.T) {
	cases := map[string]string{
		"not base64":        "%%%",
		"wrong version":     base64.URLEncoding.EncodeToString([]byte("v2:123-" + uuid.NewString())),
		"missing separator": base64.URLEncoding.EncodeToString([]byte("v1:123456")),
		"bad timestamp":     base64.URLEncoding.EncodeToString([]byte("v1:abc-" + uuid.NewString())),
		"bad uuid":          base64.URLEncoding.EncodeToString([]byte("v1:123-not-a-uuid")),
	}
	for name, after := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := queries.DecodeAfterCursor(after)
			assert.ErrorIs(t, err, queries.ErrInvalidCursor)
		})
	}
}

func TestValidateLimit(t *testing.T) {
	assert.Equal(t, queries.DefaultListLimit, queries.ValidateLimit(0))
	assert.Equal(t, queries.DefaultListLimit, queries.ValidateLimit(-5))
	assert.Equal(t, 50, queries.ValidateLimit(50))
	assert.Equal(t, queries.MaxListLimit, queries.ValidateLimit(10_000))
}

type staticMenuStore struct {
	views []*queries.MenuItemView
}

func (s *staticMenuStore) FindByID(_ context.Context, id uuid.UUID) (*queries.MenuItemView, error) {
	for _, v := range s.views {
		if v.ID == id {
			return v, nil
		}
	}
	return nil, fmt.Errorf("menu item %s not found", id)
}

func (s *staticMenuStore) FindAll(_ context.Context) ([]*queries.MenuItemView, error) {
	return s.views, nil
}

func (s *staticMenuStore) FindByCategory(_ context.Context, _ string) ([]*queries.MenuItemView, error) {
	return s.views, nil
}

func (s *staticMenuStore) FindAvailable(_ context.Context) ([]*queries.MenuItemView, error) {
	return s.views, nil
}

func TestMenuListPagination(t *testing.T) {
	base := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	store := &staticMenuStore{}
	for i := range 5 {
		store.views = append(store.views, &queries.MenuItemView{
			ID:        uuid.New(),
			Name:      fmt.Sprintf("Item %d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}
	q := queries.NewMenuQueries(store)
	ctx := context.Background()

	t.Run("walks the whole list in pages without overlap", func(t *testing.T) {
		first, next, err := q.List(ctx, nil, 2)
		require.NoError(t, err)
		require.Len(t, first, 2)
		require.NotNil(t, next)
		assert.Equal(t, "Item 0", first[0].Name)

		second, next, err := q.List(ctx, next, 2)
		require.NoError(t, err)
		require.Len(t, second, 2)
		require.NotNil(t, next)
		assert.Equal(t, "Item 2", second[0].Name)

		last, next, err := q.List(ctx, next, 2)
		require.NoError(t, err)
		require.Len(t, last, 1)
		assert.Equal(t, "Item 4", last[0].Name)
		assert.Nil(t, next)
	})

	t.Run("exact final page yields no cursor", func(t *testing.T) {
		_, next, err := q.List(ctx, nil, 5)
		require.NoError(t, err)
		assert.Nil(t, next)
	})

	t.Run("malformed cursor", func(t *testing.T) {
		_, _, err := q.List(ctx, &queries.Cursor{After: "!!"}, 2)
		assert.ErrorIs(t, err, queries.ErrInvalidCursor)
	})

	t.Run("cursor pointing at a vanished row restarts past the end", func(t *testing.T) {
		after := queries.EncodeAfterCursor(base, uuid.New())
		rows, next, err := q.List(ctx, &queries.Cursor{After: after}, 2)
		require.NoError(t, err)
		assert.Empty(t, rows)
		assert.Nil(t, next)
	})
}
