//go:build unit

package order_test

import (
	"testing"
	"time"

	"restobook/internal/domain/money"
	"restobook/internal/domain/order"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustItem(t *testing.T, name string, qty int32, unitPriceMinor int64) order.Item {
	t.Helper()
	item, err := order.NewItem(uuid.New(), name, qty, money.New(unitPriceMinor), "")
	require.NoError(t, err)
	return item
}

func TestNewOrder(t *testing.T) {
	now := time.Now()

	t.Run("total is the sum of line subtotals", func(t *testing.T) {
		items := []order.Item{
			mustItem(t, "Paneer Tikka", 2, 32000),
			mustItem(t, "Garlic Naan", 3, 6000),
		}

		o, err := order.NewOrder(uuid.New(), nil, items, "", now)
		require.NoError(t, err)

		assert.Equal(t, int64(2*32000+3*6000), o.TotalAmount().MinorUnits())
		assert.Equal(t, order.StatusPending, o.Status())
	})

	t.Run("empty orders are rejected", func(t *testing.T) {
		_, err := order.NewOrder(uuid.New(), nil, nil, "", now)
		assert.ErrorIs(t, err, order.ErrNoItems)
	})

	t.Run("items are snapshots, detached from the caller's slice", func(t *testing.T) {
		items := []order.Item{mustItem(t, "Dal Makhani", 1, 28000)}
		o, err := order.NewOrder(uuid.New(), nil, items, "", now)
		require.NoError(t, err)

		snapshot := o.Items()
		items[0] = mustItem(t, "Replaced", 9, 1)

		if diff := cmp.Diff(snapshot, o.Items(), cmp.AllowUnexported(order.Item{}, money.Money{})); diff != "" {
			t.Errorf("stored items changed after caller mutation (-want +got):\n%s", diff)
		}
		assert.Equal(t, "Dal Makhani", o.Items()[0].MenuItemName())
	})

	t.Run("quantity below one is rejected", func(t *testing.T) {
		_, err := order.NewItem(uuid.New(), "Lassi", 0, money.New(8000), "")
		assert.ErrorIs(t, err, order.ErrInvalidQuantity)
	})
}

func TestOrderTransitions(t *testing.T) {
	now := time.Now()

	newOrder := func(t *testing.T) *order.Order {
		o, err := order.NewOrder(uuid.New(), nil, []order.Item{mustItem(t, "Biryani", 1, 35000)}, "", now)
		require.NoError(t, err)
		return o
	}

	t.Run("kitchen workflow runs in sequence", func(t *testing.T) {
		o := newOrder(t)
		for _, next := range []order.Status{
			order.StatusConfirmed,
			order.StatusPreparing,
			order.StatusReady,
			order.StatusServed,
			order.StatusCompleted,
		} {
			require.NoError(t, o.TransitionTo(next, now), "transition to %s", next)
		}
		assert.True(t, o.Status().IsTerminal())
	})

	t.Run("steps cannot be skipped", func(t *testing.T) {
		o := newOrder(t)
		assert.ErrorIs(t, o.TransitionTo(order.StatusReady, now), order.ErrInvalidTransition)
		assert.ErrorIs(t, o.TransitionTo(order.StatusServed, now), order.ErrInvalidTransition)
		assert.ErrorIs(t, o.TransitionTo(order.StatusCompleted, now), order.ErrInvalidTransition)
	})

	t.Run("cancel only while pending", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.ConfirmPaid(now))
		assert.ErrorIs(t, o.Cancel(now), order.ErrNotCancellable)
	})

	t.Run("preparing orders cannot be cancelled at all", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.TransitionTo(order.StatusConfirmed, now))
		require.NoError(t, o.TransitionTo(order.StatusPreparing, now))
		assert.ErrorIs(t, o.TransitionTo(order.StatusCancelled, now), order.ErrInvalidTransition)
	})

	t.Run("unknown status is rejected before the edge check", func(t *testing.T) {
		o := newOrder(t)
		assert.ErrorIs(t, o.TransitionTo(order.Status("DELIVERED"), now), order.ErrInvalidStatus)
	})

	t.Run("total survives transitions unchanged", func(t *testing.T) {
		o := newOrder(t)
		total := o.TotalAmount()
		require.NoError(t, o.ConfirmPaid(now))
		assert.True(t, total.Equals(o.TotalAmount()))
	})
}
