//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"restobook/internal/domain/booking"
	"restobook/internal/domain/menu"
	"restobook/internal/domain/money"
	"restobook/internal/domain/order"
	reqdto "restobook/internal/handler/dto/request"
	"restobook/internal/pkg/clock"
	"restobook/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type OrderCommandsTestSuite struct {
	suite.Suite
	uow      *fakeUoW
	clock    *clock.MockClock
	commands commands.OrderCommands
	menuItem *menu.Item
}

func (s *OrderCommandsTestSuite) SetupTest() {
	s.uow = newFakeUoW()
	s.clock = clock.NewMockClock(time.Date(2026, 8, 31, 13, 0, 0, 0, time.UTC))
	s.commands = commands.NewOrderCommands(s.uow, s.clock)

	item, err := menu.NewItem("Masala Dosa", "", money.New(18000), "mains", "", s.clock.Now())
	require.NoError(s.T(), err)
	s.menuItem = item
	require.NoError(s.T(), s.uow.tx.menu.Create(context.Background(), item))
}

func TestOrderCommandsSuite(t *testing.T) {
	suite.Run(t, new(OrderCommandsTestSuite))
}

func (s *OrderCommandsTestSuite) createRequest(qty int32) reqdto.CreateOrderRequest {
	return reqdto.CreateOrderRequest{
		Items: []reqdto.OrderItemRequest{
			{MenuItemID: s.menuItem.ID(), Quantity: qty},
		},
	}
}

func (s *OrderCommandsTestSuite) TestCreateOrder() {
	ctx := context.Background()

	s.Run("snapshots the menu price into the line item", func() {
		customerID := uuid.New()
		id, err := s.commands.CreateOrder(ctx, s.createRequest(2), customerID)
		s.Require().NoError(err)

		o, err := s.uow.tx.orders.FindByIDForUpdate(ctx, id)
		s.Require().NoError(err)
		s.Equal(int64(36000), o.TotalAmount().MinorUnits())
		s.Equal("Masala Dosa", o.Items()[0].MenuItemName())
		s.Contains(s.uow.tx.outbox.topics(), "order.created")

		// Repricing the menu afterwards must not touch the stored order.
		s.Require().NoError(s.menuItem.Update("Masala Dosa", "", money.New(99000), "mains", true, "", s.clock.Now()))
		s.Require().NoError(s.uow.tx.menu.Update(ctx, s.menuItem))

		o, err = s.uow.tx.orders.FindByIDForUpdate(ctx, id)
		s.Require().NoError(err)
		s.Equal(int64(36000), o.TotalAmount().MinorUnits())
		s.Equal(int64(18000), o.Items()[0].UnitPrice().MinorUnits())
	})

	s.Run("unknown menu item", func() {
		req := reqdto.CreateOrderRequest{
			Items: []reqdto.OrderItemRequest{{MenuItemID: uuid.New(), Quantity: 1}},
		}
		_, err := s.commands.CreateOrder(ctx, req, uuid.New())
		s.ErrorIs(err, commands.ErrMenuItemNotFound)
	})

	s.Run("unavailable item is rejected", func() {
		item, err := menu.NewItem("Seasonal Special", "", money.New(25000), "mains", "", s.clock.Now())
		s.Require().NoError(err)
		s.Require().NoError(item.Update("Seasonal Special", "", money.New(25000), "mains", false, "", s.clock.Now()))
		s.Require().NoError(s.uow.tx.menu.Create(ctx, item))

		req := reqdto.CreateOrderRequest{
			Items: []reqdto.OrderItemRequest{{MenuItemID: item.ID(), Quantity: 1}},
		}
		_, err = s.commands.CreateOrder(ctx, req, uuid.New())
		s.ErrorIs(err, commands.ErrMenuItemUnavailable)
	})

	s.Run("empty order", func() {
		_, err := s.commands.CreateOrder(ctx, reqdto.CreateOrderRequest{}, uuid.New())
		s.ErrorIs(err, commands.ErrOrderValidation)
	})

	s.Run("attached booking must belong to the customer", func() {
		customerID := uuid.New()
		date, err := booking.NewBookingDate(s.clock.Now(), s.clock.Now())
		s.Require().NoError(err)
		slot, err := booking.NewSlot("DINNER_1")
		s.Require().NoError(err)
		guests, err := booking.NewGuestCount(2)
		s.Require().NoError(err)
		b, err := booking.NewBooking(customerID, uuid.New(), date, slot, 90, guests, "", s.clock.Now())
		s.Require().NoError(err)
		s.Require().NoError(s.uow.tx.bookings.Create(ctx, b))

		bookingID := b.ID()
		req := s.createRequest(1)
		req.BookingID = &bookingID

		_, err = s.commands.CreateOrder(ctx, req, uuid.New())
		s.ErrorIs(err, commands.ErrBookingNotOwned)

		_, err = s.commands.CreateOrder(ctx, req, customerID)
		s.NoError(err)
	})

	s.Run("unknown booking reference", func() {
		missing := uuid.New()
		req := s.createRequest(1)
		req.BookingID = &missing
		_, err := s.commands.CreateOrder(ctx, req, uuid.New())
		s.ErrorIs(err, commands.ErrBookingNotFound)
	})
}

func (s *OrderCommandsTestSuite) TestUpdateStatus() {
	ctx := context.Background()

	create := func() uuid.UUID {
		id, err := s.commands.CreateOrder(ctx, s.createRequest(1), uuid.New())
		s.Require().NoError(err)
		return id
	}

	s.Run("workflow edge succeeds", func() {
		id := create()
		s.Require().NoError(s.commands.UpdateStatus(ctx, id, "CONFIRMED"))
		s.Require().NoError(s.commands.UpdateStatus(ctx, id, "PREPARING"))
		s.Contains(s.uow.tx.outbox.topics(), "order.status_changed")
	})

	s.Run("skipping a step is denied", func() {
		id := create()
		s.ErrorIs(s.commands.UpdateStatus(ctx, id, "READY"), commands.ErrOrderTransitionDenied)
	})

	s.Run("unknown status string", func() {
		id := create()
		s.ErrorIs(s.commands.UpdateStatus(ctx, id, "DELIVERED"), commands.ErrInvalidOrderStatus)
	})

	s.Run("unknown order", func() {
		s.ErrorIs(s.commands.UpdateStatus(ctx, uuid.New(), "CONFIRMED"), commands.ErrOrderNotFound)
	})
}

func (s *OrderCommandsTestSuite) TestCancelAndDelete() {
	ctx := context.Background()
	customerID := uuid.New()

	create := func() uuid.UUID {
		id, err := s.commands.CreateOrder(ctx, s.createRequest(1), customerID)
		s.Require().NoError(err)
		return id
	}

	s.Run("owner cancels a pending order", func() {
		id := create()
		s.Require().NoError(s.commands.CancelOrder(ctx, id, customerID, false))
		s.Contains(s.uow.tx.outbox.topics(), "order.cancelled")
	})

	s.Run("someone else cannot cancel", func() {
		id := create()
		s.ErrorIs(s.commands.CancelOrder(ctx, id, uuid.New(), false), commands.ErrOrderNotOwned)
	})

	s.Run("confirmed orders are past cancelling", func() {
		id := create()
		s.Require().NoError(s.commands.UpdateStatus(ctx, id, "CONFIRMED"))
		s.ErrorIs(s.commands.CancelOrder(ctx, id, customerID, false), commands.ErrOrderNotCancellable)
	})

	s.Run("live orders cannot be deleted", func() {
		id := create()
		s.ErrorIs(s.commands.DeleteOrder(ctx, id), commands.ErrOrderNotDeletable)
	})

	s.Run("cancelled orders can be deleted", func() {
		id := create()
		s.Require().NoError(s.commands.CancelOrder(ctx, id, customerID, false))
		s.Require().NoError(s.commands.DeleteOrder(ctx, id))

		_, err := s.uow.tx.orders.FindByIDForUpdate(ctx, id)
		s.Error(err)
	})

	s.Run("completed orders can be deleted", func() {
		id := create()
		for _, status := range []order.Status{
			order.StatusConfirmed, order.StatusPreparing, order.StatusReady,
			order.StatusServed, order.StatusCompleted,
		} {
			s.Require().NoError(s.commands.UpdateStatus(ctx, id, status.String()))
		}
		s.NoError(s.commands.DeleteOrder(ctx, id))
	})
}
