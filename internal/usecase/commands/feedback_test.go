//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"restobook/internal/domain/money"
	"restobook/internal/domain/order"
	reqdto "restobook/internal/handler/dto/request"
	"restobook/internal/pkg/clock"
	"restobook/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type FeedbackCommandsTestSuite struct {
	suite.Suite
	uow      *fakeUoW
	clock    *clock.MockClock
	commands commands.FeedbackCommands
}

func (s *FeedbackCommandsTestSuite) SetupTest() {
	s.uow = newFakeUoW()
	s.clock = clock.NewMockClock(time.Date(2026, 8, 31, 13, 0, 0, 0, time.UTC))
	s.commands = commands.NewFeedbackCommands(s.uow, s.clock)
}

func TestFeedbackCommandsSuite(t *testing.T) {
	suite.Run(t, new(FeedbackCommandsTestSuite))
}

func (s *FeedbackCommandsTestSuite) submitRequest() reqdto.SubmitFeedbackRequest {
	return reqdto.SubmitFeedbackRequest{
		Rating:   4,
		Comment:  "Lovely evening",
		Category: "SERVICE",
	}
}

// storeOrder plants an order for customerID in the given status and returns
// its id.
func (s *FeedbackCommandsTestSuite) storeOrder(customerID uuid.UUID, status order.Status) uuid.UUID {
	item, err := order.NewItem(uuid.New(), "Masala Dosa", 1, money.New(18000), "")
	s.Require().NoError(err)

	o, err := order.NewOrder(customerID, nil, []order.Item{item}, "", s.clock.Now())
	s.Require().NoError(err)
	o = order.Reconstruct(
		o.ID(), o.CustomerID(), nil, status, o.TotalAmount(), "", o.Items(),
		o.CreatedAt(), o.UpdatedAt(),
	)
	s.Require().NoError(s.uow.tx.orders.Create(context.Background(), o))
	return o.ID()
}

func (s *FeedbackCommandsTestSuite) TestSubmit() {
	ctx := context.Background()

	s.Run("general feedback needs no order", func() {
		id, err := s.commands.Submit(ctx, s.submitRequest(), uuid.New())
		s.Require().NoError(err)

		f, err := s.uow.tx.feedback.FindByIDForUpdate(ctx, id)
		s.Require().NoError(err)
		s.Equal("PENDING", f.Status().String())
		s.Nil(f.OrderID())
	})

	s.Run("stats are rebuilt after every submission", func() {
		before := s.uow.tx.feedback.recalcs
		_, err := s.commands.Submit(ctx, s.submitRequest(), uuid.New())
		s.Require().NoError(err)
		s.Equal(before+1, s.uow.tx.feedback.recalcs)
	})

	s.Run("feedback on a completed order", func() {
		customerID := uuid.New()
		orderID := s.storeOrder(customerID, order.StatusCompleted)

		req := s.submitRequest()
		req.OrderID = &orderID
		_, err := s.commands.Submit(ctx, req, customerID)
		s.NoError(err)
	})

	s.Run("one feedback per order", func() {
		customerID := uuid.New()
		orderID := s.storeOrder(customerID, order.StatusCompleted)

		req := s.submitRequest()
		req.OrderID = &orderID
		_, err := s.commands.Submit(ctx, req, customerID)
		s.Require().NoError(err)

		_, err = s.commands.Submit(ctx, req, customerID)
		s.ErrorIs(err, commands.ErrDuplicateFeedback)
	})

	s.Run("order must be completed", func() {
		customerID := uuid.New()
		orderID := s.storeOrder(customerID, order.StatusServed)

		req := s.submitRequest()
		req.OrderID = &orderID
		_, err := s.commands.Submit(ctx, req, customerID)
		s.ErrorIs(err, commands.ErrOrderNotCompleted)
	})

	s.Run("order must belong to the customer", func() {
		orderID := s.storeOrder(uuid.New(), order.StatusCompleted)

		req := s.submitRequest()
		req.OrderID = &orderID
		_, err := s.commands.Submit(ctx, req, uuid.New())
		s.ErrorIs(err, commands.ErrOrderNotOwned)
	})

	s.Run("unknown order", func() {
		missing := uuid.New()
		req := s.submitRequest()
		req.OrderID = &missing
		_, err := s.commands.Submit(ctx, req, uuid.New())
		s.ErrorIs(err, commands.ErrOrderNotFound)
	})

	s.Run("rating out of range", func() {
		req := s.submitRequest()
		req.Rating = 6
		_, err := s.commands.Submit(ctx, req, uuid.New())
		s.ErrorIs(err, commands.ErrFeedbackValidation)
	})

	s.Run("unknown category", func() {
		req := s.submitRequest()
		req.Category = "VIBES"
		_, err := s.commands.Submit(ctx, req, uuid.New())
		s.ErrorIs(err, commands.ErrFeedbackValidation)
	})
}

func (s *FeedbackCommandsTestSuite) TestUpdate() {
	ctx := context.Background()

	submit := func(customerID uuid.UUID) uuid.UUID {
		id, err := s.commands.Submit(ctx, s.submitRequest(), customerID)
		s.Require().NoError(err)
		return id
	}

	s.Run("author amends a pending entry", func() {
		customerID := uuid.New()
		id := submit(customerID)

		err := s.commands.Update(ctx, id, reqdto.UpdateFeedbackRequest{Rating: 2, Comment: "Second visit was worse"}, customerID)
		s.Require().NoError(err)

		f, err := s.uow.tx.feedback.FindByIDForUpdate(ctx, id)
		s.Require().NoError(err)
		s.Equal(int32(2), f.Rating().Value())
	})

	s.Run("someone else cannot edit", func() {
		id := submit(uuid.New())
		err := s.commands.Update(ctx, id, reqdto.UpdateFeedbackRequest{Rating: 1}, uuid.New())
		s.ErrorIs(err, commands.ErrFeedbackNotOwned)
	})

	s.Run("reviewed entries are locked", func() {
		customerID := uuid.New()
		id := submit(customerID)
		s.Require().NoError(s.commands.Moderate(ctx, id, reqdto.ModerateFeedbackRequest{Status: "REVIEWED"}))

		err := s.commands.Update(ctx, id, reqdto.UpdateFeedbackRequest{Rating: 5}, customerID)
		s.ErrorIs(err, commands.ErrFeedbackLocked)
	})

	s.Run("unknown entry", func() {
		err := s.commands.Update(ctx, uuid.New(), reqdto.UpdateFeedbackRequest{Rating: 3}, uuid.New())
		s.ErrorIs(err, commands.ErrFeedbackNotFound)
	})
}

func (s *FeedbackCommandsTestSuite) TestModerate() {
	ctx := context.Background()

	s.Run("triage records status and notes", func() {
		id, err := s.commands.Submit(ctx, s.submitRequest(), uuid.New())
		s.Require().NoError(err)

		s.Require().NoError(s.commands.Moderate(ctx, id, reqdto.ModerateFeedbackRequest{
			Status:     "RESOLVED",
			AdminNotes: "Comped dessert on next visit",
		}))

		f, err := s.uow.tx.feedback.FindByIDForUpdate(ctx, id)
		s.Require().NoError(err)
		s.Equal("RESOLVED", f.Status().String())
		s.Equal("Comped dessert on next visit", f.AdminNotes())
	})

	s.Run("unknown status string", func() {
		id, err := s.commands.Submit(ctx, s.submitRequest(), uuid.New())
		s.Require().NoError(err)

		err = s.commands.Moderate(ctx, id, reqdto.ModerateFeedbackRequest{Status: "ARCHIVED"})
		s.ErrorIs(err, commands.ErrFeedbackValidation)
	})
}

func (s *FeedbackCommandsTestSuite) TestDelete() {
	ctx := context.Background()

	submit := func(customerID uuid.UUID) uuid.UUID {
		id, err := s.commands.Submit(ctx, s.submitRequest(), customerID)
		s.Require().NoError(err)
		return id
	}

	s.Run("author removes their entry and stats refresh", func() {
		customerID := uuid.New()
		id := submit(customerID)

		before := s.uow.tx.feedback.recalcs
		s.Require().NoError(s.commands.Delete(ctx, id, customerID, false))
		s.Equal(before+1, s.uow.tx.feedback.recalcs)

		_, err := s.uow.tx.feedback.FindByIDForUpdate(ctx, id)
		s.Error(err)
	})

	s.Run("staff may remove anyone's entry", func() {
		id := submit(uuid.New())
		s.NoError(s.commands.Delete(ctx, id, uuid.New(), true))
	})

	s.Run("strangers may not", func() {
		id := submit(uuid.New())
		s.ErrorIs(s.commands.Delete(ctx, id, uuid.New(), false), commands.ErrFeedbackNotOwned)
	})
}
