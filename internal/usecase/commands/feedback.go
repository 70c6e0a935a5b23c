package commands

import (
	"context"
	"errors"

	"restobook/internal/domain/feedback"
	"restobook/internal/domain/order"
	reqdto "restobook/internal/handler/dto/request"
	"restobook/internal/infra"
	"restobook/internal/pkg/clock"
	"restobook/internal/pkg/errs"
	"restobook/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrFeedbackNotFound   = errs.New("feedback not found")
	ErrFeedbackNotOwned   = errs.New("feedback belongs to another customer")
	ErrFeedbackValidation = errs.New("feedback validation error")
	ErrFeedbackLocked     = errs.New("feedback is no longer editable")
	ErrDuplicateFeedback  = errs.New("feedback already submitted for this order")
	ErrOrderNotCompleted  = errs.New("order has not been completed")
)

type FeedbackCommands interface {
	Submit(ctx context.Context, req reqdto.SubmitFeedbackRequest, customerID uuid.UUID) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, req reqdto.UpdateFeedbackRequest, actorID uuid.UUID) error
	Moderate(ctx context.Context, id uuid.UUID, req reqdto.ModerateFeedbackRequest) error
	Delete(ctx context.Context, id uuid.UUID, actorID uuid.UUID, actorIsStaff bool) error
}

type feedbackCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewFeedbackCommands(uow shared.UnitOfWork, clk clock.Clock) FeedbackCommands {
	return &feedbackCommandsImpl{uow: uow, clock: clk}
}

// Submit records a rating. When the feedback names an order, the order must
// belong to the customer and be COMPLETED, and each order takes at most one
// feedback entry. Feedback without an order is general and unconstrained.
func (c *feedbackCommandsImpl) Submit(ctx context.Context, req reqdto.SubmitFeedbackRequest, customerID uuid.UUID) (uuid.UUID, error) {
	rating, err := feedback.NewRating(req.Rating)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrFeedbackValidation)
	}
	comment, err := feedback.NewComment(req.Comment)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrFeedbackValidation)
	}
	category, err := feedback.NewCategory(req.Category)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrFeedbackValidation)
	}

	now := c.clock.Now()

	var feedbackID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if req.OrderID != nil {
			o, err := tx.Orders().FindByIDForUpdate(ctx, *req.OrderID)
			if err != nil {
				if infra.IsKind(err, infra.KindNotFound) {
					return errs.Mark(err, ErrOrderNotFound)
				}
				return err
			}
			if o.CustomerID() != customerID {
				return ErrOrderNotOwned
			}
			if o.Status() != order.StatusCompleted {
				return ErrOrderNotCompleted
			}
		}

		f := feedback.NewFeedback(customerID, req.OrderID, rating, comment, category, now)
		if err := tx.Feedback().Create(ctx, f); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, ErrDuplicateFeedback)
			}
			return err
		}
		feedbackID = f.ID()

		return tx.Feedback().RecalcStats(ctx)
	})
	if err != nil {
		return uuid.Nil, err
	}

	return feedbackID, nil
}

// Update lets the author amend rating and comment while the entry is still
// pending staff triage.
func (c *feedbackCommandsImpl) Update(ctx context.Context, id uuid.UUID, req reqdto.UpdateFeedbackRequest, actorID uuid.UUID) error {
	rating, err := feedback.NewRating(req.Rating)
	if err != nil {
		return errs.Mark(err, ErrFeedbackValidation)
	}
	comment, err := feedback.NewComment(req.Comment)
	if err != nil {
		return errs.Mark(err, ErrFeedbackValidation)
	}

	now := c.clock.Now()

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		f, err := c.lockFeedback(ctx, tx, id)
		if err != nil {
			return err
		}
		if f.CustomerID() != actorID {
			return ErrFeedbackNotOwned
		}

		if err := f.Revise(rating, comment, now); err != nil {
			if errors.Is(err, feedback.ErrLocked) {
				return errs.Mark(err, ErrFeedbackLocked)
			}
			return err
		}
		if err := tx.Feedback().Save(ctx, f); err != nil {
			return err
		}

		return tx.Feedback().RecalcStats(ctx)
	})
}

// Moderate is the staff triage step: set the status, attach internal notes.
func (c *feedbackCommandsImpl) Moderate(ctx context.Context, id uuid.UUID, req reqdto.ModerateFeedbackRequest) error {
	status, err := feedback.NewStatus(req.Status)
	if err != nil {
		return errs.Mark(err, ErrFeedbackValidation)
	}

	now := c.clock.Now()

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		f, err := c.lockFeedback(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := f.Moderate(status, req.AdminNotes, now); err != nil {
			return errs.Mark(err, ErrFeedbackValidation)
		}
		if err := tx.Feedback().Save(ctx, f); err != nil {
			return err
		}

		return tx.Feedback().RecalcStats(ctx)
	})
}

// Delete removes an entry. Customers may delete their own; staff may delete
// any.
func (c *feedbackCommandsImpl) Delete(ctx context.Context, id uuid.UUID, actorID uuid.UUID, actorIsStaff bool) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		f, err := c.lockFeedback(ctx, tx, id)
		if err != nil {
			return err
		}
		if !actorIsStaff && f.CustomerID() != actorID {
			return ErrFeedbackNotOwned
		}

		if err := tx.Feedback().Delete(ctx, id); err != nil {
			return err
		}

		return tx.Feedback().RecalcStats(ctx)
	})
}

func (c *feedbackCommandsImpl) lockFeedback(ctx context.Context, tx shared.Tx, id uuid.UUID) (*feedback.Feedback, error) {
	f, err := tx.Feedback().FindByIDForUpdate(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrFeedbackNotFound)
		}
		return nil, err
	}
	return f, nil
}
