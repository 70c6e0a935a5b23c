package commands

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"restobook/internal/domain/order"
	reqdto "restobook/internal/handler/dto/request"
	"restobook/internal/infra"
	"restobook/internal/pkg/clock"
	"restobook/internal/pkg/errs"
	"restobook/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound         = errs.New("order not found")
	ErrOrderNotOwned         = errs.New("order belongs to another customer")
	ErrMenuItemNotFound      = errs.New("menu item not found")
	ErrMenuItemUnavailable   = errs.New("menu item is not available")
	ErrInvalidOrderStatus    = errs.New("unknown order status")
	ErrOrderTransitionDenied = errs.New("order transition not permitted from current status")
	ErrOrderNotCancellable   = errs.New("only pending orders can be cancelled")
	ErrOrderNotDeletable     = errs.New("only finished orders can be deleted")
	ErrOrderValidation       = errs.New("order validation error")
)

const (
	topicOrderCreated       = "order.created"
	topicOrderStatusChanged = "order.status_changed"
	topicOrderCancelled     = "order.cancelled"
)

type OrderCommands interface {
	CreateOrder(ctx context.Context, req reqdto.CreateOrderRequest, customerID uuid.UUID) (uuid.UUID, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	CancelOrder(ctx context.Context, id uuid.UUID, actorID uuid.UUID, actorIsStaff bool) error
	DeleteOrder(ctx context.Context, id uuid.UUID) error
}

type orderCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewOrderCommands(uow shared.UnitOfWork, clk clock.Clock) OrderCommands {
	return &orderCommandsImpl{uow: uow, clock: clk}
}

type orderEvent struct {
	OrderID    uuid.UUID `json:"order_id"`
	CustomerID uuid.UUID `json:"customer_id"`
	Status     string    `json:"status"`
	TotalMinor int64     `json:"total_minor"`
}

// CreateOrder snapshots the current menu name and price into each line item,
// so later menu edits never change what this order charges.
func (c *orderCommandsImpl) CreateOrder(ctx context.Context, req reqdto.CreateOrderRequest, customerID uuid.UUID) (uuid.UUID, error) {
	if len(req.Items) == 0 {
		return uuid.Nil, errs.Mark(order.ErrNoItems, ErrOrderValidation)
	}

	now := c.clock.Now()

	var orderID uuid.UUID
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if req.BookingID != nil {
			b, err := tx.Bookings().FindByIDForUpdate(ctx, *req.BookingID)
			if err != nil {
				if infra.IsKind(err, infra.KindNotFound) {
					return errs.Mark(err, ErrBookingNotFound)
				}
				return err
			}
			if b.CustomerID() != customerID {
				return ErrBookingNotOwned
			}
		}

		items := make([]order.Item, 0, len(req.Items))
		for _, itemReq := range req.Items {
			mi, err := tx.Menu().FindByID(ctx, itemReq.MenuItemID)
			if err != nil {
				if infra.IsKind(err, infra.KindNotFound) {
					return errs.Mark(err, ErrMenuItemNotFound)
				}
				return err
			}
			if !mi.Available() {
				return ErrMenuItemUnavailable
			}

			item, err := order.NewItem(mi.ID(), mi.Name(), itemReq.Quantity, mi.Price(), itemReq.SpecialInstructions)
			if err != nil {
				return errs.Mark(err, ErrOrderValidation)
			}
			items = append(items, item)
		}

		o, err := order.NewOrder(customerID, req.BookingID, items, req.SpecialInstructions, now)
		if err != nil {
			return errs.Mark(err, ErrOrderValidation)
		}

		if err := tx.Orders().Create(ctx, o); err != nil {
			return err
		}
		orderID = o.ID()

		return enqueueOrderEvent(ctx, tx, topicOrderCreated, o, now)
	})
	if err != nil {
		return uuid.Nil, err
	}

	return orderID, nil
}

// UpdateStatus drives the kitchen workflow edges. The closed transition table
// in the domain rejects everything else, including any edge out of a terminal
// status.
func (c *orderCommandsImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	next, err := order.NewStatus(status)
	if err != nil {
		return errs.Mark(err, ErrInvalidOrderStatus)
	}

	now := c.clock.Now()

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := c.findForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := o.TransitionTo(next, now); err != nil {
			return errs.Mark(err, ErrOrderTransitionDenied)
		}

		if err := tx.Orders().UpdateStatus(ctx, o.ID(), o.Status(), now); err != nil {
			return err
		}

		return enqueueOrderEvent(ctx, tx, topicOrderStatusChanged, o, now)
	})
}

func (c *orderCommandsImpl) CancelOrder(ctx context.Context, id uuid.UUID, actorID uuid.UUID, actorIsStaff bool) error {
	now := c.clock.Now()

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := c.findForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		if !actorIsStaff && o.CustomerID() != actorID {
			return ErrOrderNotOwned
		}

		if err := o.Cancel(now); err != nil {
			if errors.Is(err, order.ErrNotCancellable) {
				return errs.Mark(err, ErrOrderNotCancellable)
			}
			return err
		}

		if err := tx.Orders().UpdateStatus(ctx, o.ID(), o.Status(), now); err != nil {
			return err
		}

		return enqueueOrderEvent(ctx, tx, topicOrderCancelled, o, now)
	})
}

// DeleteOrder removes a finished order and its line items. Live orders must
// go through the state machine first.
func (c *orderCommandsImpl) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := c.findForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		if o.Status() != order.StatusCompleted && o.Status() != order.StatusCancelled {
			return ErrOrderNotDeletable
		}

		return tx.Orders().Delete(ctx, o.ID())
	})
}

func (c *orderCommandsImpl) findForUpdate(ctx context.Context, tx shared.Tx, id uuid.UUID) (*order.Order, error) {
	o, err := tx.Orders().FindByIDForUpdate(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrOrderNotFound)
		}
		return nil, err
	}
	return o, nil
}

func enqueueOrderEvent(ctx context.Context, tx shared.Tx, topic string, o *order.Order, now time.Time) error {
	payload, err := json.Marshal(orderEvent{
		OrderID:    o.ID(),
		CustomerID: o.CustomerID(),
		Status:     o.Status().String(),
		TotalMinor: o.TotalAmount().MinorUnits(),
	})
	if err != nil {
		slog.Warn("failed to marshal order event", "order_id", o.ID(), "error", err.Error())
		return nil
	}
	return tx.Outbox().CreateJob(ctx, topic, payload, now)
}
