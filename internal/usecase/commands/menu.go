package commands

import (
	"context"
	"log/slog"

	"restobook/internal/domain/menu"
	"restobook/internal/domain/money"
	reqdto "restobook/internal/handler/dto/request"
	"restobook/internal/infra"
	"restobook/internal/pkg/clock"
	"restobook/internal/pkg/errs"
	"restobook/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrMenuValidation = errs.New("menu item validation error")

type MenuCommands interface {
	CreateItem(ctx context.Context, req reqdto.CreateMenuItemRequest) (uuid.UUID, error)
	UpdateItem(ctx context.Context, id uuid.UUID, req reqdto.UpdateMenuItemRequest) error
	DeleteItem(ctx context.Context, id uuid.UUID) error
}

type menuCommandsImpl struct {
	uow   shared.UnitOfWork
	cache MenuCache
	clock clock.Clock
}

func NewMenuCommands(uow shared.UnitOfWork, cache MenuCache, clk clock.Clock) MenuCommands {
	return &menuCommandsImpl{uow: uow, cache: cache, clock: clk}
}

func (c *menuCommandsImpl) CreateItem(ctx context.Context, req reqdto.CreateMenuItemRequest) (uuid.UUID, error) {
	item, err := menu.NewItem(req.Name, req.Description, money.New(req.PriceMinor), req.Category, req.ImageURL, c.clock.Now())
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrMenuValidation)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Menu().Create(ctx, item)
	})
	if err != nil {
		return uuid.Nil, err
	}

	c.invalidateCache(ctx)
	return item.ID(), nil
}

func (c *menuCommandsImpl) UpdateItem(ctx context.Context, id uuid.UUID, req reqdto.UpdateMenuItemRequest) error {
	now := c.clock.Now()

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		item, err := tx.Menu().FindByID(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrMenuItemNotFound)
			}
			return err
		}

		err = item.Update(req.Name, req.Description, money.New(req.PriceMinor), req.Category, req.Available, req.ImageURL, now)
		if err != nil {
			return errs.Mark(err, ErrMenuValidation)
		}

		return tx.Menu().Update(ctx, item)
	})
	if err != nil {
		return err
	}

	c.invalidateCache(ctx)
	return nil
}

func (c *menuCommandsImpl) DeleteItem(ctx context.Context, id uuid.UUID) error {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Menu().Delete(ctx, id); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrMenuItemNotFound)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	c.invalidateCache(ctx)
	return nil
}

// invalidateCache runs after commit; existing orders are unaffected either way
// because they carry their own price snapshots.
func (c *menuCommandsImpl) invalidateCache(ctx context.Context) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Invalidate(ctx); err != nil {
		slog.Warn("failed to invalidate menu cache", "error", err.Error())
	}
}
