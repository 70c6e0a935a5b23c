package commands

import (
	"context"

	"restobook/internal/domain/table"
	reqdto "restobook/internal/handler/dto/request"
	"restobook/internal/infra"
	"restobook/internal/pkg/clock"
	"restobook/internal/pkg/errs"
	"restobook/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrTableNumberTaken   = errs.New("table number already in use")
	ErrTableInUse         = errs.New("table has bookings and cannot be removed")
	ErrInvalidTableStatus = errs.New("unknown table status")
	ErrTableValidation    = errs.New("table validation error")
)

type TableCommands interface {
	CreateTable(ctx context.Context, req reqdto.CreateTableRequest) (uuid.UUID, error)
	UpdateTable(ctx context.Context, id uuid.UUID, req reqdto.UpdateTableRequest) error
	DeleteTable(ctx context.Context, id uuid.UUID) error
	SetStatus(ctx context.Context, id uuid.UUID, status string) error
}

type tableCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewTableCommands(uow shared.UnitOfWork, clk clock.Clock) TableCommands {
	return &tableCommandsImpl{uow: uow, clock: clk}
}

func (c *tableCommandsImpl) CreateTable(ctx context.Context, req reqdto.CreateTableRequest) (uuid.UUID, error) {
	t, err := table.NewTable(req.Number, req.Capacity, req.Location, c.clock.Now())
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrTableValidation)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Tables().Create(ctx, t); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, ErrTableNumberTaken)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	return t.ID(), nil
}

func (c *tableCommandsImpl) UpdateTable(ctx context.Context, id uuid.UUID, req reqdto.UpdateTableRequest) error {
	status, err := table.NewStatus(req.Status)
	if err != nil {
		return errs.Mark(err, ErrInvalidTableStatus)
	}
	if req.Number <= 0 {
		return errs.Mark(table.ErrInvalidNumber, ErrTableValidation)
	}
	if req.Capacity <= 0 {
		return errs.Mark(table.ErrInvalidCapacity, ErrTableValidation)
	}

	now := c.clock.Now()

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		existing, err := tx.Tables().FindByIDForUpdate(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrTableNotFound)
			}
			return err
		}

		updated := table.Reconstruct(
			existing.ID(), req.Number, req.Capacity, req.Location,
			status, existing.CreatedAt(), now,
		)

		if err := tx.Tables().Update(ctx, updated); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, ErrTableNumberTaken)
			}
			return err
		}
		return nil
	})
}

func (c *tableCommandsImpl) DeleteTable(ctx context.Context, id uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Tables().Delete(ctx, id); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrTableNotFound)
			}
			// Booking history references the table; keep the row instead.
			if infra.IsKind(err, infra.KindForeignKeyViolated) {
				return errs.Mark(err, ErrTableInUse)
			}
			return err
		}
		return nil
	})
}

func (c *tableCommandsImpl) SetStatus(ctx context.Context, id uuid.UUID, status string) error {
	st, err := table.NewStatus(status)
	if err != nil {
		return errs.Mark(err, ErrInvalidTableStatus)
	}

	now := c.clock.Now()

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Tables().UpdateStatus(ctx, id, st, now); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrTableNotFound)
			}
			return err
		}
		return nil
	})
}
