package repository

import (
	"context"
	"time"

	"restobook/internal/domain/table"
	"restobook/internal/infra"
	"restobook/internal/infra/db"
	"restobook/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type TableRepository struct {
	db db.DBTX
}

func NewTableRepository(dbtx db.DBTX) *TableRepository {
	return &TableRepository{db: dbtx}
}

const tableColumns = `id, number, capacity, location, status, created_at, updated_at`

func (r *TableRepository) Create(ctx context.Context, t *table.Table) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO tables (id, number, capacity, location, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		pgconv.UUIDToPgtype(t.ID()),
		t.Number(),
		t.Capacity(),
		t.Location(),
		t.Status().String(),
		pgconv.TimeToPgtype(t.CreatedAt()),
		pgconv.TimeToPgtype(t.UpdatedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create table", err)
	}
	return nil
}

func (r *TableRepository) Update(ctx context.Context, t *table.Table) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE tables
		SET number = $2, capacity = $3, location = $4, status = $5, updated_at = $6
		WHERE id = $1`,
		pgconv.UUIDToPgtype(t.ID()),
		t.Number(),
		t.Capacity(),
		t.Location(),
		t.Status().String(),
		pgconv.TimeToPgtype(t.UpdatedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update table", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("table not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *TableRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM tables WHERE id = $1`, pgconv.UUIDToPgtype(id))
	if err != nil {
		return infra.WrapRepoErr("failed to delete table", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("table not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *TableRepository) FindByID(ctx context.Context, id uuid.UUID) (*table.Table, error) {
	return r.findByID(ctx, id, "")
}

// FindByIDForUpdate locks the table row for the rest of the transaction, so
// concurrent booking attempts against the same table are serialized.
func (r *TableRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*table.Table, error) {
	return r.findByID(ctx, id, " FOR UPDATE")
}

func (r *TableRepository) findByID(ctx context.Context, id uuid.UUID, lock string) (*table.Table, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+tableColumns+` FROM tables WHERE id = $1`+lock,
		pgconv.UUIDToPgtype(id),
	)

	t, err := scanTable(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("table not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find table", err)
	}
	return t, nil
}

func (r *TableRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status table.Status, updatedAt time.Time) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE tables SET status = $2, updated_at = $3 WHERE id = $1`,
		pgconv.UUIDToPgtype(id),
		status.String(),
		pgconv.TimeToPgtype(updatedAt),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update table status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("table not found", nil, infra.KindNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTable(row rowScanner) (*table.Table, error) {
	var (
		id                   uuid.UUID
		number, capacity     int32
		location, status     string
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &number, &capacity, &location, &status, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	st, err := table.NewStatus(status)
	if err != nil {
		return nil, err
	}

	return table.Reconstruct(id, number, capacity, location, st, createdAt, updatedAt), nil
}
