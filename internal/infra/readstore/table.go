package readstore

import (
	"context"
	"time"

	"restobook/internal/infra"
	"restobook/internal/infra/db"
	"restobook/internal/pkg/pgconv"
	"restobook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type TableReadStore struct {
	db db.DBTX
}

func NewTableReadStore(dbtx db.DBTX) *TableReadStore {
	return &TableReadStore{db: dbtx}
}

const tableViewColumns = `id, number, capacity, location, status, created_at, updated_at`

func (r *TableReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.TableView, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+tableViewColumns+` FROM tables WHERE id = $1`,
		pgconv.UUIDToPgtype(id),
	)

	view, err := scanTableView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("table not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find table", err)
	}
	return view, nil
}

func (r *TableReadStore) FindAll(ctx context.Context) ([]*queries.TableView, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+tableViewColumns+` FROM tables ORDER BY number`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list tables", err)
	}
	return collectTableViews(rows)
}

// FindAvailable runs in the same database the booking engine writes to, so the
// answer reflects every committed booking at the time of the query.
func (r *TableReadStore) FindAvailable(ctx context.Context, date time.Time, slot string, guests int32) ([]*queries.TableView, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+tableViewColumns+`
		FROM tables t
		WHERE t.status = 'AVAILABLE'
		  AND t.capacity >= $3
		  AND NOT EXISTS (
			SELECT 1
			FROM bookings b
			WHERE b.table_id = t.id
			  AND b.booking_date = $1
			  AND b.slot = $2
			  AND b.status IN ('PENDING', 'CONFIRMED', 'IN_PROGRESS')
		  )
		ORDER BY t.number`,
		pgconv.DateToPgtype(date),
		slot,
		guests,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list available tables", err)
	}
	return collectTableViews(rows)
}

func collectTableViews(rows pgx.Rows) ([]*queries.TableView, error) {
	defer rows.Close()

	var result []*queries.TableView
	for rows.Next() {
		view, err := scanTableView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan table", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list tables", err)
	}
	return result, nil
}

func scanTableView(row pgx.Row) (*queries.TableView, error) {
	var view queries.TableView
	err := row.Scan(
		&view.ID, &view.Number, &view.Capacity, &view.Location,
		&view.Status, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &view, nil
}
