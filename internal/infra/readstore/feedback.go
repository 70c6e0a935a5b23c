package readstore

import (
	"context"
	"fmt"
	"time"

	"restobook/internal/infra"
	"restobook/internal/infra/db"
	"restobook/internal/pkg/pgconv"
	"restobook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type FeedbackReadStore struct {
	db db.DBTX
}

func NewFeedbackReadStore(dbtx db.DBTX) *FeedbackReadStore {
	return &FeedbackReadStore{db: dbtx}
}

func (r *FeedbackReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.FeedbackView, error) {
	row := r.db.QueryRow(ctx, `
		SELECT f.id, f.customer_id, u.name, u.email, f.order_id, f.rating,
		       f.comment, f.category, f.status, f.admin_notes,
		       f.created_at, f.updated_at
		FROM feedback f
		JOIN users u ON u.id = f.customer_id
		WHERE f.id = $1`,
		pgconv.UUIDToPgtype(id),
	)

	var view queries.FeedbackView
	err := row.Scan(
		&view.ID, &view.CustomerID, &view.CustomerName, &view.CustomerEmail,
		&view.OrderID, &view.Rating, &view.Comment, &view.Category,
		&view.Status, &view.AdminNotes, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("feedback not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find feedback", err)
	}
	return &view, nil
}

const feedbackListQuery = `
	SELECT f.id, u.email, f.rating, f.comment, f.category, f.status, f.created_at
	FROM feedback f
	JOIN users u ON u.id = f.customer_id`

func (r *FeedbackReadStore) FindAllFirstPage(ctx context.Context, filters queries.FeedbackFilters, limit int32) ([]*queries.FeedbackListItem, error) {
	where, args := feedbackFilterClauses(filters, nil)
	args = append(args, limit)

	rows, err := r.db.Query(ctx, fmt.Sprintf(`%s
		%s
		ORDER BY f.created_at DESC, f.id DESC
		LIMIT $%d`, feedbackListQuery, where, len(args)),
		args...,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list feedback", err)
	}
	return collectFeedbackListItems(rows)
}

func (r *FeedbackReadStore) FindAllKeyset(ctx context.Context, filters queries.FeedbackFilters, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.FeedbackListItem, error) {
	where, args := feedbackFilterClauses(filters, nil)
	args = append(args, pgconv.TimeToPgtype(lastCreatedAt), pgconv.UUIDToPgtype(lastID), limit)
	n := len(args)

	rows, err := r.db.Query(ctx, fmt.Sprintf(`%s
		%s
		  AND (f.created_at, f.id) < ($%d, $%d)
		ORDER BY f.created_at DESC, f.id DESC
		LIMIT $%d`, feedbackListQuery, where, n-2, n-1, n),
		args...,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list feedback", err)
	}
	return collectFeedbackListItems(rows)
}

func (r *FeedbackReadStore) FindByCustomerFirstPage(ctx context.Context, customerID uuid.UUID, limit int32) ([]*queries.FeedbackListItem, error) {
	rows, err := r.db.Query(ctx,
		feedbackListQuery+`
		WHERE f.customer_id = $1
		ORDER BY f.created_at DESC, f.id DESC
		LIMIT $2`,
		pgconv.UUIDToPgtype(customerID),
		limit,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list feedback by customer", err)
	}
	return collectFeedbackListItems(rows)
}

func (r *FeedbackReadStore) FindByCustomerKeyset(ctx context.Context, customerID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.FeedbackListItem, error) {
	rows, err := r.db.Query(ctx,
		feedbackListQuery+`
		WHERE f.customer_id = $1
		  AND (f.created_at, f.id) < ($2, $3)
		ORDER BY f.created_at DESC, f.id DESC
		LIMIT $4`,
		pgconv.UUIDToPgtype(customerID),
		pgconv.TimeToPgtype(lastCreatedAt),
		pgconv.UUIDToPgtype(lastID),
		limit,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list feedback by customer", err)
	}
	return collectFeedbackListItems(rows)
}

// GetStats reads the maintained aggregate row and joins in the per-category
// counts, which are cheap enough to group on demand.
func (r *FeedbackReadStore) GetStats(ctx context.Context) (*queries.FeedbackStatsView, error) {
	var view queries.FeedbackStatsView
	err := r.db.QueryRow(ctx, `
		SELECT total_feedback, average_rating,
		       rating_1_count, rating_2_count, rating_3_count,
		       rating_4_count, rating_5_count,
		       pending_count, reviewed_count, resolved_count, updated_at
		FROM feedback_stats
		WHERE id = 1`,
	).Scan(
		&view.TotalFeedback, &view.AverageRating,
		&view.Rating1Count, &view.Rating2Count, &view.Rating3Count,
		&view.Rating4Count, &view.Rating5Count,
		&view.PendingCount, &view.ReviewedCount, &view.ResolvedCount,
		&view.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			// No feedback submitted yet; the recalc has never run.
			return &queries.FeedbackStatsView{Categories: []queries.CategoryCount{}}, nil
		}
		return nil, infra.WrapRepoErr("failed to load feedback stats", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT category, count(*)
		FROM feedback
		GROUP BY category
		ORDER BY category`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load feedback category counts", err)
	}
	defer rows.Close()

	view.Categories = []queries.CategoryCount{}
	for rows.Next() {
		var cc queries.CategoryCount
		if err := rows.Scan(&cc.Category, &cc.Count); err != nil {
			return nil, infra.WrapRepoErr("failed to scan category count", err)
		}
		view.Categories = append(view.Categories, cc)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to load feedback category counts", err)
	}

	return &view, nil
}

// feedbackFilterClauses builds the WHERE clause for the staff listing. The
// returned clause always starts with WHERE so keyset callers can append an
// AND condition.
func feedbackFilterClauses(filters queries.FeedbackFilters, args []any) (string, []any) {
	where := `WHERE TRUE`
	if filters.Status != nil {
		args = append(args, *filters.Status)
		where += fmt.Sprintf(` AND f.status = $%d`, len(args))
	}
	if filters.Category != nil {
		args = append(args, *filters.Category)
		where += fmt.Sprintf(` AND f.category = $%d`, len(args))
	}
	if filters.Search != nil {
		args = append(args, "%"+*filters.Search+"%")
		where += fmt.Sprintf(` AND f.comment ILIKE $%d`, len(args))
	}
	return where, args
}

func collectFeedbackListItems(rows pgx.Rows) ([]*queries.FeedbackListItem, error) {
	defer rows.Close()

	var result []*queries.FeedbackListItem
	for rows.Next() {
		var item queries.FeedbackListItem
		err := rows.Scan(
			&item.ID, &item.CustomerEmail, &item.Rating, &item.Comment,
			&item.Category, &item.Status, &item.CreatedAt,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan feedback", err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list feedback", err)
	}
	return result, nil
}
