package repository

import (
	"context"
	"time"

	"restobook/internal/domain/feedback"
	"restobook/internal/infra"
	"restobook/internal/infra/db"
	"restobook/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type FeedbackRepository struct {
	db db.DBTX
}

func NewFeedbackRepository(dbtx db.DBTX) *FeedbackRepository {
	return &FeedbackRepository{db: dbtx}
}

func (r *FeedbackRepository) Create(ctx context.Context, f *feedback.Feedback) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO feedback (
			id, customer_id, order_id, rating, comment, category, status,
			admin_notes, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		pgconv.UUIDToPgtype(f.ID()),
		pgconv.UUIDToPgtype(f.CustomerID()),
		pgconv.UUIDPtrToPgtype(f.OrderID()),
		f.Rating().Value(),
		f.Comment().String(),
		f.Category().String(),
		f.Status().String(),
		f.AdminNotes(),
		pgconv.TimeToPgtype(f.CreatedAt()),
		pgconv.TimeToPgtype(f.UpdatedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create feedback", err)
	}
	return nil
}

func (r *FeedbackRepository) Save(ctx context.Context, f *feedback.Feedback) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE feedback
		SET rating = $2, comment = $3, status = $4, admin_notes = $5, updated_at = $6
		WHERE id = $1`,
		pgconv.UUIDToPgtype(f.ID()),
		f.Rating().Value(),
		f.Comment().String(),
		f.Status().String(),
		f.AdminNotes(),
		pgconv.TimeToPgtype(f.UpdatedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to save feedback", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("feedback not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *FeedbackRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM feedback WHERE id = $1`,
		pgconv.UUIDToPgtype(id),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to delete feedback", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("feedback not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *FeedbackRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*feedback.Feedback, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, customer_id, order_id, rating, comment, category, status,
		       admin_notes, created_at, updated_at
		FROM feedback
		WHERE id = $1
		FOR UPDATE`,
		pgconv.UUIDToPgtype(id),
	)

	var (
		fid, customerID      uuid.UUID
		orderID              pgtype.UUID
		rating               int32
		comment, category    string
		status, adminNotes   string
		createdAt, updatedAt time.Time
	)
	err := row.Scan(
		&fid, &customerID, &orderID, &rating, &comment, &category,
		&status, &adminNotes, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("feedback not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find feedback", err)
	}

	ratingVO, err := feedback.NewRating(rating)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid stored rating", err)
	}
	commentVO, err := feedback.NewComment(comment)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid stored comment", err)
	}
	categoryVO, err := feedback.NewCategory(category)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid stored category", err)
	}
	statusVO, err := feedback.NewStatus(status)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid stored status", err)
	}

	return feedback.Reconstruct(
		fid, customerID, pgconv.UUIDPtrFromPgtype(orderID),
		ratingVO, commentVO, categoryVO, statusVO, adminNotes,
		createdAt, updatedAt,
	), nil
}

// RecalcStats rebuilds the single aggregate row from the feedback table in
// the caller's transaction, the same transaction that changed the entries.
// Concurrent writers serialize on the stats row via the upsert.
func (r *FeedbackRepository) RecalcStats(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO feedback_stats (
			id, total_feedback, average_rating,
			rating_1_count, rating_2_count, rating_3_count,
			rating_4_count, rating_5_count,
			pending_count, reviewed_count, resolved_count, updated_at
		)
		SELECT 1,
		       count(*),
		       COALESCE(avg(rating), 0),
		       count(*) FILTER (WHERE rating = 1),
		       count(*) FILTER (WHERE rating = 2),
		       count(*) FILTER (WHERE rating = 3),
		       count(*) FILTER (WHERE rating = 4),
		       count(*) FILTER (WHERE rating = 5),
		       count(*) FILTER (WHERE status = 'PENDING'),
		       count(*) FILTER (WHERE status = 'REVIEWED'),
		       count(*) FILTER (WHERE status = 'RESOLVED'),
		       now()
		FROM feedback
		ON CONFLICT (id) DO UPDATE SET
			total_feedback = EXCLUDED.total_feedback,
			average_rating = EXCLUDED.average_rating,
			rating_1_count = EXCLUDED.rating_1_count,
			rating_2_count = EXCLUDED.rating_2_count,
			rating_3_count = EXCLUDED.rating_3_count,
			rating_4_count = EXCLUDED.rating_4_count,
			rating_5_count = EXCLUDED.rating_5_count,
			pending_count  = EXCLUDED.pending_count,
			reviewed_count = EXCLUDED.reviewed_count,
			resolved_count = EXCLUDED.resolved_count,
			updated_at     = EXCLUDED.updated_at`)
	if err != nil {
		return infra.WrapRepoErr("failed to recalculate feedback stats", err)
	}
	return nil
}
