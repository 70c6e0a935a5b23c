package repository

import (
	"context"
	"time"

	"restobook/internal/infra"
	"restobook/internal/infra/db"
	"restobook/internal/pkg/pgconv"
)

// OutboxRepository enqueues event jobs inside the caller's transaction, so an
// event is recorded if and only if the state change that produced it commits.
type OutboxRepository struct {
	db db.DBTX
}

func NewOutboxRepository(dbtx db.DBTX) *OutboxRepository {
	return &OutboxRepository{db: dbtx}
}

func (r *OutboxRepository) CreateJob(ctx context.Context, topic string, payload []byte, runAt time.Time) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO outbox_jobs (topic, payload, status, run_at)
		VALUES ($1, $2, 'queued', $3)`,
		topic,
		payload,
		pgconv.TimeToPgtype(runAt),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to enqueue outbox job", err)
	}
	return nil
}
