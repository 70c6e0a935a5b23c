package notify

import (
	"context"
	"log/slog"
	"time"

	"restobook/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	relayBatchSize  = 50
	relayMaxRetries = 5
	relayBackoff    = 30 * time.Second
)

// Relay drains committed outbox jobs to the message broker. Jobs are claimed
// with SKIP LOCKED so several relay instances never double-publish.
type Relay struct {
	pool      *pgxpool.Pool
	publisher *Publisher
	interval  time.Duration
}

func NewRelay(pool *pgxpool.Pool, publisher *Publisher, interval time.Duration) *Relay {
	return &Relay{
		pool:      pool,
		publisher: publisher,
		interval:  interval,
	}
}

// Run polls until the context is cancelled.
func (r *Relay) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := r.drainOnce(ctx); err != nil {
				slog.Error("outbox relay pass failed", "error", err.Error())
			}
		}
	}
}

type outboxJob struct {
	ID       uuid.UUID
	Topic    string
	Payload  []byte
	Attempts int32
}

func (r *Relay) drainOnce(ctx context.Context) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	rows, err := tx.Query(ctx, `
		SELECT id, topic, payload, attempts
		FROM outbox_jobs
		WHERE status = 'queued' AND run_at <= now()
		ORDER BY run_at
		LIMIT $1
		FOR UPDATE SKIP LOCKED`,
		relayBatchSize,
	)
	if err != nil {
		return err
	}

	var jobs []outboxJob
	for rows.Next() {
		var job outboxJob
		if err := rows.Scan(&job.ID, &job.Topic, &job.Payload, &job.Attempts); err != nil {
			rows.Close()
			return err
		}
		jobs = append(jobs, job)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for _, job := range jobs {
		if err := r.publisher.Publish(ctx, job.Topic, job.Payload); err != nil {
			slog.Warn("outbox publish failed",
				"job_id", job.ID,
				"topic", job.Topic,
				"attempt", job.Attempts+1,
				"error", err.Error())
			if err := r.markFailed(ctx, tx, job, err); err != nil {
				return err
			}
			continue
		}

		_, err = tx.Exec(ctx,
			`UPDATE outbox_jobs SET status = 'published', updated_at = now() WHERE id = $1`,
			pgconv.UUIDToPgtype(job.ID),
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *Relay) markFailed(ctx context.Context, tx pgx.Tx, job outboxJob, pubErr error) error {
	if job.Attempts+1 >= relayMaxRetries {
		_, err := tx.Exec(ctx, `
			UPDATE outbox_jobs
			SET status = 'dead', attempts = attempts + 1, last_error = $2, updated_at = now()
			WHERE id = $1`,
			pgconv.UUIDToPgtype(job.ID), pubErr.Error())
		return err
	}

	_, err := tx.Exec(ctx, `
		UPDATE outbox_jobs
		SET attempts = attempts + 1, last_error = $2,
		    run_at = now() + $3::interval, updated_at = now()
		WHERE id = $1`,
		pgconv.UUIDToPgtype(job.ID), pubErr.Error(), relayBackoff.String())
	return err
}
