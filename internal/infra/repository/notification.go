package repository

import (
	"context"
	"time"

	"rifa-hub/internal/infra"
	"rifa-hub/internal/infra/db"
	"rifa-hub/internal/pkg/pgconv"
	"rifa-hub/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type NotificationRepository struct {
	dbtx db.DBTX
}

func NewNotificationRepository(dbtx db.DBTX) *NotificationRepository {
	return &NotificationRepository{dbtx: dbtx}
}

func (r *NotificationRepository) CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error {
	_, err := r.dbtx.Exec(ctx, `
		INSERT INTO notification_jobs (id, kind, topic, payload, status, run_at)
		VALUES ($1, $2, $3, $4, 'queued', $5)`,
		uuid.New(), kind, topic, payload, runAt)
	if err != nil {
		return infra.WrapRepoErr("failed to create notification job", err)
	}
	return nil
}

// ClaimQueued flips due jobs to processing under SKIP LOCKED so concurrent
// dispatchers never double-deliver.
func (r *NotificationRepository) ClaimQueued(ctx context.Context, now time.Time, limit int) ([]shared.NotificationJob, error) {
	rows, err := r.dbtx.Query(ctx, `
		UPDATE notification_jobs
		SET status = 'processing', attempts = attempts + 1, updated_at = now()
		WHERE id IN (
			SELECT id FROM notification_jobs
			WHERE status = 'queued' AND run_at <= $1
			ORDER BY run_at
			LIMIT $2
			FOR UPDATE SKIP LOCKED
		)
		RETURNING id, kind, topic, payload, run_at`,
		now, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim notification jobs", err)
	}
	defer rows.Close()

	var jobs []shared.NotificationJob
	for rows.Next() {
		var (
			job   shared.NotificationJob
			runAt pgtype.Timestamptz
		)
		if err := rows.Scan(&job.ID, &job.Kind, &job.Topic, &job.Payload, &runAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan notification job", err)
		}
		job.RunAt = pgconv.TimeFromPgtype(runAt)
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read notification jobs", err)
	}
	return jobs, nil
}

func (r *NotificationRepository) MarkJobDone(ctx context.Context, jobID uuid.UUID) error {
	_, err := r.dbtx.Exec(ctx, `
		UPDATE notification_jobs
		SET status = 'sent', updated_at = now()
		WHERE id = $1`, jobID)
	if err != nil {
		return infra.WrapRepoErr("failed to mark notification job done", err)
	}
	return nil
}

func (r *NotificationRepository) MarkJobFailed(ctx context.Context, jobID uuid.UUID, lastError string) error {
	_, err := r.dbtx.Exec(ctx, `
		UPDATE notification_jobs
		SET status = 'failed', last_error = $2, updated_at = now()
		WHERE id = $1`, jobID, lastError)
	if err != nil {
		return infra.WrapRepoErr("failed to mark notification job failed", err)
	}
	return nil
}
