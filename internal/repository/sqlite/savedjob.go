package sqlite

import (
	"context"

	"github.com/joblinkhq/joblink/internal/apperr"
	"github.com/joblinkhq/joblink/pkg/models"
)

func (r *SQLiteRepo) SaveJob(ctx context.Context, jobSeekerID, jobID int64) error {
	_, err := r.conn.Exec(ctx, `INSERT INTO saved_jobs (job_seeker_id, job_id, created) VALUES (?, ?, ?)`, jobSeekerID, jobID, now())
	if err != nil && isUniqueViolation(err) {
		return apperr.Wrap(apperr.Conflict, "Job already saved", err)
	}

	return err
}

func (r *SQLiteRepo) UnsaveJob(ctx context.Context, jobSeekerID, jobID int64) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM saved_jobs WHERE job_seeker_id = ? AND job_id = ?`, jobSeekerID, jobID)
	return err
}

func (r *SQLiteRepo) ListSavedJobIDs(ctx context.Context, jobSeekerID int64) ([]int64, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT job_id FROM saved_jobs WHERE job_seeker_id = ? ORDER BY created DESC`, jobSeekerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}

		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func (r *SQLiteRepo) ListSavedJobs(ctx context.Context, jobSeekerID int64) ([]models.Job, error) {
	rows, err := r.conn.QueryRows(ctx,
		`SELECT `+prefixedJobColumns(`j`)+` FROM jobs j JOIN saved_jobs s ON s.job_id = j.id WHERE s.job_seeker_id = ? ORDER BY s.created DESC`,
		jobSeekerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectJobs(rows)
}

func (r *SQLiteRepo) CountSavedJobs(ctx context.Context, jobSeekerID int64) (int64, error) {
	var cnt int64
	if err := r.conn.QueryRow(ctx, `SELECT COUNT(*) FROM saved_jobs WHERE job_seeker_id = ?`, jobSeekerID).Scan(&cnt); err != nil {
		return 0, err
	}
	return cnt, nil
}
