package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/joblinkhq/joblink/internal/apperr"
	"github.com/joblinkhq/joblink/pkg/models"
)

const applicationColumns = `id, job_seeker_id, job_id, company_id, status, cover_letter, resume_snapshot, status_history, notes, applied_date, updated`

func (r *SQLiteRepo) CreateApplication(ctx context.Context, a *models.Application) (int64, error) {
	if a == nil {
		return 0, fmt.Errorf("application is nil")
	}

	snapshot, err := marshalResume(a.ResumeSnapshot)
	if err != nil {
		return 0, err
	}
	history, err := json.Marshal(a.StatusHistory)
	if err != nil {
		return 0, fmt.Errorf("marshal status history: %w", err)
	}

	ts := now()
	if a.AppliedDate == 0 {
		a.AppliedDate = ts
	}
	res, err := r.conn.Exec(ctx,
		`INSERT INTO applications (job_seeker_id, job_id, company_id, status, cover_letter, resume_snapshot, status_history, notes, applied_date, updated) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.JobSeekerID, a.JobID, a.CompanyID, a.Status, a.CoverLetter, snapshot, string(history), a.Notes, a.AppliedDate, ts)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, apperr.Wrap(apperr.Conflict, "You have already applied to this job", err)
		}

		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetApplication(ctx context.Context, id int64) (*models.Application, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = ?`, id)
	a, err := scanApplicationFields(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return a, nil
}

func (r *SQLiteRepo) ListByJobSeeker(ctx context.Context, jobSeekerID int64, status string) ([]models.Application, error) {
	q := `SELECT ` + applicationColumns + ` FROM applications WHERE job_seeker_id = ?`
	args := []any{jobSeekerID}
	if status != "" && status != "all" {
		q += ` AND status = ?`
		args = append(args, status)
	}
	q += ` ORDER BY applied_date DESC`

	rows, err := r.conn.QueryRows(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectApplications(rows)
}

func (r *SQLiteRepo) ListByJob(ctx context.Context, jobID int64) ([]models.Application, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT `+applicationColumns+` FROM applications WHERE job_id = ? ORDER BY applied_date DESC`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectApplications(rows)
}

// UpdateApplication writes the status, history, notes and refreshed updated
// stamp in one statement, so a history append always rides the same write as
// the status change it records.
func (r *SQLiteRepo) UpdateApplication(ctx context.Context, a *models.Application) error {
	if a == nil {
		return fmt.Errorf("application is nil")
	}

	history, err := json.Marshal(a.StatusHistory)
	if err != nil {
		return fmt.Errorf("marshal status history: %w", err)
	}

	_, err = r.conn.Exec(ctx,
		`UPDATE applications SET status = ?, status_history = ?, notes = ?, updated = ? WHERE id = ?`,
		a.Status, string(history), a.Notes, now(), a.ID)
	return err
}

func (r *SQLiteRepo) DeleteApplication(ctx context.Context, id int64) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM applications WHERE id = ?`, id)
	return err
}

func (r *SQLiteRepo) CountByJobSeeker(ctx context.Context, jobSeekerID int64, status string) (int64, error) {
	q := `SELECT COUNT(*) FROM applications WHERE job_seeker_id = ?`
	args := []any{jobSeekerID}
	if status != "" && status != "all" {
		q += ` AND status = ?`
		args = append(args, status)
	}

	var cnt int64
	if err := r.conn.QueryRow(ctx, q, args...).Scan(&cnt); err != nil {
		return 0, err
	}
	return cnt, nil
}

func (r *SQLiteRepo) CountRecentByJobSeeker(ctx context.Context, jobSeekerID int64, since int64) (int64, error) {
	var cnt int64
	if err := r.conn.QueryRow(ctx, `SELECT COUNT(*) FROM applications WHERE job_seeker_id = ? AND applied_date >= ?`, jobSeekerID, since).Scan(&cnt); err != nil {
		return 0, err
	}
	return cnt, nil
}

func marshalResume(r *models.Resume) (sql.NullString, error) {
	if r == nil {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(r)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("marshal resume snapshot: %w", err)
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

func scanApplicationFields(s scanner) (*models.Application, error) {
	var a models.Application
	var snapshot sql.NullString
	var history string
	if err := s.Scan(&a.ID, &a.JobSeekerID, &a.JobID, &a.CompanyID, &a.Status, &a.CoverLetter, &snapshot, &history, &a.Notes, &a.AppliedDate, &a.Updated); err != nil {
		return nil, err
	}

	if snapshot.Valid {
		var doc models.Resume
		if err := json.Unmarshal([]byte(snapshot.String), &doc); err != nil {
			return nil, fmt.Errorf("unmarshal resume snapshot: %w", err)
		}
		a.ResumeSnapshot = &doc
	}
	if history != "" {
		if err := json.Unmarshal([]byte(history), &a.StatusHistory); err != nil {
			return nil, fmt.Errorf("unmarshal status history: %w", err)
		}
	}

	return &a, nil
}

func collectApplications(rows *sql.Rows) ([]models.Application, error) {
	var out []models.Application
	for rows.Next() {
		a, err := scanApplicationFields(rows)
		if err != nil {
			return nil, err
		}

		out = append(out, *a)
	}

	return out, rows.Err()
}
