package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/joblinkhq/joblink/internal/apperr"
	"github.com/joblinkhq/joblink/pkg/models"
)

func (r *SQLiteRepo) CreateJobSeeker(ctx context.Context, s *models.JobSeeker) (int64, error) {
	if s == nil {
		return 0, fmt.Errorf("job seeker is nil")
	}

	ts := now()
	res, err := r.conn.Exec(ctx,
		`INSERT INTO job_seekers (email, password_hash, full_name, phone, location, bio, skills, created, updated) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.Email, s.PasswordHash, s.FullName, s.Phone, s.Location, s.Bio, marshalStrings(s.Skills), ts, ts)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, apperr.Wrap(apperr.Conflict, "Email already registered as Job Seeker", err)
		}

		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetJobSeekerByID(ctx context.Context, id int64) (*models.JobSeeker, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, email, password_hash, full_name, phone, location, bio, skills, resume, created, updated FROM job_seekers WHERE id = ?`, id)
	return scanJobSeeker(row)
}

func (r *SQLiteRepo) GetJobSeekerByEmail(ctx context.Context, email string) (*models.JobSeeker, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, email, password_hash, full_name, phone, location, bio, skills, resume, created, updated FROM job_seekers WHERE email = ?`, email)
	return scanJobSeeker(row)
}

func (r *SQLiteRepo) UpdateJobSeeker(ctx context.Context, s *models.JobSeeker) error {
	if s == nil {
		return fmt.Errorf("job seeker is nil")
	}

	_, err := r.conn.Exec(ctx,
		`UPDATE job_seekers SET full_name = ?, phone = ?, location = ?, bio = ?, skills = ?, updated = ? WHERE id = ?`,
		s.FullName, s.Phone, s.Location, s.Bio, marshalStrings(s.Skills), now(), s.ID)
	return err
}

func (r *SQLiteRepo) UpdateResume(ctx context.Context, jobSeekerID int64, resume *models.Resume) error {
	var doc sql.NullString
	if resume != nil {
		b, err := json.Marshal(resume)
		if err != nil {
			return fmt.Errorf("marshal resume: %w", err)
		}
		doc = sql.NullString{String: string(b), Valid: true}
	}

	_, err := r.conn.Exec(ctx, `UPDATE job_seekers SET resume = ?, updated = ? WHERE id = ?`, doc, now(), jobSeekerID)
	return err
}

func scanJobSeeker(row *sql.Row) (*models.JobSeeker, error) {
	var s models.JobSeeker
	var skills string
	var resume sql.NullString
	if err := row.Scan(&s.ID, &s.Email, &s.PasswordHash, &s.FullName, &s.Phone, &s.Location, &s.Bio, &skills, &resume, &s.Created, &s.Updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	s.Skills = unmarshalStrings(skills)
	if resume.Valid {
		var doc models.Resume
		if err := json.Unmarshal([]byte(resume.String), &doc); err != nil {
			return nil, fmt.Errorf("unmarshal resume: %w", err)
		}
		s.Resume = &doc
	}

	return &s, nil
}
