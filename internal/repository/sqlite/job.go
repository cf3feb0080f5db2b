package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/joblinkhq/joblink/pkg/models"
	"github.com/joblinkhq/joblink/pkg/repository"
)

const jobColumns = `id, company_id, title, description, location, type, experience_level, salary_min, salary_max, salary_currency, skills, requirements, responsibilities, benefits, remote, status, applications_count, views_count, posted_date, deadline, updated`

func (r *SQLiteRepo) CreateJob(ctx context.Context, j *models.Job) (int64, error) {
	if j == nil {
		return 0, fmt.Errorf("job is nil")
	}

	ts := now()
	if j.PostedDate == 0 {
		j.PostedDate = ts
	}
	res, err := r.conn.Exec(ctx,
		`INSERT INTO jobs (company_id, title, description, location, type, experience_level, salary_min, salary_max, salary_currency, skills, requirements, responsibilities, benefits, remote, status, posted_date, deadline, updated) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		j.CompanyID, j.Title, j.Description, j.Location, j.Type, j.ExperienceLevel,
		j.Salary.Min, j.Salary.Max, j.Salary.Currency,
		marshalStrings(j.Skills), marshalStrings(j.Requirements), marshalStrings(j.Responsibilities), marshalStrings(j.Benefits),
		boolToInt(j.Remote), j.Status, j.PostedDate, j.Deadline, ts)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetJob(ctx context.Context, id int64) (*models.Job, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = ?`, id)
	j, err := scanJob(row)
	if err != nil || j == nil {
		return nil, err
	}

	return j, nil
}

func (r *SQLiteRepo) UpdateJob(ctx context.Context, j *models.Job) error {
	if j == nil {
		return fmt.Errorf("job is nil")
	}

	_, err := r.conn.Exec(ctx,
		`UPDATE jobs SET title = ?, description = ?, location = ?, type = ?, experience_level = ?, salary_min = ?, salary_max = ?, salary_currency = ?, skills = ?, requirements = ?, responsibilities = ?, benefits = ?, remote = ?, status = ?, deadline = ?, updated = ? WHERE id = ?`,
		j.Title, j.Description, j.Location, j.Type, j.ExperienceLevel,
		j.Salary.Min, j.Salary.Max, j.Salary.Currency,
		marshalStrings(j.Skills), marshalStrings(j.Requirements), marshalStrings(j.Responsibilities), marshalStrings(j.Benefits),
		boolToInt(j.Remote), j.Status, j.Deadline, now(), j.ID)
	return err
}

func (r *SQLiteRepo) DeleteJob(ctx context.Context, id int64) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM jobs WHERE id = ?`, id)
	return err
}

func (r *SQLiteRepo) ListJobsByCompany(ctx context.Context, companyID int64) ([]models.Job, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT `+jobColumns+` FROM jobs WHERE company_id = ? ORDER BY posted_date DESC`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectJobs(rows)
}

func (r *SQLiteRepo) ListActiveJobs(ctx context.Context) ([]models.Job, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT `+jobColumns+` FROM jobs WHERE status = ? ORDER BY posted_date DESC`, models.JobStatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectJobs(rows)
}

func (r *SQLiteRepo) SearchJobs(ctx context.Context, q repository.JobSearch) ([]models.Job, int64, error) {
	where := []string{`status = ?`}
	args := []any{models.JobStatusActive}

	if q.Query != "" {
		where = append(where, `(title LIKE ? OR description LIKE ? OR skills LIKE ?)`)
		pat := "%" + q.Query + "%"
		args = append(args, pat, pat, pat)
	}
	if q.Location != "" {
		where = append(where, `location LIKE ?`)
		args = append(args, "%"+q.Location+"%")
	}
	if len(q.Types) > 0 {
		placeholders := strings.Repeat("?,", len(q.Types))
		where = append(where, `type IN (`+placeholders[:len(placeholders)-1]+`)`)
		for _, t := range q.Types {
			args = append(args, t)
		}
	}
	if q.ExperienceLevel != "" {
		where = append(where, `experience_level = ?`)
		args = append(args, q.ExperienceLevel)
	}
	if q.Remote {
		where = append(where, `remote = 1`)
	}
	if q.SalaryMin > 0 {
		where = append(where, `salary_min >= ?`)
		args = append(args, q.SalaryMin)
	}
	if q.SalaryMax > 0 {
		where = append(where, `salary_max <= ?`)
		args = append(args, q.SalaryMax)
	}
	if q.PostedAfter > 0 {
		where = append(where, `posted_date >= ?`)
		args = append(args, q.PostedAfter)
	}

	cond := strings.Join(where, " AND ")

	var total int64
	if err := r.conn.QueryRow(ctx, `SELECT COUNT(*) FROM jobs WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	order := `posted_date DESC`
	switch q.SortBy {
	case "salaryHigh":
		order = `salary_max DESC`
	case "salaryLow":
		order = `salary_min ASC`
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 10
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}

	rows, err := r.conn.QueryRows(ctx, `SELECT `+jobColumns+` FROM jobs WHERE `+cond+` ORDER BY `+order+` LIMIT ? OFFSET ?`, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	jobs, err := collectJobs(rows)
	if err != nil {
		return nil, 0, err
	}

	return jobs, total, nil
}

// IncrementViews bumps the view counter in a single statement so concurrent
// detail fetches never lose updates.
func (r *SQLiteRepo) IncrementViews(ctx context.Context, id int64) error {
	_, err := r.conn.Exec(ctx, `UPDATE jobs SET views_count = views_count + 1 WHERE id = ?`, id)
	return err
}

// AdjustApplicationsCount applies delta atomically, clamped at zero.
func (r *SQLiteRepo) AdjustApplicationsCount(ctx context.Context, id int64, delta int64) error {
	_, err := r.conn.Exec(ctx, `UPDATE jobs SET applications_count = MAX(applications_count + ?, 0) WHERE id = ?`, delta, id)
	return err
}

// prefixedJobColumns qualifies the job column list with a table alias for
// joined queries.
func prefixedJobColumns(alias string) string {
	cols := strings.Split(jobColumns, ", ")
	for i, c := range cols {
		cols[i] = alias + "." + c
	}
	return strings.Join(cols, ", ")
}

type scanner interface {
	Scan(dest ...any) error
}

func scanJobFields(s scanner) (*models.Job, error) {
	var j models.Job
	var skills, requirements, responsibilities, benefits string
	var remote int
	var deadline sql.NullInt64
	if err := s.Scan(&j.ID, &j.CompanyID, &j.Title, &j.Description, &j.Location, &j.Type, &j.ExperienceLevel,
		&j.Salary.Min, &j.Salary.Max, &j.Salary.Currency,
		&skills, &requirements, &responsibilities, &benefits,
		&remote, &j.Status, &j.ApplicationsCount, &j.ViewsCount, &j.PostedDate, &deadline, &j.Updated); err != nil {
		return nil, err
	}

	j.Skills = unmarshalStrings(skills)
	j.Requirements = unmarshalStrings(requirements)
	j.Responsibilities = unmarshalStrings(responsibilities)
	j.Benefits = unmarshalStrings(benefits)
	j.Remote = remote != 0
	if deadline.Valid {
		v := deadline.Int64
		j.Deadline = &v
	}

	return &j, nil
}

func scanJob(row *sql.Row) (*models.Job, error) {
	j, err := scanJobFields(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return j, nil
}

func collectJobs(rows *sql.Rows) ([]models.Job, error) {
	var out []models.Job
	for rows.Next() {
		j, err := scanJobFields(rows)
		if err != nil {
			return nil, err
		}

		out = append(out, *j)
	}

	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
