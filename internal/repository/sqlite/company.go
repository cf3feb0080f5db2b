package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/joblinkhq/joblink/internal/apperr"
	"github.com/joblinkhq/joblink/pkg/models"
)

func (r *SQLiteRepo) CreateCompany(ctx context.Context, c *models.Company) (int64, error) {
	if c == nil {
		return 0, fmt.Errorf("company is nil")
	}

	ts := now()
	res, err := r.conn.Exec(ctx,
		`INSERT INTO companies (email, password_hash, company_name, location, description, industry, total_employees, logo, created, updated) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.Email, c.PasswordHash, c.CompanyName, c.Location, c.Description, c.Industry, c.TotalEmployees, c.Logo, ts, ts)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, apperr.Wrap(apperr.Conflict, "Company with this email already exists", err)
		}

		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetCompanyByID(ctx context.Context, id int64) (*models.Company, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, email, password_hash, company_name, location, description, industry, total_employees, logo, created, updated FROM companies WHERE id = ?`, id)
	return scanCompany(row)
}

func (r *SQLiteRepo) GetCompanyByEmail(ctx context.Context, email string) (*models.Company, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, email, password_hash, company_name, location, description, industry, total_employees, logo, created, updated FROM companies WHERE email = ?`, email)
	return scanCompany(row)
}

func (r *SQLiteRepo) UpdateCompany(ctx context.Context, c *models.Company) error {
	if c == nil {
		return fmt.Errorf("company is nil")
	}

	_, err := r.conn.Exec(ctx,
		`UPDATE companies SET password_hash = ?, company_name = ?, location = ?, description = ?, industry = ?, total_employees = ?, logo = ?, updated = ? WHERE id = ?`,
		c.PasswordHash, c.CompanyName, c.Location, c.Description, c.Industry, c.TotalEmployees, c.Logo, now(), c.ID)
	return err
}

func scanCompany(row *sql.Row) (*models.Company, error) {
	var c models.Company
	if err := row.Scan(&c.ID, &c.Email, &c.PasswordHash, &c.CompanyName, &c.Location, &c.Description, &c.Industry, &c.TotalEmployees, &c.Logo, &c.Created, &c.Updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &c, nil
}
