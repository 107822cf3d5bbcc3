package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/growcoach/jobboard/pkg/models"
)

const companyColumns = `id, company_name, email, password_hash, phone, location, website, description, industry, company_size, founded_year, logo, verified, status, created, updated`

func (r *SQLiteRepo) CreateCompany(ctx context.Context, c *models.Company) (int64, error) {
	if c == nil {
		return 0, fmt.Errorf("company is nil")
	}

	ts := now()
	res, err := r.conn.Exec(ctx, `INSERT INTO companies (company_name, email, password_hash, phone, location, website, description, industry, company_size, founded_year, logo, verified, status, created, updated) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.Name, c.Email, c.PasswordHash, c.Phone, c.Location, c.Website, c.Description,
		c.Industry, c.CompanySize, c.FoundedYear, c.Logo, c.Verified, c.Status, ts, ts)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) scanCompany(row interface{ Scan(...any) error }) (*models.Company, error) {
	var c models.Company
	var pw sql.NullString
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &pw, &c.Phone, &c.Location, &c.Website, &c.Description,
		&c.Industry, &c.CompanySize, &c.FoundedYear, &c.Logo, &c.Verified, &c.Status, &c.Created, &c.Updated); err != nil {
		return nil, err
	}

	if pw.Valid {
		c.PasswordHash = pw.String
	}

	return &c, nil
}

func (r *SQLiteRepo) GetCompanyByID(ctx context.Context, id int64) (*models.Company, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = ?`, id)
	c, err := r.scanCompany(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return c, nil
}

func (r *SQLiteRepo) GetCompanyByEmail(ctx context.Context, email string) (*models.Company, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE email = ?`, email)
	c, err := r.scanCompany(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return c, nil
}

func (r *SQLiteRepo) UpdateCompany(ctx context.Context, c *models.Company) error {
	if c == nil {
		return fmt.Errorf("company is nil")
	}

	_, err := r.conn.Exec(ctx, `UPDATE companies SET company_name = ?, email = ?, phone = ?, location = ?, website = ?, description = ?, industry = ?, company_size = ?, founded_year = ?, logo = ?, updated = ? WHERE id = ?`,
		c.Name, c.Email, c.Phone, c.Location, c.Website, c.Description,
		c.Industry, c.CompanySize, c.FoundedYear, c.Logo, now(), c.ID)
	return err
}

func (r *SQLiteRepo) ListCompanies(ctx context.Context) ([]models.Company, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT `+companyColumns+` FROM companies ORDER BY created DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Company
	for rows.Next() {
		c, err := r.scanCompany(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *SQLiteRepo) SetCompanyStatus(ctx context.Context, id int64, status string) (int64, error) {
	res, err := r.conn.Exec(ctx, `UPDATE companies SET status = ?, updated = ? WHERE id = ?`, status, now(), id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *SQLiteRepo) SetCompanyVerification(ctx context.Context, id int64, verified bool, status string) (int64, error) {
	res, err := r.conn.Exec(ctx, `UPDATE companies SET verified = ?, status = ?, updated = ? WHERE id = ?`, verified, status, now(), id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
