package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/growcoach/jobboard/pkg/models"
)

func (r *SQLiteRepo) CreateAdmin(ctx context.Context, a *models.Admin) (int64, error) {
	if a == nil {
		return 0, fmt.Errorf("admin is nil")
	}

	ts := now()
	res, err := r.conn.Exec(ctx, `INSERT INTO admins (email, password_hash, role, created, updated) VALUES (?, ?, ?, ?, ?)`,
		a.Email, a.PasswordHash, a.Role, ts, ts)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetAdminByID(ctx context.Context, id int64) (*models.Admin, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, email, password_hash, role, created, updated FROM admins WHERE id = ?`, id)
	var a models.Admin
	if err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Role, &a.Created, &a.Updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &a, nil
}

func (r *SQLiteRepo) GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, email, password_hash, role, created, updated FROM admins WHERE email = ?`, email)
	var a models.Admin
	if err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Role, &a.Created, &a.Updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &a, nil
}
