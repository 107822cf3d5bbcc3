package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/growcoach/jobboard/pkg/models"
)

const candidateColumns = `id, first_name, last_name, email, password_hash, phone, location, bio, skills, education, experience, avatar, resume, admin_cv, status, created, updated`

func (r *SQLiteRepo) CreateCandidate(ctx context.Context, c *models.Candidate) (int64, error) {
	if c == nil {
		return 0, fmt.Errorf("candidate is nil")
	}

	ts := now()
	res, err := r.conn.Exec(ctx, `INSERT INTO candidates (first_name, last_name, email, password_hash, phone, location, bio, skills, education, experience, avatar, resume, status, created, updated) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.FirstName, c.LastName, c.Email, c.PasswordHash, c.Phone, c.Location, c.Bio,
		toJSON(c.Skills), toJSON(c.Education), toJSON(c.Experience),
		c.Avatar, c.Resume, c.Status, ts, ts)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) scanCandidate(row interface{ Scan(...any) error }) (*models.Candidate, error) {
	var c models.Candidate
	var skills, education, experience string
	var pw sql.NullString
	if err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &pw, &c.Phone, &c.Location, &c.Bio,
		&skills, &education, &experience, &c.Avatar, &c.Resume, &c.AdminCV, &c.Status, &c.Created, &c.Updated); err != nil {
		return nil, err
	}

	if pw.Valid {
		c.PasswordHash = pw.String
	}
	c.Skills = fromJSON[string](skills)
	c.Education = fromJSON[models.Education](education)
	c.Experience = fromJSON[models.Experience](experience)

	return &c, nil
}

func (r *SQLiteRepo) GetCandidateByID(ctx context.Context, id int64) (*models.Candidate, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+candidateColumns+` FROM candidates WHERE id = ?`, id)
	c, err := r.scanCandidate(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return c, nil
}

func (r *SQLiteRepo) GetCandidateByEmail(ctx context.Context, email string) (*models.Candidate, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+candidateColumns+` FROM candidates WHERE email = ?`, email)
	c, err := r.scanCandidate(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return c, nil
}

func (r *SQLiteRepo) UpdateCandidate(ctx context.Context, c *models.Candidate) error {
	if c == nil {
		return fmt.Errorf("candidate is nil")
	}

	_, err := r.conn.Exec(ctx, `UPDATE candidates SET first_name = ?, last_name = ?, email = ?, phone = ?, location = ?, bio = ?, skills = ?, education = ?, experience = ?, avatar = ?, resume = ?, updated = ? WHERE id = ?`,
		c.FirstName, c.LastName, c.Email, c.Phone, c.Location, c.Bio,
		toJSON(c.Skills), toJSON(c.Education), toJSON(c.Experience),
		c.Avatar, c.Resume, now(), c.ID)
	return err
}

func (r *SQLiteRepo) ListCandidates(ctx context.Context) ([]models.Candidate, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT `+candidateColumns+` FROM candidates ORDER BY created DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Candidate
	for rows.Next() {
		c, err := r.scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *SQLiteRepo) SetCandidateStatus(ctx context.Context, id int64, status string) (int64, error) {
	res, err := r.conn.Exec(ctx, `UPDATE candidates SET status = ?, updated = ? WHERE id = ?`, status, now(), id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *SQLiteRepo) SetAdminCV(ctx context.Context, id int64, filename string) (int64, error) {
	res, err := r.conn.Exec(ctx, `UPDATE candidates SET admin_cv = ?, updated = ? WHERE id = ?`, filename, now(), id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *SQLiteRepo) SaveJob(ctx context.Context, candidateID, jobID int64) error {
	_, err := r.conn.Exec(ctx, `INSERT OR IGNORE INTO saved_jobs (candidate_id, job_id, created) VALUES (?, ?, ?)`, candidateID, jobID, now())
	return err
}

func (r *SQLiteRepo) UnsaveJob(ctx context.Context, candidateID, jobID int64) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM saved_jobs WHERE candidate_id = ? AND job_id = ?`, candidateID, jobID)
	return err
}

func (r *SQLiteRepo) ListSavedJobs(ctx context.Context, candidateID int64) ([]int64, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT job_id FROM saved_jobs WHERE candidate_id = ? ORDER BY created DESC`, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
