package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/growcoach/jobboard/pkg/models"
)

const jobColumns = `id, company_id, job_title, salary, looking_for_profile, required_experience, required_skills, status, created, updated`

func (r *SQLiteRepo) CreateJob(ctx context.Context, j *models.Job) (int64, error) {
	if j == nil {
		return 0, fmt.Errorf("job is nil")
	}

	ts := now()
	res, err := r.conn.Exec(ctx, `INSERT INTO jobs (company_id, job_title, salary, looking_for_profile, required_experience, required_skills, status, created, updated) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		j.CompanyID, j.Title, j.Salary, j.Profile, j.Experience, toJSON(j.Skills), j.Status, ts, ts)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) scanJob(row interface{ Scan(...any) error }) (*models.Job, error) {
	var j models.Job
	var skills string
	if err := row.Scan(&j.ID, &j.CompanyID, &j.Title, &j.Salary, &j.Profile, &j.Experience, &skills, &j.Status, &j.Created, &j.Updated); err != nil {
		return nil, err
	}
	j.Skills = fromJSON[string](skills)

	return &j, nil
}

func (r *SQLiteRepo) GetJobByID(ctx context.Context, id int64) (*models.Job, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = ?`, id)
	j, err := r.scanJob(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return j, nil
}

func (r *SQLiteRepo) UpdateJob(ctx context.Context, j *models.Job) error {
	if j == nil {
		return fmt.Errorf("job is nil")
	}

	_, err := r.conn.Exec(ctx, `UPDATE jobs SET job_title = ?, salary = ?, looking_for_profile = ?, required_experience = ?, required_skills = ?, updated = ? WHERE id = ?`,
		j.Title, j.Salary, j.Profile, j.Experience, toJSON(j.Skills), now(), j.ID)
	return err
}

func (r *SQLiteRepo) ListJobs(ctx context.Context) ([]models.Job, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT `+jobColumns+` FROM jobs ORDER BY created DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.collectJobs(rows)
}

func (r *SQLiteRepo) ListJobsByCompany(ctx context.Context, companyID int64) ([]models.Job, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT `+jobColumns+` FROM jobs WHERE company_id = ? ORDER BY created DESC`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.collectJobs(rows)
}

func (r *SQLiteRepo) collectJobs(rows *sql.Rows) ([]models.Job, error) {
	var out []models.Job
	for rows.Next() {
		j, err := r.scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *j)
	}
	return out, rows.Err()
}

func (r *SQLiteRepo) SetJobStatus(ctx context.Context, id int64, status string) (int64, error) {
	res, err := r.conn.Exec(ctx, `UPDATE jobs SET status = ?, updated = ? WHERE id = ?`, status, now(), id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *SQLiteRepo) AddApplicant(ctx context.Context, jobID, candidateID int64) (bool, error) {
	// set semantics enforced by the (job_id, candidate_id) primary key
	res, err := r.conn.Exec(ctx, `INSERT OR IGNORE INTO job_applicants (job_id, candidate_id, created) VALUES (?, ?, ?)`, jobID, candidateID, now())
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *SQLiteRepo) ListApplicants(ctx context.Context, jobID int64) ([]int64, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT candidate_id FROM job_applicants WHERE job_id = ? ORDER BY created`, jobID)
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
