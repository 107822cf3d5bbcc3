package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/growcoach/jobboard/pkg/models"
)

func (r *SQLiteRepo) CreateNotification(ctx context.Context, n *models.Notification) (int64, error) {
	if n == nil {
		return 0, fmt.Errorf("notification is nil")
	}

	ts := n.Time
	if ts == 0 {
		ts = now()
	}
	res, err := r.conn.Exec(ctx, `INSERT INTO admin_notifications (text, time, unread, type, subject_id, subject_name) VALUES (?, ?, ?, ?, ?, ?)`,
		n.Text, ts, n.Unread, n.Type, n.SubjectID, n.SubjectName)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) ListNotifications(ctx context.Context) ([]models.Notification, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, text, time, unread, type, subject_id, subject_name FROM admin_notifications ORDER BY time DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.Text, &n.Time, &n.Unread, &n.Type, &n.SubjectID, &n.SubjectName); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *SQLiteRepo) DeleteNotification(ctx context.Context, id int64) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM admin_notifications WHERE id = ?`, id)
	return err
}

func (r *SQLiteRepo) DeleteBySubject(ctx context.Context, typ string, subjectID int64) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM admin_notifications WHERE type = ? AND subject_id = ?`, typ, subjectID)
	return err
}

func (r *SQLiteRepo) HasUnread(ctx context.Context, typ string, subjectID int64) (bool, error) {
	row := r.conn.QueryRow(ctx, `SELECT 1 FROM admin_notifications WHERE type = ? AND subject_id = ? AND unread = 1 LIMIT 1`, typ, subjectID)
	var one int
	if err := row.Scan(&one); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}

		return false, err
	}

	return true, nil
}
