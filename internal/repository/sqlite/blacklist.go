package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/growcoach/jobboard/pkg/models"
)

// InsertRevocation records a revoked token. INSERT OR IGNORE keeps the call
// duplicate-tolerant: a second revoke of the same jti succeeds and leaves the
// original record untouched.
func (r *SQLiteRepo) InsertRevocation(ctx context.Context, rec *models.RevocationRecord) error {
	if rec == nil {
		return fmt.Errorf("revocation record is nil")
	}

	_, err := r.conn.Exec(ctx, `INSERT OR IGNORE INTO token_blacklist (jti, exp, revoked_at, user_id, user_type) VALUES (?, ?, ?, ?, ?)`,
		rec.JTI, rec.Exp, now(), rec.UserID, rec.UserType)
	return err
}

func (r *SQLiteRepo) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	row := r.conn.QueryRow(ctx, `SELECT 1 FROM token_blacklist WHERE jti = ?`, jti)
	var one int
	if err := row.Scan(&one); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

func (r *SQLiteRepo) DeleteExpired(ctx context.Context, cutoff int64) (int64, error) {
	res, err := r.conn.Exec(ctx, `DELETE FROM token_blacklist WHERE exp < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
