package sqlite

import (
	"encoding/json"
	"time"

	"log/slog"

	"github.com/growcoach/jobboard/internal/db"
	"github.com/growcoach/jobboard/pkg/repository"
)

// SQLiteRepo implements repository interfaces using the internal DB wrapper.
type SQLiteRepo struct {
	conn   *db.DB
	logger *slog.Logger
}

// Ensure SQLiteRepo implements the public interfaces.
var _ repository.CandidateRepo = (*SQLiteRepo)(nil)
var _ repository.CompanyRepo = (*SQLiteRepo)(nil)
var _ repository.AdminRepo = (*SQLiteRepo)(nil)
var _ repository.JobRepo = (*SQLiteRepo)(nil)
var _ repository.BlacklistRepo = (*SQLiteRepo)(nil)
var _ repository.NotificationRepo = (*SQLiteRepo)(nil)

func New(conn *db.DB, logger *slog.Logger) *SQLiteRepo {
	if logger == nil {
		logger = slog.Default()
	}
	return &SQLiteRepo{conn: conn, logger: logger}
}

func now() int64 {
	return time.Now().UTC().UnixMilli()
}

// toJSON serializes list columns (skills, education, experience). A nil slice
// is stored as an empty JSON array so scans round-trip cleanly.
func toJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func fromJSON[T any](s string) []T {
	if s == "" {
		return nil
	}
	var out []T
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil
	}
	return out
}
