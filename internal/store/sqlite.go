package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/lumir-ai/tbi-engine/internal/tbi"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS reports (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	report     TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_reports_name ON reports(name);
CREATE INDEX IF NOT EXISTS idx_reports_created_at ON reports(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveReport(ctx context.Context, report *tbi.Report) (*ReportRecord, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	reportJSON, err := json.Marshal(report)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal report")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO reports (id, name, report, created_at) VALUES (?, ?, ?, ?)`,
		id, report.Profile.Name, string(reportJSON), now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert report")
	}

	return &ReportRecord{
		ID:        id,
		Name:      report.Profile.Name,
		Report:    report,
		CreatedAt: now,
	}, nil
}

func (s *SQLiteStore) GetReport(ctx context.Context, id string) (*ReportRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, report, created_at FROM reports WHERE id = ?`,
		id,
	)
	return scanReport(row)
}

func (s *SQLiteStore) ListReports(ctx context.Context, filter ReportFilter) ([]ReportRecord, error) {
	query := `SELECT id, name, report, created_at FROM reports WHERE 1=1`
	var args []any

	if filter.Name != "" {
		query += ` AND name = ?`
		args = append(args, tbi.NormalizeName(filter.Name))
	}
	if !filter.From.IsZero() {
		query += ` AND created_at >= ?`
		args = append(args, filter.From.UTC())
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list reports")
	}
	defer rows.Close()

	var records []ReportRecord
	for rows.Next() {
		rec, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, eris.Wrap(rows.Err(), "sqlite: list reports iterate")
}

// helpers

type scannable interface {
	Scan(dest ...any) error
}

func scanReport(row scannable) (*ReportRecord, error) {
	var rec ReportRecord
	var reportJSON string

	err := row.Scan(&rec.ID, &rec.Name, &reportJSON, &rec.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, eris.New("report not found")
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan report")
	}

	rec.Report = &tbi.Report{}
	if err := json.Unmarshal([]byte(reportJSON), rec.Report); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal report")
	}
	return &rec, nil
}
