package store

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/lumir-ai/tbi-engine/internal/tbi"
)

// Pool is the subset of pgxpool.Pool the store uses; pgxmock satisfies it
// in tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// preparedStatements lists queries to prepare on each new connection.
var preparedStatements = map[string]string{
	"insert_report": `INSERT INTO reports (id, name, report, created_at) VALUES ($1, $2, $3, $4)`,
	"get_report":    `SELECT id, name, report, created_at FROM reports WHERE id = $1`,
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pgxCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		for name, sql := range preparedStatements {
			if _, err := conn.Prepare(ctx, name, sql); err != nil {
				return eris.Wrapf(err, "postgres: prepare %s", name)
			}
		}
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS reports (
	id         TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	name       TEXT NOT NULL,
	report     JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_reports_name ON reports(name);
CREATE INDEX IF NOT EXISTS idx_reports_created_at ON reports(created_at);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) SaveReport(ctx context.Context, report *tbi.Report) (*ReportRecord, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	reportJSON, err := json.Marshal(report)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal report")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO reports (id, name, report, created_at) VALUES ($1, $2, $3, $4)`,
		id, report.Profile.Name, reportJSON, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert report")
	}

	return &ReportRecord{
		ID:        id,
		Name:      report.Profile.Name,
		Report:    report,
		CreatedAt: now,
	}, nil
}

func (s *PostgresStore) GetReport(ctx context.Context, id string) (*ReportRecord, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, name, report, created_at FROM reports WHERE id = $1`,
		id,
	)

	rec, err := scanReportPg(row)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get report %s", id)
	}
	return rec, nil
}

func (s *PostgresStore) ListReports(ctx context.Context, filter ReportFilter) ([]ReportRecord, error) {
	query := `SELECT id, name, report, created_at FROM reports WHERE 1=1`
	var args []any

	if filter.Name != "" {
		args = append(args, tbi.NormalizeName(filter.Name))
		query += ` AND name = $` + strconv.Itoa(len(args))
	}
	if !filter.From.IsZero() {
		args = append(args, filter.From.UTC())
		query += ` AND created_at >= $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	args = append(args, limit)
	query += ` LIMIT $` + strconv.Itoa(len(args))

	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += ` OFFSET $` + strconv.Itoa(len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list reports")
	}
	defer rows.Close()

	var records []ReportRecord
	for rows.Next() {
		rec, err := scanReportPg(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, eris.Wrap(rows.Err(), "postgres: list reports iterate")
}

func scanReportPg(row pgx.Row) (*ReportRecord, error) {
	var rec ReportRecord
	var reportJSON []byte

	if err := row.Scan(&rec.ID, &rec.Name, &reportJSON, &rec.CreatedAt); err != nil {
		return nil, eris.Wrap(err, "postgres: scan report")
	}

	rec.Report = &tbi.Report{}
	if err := json.Unmarshal(reportJSON, rec.Report); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal report")
	}
	return &rec, nil
}
