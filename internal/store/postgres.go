package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/investor-profile/internal/db"
	"github.com/sells-group/investor-profile/internal/model"
	"github.com/sells-group/investor-profile/internal/resilience"
)

const reportsTable = "stored_reports"

// importColumns is the column order used by ImportReports.
var importColumns = []string{
	"id", "user_id", "risk_score", "risk_label", "type_code",
	"fingerprint", "responses", "report", "narrative", "generated_at",
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

const (
	sqlInsertReport = `INSERT INTO stored_reports
		(id, user_id, risk_score, risk_label, type_code, fingerprint, responses, report, narrative, generated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	sqlGetReport    = `SELECT id, user_id, responses, report, narrative, fingerprint, generated_at FROM stored_reports WHERE id = $1`
	sqlLatestReport = `SELECT id, user_id, responses, report, narrative, fingerprint, generated_at FROM stored_reports WHERE user_id = $1 ORDER BY generated_at DESC, id DESC LIMIT 1`
)

// preparedStatements are prepared on each new connection.
var preparedStatements = map[string]string{
	"insert_report": sqlInsertReport,
	"get_report":    sqlGetReport,
	"latest_report": sqlLatestReport,
}

// NewPostgres creates a PostgresStore, retrying transient connection
// failures according to retry.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig, retry resilience.RetryConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	pgxCfg.MaxConns = 10
	pgxCfg.MinConns = 1
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			pgxCfg.MaxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			pgxCfg.MinConns = poolCfg.MinConns
		}
	}
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

	if retry.OnRetry == nil {
		retry.OnRetry = resilience.RetryLogger("postgres connect")
	}
	pool, err := resilience.DoVal(ctx, retry, func(ctx context.Context) (*pgxpool.Pool, error) {
		pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
		if err != nil {
			return nil, err
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		return pool, nil
	})
	if err != nil {
		return nil, eris.Wrap(err, "postgres: connect")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

// NewPostgresWithPool wraps an existing pool. Close does not close it.
func NewPostgresWithPool(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS stored_reports (
	id           TEXT PRIMARY KEY,
	user_id      TEXT NOT NULL,
	risk_score   INTEGER NOT NULL,
	risk_label   TEXT NOT NULL,
	type_code    TEXT NOT NULL,
	fingerprint  TEXT NOT NULL DEFAULT '',
	responses    JSONB NOT NULL,
	report       JSONB NOT NULL,
	narrative    TEXT NOT NULL DEFAULT '',
	generated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_stored_reports_user ON stored_reports(user_id, generated_at DESC);
CREATE INDEX IF NOT EXISTS idx_stored_reports_generated_at ON stored_reports(generated_at);
CREATE INDEX IF NOT EXISTS idx_stored_reports_risk_label ON stored_reports(risk_label);
`

func (s *PostgresStore) Ping(ctx context.Context) error {
	return eris.Wrap(s.pool.Ping(ctx), "postgres: ping")
}

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

func (s *PostgresStore) SaveReport(ctx context.Context, r *model.StoredReport) error {
	if err := validateReport(r); err != nil {
		return err
	}
	responses, report, err := marshalReport(r)
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx, sqlInsertReport,
		r.ID, r.UserID, r.Report.RiskProfile.Score, r.Report.RiskProfile.Label, r.Report.InvestorType.Code,
		r.Fingerprint, responses, report, r.Narrative, r.GeneratedAt.UTC(),
	)
	return eris.Wrapf(err, "postgres: insert report %s", r.ID)
}

func (s *PostgresStore) GetReport(ctx context.Context, id string) (*model.StoredReport, error) {
	r, err := scanPgReport(s.pool.QueryRow(ctx, sqlGetReport, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, eris.Wrapf(ErrNotFound, "id %s", id)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get report %s", id)
	}
	return r, nil
}

func (s *PostgresStore) LatestReport(ctx context.Context, userID string) (*model.StoredReport, error) {
	r, err := scanPgReport(s.pool.QueryRow(ctx, sqlLatestReport, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: latest report for %s", userID)
	}
	return r, nil
}

func (s *PostgresStore) ListReports(ctx context.Context, filter ReportFilter) ([]model.StoredReport, error) {
	query := `SELECT id, user_id, responses, report, narrative, fingerprint, generated_at FROM stored_reports WHERE true`
	args := []any{}
	argIdx := 1

	if filter.UserID != "" {
		query += fmt.Sprintf(` AND user_id = $%d`, argIdx)
		args = append(args, filter.UserID)
		argIdx++
	}
	if filter.RiskLabel != "" {
		query += fmt.Sprintf(` AND risk_label = $%d`, argIdx)
		args = append(args, filter.RiskLabel)
		argIdx++
	}
	if !filter.Since.IsZero() {
		query += fmt.Sprintf(` AND generated_at >= $%d`, argIdx)
		args = append(args, filter.Since.UTC())
		argIdx++
	}
	query += fmt.Sprintf(` ORDER BY generated_at DESC, id DESC LIMIT $%d`, argIdx)
	args = append(args, filter.limit())
	argIdx++

	if filter.Offset > 0 {
		query += fmt.Sprintf(` OFFSET $%d`, argIdx)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list reports")
	}
	defer rows.Close()

	var out []model.StoredReport
	for rows.Next() {
		r, err := scanPgReport(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan report")
		}
		out = append(out, *r)
	}
	return out, eris.Wrap(rows.Err(), "postgres: list reports iterate")
}

func (s *PostgresStore) DeleteReportsBefore(ctx context.Context, cutoff time.Time) (int, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM stored_reports WHERE generated_at < $1`, cutoff.UTC())
	if err != nil {
		return 0, eris.Wrap(err, "postgres: delete reports")
	}
	return int(tag.RowsAffected()), nil
}

// ImportReports bulk-loads reports with COPY. With upsert set, rows whose
// id already exists are overwritten instead of failing the batch.
func (s *PostgresStore) ImportReports(ctx context.Context, reports []model.StoredReport, upsert bool) (int64, error) {
	rows := make([][]any, 0, len(reports))
	for i := range reports {
		r := &reports[i]
		if err := validateReport(r); err != nil {
			return 0, eris.Wrapf(err, "postgres: import row %d", i)
		}
		responses, report, err := marshalReport(r)
		if err != nil {
			return 0, err
		}
		rows = append(rows, []any{
			r.ID, r.UserID, r.Report.RiskProfile.Score, r.Report.RiskProfile.Label, r.Report.InvestorType.Code,
			r.Fingerprint, responses, report, r.Narrative, r.GeneratedAt.UTC(),
		})
	}

	var (
		n   int64
		err error
	)
	if upsert {
		n, err = db.BulkUpsert(ctx, s.pool, db.UpsertConfig{
			Table:        reportsTable,
			Columns:      importColumns,
			ConflictKeys: []string{"id"},
		}, rows)
	} else {
		n, err = db.CopyFrom(ctx, s.pool, reportsTable, importColumns, rows)
	}
	if err != nil {
		return 0, eris.Wrap(err, "postgres: import reports")
	}

	zap.L().Info("postgres: imported reports",
		zap.Int64("rows", n),
		zap.Bool("upsert", upsert),
	)
	return n, nil
}

func scanPgReport(row pgx.Row) (*model.StoredReport, error) {
	var r model.StoredReport
	var responses, report []byte

	if err := row.Scan(&r.ID, &r.UserID, &responses, &report, &r.Narrative, &r.Fingerprint, &r.GeneratedAt); err != nil {
		return nil, err
	}
	if err := unmarshalReport(&r, responses, report); err != nil {
		return nil, err
	}
	r.GeneratedAt = r.GeneratedAt.UTC()
	return &r, nil
}
