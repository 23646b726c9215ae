package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/investor-profile/internal/model"
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

// generated_at is stored as unix nanoseconds so ordering is numeric.
const sqliteMigration = `
CREATE TABLE IF NOT EXISTS stored_reports (
	id           TEXT PRIMARY KEY,
	user_id      TEXT NOT NULL,
	risk_score   INTEGER NOT NULL,
	risk_label   TEXT NOT NULL,
	type_code    TEXT NOT NULL,
	fingerprint  TEXT NOT NULL DEFAULT '',
	responses    TEXT NOT NULL,
	report       TEXT NOT NULL,
	narrative    TEXT NOT NULL DEFAULT '',
	generated_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_stored_reports_user ON stored_reports(user_id, generated_at DESC);
CREATE INDEX IF NOT EXISTS idx_stored_reports_generated_at ON stored_reports(generated_at);
CREATE INDEX IF NOT EXISTS idx_stored_reports_risk_label ON stored_reports(risk_label);
`

const sqliteColumns = `id, user_id, responses, report, narrative, fingerprint, generated_at`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return eris.Wrap(s.db.PingContext(ctx), "sqlite: ping")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveReport(ctx context.Context, r *model.StoredReport) error {
	if err := validateReport(r); err != nil {
		return err
	}
	responses, report, err := marshalReport(r)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO stored_reports
			(id, user_id, risk_score, risk_label, type_code, fingerprint, responses, report, narrative, generated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.UserID, r.Report.RiskProfile.Score, r.Report.RiskProfile.Label, r.Report.InvestorType.Code,
		r.Fingerprint, string(responses), string(report), r.Narrative, r.GeneratedAt.UTC().UnixNano(),
	)
	return eris.Wrapf(err, "sqlite: insert report %s", r.ID)
}

func (s *SQLiteStore) GetReport(ctx context.Context, id string) (*model.StoredReport, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+sqliteColumns+` FROM stored_reports WHERE id = ?`, id)
	r, err := scanReport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, eris.Wrapf(ErrNotFound, "id %s", id)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get report %s", id)
	}
	return r, nil
}

func (s *SQLiteStore) LatestReport(ctx context.Context, userID string) (*model.StoredReport, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+sqliteColumns+` FROM stored_reports WHERE user_id = ?
		 ORDER BY generated_at DESC, id DESC LIMIT 1`, userID)
	r, err := scanReport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: latest report for %s", userID)
	}
	return r, nil
}

func (s *SQLiteStore) ListReports(ctx context.Context, filter ReportFilter) ([]model.StoredReport, error) {
	query := `SELECT ` + sqliteColumns + ` FROM stored_reports WHERE 1=1`
	var args []any

	if filter.UserID != "" {
		query += ` AND user_id = ?`
		args = append(args, filter.UserID)
	}
	if filter.RiskLabel != "" {
		query += ` AND risk_label = ?`
		args = append(args, filter.RiskLabel)
	}
	if !filter.Since.IsZero() {
		query += ` AND generated_at >= ?`
		args = append(args, filter.Since.UTC().UnixNano())
	}
	query += ` ORDER BY generated_at DESC, id DESC LIMIT ?`
	args = append(args, filter.limit())

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list reports")
	}
	defer rows.Close()

	var out []model.StoredReport
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan report")
		}
		out = append(out, *r)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: list reports iterate")
}

func (s *SQLiteStore) DeleteReportsBefore(ctx context.Context, cutoff time.Time) (int, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM stored_reports WHERE generated_at < ?`, cutoff.UTC().UnixNano())
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: delete reports")
	}
	n, err := res.RowsAffected()
	return int(n), eris.Wrap(err, "sqlite: rows affected")
}

// helpers

type scannable interface {
	Scan(dest ...any) error
}

func scanReport(row scannable) (*model.StoredReport, error) {
	var r model.StoredReport
	var responses, report string
	var generatedAt int64

	if err := row.Scan(&r.ID, &r.UserID, &responses, &report, &r.Narrative, &r.Fingerprint, &generatedAt); err != nil {
		return nil, err
	}
	if err := unmarshalReport(&r, []byte(responses), []byte(report)); err != nil {
		return nil, err
	}
	r.GeneratedAt = time.Unix(0, generatedAt).UTC()
	return &r, nil
}

func marshalReport(r *model.StoredReport) (responses, report []byte, err error) {
	responses, err = json.Marshal(r.Responses)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "store: marshal responses for %s", r.ID)
	}
	report, err = json.Marshal(r.Report)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "store: marshal report %s", r.ID)
	}
	return responses, report, nil
}

func unmarshalReport(r *model.StoredReport, responses, report []byte) error {
	if err := json.Unmarshal(responses, &r.Responses); err != nil {
		return eris.Wrapf(err, "store: unmarshal responses for %s", r.ID)
	}
	if err := json.Unmarshal(report, &r.Report); err != nil {
		return eris.Wrapf(err, "store: unmarshal report %s", r.ID)
	}
	return nil
}
