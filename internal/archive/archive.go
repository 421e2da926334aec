// Package archive keeps generated region summaries in a SQL database.
package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/i474232898/weather-history/internal/weather"
)

// Supported driver names.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// ErrNoRuns is returned by LatestRun when nothing was archived for a region.
var ErrNoRuns = errors.New("no archived runs")

func init() {
	// modernc.org/sqlite registers as "sqlite", which sqlx does not know.
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS report_runs (
		id         VARCHAR(36) PRIMARY KEY,
		region     TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS report_runs_region_idx ON report_runs (region, created_at)`,
	`CREATE TABLE IF NOT EXISTS report_summaries (
		run_id              VARCHAR(36) NOT NULL REFERENCES report_runs (id),
		location            TEXT NOT NULL,
		record_high         DOUBLE PRECISION,
		december_average    DOUBLE PRECISION,
		streak_length       INTEGER NOT NULL,
		snowfall_percentage DOUBLE PRECISION,
		PRIMARY KEY (run_id, location)
	)`,
}

// Run is one archived report.
type Run struct {
	ID        string            `db:"id" json:"id"`
	Region    string            `db:"region" json:"region"`
	CreatedAt time.Time         `db:"created_at" json:"createdAt"`
	Summaries []weather.Summary `db:"-" json:"summaries"`
}

type summaryRow struct {
	RunID              string          `db:"run_id"`
	Location           string          `db:"location"`
	RecordHigh         sql.NullFloat64 `db:"record_high"`
	DecemberAverage    sql.NullFloat64 `db:"december_average"`
	StreakLength       int             `db:"streak_length"`
	SnowfallPercentage sql.NullFloat64 `db:"snowfall_percentage"`
}

type Repository struct {
	db  *sqlx.DB
	now func() time.Time
}

// Open connects to the archive database.
func Open(ctx context.Context, driver, dsn string) (*Repository, error) {
	db, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect %s archive: %w", driver, err)
	}
	if driver == DriverSQLite {
		// One connection keeps ":memory:" databases alive and writes serialized.
		db.SetMaxOpenConns(1)
	}
	return NewRepository(db), nil
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db, now: time.Now}
}

func (r *Repository) Close() error {
	return r.db.Close()
}

// Migrate creates the archive tables if they do not exist.
func (r *Repository) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to migrate archive: %w", err)
		}
	}
	return nil
}

// SaveRun stores summaries as a new run of region in a single transaction.
func (r *Repository) SaveRun(ctx context.Context, region string, summaries []weather.Summary) (Run, error) {
	run := Run{
		ID:        uuid.NewString(),
		Region:    region,
		CreatedAt: r.now().UTC().Truncate(time.Microsecond),
		Summaries: summaries,
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	const insertRun = `INSERT INTO report_runs (id, region, created_at) VALUES (:id, :region, :created_at)`
	if _, err := tx.NamedExecContext(ctx, insertRun, run); err != nil {
		return Run{}, fmt.Errorf("failed to insert run: %w", err)
	}

	const insertSummary = `
		INSERT INTO report_summaries
			(run_id, location, record_high, december_average, streak_length, snowfall_percentage)
		VALUES
			(:run_id, :location, :record_high, :december_average, :streak_length, :snowfall_percentage)`
	for _, s := range summaries {
		if _, err := tx.NamedExecContext(ctx, insertSummary, toRow(run.ID, s)); err != nil {
			return Run{}, fmt.Errorf("failed to insert summary for %s: %w", s.Location, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("failed to commit run: %w", err)
	}
	return run, nil
}

// LatestRun returns the most recent run archived for region.
func (r *Repository) LatestRun(ctx context.Context, region string) (Run, error) {
	const selectRun = `
		SELECT id, region, created_at
		FROM report_runs
		WHERE region = ?
		ORDER BY created_at DESC, id DESC
		LIMIT 1`

	var run Run
	err := r.db.GetContext(ctx, &run, r.db.Rebind(selectRun), region)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%s: %w", region, ErrNoRuns)
	}
	if err != nil {
		return Run{}, fmt.Errorf("failed to query latest run: %w", err)
	}
	run.CreatedAt = run.CreatedAt.UTC()

	const selectSummaries = `
		SELECT run_id, location, record_high, december_average, streak_length, snowfall_percentage
		FROM report_summaries
		WHERE run_id = ?
		ORDER BY location`

	var rows []summaryRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(selectSummaries), run.ID); err != nil {
		return Run{}, fmt.Errorf("failed to query summaries: %w", err)
	}

	run.Summaries = make([]weather.Summary, 0, len(rows))
	for _, row := range rows {
		run.Summaries = append(run.Summaries, row.summary())
	}
	return run, nil
}

func toRow(runID string, s weather.Summary) summaryRow {
	return summaryRow{
		RunID:              runID,
		Location:           s.Location,
		RecordHigh:         nullFloat(s.RecordHigh),
		DecemberAverage:    nullFloat(s.DecemberAverage),
		StreakLength:       s.StreakLength,
		SnowfallPercentage: nullFloat(s.SnowfallPercentage),
	}
}

func (row summaryRow) summary() weather.Summary {
	return weather.Summary{
		Location:           row.Location,
		RecordHigh:         floatPtr(row.RecordHigh),
		DecemberAverage:    floatPtr(row.DecemberAverage),
		StreakLength:       row.StreakLength,
		SnowfallPercentage: floatPtr(row.SnowfallPercentage),
	}
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func floatPtr(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	return &n.Float64
}
