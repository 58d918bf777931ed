// Package sqlite provides a SQLite-backed gap report store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/louisbranch/nums/internal/gaps"
	"github.com/louisbranch/nums/internal/gaps/storage"
	"github.com/louisbranch/nums/internal/gaps/storage/sqlite/migrations"
	sqlitemigrate "github.com/louisbranch/nums/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/nums/internal/solver"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// Store persists gap runs in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite gap store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlitemigrate.ApplyMigrations(context.Background(), sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// SaveRun stores run and its records in one transaction and returns the run
// id. A zero ID lets SQLite assign one.
func (s *Store) SaveRun(ctx context.Context, run storage.Run) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}
	if run.Dice < solver.MinDice || run.Dice > solver.MaxDice {
		return 0, solver.ErrInvalidDiceCount
	}
	if run.Min >= run.Max {
		return 0, fmt.Errorf("%w: [%d,%d)", solver.ErrInvalidRange, run.Min, run.Max)
	}
	createdAt := run.CreatedAt.UTC()
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin save run: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var id sql.NullInt64
	if run.ID != 0 {
		id = sql.NullInt64{Int64: run.ID, Valid: true}
	}
	res, err := tx.ExecContext(
		ctx,
		`INSERT INTO gap_runs (id, dice, scan_min, scan_max, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		id,
		run.Dice,
		int64(run.Min),
		int64(run.Max),
		toMillis(createdAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, storage.ErrAlreadyExists
		}
		return 0, fmt.Errorf("save run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("save run: %w", err)
	}

	stmt, err := tx.PrepareContext(
		ctx,
		`INSERT INTO gap_records (
		   run_id, position, faces, margin, midpoint, closest, reachable, expression
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return 0, fmt.Errorf("prepare save records: %w", err)
	}
	defer stmt.Close()

	for i, rec := range run.Records {
		if _, err := stmt.ExecContext(
			ctx,
			runID,
			i,
			gaps.FormatList(rec.Faces),
			int64(rec.Distance),
			int64(rec.Midpoint),
			int64(rec.Closest),
			gaps.FormatList(rec.Reachable),
			rec.Expression,
		); err != nil {
			if isUniqueViolation(err) {
				return 0, fmt.Errorf("save record %s: %w", gaps.FormatList(rec.Faces), storage.ErrAlreadyExists)
			}
			return 0, fmt.Errorf("save record %s: %w", gaps.FormatList(rec.Faces), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit save run: %w", err)
	}
	return runID, nil
}

// GetRun returns one run with its records in report order.
func (s *Store) GetRun(ctx context.Context, id int64) (storage.Run, error) {
	if err := ctx.Err(); err != nil {
		return storage.Run{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Run{}, fmt.Errorf("storage is not configured")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, dice, scan_min, scan_max, created_at
		   FROM gap_runs
		  WHERE id = ?`,
		id,
	)
	var (
		run       storage.Run
		min, max  int64
		createdAt int64
	)
	if err := row.Scan(&run.ID, &run.Dice, &min, &max, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Run{}, storage.ErrNotFound
		}
		return storage.Run{}, fmt.Errorf("get run: %w", err)
	}
	run.Min = solver.Value(min)
	run.Max = solver.Value(max)
	run.CreatedAt = fromMillis(createdAt)

	records, err := s.listRecords(ctx, run.ID)
	if err != nil {
		return storage.Run{}, err
	}
	run.Records = records
	return run, nil
}

// LatestRun returns the most recently created run for dice dice.
func (s *Store) LatestRun(ctx context.Context, dice int) (storage.Run, error) {
	if err := ctx.Err(); err != nil {
		return storage.Run{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Run{}, fmt.Errorf("storage is not configured")
	}

	var id int64
	err := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id
		   FROM gap_runs
		  WHERE dice = ?
		  ORDER BY created_at DESC, id DESC
		  LIMIT 1`,
		dice,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Run{}, storage.ErrNotFound
		}
		return storage.Run{}, fmt.Errorf("latest run: %w", err)
	}
	return s.GetRun(ctx, id)
}

func (s *Store) listRecords(ctx context.Context, runID int64) ([]gaps.Record, error) {
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT faces, margin, midpoint, closest, reachable, expression
		   FROM gap_records
		  WHERE run_id = ?
		  ORDER BY position ASC`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var records []gaps.Record
	for rows.Next() {
		var (
			rec                       gaps.Record
			faces, reachable          string
			margin, midpoint, closest int64
		)
		if err := rows.Scan(&faces, &margin, &midpoint, &closest, &reachable, &rec.Expression); err != nil {
			return nil, fmt.Errorf("list records: %w", err)
		}
		if rec.Faces, err = parseList[solver.Face](faces, 8); err != nil {
			return nil, fmt.Errorf("decode faces %q: %w", faces, err)
		}
		if rec.Reachable, err = parseList[solver.Value](reachable, 32); err != nil {
			return nil, fmt.Errorf("decode reachable %q: %w", reachable, err)
		}
		rec.Distance = solver.Value(margin)
		rec.Midpoint = solver.Value(midpoint)
		rec.Closest = solver.Value(closest)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return records, nil
}

// parseList reverses gaps.FormatList.
func parseList[T ~uint8 | ~uint32](s string, bitSize int) ([]T, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return nil, fmt.Errorf("missing brackets")
	}
	body := strings.TrimSpace(s[1 : len(s)-1])
	if body == "" {
		return nil, nil
	}
	parts := strings.Split(body, ",")
	out := make([]T, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(part), 10, bitSize)
		if err != nil {
			return nil, err
		}
		out = append(out, T(v))
	}
	return out, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

var _ storage.RunStore = (*Store)(nil)
