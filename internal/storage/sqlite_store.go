package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/saurabhkm/pland/internal/model"
)

const sqliteTimeLayout = time.RFC3339Nano

//go:embed migrations/*.sql
var migrationFiles embed.FS

// SQLiteStore persists the singleton schedule document in a local SQLite
// database. Every save replaces the whole document in one transaction, so a
// failed write never leaves a half-updated activity list behind.
type SQLiteStore struct {
	db        *sql.DB
	closeOnce sync.Once
	closeErr  error
}

func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if err := migrate(db); err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	store, err := NewSQLiteStore(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close releases the underlying database. Closing an already-closed store is
// a no-op returning the first result.
func (s *SQLiteStore) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.db.Close()
	})
	return s.closeErr
}

func (s *SQLiteStore) Save(ctx context.Context, in model.Schedule) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO schedules (id, last_modified) VALUES (?, ?)
		ON CONFLICT (id) DO UPDATE SET last_modified = excluded.last_modified`,
		model.ScheduleKey, mustTime(in.LastModified),
	); err != nil {
		return fmt.Errorf("upsert schedule: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM activities WHERE schedule_id = ?`, model.ScheduleKey); err != nil {
		return fmt.Errorf("clear activities: %w", err)
	}
	for position, a := range in.Activities {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO activities (id, schedule_id, position, title, start_time, duration_minutes, notify_at_start, notify_before, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			a.ID, model.ScheduleKey, position, a.Title, a.StartTime,
			nullInt(a.DurationMinutes), boolInt(a.NotifyAtStart), nullInt(a.NotifyBefore),
			mustTime(a.CreatedAt), mustTime(a.UpdatedAt),
		); err != nil {
			return fmt.Errorf("insert activity %s: %w", a.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context) (model.Schedule, error) {
	var lastModified string
	err := s.db.QueryRowContext(ctx,
		`SELECT last_modified FROM schedules WHERE id = ?`, model.ScheduleKey,
	).Scan(&lastModified)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Schedule{}, ErrNotFound
	}
	if err != nil {
		return model.Schedule{}, err
	}

	out := model.Schedule{Activities: make([]model.Activity, 0)}
	out.LastModified, err = parseRequiredTime(lastModified)
	if err != nil {
		return model.Schedule{}, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, start_time, duration_minutes, notify_at_start, notify_before, created_at, updated_at
		FROM activities WHERE schedule_id = ? ORDER BY position ASC`, model.ScheduleKey)
	if err != nil {
		return model.Schedule{}, err
	}
	defer rows.Close()

	for rows.Next() {
		activity, scanErr := scanActivity(rows)
		if scanErr != nil {
			return model.Schedule{}, scanErr
		}
		out.Activities = append(out.Activities, activity)
	}
	return out, rows.Err()
}

func migrate(db *sql.DB) error {
	entries, err := fs.Glob(migrationFiles, "migrations/*.up.sql")
	if err != nil {
		return fmt.Errorf("glob migrations: %w", err)
	}
	sort.Strings(entries)
	for _, name := range entries {
		sqlBytes, readErr := migrationFiles.ReadFile(name)
		if readErr != nil {
			return fmt.Errorf("read migration %s: %w", name, readErr)
		}
		if _, execErr := db.Exec(string(sqlBytes)); execErr != nil {
			return fmt.Errorf("apply migration %s: %w", name, execErr)
		}
	}
	return nil
}

func scanActivity(rows *sql.Rows) (model.Activity, error) {
	var out model.Activity
	var duration sql.NullInt64
	var notifyAtStart int
	var notifyBefore sql.NullInt64
	var created, updated string
	if err := rows.Scan(&out.ID, &out.Title, &out.StartTime, &duration, &notifyAtStart, &notifyBefore, &created, &updated); err != nil {
		return model.Activity{}, err
	}
	out.DurationMinutes = intPtr(duration)
	out.NotifyAtStart = notifyAtStart == 1
	out.NotifyBefore = intPtr(notifyBefore)

	var err error
	if out.CreatedAt, err = parseRequiredTime(created); err != nil {
		return model.Activity{}, err
	}
	if out.UpdatedAt, err = parseRequiredTime(updated); err != nil {
		return model.Activity{}, err
	}
	return out, nil
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, v)
}

func nullInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	out := int(v.Int64)
	return &out
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
