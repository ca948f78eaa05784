package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"focusgrid/internal/model"
)

const sqliteTimeLayout = time.RFC3339Nano

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) DB() *sql.DB {
	return r.db
}

func (r *SQLiteRepository) PutDayRecord(ctx context.Context, record model.DayRecord) error {
	blocks, err := json.Marshal(record.Blocks)
	if err != nil {
		return fmt.Errorf("encode blocks: %w", err)
	}
	distractions, err := json.Marshal(record.Distractions)
	if err != nil {
		return fmt.Errorf("encode distractions: %w", err)
	}
	reflection, err := json.Marshal(record.Reflection)
	if err != nil {
		return fmt.Errorf("encode reflection: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO day_records (
			date, blocks, total_pomodoros, completed_pomodoros, skipped_sessions,
			completion_percentage, tree_stage, total_study_minutes, total_break_minutes,
			distractions, streak, reflection
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			blocks = excluded.blocks,
			total_pomodoros = excluded.total_pomodoros,
			completed_pomodoros = excluded.completed_pomodoros,
			skipped_sessions = excluded.skipped_sessions,
			completion_percentage = excluded.completion_percentage,
			tree_stage = excluded.tree_stage,
			total_study_minutes = excluded.total_study_minutes,
			total_break_minutes = excluded.total_break_minutes,
			distractions = excluded.distractions,
			streak = excluded.streak,
			reflection = excluded.reflection`,
		record.Date, string(blocks), record.TotalPomodoros, record.CompletedPomodoros,
		record.SkippedSessions, record.CompletionPercentage, string(record.TreeStage),
		record.TotalStudyMinutes, record.TotalBreakMinutes, string(distractions),
		record.Streak, string(reflection),
	)
	return err
}

func (r *SQLiteRepository) GetDayRecord(ctx context.Context, date string) (model.DayRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT date, blocks, total_pomodoros, completed_pomodoros, skipped_sessions,
			completion_percentage, tree_stage, total_study_minutes, total_break_minutes,
			distractions, streak, reflection
		FROM day_records WHERE date = ?`, date)
	record, err := scanDayRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.DayRecord{}, ErrNotFound
		}
		return model.DayRecord{}, err
	}
	return record, nil
}

func (r *SQLiteRepository) ListDayRecords(ctx context.Context, filter DayRecordFilter) ([]model.DayRecord, error) {
	query := `
		SELECT date, blocks, total_pomodoros, completed_pomodoros, skipped_sessions,
			completion_percentage, tree_stage, total_study_minutes, total_break_minutes,
			distractions, streak, reflection
		FROM day_records`
	args := make([]any, 0, len(filter.Exclude))
	if len(filter.Exclude) > 0 {
		query += ` WHERE date NOT IN (`
		for i, date := range filter.Exclude {
			if i > 0 {
				query += `, `
			}
			query += `?`
			args = append(args, date)
		}
		query += `)`
	}
	if filter.NewestFirst {
		query += ` ORDER BY date DESC`
	} else {
		query += ` ORDER BY date ASC`
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.DayRecord, 0)
	for rows.Next() {
		record, scanErr := scanDayRecord(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, record)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) DeleteDayRecord(ctx context.Context, date string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM day_records WHERE date = ?`, date)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) PutSettings(ctx context.Context, settings model.Settings) error {
	payload, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO settings (id, payload) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET payload = excluded.payload`,
		string(payload),
	)
	return err
}

func (r *SQLiteRepository) GetSettings(ctx context.Context) (model.Settings, error) {
	row := r.db.QueryRowContext(ctx, `SELECT payload FROM settings WHERE id = 1`)
	var payload string
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Settings{}, ErrNotFound
		}
		return model.Settings{}, err
	}
	var settings model.Settings
	if err := json.Unmarshal([]byte(payload), &settings); err != nil {
		return model.Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	return settings, nil
}

func (r *SQLiteRepository) PutActiveSession(ctx context.Context, session ActiveSession) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO active_session (id, block_id, started_at, duration_ms, phase)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			block_id = excluded.block_id,
			started_at = excluded.started_at,
			duration_ms = excluded.duration_ms,
			phase = excluded.phase`,
		session.BlockID, session.StartedAt.UTC().Format(sqliteTimeLayout),
		session.Duration.Milliseconds(), session.Phase,
	)
	return err
}

func (r *SQLiteRepository) GetActiveSession(ctx context.Context) (ActiveSession, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT block_id, started_at, duration_ms, phase FROM active_session WHERE id = 1`)
	var (
		session    ActiveSession
		startedAt  string
		durationMs int64
	)
	if err := row.Scan(&session.BlockID, &startedAt, &durationMs, &session.Phase); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ActiveSession{}, ErrNotFound
		}
		return ActiveSession{}, err
	}
	parsed, err := time.Parse(sqliteTimeLayout, startedAt)
	if err != nil {
		return ActiveSession{}, fmt.Errorf("parse started_at: %w", err)
	}
	session.StartedAt = parsed
	session.Duration = time.Duration(durationMs) * time.Millisecond
	return session, nil
}

func (r *SQLiteRepository) DeleteActiveSession(ctx context.Context) error {
	// Idempotent: deleting an absent entry is not an error.
	_, err := r.db.ExecContext(ctx, `DELETE FROM active_session WHERE id = 1`)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDayRecord(row rowScanner) (model.DayRecord, error) {
	var (
		record       model.DayRecord
		blocks       string
		treeStage    string
		distractions string
		reflection   string
	)
	if err := row.Scan(
		&record.Date, &blocks, &record.TotalPomodoros, &record.CompletedPomodoros,
		&record.SkippedSessions, &record.CompletionPercentage, &treeStage,
		&record.TotalStudyMinutes, &record.TotalBreakMinutes,
		&distractions, &record.Streak, &reflection,
	); err != nil {
		return model.DayRecord{}, err
	}
	record.TreeStage = model.TreeStage(treeStage)
	if err := json.Unmarshal([]byte(blocks), &record.Blocks); err != nil {
		return model.DayRecord{}, fmt.Errorf("decode blocks: %w", err)
	}
	if err := json.Unmarshal([]byte(distractions), &record.Distractions); err != nil {
		return model.DayRecord{}, fmt.Errorf("decode distractions: %w", err)
	}
	if err := json.Unmarshal([]byte(reflection), &record.Reflection); err != nil {
		return model.DayRecord{}, fmt.Errorf("decode reflection: %w", err)
	}
	return record, nil
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
