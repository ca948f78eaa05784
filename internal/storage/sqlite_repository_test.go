package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"focusgrid/internal/model"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "focusgrid-test.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := MigrateUp(db); err != nil {
		t.Fatalf("migrate up: %v", err)
	}

	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	return repo
}

func sampleDay(date string) model.DayRecord {
	day := model.NewEmptyDay(date, 2)
	day.Blocks = []model.Block{
		{
			ID:              "block-1",
			Category:        model.CategoryStudy,
			Title:           "Morning block",
			Mode:            model.ModeScheduled,
			DurationMinutes: 60,
			StartTime:       "09:00",
			EndTime:         "10:00",
			Pomodoro:        &model.Pomodoro{WorkMinutes: 25, BreakMinutes: 5, Cycles: 2},
			Subjects:        []string{"Physics"},
		},
	}
	day.TotalPomodoros = 2
	return day
}

func TestDayRecordPutGetRoundTrip(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	day := sampleDay("2026-03-14")
	day.CompletedPomodoros = 1
	day.CompletionPercentage = 50
	day.TreeStage = model.StageYoung
	day.Distractions = []string{"phone"}
	day.Reflection = model.Reflection{Worked: "mornings"}

	if err := repo.PutDayRecord(ctx, day); err != nil {
		t.Fatalf("put day record: %v", err)
	}

	got, err := repo.GetDayRecord(ctx, "2026-03-14")
	if err != nil {
		t.Fatalf("get day record: %v", err)
	}
	if got.CompletedPomodoros != 1 || got.TreeStage != model.StageYoung {
		t.Fatalf("unexpected record: %+v", got)
	}
	if len(got.Blocks) != 1 || got.Blocks[0].Pomodoro == nil || got.Blocks[0].Pomodoro.Cycles != 2 {
		t.Fatalf("blocks did not survive the round trip: %+v", got.Blocks)
	}
	if len(got.Distractions) != 1 || got.Reflection.Worked != "mornings" {
		t.Fatalf("nested fields did not survive: %+v", got)
	}
}

func TestDayRecordPutOverwritesWholeRecord(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	day := sampleDay("2026-03-14")
	if err := repo.PutDayRecord(ctx, day); err != nil {
		t.Fatalf("first put: %v", err)
	}
	day.CompletedPomodoros = 2
	day.CompletionPercentage = 100
	day.TreeStage = model.StageFull
	if err := repo.PutDayRecord(ctx, day); err != nil {
		t.Fatalf("second put: %v", err)
	}

	got, err := repo.GetDayRecord(ctx, "2026-03-14")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.CompletedPomodoros != 2 || got.TreeStage != model.StageFull {
		t.Fatalf("overwrite lost data: %+v", got)
	}

	all, err := repo.ListDayRecords(ctx, DayRecordFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("upsert created a duplicate row: %d records", len(all))
	}
}

func TestDayRecordGetMissing(t *testing.T) {
	repo := setupRepo(t)
	if _, err := repo.GetDayRecord(context.Background(), "2026-01-01"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestListDayRecordsFilterAndOrder(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	for _, date := range []string{"2026-03-12", "2026-03-14", "2026-03-13", "2026-03-15"} {
		if err := repo.PutDayRecord(ctx, sampleDay(date)); err != nil {
			t.Fatalf("put %s: %v", date, err)
		}
	}

	archive, err := repo.ListDayRecords(ctx, DayRecordFilter{
		Exclude:     []string{"2026-03-14", "2026-03-15"},
		NewestFirst: true,
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(archive) != 2 {
		t.Fatalf("expected 2 archive records, got %d", len(archive))
	}
	if archive[0].Date != "2026-03-13" || archive[1].Date != "2026-03-12" {
		t.Fatalf("unexpected order: %s, %s", archive[0].Date, archive[1].Date)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	if _, err := repo.GetSettings(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound before first put, got: %v", err)
	}

	settings := model.DefaultSettings()
	settings.HardMode = true
	settings.Volume = 0.4
	if err := repo.PutSettings(ctx, settings); err != nil {
		t.Fatalf("put settings: %v", err)
	}

	got, err := repo.GetSettings(ctx)
	if err != nil {
		t.Fatalf("get settings: %v", err)
	}
	if !got.HardMode || got.Volume != 0.4 {
		t.Fatalf("unexpected settings: %+v", got)
	}
	if got.AlarmFor(model.AlarmWorkEnd).Tone != model.ToneUrgent {
		t.Fatalf("alarm config lost: %+v", got.Alarms)
	}
}

func TestActiveSessionLifecycle(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	if _, err := repo.GetActiveSession(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}

	startedAt := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	session := ActiveSession{
		BlockID:   "block-1",
		StartedAt: startedAt,
		Duration:  10 * time.Minute,
		Phase:     "work",
	}
	if err := repo.PutActiveSession(ctx, session); err != nil {
		t.Fatalf("put session: %v", err)
	}

	// Overwrite replaces the singleton.
	session.BlockID = "block-2"
	if err := repo.PutActiveSession(ctx, session); err != nil {
		t.Fatalf("overwrite session: %v", err)
	}

	got, err := repo.GetActiveSession(ctx)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if got.BlockID != "block-2" || got.Duration != 10*time.Minute {
		t.Fatalf("unexpected session: %+v", got)
	}
	if !got.StartedAt.Equal(startedAt) {
		t.Fatalf("started_at drifted: %v", got.StartedAt)
	}

	if err := repo.DeleteActiveSession(ctx); err != nil {
		t.Fatalf("delete session: %v", err)
	}
	// Deleting again is a no-op, not an error.
	if err := repo.DeleteActiveSession(ctx); err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if _, err := repo.GetActiveSession(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got: %v", err)
	}
}
