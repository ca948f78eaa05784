package storage

import (
	"database/sql"
	"path/filepath"
	"testing"

	"focusgrid/internal/model"
)

func TestMigrateRoundTripCompatibility(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate-roundtrip.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := MigrateUp(db); err != nil {
		t.Fatalf("first migrate up failed: %v", err)
	}

	if err := MigrateDown(db); err != nil {
		t.Fatalf("migrate down failed: %v", err)
	}

	if err := MigrateUp(db); err != nil {
		t.Fatalf("second migrate up failed: %v", err)
	}

	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}

	if err := repo.PutDayRecord(t.Context(), model.NewEmptyDay("2026-03-14", 0)); err != nil {
		t.Fatalf("insert after roundtrip failed: %v", err)
	}

	got, err := repo.GetDayRecord(t.Context(), "2026-03-14")
	if err != nil {
		t.Fatalf("get after roundtrip failed: %v", err)
	}
	if got.Date != "2026-03-14" || got.TreeStage != model.StageSeed {
		t.Fatalf("unexpected record after roundtrip: %+v", got)
	}
}
