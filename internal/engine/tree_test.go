package engine

import (
	"testing"

	"focusgrid/internal/model"
)

func TestCompletionPercent(t *testing.T) {
	if got := CompletionPercent(0, 0); got != 0 {
		t.Fatalf("0/0 = %d, want 0", got)
	}
	if got := CompletionPercent(5, 0); got != 0 {
		t.Fatalf("5/0 = %d, want 0", got)
	}
	if got := CompletionPercent(3, 10); got != 30 {
		t.Fatalf("3/10 = %d, want 30", got)
	}
	if got := CompletionPercent(2, 3); got != 67 {
		t.Fatalf("2/3 = %d, want 67 (rounded)", got)
	}
	if got := CompletionPercent(12, 10); got != 100 {
		t.Fatalf("12/10 = %d, want capped 100", got)
	}
}

func TestStageForThresholds(t *testing.T) {
	cases := map[int]model.TreeStage{
		0:   model.StageSeed,
		20:  model.StageSeed,
		21:  model.StageSprout,
		40:  model.StageSprout,
		41:  model.StageYoung,
		60:  model.StageYoung,
		61:  model.StageStrong,
		80:  model.StageStrong,
		81:  model.StageFull,
		100: model.StageFull,
	}
	for pct, want := range cases {
		if got := StageFor(pct); got != want {
			t.Fatalf("StageFor(%d) = %q, want %q", pct, got, want)
		}
	}
}

func archivedDay(date string, pct int) model.DayRecord {
	d := model.NewEmptyDay(date, 0)
	d.CompletionPercentage = pct
	return d
}

func TestComputeStreakWalksBackFromMostRecent(t *testing.T) {
	records := []model.DayRecord{
		archivedDay("2026-03-10", 40),
		archivedDay("2026-03-11", 90),
		archivedDay("2026-03-12", 65),
		archivedDay("2026-03-13", 70),
	}
	if got := ComputeStreak(records, "2026-03-14"); got != 3 {
		t.Fatalf("streak = %d, want 3", got)
	}
}

func TestComputeStreakBrokenByFirstDayUnderThreshold(t *testing.T) {
	// Oldest to newest: 70, 65, 40, 90. Yesterday's 90 counts, then the
	// 40 breaks the run regardless of the older qualifying days.
	records := []model.DayRecord{
		archivedDay("2026-03-10", 70),
		archivedDay("2026-03-11", 65),
		archivedDay("2026-03-12", 40),
		archivedDay("2026-03-13", 90),
	}
	if got := ComputeStreak(records, "2026-03-14"); got != 1 {
		t.Fatalf("streak = %d, want 1", got)
	}
}

func TestComputeStreakIgnoresTodayAndFutureRecords(t *testing.T) {
	records := []model.DayRecord{
		archivedDay("2026-03-13", 80),
		archivedDay("2026-03-14", 100), // today
		archivedDay("2026-03-15", 100), // tomorrow
	}
	if got := ComputeStreak(records, "2026-03-14"); got != 1 {
		t.Fatalf("streak = %d, want 1", got)
	}
}

func TestComputeStreakEmptyArchive(t *testing.T) {
	if got := ComputeStreak(nil, "2026-03-14"); got != 0 {
		t.Fatalf("streak = %d, want 0", got)
	}
}

func TestComputeStreakExactThresholdCounts(t *testing.T) {
	records := []model.DayRecord{archivedDay("2026-03-13", 60)}
	if got := ComputeStreak(records, "2026-03-14"); got != 1 {
		t.Fatalf("streak = %d, want 1 at exactly 60%%", got)
	}
}
