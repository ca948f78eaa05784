package engine

import (
	"math"
	"sort"

	"focusgrid/internal/model"
)

// StreakThreshold is the completion percentage a day must reach to extend
// the streak.
const StreakThreshold = 60

// CompletionPercent computes completed/total as a rounded percentage,
// capped at 100. A day with no planned pomodoros is 0, never NaN.
func CompletionPercent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	pct := int(math.Round(float64(completed) / float64(total) * 100))
	if pct > 100 {
		pct = 100
	}
	return pct
}

// StageFor maps a completion percentage to a growth stage.
// 0-20 seed, 21-40 sprout, 41-60 young, 61-80 strong, 81-100 full.
func StageFor(percent int) model.TreeStage {
	switch {
	case percent <= 20:
		return model.StageSeed
	case percent <= 40:
		return model.StageSprout
	case percent <= 60:
		return model.StageYoung
	case percent <= 80:
		return model.StageStrong
	default:
		return model.StageFull
	}
}

// ComputeStreak counts consecutive archived days before today that met the
// streak threshold, walking backwards from the most recent and stopping at
// the first day under it. Today itself is excluded.
func ComputeStreak(records []model.DayRecord, today string) int {
	past := make([]model.DayRecord, 0, len(records))
	for _, r := range records {
		if r.Date < today {
			past = append(past, r)
		}
	}
	sort.Slice(past, func(i, j int) bool { return past[i].Date > past[j].Date })

	streak := 0
	for _, r := range past {
		if r.CompletionPercentage < StreakThreshold {
			break
		}
		streak++
	}
	return streak
}
