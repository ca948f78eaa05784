package model

import "github.com/google/uuid"

// DefaultMarathonSchedule is the built-in study-marathon plan seeded into
// an unstarted day. Three deep-work blocks interleaved with recovery,
// prayer and a long evening break.
func DefaultMarathonSchedule() []Block {
	return []Block{
		{
			ID:              uuid.NewString(),
			Category:        CategoryStudy,
			Title:           "Block 1 — Physics (Deep Work)",
			Mode:            ModeScheduled,
			DurationMinutes: 360,
			StartTime:       "05:30",
			EndTime:         "11:30",
			Pomodoro:        &Pomodoro{WorkMinutes: 50, BreakMinutes: 10, Cycles: 6},
			Subjects:        []string{"Laws of Motion", "Work, Energy", "Mechanics of Fluids"},
			Notes:           []string{"Draw diagrams first. Units mandatory.", "Emphasis: Derivations"},
		},
		{
			ID:              uuid.NewString(),
			Category:        CategoryFitness,
			Title:           "Fitness — Active Recovery",
			Mode:            ModeScheduled,
			DurationMinutes: 45,
			StartTime:       "11:30",
			EndTime:         "12:15",
			Notes:           []string{"Tree Impact: Neutral", "Study Disabled: Yes"},
		},
		{
			ID:              uuid.NewString(),
			Category:        CategoryPrayer,
			Title:           "Jumu'ah — Spiritual Reset",
			Mode:            ModeScheduled,
			DurationMinutes: 90,
			StartTime:       "12:15",
			EndTime:         "13:45",
			Notes:           []string{"No Pomodoro tracking", "No productivity scoring impact"},
		},
		{
			ID:              uuid.NewString(),
			Category:        CategoryStudy,
			Title:           "Block 2 — CS & Chemistry",
			Mode:            ModeScheduled,
			DurationMinutes: 240,
			StartTime:       "13:45",
			EndTime:         "17:45",
			Pomodoro:        &Pomodoro{WorkMinutes: 50, BreakMinutes: 10, Cycles: 4},
			Subjects:        []string{"Computer Science: Control Statements", "Chemistry: Chemical Bonding"},
			Notes:           []string{"Minimum 5 problems per Pomodoro."},
		},
		{
			ID:              uuid.NewString(),
			Category:        CategoryBreak,
			Title:           "Iftar — Recharge Window",
			Mode:            ModeScheduled,
			DurationMinutes: 165,
			StartTime:       "17:45",
			EndTime:         "20:30",
			Notes:           []string{"No Pomodoros", "Tree Impact: Neutral"},
		},
		{
			ID:              uuid.NewString(),
			Category:        CategoryStudy,
			Title:           "Block 3 — Night Rider Session",
			Mode:            ModeScheduled,
			DurationMinutes: 240,
			StartTime:       "20:30",
			EndTime:         "00:30",
			Pomodoro:        &Pomodoro{WorkMinutes: 50, BreakMinutes: 10, Cycles: 4},
			Subjects:        []string{"Organic Chemistry: Hydrocarbons, Ozonolysis", "English: Summaries"},
			Notes:           []string{"Focus on retention, not speed."},
		},
	}
}
