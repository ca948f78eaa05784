package storage

import "time"

// ActiveSession is the singleton Session Ledger entry: a manually started
// timer that must survive process restarts. Only the absolute start
// instant is stored; remaining time is always re-derived from it, never
// from a persisted countdown.
type ActiveSession struct {
	BlockID   string
	StartedAt time.Time
	Duration  time.Duration
	Phase     string
}

// DayRecordFilter narrows ListDayRecords. Zero value lists everything in
// date order.
type DayRecordFilter struct {
	// Exclude drops specific date keys (used to strip today/tomorrow when
	// reading the archive).
	Exclude []string
	// NewestFirst reverses the default oldest-first ordering.
	NewestFirst bool
}
