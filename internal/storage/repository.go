package storage

import (
	"context"
	"errors"

	"focusgrid/internal/model"
)

var ErrNotFound = errors.New("storage: not found")

// Repository is the durable key-value boundary: day records keyed by date,
// a singleton settings record and a singleton active-session entry.
// Writes carry the full record and overwrite; last write wins.
type Repository interface {
	PutDayRecord(ctx context.Context, record model.DayRecord) error
	GetDayRecord(ctx context.Context, date string) (model.DayRecord, error)
	ListDayRecords(ctx context.Context, filter DayRecordFilter) ([]model.DayRecord, error)
	DeleteDayRecord(ctx context.Context, date string) error

	PutSettings(ctx context.Context, settings model.Settings) error
	GetSettings(ctx context.Context) (model.Settings, error)

	PutActiveSession(ctx context.Context, session ActiveSession) error
	GetActiveSession(ctx context.Context) (ActiveSession, error)
	DeleteActiveSession(ctx context.Context) error
}
