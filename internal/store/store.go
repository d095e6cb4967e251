// Package store defines the datastore abstraction for the price tracker bot.
// All business logic depends on the Store interface, never on concrete
// implementations. This enables mock-based testing without a running database.
package store

import (
	"context"
	"errors"

	domain "price-tracker-bot/pkg/types"
)

// ErrNotFound is returned when a tracking item does not exist.
var ErrNotFound = errors.New("tracking item not found")

// Store defines all data access operations for the price tracker bot.
// User-scoped operations key on (chat_id, item_id); the sweep updates
// prices by item id alone.
type Store interface {
	// Tracking items
	CreateItem(ctx context.Context, item *domain.TrackingItem) error
	GetItem(ctx context.Context, chatID, itemID int64) (*domain.TrackingItem, error)
	ListByChat(ctx context.Context, chatID int64) ([]domain.TrackingItem, error)
	ListActive(ctx context.Context) ([]domain.TrackingItem, error)
	DeleteItem(ctx context.Context, chatID, itemID int64) (bool, error)
	SetActive(ctx context.Context, chatID, itemID int64, active bool) (bool, error)
	SetThreshold(ctx context.Context, chatID, itemID int64, pct float64) (bool, error)
	SetCachedImage(ctx context.Context, chatID, itemID int64, fileID string) (bool, error)
	UpdateLastPrice(ctx context.Context, itemID int64, price float64) (bool, error)

	// Sweep bookkeeping
	Begin(ctx context.Context) (UnitOfWork, error)
	InsertSweepRun(ctx context.Context, id string) error
	CompleteSweepRun(ctx context.Context, id string, status domain.SweepStatus, errText string, checked, updated, notified int) error
	ListSweepRuns(ctx context.Context, limit int) ([]domain.SweepRun, error)

	// Migrations
	Migrate(ctx context.Context) error

	// Health
	Ping(ctx context.Context) error
}

// UnitOfWork scopes the writes of one sweep to a single transaction.
// Each UpdateLastPrice is isolated so one failed update does not poison
// the rest of the sweep; Commit persists everything as one logical unit.
type UnitOfWork interface {
	UpdateLastPrice(ctx context.Context, itemID int64, price float64) (bool, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
