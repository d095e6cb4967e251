// Package domain defines the core business types for the price tracker bot.
package domain

import "time"

// SweepStatus represents the lifecycle state of a sweep run.
type SweepStatus string

// Sweep status constants.
const (
	SweepRunning   SweepStatus = "running"
	SweepSucceeded SweepStatus = "succeeded"
	SweepFailed    SweepStatus = "failed"
)

// TrackingItem is one tracked product URL owned by a chat.
type TrackingItem struct {
	ID     int64  `json:"id"      db:"id"`
	ChatID int64  `json:"chat_id" db:"chat_id"`
	URL    string `json:"url"     db:"url"`

	// Display metadata, refreshed out-of-band. Empty string means unset.
	Title         string `json:"title,omitempty"           db:"title"`
	ImageURL      string `json:"image_url,omitempty"       db:"image_url"`
	CachedImageID string `json:"cached_image_id,omitempty" db:"cached_image_id"`

	// BaselinePrice is the price observed when tracking began. The sweep
	// never touches it; LastPrice is replaced on every successful fetch.
	BaselinePrice float64 `json:"baseline_price" db:"baseline_price"`
	LastPrice     float64 `json:"last_price"     db:"last_price"`

	// ThresholdPct is the minimum drop (percent of LastPrice) required to
	// notify. Zero notifies on any decrease.
	ThresholdPct float64 `json:"threshold_pct" db:"threshold_pct"`

	IsActive bool `json:"is_active" db:"is_active"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ReferencePrice returns the price the next observation is compared against.
// LastPrice is initialized to BaselinePrice at creation, so the fallback only
// matters for rows written before that invariant existed.
func (t *TrackingItem) ReferencePrice() float64 {
	if t.LastPrice > 0 {
		return t.LastPrice
	}
	return t.BaselinePrice
}

// SweepRun records one execution of the price monitoring sweep.
type SweepRun struct {
	ID                string      `json:"id"                     db:"id"`
	Status            SweepStatus `json:"status"                 db:"status"`
	ItemsChecked      int         `json:"items_checked"          db:"items_checked"`
	ItemsUpdated      int         `json:"items_updated"          db:"items_updated"`
	NotificationsSent int         `json:"notifications_sent"     db:"notifications_sent"`
	Error             string      `json:"error,omitempty"        db:"error"`
	StartedAt         time.Time   `json:"started_at"             db:"started_at"`
	FinishedAt        *time.Time  `json:"finished_at,omitempty"  db:"finished_at"`
}
