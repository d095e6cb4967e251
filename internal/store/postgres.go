package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "price-tracker-bot/pkg/types"
)

// PostgresStore implements Store using pgxpool (connection-pooled PostgreSQL).
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore with connection pooling.
// Pool sizing is taken from the connection string (pool_max_conns).
func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close gracefully shuts down the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Ping verifies the database connection is alive.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Migrate applies pending SQL schema migrations.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return RunMigrations(ctx, s.pool)
}

// CreateItem inserts a new tracking item. The stored last price starts out
// equal to the baseline price; negative thresholds are clamped to zero.
func (s *PostgresStore) CreateItem(ctx context.Context, item *domain.TrackingItem) error {
	if item.ThresholdPct < 0 {
		item.ThresholdPct = 0
	}

	args := pgx.NamedArgs{
		"chat_id":        item.ChatID,
		"url":            item.URL,
		"title":          item.Title,
		"image_url":      item.ImageURL,
		"baseline_price": item.BaselinePrice,
		"threshold_pct":  item.ThresholdPct,
	}

	err := s.pool.QueryRow(ctx, queryCreateItem, args).Scan(
		&item.ID, &item.LastPrice, &item.IsActive, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating tracking item: %w", err)
	}
	return nil
}

// GetItem retrieves a single item scoped to its owning chat.
func (s *PostgresStore) GetItem(ctx context.Context, chatID, itemID int64) (*domain.TrackingItem, error) {
	item := &domain.TrackingItem{}
	err := scanItem(s.pool.QueryRow(ctx, queryGetItem, chatID, itemID), item)
	if err != nil {
		return nil, err
	}
	return item, nil
}

// ListByChat returns all items owned by a chat, newest first.
func (s *PostgresStore) ListByChat(ctx context.Context, chatID int64) ([]domain.TrackingItem, error) {
	rows, err := s.pool.Query(ctx, queryListByChat, chatID)
	if err != nil {
		return nil, fmt.Errorf("listing items for chat %d: %w", chatID, err)
	}
	defer rows.Close()
	return collectItems(rows)
}

// ListActive returns every active item across all chats in id order.
// This is the snapshot one sweep iterates over.
func (s *PostgresStore) ListActive(ctx context.Context) ([]domain.TrackingItem, error) {
	rows, err := s.pool.Query(ctx, queryListActive)
	if err != nil {
		return nil, fmt.Errorf("listing active items: %w", err)
	}
	defer rows.Close()
	return collectItems(rows)
}

// DeleteItem removes an item. Returns false when no row matched.
func (s *PostgresStore) DeleteItem(ctx context.Context, chatID, itemID int64) (bool, error) {
	tag, err := s.pool.Exec(ctx, queryDeleteItem, chatID, itemID)
	if err != nil {
		return false, fmt.Errorf("deleting item %d: %w", itemID, err)
	}
	return tag.RowsAffected() > 0, nil
}

// SetActive pauses or resumes an item.
func (s *PostgresStore) SetActive(ctx context.Context, chatID, itemID int64, active bool) (bool, error) {
	tag, err := s.pool.Exec(ctx, querySetActive, chatID, itemID, active)
	if err != nil {
		return false, fmt.Errorf("setting item %d active=%t: %w", itemID, active, err)
	}
	return tag.RowsAffected() > 0, nil
}

// SetThreshold stores the notification threshold, clamping negative input to zero.
func (s *PostgresStore) SetThreshold(ctx context.Context, chatID, itemID int64, pct float64) (bool, error) {
	if pct < 0 {
		pct = 0
	}
	tag, err := s.pool.Exec(ctx, querySetThreshold, chatID, itemID, pct)
	if err != nil {
		return false, fmt.Errorf("setting item %d threshold: %w", itemID, err)
	}
	return tag.RowsAffected() > 0, nil
}

// SetCachedImage stores the chat transport's file handle for the item image.
func (s *PostgresStore) SetCachedImage(ctx context.Context, chatID, itemID int64, fileID string) (bool, error) {
	tag, err := s.pool.Exec(ctx, querySetCachedImage, chatID, itemID, fileID)
	if err != nil {
		return false, fmt.Errorf("caching image for item %d: %w", itemID, err)
	}
	return tag.RowsAffected() > 0, nil
}

// UpdateLastPrice replaces the last observed price, keyed by id alone.
// Returns false when the item no longer exists.
func (s *PostgresStore) UpdateLastPrice(ctx context.Context, itemID int64, price float64) (bool, error) {
	tag, err := s.pool.Exec(ctx, queryUpdateLastPrice, itemID, price)
	if err != nil {
		return false, fmt.Errorf("updating price for item %d: %w", itemID, err)
	}
	return tag.RowsAffected() > 0, nil
}

// Begin opens the unit of work for one sweep.
func (s *PostgresStore) Begin(ctx context.Context) (UnitOfWork, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning sweep transaction: %w", err)
	}
	return &pgxUnitOfWork{tx: tx}, nil
}

// InsertSweepRun records the start of a sweep.
func (s *PostgresStore) InsertSweepRun(ctx context.Context, id string) error {
	if _, err := s.pool.Exec(ctx, queryInsertSweepRun, id); err != nil {
		return fmt.Errorf("inserting sweep run: %w", err)
	}
	return nil
}

// CompleteSweepRun finalizes a sweep run record.
func (s *PostgresStore) CompleteSweepRun(
	ctx context.Context,
	id string,
	status domain.SweepStatus,
	errText string,
	checked, updated, notified int,
) error {
	args := pgx.NamedArgs{
		"id":                 id,
		"status":             string(status),
		"error":              errText,
		"items_checked":      checked,
		"items_updated":      updated,
		"notifications_sent": notified,
	}
	if _, err := s.pool.Exec(ctx, queryCompleteSweepRun, args); err != nil {
		return fmt.Errorf("completing sweep run %s: %w", id, err)
	}
	return nil
}

// ListSweepRuns returns the most recent sweep runs, newest first.
func (s *PostgresStore) ListSweepRuns(ctx context.Context, limit int) ([]domain.SweepRun, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.pool.Query(ctx, queryListSweepRuns, limit)
	if err != nil {
		return nil, fmt.Errorf("listing sweep runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.SweepRun
	for rows.Next() {
		var r domain.SweepRun
		if err := rows.Scan(
			&r.ID, &r.Status, &r.ItemsChecked, &r.ItemsUpdated,
			&r.NotificationsSent, &r.Error, &r.StartedAt, &r.FinishedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning sweep run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// pgxUnitOfWork wraps a pgx transaction. Each price update runs inside a
// savepoint so a single failed write rolls back only itself.
type pgxUnitOfWork struct {
	tx pgx.Tx
}

func (u *pgxUnitOfWork) UpdateLastPrice(ctx context.Context, itemID int64, price float64) (bool, error) {
	sp, err := u.tx.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("opening savepoint: %w", err)
	}

	tag, err := sp.Exec(ctx, queryUpdateLastPrice, itemID, price)
	if err != nil {
		_ = sp.Rollback(ctx)
		return false, fmt.Errorf("updating price for item %d: %w", itemID, err)
	}

	if err := sp.Commit(ctx); err != nil {
		return false, fmt.Errorf("releasing savepoint: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (u *pgxUnitOfWork) Commit(ctx context.Context) error {
	if err := u.tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing sweep transaction: %w", err)
	}
	return nil
}

func (u *pgxUnitOfWork) Rollback(ctx context.Context) error {
	err := u.tx.Rollback(ctx)
	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("rolling back sweep transaction: %w", err)
	}
	return nil
}

func scanItem(row pgx.Row, item *domain.TrackingItem) error {
	err := row.Scan(
		&item.ID, &item.ChatID, &item.URL,
		&item.Title, &item.ImageURL, &item.CachedImageID,
		&item.BaselinePrice, &item.LastPrice, &item.ThresholdPct, &item.IsActive,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("scanning tracking item: %w", err)
	}
	return nil
}

func collectItems(rows pgx.Rows) ([]domain.TrackingItem, error) {
	var items []domain.TrackingItem
	for rows.Next() {
		var item domain.TrackingItem
		if err := scanItem(rows, &item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
