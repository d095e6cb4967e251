// Package engine implements the price monitoring sweep: the periodic pass
// over all active tracking items that fetches live prices, evaluates drop
// thresholds, notifies owning chats, and persists the new state.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"price-tracker-bot/internal/fetch"
	"price-tracker-bot/internal/metrics"
	"price-tracker-bot/internal/notify"
	"price-tracker-bot/internal/store"
	domain "price-tracker-bot/pkg/types"
)

const defaultPaceInterval = 2 * time.Second

// Engine orchestrates one complete sweep over all active tracking items.
type Engine struct {
	store    store.Store
	fetcher  fetch.Fetcher
	notifier notify.Notifier
	log      *slog.Logger
	pacer    Pacer
}

// NewEngine creates a new Engine with injected dependencies.
func NewEngine(
	s store.Store,
	f fetch.Fetcher,
	n notify.Notifier,
	opts ...EngineOption,
) *Engine {
	eng := &Engine{
		store:    s,
		fetcher:  f,
		notifier: n,
		log:      slog.Default(),
		pacer:    NewIntervalPacer(defaultPaceInterval),
	}
	for _, opt := range opts {
		opt(eng)
	}
	return eng
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.log = l
	}
}

// WithPacer sets the pacing policy applied between item fetches.
func WithPacer(p Pacer) EngineOption {
	return func(e *Engine) {
		e.pacer = p
	}
}

// sweepStats accumulates per-sweep counters for the sweep run record.
type sweepStats struct {
	checked  int
	updated  int
	notified int
}

// RunSweep executes one complete sweep. Per-item failures are contained and
// logged; only sweep-wide failures (store unreachable, commit failure) are
// returned, and the caller is expected to log rather than propagate them.
func (eng *Engine) RunSweep(ctx context.Context) error {
	start := time.Now()
	defer func() {
		metrics.SweepDuration.Observe(time.Since(start).Seconds())
	}()

	// Sweep run records are best effort; the sweep proceeds without one.
	runID := uuid.NewString()
	if err := eng.store.InsertSweepRun(ctx, runID); err != nil {
		eng.log.Warn("recording sweep start failed", "error", err)
		runID = ""
	}

	stats, err := eng.sweep(ctx)

	status := domain.SweepSucceeded
	errText := ""
	if err != nil {
		status = domain.SweepFailed
		errText = err.Error()
		metrics.SweepErrorsTotal.Inc()
	}

	if runID != "" {
		if cErr := eng.store.CompleteSweepRun(
			ctx, runID, status, errText,
			stats.checked, stats.updated, stats.notified,
		); cErr != nil {
			eng.log.Warn("recording sweep completion failed", "error", cErr)
		}
	}

	eng.log.Info("sweep finished",
		"status", status,
		"items_checked", stats.checked,
		"items_updated", stats.updated,
		"notifications_sent", stats.notified,
		"duration", time.Since(start),
	)

	return err
}

func (eng *Engine) sweep(ctx context.Context) (sweepStats, error) {
	var stats sweepStats

	items, err := eng.store.ListActive(ctx)
	if err != nil {
		return stats, fmt.Errorf("listing active items: %w", err)
	}

	eng.log.Info("sweep starting", "active_items", len(items))

	uow, err := eng.store.Begin(ctx)
	if err != nil {
		return stats, fmt.Errorf("opening sweep unit of work: %w", err)
	}

	for i := range items {
		if ctx.Err() != nil {
			_ = uow.Rollback(ctx)
			return stats, ctx.Err()
		}

		eng.processItem(ctx, uow, &items[i], &stats)

		// Pace between fetches so the source site is never hit in bursts.
		if i < len(items)-1 {
			if err := eng.pacer.Pause(ctx); err != nil {
				_ = uow.Rollback(ctx)
				return stats, fmt.Errorf("pacing between items: %w", err)
			}
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return stats, fmt.Errorf("committing sweep: %w", err)
	}

	return stats, nil
}

// processItem handles one tracking item. Every failure mode here is
// contained: a broken page or a failed write must not abort the sweep.
func (eng *Engine) processItem(
	ctx context.Context,
	uow store.UnitOfWork,
	item *domain.TrackingItem,
	stats *sweepStats,
) {
	stats.checked++
	metrics.SweepItemsChecked.Inc()

	info, err := eng.fetcher.Fetch(ctx, item.URL)
	if err != nil || !info.HasPrice() {
		metrics.FetchNoPriceTotal.Inc()
		eng.log.Debug("no usable price, skipping item",
			"item_id", item.ID, "url", item.URL, "error", err)
		return
	}

	current := *info.Price
	old := item.ReferencePrice()

	// Strict decrease gates evaluation; an equal or higher price never
	// notifies but still replaces the reference for the next sweep.
	if current < old {
		dropPct := (old - current) / old * 100
		if dropPct >= item.ThresholdPct {
			eng.sendNotification(ctx, item, old, current, dropPct, info.Currency, stats)
		}
	}

	ok, err := uow.UpdateLastPrice(ctx, item.ID, current)
	if err != nil {
		eng.log.Error("persisting price failed", "item_id", item.ID, "error", err)
		return
	}
	if !ok {
		eng.log.Warn("item vanished mid-sweep", "item_id", item.ID)
		return
	}
	stats.updated++
}

func (eng *Engine) sendNotification(
	ctx context.Context,
	item *domain.TrackingItem,
	oldPrice, newPrice, dropPct float64,
	currency string,
	stats *sweepStats,
) {
	if currency == "" {
		currency = fetch.DefaultCurrency
	}

	drop := &notify.PriceDrop{
		ChatID:   item.ChatID,
		Title:    item.Title,
		URL:      item.URL,
		OldPrice: oldPrice,
		NewPrice: newPrice,
		DropPct:  dropPct,
		Currency: currency,
	}

	if err := eng.notifier.SendPriceDrop(ctx, drop); err != nil {
		metrics.NotificationFailuresTotal.Inc()
		eng.log.Error("notification delivery failed",
			"item_id", item.ID, "chat_id", item.ChatID, "error", err)
		return
	}

	stats.notified++
	metrics.NotificationsSentTotal.Inc()
	eng.log.Info("price drop notification sent",
		"item_id", item.ID, "chat_id", item.ChatID,
		"old_price", oldPrice, "new_price", newPrice, "drop_pct", dropPct)
}
