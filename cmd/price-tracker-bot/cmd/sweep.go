package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"price-tracker-bot/internal/bot"
	"price-tracker-bot/internal/config"
	"price-tracker-bot/internal/engine"
	"price-tracker-bot/internal/fetch"
	"price-tracker-bot/internal/notify"
	"price-tracker-bot/internal/store"
)

var sweepNotify bool

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run a single price sweep and exit",
	Long:  "Checks every active tracking item once. Notifications are logged instead of sent unless --notify is given.",
	RunE:  runSweep,
}

func init() {
	sweepCmd.Flags().BoolVar(&sweepNotify, "notify", false, "send real Telegram notifications")
	rootCmd.AddCommand(sweepCmd)
}

func runSweep(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := newLogger(cfg.Logging)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	st, err := store.NewPostgresStore(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer st.Close()

	var notifier notify.Notifier = notify.NewNoOpNotifier(logger)
	if sweepNotify {
		api, err := bot.Connect(cfg.Telegram.Token, cfg.Telegram.Debug)
		if err != nil {
			return fmt.Errorf("connecting to telegram: %w", err)
		}
		notifier = notify.NewTelegramNotifier(api)
	}

	eng := engine.NewEngine(st, fetch.NewTrendyolFetcher(fetch.WithLogger(logger)), notifier,
		engine.WithLogger(logger),
		engine.WithPacer(engine.NewIntervalPacer(cfg.Schedule.PaceInterval)),
	)

	if err := eng.RunSweep(ctx); err != nil {
		return fmt.Errorf("running sweep: %w", err)
	}
	return nil
}
