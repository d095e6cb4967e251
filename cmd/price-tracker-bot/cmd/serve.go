package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"price-tracker-bot/internal/bot"
	"price-tracker-bot/internal/config"
	"price-tracker-bot/internal/engine"
	"price-tracker-bot/internal/fetch"
	"price-tracker-bot/internal/notify"
	"price-tracker-bot/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the bot, the sweep scheduler, and the admin server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := newLogger(cfg.Logging)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, err := store.NewPostgresStore(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer st.Close()

	api, err := bot.Connect(cfg.Telegram.Token, cfg.Telegram.Debug)
	if err != nil {
		return fmt.Errorf("connecting to telegram: %w", err)
	}

	fetcher := fetch.NewTrendyolFetcher(fetch.WithLogger(logger))
	notifier := notify.NewTelegramNotifier(api)

	eng := engine.NewEngine(st, fetcher, notifier,
		engine.WithLogger(logger),
		engine.WithPacer(engine.NewIntervalPacer(cfg.Schedule.PaceInterval)),
	)

	sched, err := engine.NewScheduler(eng, cfg.Schedule.SweepInterval, logger)
	if err != nil {
		return fmt.Errorf("creating scheduler: %w", err)
	}

	tgBot := bot.New(api, st, fetcher, bot.WithLogger(logger))

	botDone := make(chan error, 1)
	go func() {
		botDone <- tgBot.Run(ctx)
	}()

	sched.Start()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/readyz", func(c echo.Context) error {
		if err := st.Ping(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{
				"status": "unavailable",
				"error":  err.Error(),
			})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%d", cfg.Admin.Host, cfg.Admin.Port)
	logger.Info("starting admin server", "addr", addr)

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("admin server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	cancel()

	// Waits for an in-flight sweep to finish.
	<-sched.Stop().Done()

	select {
	case <-botDone:
	case <-time.After(5 * time.Second):
		logger.Warn("bot did not stop in time")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down admin server: %w", err)
	}

	logger.Info("stopped")
	return nil
}
