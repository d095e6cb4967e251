// Package cmd implements the CLI commands for price-tracker-bot.
package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"price-tracker-bot/internal/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "price-tracker-bot",
	Short: "Track product prices and get Telegram alerts on drops",
	Long:  "A Telegram bot that tracks product prices on Trendyol, sweeps all active tracking items on a schedule, and notifies chats when a price drops past their threshold.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func newLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
