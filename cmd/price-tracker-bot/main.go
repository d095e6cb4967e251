// Package main is the entry point for price-tracker-bot.
package main

import (
	"os"

	"github.com/joho/godotenv"

	"price-tracker-bot/cmd/price-tracker-bot/cmd"
)

func main() {
	// A missing .env is fine, real deployments use the environment directly.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
