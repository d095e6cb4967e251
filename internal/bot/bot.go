// Package bot implements the Telegram command front-end: adding and managing
// tracking items, inline keyboards, and cached product images.
package bot

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"price-tracker-bot/internal/fetch"
	"price-tracker-bot/internal/store"
)

// Bot wires Telegram updates to store and fetcher operations.
type Bot struct {
	api     *tgbotapi.BotAPI
	store   store.Store
	fetcher fetch.Fetcher
	log     *slog.Logger
}

// Option configures the Bot.
type Option func(*Bot)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(b *Bot) {
		b.log = l
	}
}

// New creates a Bot on an authorized Telegram API client.
func New(api *tgbotapi.BotAPI, s store.Store, f fetch.Fetcher, opts ...Option) *Bot {
	b := &Bot{
		api:     api,
		store:   s,
		fetcher: f,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Connect authorizes a Telegram API client for the given token.
func Connect(token string, debug bool) (*tgbotapi.BotAPI, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("authorizing telegram bot: %w", err)
	}
	api.Debug = debug
	return api, nil
}

// Run consumes Telegram updates until the context is canceled. A failure
// handling one update is logged and never stops the loop.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	b.log.Info("bot update loop started", "username", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("panic handling update", "panic", r)
		}
	}()

	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.IsCommand():
		b.handleCommand(ctx, update.Message)
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start", "help":
		b.handleHelp(msg.Chat.ID)
	case "add":
		b.handleAdd(ctx, msg)
	case "list":
		b.handleList(ctx, msg.Chat.ID)
	case "remove":
		b.handleItemCommand(ctx, msg, "remove")
	case "pause":
		b.handleItemCommand(ctx, msg, "pause")
	case "resume":
		b.handleItemCommand(ctx, msg, "resume")
	default:
		b.reply(msg.Chat.ID, "Unknown command. Use /help to see what I can do.")
	}
}

func (b *Bot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("sending reply failed", "chat_id", chatID, "error", err)
	}
}

func (b *Bot) replyMarkdown(chatID int64, text string, kb *tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true
	if kb != nil {
		msg.ReplyMarkup = kb
	}
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("sending reply failed", "chat_id", chatID, "error", err)
	}
}
