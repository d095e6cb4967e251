package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// MessageSender is the slice of the Telegram bot API the notifier needs.
// *tgbotapi.BotAPI satisfies it.
type MessageSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier delivers price drop notifications to the owning chat
// via the Telegram bot API.
type TelegramNotifier struct {
	bot MessageSender
}

// NewTelegramNotifier creates a new TelegramNotifier.
func NewTelegramNotifier(bot MessageSender) *TelegramNotifier {
	return &TelegramNotifier{bot: bot}
}

// SendPriceDrop sends the formatted notification to the item's chat.
func (n *TelegramNotifier) SendPriceDrop(ctx context.Context, drop *PriceDrop) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(drop.ChatID, FormatMessage(drop))
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true

	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("sending telegram notification: %w", err)
	}
	return nil
}
