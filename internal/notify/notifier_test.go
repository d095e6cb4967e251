package notify

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSender captures the messages a notifier sends.
type fakeSender struct {
	sent []tgbotapi.Chattable
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, f.err
}

func testDrop() *PriceDrop {
	return &PriceDrop{
		ChatID:   42,
		Title:    "Kahve Makinesi",
		URL:      "https://www.trendyol.com/p/kahve",
		OldPrice: 1499.90,
		NewPrice: 1099.90,
		DropPct:  26.668,
		Currency: "TL",
	}
}

func TestFormatMessage(t *testing.T) {
	t.Parallel()

	text := FormatMessage(testDrop())

	assert.Contains(t, text, "Price dropped!")
	assert.Contains(t, text, "Kahve Makinesi")
	assert.Contains(t, text, "1499.90 TL")
	assert.Contains(t, text, "1099.90 TL")
	assert.Contains(t, text, "26.7%")
	assert.Contains(t, text, "[Open product](https://www.trendyol.com/p/kahve)")
}

func TestFormatMessage_EmptyTitle(t *testing.T) {
	t.Parallel()

	drop := testDrop()
	drop.Title = ""

	assert.Contains(t, FormatMessage(drop), "Product")
}

func TestTelegramNotifier_SendsMarkdownMessage(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	n := NewTelegramNotifier(sender)

	require.NoError(t, n.SendPriceDrop(context.Background(), testDrop()))
	require.Len(t, sender.sent, 1)

	msg, ok := sender.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, int64(42), msg.ChatID)
	assert.Equal(t, tgbotapi.ModeMarkdown, msg.ParseMode)
	assert.True(t, msg.DisableWebPagePreview)
	assert.Contains(t, msg.Text, "Kahve Makinesi")
}

func TestTelegramNotifier_SendError(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{err: errors.New("403 Forbidden: bot was blocked")}
	n := NewTelegramNotifier(sender)

	err := n.SendPriceDrop(context.Background(), testDrop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sending telegram notification")
}

func TestTelegramNotifier_CancelledContext(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	n := NewTelegramNotifier(sender)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := n.SendPriceDrop(ctx, testDrop())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, sender.sent)
}

func TestNoOpNotifier_NeverFails(t *testing.T) {
	t.Parallel()

	n := NewNoOpNotifier(slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.NoError(t, n.SendPriceDrop(context.Background(), testDrop()))
}
