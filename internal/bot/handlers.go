package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"price-tracker-bot/internal/fetch"
	domain "price-tracker-bot/pkg/types"
)

const helpText = `📌 *Price Tracker Bot*

Commands:
/add <url> — track a product (current price becomes the baseline)
/list — list your tracked items
/remove <id> — delete a tracking item
/pause <id> — pause checks for an item
/resume <id> — resume checks for an item
/help — this message

Example:
/add https://www.trendyol.com/some-product`

func (b *Bot) handleHelp(chatID int64) {
	b.replyMarkdown(chatID, helpText, nil)
}

func (b *Bot) handleAdd(ctx context.Context, msg *tgbotapi.Message) {
	url := strings.TrimSpace(msg.CommandArguments())
	if url == "" {
		b.reply(msg.Chat.ID, "Usage: /add <url>\nExample: /add https://www.trendyol.com/some-product")
		return
	}

	b.reply(msg.Chat.ID, "🔍 Fetching product info...")

	info, err := b.fetcher.Fetch(ctx, url)
	if err != nil || !info.HasPrice() {
		b.log.Warn("add rejected, no price found", "url", url, "error", err)
		b.reply(msg.Chat.ID,
			"❌ Could not determine a price for that page.\n\n"+
				"Check the URL, try a different product link, or try again later.")
		return
	}

	item := &domain.TrackingItem{
		ChatID:        msg.Chat.ID,
		URL:           info.URL,
		Title:         info.Title,
		ImageURL:      info.ImageURL,
		BaselinePrice: *info.Price,
	}

	if err := b.store.CreateItem(ctx, item); err != nil {
		b.log.Error("creating tracking item failed", "chat_id", msg.Chat.ID, "error", err)
		b.reply(msg.Chat.ID, "❌ Could not save the tracking item. Please try again.")
		return
	}

	var sb strings.Builder
	sb.WriteString("✅ Now tracking!\n\n")
	if item.Title != "" {
		fmt.Fprintf(&sb, "📦 *%s*\n\n", item.Title)
	}
	fmt.Fprintf(&sb, "💰 Baseline price: *%.2f %s*\n", item.BaselinePrice, currencyOf(info))
	fmt.Fprintf(&sb, "🆔 ID: %d\n", item.ID)
	fmt.Fprintf(&sb, "🔗 [Link](%s)\n\n", item.URL)
	sb.WriteString("I'll message you when the price drops. 🔔")

	kb := afterAddKeyboard(item)
	b.replyMarkdown(msg.Chat.ID, sb.String(), &kb)
}

func (b *Bot) handleList(ctx context.Context, chatID int64) {
	items, err := b.store.ListByChat(ctx, chatID)
	if err != nil {
		b.log.Error("listing items failed", "chat_id", chatID, "error", err)
		b.reply(chatID, "❌ Could not load your tracking list. Please try again.")
		return
	}

	if len(items) == 0 {
		b.reply(chatID, "No tracked items yet. Add one with /add <url>.")
		return
	}

	b.reply(chatID, fmt.Sprintf("📋 %d tracked item(s):", len(items)))
	for i := range items {
		kb := itemKeyboard(&items[i])
		b.replyMarkdown(chatID, itemText(&items[i]), &kb)
	}
}

// handleItemCommand covers /remove, /pause, and /resume, which all take a
// single item id argument.
func (b *Bot) handleItemCommand(ctx context.Context, msg *tgbotapi.Message, action string) {
	itemID, err := strconv.ParseInt(strings.TrimSpace(msg.CommandArguments()), 10, 64)
	if err != nil {
		b.reply(msg.Chat.ID, fmt.Sprintf("Usage: /%s <id> — find ids with /list", action))
		return
	}

	var (
		ok   bool
		done string
	)
	switch action {
	case "remove":
		ok, err = b.store.DeleteItem(ctx, msg.Chat.ID, itemID)
		done = "🗑 Tracking removed."
	case "pause":
		ok, err = b.store.SetActive(ctx, msg.Chat.ID, itemID, false)
		done = "⏸ Tracking paused."
	case "resume":
		ok, err = b.store.SetActive(ctx, msg.Chat.ID, itemID, true)
		done = "▶️ Tracking resumed."
	}

	if err != nil {
		b.log.Error("item command failed", "action", action, "item_id", itemID, "error", err)
		b.reply(msg.Chat.ID, "❌ Something went wrong. Please try again.")
		return
	}
	if !ok {
		b.reply(msg.Chat.ID, fmt.Sprintf("Item %d not found.", itemID))
		return
	}
	b.reply(msg.Chat.ID, done)
}

func (b *Bot) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	cb, ok := parseTrackCallback(query.Data)
	if !ok || query.Message == nil {
		b.answerCallback(query.ID, "")
		return
	}

	chatID := query.Message.Chat.ID

	switch cb.Action {
	case actionPause, actionResume:
		b.callbackToggleActive(ctx, query, cb, chatID)
	case actionRemove:
		if ok, _ := b.store.DeleteItem(ctx, chatID, cb.ItemID); !ok {
			b.answerCallback(query.ID, "Not found.")
			return
		}
		b.answerCallback(query.ID, "Removed.")
		b.editText(chatID, query.Message.MessageID, "🗑 This tracking item was removed.")
	case actionShowImage:
		b.callbackShowImage(ctx, query, cb, chatID)
	case actionThresholdMenu:
		b.callbackThresholdMenu(ctx, query, cb, chatID)
	case actionThresholdSet:
		b.callbackThresholdSet(ctx, query, cb, chatID)
	case actionBack:
		b.callbackBack(ctx, query, cb, chatID)
	case actionClose:
		b.answerCallback(query.ID, "")
		b.deleteMessage(chatID, query.Message.MessageID)
	default:
		b.answerCallback(query.ID, "")
	}
}

func (b *Bot) callbackToggleActive(
	ctx context.Context,
	query *tgbotapi.CallbackQuery,
	cb trackCallback,
	chatID int64,
) {
	active := cb.Action == actionResume

	if ok, _ := b.store.SetActive(ctx, chatID, cb.ItemID, active); !ok {
		b.answerCallback(query.ID, "Not found.")
		return
	}

	if active {
		b.answerCallback(query.ID, "Resumed.")
	} else {
		b.answerCallback(query.ID, "Paused.")
	}

	item, err := b.store.GetItem(ctx, chatID, cb.ItemID)
	if err != nil {
		return
	}
	kb := itemKeyboard(item)
	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, query.Message.MessageID, kb)
	if _, err := b.api.Send(edit); err != nil {
		b.log.Error("editing keyboard failed", "item_id", cb.ItemID, "error", err)
	}
}

// callbackShowImage sends the product image, preferring the cached Telegram
// file handle. The first send by URL caches the returned handle so future
// sends skip the upload.
func (b *Bot) callbackShowImage(
	ctx context.Context,
	query *tgbotapi.CallbackQuery,
	cb trackCallback,
	chatID int64,
) {
	item, err := b.store.GetItem(ctx, chatID, cb.ItemID)
	if err != nil {
		b.answerCallback(query.ID, "Not found.")
		return
	}

	var photo tgbotapi.PhotoConfig
	switch {
	case item.CachedImageID != "":
		photo = tgbotapi.NewPhoto(chatID, tgbotapi.FileID(item.CachedImageID))
	case item.ImageURL != "":
		photo = tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(item.ImageURL))
	default:
		b.answerCallback(query.ID, "No image for this item.")
		return
	}

	b.answerCallback(query.ID, "")
	if item.Title != "" {
		photo.Caption = item.Title
	}

	sent, err := b.api.Send(photo)
	if err != nil {
		b.log.Error("sending image failed", "item_id", item.ID, "error", err)
		b.reply(chatID, "❌ Could not load the image.")
		return
	}

	if item.CachedImageID == "" && len(sent.Photo) > 0 {
		fileID := sent.Photo[len(sent.Photo)-1].FileID
		if _, err := b.store.SetCachedImage(ctx, chatID, item.ID, fileID); err != nil {
			b.log.Warn("caching image handle failed", "item_id", item.ID, "error", err)
		}
	}
}

func (b *Bot) callbackThresholdMenu(
	ctx context.Context,
	query *tgbotapi.CallbackQuery,
	cb trackCallback,
	chatID int64,
) {
	item, err := b.store.GetItem(ctx, chatID, cb.ItemID)
	if err != nil {
		b.answerCallback(query.ID, "Not found.")
		return
	}

	b.answerCallback(query.ID, "")
	kb := thresholdKeyboard(item.ID)
	b.replyMarkdown(chatID, thresholdMenuText(item), &kb)
}

func (b *Bot) callbackThresholdSet(
	ctx context.Context,
	query *tgbotapi.CallbackQuery,
	cb trackCallback,
	chatID int64,
) {
	pct, err := strconv.ParseFloat(cb.Value, 64)
	if err != nil {
		pct = 0
	}

	if ok, _ := b.store.SetThreshold(ctx, chatID, cb.ItemID, pct); !ok {
		b.answerCallback(query.ID, "Could not save.")
		return
	}

	b.answerCallback(query.ID, "Threshold saved ✅")

	item, err := b.store.GetItem(ctx, chatID, cb.ItemID)
	if err != nil {
		return
	}
	kb := thresholdKeyboard(item.ID)
	edit := tgbotapi.NewEditMessageText(chatID, query.Message.MessageID, thresholdMenuText(item))
	edit.ReplyMarkup = &kb
	if _, err := b.api.Send(edit); err != nil {
		b.log.Error("editing threshold menu failed", "item_id", cb.ItemID, "error", err)
	}
}

func (b *Bot) callbackBack(
	ctx context.Context,
	query *tgbotapi.CallbackQuery,
	cb trackCallback,
	chatID int64,
) {
	item, err := b.store.GetItem(ctx, chatID, cb.ItemID)
	if err != nil {
		b.answerCallback(query.ID, "Not found.")
		return
	}

	b.answerCallback(query.ID, "")
	kb := itemKeyboard(item)
	edit := tgbotapi.NewEditMessageText(chatID, query.Message.MessageID, itemText(item))
	edit.ParseMode = tgbotapi.ModeMarkdown
	edit.DisableWebPagePreview = true
	edit.ReplyMarkup = &kb
	if _, err := b.api.Send(edit); err != nil {
		b.log.Error("editing item card failed", "item_id", cb.ItemID, "error", err)
	}
}

func (b *Bot) answerCallback(id, text string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(id, text)); err != nil {
		b.log.Error("answering callback failed", "error", err)
	}
}

func (b *Bot) editText(chatID int64, messageID int, text string) {
	if _, err := b.api.Send(tgbotapi.NewEditMessageText(chatID, messageID, text)); err != nil {
		b.log.Error("editing message failed", "chat_id", chatID, "error", err)
	}
}

func (b *Bot) deleteMessage(chatID int64, messageID int) {
	if _, err := b.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		b.log.Error("deleting message failed", "chat_id", chatID, "error", err)
	}
}

// itemText renders the per-item card shown by /list and callback edits.
func itemText(item *domain.TrackingItem) string {
	status := "🟢 active"
	if !item.IsActive {
		status = "🟡 paused"
	}

	var sb strings.Builder
	if item.Title != "" {
		fmt.Fprintf(&sb, "📦 *%s*\n\n", item.Title)
	}
	fmt.Fprintf(&sb, "🆔 ID: %d — %s\n", item.ID, status)
	fmt.Fprintf(&sb, "💰 Baseline: %.2f %s\n", item.BaselinePrice, fetch.DefaultCurrency)
	fmt.Fprintf(&sb, "💵 Last price: %.2f %s\n", item.LastPrice, fetch.DefaultCurrency)
	fmt.Fprintf(&sb, "🎯 Threshold: %g%%\n", item.ThresholdPct)
	fmt.Fprintf(&sb, "🔗 [Link](%s)", item.URL)
	return sb.String()
}

func thresholdMenuText(item *domain.TrackingItem) string {
	return fmt.Sprintf(
		"🎯 Notification threshold\n\n"+
			"Current threshold: %g%%\n"+
			"Pick one: I notify when the price drops by at least the chosen "+
			"percentage since the last check. 0%% notifies on every drop.",
		item.ThresholdPct,
	)
}

func currencyOf(info *fetch.ProductInfo) string {
	if info.Currency != "" {
		return info.Currency
	}
	return fetch.DefaultCurrency
}
