package bot

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	domain "price-tracker-bot/pkg/types"
)

// Callback actions carried in inline keyboard button data.
const (
	actionPause         = "pause"
	actionResume        = "resume"
	actionRemove        = "remove"
	actionShowImage     = "img"
	actionThresholdMenu = "thrmenu"
	actionThresholdSet  = "thrset"
	actionBack          = "back"
	actionClose         = "close"
)

const callbackPrefix = "trk"

// Quick-pick thresholds offered in the menu. Zero notifies on any drop.
var thresholdChoices = []float64{0, 3, 5, 10, 15}

// trackCallback is the decoded form of a "trk:<action>:<item_id>[:value]"
// callback data string.
type trackCallback struct {
	Action string
	ItemID int64
	Value  string
}

func (c trackCallback) pack() string {
	data := fmt.Sprintf("%s:%s:%d", callbackPrefix, c.Action, c.ItemID)
	if c.Value != "" {
		data += ":" + c.Value
	}
	return data
}

func parseTrackCallback(data string) (trackCallback, bool) {
	parts := strings.Split(data, ":")
	if len(parts) < 3 || parts[0] != callbackPrefix {
		return trackCallback{}, false
	}

	itemID, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return trackCallback{}, false
	}

	cb := trackCallback{Action: parts[1], ItemID: itemID}
	if len(parts) > 3 {
		cb.Value = parts[3]
	}
	return cb, true
}

// itemKeyboard is the per-item management keyboard shown under /list entries.
func itemKeyboard(item *domain.TrackingItem) tgbotapi.InlineKeyboardMarkup {
	var toggle tgbotapi.InlineKeyboardButton
	if item.IsActive {
		toggle = tgbotapi.NewInlineKeyboardButtonData("⏸ Pause",
			trackCallback{Action: actionPause, ItemID: item.ID}.pack())
	} else {
		toggle = tgbotapi.NewInlineKeyboardButtonData("▶️ Resume",
			trackCallback{Action: actionResume, ItemID: item.ID}.pack())
	}

	firstRow := []tgbotapi.InlineKeyboardButton{
		toggle,
		tgbotapi.NewInlineKeyboardButtonData("🗑 Remove",
			trackCallback{Action: actionRemove, ItemID: item.ID}.pack()),
	}

	secondRow := []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData("🎯 Threshold",
			trackCallback{Action: actionThresholdMenu, ItemID: item.ID}.pack()),
	}
	if item.ImageURL != "" || item.CachedImageID != "" {
		secondRow = append(secondRow,
			tgbotapi.NewInlineKeyboardButtonData("🖼 Image",
				trackCallback{Action: actionShowImage, ItemID: item.ID}.pack()))
	}

	return tgbotapi.NewInlineKeyboardMarkup(firstRow, secondRow)
}

// afterAddKeyboard is shown right after a successful /add.
func afterAddKeyboard(item *domain.TrackingItem) tgbotapi.InlineKeyboardMarkup {
	row := []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData("🎯 Set threshold",
			trackCallback{Action: actionThresholdMenu, ItemID: item.ID}.pack()),
	}
	if item.ImageURL != "" {
		row = append(row,
			tgbotapi.NewInlineKeyboardButtonData("🖼 Show image",
				trackCallback{Action: actionShowImage, ItemID: item.ID}.pack()))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row)
}

// thresholdKeyboard offers quick threshold choices plus back/close.
func thresholdKeyboard(itemID int64) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	for _, pct := range thresholdChoices {
		label := fmt.Sprintf("%.0f%%+ drop", pct)
		if pct == 0 {
			label = "0% (any drop)"
		}
		rows = append(rows, []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData(label, trackCallback{
				Action: actionThresholdSet,
				ItemID: itemID,
				Value:  strconv.FormatFloat(pct, 'f', -1, 64),
			}.pack()),
		})
	}

	rows = append(rows, []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData("⬅️ Back",
			trackCallback{Action: actionBack, ItemID: itemID}.pack()),
		tgbotapi.NewInlineKeyboardButtonData("✖️ Close",
			trackCallback{Action: actionClose, ItemID: itemID}.pack()),
	})

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
