// Package notify defines the notification interface and implementations
// for price drop delivery.
package notify

import (
	"context"
	"fmt"
	"strings"
)

// PriceDrop contains the data needed to notify a chat about a price drop.
type PriceDrop struct {
	ChatID   int64
	Title    string
	URL      string
	OldPrice float64
	NewPrice float64
	DropPct  float64
	Currency string
}

// Notifier defines the interface for delivering price drop notifications.
// Delivery is best-effort; callers log failures and move on.
type Notifier interface {
	SendPriceDrop(ctx context.Context, drop *PriceDrop) error
}

// FormatMessage renders the human-readable notification text. The drop
// percentage is shown with one decimal place.
func FormatMessage(drop *PriceDrop) string {
	title := drop.Title
	if title == "" {
		title = "Product"
	}

	var b strings.Builder
	b.WriteString("🎉 *Price dropped!*\n\n")
	fmt.Fprintf(&b, "📦 %s\n\n", title)
	fmt.Fprintf(&b, "💰 Old price: %.2f %s\n", drop.OldPrice, drop.Currency)
	fmt.Fprintf(&b, "💰 New price: *%.2f %s*\n", drop.NewPrice, drop.Currency)
	fmt.Fprintf(&b, "📉 Drop: %.1f%%\n\n", drop.DropPct)
	fmt.Fprintf(&b, "🔗 [Open product](%s)", drop.URL)
	return b.String()
}
