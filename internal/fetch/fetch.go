// Package fetch defines the product info fetcher abstraction and the
// Trendyol scraper implementation. Fetchers are best-effort: an ordinary
// scrape failure yields a low-information result, not an error.
package fetch

import "context"

// DefaultCurrency is used when a page does not state one.
const DefaultCurrency = "TL"

// ProductInfo holds whatever could be determined about a product page.
// A nil Price means the price could not be determined.
type ProductInfo struct {
	URL      string
	Title    string
	Price    *float64
	ImageURL string
	Currency string
}

// HasPrice reports whether a usable price was found.
func (p *ProductInfo) HasPrice() bool {
	return p != nil && p.Price != nil
}

// Fetcher retrieves live product data for a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*ProductInfo, error)
}
