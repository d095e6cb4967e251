package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const defaultFetchTimeout = 10 * time.Second

// Trendyol product pages expose the price in several layouts depending on
// whether a campaign, cart discount, or lowest-price badge is active. Each
// group is tried in order and the cheapest candidate wins.
var trendyolPriceSelectors = []string{
	".ty-plus-price-content .ty-plus-price-discounted-price",
	".ty-plus-price-content .ty-plus-price-original-price",
	".campaign-price-content p.new-price",
	".campaign-price-content p.old-price",
	"button[data-testid='lowest-price'] .price-view span.discounted",
	"div[data-testid='normal-price'] .price-container span.discounted",
	"div[data-testid='normal-price'] span.discounted",
	"span.prc-dsc",
	"span.prc-slg",
}

var trendyolTitleSelectors = []string{
	"h1[data-testid='product-title']",
	"h1.product-title",
	"h1.pr-new-br",
	"h1",
}

var trendyolImageSelectors = []string{
	"img[data-testid='image']",
	"img.ph-gallery-img",
	"img[data-src]",
}

// TrendyolFetcher scrapes product title, price, and image from Trendyol
// product pages. It never fails for ordinary scrape problems; the result
// simply carries no price.
type TrendyolFetcher struct {
	client *http.Client
	log    *slog.Logger
}

// TrendyolOption configures a TrendyolFetcher.
type TrendyolOption func(*TrendyolFetcher)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) TrendyolOption {
	return func(f *TrendyolFetcher) {
		f.client = c
	}
}

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) TrendyolOption {
	return func(f *TrendyolFetcher) {
		f.log = l
	}
}

// NewTrendyolFetcher creates a fetcher with a bounded per-request timeout.
func NewTrendyolFetcher(opts ...TrendyolOption) *TrendyolFetcher {
	f := &TrendyolFetcher{
		client: &http.Client{Timeout: defaultFetchTimeout},
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch retrieves product info for url. Short links (ty.gl) are resolved
// first. Non-Trendyol URLs and failed scrapes return a result without a
// price; the error return is reserved for request construction problems.
func (f *TrendyolFetcher) Fetch(ctx context.Context, url string) (*ProductInfo, error) {
	if strings.Contains(url, "ty.gl") || !strings.Contains(url, "trendyol.com") {
		resolved, err := f.resolveRedirect(ctx, url)
		if err != nil {
			f.log.Debug("short link resolution failed", "url", url, "error", err)
		} else {
			url = resolved
		}
	}

	info := &ProductInfo{URL: url, Currency: DefaultCurrency}

	if !strings.Contains(url, "trendyol.com") {
		return info, nil
	}

	doc, err := f.get(ctx, url)
	if err != nil {
		f.log.Warn("product page fetch failed", "url", url, "error", err)
		return info, nil
	}

	info.Title = firstText(doc, trendyolTitleSelectors)
	info.ImageURL = findImage(doc)

	if price, ok := lowestPrice(doc); ok {
		info.Price = &price
	}

	return info, nil
}

// resolveRedirect follows a short link with a HEAD request and returns the
// final URL.
func (f *TrendyolFetcher) resolveRedirect(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating redirect request: %w", err)
	}
	setBrowserHeaders(req)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("resolving redirect: %w", err)
	}
	defer resp.Body.Close()

	return resp.Request.URL.String(), nil
}

func (f *TrendyolFetcher) get(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	setBrowserHeaders(req)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return doc, nil
}

// Trendyol serves a simplified page to unknown clients; a browser UA gets
// the full product markup.
func setBrowserHeaders(req *http.Request) {
	req.Header.Set("User-Agent",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "tr-TR,tr;q=0.9,en-US;q=0.8,en;q=0.7")
}

func firstText(doc *goquery.Document, selectors []string) string {
	for _, sel := range selectors {
		if text := strings.TrimSpace(doc.Find(sel).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

func findImage(doc *goquery.Document) string {
	for _, sel := range trendyolImageSelectors {
		node := doc.Find(sel).First()
		src := node.AttrOr("src", "")
		if src == "" {
			src = node.AttrOr("data-src", "")
		}
		if src == "" {
			continue
		}
		if !strings.HasPrefix(src, "http") {
			src = "https:" + src
		}
		return src
	}
	return ""
}

// lowestPrice collects every price candidate on the page and returns the
// cheapest. Multiple candidates usually mean an original price next to a
// discounted one.
func lowestPrice(doc *goquery.Document) (float64, bool) {
	var (
		lowest float64
		found  bool
	)
	for _, sel := range trendyolPriceSelectors {
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			price, ok := ParsePrice(s.Text())
			if !ok {
				return
			}
			if !found || price < lowest {
				lowest = price
				found = true
			}
		})
	}
	return lowest, found
}

var (
	priceCleanRe    = regexp.MustCompile(`[^0-9.,]`)
	thousandsDotsRe = regexp.MustCompile(`^\d{1,3}(\.\d{3})+$`)
)

// ParsePrice converts a Turkish-formatted price string ("1.234,56 TL") to a
// float. Dots are thousands separators, the comma is the decimal mark.
func ParsePrice(text string) (float64, bool) {
	cleaned := priceCleanRe.ReplaceAllString(strings.TrimSpace(text), "")
	if cleaned == "" {
		return 0, false
	}

	switch {
	case strings.Contains(cleaned, ","):
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.Replace(cleaned, ",", ".", 1)
	case thousandsDotsRe.MatchString(cleaned):
		// "1.249" is 1249 TL, not a fraction.
		cleaned = strings.ReplaceAll(cleaned, ".", "")
	}

	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || price <= 0 {
		return 0, false
	}
	return price, true
}
