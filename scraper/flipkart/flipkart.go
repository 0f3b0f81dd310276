// Package flipkart implements scraper.ReviewSource against Flipkart
// product-review pages using a headless browser, since Flipkart has no
// public review API.
package flipkart

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/sirupsen/logrus"

	"github.com/jeswanthrajan/sentiment-analysis/scraper"
	"github.com/jeswanthrajan/sentiment-analysis/utils"
)

// Source drives a headless Chrome instance over Flipkart review pages.
// Flipkart exposes no rating-bucket filter, so star-specific queries
// return the unfiltered page and the coordinator's dedup handles the
// overlap.
type Source struct {
	logger *logrus.Logger
	retry  *utils.RetryConfig

	allocCtx    context.Context
	cancelAlloc context.CancelFunc
	cancelRoot  context.CancelFunc
}

// New creates a Flipkart source with its own browser allocator.
func New(chromeBin string, maxRetries int, logger *logrus.Logger) *Source {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 "+
			"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
	)
	if bin := findChromeBinary(chromeBin); bin != "" {
		opts = append(opts, chromedp.ExecPath(bin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)

	// Suppress chromedp log noise
	silentCtx, cancelSilent := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))

	return &Source{
		logger: logger,
		retry: &utils.RetryConfig{
			MaxAttempts: maxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
		allocCtx:    silentCtx,
		cancelAlloc: cancelAlloc,
		cancelRoot:  cancelSilent,
	}
}

// Close shuts the browser allocator down.
func (s *Source) Close() {
	s.cancelRoot()
	s.cancelAlloc()
}

func (s *Source) Name() string { return "flipkart" }

// reviewsURL rewrites a product URL into its reviews listing for the
// given page number.
func reviewsURL(productURL string, page int) string {
	u := productURL
	if strings.Contains(u, "/p/") && !strings.Contains(u, "/product-reviews/") {
		u = strings.Replace(u, "/p/", "/product-reviews/", 1)
		if idx := strings.Index(u, "&lid="); idx >= 0 {
			u = u[:idx]
		}
		u += "&aid=overall"
	}
	return fmt.Sprintf("%s&page=%d", u, page)
}

// FetchPage loads one reviews page and extracts its review cards.
func (s *Source) FetchPage(ctx context.Context, query scraper.PageQuery) ([]scraper.RawReview, error) {
	pageURL := reviewsURL(query.Identifier, query.Page)

	type cardData struct {
		Rating   string `json:"rating"`
		Title    string `json:"title"`
		Text     string `json:"text"`
		Reviewer string `json:"reviewer"`
		DateText string `json:"dateText"`
	}

	var cards []cardData

	err := s.retry.Do(fmt.Sprintf("flipkart-page-%d", query.Page), func() error {
		tabCtx, cancel := chromedp.NewContext(s.allocCtx)
		defer cancel()

		tabCtx, cancelTimeout := context.WithTimeout(tabCtx, 60*time.Second)
		defer cancelTimeout()

		return chromedp.Run(tabCtx,
			chromedp.Navigate(pageURL),
			chromedp.Sleep(4*time.Second),
			chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil),
			chromedp.Sleep(2*time.Second),

			// Review cards: rating badge, title, collapsible text,
			// reviewer name and date as adjacent paragraphs.
			chromedp.Evaluate(`
				(function() {
					var results = [];
					var cards = document.querySelectorAll('div._1AtVbE div._27M-vq');
					for (var i = 0; i < cards.length; i++) {
						var card = cards[i];
						var ratingEl = card.querySelector('div._3LWZlK');
						var titleEl  = card.querySelector('p._2-N8zT');
						var textEl   = card.querySelector('div.t-ZTKy div.collapsible-text') ||
						               card.querySelector('div.t-ZTKy');
						var nameEl   = card.querySelector('p._2sc7ZR');
						var dateEl   = card.querySelector('p._2sc7ZR + p._2sc7ZR');
						results.push({
							rating:   ratingEl ? ratingEl.innerText.trim() : '',
							title:    titleEl  ? titleEl.innerText.trim()  : '',
							text:     textEl   ? textEl.innerText.trim()   : '',
							reviewer: nameEl   ? nameEl.innerText.trim()   : '',
							dateText: dateEl   ? dateEl.innerText.trim()   : ''
						});
					}
					return results;
				})()
			`, &cards),
		)
	})
	if err != nil {
		return nil, err
	}

	reviews := make([]scraper.RawReview, 0, len(cards))
	for i, card := range cards {
		rating := 0.0
		fmt.Sscanf(card.Rating, "%f", &rating)

		reviews = append(reviews, scraper.RawReview{
			ID:       fmt.Sprintf("flipkart_p%d_%d", query.Page, i),
			Title:    card.Title,
			Text:     card.Text,
			Rating:   rating,
			Reviewer: card.Reviewer,
			DateText: card.DateText,
		})
	}

	s.logger.Debugf("[flipkart] page %d: %d reviews", query.Page, len(reviews))
	return reviews, nil
}

// findChromeBinary returns the configured browser binary, or probes
// the usual install locations.
func findChromeBinary(configured string) string {
	if configured != "" {
		return configured
	}

	candidates := []string{
		"google-chrome", "chromium", "chromium-browser", "google-chrome-stable",
	}
	for _, name := range candidates {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	wellKnown := []string{
		"/usr/bin/google-chrome",
		"/usr/bin/chromium",
		"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
	}
	for _, path := range wellKnown {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
