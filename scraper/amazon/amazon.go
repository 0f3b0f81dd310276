// Package amazon implements scraper.ReviewSource against the
// real-time-amazon-data RapidAPI endpoints.
package amazon

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"github.com/jeswanthrajan/sentiment-analysis/scraper"
)

// asinPatterns match the product ID in the common Amazon URL shapes.
var asinPatterns = []*regexp.Regexp{
	regexp.MustCompile(`/dp/([A-Z0-9]{10})`),
	regexp.MustCompile(`/product/([A-Z0-9]{10})`),
	regexp.MustCompile(`/gp/product/([A-Z0-9]{10})`),
	regexp.MustCompile(`asin=([A-Z0-9]{10})`),
	regexp.MustCompile(`asin/([A-Z0-9]{10})`),
}

// ExtractASIN pulls the ASIN out of an Amazon product URL, or returns
// "" when none is found.
func ExtractASIN(productURL string) string {
	for _, pattern := range asinPatterns {
		if match := pattern.FindStringSubmatch(productURL); match != nil {
			return match[1]
		}
	}
	return ""
}

// Source fetches review pages through the RapidAPI gateway.
type Source struct {
	apiKey  string
	apiHost string
	client  *http.Client
	logger  *logrus.Logger
}

// New creates an Amazon review source. The API key must be non-empty;
// callers without one should skip straight to synthetic backfill.
func New(apiKey, apiHost string, logger *logrus.Logger) *Source {
	return &Source{
		apiKey:  apiKey,
		apiHost: apiHost,
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
	}
}

func (s *Source) Name() string { return "amazon" }

// FetchPage requests one page of product reviews. Transport failures,
// non-2xx statuses and unexpected payloads all surface as errors; the
// coordinator treats any of them as the end of that branch.
func (s *Source) FetchPage(ctx context.Context, query scraper.PageQuery) ([]scraper.RawReview, error) {
	params := url.Values{}
	params.Set("asin", query.Identifier)
	params.Set("country", query.Country)
	params.Set("sort_by", query.SortBy)
	params.Set("star_rating", query.StarRating)
	params.Set("verified_purchases_only", "false")
	params.Set("images_or_videos_only", "false")
	params.Set("current_format_only", "false")
	params.Set("page", strconv.Itoa(query.Page))

	body, err := s.get(ctx, "/product-reviews", params)
	if err != nil {
		return nil, err
	}

	raw := gjson.GetBytes(body, "data.reviews")
	if !raw.Exists() {
		return nil, errors.New("response has no data.reviews")
	}

	var reviews []scraper.RawReview
	for _, item := range raw.Array() {
		reviews = append(reviews, scraper.RawReview{
			ID:       item.Get("id").String(),
			Title:    item.Get("title").String(),
			Text:     item.Get("text").String(),
			Rating:   item.Get("rating").Float(),
			Reviewer: item.Get("username").String(),
			DateText: item.Get("date.text").String(),
		})
	}

	s.logger.Debugf("[amazon] page %d (%s stars, %s): %d reviews",
		query.Page, query.StarRating, query.SortBy, len(reviews))
	return reviews, nil
}

// ProductTitle resolves the display name for an ASIN. Failures are not
// fatal to an ingestion run; callers fall back to the ASIN itself.
func (s *Source) ProductTitle(ctx context.Context, asin, country string) (string, error) {
	params := url.Values{}
	params.Set("asin", asin)
	params.Set("country", country)

	body, err := s.get(ctx, "/product-details", params)
	if err != nil {
		return "", err
	}

	title := gjson.GetBytes(body, "data.title").String()
	if title == "" {
		return "", errors.New("response has no data.title")
	}
	return title, nil
}

func (s *Source) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	endpoint := fmt.Sprintf("https://%s%s?%s", s.apiHost, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	req.Header.Set("X-RapidAPI-Key", s.apiKey)
	req.Header.Set("X-RapidAPI-Host", s.apiHost)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetch page")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read body")
	}
	return body, nil
}
