// Package scraper drives bounded, rating-balanced review ingestion
// from an external source, deduplicating by review identity and
// backfilling shortfalls with synthetic placeholder data.
package scraper

import (
	"context"
	"strings"
	"time"
)

// Sort strategies understood by review sources.
const (
	SortTopReviews = "TOP_REVIEWS"
	SortMostRecent = "MOST_RECENT"
)

// StarRatingAll requests reviews across every rating bucket.
const StarRatingAll = "ALL"

// PageQuery addresses one page of reviews at a source.
type PageQuery struct {
	Identifier string // product identity at the source (ASIN, URL, ...)
	Country    string
	SortBy     string
	StarRating string // "1".."5" or StarRatingAll
	Page       int
}

// RawReview is one unprocessed item as the source exposes it.
type RawReview struct {
	ID       string
	Title    string
	Text     string
	Rating   float64
	Reviewer string
	DateText string
}

// ReviewSource is the fetch-page capability an external review site
// provides. A returned error ends pagination for that branch only;
// an empty page means the branch is exhausted.
type ReviewSource interface {
	Name() string
	FetchPage(ctx context.Context, query PageQuery) ([]RawReview, error)
}

// reviewDateFormats is the ordered list of textual date layouts seen
// on review listings.
var reviewDateFormats = []string{
	"January 2, 2006",
	"2 January 2006",
	"2006-01-02",
	"2 Jan 2006",
}

// ParseReviewDate best-effort parses a free-text review date. Site
// strings like "Reviewed in the United States on June 12, 2023" are
// reduced to the part after the final " on ". Unparseable dates
// default to now rather than failing the record.
func ParseReviewDate(dateText string) time.Time {
	text := strings.TrimSpace(dateText)
	if idx := strings.LastIndex(text, " on "); idx >= 0 {
		text = strings.TrimSpace(text[idx+4:])
	}
	for _, layout := range reviewDateFormats {
		if t, err := time.Parse(layout, text); err == nil {
			return t
		}
	}
	// Flipkart-style "15 Jan, 2023"
	if t, err := time.Parse("2 Jan 2006", strings.ReplaceAll(text, ",", "")); err == nil {
		return t
	}
	return time.Now()
}
