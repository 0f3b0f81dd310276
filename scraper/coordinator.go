package scraper

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jeswanthrajan/sentiment-analysis/models"
	"github.com/jeswanthrajan/sentiment-analysis/utils"
)

// starBuckets is the fixed set of rating buckets the target count is
// partitioned across, highest first.
var starBuckets = []int{5, 4, 3, 2, 1}

// pagesPerBranch bounds how many pages any single bucket or sort
// strategy may request.
const pagesPerBranch = 2

// secondPassSorts are the strategies used to top up an under-filled
// collection after the rating-balanced pass.
var secondPassSorts = []string{SortMostRecent, SortTopReviews}

// Coordinator collects up to targetCount reviews from one source in
// rating-balanced batches. Pagination is sequential on purpose: each
// page decision depends on the accumulated dedup set and quota state.
type Coordinator struct {
	source  ReviewSource
	country string
	delay   time.Duration
	logger  *logrus.Logger
}

// NewCoordinator creates a Coordinator honoring the given pacing delay
// between page fetches.
func NewCoordinator(source ReviewSource, delayMs int, logger *logrus.Logger) *Coordinator {
	return &Coordinator{
		source:  source,
		country: "US",
		delay:   time.Duration(delayMs) * time.Millisecond,
		logger:  logger,
	}
}

// Ingest returns exactly targetCount canonical reviews: real items
// from the source where possible, synthetic placeholders for the
// remainder. It never fails — an unreachable source simply yields an
// all-synthetic batch.
func (c *Coordinator) Ingest(ctx context.Context, identifier string, targetCount int) []models.CanonicalReview {
	seen := utils.NewIDSet()
	collected := make([]models.CanonicalReview, 0, targetCount)

	collected = c.balancedPass(ctx, identifier, targetCount, seen, collected)

	if len(collected) < targetCount {
		c.logger.Infof("[scraper] balanced pass collected %d/%d — running top-up pass",
			len(collected), targetCount)
		collected = c.topUpPass(ctx, identifier, targetCount, seen, collected)
	}

	if len(collected) < targetCount {
		shortfall := targetCount - len(collected)
		c.logger.Warnf("[scraper] source exhausted at %d reviews — backfilling %d synthetic records",
			len(collected), shortfall)
		collected = append(collected, SyntheticReviews(identifier, shortfall)...)
	}

	return collected
}

// balancedPass requests an even share of the target from every rating
// bucket, up to pagesPerBranch pages per bucket.
func (c *Coordinator) balancedPass(ctx context.Context, identifier string, targetCount int, seen *utils.IDSet, collected []models.CanonicalReview) []models.CanonicalReview {
	perBucket := targetCount / len(starBuckets)

	for _, star := range starBuckets {
		bucketCount := 0

		for page := 1; page <= pagesPerBranch; page++ {
			if bucketCount >= perBucket {
				break
			}

			items, err := c.fetchPaced(ctx, PageQuery{
				Identifier: identifier,
				Country:    c.country,
				SortBy:     SortTopReviews,
				StarRating: strconv.Itoa(star),
				Page:       page,
			})
			if err != nil {
				c.logger.Warnf("[scraper] %d-star page %d failed: %v — ending bucket", star, page, err)
				break
			}
			if len(items) == 0 {
				c.logger.Debugf("[scraper] no %d-star reviews on page %d", star, page)
				break
			}

			for _, item := range items {
				if bucketCount >= perBucket {
					break
				}
				if !seen.Add(item.ID) {
					continue
				}
				collected = append(collected, c.canonicalize(item))
				bucketCount++
			}
		}
	}

	return collected
}

// topUpPass walks the second-pass sort strategies, skipping anything
// already accumulated, until the target is reached or every branch is
// exhausted.
func (c *Coordinator) topUpPass(ctx context.Context, identifier string, targetCount int, seen *utils.IDSet, collected []models.CanonicalReview) []models.CanonicalReview {
	for _, sortBy := range secondPassSorts {
		if len(collected) >= targetCount {
			break
		}

		for page := 1; page <= pagesPerBranch; page++ {
			if len(collected) >= targetCount {
				break
			}

			items, err := c.fetchPaced(ctx, PageQuery{
				Identifier: identifier,
				Country:    c.country,
				SortBy:     sortBy,
				StarRating: StarRatingAll,
				Page:       page,
			})
			if err != nil {
				c.logger.Warnf("[scraper] %s page %d failed: %v — ending branch", sortBy, page, err)
				break
			}
			if len(items) == 0 {
				break
			}

			for _, item := range items {
				if len(collected) >= targetCount {
					break
				}
				if !seen.Add(item.ID) {
					continue
				}
				collected = append(collected, c.canonicalize(item))
			}
		}
	}

	return collected
}

// fetchPaced fetches one page and then honors the source's rate limit
// before the caller may fetch the next.
func (c *Coordinator) fetchPaced(ctx context.Context, query PageQuery) ([]RawReview, error) {
	items, err := c.source.FetchPage(ctx, query)
	if c.delay > 0 {
		time.Sleep(c.delay)
	}
	return items, err
}

func (c *Coordinator) canonicalize(item RawReview) models.CanonicalReview {
	return models.CanonicalReview{
		ReviewID:     item.ID,
		Text:         strings.TrimSpace(item.Text),
		Title:        strings.TrimSpace(item.Title),
		Rating:       item.Rating,
		Date:         ParseReviewDate(item.DateText),
		DateText:     item.DateText,
		ReviewerName: item.Reviewer,
		Source:       models.SourceExternalSource,
	}
}
