package scraper

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeswanthrajan/sentiment-analysis/models"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

// fakeSource serves canned pages keyed by star rating and sort
// strategy and records every query it receives.
type fakeSource struct {
	byStar  map[string][]RawReview // star rating -> reviews, served on page 1
	bySort  map[string][]RawReview // sort strategy -> reviews for ALL-star queries
	failAll bool
	queries []PageQuery
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) FetchPage(_ context.Context, query PageQuery) ([]RawReview, error) {
	f.queries = append(f.queries, query)
	if f.failAll {
		return nil, errors.New("source unreachable")
	}
	if query.Page > 1 {
		return nil, nil
	}
	if query.StarRating == StarRatingAll {
		return f.bySort[query.SortBy], nil
	}
	return f.byStar[query.StarRating], nil
}

func rawReviews(prefix string, rating float64, n int) []RawReview {
	reviews := make([]RawReview, 0, n)
	for i := 0; i < n; i++ {
		reviews = append(reviews, RawReview{
			ID:     fmt.Sprintf("%s_%d", prefix, i),
			Text:   fmt.Sprintf("Review body %s %d with enough words", prefix, i),
			Rating: rating,
		})
	}
	return reviews
}

func TestIngestEmptySourceIsAllSynthetic(t *testing.T) {
	src := &fakeSource{}
	c := NewCoordinator(src, 0, newTestLogger())

	reviews := c.Ingest(context.Background(), "B0TESTASIN", 20)

	require.Len(t, reviews, 20)
	for _, r := range reviews {
		assert.True(t, r.Synthetic)
		assert.Equal(t, models.SourceExternalSource, r.Source)
	}
}

func TestIngestUnreachableSourceIsAllSynthetic(t *testing.T) {
	src := &fakeSource{failAll: true}
	c := NewCoordinator(src, 0, newTestLogger())

	reviews := c.Ingest(context.Background(), "B0TESTASIN", 10)

	require.Len(t, reviews, 10)
	for _, r := range reviews {
		assert.True(t, r.Synthetic)
	}
}

func TestIngestBalancedPassQuotas(t *testing.T) {
	// Every star bucket has plenty: each contributes exactly its share.
	src := &fakeSource{byStar: map[string][]RawReview{
		"5": rawReviews("five", 5, 10),
		"4": rawReviews("four", 4, 10),
		"3": rawReviews("three", 3, 10),
		"2": rawReviews("two", 2, 10),
		"1": rawReviews("one", 1, 10),
	}}
	c := NewCoordinator(src, 0, newTestLogger())

	reviews := c.Ingest(context.Background(), "B0TESTASIN", 20)

	require.Len(t, reviews, 20)
	perRating := map[float64]int{}
	for _, r := range reviews {
		require.False(t, r.Synthetic)
		perRating[r.Rating]++
	}
	for star := 1.0; star <= 5; star++ {
		assert.Equal(t, 4, perRating[star], "%v-star share", star)
	}
}

func TestIngestTopUpNeverReaddsSeenIDs(t *testing.T) {
	// The second pass re-serves items the balanced pass already
	// collected. Nothing already seen may be added again.
	fiveStar := rawReviews("dup", 5, 4)
	topUp := append(append([]RawReview{}, fiveStar...),
		RawReview{ID: "fresh_0", Text: "A brand new review body", Rating: 4},
		RawReview{ID: "fresh_1", Text: "Another brand new review", Rating: 2},
	)

	src := &fakeSource{
		byStar: map[string][]RawReview{"5": fiveStar},
		bySort: map[string][]RawReview{
			SortMostRecent: topUp,
			SortTopReviews: topUp,
		},
	}
	c := NewCoordinator(src, 0, newTestLogger())

	reviews := c.Ingest(context.Background(), "B0TESTASIN", 10)

	require.Len(t, reviews, 10)
	ids := map[string]int{}
	real := 0
	for _, r := range reviews {
		ids[r.ReviewID]++
		if !r.Synthetic {
			real++
		}
	}
	for id, n := range ids {
		assert.Equal(t, 1, n, "id %s collected more than once", id)
	}
	// 2 from the 5-star quota, the 2 unseen dups plus 2 fresh in top-up
	assert.Equal(t, 6, real)
}

func TestIngestStopsExactlyAtTarget(t *testing.T) {
	src := &fakeSource{bySort: map[string][]RawReview{
		SortMostRecent: rawReviews("recent", 5, 50),
	}}
	c := NewCoordinator(src, 0, newTestLogger())

	reviews := c.Ingest(context.Background(), "B0TESTASIN", 7)
	assert.Len(t, reviews, 7)
}

func TestIngestPageErrorEndsBranchOnly(t *testing.T) {
	// 5-star queries fail; the other buckets still fill their quotas.
	src := &fakeSource{byStar: map[string][]RawReview{
		"4": rawReviews("four", 4, 10),
		"3": rawReviews("three", 3, 10),
		"2": rawReviews("two", 2, 10),
		"1": rawReviews("one", 1, 10),
	}}
	failing := &branchFailSource{inner: src, failStar: "5"}
	c := NewCoordinator(failing, 0, newTestLogger())

	reviews := c.Ingest(context.Background(), "B0TESTASIN", 20)

	require.Len(t, reviews, 20)
	for _, r := range reviews {
		assert.NotEqual(t, 5.0, r.Rating)
	}
}

type branchFailSource struct {
	inner    *fakeSource
	failStar string
}

func (b *branchFailSource) Name() string { return b.inner.Name() }

func (b *branchFailSource) FetchPage(ctx context.Context, query PageQuery) ([]RawReview, error) {
	if query.StarRating == b.failStar {
		return nil, errors.New("rate limited")
	}
	return b.inner.FetchPage(ctx, query)
}

func TestSyntheticReviewsExactCountAndFlag(t *testing.T) {
	reviews := SyntheticReviews("B0TESTASIN", 15)

	require.Len(t, reviews, 15)
	seen := map[string]bool{}
	for _, r := range reviews {
		assert.True(t, r.Synthetic)
		assert.NotEmpty(t, r.Text)
		assert.GreaterOrEqual(t, r.Rating, 1.0)
		assert.LessOrEqual(t, r.Rating, 5.0)
		assert.False(t, seen[r.ReviewID], "duplicate id %s", r.ReviewID)
		seen[r.ReviewID] = true
	}
}
