package scraper

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/jeswanthrajan/sentiment-analysis/models"
)

// Placeholder review templates used when the real source is exhausted
// or unreachable. Texts are grouped by the rating band they plausibly
// accompany.
var (
	syntheticPositive = []string{
		"This product is amazing! I love how easy it is to use and the quality is excellent.",
		"I've been using this for a month now and it's holding up well. Very satisfied with my purchase.",
		"Great value for the price. Would definitely recommend to friends and family.",
		"The customer service was excellent when I had an issue. They resolved it quickly.",
		"This exceeded my expectations. The design is beautiful and it works perfectly.",
	}
	syntheticNeutral = []string{
		"It's an average product. Nothing special but it works as advertised.",
		"The product is good but the shipping took forever. Almost a month to arrive.",
		"It's okay for the price. Not the best quality but it gets the job done.",
		"Some features are great, others not so much. Overall it's decent.",
		"It works fine but the instructions were confusing. Had to look up a tutorial online.",
	}
	syntheticNegative = []string{
		"I'm disappointed with this purchase. It broke after just two weeks of use.",
		"This is the worst product I've ever bought. Complete waste of money.",
		"The quality is terrible. Definitely not worth the price.",
		"It doesn't work as advertised. Very misleading product description.",
		"Had to return it. Didn't meet my expectations at all.",
	}
)

// ratingWeights skews synthetic ratings towards the high end, the way
// real marketplace distributions lean. Index i is the weight of
// rating i+1.
var ratingWeights = []float32{0.1, 0.1, 0.1, 0.3, 0.4}

// SyntheticReviews generates count placeholder records for the given
// product identifier. Every record is flagged Synthetic so downstream
// consumers can distinguish real from generated data.
func SyntheticReviews(identifier string, count int) []models.CanonicalReview {
	reviews := make([]models.CanonicalReview, 0, count)
	now := time.Now()

	for i := 0; i < count; i++ {
		rating := weightedRating()

		var text string
		switch {
		case rating >= 4:
			text = syntheticPositive[gofakeit.Number(0, len(syntheticPositive)-1)]
		case rating == 3:
			text = syntheticNeutral[gofakeit.Number(0, len(syntheticNeutral)-1)]
		default:
			text = syntheticNegative[gofakeit.Number(0, len(syntheticNegative)-1)]
		}

		date := gofakeit.DateRange(now.AddDate(-1, 0, 0), now)

		reviews = append(reviews, models.CanonicalReview{
			ReviewID:     fmt.Sprintf("synthetic_%s_%d", identifier, i),
			Text:         text,
			Title:        fmt.Sprintf("Review for %s", identifier),
			Rating:       float64(rating),
			Date:         date,
			DateText:     date.Format("January 2, 2006"),
			ReviewerName: gofakeit.Username(),
			Source:       models.SourceExternalSource,
			Synthetic:    true,
		})
	}

	return reviews
}

func weightedRating() int {
	roll := gofakeit.Float32Range(0, 1)
	var cumulative float32
	for i, weight := range ratingWeights {
		cumulative += weight
		if roll <= cumulative {
			return i + 1
		}
	}
	return len(ratingWeights)
}
