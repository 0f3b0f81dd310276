package services

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jeswanthrajan/sentiment-analysis/models"
	"github.com/jeswanthrajan/sentiment-analysis/utils"
)

// Analyzer classifies a batch of canonical reviews. Reviews are
// independent, so the batch fans out across the worker pool; results
// keep the input order.
type Analyzer struct {
	classifier *Classifier
	pool       *utils.WorkerPool
	logger     *logrus.Logger
}

// NewAnalyzer creates an Analyzer driving the given classifier.
func NewAnalyzer(classifier *Classifier, pool *utils.WorkerPool, logger *logrus.Logger) *Analyzer {
	return &Analyzer{classifier: classifier, pool: pool, logger: logger}
}

// ClassifyBatch attaches one verdict to every qualifying review.
// Records whose trimmed text is shorter than the minimum are dropped
// here as a last line of defense; both ingestion paths should already
// have filtered them.
func (a *Analyzer) ClassifyBatch(ctx context.Context, reviews []models.CanonicalReview) []models.ClassifiedReview {
	qualified := make([]models.CanonicalReview, 0, len(reviews))
	for _, review := range reviews {
		if len(strings.TrimSpace(review.Text)) < minTextLength {
			continue
		}
		qualified = append(qualified, review)
	}

	classified := make([]models.ClassifiedReview, len(qualified))
	for i := range qualified {
		i := i
		a.pool.Submit(func() {
			classified[i] = models.ClassifiedReview{
				CanonicalReview: qualified[i],
				Verdict:         a.classifier.Classify(ctx, qualified[i].Text),
			}
		})
	}
	a.pool.Wait()

	a.logger.Infof("[analyzer] classified %d reviews (%d dropped as too short)",
		len(classified), len(reviews)-len(qualified))
	return classified
}

// Summarize builds the per-run statistics persisted alongside the
// classified rows and the mentions list.
func Summarize(runID, product, source string, reviews []models.ClassifiedReview, insights *models.InsightReport) *models.RunSummary {
	summary := &models.RunSummary{
		RunID:        runID,
		Product:      product,
		Source:       source,
		TotalReviews: len(reviews),
		Timestamp:    time.Now(),
		Insights:     insights,
	}

	var totalScore float64
	for _, review := range reviews {
		totalScore += review.Verdict.Score
		switch review.Verdict.Sentiment {
		case models.SentimentPositive:
			summary.PositiveCount++
		case models.SentimentNegative:
			summary.NegativeCount++
		default:
			summary.NeutralCount++
		}
	}
	if len(reviews) > 0 {
		summary.AverageScore = totalScore / float64(len(reviews))
	}

	return summary
}
