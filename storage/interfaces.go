package storage

import "github.com/jeswanthrajan/sentiment-analysis/models"

// RunWriter is the interface any storage backend must satisfy to
// persist one analysis run: the classified rows and the run summary.
type RunWriter interface {
	WriteRun(summary *models.RunSummary, reviews []models.ClassifiedReview) error
	Close() error
}

// RunExporter persists the per-run flat artifacts: the classified-rows
// export, the mentions list and the run summary.
type RunExporter interface {
	Export(summary *models.RunSummary, reviews []models.ClassifiedReview) error
}
