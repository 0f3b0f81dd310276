package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jeswanthrajan/sentiment-analysis/models"
)

// CSVExporter writes the per-run flat artifacts under
// <baseDir>/<runID>/: results.csv (classified rows), mentions.json
// (the mentions list) and summary.json (run summary + insights).
type CSVExporter struct {
	baseDir string
}

// NewCSVExporter creates an exporter rooted at baseDir. Intermediate
// directories are created per run.
func NewCSVExporter(baseDir string) *CSVExporter {
	return &CSVExporter{baseDir: baseDir}
}

// Export writes all three artifacts for one run.
func (e *CSVExporter) Export(summary *models.RunSummary, reviews []models.ClassifiedReview) error {
	runDir := filepath.Join(e.baseDir, summary.RunID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return fmt.Errorf("csv: create run dir: %w", err)
	}

	if err := e.writeResults(filepath.Join(runDir, "results.csv"), reviews); err != nil {
		return err
	}
	if err := e.writeMentions(filepath.Join(runDir, "mentions.json"), reviews); err != nil {
		return err
	}
	return e.writeSummary(filepath.Join(runDir, "summary.json"), summary)
}

func (e *CSVExporter) writeResults(path string, reviews []models.ClassifiedReview) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csv: create file %q: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if err := w.Write([]string{
		"text", "sentiment", "score", "confidence", "rating", "product",
		"source", "synthetic", "strengths", "weaknesses", "actionable_steps",
	}); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}

	for _, r := range reviews {
		rating := ""
		if r.Rating > 0 {
			rating = strconv.FormatFloat(r.Rating, 'f', -1, 64)
		}
		row := []string{
			r.Text,
			r.Verdict.Sentiment,
			strconv.FormatFloat(r.Verdict.Score, 'f', 4, 64),
			strconv.FormatFloat(r.Verdict.Confidence, 'f', 2, 64),
			rating,
			r.Product,
			r.Source,
			strconv.FormatBool(r.Synthetic),
			strings.Join(r.Verdict.Strengths, " | "),
			strings.Join(r.Verdict.Weaknesses, " | "),
			strings.Join(r.Verdict.Suggestions, "\n"),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}

// mention is one entry of the mentions list consumed by visualization.
type mention struct {
	Source         string  `json:"source"`
	Type           string  `json:"type"`
	Text           string  `json:"text"`
	Sentiment      string  `json:"sentiment"`
	SentimentScore float64 `json:"sentiment_score"`
	Product        string  `json:"product,omitempty"`
	Rating         float64 `json:"rating,omitempty"`
	Date           string  `json:"date,omitempty"`
}

func (e *CSVExporter) writeMentions(path string, reviews []models.ClassifiedReview) error {
	mentions := make([]mention, 0, len(reviews))
	for _, r := range reviews {
		m := mention{
			Source:         r.Source,
			Type:           "review",
			Text:           r.Text,
			Sentiment:      r.Verdict.Sentiment,
			SentimentScore: r.Verdict.Score,
			Product:        r.Product,
			Rating:         r.Rating,
		}
		if !r.Date.IsZero() {
			m.Date = r.Date.Format(time.RFC3339)
		} else if r.DateText != "" {
			m.Date = r.DateText
		}
		mentions = append(mentions, m)
	}

	return writeJSON(path, mentions)
}

func (e *CSVExporter) writeSummary(path string, summary *models.RunSummary) error {
	payload := map[string]interface{}{
		"run_id":        summary.RunID,
		"product":       summary.Product,
		"source":        summary.Source,
		"total_reviews": summary.TotalReviews,
		"sentiment_distribution": map[string]int{
			"positive": summary.PositiveCount,
			"neutral":  summary.NeutralCount,
			"negative": summary.NegativeCount,
		},
		"average_score": summary.AverageScore,
		"timestamp":     summary.Timestamp.Format("2006-01-02 15:04:05"),
		"insights":      summary.Insights,
	}

	return writeJSON(path, payload)
}

func writeJSON(path string, v interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("json: create file %q: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("json: encode %q: %w", path, err)
	}
	return nil
}
