package models

import "time"

// Review source tags. Synthetic backfill records additionally carry
// Synthetic=true so downstream consumers can tell them apart.
const (
	SourceUploadedFile   = "uploaded_file"
	SourceExternalSource = "external_source"
)

// Sentiment labels produced by every classifier tier.
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

// Table is an ingested tabular file: an ordered header plus one row of
// string cells per record. It only exists between file parsing and
// schema inference.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Cell returns the value of the named column in the given row, or ""
// if the column is unknown.
func (t *Table) Cell(row int, column string) string {
	for i, c := range t.Columns {
		if c == column && i < len(t.Rows[row]) {
			return t.Rows[row][i]
		}
	}
	return ""
}

// CanonicalReview is the normalized record shape every ingestion path
// (file upload or external source) produces before classification.
// Text is required; everything else is best-effort.
type CanonicalReview struct {
	ReviewID     string
	Text         string
	Title        string
	Rating       float64 // 0 means unknown
	Product      string
	Date         time.Time // zero means unknown
	DateText     string
	ReviewerName string
	Source       string
	Synthetic    bool
}

// AspectSentiment is the per-aspect verdict attached to a review.
type AspectSentiment struct {
	Sentiment string  `json:"sentiment"`
	Score     float64 `json:"score"`
}

// SentimentVerdict is the normalized output of the classifier cascade.
// The shape is identical no matter which tier answered.
type SentimentVerdict struct {
	Sentiment   string                     `json:"sentiment"`
	Score       float64                    `json:"score"`
	Confidence  float64                    `json:"confidence"`
	Aspects     map[string]AspectSentiment `json:"aspects"`
	Summary     string                     `json:"summary"`
	Strengths   []string                   `json:"strengths"`
	Weaknesses  []string                   `json:"weaknesses"`
	Suggestions []string                   `json:"improvement_suggestions"`
}

// ClassifiedReview pairs a canonical review with its one verdict.
type ClassifiedReview struct {
	CanonicalReview
	Verdict SentimentVerdict
}

// ActionableInsight is one prioritized recommendation in an InsightReport.
type ActionableInsight struct {
	Insight    string `json:"insight"`
	Action     string `json:"action"`
	Priority   string `json:"priority"` // high / medium / low
	ImpactArea string `json:"impact_area"`
}

// InsightReport is the aggregate analysis over one classified batch.
// It is regenerated wholesale on every run.
type InsightReport struct {
	KeyStrengths        []string            `json:"key_strengths"`
	KeyWeaknesses       []string            `json:"key_weaknesses"`
	Suggestions         []string            `json:"improvement_suggestions"`
	CompetitiveAdvtg    string              `json:"competitive_advantage"`
	SatisfactionSummary string              `json:"customer_satisfaction_summary"`
	ActionableInsights  []ActionableInsight `json:"actionable_insights"`
}

// RunSummary holds the per-run statistics persisted next to the
// classified rows and the mentions list.
type RunSummary struct {
	RunID         string
	Product       string
	Source        string
	TotalReviews  int
	PositiveCount int
	NeutralCount  int
	NegativeCount int
	AverageScore  float64
	Timestamp     time.Time
	Insights      *InsightReport
}
