package services

import (
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/jeswanthrajan/sentiment-analysis/models"
)

// Column alias lists, tried in order. The text column is required;
// everything else is optional.
var (
	textColumnNames    = []string{"text", "review_text", "comment", "feedback"}
	ratingColumnNames  = []string{"rating", "stars", "score"}
	productColumnNames = []string{"product", "product_name"}
	dateColumnNames    = []string{"date", "review_date"}
)

// minTextLength is the trimmed-character floor below which a row is
// silently skipped rather than classified.
const minTextLength = 5

// Inferencer locates the text/rating/product/date columns in an
// arbitrary table and normalizes its rows into canonical reviews.
type Inferencer struct {
	logger *logrus.Logger
}

// NewInferencer creates an Inferencer with the given logger.
func NewInferencer(logger *logrus.Logger) *Inferencer {
	return &Inferencer{logger: logger}
}

// Infer resolves the table's columns and returns one canonical review
// per qualifying row. It fails with models.SchemaError only when no
// usable text column exists; every other problem degrades to a
// dropped field or skipped row.
func (inf *Inferencer) Infer(table *models.Table) ([]models.CanonicalReview, error) {
	if inf.isWideFormat(table) {
		inf.logger.Info("[inferencer] detected wide review format (product_name/review_text/rating)")
	}

	textColumn := inf.resolveTextColumn(table)
	if textColumn == "" {
		return nil, &models.SchemaError{
			Reason: "no suitable text column found; ensure the file has a column with review text",
		}
	}
	inf.logger.Infof("[inferencer] using column %q as text column", textColumn)

	ratingColumn := firstPresent(table.Columns, ratingColumnNames)
	productColumn := firstPresent(table.Columns, productColumnNames)
	dateColumn := firstPresent(table.Columns, dateColumnNames)

	reviews := make([]models.CanonicalReview, 0, len(table.Rows))
	skipped := 0

	for i := range table.Rows {
		text := strings.TrimSpace(table.Cell(i, textColumn))
		if len(text) < minTextLength {
			skipped++
			continue
		}

		review := models.CanonicalReview{
			Text:   text,
			Source: models.SourceUploadedFile,
		}

		if ratingColumn != "" {
			if rating, err := strconv.ParseFloat(strings.TrimSpace(table.Cell(i, ratingColumn)), 64); err == nil {
				review.Rating = rating
			}
			// coercion failure drops the rating, never the row
		}
		if productColumn != "" {
			review.Product = strings.TrimSpace(table.Cell(i, productColumn))
		}
		if dateColumn != "" {
			review.DateText = strings.TrimSpace(table.Cell(i, dateColumn))
		}

		reviews = append(reviews, review)
	}

	inf.logger.Infof("[inferencer] %d rows → %d reviews (skipped %d short/empty)",
		len(table.Rows), len(reviews), skipped)
	return reviews, nil
}

// isWideFormat reports whether the table exposes the known wide review
// shape. In that case review_text feeds the generic text slot via the
// normal alias order; the original column is left untouched.
func (inf *Inferencer) isWideFormat(table *models.Table) bool {
	return hasColumn(table.Columns, "product_name") &&
		hasColumn(table.Columns, "review_text") &&
		hasColumn(table.Columns, "rating")
}

// resolveTextColumn tries the exact alias names in priority order,
// then falls back to the first text-typed column whose average value
// length exceeds 10 characters.
func (inf *Inferencer) resolveTextColumn(table *models.Table) string {
	if name := firstPresent(table.Columns, textColumnNames); name != "" {
		return name
	}

	for _, column := range table.Columns {
		if isNumericColumn(table, column) {
			continue
		}
		if averageLength(table, column) > 10 {
			inf.logger.Infof("[inferencer] no known text column name; falling back to %q by content", column)
			return column
		}
	}
	return ""
}

// isNumericColumn reports whether every non-empty cell parses as a
// number — the stand-in for a numeric column type in a stringly table.
func isNumericColumn(table *models.Table, column string) bool {
	nonEmpty := 0
	for i := range table.Rows {
		v := strings.TrimSpace(table.Cell(i, column))
		if v == "" {
			continue
		}
		nonEmpty++
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			return false
		}
	}
	return nonEmpty > 0
}

func averageLength(table *models.Table, column string) float64 {
	if len(table.Rows) == 0 {
		return 0
	}
	total := 0
	for i := range table.Rows {
		total += len(table.Cell(i, column))
	}
	return float64(total) / float64(len(table.Rows))
}

func firstPresent(columns []string, candidates []string) string {
	for _, candidate := range candidates {
		if hasColumn(columns, candidate) {
			return candidate
		}
	}
	return ""
}

func hasColumn(columns []string, name string) bool {
	for _, c := range columns {
		if c == name {
			return true
		}
	}
	return false
}
