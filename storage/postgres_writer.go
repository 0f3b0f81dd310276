package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/jeswanthrajan/sentiment-analysis/models"
	"github.com/jeswanthrajan/sentiment-analysis/utils"
)

// PostgresWriter persists analysis runs and their classified reviews
// to PostgreSQL.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string, logger *logrus.Logger) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	retry := &utils.RetryConfig{MaxAttempts: 10, BaseDelay: 2 * time.Second, Logger: logger}
	if err := retry.Do("postgres-ping", db.Ping); err != nil {
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS analysis_runs (
			run_id         UUID PRIMARY KEY,
			product        TEXT         NOT NULL DEFAULT '',
			source         VARCHAR(50)  NOT NULL,
			total_reviews  INT          NOT NULL DEFAULT 0,
			positive_count INT          NOT NULL DEFAULT 0,
			neutral_count  INT          NOT NULL DEFAULT 0,
			negative_count INT          NOT NULL DEFAULT 0,
			average_score  NUMERIC(5,4) NOT NULL DEFAULT 0,
			created_at     TIMESTAMPTZ  NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS reviews (
			id         SERIAL PRIMARY KEY,
			run_id     UUID         NOT NULL REFERENCES analysis_runs(run_id),
			review_id  TEXT         NOT NULL DEFAULT '',
			text       TEXT         NOT NULL,
			rating     NUMERIC(4,2) NOT NULL DEFAULT 0,
			product    TEXT         NOT NULL DEFAULT '',
			source     VARCHAR(50)  NOT NULL,
			synthetic  BOOLEAN      NOT NULL DEFAULT FALSE,
			sentiment  VARCHAR(20)  NOT NULL,
			score      NUMERIC(5,4) NOT NULL,
			confidence NUMERIC(5,4) NOT NULL,
			review_date TIMESTAMPTZ,
			created_at TIMESTAMPTZ  NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_reviews_run_id    ON reviews(run_id);
		CREATE INDEX IF NOT EXISTS idx_reviews_sentiment ON reviews(sentiment);
		CREATE INDEX IF NOT EXISTS idx_reviews_rating    ON reviews(rating);
	`)
	return err
}

// WriteRun stores the run summary row and batch-inserts its reviews.
func (pw *PostgresWriter) WriteRun(summary *models.RunSummary, reviews []models.ClassifiedReview) error {
	_, err := pw.db.Exec(`
		INSERT INTO analysis_runs
			(run_id, product, source, total_reviews, positive_count, neutral_count, negative_count, average_score)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`, summary.RunID, summary.Product, summary.Source, summary.TotalReviews,
		summary.PositiveCount, summary.NeutralCount, summary.NegativeCount, summary.AverageScore)
	if err != nil {
		return fmt.Errorf("postgres: insert run: %w", err)
	}

	const batchSize = 50
	for i := 0; i < len(reviews); i += batchSize {
		end := i + batchSize
		if end > len(reviews) {
			end = len(reviews)
		}
		if err := pw.insertBatch(summary.RunID, reviews[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (pw *PostgresWriter) insertBatch(runID string, batch []models.ClassifiedReview) error {
	const cols = 11
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*cols)

	for idx, r := range batch {
		base := idx * cols
		placeholders := make([]string, cols)
		for p := 0; p < cols; p++ {
			placeholders[p] = fmt.Sprintf("$%d", base+p+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")

		var reviewDate interface{}
		if !r.Date.IsZero() {
			reviewDate = r.Date
		}
		valueArgs = append(valueArgs,
			runID, r.ReviewID, r.Text, r.Rating, r.Product, r.Source, r.Synthetic,
			r.Verdict.Sentiment, r.Verdict.Score, r.Verdict.Confidence, reviewDate)
	}

	query := fmt.Sprintf(`
		INSERT INTO reviews (run_id, review_id, text, rating, product, source, synthetic, sentiment, score, confidence, review_date)
		VALUES %s
	`, strings.Join(valueStrings, ","))

	_, err := pw.db.Exec(query, valueArgs...)
	if err != nil {
		return fmt.Errorf("postgres: insert reviews: %w", err)
	}
	return nil
}

// FetchRun retrieves the stored reviews of a run, most recent first.
func (pw *PostgresWriter) FetchRun(runID string) ([]models.ClassifiedReview, error) {
	rows, err := pw.db.Query(`
		SELECT review_id, text, rating, product, source, synthetic, sentiment, score, created_at
		FROM reviews
		WHERE run_id = $1
		ORDER BY id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch run: %w", err)
	}
	defer rows.Close()

	var reviews []models.ClassifiedReview
	for rows.Next() {
		var r models.ClassifiedReview
		var createdAt time.Time
		if err := rows.Scan(
			&r.ReviewID, &r.Text, &r.Rating, &r.Product, &r.Source, &r.Synthetic,
			&r.Verdict.Sentiment, &r.Verdict.Score, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}
