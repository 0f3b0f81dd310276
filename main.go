package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jeswanthrajan/sentiment-analysis/config"
	"github.com/jeswanthrajan/sentiment-analysis/llm"
	"github.com/jeswanthrajan/sentiment-analysis/models"
	"github.com/jeswanthrajan/sentiment-analysis/scraper"
	"github.com/jeswanthrajan/sentiment-analysis/scraper/amazon"
	"github.com/jeswanthrajan/sentiment-analysis/scraper/flipkart"
	"github.com/jeswanthrajan/sentiment-analysis/services"
	"github.com/jeswanthrajan/sentiment-analysis/storage"
	"github.com/jeswanthrajan/sentiment-analysis/tabular"
	"github.com/jeswanthrajan/sentiment-analysis/utils"
)

var bareASIN = regexp.MustCompile(`^[A-Z0-9]{10}$`)

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()

	filePath := flag.String("file", "", "path to a csv/xlsx/xls file of reviews")
	productURL := flag.String("url", "", "Amazon/Flipkart product URL (or a bare ASIN)")
	productName := flag.String("product", "", "product name used in the report")
	count := flag.Int("count", cfg.MaxReviewsPerProduct, "number of reviews to ingest from an external source")
	flag.Parse()

	if *filePath == "" && *productURL == "" {
		fmt.Fprintln(os.Stderr, "usage: provide -file <reviews.csv> or -url <product url>")
		os.Exit(2)
	}

	logger.Info("=== Review Sentiment Analysis starting ===")
	logger.Infof("Config — max reviews: %d | concurrency: %d | delay: %dms",
		cfg.MaxReviewsPerProduct, cfg.MaxConcurrency, cfg.ScrapingDelayMs)

	provider := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, logger)
	classifier := services.NewClassifier(provider, cfg.DisableLexicon, logger)
	pool := utils.NewWorkerPool(cfg.MaxConcurrency, 0)
	analyzer := services.NewAnalyzer(classifier, pool, logger)

	ctx := context.Background()

	var (
		reviews []models.CanonicalReview
		source  string
		name    = *productName
	)

	if *filePath != "" {
		source = models.SourceUploadedFile
		reviews = ingestFile(*filePath, logger)
		if name == "" {
			name = filepath.Base(*filePath)
		}
	} else {
		source = models.SourceExternalSource
		reviews, name = ingestExternal(ctx, cfg, *productURL, name, *count, logger)
	}

	if len(reviews) == 0 {
		logger.Error("No reviews to analyze. Exiting.")
		os.Exit(1)
	}

	logger.Infof("Ingested %d reviews — classifying...", len(reviews))
	classified := analyzer.ClassifyBatch(ctx, reviews)

	insightSvc := services.NewInsightService(provider, logger)
	report := insightSvc.Generate(ctx, classified, name)

	runID := uuid.NewString()
	summary := services.Summarize(runID, name, source, classified, report)

	exporter := storage.NewCSVExporter(cfg.OutputDir)
	if err := exporter.Export(summary, classified); err != nil {
		logger.Errorf("Run export failed: %v", err)
	} else {
		logger.Infof("Run artifacts saved under %s/%s", cfg.OutputDir, runID)
	}

	pgWriter, err := storage.NewPostgresWriter(cfg.DSN(), logger)
	if err != nil {
		logger.Errorf("PostgreSQL unavailable, skipping persistence: %v", err)
	} else {
		defer pgWriter.Close()
		if err := pgWriter.WriteRun(summary, classified); err != nil {
			logger.Errorf("PostgreSQL write failed: %v", err)
		} else {
			logger.Info("Run stored in PostgreSQL (tables: analysis_runs, reviews)")
		}
	}

	insightSvc.Print(summary)

	fmt.Printf("  Done. Artifacts → %s/%s\n\n", cfg.OutputDir, runID)
}

// ingestFile reads and infers an uploaded tabular file. Bad format and
// missing text column are the two user-visible failures here.
func ingestFile(path string, logger *logrus.Logger) []models.CanonicalReview {
	f, err := os.Open(path)
	if err != nil {
		logger.Fatalf("Cannot open %s: %v", path, err)
	}
	defer f.Close()

	table, err := tabular.Read(f, filepath.Ext(path))
	if err != nil {
		logger.Fatalf("Cannot read %s: %v", path, err)
	}
	logger.Infof("Read table: %d columns, %d rows", len(table.Columns), len(table.Rows))

	inferencer := services.NewInferencer(logger)
	reviews, err := inferencer.Infer(table)
	if err != nil {
		logger.Fatalf("%v", err)
	}
	return reviews
}

// ingestExternal picks the review source from the URL shape and runs
// the coordinator against it. Without a usable source the batch is
// fully synthetic — the run still completes.
func ingestExternal(ctx context.Context, cfg *config.Config, productURL, name string, count int, logger *logrus.Logger) ([]models.CanonicalReview, string) {
	if strings.Contains(productURL, "flipkart.com") {
		src := flipkart.New(cfg.ChromeBin, cfg.MaxRetries, logger)
		defer src.Close()

		coordinator := scraper.NewCoordinator(src, cfg.ScrapingDelayMs, logger)
		if name == "" {
			name = productURL
		}
		return coordinator.Ingest(ctx, productURL, count), name
	}

	asin := amazon.ExtractASIN(productURL)
	if asin == "" && bareASIN.MatchString(productURL) {
		asin = productURL
	}
	if asin == "" {
		logger.Warnf("Could not extract an ASIN from %q — using synthetic data", productURL)
		if name == "" {
			name = productURL
		}
		return scraper.SyntheticReviews(productURL, count), name
	}

	if cfg.RapidAPIKey == "" {
		logger.Warnf("No RapidAPI key configured — using synthetic data for %s", asin)
		if name == "" {
			name = "Product " + asin
		}
		return scraper.SyntheticReviews(asin, count), name
	}

	src := amazon.New(cfg.RapidAPIKey, cfg.RapidAPIHost, logger)
	if name == "" {
		title, err := src.ProductTitle(ctx, asin, "US")
		if err != nil {
			logger.Warnf("Product details lookup failed: %v", err)
			name = "Product " + asin
		} else {
			name = title
		}
	}

	coordinator := scraper.NewCoordinator(src, cfg.ScrapingDelayMs, logger)
	return coordinator.Ingest(ctx, asin, count), name
}
