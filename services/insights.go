package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/jeswanthrajan/sentiment-analysis/llm"
	"github.com/jeswanthrajan/sentiment-analysis/models"
)

// maxPromptReviews caps how many reviews are enumerated in the
// provider prompt to stay inside token limits.
const maxPromptReviews = 20

// InsightService turns a classified batch into an aggregate report.
// It cascades between a generative-provider call and a deterministic
// heuristic; like the classifier, it never fails.
type InsightService struct {
	provider *llm.Client
	logger   *logrus.Logger
}

// NewInsightService creates an InsightService. A nil provider means
// only the heuristic tier runs.
func NewInsightService(provider *llm.Client, logger *logrus.Logger) *InsightService {
	return &InsightService{provider: provider, logger: logger}
}

// Generate produces the insight report for a batch. An empty batch
// yields the fixed "not enough data" report without any provider call.
func (s *InsightService) Generate(ctx context.Context, reviews []models.ClassifiedReview, productName string) *models.InsightReport {
	if len(reviews) == 0 {
		return &models.InsightReport{
			KeyStrengths:        []string{},
			KeyWeaknesses:       []string{},
			Suggestions:         []string{},
			CompetitiveAdvtg:    "Not enough data",
			SatisfactionSummary: "Not enough data",
			ActionableInsights:  []models.ActionableInsight{},
		}
	}

	if s.provider != nil {
		report, err := s.generateWithProvider(ctx, reviews, productName)
		if err == nil {
			return report
		}
		s.logger.Warnf("[insights] provider tier failed: %v — using heuristic", err)
	}

	return s.generateHeuristic(reviews)
}

const insightInstructions = "You are a brand strategy expert. " +
	"Respond with a single JSON object and no other commentary."

func insightPrompt(reviews []models.ClassifiedReview, productName string) string {
	var summaries []string
	for i, review := range reviews {
		if i == maxPromptReviews {
			break
		}
		ratingStr := ""
		if review.Rating > 0 {
			ratingStr = fmt.Sprintf(", Rating: %g/5", review.Rating)
		}
		summaries = append(summaries, fmt.Sprintf("Review %d (Sentiment: %s, Score: %.2f%s): %s",
			i+1, review.Verdict.Sentiment, review.Verdict.Score, ratingStr, review.Text))
	}

	return fmt.Sprintf(`Analyze these reviews for %s and provide actionable insights.

REVIEWS:
%s

Based on these reviews, provide a strategic analysis in the following JSON format:
{
    "key_strengths": ["List the top 3-5 strengths of the product based on positive reviews"],
    "key_weaknesses": ["List the top 3-5 weaknesses or issues mentioned in negative reviews"],
    "improvement_suggestions": ["Provide 3-5 specific, actionable suggestions to improve the product or service"],
    "competitive_advantage": "Identify the main competitive advantage this product has based on reviews",
    "customer_satisfaction_summary": "Summarize the overall customer satisfaction in 1-2 sentences",
    "actionable_insights": [
        {
            "insight": "A specific insight about the product or customer perception",
            "action": "A specific action the company should take based on this insight",
            "priority": "high/medium/low",
            "impact_area": "product/marketing/customer service/etc."
        }
    ]
}`, productName, strings.Join(summaries, "\n"))
}

func (s *InsightService) generateWithProvider(ctx context.Context, reviews []models.ClassifiedReview, productName string) (*models.InsightReport, error) {
	content, err := s.provider.Chat(ctx, insightInstructions, insightPrompt(reviews, productName))
	if err != nil {
		return nil, err
	}

	span, found := llm.ExtractJSON(content)
	if !found {
		return nil, fmt.Errorf("no JSON object in provider response")
	}
	if !llm.HasKeys(span, "key_strengths", "key_weaknesses", "customer_satisfaction_summary") {
		return nil, fmt.Errorf("provider response missing required keys")
	}

	var report models.InsightReport
	if err := json.Unmarshal([]byte(span), &report); err != nil {
		return nil, fmt.Errorf("decode provider response: %w", err)
	}
	return &report, nil
}

// generateHeuristic is the deterministic, always-available tier.
func (s *InsightService) generateHeuristic(reviews []models.ClassifiedReview) *models.InsightReport {
	positiveCount := 0
	var allStrengths, allWeaknesses []string

	for _, review := range reviews {
		if review.Verdict.Sentiment == models.SentimentPositive {
			positiveCount++
		}
		allStrengths = append(allStrengths, review.Verdict.Strengths...)
		allWeaknesses = append(allWeaknesses, review.Verdict.Weaknesses...)
	}

	positivePercentage := float64(positiveCount) / float64(len(reviews)) * 100

	keyStrengths := dedupeKeep(allStrengths, 5)
	keyWeaknesses := dedupeKeep(allWeaknesses, 5)

	suggestions := []string{}
	for i, weakness := range keyWeaknesses {
		if i == 3 {
			break
		}
		suggestions = append(suggestions, "Address issue: "+weakness)
	}

	var satisfaction string
	switch {
	case positivePercentage >= 70:
		satisfaction = "Customers are generally very satisfied with the product."
	case positivePercentage >= 50:
		satisfaction = "Customers are moderately satisfied, but there are some areas for improvement."
	default:
		satisfaction = "Customer satisfaction is low. Immediate attention to product issues is recommended."
	}

	advantage := "Not identified"
	if len(keyStrengths) > 0 {
		advantage = keyStrengths[0]
	}

	focus := "addressing negative feedback"
	priority := "high"
	if positivePercentage >= 50 {
		focus = "maintaining positive aspects"
		priority = "medium"
	}
	insights := []models.ActionableInsight{
		{
			Insight:    "Customer sentiment analysis",
			Action:     "Focus on " + focus,
			Priority:   priority,
			ImpactArea: "product",
		},
	}

	if len(keyStrengths) > 0 {
		insights = append(insights, models.ActionableInsight{
			Insight:    "Key strength: " + keyStrengths[0],
			Action:     "Highlight this strength in marketing materials",
			Priority:   "medium",
			ImpactArea: "marketing",
		})
	}
	if len(keyWeaknesses) > 0 {
		insights = append(insights, models.ActionableInsight{
			Insight:    "Key weakness: " + keyWeaknesses[0],
			Action:     "Develop improvement plan to address this issue",
			Priority:   "high",
			ImpactArea: "product development",
		})
	}

	return &models.InsightReport{
		KeyStrengths:        keyStrengths,
		KeyWeaknesses:       keyWeaknesses,
		Suggestions:         suggestions,
		CompetitiveAdvtg:    advantage,
		SatisfactionSummary: satisfaction,
		ActionableInsights:  insights,
	}
}

// dedupeKeep removes duplicates preserving first-appearance order and
// keeps at most max entries. Deterministic on purpose.
func dedupeKeep(values []string, max int) []string {
	seen := make(map[string]struct{}, len(values))
	result := []string{}
	for _, v := range values {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
		if len(result) == max {
			break
		}
	}
	return result
}

// Print renders the run summary and insight report to the terminal.
func (s *InsightService) Print(summary *models.RunSummary) {
	r := summary.Insights
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  📊 REVIEW SENTIMENT INSIGHTS\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Run ID          : %s\n", summary.RunID)
	fmt.Printf("  Product         : %s\n", summary.Product)
	fmt.Printf("  Total reviews   : \033[1m%d\033[0m\n", summary.TotalReviews)
	fmt.Printf("  Positive        : \033[1;32m%d\033[0m\n", summary.PositiveCount)
	fmt.Printf("  Neutral         : \033[1;33m%d\033[0m\n", summary.NeutralCount)
	fmt.Printf("  Negative        : \033[1;31m%d\033[0m\n", summary.NegativeCount)
	fmt.Printf("  Average score   : \033[1m%.2f\033[0m\n", summary.AverageScore)
	fmt.Println()

	fmt.Printf("\033[1;33m  Key Strengths\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.KeyStrengths) == 0 {
		fmt.Printf("  None identified\n")
	}
	for i, strength := range r.KeyStrengths {
		fmt.Printf("  \033[1m%d.\033[0m %s\n", i+1, truncate(strength, 70))
	}
	fmt.Println()

	fmt.Printf("\033[1;33m  Key Weaknesses\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.KeyWeaknesses) == 0 {
		fmt.Printf("  None identified\n")
	}
	for i, weakness := range r.KeyWeaknesses {
		fmt.Printf("  \033[1m%d.\033[0m %s\n", i+1, truncate(weakness, 70))
	}
	fmt.Println()

	fmt.Printf("\033[1;33m  Customer Satisfaction\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  %s\n", r.SatisfactionSummary)
	fmt.Printf("  Competitive advantage: %s\n", truncate(r.CompetitiveAdvtg, 60))
	fmt.Println()

	fmt.Printf("\033[1;33m  Actionable Insights\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.ActionableInsights) == 0 {
		fmt.Printf("  None\n")
	}
	for _, insight := range r.ActionableInsights {
		fmt.Printf("  [%s/%s] %s\n", insight.Priority, insight.ImpactArea, truncate(insight.Insight, 60))
		fmt.Printf("         → %s\n", truncate(insight.Action, 64))
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
