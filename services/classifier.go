package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/sirupsen/logrus"

	"github.com/jeswanthrajan/sentiment-analysis/llm"
	"github.com/jeswanthrajan/sentiment-analysis/models"
)

// defaultConfidence is attached when a tier does not estimate one
// natively (the lexicon and keyword tiers never do).
const defaultConfidence = 0.8

// classifierTier is one rung of the cascade. A tier either produces a
// verdict or errors, in which case the next tier is tried. Tier
// failures are recovered internally and never reach the caller.
type classifierTier interface {
	name() string
	classify(ctx context.Context, text string) (*models.SentimentVerdict, error)
}

// Classifier runs the three-tier sentiment cascade: generative
// provider, lexicon scoring, keyword heuristic. The keyword tier
// cannot fail, so Classify always returns a valid verdict.
type Classifier struct {
	tiers  []classifierTier
	logger *logrus.Logger
}

// NewClassifier assembles the cascade. A nil provider client drops the
// generative tier; disableLexicon drops the lexicon tier. The lexicon
// analyzer is built once here and reused for every text.
func NewClassifier(provider *llm.Client, disableLexicon bool, logger *logrus.Logger) *Classifier {
	var tiers []classifierTier

	if provider != nil {
		tiers = append(tiers, &providerTier{client: provider})
	}
	if !disableLexicon {
		tiers = append(tiers, &lexiconTier{analyzer: govader.NewSentimentIntensityAnalyzer()})
	}
	tiers = append(tiers, &keywordTier{})

	return &Classifier{tiers: tiers, logger: logger}
}

// Classify returns the normalized verdict for one text. Tiers are
// tried in priority order; the first to produce a valid result wins
// and is passed through the common aspect attachment step so the
// output shape is identical regardless of which tier answered.
func (c *Classifier) Classify(ctx context.Context, text string) models.SentimentVerdict {
	for _, tier := range c.tiers {
		verdict, err := tier.classify(ctx, text)
		if err != nil {
			c.logger.Warnf("[classifier] %s tier failed: %v — falling through", tier.name(), err)
			continue
		}

		attachExtras(text, verdict)
		return *verdict
	}

	// Unreachable: the keyword tier never errors. Kept so the
	// compiler sees a return on every path.
	verdict := &models.SentimentVerdict{Sentiment: models.SentimentNeutral, Score: 0.5}
	attachExtras(text, verdict)
	return *verdict
}

// attachExtras fills in whatever the winning tier did not supply:
// aspect mentions, strength/weakness sentences, summary and the
// default confidence.
func attachExtras(text string, v *models.SentimentVerdict) {
	if v.Aspects == nil {
		v.Aspects = ExtractAspects(text, v.Sentiment)
	}
	if v.Strengths == nil {
		v.Strengths = ExtractStrengths(text)
	}
	if v.Weaknesses == nil {
		v.Weaknesses = ExtractWeaknesses(text)
	}
	if v.Suggestions == nil {
		v.Suggestions = []string{}
	}
	if v.Summary == "" {
		v.Summary = fmt.Sprintf("The review expresses %s sentiment overall.", v.Sentiment)
	}
	if v.Confidence == 0 {
		v.Confidence = defaultConfidence
	}
}

// ---------------------------------------------------------------------------
// Tier 1: generative provider

type providerTier struct {
	client *llm.Client
}

func (t *providerTier) name() string { return "provider" }

const classifyInstructions = "You are a product review analyst. " +
	"Respond with a single JSON object and no other commentary."

func classifyPrompt(text string) string {
	return fmt.Sprintf(`Analyze the sentiment of the following product review. Classify it as POSITIVE, NEUTRAL, or NEGATIVE.
Also identify key aspects mentioned in the review and the sentiment towards each aspect.

Review: %s

Provide your response in the following JSON format:
{
    "sentiment": "POSITIVE/NEUTRAL/NEGATIVE",
    "sentiment_score": 0.0 to 1.0,
    "aspects": {
        "aspect1": {"sentiment": "POSITIVE/NEUTRAL/NEGATIVE", "score": 0.0 to 1.0},
        "aspect2": {"sentiment": "POSITIVE/NEUTRAL/NEGATIVE", "score": 0.0 to 1.0}
    },
    "summary": "Brief summary of the review sentiment",
    "strengths": ["List of product strengths mentioned"],
    "weaknesses": ["List of product weaknesses mentioned"],
    "improvement_suggestions": ["Suggestions for improvement if any"]
}`, text)
}

// providerResponse is the raw shape the provider is asked for.
type providerResponse struct {
	Sentiment   string                     `json:"sentiment"`
	Score       float64                    `json:"sentiment_score"`
	Confidence  float64                    `json:"confidence"`
	Aspects     map[string]providerAspect  `json:"aspects"`
	Summary     string                     `json:"summary"`
	Strengths   []string                   `json:"strengths"`
	Weaknesses  []string                   `json:"weaknesses"`
	Suggestions []string                   `json:"improvement_suggestions"`
}

type providerAspect struct {
	Sentiment string  `json:"sentiment"`
	Score     float64 `json:"score"`
}

func (t *providerTier) classify(ctx context.Context, text string) (*models.SentimentVerdict, error) {
	content, err := t.client.Chat(ctx, classifyInstructions, classifyPrompt(text))
	if err != nil {
		return nil, err
	}

	span, found := llm.ExtractJSON(content)
	if !found {
		return nil, fmt.Errorf("no JSON object in provider response")
	}
	if !llm.HasKeys(span, "sentiment", "sentiment_score") {
		return nil, fmt.Errorf("provider response missing required fields")
	}

	var resp providerResponse
	if err := json.Unmarshal([]byte(span), &resp); err != nil {
		return nil, fmt.Errorf("decode provider response: %w", err)
	}

	sentiment, ok := normalizeSentiment(resp.Sentiment)
	if !ok {
		return nil, fmt.Errorf("provider returned unknown sentiment %q", resp.Sentiment)
	}

	verdict := &models.SentimentVerdict{
		Sentiment:   sentiment,
		Score:       clamp01(resp.Score),
		Confidence:  resp.Confidence,
		Summary:     resp.Summary,
		Strengths:   resp.Strengths,
		Weaknesses:  resp.Weaknesses,
		Suggestions: resp.Suggestions,
	}

	if resp.Aspects != nil {
		verdict.Aspects = make(map[string]models.AspectSentiment, len(resp.Aspects))
		for aspect, a := range resp.Aspects {
			s, ok := normalizeSentiment(a.Sentiment)
			if !ok {
				s = sentiment
			}
			verdict.Aspects[strings.ToLower(aspect)] = models.AspectSentiment{
				Sentiment: s,
				Score:     clamp01(a.Score),
			}
		}
	}

	return verdict, nil
}

// ---------------------------------------------------------------------------
// Tier 2: lexicon scoring

type lexiconTier struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func (t *lexiconTier) name() string { return "lexicon" }

func (t *lexiconTier) classify(_ context.Context, text string) (*models.SentimentVerdict, error) {
	compound := t.analyzer.PolarityScores(text).Compound

	sentiment := models.SentimentNeutral
	switch {
	case compound >= 0.05:
		sentiment = models.SentimentPositive
	case compound <= -0.05:
		sentiment = models.SentimentNegative
	}

	return &models.SentimentVerdict{
		Sentiment: sentiment,
		Score:     (compound + 1) / 2,
	}, nil
}

// ---------------------------------------------------------------------------
// Tier 3: keyword heuristic (terminal, never fails)

var positiveKeywords = []string{
	"good", "great", "excellent", "amazing", "love", "best",
	"perfect", "recommend", "happy", "satisfied",
}

var negativeKeywords = []string{
	"bad", "poor", "terrible", "awful", "hate", "worst",
	"disappointed", "waste", "unhappy", "broken",
}

type keywordTier struct{}

func (t *keywordTier) name() string { return "keyword" }

func (t *keywordTier) classify(_ context.Context, text string) (*models.SentimentVerdict, error) {
	textLower := strings.ToLower(text)

	positive := countPresent(textLower, positiveKeywords)
	negative := countPresent(textLower, negativeKeywords)

	sentiment := models.SentimentNeutral
	score := 0.5
	switch {
	case positive > negative:
		sentiment = models.SentimentPositive
		score = 0.5 + min05(float64(positive-negative)/10)
	case negative > positive:
		sentiment = models.SentimentNegative
		score = 0.5 - min05(float64(negative-positive)/10)
	}

	return &models.SentimentVerdict{
		Sentiment: sentiment,
		Score:     score,
	}, nil
}

func countPresent(textLower string, keywords []string) int {
	count := 0
	for _, keyword := range keywords {
		if strings.Contains(textLower, keyword) {
			count++
		}
	}
	return count
}

func min05(f float64) float64 {
	if f > 0.5 {
		return 0.5
	}
	return f
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func normalizeSentiment(s string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case models.SentimentPositive:
		return models.SentimentPositive, true
	case models.SentimentNeutral:
		return models.SentimentNeutral, true
	case models.SentimentNegative:
		return models.SentimentNegative, true
	}
	return "", false
}
