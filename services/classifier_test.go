package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/jonreiter/govader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeswanthrajan/sentiment-analysis/llm"
	"github.com/jeswanthrajan/sentiment-analysis/models"
)

// keywordOnly builds a cascade reduced to the terminal keyword tier.
func keywordOnly() *Classifier {
	return NewClassifier(nil, true, newTestLogger())
}

func TestKeywordTierPositive(t *testing.T) {
	c := keywordOnly()

	verdict := c.Classify(context.Background(),
		"I absolutely love this product! It's amazing and works perfectly.")

	assert.Equal(t, models.SentimentPositive, verdict.Sentiment)
	assert.Greater(t, verdict.Score, 0.5)
	assert.Equal(t, defaultConfidence, verdict.Confidence)
}

func TestKeywordTierNegative(t *testing.T) {
	c := keywordOnly()

	verdict := c.Classify(context.Background(),
		"This is terrible. I hate it and it doesn't work at all.")

	assert.Equal(t, models.SentimentNegative, verdict.Sentiment)
	assert.Less(t, verdict.Score, 0.5)
}

func TestKeywordTierTieIsNeutral(t *testing.T) {
	c := keywordOnly()

	verdict := c.Classify(context.Background(), "The good parts are balanced by the bad parts")

	assert.Equal(t, models.SentimentNeutral, verdict.Sentiment)
	assert.Equal(t, 0.5, verdict.Score)
}

func TestKeywordTierIdempotent(t *testing.T) {
	c := keywordOnly()
	text := "Great value, happy with it despite a broken latch"

	first := c.Classify(context.Background(), text)
	second := c.Classify(context.Background(), text)

	assert.Equal(t, first, second)
}

func TestKeywordTierMonotonicScore(t *testing.T) {
	c := keywordOnly()

	// Adding positive keywords while holding negatives fixed must
	// never decrease the score.
	base := "The hinge is broken."
	prev := c.Classify(context.Background(), base).Score

	additions := []string{"good", "great", "excellent", "amazing", "love"}
	text := base
	for _, word := range additions {
		text = text + " Also " + word + "."
		score := c.Classify(context.Background(), text).Score
		assert.GreaterOrEqual(t, score, prev, "score decreased after adding %q", word)
		prev = score
	}
}

func TestKeywordScoreCapped(t *testing.T) {
	c := keywordOnly()

	// All ten positive keywords present, zero negative: score is
	// 0.5 + min(0.5, 10/10) = 1.0 and never above.
	text := strings.Join(positiveKeywords, " ")
	verdict := c.Classify(context.Background(), text)

	assert.Equal(t, models.SentimentPositive, verdict.Sentiment)
	assert.InDelta(t, 1.0, verdict.Score, 1e-9)
}

func TestClassifyNeverFailsAndStaysInRange(t *testing.T) {
	c := keywordOnly()

	inputs := []string{
		"plain text with no keywords whatsoever",
		"!!!???",
		"love hate love hate",
		strings.Repeat("mediocre ", 200),
	}
	for _, text := range inputs {
		verdict := c.Classify(context.Background(), text)

		assert.Contains(t,
			[]string{models.SentimentPositive, models.SentimentNeutral, models.SentimentNegative},
			verdict.Sentiment)
		assert.GreaterOrEqual(t, verdict.Score, 0.0)
		assert.LessOrEqual(t, verdict.Score, 1.0)
		assert.NotNil(t, verdict.Aspects)
		assert.NotEmpty(t, verdict.Summary)
	}
}

func TestLexiconTierThresholds(t *testing.T) {
	tier := &lexiconTier{analyzer: govader.NewSentimentIntensityAnalyzer()}

	verdict, err := tier.classify(context.Background(),
		"I love this, it is wonderful and works great")
	require.NoError(t, err)
	assert.Equal(t, models.SentimentPositive, verdict.Sentiment)
	assert.Greater(t, verdict.Score, 0.5)

	verdict, err = tier.classify(context.Background(),
		"This is horrible, I hate it and regret buying it")
	require.NoError(t, err)
	assert.Equal(t, models.SentimentNegative, verdict.Sentiment)
	assert.Less(t, verdict.Score, 0.5)
}

func TestCascadeFallsThroughToKeywordTier(t *testing.T) {
	// Lexicon disabled and no provider: the keyword tier must still
	// produce a full verdict.
	c := NewClassifier(nil, true, newTestLogger())
	require.Len(t, c.tiers, 1)

	verdict := c.Classify(context.Background(), "Excellent quality and fast delivery")
	assert.Equal(t, models.SentimentPositive, verdict.Sentiment)
	assert.Contains(t, verdict.Aspects, "quality")
	assert.Contains(t, verdict.Aspects, "delivery")
}

func TestProviderResponseValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		valid   bool
	}{
		{"well formed", `{"sentiment": "POSITIVE", "sentiment_score": 0.92}`, true},
		{"fenced", "```json\n{\"sentiment\": \"neutral\", \"sentiment_score\": 0.5}\n```", true},
		{"missing score", `{"sentiment": "POSITIVE"}`, false},
		{"no json", "the review is positive", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			span, found := llm.ExtractJSON(tt.content)
			valid := found && llm.HasKeys(span, "sentiment", "sentiment_score")
			assert.Equal(t, tt.valid, valid)
		})
	}
}

func TestNormalizeSentiment(t *testing.T) {
	for _, in := range []string{"POSITIVE", "Positive", " positive "} {
		s, ok := normalizeSentiment(in)
		require.True(t, ok, "input %q", in)
		assert.Equal(t, models.SentimentPositive, s)
	}

	_, ok := normalizeSentiment("mixed")
	assert.False(t, ok)
}

func ExampleClassifier_Classify() {
	c := NewClassifier(nil, true, newTestLogger())
	verdict := c.Classify(context.Background(), "I love it, best purchase ever")
	fmt.Println(verdict.Sentiment)
	// Output: positive
}
