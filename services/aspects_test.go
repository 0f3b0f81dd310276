package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeswanthrajan/sentiment-analysis/models"
)

func TestExtractAspectsPresence(t *testing.T) {
	aspects := ExtractAspects(
		"The build quality is solid and delivery was quick, but the price is steep.",
		models.SentimentPositive)

	assert.Contains(t, aspects, "quality")
	assert.Contains(t, aspects, "delivery")
	assert.Contains(t, aspects, "price")
	assert.NotContains(t, aspects, "customer service")
}

func TestExtractAspectsInheritSentimentAndScore(t *testing.T) {
	tests := []struct {
		sentiment string
		score     float64
	}{
		{models.SentimentPositive, 0.7},
		{models.SentimentNegative, 0.3},
		{models.SentimentNeutral, 0.5},
	}

	for _, tt := range tests {
		aspects := ExtractAspects("great design", tt.sentiment)
		require.Contains(t, aspects, "design")
		assert.Equal(t, tt.sentiment, aspects["design"].Sentiment)
		assert.Equal(t, tt.score, aspects["design"].Score)
	}
}

func TestExtractAspectsCaseInsensitive(t *testing.T) {
	aspects := ExtractAspects("AMAZING BUILD QUALITY", models.SentimentPositive)
	assert.Contains(t, aspects, "quality")
}

func TestExtractStrengths(t *testing.T) {
	text := "The screen is great. It broke after a week. I love the speakers. " +
		"Battery is fine. Would recommend it. Really happy overall."

	strengths := ExtractStrengths(text)

	require.Len(t, strengths, 3, "capped at 3, in order of appearance")
	assert.Equal(t, "The screen is great", strengths[0])
	assert.Equal(t, "I love the speakers", strengths[1])
	assert.Equal(t, "Would recommend it", strengths[2])
}

func TestExtractWeaknesses(t *testing.T) {
	text := "Setup was easy. The hinge is broken. Support was a problem too."

	weaknesses := ExtractWeaknesses(text)

	require.Len(t, weaknesses, 2)
	assert.Equal(t, "The hinge is broken", weaknesses[0])
}

func TestExtractStrengthsSkipsShortSentences(t *testing.T) {
	// "good." trims to a 4-character sentence and is filtered out.
	strengths := ExtractStrengths("good. meh. fine.")
	assert.Empty(t, strengths)
}
