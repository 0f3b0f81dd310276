package services

import (
	"strings"

	"github.com/jeswanthrajan/sentiment-analysis/models"
)

// aspectKeywords maps each aspect in the fixed vocabulary to the
// keywords whose presence counts as a mention of that aspect.
var aspectKeywords = map[string][]string{
	"quality":          {"quality", "build", "construction", "durability", "sturdy", "solid"},
	"price":            {"price", "cost", "value", "expensive", "cheap", "affordable", "worth"},
	"performance":      {"performance", "speed", "fast", "slow", "responsive", "lag"},
	"design":           {"design", "look", "style", "appearance", "aesthetic", "beautiful", "ugly"},
	"usability":        {"easy to use", "user friendly", "intuitive", "complicated", "difficult", "simple"},
	"customer service": {"service", "support", "help", "assistance", "representative", "warranty"},
	"delivery":         {"delivery", "shipping", "arrived", "package", "box", "packaging"},
}

var strengthIndicators = []string{
	"good", "great", "excellent", "love", "best", "perfect",
	"recommend", "happy", "satisfied", "like",
}

var weaknessIndicators = []string{
	"bad", "poor", "terrible", "hate", "worst", "disappointed",
	"waste", "unhappy", "broken", "issue", "problem",
}

// ExtractAspects tags every aspect whose keywords appear in the text.
// Detection is presence-only: an emitted aspect inherits the overall
// sentiment verbatim and a fixed score for that polarity.
func ExtractAspects(text, overallSentiment string) map[string]models.AspectSentiment {
	textLower := strings.ToLower(text)
	aspects := make(map[string]models.AspectSentiment)

	score := 0.5
	switch overallSentiment {
	case models.SentimentPositive:
		score = 0.7
	case models.SentimentNegative:
		score = 0.3
	}

	for aspect, keywords := range aspectKeywords {
		for _, keyword := range keywords {
			if strings.Contains(textLower, keyword) {
				aspects[aspect] = models.AspectSentiment{
					Sentiment: overallSentiment,
					Score:     score,
				}
				break
			}
		}
	}

	return aspects
}

// ExtractStrengths returns up to 3 sentences that mention a strength
// indicator, in order of appearance.
func ExtractStrengths(text string) []string {
	return indicatedSentences(text, strengthIndicators)
}

// ExtractWeaknesses returns up to 3 sentences that mention a weakness
// indicator, in order of appearance.
func ExtractWeaknesses(text string) []string {
	return indicatedSentences(text, weaknessIndicators)
}

func indicatedSentences(text string, indicators []string) []string {
	sentences := strings.Split(text, ".")
	var results []string

	for _, sentence := range sentences {
		lower := strings.ToLower(sentence)
		for _, indicator := range indicators {
			if strings.Contains(lower, indicator) {
				clean := strings.TrimSpace(sentence)
				if len(clean) > 5 {
					results = append(results, clean)
				}
				break
			}
		}
		if len(results) == 3 {
			break
		}
	}

	return results
}
