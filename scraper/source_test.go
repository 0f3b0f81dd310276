package scraper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseReviewDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{
			"amazon site prefix",
			"Reviewed in the United States on June 12, 2023",
			time.Date(2023, time.June, 12, 0, 0, 0, 0, time.UTC),
		},
		{
			"bare long form",
			"June 12, 2023",
			time.Date(2023, time.June, 12, 0, 0, 0, 0, time.UTC),
		},
		{
			"day first",
			"12 June 2023",
			time.Date(2023, time.June, 12, 0, 0, 0, 0, time.UTC),
		},
		{
			"iso",
			"2023-06-12",
			time.Date(2023, time.June, 12, 0, 0, 0, 0, time.UTC),
		},
		{
			"flipkart comma form",
			"15 Jan, 2023",
			time.Date(2023, time.January, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			"surrounding whitespace",
			"  2 Jan 2024  ",
			time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseReviewDate(tt.in))
		})
	}
}

func TestParseReviewDateDefaultsToNow(t *testing.T) {
	before := time.Now()
	got := ParseReviewDate("last tuesday, probably")
	after := time.Now()

	assert.False(t, got.Before(before))
	assert.False(t, got.After(after))
}
