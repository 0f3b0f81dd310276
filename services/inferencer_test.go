package services

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeswanthrajan/sentiment-analysis/models"
	"github.com/jeswanthrajan/sentiment-analysis/utils"
)

func newTestLogger() *logrus.Logger { return utils.NewLogger() }

func TestInferWideFormatAliasesReviewText(t *testing.T) {
	inf := NewInferencer(newTestLogger())
	table := &models.Table{
		Columns: []string{"product_name", "review_text", "rating"},
		Rows: [][]string{
			{"Wireless Earbuds", "Sound quality is fantastic for the price", "5"},
			{"Wireless Earbuds", "Battery barely lasts two hours", "2"},
		},
	}

	reviews, err := inf.Infer(table)
	require.NoError(t, err)
	require.Len(t, reviews, 2)

	assert.Equal(t, "Sound quality is fantastic for the price", reviews[0].Text)
	assert.Equal(t, 5.0, reviews[0].Rating)
	assert.Equal(t, "Wireless Earbuds", reviews[0].Product)
	assert.Equal(t, models.SourceUploadedFile, reviews[0].Source)
}

func TestInferTextColumnPriority(t *testing.T) {
	inf := NewInferencer(newTestLogger())
	table := &models.Table{
		Columns: []string{"feedback", "comment"},
		Rows: [][]string{
			{"from the feedback column", "from the comment column"},
		},
	}

	reviews, err := inf.Infer(table)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "from the comment column", reviews[0].Text)
}

func TestInferContentHeuristicFallback(t *testing.T) {
	inf := NewInferencer(newTestLogger())
	table := &models.Table{
		Columns: []string{"id", "remarks"},
		Rows: [][]string{
			{"1", "This arrived broken and support never answered"},
			{"2", "Honestly better than I expected for the money"},
		},
	}

	reviews, err := inf.Infer(table)
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, "This arrived broken and support never answered", reviews[0].Text)
}

func TestInferNoTextColumnFails(t *testing.T) {
	inf := NewInferencer(newTestLogger())
	table := &models.Table{
		Columns: []string{"id", "qty", "sku"},
		Rows: [][]string{
			{"1", "3", "A1"},
			{"2", "7", "B2"},
		},
	}

	_, err := inf.Infer(table)

	var schemaErr *models.SchemaError
	require.ErrorAs(t, err, &schemaErr)
}

func TestInferSkipsShortRows(t *testing.T) {
	inf := NewInferencer(newTestLogger())
	table := &models.Table{
		Columns: []string{"text"},
		Rows: [][]string{
			{"Great product, works as described"},
			{"ok"},
			{"   "},
			{"Stopped working within a week"},
		},
	}

	reviews, err := inf.Infer(table)
	require.NoError(t, err)
	assert.Len(t, reviews, 2)
}

func TestInferBadRatingDropsValueNotRow(t *testing.T) {
	inf := NewInferencer(newTestLogger())
	table := &models.Table{
		Columns: []string{"text", "stars"},
		Rows: [][]string{
			{"Decent quality overall, would buy again", "four"},
			{"Totally worth the price I paid for it", "4"},
		},
	}

	reviews, err := inf.Infer(table)
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, 0.0, reviews[0].Rating)
	assert.Equal(t, 4.0, reviews[1].Rating)
}

func TestInferOptionalDateColumn(t *testing.T) {
	inf := NewInferencer(newTestLogger())
	table := &models.Table{
		Columns: []string{"text", "review_date"},
		Rows: [][]string{
			{"Shipping was fast and packaging was solid", "2024-03-15"},
		},
	}

	reviews, err := inf.Infer(table)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "2024-03-15", reviews[0].DateText)
}
