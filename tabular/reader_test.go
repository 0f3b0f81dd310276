package tabular

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeswanthrajan/sentiment-analysis/models"
)

func TestReadCSV(t *testing.T) {
	data := "review_text,rating\nGreat phone,5\nBattery died fast,2\n"

	table, err := Read(strings.NewReader(data), "csv")
	require.NoError(t, err)

	assert.Equal(t, []string{"review_text", "rating"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Great phone", table.Cell(0, "review_text"))
	assert.Equal(t, "2", table.Cell(1, "rating"))
}

func TestReadCSVRaggedRowsPadded(t *testing.T) {
	data := "text,rating,product\nok product here,4\n"

	table, err := Read(strings.NewReader(data), "csv")
	require.NoError(t, err)

	require.Len(t, table.Rows, 1)
	assert.Equal(t, "", table.Cell(0, "product"))
}

func TestReadUnsupportedExtension(t *testing.T) {
	_, err := Read(strings.NewReader("x"), "pdf")

	var formatErr *models.UnsupportedFormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, "pdf", formatErr.Extension)
}

func TestReadExtensionNormalization(t *testing.T) {
	data := "text\nsome review text\n"

	table, err := Read(strings.NewReader(data), ".CSV")
	require.NoError(t, err)
	assert.Len(t, table.Rows, 1)
}

func TestReadEmptyCSV(t *testing.T) {
	_, err := Read(strings.NewReader(""), "csv")
	assert.Error(t, err)
}
