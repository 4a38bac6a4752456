package charts

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bankreviews/model"
	"bankreviews/store"
)

func testRenderer(t *testing.T) *Renderer {
	t.Helper()
	return NewRenderer(t.TempDir(), "")
}

func assertPNG(t *testing.T, path string) {
	t.Helper()
	require.NotEmpty(t, path)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestSentimentComparison(t *testing.T) {
	r := testRenderer(t)
	path, err := r.SentimentComparison(map[string]map[string]int{
		"CBE": {model.SentimentPositive: 120, model.SentimentNegative: 80},
		"BOA": {model.SentimentPositive: 60, model.SentimentNegative: 140},
	})
	require.NoError(t, err)
	assertPNG(t, path)
}

func TestSentimentComparisonEmpty(t *testing.T) {
	r := testRenderer(t)
	path, err := r.SentimentComparison(nil)
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestAverageRating(t *testing.T) {
	r := testRenderer(t)
	path, err := r.AverageRating([]store.BankComparison{
		{Bank: "CBE", AvgRating: 4.1},
		{Bank: "BOA", AvgRating: 2.9},
		{Bank: "Dashen", AvgRating: 3.6},
	})
	require.NoError(t, err)
	assertPNG(t, path)
}

func TestPainPointsCapsAtFive(t *testing.T) {
	r := testRenderer(t)
	counts := []store.ThemeCount{
		{Bank: "CBE", Theme: "Login & Access Issues", Count: 40},
		{Bank: "CBE", Theme: "Transaction Problems", Count: 30},
		{Bank: "CBE", Theme: "App Performance & Bugs", Count: 20},
		{Bank: "CBE", Theme: "Customer Support", Count: 15},
		{Bank: "CBE", Theme: "Network & Connectivity", Count: 10},
		{Bank: "CBE", Theme: "Features & Functionality", Count: 5},
		{Bank: "BOA", Theme: "Customer Support", Count: 99},
	}
	path, err := r.PainPoints("CBE", counts)
	require.NoError(t, err)
	assertPNG(t, path)

	// A bank with no matching counts renders nothing.
	path, err = r.PainPoints("Dashen", counts)
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestRatingDonut(t *testing.T) {
	r := testRenderer(t)
	path, err := r.RatingDonut("CBE", map[int]int{1: 30, 2: 10, 4: 25, 5: 60})
	require.NoError(t, err)
	assertPNG(t, path)

	path, err = r.RatingDonut("BOA", nil)
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestMonthlyTrends(t *testing.T) {
	r := testRenderer(t)
	path, err := r.MonthlyTrends([]store.MonthlyTrend{
		{Bank: "CBE", Month: "2025-01", PositivePct: 40, Reviews: 100},
		{Bank: "CBE", Month: "2025-02", PositivePct: 55, Reviews: 90},
		{Bank: "BOA", Month: "2025-01", PositivePct: 30, Reviews: 80},
		{Bank: "BOA", Month: "2025-02", PositivePct: 25, Reviews: 70},
	})
	require.NoError(t, err)
	assertPNG(t, path)
}

func TestWordCloudDisabledWithoutFont(t *testing.T) {
	r := testRenderer(t)
	path, err := r.WordCloud("CBE", map[string]int{"crash": 10, "login": 8})
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestWordCloudMissingFont(t *testing.T) {
	r := NewRenderer(t.TempDir(), "/no/such/font.ttf")
	_, err := r.WordCloud("CBE", map[string]int{"crash": 10})
	assert.Error(t, err)
}
