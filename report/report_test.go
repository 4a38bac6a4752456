package report

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"bankreviews/store"
)

func sampleReport() *Report {
	return &Report{
		Comparison: []store.BankComparison{
			{Bank: "CBE", Total: 3, AvgRating: 2.67, PositivePct: 33.3, AvgConfidence: 0.973},
			{Bank: "BOA", Total: 1, AvgRating: 1.00, PositivePct: 0, AvgConfidence: 0.97},
		},
		PainPoints: []store.ThemeCount{
			{Bank: "CBE", Theme: "Login & Access Issues", Count: 2},
		},
		Trend: []store.MonthlyTrend{
			{Bank: "CBE", Month: "2025-01", PositivePct: 0, Reviews: 2},
			{Bank: "CBE", Month: "2025-02", PositivePct: 100, Reviews: 1},
		},
		Crosstab: []store.RatingSentiment{
			{Rating: 1, Label: "NEGATIVE", Count: 2, AvgConfidence: 0.975},
		},
		OneStar: []store.ThemeCount{
			{Bank: "CBE", Theme: "Login & Access Issues", Count: 1},
		},
	}
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	sampleReport().Print(&buf)

	out := buf.String()
	assert.Contains(t, out, "Bank Performance Comparison")
	assert.Contains(t, out, "CBE")
	assert.Contains(t, out, "Login & Access Issues")
	assert.Contains(t, out, "2025-02")
}

func TestExportXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, sampleReport().ExportXLSX(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.ElementsMatch(t, []string{
		"Comparison", "Pain Points", "Monthly Trend", "Rating vs Sentiment", "1-Star Themes",
	}, sheets)

	bank, err := f.GetCellValue("Comparison", "A2")
	require.NoError(t, err)
	assert.Equal(t, "CBE", bank)

	theme, err := f.GetCellValue("Pain Points", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Login & Access Issues", theme)
}
