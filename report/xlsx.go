package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// ExportXLSX writes the report as a workbook with one sheet per query.
func (r *Report) ExportXLSX(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := writeSheet(f, "Comparison",
		[]string{"bank", "reviews", "avg_rating", "positive_pct", "avg_confidence"},
		len(r.Comparison), func(i int) []any {
			c := r.Comparison[i]
			return []any{c.Bank, c.Total, c.AvgRating, c.PositivePct, c.AvgConfidence}
		}); err != nil {
		return err
	}
	if err := writeSheet(f, "Pain Points",
		[]string{"bank", "theme", "complaints"},
		len(r.PainPoints), func(i int) []any {
			p := r.PainPoints[i]
			return []any{p.Bank, p.Theme, p.Count}
		}); err != nil {
		return err
	}
	if err := writeSheet(f, "Monthly Trend",
		[]string{"bank", "month", "positive_pct", "reviews"},
		len(r.Trend), func(i int) []any {
			t := r.Trend[i]
			return []any{t.Bank, t.Month, t.PositivePct, t.Reviews}
		}); err != nil {
		return err
	}
	if err := writeSheet(f, "Rating vs Sentiment",
		[]string{"rating", "sentiment", "reviews", "avg_confidence"},
		len(r.Crosstab), func(i int) []any {
			c := r.Crosstab[i]
			return []any{c.Rating, c.Label, c.Count, c.AvgConfidence}
		}); err != nil {
		return err
	}
	if err := writeSheet(f, "1-Star Themes",
		[]string{"bank", "theme", "reviews"},
		len(r.OneStar), func(i int) []any {
			p := r.OneStar[i]
			return []any{p.Bank, p.Theme, p.Count}
		}); err != nil {
		return err
	}

	// Drop the default empty sheet and land on the comparison.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}
	idx, err := f.GetSheetIndex("Comparison")
	if err != nil {
		return err
	}
	f.SetActiveSheet(idx)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, name string, header []string, rows int, row func(i int) []any) error {
	if _, err := f.NewSheet(name); err != nil {
		return err
	}
	for col, h := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(name, cell, h); err != nil {
			return err
		}
	}
	for i := 0; i < rows; i++ {
		for col, v := range row(i) {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(name, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}
