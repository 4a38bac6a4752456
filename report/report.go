// Package report assembles the business-insight queries into a printed
// summary and an Excel workbook.
package report

import (
	"context"
	"fmt"
	"io"

	"bankreviews/store"
)

// Report holds the results of every business query.
type Report struct {
	Comparison []store.BankComparison
	PainPoints []store.ThemeCount
	Trend      []store.MonthlyTrend
	Crosstab   []store.RatingSentiment
	OneStar    []store.ThemeCount
}

// Build runs all queries against the store.
func Build(ctx context.Context, s *store.Store) (*Report, error) {
	var (
		rep Report
		err error
	)
	if rep.Comparison, err = s.CompareBanks(ctx); err != nil {
		return nil, fmt.Errorf("bank comparison: %w", err)
	}
	if rep.PainPoints, err = s.PainPointsByBank(ctx); err != nil {
		return nil, fmt.Errorf("pain points: %w", err)
	}
	if rep.Trend, err = s.MonthlySentimentTrend(ctx); err != nil {
		return nil, fmt.Errorf("monthly trend: %w", err)
	}
	if rep.Crosstab, err = s.RatingVsSentiment(ctx); err != nil {
		return nil, fmt.Errorf("rating crosstab: %w", err)
	}
	if rep.OneStar, err = s.OneStarThemes(ctx, 10); err != nil {
		return nil, fmt.Errorf("one-star themes: %w", err)
	}
	return &rep, nil
}

// Print writes the full report as aligned text tables.
func (r *Report) Print(w io.Writer) {
	fmt.Fprintln(w, "== Bank Performance Comparison ==")
	fmt.Fprintf(w, "%-8s %8s %8s %10s %12s\n", "bank", "reviews", "avg", "positive%", "confidence")
	for _, c := range r.Comparison {
		fmt.Fprintf(w, "%-8s %8d %8.2f %9.1f%% %12.3f\n",
			c.Bank, c.Total, c.AvgRating, c.PositivePct, c.AvgConfidence)
	}

	fmt.Fprintln(w, "\n== Top Pain Points (negative reviews) ==")
	for _, p := range r.PainPoints {
		fmt.Fprintf(w, "%-8s %-30s %d\n", p.Bank, p.Theme, p.Count)
	}

	fmt.Fprintln(w, "\n== Monthly Positive Sentiment ==")
	for _, t := range r.Trend {
		fmt.Fprintf(w, "%-8s %s %6.1f%% (%d reviews)\n", t.Bank, t.Month, t.PositivePct, t.Reviews)
	}

	fmt.Fprintln(w, "\n== Rating vs Sentiment ==")
	for _, c := range r.Crosstab {
		fmt.Fprintf(w, "%d stars  %-9s %5d  avg confidence %.3f\n", c.Rating, c.Label, c.Count, c.AvgConfidence)
	}

	fmt.Fprintln(w, "\n== Most Common Themes in 1-Star Reviews ==")
	for _, p := range r.OneStar {
		fmt.Fprintf(w, "%-8s %-30s %d\n", p.Bank, p.Theme, p.Count)
	}
}
