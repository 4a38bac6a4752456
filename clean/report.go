package clean

import (
	"fmt"
	"io"
	"sort"
	"unicode/utf8"

	"bankreviews/model"
)

// KPI thresholds from the project brief.
const (
	kpiMinReviews    = 1200
	kpiMaxMissingPct = 5.0
)

// QualityReport summarizes a cleaned dataset.
type QualityReport struct {
	Total      int
	PerBank    map[string]int
	RatingDist map[int]int
	DateMin    string
	DateMax    string
	AvgLength  float64
	MinLength  int
	MaxLength  int
	// MissingPct per column name (review_text, date, bank).
	MissingPct map[string]float64
}

// BuildReport computes dataset quality metrics over cleaned reviews.
func BuildReport(reviews []model.Review) *QualityReport {
	rep := &QualityReport{
		PerBank:    make(map[string]int),
		RatingDist: make(map[int]int),
		MissingPct: make(map[string]float64),
		Total:      len(reviews),
	}
	if len(reviews) == 0 {
		return rep
	}

	var lengthSum int
	missing := map[string]int{"review_text": 0, "date": 0, "bank": 0}
	rep.MinLength = utf8.RuneCountInString(reviews[0].Text)

	for _, r := range reviews {
		rep.PerBank[r.Bank]++
		rep.RatingDist[r.Rating]++

		n := utf8.RuneCountInString(r.Text)
		lengthSum += n
		if n < rep.MinLength {
			rep.MinLength = n
		}
		if n > rep.MaxLength {
			rep.MaxLength = n
		}

		if r.Text == "" {
			missing["review_text"]++
		}
		if r.Date == "" {
			missing["date"]++
		} else {
			if rep.DateMin == "" || r.Date < rep.DateMin {
				rep.DateMin = r.Date
			}
			if r.Date > rep.DateMax {
				rep.DateMax = r.Date
			}
		}
		if r.Bank == "" {
			missing["bank"]++
		}
	}
	rep.AvgLength = float64(lengthSum) / float64(len(reviews))
	for col, n := range missing {
		rep.MissingPct[col] = float64(n) * 100 / float64(len(reviews))
	}
	return rep
}

// MaxMissingPct returns the worst missing-data percentage across columns.
func (r *QualityReport) MaxMissingPct() float64 {
	var max float64
	for _, pct := range r.MissingPct {
		if pct > max {
			max = pct
		}
	}
	return max
}

// KPIMet reports whether the dataset meets the volume and completeness
// targets.
func (r *QualityReport) KPIMet() bool {
	return r.Total >= kpiMinReviews && r.MaxMissingPct() < kpiMaxMissingPct
}

// Print writes a human-readable quality report.
func (r *QualityReport) Print(w io.Writer) {
	fmt.Fprintf(w, "Total reviews: %d\n", r.Total)

	fmt.Fprintln(w, "Reviews per bank:")
	for _, bank := range sortedKeys(r.PerBank) {
		fmt.Fprintf(w, "  %s: %d\n", bank, r.PerBank[bank])
	}

	fmt.Fprintln(w, "Rating distribution:")
	for rating := 1; rating <= 5; rating++ {
		count := r.RatingDist[rating]
		pct := 0.0
		if r.Total > 0 {
			pct = float64(count) * 100 / float64(r.Total)
		}
		fmt.Fprintf(w, "  %d stars: %d reviews (%.1f%%)\n", rating, count, pct)
	}

	fmt.Fprintf(w, "Date range: %s to %s\n", r.DateMin, r.DateMax)
	fmt.Fprintf(w, "Review length: avg %.1f, min %d, max %d\n", r.AvgLength, r.MinLength, r.MaxLength)

	fmt.Fprintln(w, "Missing data:")
	for _, col := range sortedKeys(r.MissingPct) {
		fmt.Fprintf(w, "  %s: %.2f%%\n", col, r.MissingPct[col])
	}

	fmt.Fprintf(w, "KPI total >= %d: %v\n", kpiMinReviews, r.Total >= kpiMinReviews)
	fmt.Fprintf(w, "KPI missing < %.0f%%: %v\n", kpiMaxMissingPct, r.MaxMissingPct() < kpiMaxMissingPct)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
