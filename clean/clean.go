// Package clean deduplicates and validates scraped reviews before
// analysis. The rules mirror the collection stage's quality gates:
// unique review ids, sane ratings and dates, no near-empty spam rows.
package clean

import (
	"strings"
	"time"
	"unicode/utf8"

	"bankreviews/model"
)

// MinReviewLength is the spam guard: shorter reviews are dropped.
const MinReviewLength = 5

// Stats counts what happened to the input rows.
type Stats struct {
	Input      int
	Duplicates int
	Invalid    int
	TooShort   int
	Output     int
}

// Clean returns the surviving reviews in input order. Duplicate ids keep
// the first occurrence.
func Clean(in []model.Review) ([]model.Review, Stats) {
	stats := Stats{Input: len(in)}
	seen := make(map[string]struct{}, len(in))
	out := make([]model.Review, 0, len(in))

	for _, r := range in {
		if _, dup := seen[r.ID]; r.ID == "" || dup {
			if r.ID == "" {
				stats.Invalid++
			} else {
				stats.Duplicates++
			}
			continue
		}
		seen[r.ID] = struct{}{}

		date, ok := normalizeDate(r.Date)
		if !ok || r.Rating < 1 || r.Rating > 5 {
			stats.Invalid++
			continue
		}
		r.Date = date

		if utf8.RuneCountInString(strings.TrimSpace(r.Text)) < MinReviewLength {
			stats.TooShort++
			continue
		}
		out = append(out, r)
	}
	stats.Output = len(out)
	return out, stats
}

// normalizeDate accepts the canonical YYYY-MM-DD plus the timestamp
// formats the scraper may emit, and reformats to canonical.
func normalizeDate(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	for _, layout := range []string{model.DateLayout, time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(model.DateLayout), true
		}
	}
	return "", false
}
