package store

import (
	"context"
	"sort"

	"bankreviews/model"
	"bankreviews/themes"
)

// VerifySummary is the post-load integrity check output.
type VerifySummary struct {
	Total        int
	PerBank      map[string]int
	AvgRating    map[string]float64
	SentimentDist map[string]int
	RatingDist   map[int]int
	DateMin      string
	DateMax      string
}

// Verify runs the data-integrity queries after a load.
func (s *Store) Verify(ctx context.Context) (*VerifySummary, error) {
	sum := &VerifySummary{
		PerBank:       make(map[string]int),
		AvgRating:     make(map[string]float64),
		SentimentDist: make(map[string]int),
		RatingDist:    make(map[int]int),
	}

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reviews`).Scan(&sum.Total); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
        SELECT b.bank_code, COUNT(r.review_id), COALESCE(AVG(r.rating), 0)
        FROM banks b LEFT JOIN reviews r ON b.bank_id = r.bank_id
        GROUP BY b.bank_code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var bank string
		var count int
		var avg float64
		if err := rows.Scan(&bank, &count, &avg); err != nil {
			return nil, err
		}
		sum.PerBank[bank] = count
		sum.AvgRating[bank] = avg
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	srows, err := s.db.QueryContext(ctx,
		`SELECT sentiment_label, COUNT(*) FROM reviews GROUP BY sentiment_label`)
	if err != nil {
		return nil, err
	}
	defer srows.Close()
	for srows.Next() {
		var label string
		var count int
		if err := srows.Scan(&label, &count); err != nil {
			return nil, err
		}
		sum.SentimentDist[label] = count
	}
	if err := srows.Err(); err != nil {
		return nil, err
	}

	rrows, err := s.db.QueryContext(ctx,
		`SELECT rating, COUNT(*) FROM reviews GROUP BY rating`)
	if err != nil {
		return nil, err
	}
	defer rrows.Close()
	for rrows.Next() {
		var rating, count int
		if err := rrows.Scan(&rating, &count); err != nil {
			return nil, err
		}
		sum.RatingDist[rating] = count
	}
	if err := rrows.Err(); err != nil {
		return nil, err
	}

	if sum.Total > 0 {
		err = s.db.QueryRowContext(ctx,
			`SELECT MIN(review_date), MAX(review_date) FROM reviews`).Scan(&sum.DateMin, &sum.DateMax)
		if err != nil {
			return nil, err
		}
	}
	return sum, nil
}

// ThemeCount counts one theme's occurrences for one bank.
type ThemeCount struct {
	Bank  string
	Theme string
	Count int
}

// themeCounts queries (bank, themes) rows matching the filter and splits
// the stored theme column in Go; SQLite has no string-split.
func (s *Store) themeCounts(ctx context.Context, where string, args ...any) ([]ThemeCount, error) {
	q := `
        SELECT b.bank_code, r.themes
        FROM reviews r JOIN banks b ON r.bank_id = b.bank_id
        WHERE r.themes != '' AND r.themes != ? AND ` + where
	rows, err := s.db.QueryContext(ctx, q, append([]any{themes.OtherTheme}, args...)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]map[string]int)
	for rows.Next() {
		var bank, themeCol string
		if err := rows.Scan(&bank, &themeCol); err != nil {
			return nil, err
		}
		if counts[bank] == nil {
			counts[bank] = make(map[string]int)
		}
		for _, th := range themes.Split(themeCol) {
			counts[bank][th]++
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var out []ThemeCount
	for bank, perTheme := range counts {
		for theme, n := range perTheme {
			out = append(out, ThemeCount{Bank: bank, Theme: theme, Count: n})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Bank != out[j].Bank {
			return out[i].Bank < out[j].Bank
		}
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Theme < out[j].Theme
	})
	return out, nil
}

// PainPointsByBank counts themes across negative reviews, per bank,
// most frequent first.
func (s *Store) PainPointsByBank(ctx context.Context) ([]ThemeCount, error) {
	return s.themeCounts(ctx, `r.sentiment_label = ?`, model.SentimentNegative)
}

// OneStarThemes counts themes across 1-star reviews, most frequent
// first across all banks, capped at limit.
func (s *Store) OneStarThemes(ctx context.Context, limit int) ([]ThemeCount, error) {
	out, err := s.themeCounts(ctx, `r.rating = 1`)
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		if out[i].Bank != out[j].Bank {
			return out[i].Bank < out[j].Bank
		}
		return out[i].Theme < out[j].Theme
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// MonthlyTrend is one bank-month's sentiment aggregate.
type MonthlyTrend struct {
	Bank        string
	Month       string // YYYY-MM
	PositivePct float64
	Reviews     int
}

// MonthlySentimentTrend computes the positive-review percentage per bank
// per month, oldest month first.
func (s *Store) MonthlySentimentTrend(ctx context.Context) ([]MonthlyTrend, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT b.bank_code,
               strftime('%Y-%m', r.review_date) AS month,
               AVG(CASE WHEN r.sentiment_label = ? THEN 1.0 ELSE 0.0 END) * 100,
               COUNT(*)
        FROM reviews r JOIN banks b ON r.bank_id = b.bank_id
        WHERE r.review_date IS NOT NULL AND r.review_date != ''
        GROUP BY b.bank_code, month
        ORDER BY b.bank_code, month`, model.SentimentPositive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MonthlyTrend
	for rows.Next() {
		var t MonthlyTrend
		if err := rows.Scan(&t.Bank, &t.Month, &t.PositivePct, &t.Reviews); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// RatingSentiment is one cell of the rating x sentiment crosstab.
type RatingSentiment struct {
	Rating        int
	Label         string
	Count         int
	AvgConfidence float64
}

// RatingVsSentiment crosses star ratings with sentiment labels.
func (s *Store) RatingVsSentiment(ctx context.Context) ([]RatingSentiment, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT rating, sentiment_label, COUNT(*), ROUND(AVG(sentiment_score), 3)
        FROM reviews
        GROUP BY rating, sentiment_label
        ORDER BY rating, sentiment_label`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RatingSentiment
	for rows.Next() {
		var rs RatingSentiment
		if err := rows.Scan(&rs.Rating, &rs.Label, &rs.Count, &rs.AvgConfidence); err != nil {
			return nil, err
		}
		out = append(out, rs)
	}
	return out, rows.Err()
}

// BankComparison is one bank's headline numbers.
type BankComparison struct {
	Bank          string
	Total         int
	AvgRating     float64
	PositivePct   float64
	AvgConfidence float64
}

// CompareBanks ranks banks by average rating.
func (s *Store) CompareBanks(ctx context.Context) ([]BankComparison, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT b.bank_code,
               COUNT(r.review_id),
               ROUND(COALESCE(AVG(r.rating), 0), 2),
               ROUND(COALESCE(AVG(CASE WHEN r.sentiment_label = ? THEN 1.0 ELSE 0.0 END), 0) * 100, 1),
               ROUND(COALESCE(AVG(r.sentiment_score), 0), 3)
        FROM banks b LEFT JOIN reviews r ON b.bank_id = r.bank_id
        GROUP BY b.bank_code
        ORDER BY AVG(r.rating) DESC`, model.SentimentPositive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []BankComparison
	for rows.Next() {
		var c BankComparison
		if err := rows.Scan(&c.Bank, &c.Total, &c.AvgRating, &c.PositivePct, &c.AvgConfidence); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// SentimentByBank returns bank -> sentiment label -> review count.
func (s *Store) SentimentByBank(ctx context.Context) (map[string]map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT b.bank_code, r.sentiment_label, COUNT(*)
        FROM reviews r JOIN banks b ON r.bank_id = b.bank_id
        GROUP BY b.bank_code, r.sentiment_label`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]map[string]int)
	for rows.Next() {
		var bank, label string
		var count int
		if err := rows.Scan(&bank, &label, &count); err != nil {
			return nil, err
		}
		if out[bank] == nil {
			out[bank] = make(map[string]int)
		}
		out[bank][label] = count
	}
	return out, rows.Err()
}

// ReviewsForBank returns (text, sentiment) pairs for keyword extraction
// and word clouds.
func (s *Store) ReviewsForBank(ctx context.Context, bank string) ([]model.Review, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT r.review_id, r.review_text, r.rating, r.review_date,
               r.sentiment_label, r.sentiment_score, r.themes
        FROM reviews r JOIN banks b ON r.bank_id = b.bank_id
        WHERE b.bank_code = ?`, bank)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Review
	for rows.Next() {
		r := model.Review{Bank: bank}
		if err := rows.Scan(&r.ID, &r.Text, &r.Rating, &r.Date,
			&r.SentimentLabel, &r.SentimentScore, &r.Themes); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
