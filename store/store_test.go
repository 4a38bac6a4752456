package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bankreviews/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "reviews.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Init(context.Background()))
	return s
}

func seedReviews() []model.Review {
	return []model.Review{
		{ID: "r1", Bank: "CBE", Text: "cannot login at all", Rating: 1, Date: "2025-01-15",
			SentimentLabel: model.SentimentNegative, SentimentScore: 0.98,
			Themes: "Login & Access Issues", Source: "Google Play"},
		{ID: "r2", Bank: "CBE", Text: "transfer failed again", Rating: 2, Date: "2025-01-20",
			SentimentLabel: model.SentimentNegative, SentimentScore: 0.95,
			Themes: "Transaction Problems, Login & Access Issues", Source: "Google Play"},
		{ID: "r3", Bank: "CBE", Text: "great app, love it", Rating: 5, Date: "2025-02-01",
			SentimentLabel: model.SentimentPositive, SentimentScore: 0.99,
			Themes: "Other", Source: "Google Play"},
		{ID: "r4", Bank: "BOA", Text: "keeps crashing on startup", Rating: 1, Date: "2025-02-10",
			SentimentLabel: model.SentimentNegative, SentimentScore: 0.97,
			Themes: "App Performance & Bugs", Source: "Google Play"},
	}
}

func loadSeed(t *testing.T, s *Store) map[string]int64 {
	t.Helper()
	ctx := context.Background()
	ids, err := s.UpsertBanks(ctx, map[string]string{"CBE": "com.cbe", "BOA": "com.boa"})
	require.NoError(t, err)
	inserted, skipped, err := s.InsertReviews(ctx, seedReviews(), ids, 2)
	require.NoError(t, err)
	require.Equal(t, 4, inserted)
	require.Zero(t, skipped)
	return ids
}

func TestInitIdempotent(t *testing.T) {
	s := openTestStore(t)
	assert.NoError(t, s.Init(context.Background()))
}

func TestUpsertBanksStableIDs(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first, err := s.UpsertBanks(ctx, map[string]string{"CBE": "com.cbe"})
	require.NoError(t, err)
	second, err := s.UpsertBanks(ctx, map[string]string{"CBE": "com.cbe"})
	require.NoError(t, err)

	assert.Equal(t, first["CBE"], second["CBE"])
}

func TestInsertReviewsIdempotent(t *testing.T) {
	s := openTestStore(t)
	ids := loadSeed(t, s)

	inserted, skipped, err := s.InsertReviews(context.Background(), seedReviews(), ids, DefaultBatchSize)
	require.NoError(t, err)
	assert.Zero(t, inserted)
	assert.Equal(t, 4, skipped)
}

func TestInsertReviewsUnknownBankSkipped(t *testing.T) {
	s := openTestStore(t)
	ids := loadSeed(t, s)

	inserted, skipped, err := s.InsertReviews(context.Background(), []model.Review{
		{ID: "r9", Bank: "Awash", Text: "unmapped bank", Rating: 3, Date: "2025-01-01"},
	}, ids, DefaultBatchSize)
	require.NoError(t, err)
	assert.Zero(t, inserted)
	assert.Equal(t, 1, skipped)
}

func TestVerify(t *testing.T) {
	s := openTestStore(t)
	loadSeed(t, s)

	sum, err := s.Verify(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, sum.Total)
	assert.Equal(t, map[string]int{"CBE": 3, "BOA": 1}, sum.PerBank)
	assert.Equal(t, 3, sum.SentimentDist[model.SentimentNegative])
	assert.Equal(t, 2, sum.RatingDist[1])
	assert.Equal(t, "2025-01-15", sum.DateMin)
	assert.Equal(t, "2025-02-10", sum.DateMax)
}

func TestPainPointsByBank(t *testing.T) {
	s := openTestStore(t)
	loadSeed(t, s)

	counts, err := s.PainPointsByBank(context.Background())
	require.NoError(t, err)

	require.Len(t, counts, 3)
	// Banks sorted, then count desc.
	assert.Equal(t, ThemeCount{Bank: "BOA", Theme: "App Performance & Bugs", Count: 1}, counts[0])
	assert.Equal(t, ThemeCount{Bank: "CBE", Theme: "Login & Access Issues", Count: 2}, counts[1])
	assert.Equal(t, ThemeCount{Bank: "CBE", Theme: "Transaction Problems", Count: 1}, counts[2])
}

func TestOneStarThemes(t *testing.T) {
	s := openTestStore(t)
	loadSeed(t, s)

	counts, err := s.OneStarThemes(context.Background(), 10)
	require.NoError(t, err)

	require.Len(t, counts, 2)
	themes := []string{counts[0].Theme, counts[1].Theme}
	assert.Contains(t, themes, "Login & Access Issues")
	assert.Contains(t, themes, "App Performance & Bugs")
}

func TestMonthlySentimentTrend(t *testing.T) {
	s := openTestStore(t)
	loadSeed(t, s)

	trend, err := s.MonthlySentimentTrend(context.Background())
	require.NoError(t, err)

	require.Len(t, trend, 3) // BOA 2025-02, CBE 2025-01, CBE 2025-02
	assert.Equal(t, "BOA", trend[0].Bank)
	assert.Equal(t, "2025-02", trend[0].Month)
	assert.Zero(t, trend[0].PositivePct)

	assert.Equal(t, "CBE", trend[1].Bank)
	assert.Equal(t, "2025-01", trend[1].Month)
	assert.Zero(t, trend[1].PositivePct)

	assert.Equal(t, "2025-02", trend[2].Month)
	assert.InDelta(t, 100.0, trend[2].PositivePct, 1e-9)
}

func TestCompareBanks(t *testing.T) {
	s := openTestStore(t)
	loadSeed(t, s)

	cmp, err := s.CompareBanks(context.Background())
	require.NoError(t, err)

	require.Len(t, cmp, 2)
	// CBE avg rating (1+2+5)/3 ≈ 2.67 beats BOA's 1.
	assert.Equal(t, "CBE", cmp[0].Bank)
	assert.Equal(t, 3, cmp[0].Total)
	assert.InDelta(t, 2.67, cmp[0].AvgRating, 0.01)
	assert.InDelta(t, 33.3, cmp[0].PositivePct, 0.1)
	assert.Equal(t, "BOA", cmp[1].Bank)
}

func TestRatingVsSentiment(t *testing.T) {
	s := openTestStore(t)
	loadSeed(t, s)

	cross, err := s.RatingVsSentiment(context.Background())
	require.NoError(t, err)

	require.Len(t, cross, 3)
	assert.Equal(t, 1, cross[0].Rating)
	assert.Equal(t, model.SentimentNegative, cross[0].Label)
	assert.Equal(t, 2, cross[0].Count)
}

func TestRunsLifecycle(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.StartRun(ctx, "run-1", "load"))
	require.NoError(t, s.FinishRun(ctx, "run-1", 4, 4, 0))

	var stage string
	var total int
	err := s.db.QueryRow(`SELECT stage, total FROM runs WHERE run_id = 'run-1'`).Scan(&stage, &total)
	require.NoError(t, err)
	assert.Equal(t, "load", stage)
	assert.Equal(t, 4, total)
}

func TestReviewsForBank(t *testing.T) {
	s := openTestStore(t)
	loadSeed(t, s)

	got, err := s.ReviewsForBank(context.Background(), "CBE")
	require.NoError(t, err)
	assert.Len(t, got, 3)
	for _, r := range got {
		assert.Equal(t, "CBE", r.Bank)
		assert.NotEmpty(t, r.Text)
	}
}
