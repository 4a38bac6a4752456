package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"bankreviews/charts"
	"bankreviews/clean"
	"bankreviews/config"
	"bankreviews/model"
	"bankreviews/progress"
	"bankreviews/report"
	"bankreviews/reviewcsv"
	"bankreviews/scrape"
	"bankreviews/sentiment"
	"bankreviews/store"
	"bankreviews/themes"
)

// maxCloudWords caps word-cloud density so rare terms don't clutter it.
const maxCloudWords = 80

func main() {
	var (
		envPath string
		force   bool
	)
	flag.StringVar(&envPath, "env", ".env", "env file path")
	flag.BoolVar(&force, "force", false, "rerun stages even when their output file already exists")
	flag.Parse()

	cfg, err := config.Load(envPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	pub, err := progress.NewPublisher(cfg)
	if err != nil {
		log.Fatalf("connect redis: %v", err)
	}
	defer pub.Close()

	start := time.Now()
	ctx := context.Background()
	runID := uuid.NewString()
	log.Printf("[PIPELINE] run %s starting", runID)

	if err := runScrape(ctx, cfg, pub, runID, force); err != nil {
		log.Fatalf("scrape stage: %v", err)
	}
	if err := runClean(ctx, cfg, pub, runID, force); err != nil {
		log.Fatalf("clean stage: %v", err)
	}
	if err := runAnalyze(ctx, cfg, pub, runID, force); err != nil {
		log.Fatalf("analyze stage: %v", err)
	}

	s, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer s.Close()

	if err := runLoad(ctx, cfg, s, pub, runID); err != nil {
		log.Fatalf("load stage: %v", err)
	}
	if err := runReport(ctx, cfg, s); err != nil {
		log.Fatalf("report stage: %v", err)
	}
	if err := runCharts(ctx, cfg, s); err != nil {
		log.Fatalf("charts stage: %v", err)
	}

	log.Printf("[PIPELINE] run %s finished in %s", runID, time.Since(start))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func writeCSV(path string, reviews []model.Review, analyzed bool) error {
	w, err := reviewcsv.NewWriter(path, analyzed)
	if err != nil {
		return err
	}
	for _, r := range reviews {
		if err := w.Write(r); err != nil {
			w.Close()
			return err
		}
	}
	return w.Close()
}

func runScrape(ctx context.Context, cfg *config.Config, pub *progress.Publisher, runID string, force bool) error {
	if !force && fileExists(cfg.RawCSV) {
		log.Printf("[PIPELINE] %s exists, skipping scrape", cfg.RawCSV)
		return nil
	}
	return scrapeStage(ctx, cfg, scrape.NewPlayStore(cfg.Language, cfg.Country), pub, runID)
}

// scrapeStage collects what it can and always writes the output file: a
// failing bank costs its own reviews, not the whole run.
func scrapeStage(ctx context.Context, cfg *config.Config, source scrape.Source, pub *progress.Publisher, runID string) error {
	collector := scrape.NewCollector(source, cfg)

	target := len(cfg.Banks()) * cfg.ReviewsPerBank
	res, err := collector.Run(ctx)
	if res != nil {
		res.Summary(cfg.ReviewsPerBank)
	}
	if err != nil {
		return err
	}
	if err := pub.Update(ctx, "scrape", runID, len(res.Reviews), target); err != nil {
		log.Printf("[WARN] progress upload failed: %v", err)
	}
	if err := writeCSV(cfg.RawCSV, res.Reviews, false); err != nil {
		return err
	}
	if len(res.Failed) > 0 {
		log.Printf("[WARN] %d bank(s) failed, continuing with partial data: %v", len(res.Failed), res.Failed)
	}
	return nil
}

func runClean(ctx context.Context, cfg *config.Config, pub *progress.Publisher, runID string, force bool) error {
	if !force && fileExists(cfg.CleanCSV) {
		log.Printf("[PIPELINE] %s exists, skipping clean", cfg.CleanCSV)
		return nil
	}

	reviews, err := reviewcsv.Read(cfg.RawCSV)
	if err != nil {
		return err
	}
	cleaned, stats := clean.Clean(reviews)
	log.Printf("[CLEAN] input=%d duplicates=%d invalid=%d too_short=%d output=%d",
		stats.Input, stats.Duplicates, stats.Invalid, stats.TooShort, stats.Output)
	if err := pub.Update(ctx, "clean", runID, stats.Output, stats.Input); err != nil {
		log.Printf("[WARN] progress upload failed: %v", err)
	}

	rep := clean.BuildReport(cleaned)
	rep.Print(os.Stdout)
	if !rep.KPIMet() {
		log.Printf("[WARN] dataset misses KPI targets, continuing anyway")
	}
	return writeCSV(cfg.CleanCSV, cleaned, false)
}

func runAnalyze(ctx context.Context, cfg *config.Config, pub *progress.Publisher, runID string, force bool) error {
	if !force && fileExists(cfg.AnalyzedCSV) {
		log.Printf("[PIPELINE] %s exists, skipping analyze", cfg.AnalyzedCSV)
		return nil
	}

	reviews, err := reviewcsv.Read(cfg.CleanCSV)
	if err != nil {
		return err
	}
	if err := pub.Update(ctx, "analyze", runID, 0, len(reviews)); err != nil {
		log.Printf("[WARN] progress upload failed: %v", err)
	}

	client := sentiment.NewClient(cfg.SentimentURL, cfg.SentimentModel, cfg.SentimentTimeout)
	reviews = client.AnalyzeAll(reviews, cfg.SentimentBatch)
	for i := range reviews {
		reviews[i].Themes = themes.Categorize(reviews[i].Text)
	}

	if err := pub.Update(ctx, "analyze", runID, len(reviews), len(reviews)); err != nil {
		log.Printf("[WARN] progress upload failed: %v", err)
	}
	return writeCSV(cfg.AnalyzedCSV, reviews, true)
}

func runLoad(ctx context.Context, cfg *config.Config, s *store.Store, pub *progress.Publisher, runID string) error {
	reviews, err := reviewcsv.Read(cfg.AnalyzedCSV)
	if err != nil {
		return err
	}
	if err := s.Init(ctx); err != nil {
		return err
	}
	bankIDs, err := s.UpsertBanks(ctx, cfg.BankApps)
	if err != nil {
		return err
	}
	if err := s.StartRun(ctx, runID, "load"); err != nil {
		return err
	}
	inserted, skipped, err := s.InsertReviews(ctx, reviews, bankIDs, store.DefaultBatchSize)
	if err != nil {
		return err
	}
	if err := s.FinishRun(ctx, runID, len(reviews), inserted, skipped); err != nil {
		return err
	}
	if err := pub.Update(ctx, "load", runID, inserted+skipped, len(reviews)); err != nil {
		log.Printf("[WARN] progress upload failed: %v", err)
	}
	log.Printf("[LOAD] inserted=%d skipped=%d", inserted, skipped)
	return nil
}

func runReport(ctx context.Context, cfg *config.Config, s *store.Store) error {
	rep, err := report.Build(ctx, s)
	if err != nil {
		return err
	}
	rep.Print(os.Stdout)
	if cfg.ReportXLSX != "" {
		if err := rep.ExportXLSX(cfg.ReportXLSX); err != nil {
			return err
		}
		log.Printf("[REPORT] wrote %s", cfg.ReportXLSX)
	}
	return nil
}

func runCharts(ctx context.Context, cfg *config.Config, s *store.Store) error {
	r := charts.NewRenderer(cfg.ChartsDir, cfg.FontFile)

	bySentiment, err := s.SentimentByBank(ctx)
	if err != nil {
		return err
	}
	if _, err := r.SentimentComparison(bySentiment); err != nil {
		return err
	}

	cmp, err := s.CompareBanks(ctx)
	if err != nil {
		return err
	}
	if _, err := r.AverageRating(cmp); err != nil {
		return err
	}

	pain, err := s.PainPointsByBank(ctx)
	if err != nil {
		return err
	}

	trend, err := s.MonthlySentimentTrend(ctx)
	if err != nil {
		return err
	}
	if _, err := r.MonthlyTrends(trend); err != nil {
		return err
	}

	for _, c := range cmp {
		bank := c.Bank
		if _, err := r.PainPoints(bank, pain); err != nil {
			return err
		}

		reviews, err := s.ReviewsForBank(ctx, bank)
		if err != nil {
			return err
		}
		dist := make(map[int]int)
		texts := make([]string, 0, len(reviews))
		for _, rev := range reviews {
			dist[rev.Rating]++
			texts = append(texts, rev.Text)
		}
		if _, err := r.RatingDonut(bank, dist); err != nil {
			return err
		}
		if _, err := r.WordCloud(bank, themes.WordFrequencies(texts, maxCloudWords)); err != nil {
			return err
		}
	}
	log.Printf("[CHARTS] wrote charts to %s", cfg.ChartsDir)
	return nil
}
