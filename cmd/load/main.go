package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"bankreviews/config"
	"bankreviews/progress"
	"bankreviews/reviewcsv"
	"bankreviews/store"
)

func main() {
	var (
		envPath string
		inPath  string
		dbPath  string
		batch   int
	)
	flag.StringVar(&envPath, "env", ".env", "env file path")
	flag.StringVar(&inPath, "in", "", "analyzed CSV input path (default from config)")
	flag.StringVar(&dbPath, "db", "", "SQLite file path (default from config)")
	flag.IntVar(&batch, "batch", store.DefaultBatchSize, "insert transaction size")
	flag.Parse()

	cfg, err := config.Load(envPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if inPath == "" {
		inPath = cfg.AnalyzedCSV
	}
	if dbPath == "" {
		dbPath = cfg.DBPath
	}

	pub, err := progress.NewPublisher(cfg)
	if err != nil {
		log.Fatalf("connect redis: %v", err)
	}
	defer pub.Close()

	start := time.Now()
	reviews, err := reviewcsv.Read(inPath)
	if err != nil {
		log.Fatalf("read %s: %v", inPath, err)
	}
	log.Printf("[LOAD] %d reviews from %s", len(reviews), inPath)

	s, err := store.Open(dbPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	if err := s.Init(ctx); err != nil {
		log.Fatalf("init schema: %v", err)
	}

	// Banks come from the configured apps plus whatever the CSV carries,
	// so loads of partial or older files still resolve.
	apps := make(map[string]string, len(cfg.BankApps))
	for code, id := range cfg.BankApps {
		apps[code] = id
	}
	for _, r := range reviews {
		if r.Bank != "" {
			if _, ok := apps[r.Bank]; !ok {
				apps[r.Bank] = r.AppID
			}
		}
	}
	bankIDs, err := s.UpsertBanks(ctx, apps)
	if err != nil {
		log.Fatalf("upsert banks: %v", err)
	}

	runID := uuid.NewString()
	if err := s.StartRun(ctx, runID, "load"); err != nil {
		log.Fatalf("start run: %v", err)
	}
	inserted, skipped, err := s.InsertReviews(ctx, reviews, bankIDs, batch)
	if err != nil {
		log.Fatalf("insert reviews: %v", err)
	}
	if err := s.FinishRun(ctx, runID, len(reviews), inserted, skipped); err != nil {
		log.Fatalf("finish run: %v", err)
	}
	if err := pub.Update(ctx, "load", runID, inserted+skipped, len(reviews)); err != nil {
		log.Printf("[WARN] progress upload failed: %v", err)
	}
	log.Printf("[LOAD] inserted=%d skipped=%d in %s", inserted, skipped, time.Since(start))

	sum, err := s.Verify(ctx)
	if err != nil {
		log.Fatalf("verify: %v", err)
	}
	printVerify(sum)
}

func printVerify(sum *store.VerifySummary) {
	fmt.Printf("Total reviews in database: %d\n", sum.Total)

	banks := make([]string, 0, len(sum.PerBank))
	for b := range sum.PerBank {
		banks = append(banks, b)
	}
	sort.Strings(banks)
	for _, b := range banks {
		fmt.Printf("  %-8s %5d reviews, avg rating %.2f\n", b, sum.PerBank[b], sum.AvgRating[b])
	}

	fmt.Println("Sentiment distribution:")
	labels := make([]string, 0, len(sum.SentimentDist))
	for l := range sum.SentimentDist {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	for _, l := range labels {
		fmt.Printf("  %-9s %d\n", l, sum.SentimentDist[l])
	}

	fmt.Println("Rating distribution:")
	for rating := 1; rating <= 5; rating++ {
		fmt.Printf("  %d stars: %d\n", rating, sum.RatingDist[rating])
	}
	if sum.Total > 0 {
		fmt.Printf("Date range: %s to %s\n", sum.DateMin, sum.DateMax)
	}
}
