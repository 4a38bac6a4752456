package main

import (
	"context"
	"flag"
	"log"
	"time"

	"bankreviews/config"
	"bankreviews/progress"
	"bankreviews/reviewcsv"
	"bankreviews/scrape"
)

func main() {
	var (
		envPath string
		outPath string
		count   int
	)
	flag.StringVar(&envPath, "env", ".env", "env file path")
	flag.StringVar(&outPath, "out", "", "raw CSV output path (default from config)")
	flag.IntVar(&count, "count", 0, "reviews per bank (default from config)")
	flag.Parse()

	cfg, err := config.Load(envPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if outPath == "" {
		outPath = cfg.RawCSV
	}
	if count > 0 {
		cfg.ReviewsPerBank = count
	}

	pub, err := progress.NewPublisher(cfg)
	if err != nil {
		log.Fatalf("connect redis: %v", err)
	}
	defer pub.Close()

	start := time.Now()
	ctx := context.Background()

	source := scrape.NewPlayStore(cfg.Language, cfg.Country)
	collector := scrape.NewCollector(source, cfg)

	target := len(cfg.Banks()) * cfg.ReviewsPerBank
	res, err := collector.Run(ctx)
	if res != nil {
		res.Summary(cfg.ReviewsPerBank)
	}
	if err != nil {
		log.Fatalf("scrape: %v", err)
	}
	if err := pub.Update(ctx, "scrape", res.RunID, len(res.Reviews), target); err != nil {
		log.Printf("[WARN] progress upload failed: %v", err)
	}

	w, err := reviewcsv.NewWriter(outPath, false)
	if err != nil {
		log.Fatalf("create %s: %v", outPath, err)
	}
	for _, r := range res.Reviews {
		if err := w.Write(r); err != nil {
			log.Fatalf("write review: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		log.Fatalf("close %s: %v", outPath, err)
	}

	log.Printf("[SCRAPE] wrote %d reviews to %s in %s", len(res.Reviews), outPath, time.Since(start))
	if len(res.Failed) > 0 {
		log.Fatalf("[SCRAPE] %d bank(s) failed: %v", len(res.Failed), res.Failed)
	}
}
