package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"bankreviews/config"
	"bankreviews/model"
	"bankreviews/progress"
	"bankreviews/reviewcsv"
	"bankreviews/sentiment"
	"bankreviews/themes"
)

func main() {
	var (
		envPath  string
		inPath   string
		outPath  string
		keywords int
	)
	flag.StringVar(&envPath, "env", ".env", "env file path")
	flag.StringVar(&inPath, "in", "", "cleaned CSV input path (default from config)")
	flag.StringVar(&outPath, "out", "", "analyzed CSV output path (default from config)")
	flag.IntVar(&keywords, "keywords", 30, "top TF-IDF keywords to print per bank (0 disables)")
	flag.Parse()

	cfg, err := config.Load(envPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if inPath == "" {
		inPath = cfg.CleanCSV
	}
	if outPath == "" {
		outPath = cfg.AnalyzedCSV
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
	log.Printf("[ANALYZE] %d reviews from %s", len(reviews), inPath)

	runID := uuid.NewString()
	ctx := context.Background()
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

	w, err := reviewcsv.NewWriter(outPath, true)
	if err != nil {
		log.Fatalf("create %s: %v", outPath, err)
	}
	for _, r := range reviews {
		if err := w.Write(r); err != nil {
			log.Fatalf("write review: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		log.Fatalf("close %s: %v", outPath, err)
	}
	log.Printf("[ANALYZE] wrote %d reviews to %s in %s", len(reviews), outPath, time.Since(start))

	if keywords > 0 {
		printKeywords(reviews, keywords)
	}
}

// printKeywords ranks review terms by mean TF-IDF, separately per bank
// and sentiment so pain points and strengths stay apart.
func printKeywords(reviews []model.Review, topN int) {
	segments, err := themes.KeywordsByBankSentiment(reviews, topN)
	if err != nil {
		log.Printf("[ANALYZE] keyword extraction failed: %v", err)
		return
	}
	for _, seg := range segments {
		fmt.Printf("\n== %s / %s: top %d keywords ==\n", seg.Bank, seg.Sentiment, len(seg.Keywords))
		for _, kw := range seg.Keywords {
			fmt.Printf("  %-20s %.4f\n", kw.Term, kw.Score)
		}
	}
}
