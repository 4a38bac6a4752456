package main

import (
	"context"
	"flag"
	"log"
	"time"

	"bankreviews/charts"
	"bankreviews/config"
	"bankreviews/store"
	"bankreviews/themes"
)

// maxCloudWords caps word-cloud density so rare terms don't clutter it.
const maxCloudWords = 80

func main() {
	var (
		envPath string
		dbPath  string
		outDir  string
		font    string
	)
	flag.StringVar(&envPath, "env", ".env", "env file path")
	flag.StringVar(&dbPath, "db", "", "SQLite file path (default from config)")
	flag.StringVar(&outDir, "out", "", "chart output directory (default from config)")
	flag.StringVar(&font, "font", "", "TTF font for word clouds (default from config; empty disables)")
	flag.Parse()

	cfg, err := config.Load(envPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if dbPath == "" {
		dbPath = cfg.DBPath
	}
	if outDir == "" {
		outDir = cfg.ChartsDir
	}
	if font == "" {
		font = cfg.FontFile
	}

	s, err := store.Open(dbPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer s.Close()

	start := time.Now()
	ctx := context.Background()
	r := charts.NewRenderer(outDir, font)
	var rendered []string

	bySentiment, err := s.SentimentByBank(ctx)
	if err != nil {
		log.Fatalf("sentiment by bank: %v", err)
	}
	if path, err := r.SentimentComparison(bySentiment); err != nil {
		log.Fatalf("sentiment comparison: %v", err)
	} else if path != "" {
		rendered = append(rendered, path)
	}

	cmp, err := s.CompareBanks(ctx)
	if err != nil {
		log.Fatalf("compare banks: %v", err)
	}
	if path, err := r.AverageRating(cmp); err != nil {
		log.Fatalf("average rating: %v", err)
	} else if path != "" {
		rendered = append(rendered, path)
	}

	pain, err := s.PainPointsByBank(ctx)
	if err != nil {
		log.Fatalf("pain points: %v", err)
	}

	trend, err := s.MonthlySentimentTrend(ctx)
	if err != nil {
		log.Fatalf("monthly trend: %v", err)
	}
	if path, err := r.MonthlyTrends(trend); err != nil {
		log.Fatalf("monthly trends: %v", err)
	} else if path != "" {
		rendered = append(rendered, path)
	}

	for _, c := range cmp {
		bank := c.Bank

		if path, err := r.PainPoints(bank, pain); err != nil {
			log.Fatalf("%s pain points: %v", bank, err)
		} else if path != "" {
			rendered = append(rendered, path)
		}

		reviews, err := s.ReviewsForBank(ctx, bank)
		if err != nil {
			log.Fatalf("%s reviews: %v", bank, err)
		}
		dist := make(map[int]int)
		texts := make([]string, 0, len(reviews))
		for _, rev := range reviews {
			dist[rev.Rating]++
			texts = append(texts, rev.Text)
		}

		if path, err := r.RatingDonut(bank, dist); err != nil {
			log.Fatalf("%s rating donut: %v", bank, err)
		} else if path != "" {
			rendered = append(rendered, path)
		}

		freq := themes.WordFrequencies(texts, maxCloudWords)
		if path, err := r.WordCloud(bank, freq); err != nil {
			log.Fatalf("%s word cloud: %v", bank, err)
		} else if path != "" {
			rendered = append(rendered, path)
		}
	}

	log.Printf("[CHARTS] rendered %d charts to %s in %s", len(rendered), outDir, time.Since(start))
	for _, p := range rendered {
		log.Printf("[CHARTS]   %s", p)
	}
}
