package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"bankreviews/clean"
	"bankreviews/config"
	"bankreviews/progress"
	"bankreviews/reviewcsv"
)

func main() {
	var (
		envPath string
		inPath  string
		outPath string
		check   bool
	)
	flag.StringVar(&envPath, "env", ".env", "env file path")
	flag.StringVar(&inPath, "in", "", "raw CSV input path (default from config)")
	flag.StringVar(&outPath, "out", "", "cleaned CSV output path (default from config)")
	flag.BoolVar(&check, "check", false, "only print the quality report, write nothing")
	flag.Parse()

	cfg, err := config.Load(envPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if inPath == "" {
		inPath = cfg.RawCSV
	}
	if outPath == "" {
		outPath = cfg.CleanCSV
	}

	start := time.Now()
	reviews, err := reviewcsv.Read(inPath)
	if err != nil {
		log.Fatalf("read %s: %v", inPath, err)
	}

	if check {
		rep := clean.BuildReport(reviews)
		rep.Print(os.Stdout)
		if !rep.KPIMet() {
			os.Exit(1)
		}
		return
	}

	pub, err := progress.NewPublisher(cfg)
	if err != nil {
		log.Fatalf("connect redis: %v", err)
	}
	defer pub.Close()

	cleaned, stats := clean.Clean(reviews)
	log.Printf("[CLEAN] input=%d duplicates=%d invalid=%d too_short=%d output=%d",
		stats.Input, stats.Duplicates, stats.Invalid, stats.TooShort, stats.Output)

	runID := uuid.NewString()
	if err := pub.Update(context.Background(), "clean", runID, stats.Output, stats.Input); err != nil {
		log.Printf("[WARN] progress upload failed: %v", err)
	}

	w, err := reviewcsv.NewWriter(outPath, false)
	if err != nil {
		log.Fatalf("create %s: %v", outPath, err)
	}
	for _, r := range cleaned {
		if err := w.Write(r); err != nil {
			log.Fatalf("write review: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		log.Fatalf("close %s: %v", outPath, err)
	}

	rep := clean.BuildReport(cleaned)
	rep.Print(os.Stdout)
	log.Printf("[CLEAN] wrote %d reviews to %s in %s", len(cleaned), outPath, time.Since(start))
}
