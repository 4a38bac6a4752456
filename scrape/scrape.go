// Package scrape collects Google Play reviews for the configured banking
// apps. The store client itself is the external google-play-scraper
// library; this package only drives it and shapes the rows.
package scrape

import (
	"context"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"bankreviews/config"
	"bankreviews/model"
)

// Source fetches app metadata and reviews for a single app id. The
// production implementation wraps the google-play-scraper library;
// tests substitute their own.
type Source interface {
	AppTitle(appID string) (string, error)
	Reviews(appID string, count int) ([]model.Review, error)
}

// Result summarizes one scrape run.
type Result struct {
	RunID   string
	Reviews []model.Review
	PerBank map[string]int
	Failed  []string
}

// Collector scrapes every configured bank in a stable order.
type Collector struct {
	source Source
	cfg    *config.Config
	delay  time.Duration
}

func NewCollector(source Source, cfg *config.Config) *Collector {
	return &Collector{source: source, cfg: cfg, delay: cfg.ScrapeDelay}
}

// Run scrapes all banks. A failing bank is logged and skipped so the
// remaining banks still get collected.
func (c *Collector) Run(ctx context.Context) (*Result, error) {
	res := &Result{
		RunID:   uuid.NewString(),
		PerBank: make(map[string]int),
	}

	banks := c.cfg.Banks()
	for i, bank := range banks {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		appID := c.cfg.BankApps[bank]
		log.Printf("[SCRAPE] %s (%s)", bank, appID)

		if title, err := c.source.AppTitle(appID); err != nil {
			log.Printf("[WARN] %s: app details unavailable, scraping reviews anyway: %v", bank, err)
		} else {
			log.Printf("[SCRAPE] %s: app title %q", bank, title)
		}

		reviews, err := c.source.Reviews(appID, c.cfg.ReviewsPerBank)
		if err != nil {
			log.Printf("[ERROR] %s: scrape failed: %v", bank, err)
			res.Failed = append(res.Failed, bank)
			continue
		}
		for _, r := range reviews {
			r.Bank = bank
			r.AppID = appID
			r.Source = "Google Play"
			res.Reviews = append(res.Reviews, r)
		}
		res.PerBank[bank] = len(reviews)
		log.Printf("[SCRAPE] %s: collected %d reviews", bank, len(reviews))

		// Politeness delay between apps, skipped after the last one.
		if i < len(banks)-1 && c.delay > 0 {
			select {
			case <-ctx.Done():
				return res, ctx.Err()
			case <-time.After(c.delay):
			}
		}
	}
	return res, nil
}

// Summary logs the per-bank counts against the configured target.
func (r *Result) Summary(target int) {
	banks := make([]string, 0, len(r.PerBank))
	for b := range r.PerBank {
		banks = append(banks, b)
	}
	sort.Strings(banks)
	log.Printf("[SCRAPE] run %s: %d reviews total (target %d per bank)", r.RunID, len(r.Reviews), target)
	for _, b := range banks {
		log.Printf("[SCRAPE]   %s: %d", b, r.PerBank[b])
	}
	for _, b := range r.Failed {
		log.Printf("[SCRAPE]   %s: FAILED", b)
	}
}
