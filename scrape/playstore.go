package scrape

import (
	"fmt"

	"github.com/n0madic/google-play-scraper/pkg/app"
	"github.com/n0madic/google-play-scraper/pkg/reviews"
	"github.com/n0madic/google-play-scraper/pkg/store"

	"bankreviews/model"
)

// PlayStore is the production Source backed by google-play-scraper.
type PlayStore struct {
	Language string
	Country  string
}

func NewPlayStore(language, country string) *PlayStore {
	return &PlayStore{Language: language, Country: country}
}

func (p *PlayStore) AppTitle(appID string) (string, error) {
	a := app.New(appID, app.Options{
		Country:  p.Country,
		Language: p.Language,
	})
	if err := a.LoadDetails(); err != nil {
		return "", fmt.Errorf("load app details: %w", err)
	}
	return a.Title, nil
}

func (p *PlayStore) Reviews(appID string, count int) ([]model.Review, error) {
	r := reviews.New(appID, reviews.Options{
		Country:  p.Country,
		Language: p.Language,
		Number:   count,
		// Matches the original collection setting: most relevant first.
		Sorting: store.SortHelpfulness,
	})
	if err := r.Run(); err != nil {
		return nil, fmt.Errorf("fetch reviews: %w", err)
	}

	out := make([]model.Review, 0, len(r.Results))
	for _, rev := range r.Results {
		out = append(out, model.Review{
			ID:     rev.ID,
			Text:   rev.Text,
			Rating: rev.Score,
			Date:   rev.Timestamp.Format(model.DateLayout),
		})
	}
	return out, nil
}
