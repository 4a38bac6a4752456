// Package model defines the data structures passed between pipeline stages.
// It contains no business logic.
package model

import "time"

// Sentiment labels as stored in the analyzed CSV and the database.
const (
	SentimentPositive = "POSITIVE"
	SentimentNegative = "NEGATIVE"
	SentimentNeutral  = "NEUTRAL"
)

// DateLayout is the canonical review date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// Review is one scraped app-store review. Sentiment and theme fields stay
// empty until the analyze stage fills them in.
type Review struct {
	ID     string `json:"review_id"`
	Text   string `json:"review_text"`
	Rating int    `json:"rating"`
	Date   string `json:"date"` // YYYY-MM-DD
	Bank   string `json:"bank"`
	AppID  string `json:"app_name"`
	Source string `json:"source"`

	SentimentLabel string  `json:"sentiment_label,omitempty"`
	SentimentScore float64 `json:"sentiment_score,omitempty"`
	Themes         string  `json:"themes,omitempty"` // ", "-joined bucket names or "Other"
}

// StageProgress is one pipeline stage's progress snapshot.
type StageProgress struct {
	Stage     string    `json:"stage"`
	RunID     string    `json:"run_id"`
	Total     int       `json:"total"`
	Processed int       `json:"processed"`
	Pct       float64   `json:"pct"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PipelineSnapshot aggregates the most recent progress per stage, as
// published to Redis and served by the dashboard.
type PipelineSnapshot struct {
	Stages   []*StageProgress `json:"stages"`
	ScanTime time.Time        `json:"scan_time"`
}
