// Package sentiment scores review text against a pretrained classifier
// served over HTTP. The model itself lives behind the inference service;
// this package only batches requests and normalizes the responses.
package sentiment

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"bankreviews/model"
)

// Prediction is one classified text.
type Prediction struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type classifyRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type classifyResponse struct {
	Results []Prediction `json:"results"`
}

// Client calls the sentiment inference service.
type Client struct {
	client *http.Client
	url    string
	model  string
}

func NewClient(url, modelName string, timeout time.Duration) *Client {
	return &Client{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		url:   url,
		model: modelName,
	}
}

// Classify scores a batch of texts in one request. Labels come back
// upper-cased.
func (c *Client) Classify(texts []string) ([]Prediction, error) {
	reqBody := classifyRequest{Model: c.model, Input: texts}
	data, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal classify request: %w", err)
	}
	resp, err := c.client.Post(c.url, "application/json", bytes.NewBuffer(data))
	if err != nil {
		return nil, fmt.Errorf("call sentiment API: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("sentiment API returned status %d: %s", resp.StatusCode, string(b))
	}
	var out classifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode classify response: %w", err)
	}
	if len(out.Results) != len(texts) {
		return nil, fmt.Errorf("sentiment results size mismatch: got=%d expect=%d", len(out.Results), len(texts))
	}
	for i := range out.Results {
		out.Results[i].Label = strings.ToUpper(strings.TrimSpace(out.Results[i].Label))
	}
	return out.Results, nil
}

// classifyWithRetry splits the batch in half on timeout so a slow
// service still returns as many scores as possible.
func classifyWithRetry(c *Client, texts []string) ([]Prediction, error) {
	preds, err := c.Classify(texts)
	if err == nil {
		return preds, nil
	}
	if len(texts) <= 1 {
		return nil, err
	}
	msg := err.Error()
	if strings.Contains(msg, "timeout") || strings.Contains(msg, "context deadline exceeded") || strings.Contains(msg, "Client.Timeout") {
		mid := len(texts) / 2
		log.Printf("[SENTIMENT-RETRY-SPLIT] size=%d -> %d+%d due to: %v", len(texts), mid, len(texts)-mid, err)
		left, errL := classifyWithRetry(c, texts[:mid])
		right, errR := classifyWithRetry(c, texts[mid:])
		if errL == nil && errR == nil {
			return append(left, right...), nil
		}
	}
	return nil, err
}

// AnalyzeAll fills SentimentLabel and SentimentScore for every review,
// processing batchSize texts per request. A batch that fails even after
// splitting degrades to NEUTRAL with score 0 instead of aborting.
func (c *Client) AnalyzeAll(reviews []model.Review, batchSize int) []model.Review {
	if batchSize < 1 {
		batchSize = 1
	}
	total := len(reviews)
	batchNum := 0
	for i := 0; i < total; i += batchSize {
		end := i + batchSize
		if end > total {
			end = total
		}
		texts := make([]string, 0, end-i)
		for _, r := range reviews[i:end] {
			texts = append(texts, r.Text)
		}

		preds, err := classifyWithRetry(c, texts)
		if err != nil {
			log.Printf("[SENTIMENT] batch %d-%d failed, falling back to NEUTRAL: %v", i, end, err)
			preds = make([]Prediction, len(texts))
			for j := range preds {
				preds[j] = Prediction{Label: model.SentimentNeutral, Score: 0}
			}
		}
		for j := range preds {
			reviews[i+j].SentimentLabel = preds[j].Label
			reviews[i+j].SentimentScore = preds[j].Score
		}

		batchNum++
		if batchNum%10 == 0 {
			log.Printf("[SENTIMENT] processed %d/%d reviews", end, total)
		}
	}
	return reviews
}
