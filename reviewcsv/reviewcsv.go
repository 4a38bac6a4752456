// Package reviewcsv reads and writes the review CSV files exchanged
// between pipeline stages.
package reviewcsv

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"bankreviews/model"
)

// Column order of the raw file. Analyzed files append the analysis columns.
var baseHeader = []string{"review_id", "review_text", "rating", "date", "bank", "app_name", "source"}

var analysisHeader = []string{"sentiment_label", "sentiment_score", "themes"}

// Writer writes reviews to a single CSV file. Safe for concurrent use.
type Writer struct {
	mu       sync.Mutex
	file     *os.File
	w        *csv.Writer
	analyzed bool
}

// NewWriter creates path (and parent directories) and writes the header.
// When analyzed is true the sentiment/theme columns are included.
func NewWriter(path string, analyzed bool) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w := csv.NewWriter(f)
	header := baseHeader
	if analyzed {
		header = append(append([]string{}, baseHeader...), analysisHeader...)
	}
	if err := w.Write(header); err != nil {
		f.Close()
		return nil, err
	}
	return &Writer{file: f, w: w, analyzed: analyzed}, nil
}

func (w *Writer) Write(r model.Review) error {
	row := []string{
		r.ID,
		r.Text,
		strconv.Itoa(r.Rating),
		r.Date,
		r.Bank,
		r.AppID,
		r.Source,
	}
	if w.analyzed {
		row = append(row,
			r.SentimentLabel,
			strconv.FormatFloat(r.SentimentScore, 'f', 4, 64),
			r.Themes,
		)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.w.Write(row)
}

func (w *Writer) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.w.Flush()
	return w.w.Error()
}

func (w *Writer) Close() error {
	if err := w.Flush(); err != nil {
		w.file.Close()
		return err
	}
	return w.file.Close()
}

// Read loads every row of a review CSV. The header decides which columns
// are present, so raw and analyzed files both parse.
func Read(path string) ([]model.Review, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(bufio.NewReader(f))
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, err
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	if _, ok := col["review_id"]; !ok {
		return nil, fmt.Errorf("%s: missing review_id column", path)
	}

	field := func(rec []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return rec[i]
	}

	var out []model.Review
	for {
		rec, err := r.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		rating, _ := strconv.Atoi(strings.TrimSpace(field(rec, "rating")))
		score, _ := strconv.ParseFloat(strings.TrimSpace(field(rec, "sentiment_score")), 64)
		out = append(out, model.Review{
			ID:             strings.TrimSpace(field(rec, "review_id")),
			Text:           field(rec, "review_text"),
			Rating:         rating,
			Date:           strings.TrimSpace(field(rec, "date")),
			Bank:           strings.TrimSpace(field(rec, "bank")),
			AppID:          strings.TrimSpace(field(rec, "app_name")),
			Source:         strings.TrimSpace(field(rec, "source")),
			SentimentLabel: strings.TrimSpace(field(rec, "sentiment_label")),
			SentimentScore: score,
			Themes:         strings.TrimSpace(field(rec, "themes")),
		})
	}
	return out, nil
}

// CountRows returns the number of data rows (header excluded) in a CSV.
func CountRows(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	r := csv.NewReader(bufio.NewReader(f))
	r.ReuseRecord = true
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	if _, err := r.Read(); err != nil {
		if err == io.EOF {
			return 0, nil
		}
		return 0, err
	}
	count := 0
	for {
		if _, err := r.Read(); err != nil {
			if err == io.EOF {
				break
			}
			return count, err
		}
		count++
	}
	return count, nil
}
