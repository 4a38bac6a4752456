// Package charts renders the static PNG visualizations. All drawing is
// delegated to the go-chart library.
package charts

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"bankreviews/model"
	"bankreviews/store"
)

// Fixed bank colors matching the project's report styling.
var bankColors = map[string]drawing.Color{
	"CBE":    drawing.ColorFromHex("2E86AB"),
	"BOA":    drawing.ColorFromHex("A23B72"),
	"Dashen": drawing.ColorFromHex("F18F01"),
}

var (
	positiveColor = drawing.ColorFromHex("4ECDC4")
	negativeColor = drawing.ColorFromHex("FF6B6B")
	neutralColor  = drawing.ColorFromHex("95A5A6")
	fallbackColor = drawing.ColorFromHex("7F8C8D")
)

func bankColor(bank string) drawing.Color {
	if c, ok := bankColors[bank]; ok {
		return c
	}
	return fallbackColor
}

func sentimentColor(label string) drawing.Color {
	switch label {
	case model.SentimentPositive:
		return positiveColor
	case model.SentimentNegative:
		return negativeColor
	default:
		return neutralColor
	}
}

// Renderer writes charts into its output directory.
type Renderer struct {
	OutDir string
	// FontFile enables word clouds when set to a TTF path.
	FontFile string
}

func NewRenderer(outDir, fontFile string) *Renderer {
	return &Renderer{OutDir: outDir, FontFile: fontFile}
}

func (r *Renderer) save(name string, render func(f *os.File) error) (string, error) {
	if err := os.MkdirAll(r.OutDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(r.OutDir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := render(f); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return path, f.Close()
}

// SentimentComparison draws one bar per bank x sentiment label.
func (r *Renderer) SentimentComparison(counts map[string]map[string]int) (string, error) {
	banks := sortedBanks(counts)
	var bars []chart.Value
	for _, bank := range banks {
		for _, label := range []string{model.SentimentNegative, model.SentimentPositive, model.SentimentNeutral} {
			n, ok := counts[bank][label]
			if !ok {
				continue
			}
			bars = append(bars, chart.Value{
				Value: float64(n),
				Label: fmt.Sprintf("%s %s", bank, shortLabel(label)),
				Style: chart.Style{FillColor: sentimentColor(label), StrokeColor: sentimentColor(label)},
			})
		}
	}
	if len(bars) == 0 {
		return "", nil
	}
	bc := chart.BarChart{
		Title:    "Sentiment Distribution by Bank",
		Width:    900,
		Height:   500,
		BarWidth: 50,
		Bars:     bars,
	}
	return r.save("sentiment_comparison.png", func(f *os.File) error {
		return bc.Render(chart.PNG, f)
	})
}

// AverageRating draws the average star rating per bank on a 0-5 axis.
func (r *Renderer) AverageRating(cmp []store.BankComparison) (string, error) {
	var bars []chart.Value
	for _, c := range cmp {
		bars = append(bars, chart.Value{
			Value: c.AvgRating,
			Label: fmt.Sprintf("%s (%.2f)", c.Bank, c.AvgRating),
			Style: chart.Style{FillColor: bankColor(c.Bank), StrokeColor: bankColor(c.Bank)},
		})
	}
	if len(bars) == 0 {
		return "", nil
	}
	bc := chart.BarChart{
		Title:    "Average Star Rating by Bank",
		Width:    700,
		Height:   500,
		BarWidth: 80,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: 5},
		},
		Bars: bars,
	}
	return r.save("average_rating.png", func(f *os.File) error {
		return bc.Render(chart.PNG, f)
	})
}

// PainPoints draws a bank's top pain-point themes (at most five).
func (r *Renderer) PainPoints(bank string, counts []store.ThemeCount) (string, error) {
	var bars []chart.Value
	for _, c := range counts {
		if c.Bank != bank {
			continue
		}
		bars = append(bars, chart.Value{
			Value: float64(c.Count),
			Label: abbreviate(c.Theme),
			Style: chart.Style{FillColor: bankColor(bank), StrokeColor: bankColor(bank)},
		})
		if len(bars) == 5 {
			break
		}
	}
	if len(bars) == 0 {
		return "", nil
	}
	bc := chart.BarChart{
		Title:    fmt.Sprintf("%s - Top Pain Points", bank),
		Width:    800,
		Height:   500,
		BarWidth: 70,
		Bars:     bars,
	}
	return r.save(fmt.Sprintf("pain_points_%s.png", bank), func(f *os.File) error {
		return bc.Render(chart.PNG, f)
	})
}

// RatingDonut draws a bank's star-rating distribution.
func (r *Renderer) RatingDonut(bank string, dist map[int]int) (string, error) {
	total := 0
	for _, n := range dist {
		total += n
	}
	if total == 0 {
		return "", nil
	}
	var values []chart.Value
	for rating := 1; rating <= 5; rating++ {
		n := dist[rating]
		if n == 0 {
			continue
		}
		values = append(values, chart.Value{
			Value: float64(n),
			Label: fmt.Sprintf("%d stars (%.1f%%)", rating, float64(n)*100/float64(total)),
		})
	}
	dc := chart.DonutChart{
		Title:  fmt.Sprintf("%s - Rating Distribution", bank),
		Width:  600,
		Height: 600,
		Values: values,
	}
	return r.save(fmt.Sprintf("rating_distribution_%s.png", bank), func(f *os.File) error {
		return dc.Render(chart.PNG, f)
	})
}

// MonthlyTrends draws one positive-percentage line per bank.
func (r *Renderer) MonthlyTrends(trend []store.MonthlyTrend) (string, error) {
	perBank := make(map[string][]store.MonthlyTrend)
	for _, t := range trend {
		perBank[t.Bank] = append(perBank[t.Bank], t)
	}
	if len(perBank) == 0 {
		return "", nil
	}

	banks := make([]string, 0, len(perBank))
	for b := range perBank {
		banks = append(banks, b)
	}
	sort.Strings(banks)

	var series []chart.Series
	for _, bank := range banks {
		points := perBank[bank]
		xs := make([]time.Time, 0, len(points))
		ys := make([]float64, 0, len(points))
		for _, p := range points {
			month, err := time.Parse("2006-01", p.Month)
			if err != nil {
				continue
			}
			xs = append(xs, month)
			ys = append(ys, p.PositivePct)
		}
		if len(xs) == 0 {
			continue
		}
		series = append(series, chart.TimeSeries{
			Name:    bank,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: bankColor(bank),
				StrokeWidth: 2.5,
			},
		})
	}
	if len(series) == 0 {
		return "", nil
	}

	graph := chart.Chart{
		Title:  "Monthly Positive Sentiment Trends",
		Width:  1000,
		Height: 500,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("2006-01"),
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: 100},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return r.save("monthly_trends.png", func(f *os.File) error {
		return graph.Render(chart.PNG, f)
	})
}

func sortedBanks(counts map[string]map[string]int) []string {
	banks := make([]string, 0, len(counts))
	for b := range counts {
		banks = append(banks, b)
	}
	sort.Strings(banks)
	return banks
}

func shortLabel(sentiment string) string {
	switch sentiment {
	case model.SentimentPositive:
		return "pos"
	case model.SentimentNegative:
		return "neg"
	default:
		return "neu"
	}
}

// abbreviate shortens long theme names so bar labels stay readable.
func abbreviate(theme string) string {
	if len(theme) <= 14 {
		return theme
	}
	return theme[:12] + ".."
}
