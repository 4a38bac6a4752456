package charts

import (
	"fmt"
	"image/color"
	"image/png"
	"os"

	"github.com/psykhi/wordclouds"
)

var cloudColors = []color.Color{
	color.RGBA{R: 0x2e, G: 0x86, B: 0xab, A: 0xff},
	color.RGBA{R: 0xa2, G: 0x3b, B: 0x72, A: 0xff},
	color.RGBA{R: 0xf1, G: 0x8f, B: 0x01, A: 0xff},
	color.RGBA{R: 0x4e, G: 0xcd, B: 0xc4, A: 0xff},
}

// WordCloud renders a bank's most frequent review terms. It is a no-op
// returning an empty path when no font is configured or there are no
// words to draw.
func (r *Renderer) WordCloud(bank string, freq map[string]int) (string, error) {
	if r.FontFile == "" || len(freq) == 0 {
		return "", nil
	}
	if _, err := os.Stat(r.FontFile); err != nil {
		return "", fmt.Errorf("word cloud font: %w", err)
	}

	w := wordclouds.NewWordcloud(freq,
		wordclouds.FontFile(r.FontFile),
		wordclouds.Width(800),
		wordclouds.Height(600),
		wordclouds.FontMaxSize(72),
		wordclouds.FontMinSize(12),
		wordclouds.Colors(cloudColors),
		wordclouds.BackgroundColor(color.White),
	)
	img := w.Draw()

	return r.save(fmt.Sprintf("wordcloud_%s.png", bank), func(f *os.File) error {
		return png.Encode(f, img)
	})
}
