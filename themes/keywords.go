package themes

import (
	"fmt"
	"sort"
	"strings"

	"github.com/james-bowman/nlp"

	"bankreviews/model"
)

// minDocFreq drops terms that appear in only one review.
const minDocFreq = 2

// Keyword is a ranked TF-IDF term.
type Keyword struct {
	Term  string
	Score float64
}

// ExtractKeywords ranks the terms of a review subset by mean TF-IDF
// across documents and returns the topN. The vectorizer and TF-IDF
// weighting come from the nlp library; this function only preprocesses,
// applies the document-frequency floor, and aggregates.
func ExtractKeywords(texts []string, topN int) ([]Keyword, error) {
	docs := make([]string, 0, len(texts))
	for _, t := range texts {
		if p := Preprocess(t); p != "" {
			docs = append(docs, p)
		}
	}
	if len(docs) < minDocFreq || topN <= 0 {
		return nil, nil
	}

	docFreq := documentFrequencies(docs)

	vectoriser := nlp.NewCountVectoriser(englishStopwords...)
	transformer := nlp.NewTfidfTransformer()
	pipeline := nlp.NewPipeline(vectoriser, transformer)

	matrix, err := pipeline.FitTransform(docs...)
	if err != nil {
		return nil, err
	}

	// The fitted matrix holds terms as rows and documents as columns.
	_, cols := matrix.Dims()
	out := make([]Keyword, 0, len(vectoriser.Vocabulary))
	for term, row := range vectoriser.Vocabulary {
		if docFreq[term] < minDocFreq {
			continue
		}
		var sum float64
		for c := 0; c < cols; c++ {
			sum += matrix.At(row, c)
		}
		out = append(out, Keyword{Term: term, Score: sum / float64(cols)})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Term < out[j].Term
	})
	if len(out) > topN {
		out = out[:topN]
	}
	return out, nil
}

// SegmentKeywords is one bank x sentiment keyword ranking.
type SegmentKeywords struct {
	Bank      string
	Sentiment string
	Keywords  []Keyword
}

// segmentOrder: pain points before strengths.
var segmentOrder = []string{model.SentimentNegative, model.SentimentPositive, model.SentimentNeutral}

// KeywordsByBankSentiment ranks keywords separately per bank and per
// sentiment label, so a bank's complaints and its praise don't blur into
// one list. Segments with too few reviews to rank are omitted.
func KeywordsByBankSentiment(reviews []model.Review, topN int) ([]SegmentKeywords, error) {
	texts := make(map[string]map[string][]string)
	for _, r := range reviews {
		if r.SentimentLabel == "" {
			continue
		}
		if texts[r.Bank] == nil {
			texts[r.Bank] = make(map[string][]string)
		}
		texts[r.Bank][r.SentimentLabel] = append(texts[r.Bank][r.SentimentLabel], r.Text)
	}

	banks := make([]string, 0, len(texts))
	for b := range texts {
		banks = append(banks, b)
	}
	sort.Strings(banks)

	var out []SegmentKeywords
	for _, bank := range banks {
		for _, label := range segmentOrder {
			docs := texts[bank][label]
			if len(docs) == 0 {
				continue
			}
			kws, err := ExtractKeywords(docs, topN)
			if err != nil {
				return nil, fmt.Errorf("%s %s keywords: %w", bank, label, err)
			}
			if len(kws) == 0 {
				continue
			}
			out = append(out, SegmentKeywords{Bank: bank, Sentiment: label, Keywords: kws})
		}
	}
	return out, nil
}

// WordFrequencies counts non-stopword terms across texts, keeping the
// max most frequent. Used for the word-cloud charts.
func WordFrequencies(texts []string, max int) map[string]int {
	freq := make(map[string]int)
	for _, t := range texts {
		for _, word := range strings.Fields(Preprocess(t)) {
			if isStopword(word) || len(word) < 2 {
				continue
			}
			freq[word]++
		}
	}
	if max <= 0 || len(freq) <= max {
		return freq
	}
	type wf struct {
		word  string
		count int
	}
	all := make([]wf, 0, len(freq))
	for w, c := range freq {
		all = append(all, wf{w, c})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].count != all[j].count {
			return all[i].count > all[j].count
		}
		return all[i].word < all[j].word
	})
	out := make(map[string]int, max)
	for _, e := range all[:max] {
		out[e.word] = e.count
	}
	return out
}

// documentFrequencies counts, per term, how many documents contain it.
func documentFrequencies(docs []string) map[string]int {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, word := range strings.Fields(doc) {
			if isStopword(word) {
				continue
			}
			if _, ok := seen[word]; ok {
				continue
			}
			seen[word] = struct{}{}
			df[word]++
		}
	}
	return df
}
