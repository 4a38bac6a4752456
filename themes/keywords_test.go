package themes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bankreviews/model"
)

func TestExtractKeywords(t *testing.T) {
	texts := []string{
		"The transfer failed again, transfer always failing",
		"Transfer failed and support never answers",
		"Transfer keeps failing, terrible experience",
		"Singleton word zebra appears only here",
	}

	keywords, err := ExtractKeywords(texts, 10)
	require.NoError(t, err)
	require.NotEmpty(t, keywords)

	terms := make(map[string]bool, len(keywords))
	for _, kw := range keywords {
		terms[kw.Term] = true
		assert.Greater(t, kw.Score, 0.0)
		assert.False(t, isStopword(kw.Term), "stopword %q leaked into keywords", kw.Term)
	}
	assert.True(t, terms["transfer"], "expected shared term to rank")
	assert.False(t, terms["zebra"], "term below document-frequency floor must be dropped")
}

func TestExtractKeywordsRanking(t *testing.T) {
	texts := []string{
		"crash crash crash happens on login",
		"crash on every login attempt",
		"login works sometimes",
	}

	keywords, err := ExtractKeywords(texts, 2)
	require.NoError(t, err)
	require.Len(t, keywords, 2)
	for i := 1; i < len(keywords); i++ {
		assert.GreaterOrEqual(t, keywords[i-1].Score, keywords[i].Score)
	}
}

func TestKeywordsByBankSentiment(t *testing.T) {
	reviews := []model.Review{
		{Bank: "CBE", SentimentLabel: model.SentimentNegative, Text: "transfer failed again and again"},
		{Bank: "CBE", SentimentLabel: model.SentimentNegative, Text: "every transfer failed this week"},
		{Bank: "CBE", SentimentLabel: model.SentimentPositive, Text: "fast and simple interface"},
		{Bank: "CBE", SentimentLabel: model.SentimentPositive, Text: "really fast, simple to navigate"},
		{Bank: "BOA", SentimentLabel: model.SentimentNegative, Text: "login keeps crashing constantly"},
		{Bank: "BOA", SentimentLabel: model.SentimentNegative, Text: "login crashing on startup"},
	}

	segments, err := KeywordsByBankSentiment(reviews, 10)
	require.NoError(t, err)
	require.Len(t, segments, 3)

	// Banks alphabetical, negative before positive inside a bank.
	assert.Equal(t, "BOA", segments[0].Bank)
	assert.Equal(t, model.SentimentNegative, segments[0].Sentiment)
	assert.Equal(t, "CBE", segments[1].Bank)
	assert.Equal(t, model.SentimentNegative, segments[1].Sentiment)
	assert.Equal(t, "CBE", segments[2].Bank)
	assert.Equal(t, model.SentimentPositive, segments[2].Sentiment)

	terms := func(seg SegmentKeywords) map[string]bool {
		m := make(map[string]bool, len(seg.Keywords))
		for _, kw := range seg.Keywords {
			m[kw.Term] = true
		}
		return m
	}
	assert.True(t, terms(segments[1])["transfer"], "negative segment should rank its complaint term")
	assert.False(t, terms(segments[2])["transfer"], "positive segment must not inherit negative terms")
	assert.True(t, terms(segments[2])["fast"])
	assert.True(t, terms(segments[0])["login"])
}

func TestKeywordsByBankSentimentSkipsThinSegments(t *testing.T) {
	reviews := []model.Review{
		// A single document cannot clear the document-frequency floor.
		{Bank: "Dashen", SentimentLabel: model.SentimentNegative, Text: "network down all day"},
		{Bank: "Dashen", SentimentLabel: "", Text: "unlabeled row is ignored"},
	}
	segments, err := KeywordsByBankSentiment(reviews, 10)
	require.NoError(t, err)
	assert.Empty(t, segments)
}

func TestExtractKeywordsDegenerateInput(t *testing.T) {
	keywords, err := ExtractKeywords([]string{"only one document"}, 10)
	require.NoError(t, err)
	assert.Empty(t, keywords)

	keywords, err = ExtractKeywords(nil, 10)
	require.NoError(t, err)
	assert.Empty(t, keywords)

	keywords, err = ExtractKeywords([]string{"123", "!!!"}, 10)
	require.NoError(t, err)
	assert.Empty(t, keywords)
}
