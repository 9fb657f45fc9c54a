package textstats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"douyinsight/domain/record"
)

func TestTokenizeHanBigrams(t *testing.T) {
	tokens := Tokenize("红烧肉好看")
	assert.Contains(t, tokens, "红烧")
	assert.Contains(t, tokens, "烧肉")
	assert.Contains(t, tokens, "好看")
}

func TestTokenizeMixedScripts(t *testing.T) {
	tokens := Tokenize("vlog日常 nice!")
	assert.Contains(t, tokens, "vlog")
	assert.Contains(t, tokens, "日常")
	assert.Contains(t, tokens, "nice")
}

func TestTokenizeFiltersStopwordsAndDigits(t *testing.T) {
	tokens := Tokenize("the 12345 哈哈")
	assert.NotContains(t, tokens, "the")
	assert.NotContains(t, tokens, "12345")
	assert.NotContains(t, tokens, "哈哈")
}

func TestTokenizeEmpty(t *testing.T) {
	assert.Empty(t, Tokenize(""))
	assert.Empty(t, Tokenize("   !!! "))
}

func TestTopKeywords(t *testing.T) {
	texts := []string{"好看好看", "好看", "日常vlog", "vlog"}
	keywords := TopKeywords(texts, 2)

	require.NotEmpty(t, keywords)
	assert.Equal(t, "好看", keywords[0].Word)
	assert.Equal(t, 3, keywords[0].Count)
	assert.LessOrEqual(t, len(keywords), 2)
}

func TestTopKeywordsTieOrder(t *testing.T) {
	keywords := TopKeywords([]string{"日常 美食"}, 0)
	require.Len(t, keywords, 2)
	// Equal counts keep first-appearance order.
	assert.Equal(t, "日常", keywords[0].Word)
	assert.Equal(t, "美食", keywords[1].Word)
}

func TestScoreThresholds(t *testing.T) {
	assert.Equal(t, 1.0, Score("太棒了好看"))
	assert.Equal(t, 0.0, Score("垃圾失望"))
	assert.Equal(t, 0.5, Score("今天天气"))
	assert.Equal(t, 0.5, Score(""))
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "positive", Label(0.6))
	assert.Equal(t, "positive", Label(0.95))
	assert.Equal(t, "negative", Label(0.4))
	assert.Equal(t, "negative", Label(0.0))
	assert.Equal(t, "neutral", Label(0.5))
	assert.Equal(t, "neutral", Label(0.41))
}

func TestAnalyzeComments(t *testing.T) {
	comments := []record.Comment{
		{Content: "太棒了好看", UserName: "a"},
		{Content: "垃圾失望", UserName: "b"},
		{Content: "今天天气", UserName: "c"},
	}

	summary := AnalyzeComments(comments)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 3, summary.Analyzed)
	assert.Equal(t, 1, summary.Positive)
	assert.Equal(t, 1, summary.Negative)
	assert.Equal(t, 1, summary.Neutral)
	assert.Equal(t, 0.5, summary.AverageScore)
	require.Len(t, summary.Comments, 3)
	assert.Equal(t, 1.0, summary.Comments[0].Sentiment)
}

func TestAnalyzeCommentsEmpty(t *testing.T) {
	summary := AnalyzeComments(nil)
	assert.Equal(t, 0, summary.Total)
	assert.Equal(t, 0.0, summary.AverageScore)
	assert.NotNil(t, summary.Comments)
	assert.Empty(t, summary.Comments)
}

func TestAnalyzeCommentsCapsSample(t *testing.T) {
	comments := make([]record.Comment, 150)
	for i := range comments {
		comments[i] = record.Comment{Content: "好看"}
	}

	summary := AnalyzeComments(comments)
	assert.Equal(t, 150, summary.Total)
	assert.Len(t, summary.Comments, 100)
}
