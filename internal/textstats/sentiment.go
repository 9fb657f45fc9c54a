package textstats

import (
	"math"

	"douyinsight/domain/record"
)

// Sentiment thresholds on the [0,1] score scale.
const (
	PositiveThreshold = 0.6
	NegativeThreshold = 0.4
)

const sampledComments = 100

// positiveTerms and negativeTerms form the sentiment lexicon. Scoring
// counts lexicon hits among the tokens, so a term must survive
// tokenization: Chinese entries are one or two characters.
var positiveTerms = map[string]struct{}{}
var negativeTerms = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"好看", "太棒", "棒", "赞", "点赞", "厉害", "牛", "优秀", "漂亮", "美",
		"帅", "可爱", "有趣", "好玩", "搞笑", "开心", "快乐", "幸福", "感动", "温暖",
		"支持", "加油", "期待", "精彩", "完美", "不错", "用心", "学到", "推荐", "良心",
		"爱", "绝", "顶", "强", "妙", "香", "稳", "帅气", "好听", "治愈",
		"nice", "good", "great", "love", "cool", "wow", "best", "amazing",
	} {
		positiveTerms[w] = struct{}{}
	}
	for _, w := range []string{
		"难看", "差", "烂", "垃圾", "失望", "无聊", "讨厌", "恶心", "假", "骗",
		"坑", "坑人", "浪费", "难受", "生气", "愤怒", "伤心", "难过", "糟糕", "低俗",
		"抄袭", "营销", "广告", "套路", "离谱", "尴尬", "辣鸡", "翻车", "敷衍", "虚假",
		"bad", "worst", "hate", "boring", "fake", "awful",
	} {
		negativeTerms[w] = struct{}{}
	}
}

// ScoredComment is one analyzed comment in a sentiment response.
type ScoredComment struct {
	Content   string  `json:"content"`
	Sentiment float64 `json:"sentiment"`
	UserName  string  `json:"user_name"`
}

// SentimentSummary aggregates per-comment scores. Comments holds at most
// the first hundred analyzed comments.
type SentimentSummary struct {
	Total        int             `json:"total"`
	Analyzed     int             `json:"analyzed"`
	Positive     int             `json:"positive"`
	Negative     int             `json:"negative"`
	Neutral      int             `json:"neutral"`
	AverageScore float64         `json:"average_score"`
	Comments     []ScoredComment `json:"comments"`
}

// Score maps text to a sentiment value in [0,1] from the ratio of
// positive lexicon hits to all lexicon hits, rounded to four decimals.
// Text with no lexicon hit scores a neutral 0.5.
func Score(text string) float64 {
	var pos, neg int
	for _, tok := range Tokenize(text) {
		if _, ok := positiveTerms[tok]; ok {
			pos++
		}
		if _, ok := negativeTerms[tok]; ok {
			neg++
		}
	}
	if pos+neg == 0 {
		return 0.5
	}
	return math.Round(float64(pos)/float64(pos+neg)*10000) / 10000
}

// Label classifies a score against the sentiment thresholds.
func Label(score float64) string {
	switch {
	case score >= PositiveThreshold:
		return "positive"
	case score <= NegativeThreshold:
		return "negative"
	default:
		return "neutral"
	}
}

// AnalyzeComments scores every comment and aggregates label counts and
// the mean score. Empty input yields the zero summary with an empty
// comment list.
func AnalyzeComments(comments []record.Comment) SentimentSummary {
	summary := SentimentSummary{Comments: []ScoredComment{}}
	summary.Total = len(comments)

	var totalScore float64
	for _, c := range comments {
		score := Score(c.Content)
		switch Label(score) {
		case "positive":
			summary.Positive++
		case "negative":
			summary.Negative++
		default:
			summary.Neutral++
		}
		totalScore += score
		summary.Analyzed++

		if len(summary.Comments) < sampledComments {
			summary.Comments = append(summary.Comments, ScoredComment{
				Content:   c.Content,
				Sentiment: score,
				UserName:  c.UserName,
			})
		}
	}

	if summary.Analyzed > 0 {
		summary.AverageScore = math.Round(totalScore/float64(summary.Analyzed)*10000) / 10000
	}
	return summary
}
