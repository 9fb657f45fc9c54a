package textstats

// stopwords holds function words and filler terms excluded from keyword
// and sentiment scoring. The list mixes Chinese particles with the latin
// fillers that show up in short-video comments.
var stopwords = map[string]struct{}{}

func init() {
	for _, w := range stopwordList {
		stopwords[w] = struct{}{}
	}
}

var stopwordList = []string{
	// Chinese particles and pronouns
	"的", "了", "是", "我", "你", "他", "她", "它", "们", "在",
	"有", "和", "就", "不", "人", "都", "一", "一个", "上", "也",
	"很", "到", "说", "要", "去", "会", "着", "没有", "看", "好",
	"这", "那", "这个", "那个", "什么", "怎么", "为什么", "因为", "所以", "但是",
	"可以", "自己", "这样", "那样", "还是", "还有", "或者", "而且", "如果", "虽然",
	"然后", "现在", "时候", "知道", "觉得", "真的", "感觉", "喜欢", "已经", "出来",
	"这么", "那么", "多少", "一下", "一些", "一样", "大家", "我们", "你们", "他们",
	"吗", "吧", "呢", "啊", "哦", "嗯", "哈", "呀", "哇", "嘛",
	"啦", "哈哈", "哈哈哈", "嘿嘿", "呵呵", "嘻嘻",
	// latin fillers
	"the", "a", "an", "and", "or", "of", "to", "in", "is", "it",
	"for", "on", "with", "this", "that",
}

// IsStopword reports whether the token is filtered from text statistics.
// Pure digit tokens count as stopwords.
func IsStopword(token string) bool {
	if token == "" {
		return true
	}
	if _, ok := stopwords[token]; ok {
		return true
	}
	for _, r := range token {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
