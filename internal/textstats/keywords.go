// Package textstats extracts keywords and lexicon-based sentiment from
// comment and description text. Chinese text is segmented into character
// bigrams, which approximates word segmentation well enough for frequency
// ranking; latin text splits on non-letter boundaries.
package textstats

import (
	"sort"
	"strings"
	"unicode"
)

// Keyword is a ranked token with its occurrence count.
type Keyword struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Tokenize splits text into countable tokens: Han runs become overlapping
// character bigrams (a lone Han rune stands alone), latin and digit runs
// become lowercased words. Stopwords, single latin letters and pure digit
// tokens are dropped.
func Tokenize(text string) []string {
	var tokens []string
	var han []rune
	var latin []rune

	flushHan := func() {
		if len(han) == 1 {
			emit(&tokens, string(han))
		}
		for i := 0; i+1 < len(han); i++ {
			emit(&tokens, string(han[i:i+2]))
		}
		han = han[:0]
	}
	flushLatin := func() {
		if len(latin) > 1 {
			emit(&tokens, strings.ToLower(string(latin)))
		}
		latin = latin[:0]
	}

	for _, r := range text {
		switch {
		case unicode.Is(unicode.Han, r):
			flushLatin()
			han = append(han, r)
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			flushHan()
			latin = append(latin, r)
		default:
			flushHan()
			flushLatin()
		}
	}
	flushHan()
	flushLatin()
	return tokens
}

func emit(tokens *[]string, tok string) {
	if !IsStopword(tok) {
		*tokens = append(*tokens, tok)
	}
}

// TopKeywords counts tokens across all texts and returns the n most
// frequent, descending. Tokens tied on count rank by first appearance.
func TopKeywords(texts []string, n int) []Keyword {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, text := range texts {
		for _, tok := range Tokenize(text) {
			if _, seen := counts[tok]; !seen {
				order = append(order, tok)
			}
			counts[tok]++
		}
	}

	ranked := make([]Keyword, 0, len(order))
	for _, tok := range order {
		ranked = append(ranked, Keyword{Word: tok, Count: counts[tok]})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Count > ranked[j].Count })

	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
