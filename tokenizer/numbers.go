package tokenizer

import (
	"strings"

	"github.com/jamesainslie/go-wordpinyin/textnorm"
)

// GroupNumbers re-cuts words so that every number run in text forms exactly
// one token: boundaries inside a run are removed and boundaries are added at
// both of its edges. Words that do not concatenate to text are returned
// unchanged.
func GroupNumbers(text string, words []string) []string {
	numbers := textnorm.NumberSpans(text)
	if len(numbers) == 0 || strings.Join(words, "") != text {
		return words
	}

	cut := make([]bool, len(text)+1)
	off := 0
	for _, w := range words {
		off += len(w)
		cut[off] = true
	}
	for _, s := range numbers {
		for p := s[0] + 1; p < s[1]; p++ {
			cut[p] = false
		}
		cut[s[0]] = true
		cut[s[1]] = true
	}

	grouped := make([]string, 0, len(words))
	start := 0
	for p := 1; p <= len(text); p++ {
		if cut[p] {
			grouped = append(grouped, text[start:p])
			start = p
		}
	}
	return grouped
}
