package tokenizer

import (
	"unicode/utf8"

	"github.com/jamesainslie/go-wordpinyin/textnorm"
)

// span is a piece of input handled as one unit before dictionary lookup.
// Han spans go through Viterbi; all others are emitted as single tokens.
type span struct {
	text string
	han  bool
}

// splitSpans cuts normalized text into Han runs, number runs, Latin letter
// runs and single punctuation marks.
func splitSpans(text string) []span {
	if text == "" {
		return nil
	}

	var spans []span
	numbers := textnorm.NumberSpans(text)

	for i := 0; i < len(text); {
		if len(numbers) > 0 && numbers[0][0] == i {
			spans = append(spans, span{text: text[i:numbers[0][1]]})
			i = numbers[0][1]
			numbers = numbers[1:]
			continue
		}

		r, size := utf8.DecodeRuneInString(text[i:])
		j := i + size
		switch {
		case textnorm.IsHan(r):
			for j < len(text) {
				next, n := utf8.DecodeRuneInString(text[j:])
				if !textnorm.IsHan(next) {
					break
				}
				j += n
			}
			spans = append(spans, span{text: text[i:j], han: true})
		case isLatin(r):
			for j < len(text) && isLatin(rune(text[j])) {
				j++
			}
			spans = append(spans, span{text: text[i:j]})
		default:
			spans = append(spans, span{text: text[i:j]})
		}
		i = j
	}

	return spans
}

func isLatin(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
