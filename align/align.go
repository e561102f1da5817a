// Package align regroups a per-character pinyin sequence onto word tokens.
package align

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jamesainslie/go-wordpinyin/textnorm"
	"github.com/jamesainslie/go-wordpinyin/tone"
)

// ErrAlignment indicates that token lengths and the syllable sequence disagree.
var ErrAlignment = errors.New("align: token and syllable sequences disagree")

// Aligned pairs a token with its syllable group.
type Aligned struct {
	Surface string
	Pinyin  string
}

// Width returns how many syllable entries token consumes: one for a number,
// otherwise one per rune.
func Width(token string) int {
	if textnorm.IsNumber(token) {
		return 1
	}
	return utf8.RuneCountInString(token)
}

// Align walks tokens in order and joins, for each, the next Width(token)
// syllables rendered in style.
//
// With strict set, reading past the end of syllables or leaving syllables
// unconsumed returns ErrAlignment. Otherwise the last groups are silently
// shortened and surplus syllables dropped.
func Align(tokens, syllables []string, style tone.Style, strict bool) ([]Aligned, error) {
	if len(tokens) == 0 {
		if strict && len(syllables) > 0 {
			return nil, fmt.Errorf("%w: %d syllables left for 0 tokens", ErrAlignment, len(syllables))
		}
		return nil, nil
	}

	result := make([]Aligned, 0, len(tokens))
	k := 0
	for i, token := range tokens {
		n := Width(token)
		end := k + n
		if end > len(syllables) {
			if strict {
				return nil, fmt.Errorf("%w: token %d %q needs syllables [%d:%d], have %d",
					ErrAlignment, i, token, k, end, len(syllables))
			}
			end = len(syllables)
		}

		var group strings.Builder
		for j := min(k, end); j < end; j++ {
			group.WriteString(tone.Convert(syllables[j], style))
		}

		result = append(result, Aligned{Surface: token, Pinyin: group.String()})
		k += n
	}

	if strict && k < len(syllables) {
		return nil, fmt.Errorf("%w: %d of %d syllables unconsumed", ErrAlignment, len(syllables)-k, len(syllables))
	}

	return result, nil
}

// Groups returns the syllable groups of aligned, in order.
func Groups(aligned []Aligned) []string {
	if len(aligned) == 0 {
		return nil
	}
	groups := make([]string, len(aligned))
	for i, a := range aligned {
		groups[i] = a.Pinyin
	}
	return groups
}
