package tone

import (
	"regexp"
	"strings"
)

// toneMarks lists each vowel with tones 1 through 4.
var toneMarks = map[rune][4]rune{
	'a': {'ā', 'á', 'ǎ', 'à'},
	'e': {'ē', 'é', 'ě', 'è'},
	'i': {'ī', 'í', 'ǐ', 'ì'},
	'o': {'ō', 'ó', 'ǒ', 'ò'},
	'u': {'ū', 'ú', 'ǔ', 'ù'},
	'ü': {'ǖ', 'ǘ', 'ǚ', 'ǜ'},
	'A': {'Ā', 'Á', 'Ǎ', 'À'},
	'E': {'Ē', 'É', 'Ě', 'È'},
	'I': {'Ī', 'Í', 'Ǐ', 'Ì'},
	'O': {'Ō', 'Ó', 'Ǒ', 'Ò'},
	'U': {'Ū', 'Ú', 'Ǔ', 'Ù'},
	'Ü': {'Ǖ', 'Ǘ', 'Ǚ', 'Ǜ'},
}

// numbered matches a syllable followed by its tone digit. Tone 5 and 0 mark
// the neutral tone.
var numbered = regexp.MustCompile(`([A-Za-zÜü:]+)([0-5])`)

var umlaut = strings.NewReplacer("u:", "ü", "U:", "Ü", "v", "ü", "V", "Ü")

// Marks rewrites numeric-tone syllables in s with tone diacritics:
// "zhong1guo2" becomes "zhōngguó", "lv4" becomes "lǜ". Text without tone
// digits is returned as is.
func Marks(s string) string {
	if !strings.ContainsAny(s, "012345") {
		return s
	}
	return numbered.ReplaceAllStringFunc(s, func(m string) string {
		syllable, digit := m[:len(m)-1], m[len(m)-1]
		return markSyllable(umlaut.Replace(syllable), int(digit-'0'))
	})
}

func markSyllable(syllable string, tone int) string {
	if tone < 1 || tone > 4 {
		return syllable
	}

	runes := []rune(syllable)
	idx := markIndex(runes)
	if idx < 0 {
		return syllable
	}
	runes[idx] = toneMarks[runes[idx]][tone-1]
	return string(runes)
}

// markIndex picks the vowel carrying the tone: a or e when present, the o of
// "ou", otherwise the last vowel.
func markIndex(runes []rune) int {
	for i, r := range runes {
		switch r {
		case 'a', 'e', 'A', 'E':
			return i
		}
	}
	for i := 0; i+1 < len(runes); i++ {
		if (runes[i] == 'o' || runes[i] == 'O') && (runes[i+1] == 'u' || runes[i+1] == 'U') {
			return i
		}
	}
	for i := len(runes) - 1; i >= 0; i-- {
		if _, ok := toneMarks[runes[i]]; ok {
			return i
		}
	}
	return -1
}
