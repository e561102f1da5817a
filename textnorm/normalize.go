// Package textnorm prepares mixed Chinese/Latin text for segmentation and
// pinyin lookup.
package textnorm

import (
	"strings"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// cjkPunctuation is the whitelist of CJK punctuation kept by Clean.
const cjkPunctuation = "，。？！：；（）【】、—"

// keptPunctuation holds the ASCII counterparts of cjkPunctuation that Clean keeps.
const keptPunctuation = ",.?!:;()[]-"

// Clean removes every rune that is not a CJK ideograph (U+4E00-U+9FFF),
// an ASCII digit or letter, or whitelisted punctuation.
func Clean(text string) string {
	if text == "" {
		return ""
	}

	var builder strings.Builder
	builder.Grow(len(text))
	for _, r := range text {
		if allowed(r) {
			builder.WriteRune(r)
		}
	}
	return builder.String()
}

func allowed(r rune) bool {
	switch {
	case IsHan(r):
		return true
	case r >= '0' && r <= '9', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return true
	case strings.ContainsRune(keptPunctuation, r):
		return true
	default:
		return strings.ContainsRune(cjkPunctuation, r)
	}
}

// IsHan reports whether r lies in the CJK Unified Ideographs block.
func IsHan(r rune) bool {
	return r >= 0x4E00 && r <= 0x9FFF
}

// FoldWidth composes text to NFC and folds full-width letters and digits
// (Ｔ, １) to ASCII. Other runes, full-width punctuation included, are left
// untouched so Clean still sees the CJK forms.
func FoldWidth(text string) string {
	if text == "" {
		return ""
	}

	text = norm.NFC.String(text)

	var builder strings.Builder
	builder.Grow(len(text))
	for _, r := range text {
		if r < 0xFF00 || r > 0xFFEF {
			builder.WriteRune(r)
			continue
		}
		folded := width.Fold.String(string(r))
		if len(folded) == 1 && isASCIIAlnum(folded[0]) {
			builder.WriteString(folded)
			continue
		}
		builder.WriteRune(r)
	}
	return builder.String()
}

func isASCIIAlnum(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
