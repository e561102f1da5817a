// Package tone converts numeric-tone pinyin syllables into the output styles
// used for tokenized pinyin.
package tone

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jamesainslie/go-wordpinyin/textnorm"
)

// ErrInvalidStyle is returned by ParseStyle for unknown style names.
var ErrInvalidStyle = errors.New("tone: invalid style")

// Style selects how syllables are rendered.
type Style int

const (
	// StyleNumeric keeps the numeric tone notation ("ma3").
	StyleNumeric Style = iota
	// StylePlain drops tone digits ("ma").
	StylePlain
	// StyleMarks renders tones as diacritics ("mǎ").
	StyleMarks
)

func (s Style) String() string {
	switch s {
	case StyleNumeric:
		return "numeric"
	case StylePlain:
		return "plain"
	case StyleMarks:
		return "marks"
	default:
		return fmt.Sprintf("Style(%d)", int(s))
	}
}

// ParseStyle maps a style name to a Style. Matching ignores case and
// surrounding whitespace; the empty string and "none" select StyleNumeric.
func ParseStyle(name string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none", "numeric":
		return StyleNumeric, nil
	case "plain":
		return StylePlain, nil
	case "marks":
		return StyleMarks, nil
	default:
		return StyleNumeric, fmt.Errorf("%w: %q", ErrInvalidStyle, name)
	}
}

// Valid reports whether s is one of the defined styles.
func (s Style) Valid() bool {
	return s >= StyleNumeric && s <= StyleMarks
}

// Convert renders one syllable-sequence entry in the given style.
// Numeric entries ("100") are returned unchanged for every style.
func Convert(entry string, style Style) string {
	switch style {
	case StylePlain:
		if textnorm.IsNumber(entry) {
			return entry
		}
		return Plain(entry)
	case StyleMarks:
		if textnorm.IsNumber(entry) {
			return entry
		}
		return Marks(entry)
	default:
		return entry
	}
}

// Plain removes every ASCII digit from s.
func Plain(s string) string {
	if !strings.ContainsAny(s, "0123456789") {
		return s
	}
	var builder strings.Builder
	builder.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			builder.WriteByte(s[i])
		}
	}
	return builder.String()
}
