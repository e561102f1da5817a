package textnorm

import (
	"regexp"
	"strconv"
	"strings"
)

var punctuationMap = map[string]string{
	"，": ",",
	"。": ".",
	"！": "!",
	"？": "?",
	"：": ":",
	"；": ";",
	"（": "(",
	"）": ")",
	"【": "[",
	"】": "]",
	"、": ",", // enumeration comma
	"—": "-",
}

// MapPunctuation returns the ASCII form of a CJK punctuation mark.
// Anything outside the table is returned unchanged.
func MapPunctuation(s string) string {
	if mapped, ok := punctuationMap[s]; ok {
		return mapped
	}
	return s
}

// ASCIIPunctuation lists the ASCII punctuation characters in code point order.
const ASCIIPunctuation = `!"#$%&'()*+,-./:;<=>?@[\]^_` + "`{|}~"

// IsASCIIPunct reports whether s is exactly one ASCII punctuation character.
func IsASCIIPunct(s string) bool {
	if len(s) != 1 {
		return false
	}
	return strings.IndexByte(ASCIIPunctuation, s[0]) >= 0
}

// IsPunctRun reports whether s appears as a contiguous run of
// ASCIIPunctuation. "()" and "," qualify, "?!" and ")(" do not. The empty
// string qualifies.
func IsPunctRun(s string) bool {
	return strings.Contains(ASCIIPunctuation, s)
}

// IsNumber reports whether s parses as a real number. Strings without any
// digit ("inf", "NaN") are rejected so Latin words never count as numbers.
func IsNumber(s string) bool {
	if !strings.ContainsAny(s, "0123456789") {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// numberRun matches the digit runs that collapse into one pinyin entry.
var numberRun = regexp.MustCompile(`[0-9]+(?:\.[0-9]+)?`)

// NumberSpans returns the byte offsets [start, end) of every number run in text.
func NumberSpans(text string) [][2]int {
	locs := numberRun.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return nil
	}
	spans := make([][2]int, len(locs))
	for i, loc := range locs {
		spans[i] = [2]int{loc[0], loc[1]}
	}
	return spans
}
