package align

import (
	"strings"

	"github.com/jamesainslie/go-wordpinyin/textnorm"
)

// Join renders syllable groups as a sentence: groups are separated by a
// single space, except that a group which is a run of ASCII punctuation (see
// textnorm.IsPunctRun) attaches to the preceding text. Empty groups add
// nothing.
func Join(groups []string) string {
	if len(groups) == 0 {
		return ""
	}

	var builder strings.Builder
	builder.WriteString(groups[0])
	for _, g := range groups[1:] {
		if !textnorm.IsPunctRun(g) {
			builder.WriteByte(' ')
		}
		builder.WriteString(g)
	}
	return builder.String()
}

// Format joins the syllable groups of aligned with Join.
func Format(aligned []Aligned) string {
	return Join(Groups(aligned))
}
