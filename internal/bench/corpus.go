// Package bench evaluates word segmentation and pinyin output against a gold
// segmented corpus.
//
// A corpus file holds one sentence per line with words separated by spaces,
// optionally followed by a tab and the expected plain pinyin:
//
//	# Source: UD_Chinese-GSD zh_gsd-ud-test.conllu
//	可以 刷卡 吗 ？	keyi shuaka ma?
package bench

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/jamesainslie/go-wordpinyin/textnorm"
)

// Header contains metadata parsed from corpus header comments.
type Header struct {
	Source string
	Title  string
}

// Sample is one gold sentence.
type Sample struct {
	Line   int      // 1-based line number in the corpus file
	Words  []string // gold words, cleaned
	Text   string   // concatenation of Words
	Pinyin string   // expected plain pinyin; empty when not annotated
}

// Boundaries returns the rune offsets where a gold word ends, excluding the
// end of the sentence.
func (s Sample) Boundaries() []int {
	return Boundaries(s.Words)
}

// Boundaries returns the rune offsets between consecutive words.
func Boundaries(words []string) []int {
	if len(words) < 2 {
		return nil
	}
	out := make([]int, 0, len(words)-1)
	off := 0
	for _, w := range words[:len(words)-1] {
		off += utf8.RuneCountInString(w)
		out = append(out, off)
	}
	return out
}

// ParseSample parses one corpus line. Words are reduced to the characters
// the converter keeps, and words that become empty are dropped. ok is false
// for blank and comment lines.
func ParseSample(line string) (s Sample, ok bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return Sample{}, false
	}

	words, pinyin, _ := strings.Cut(line, "\t")
	for _, w := range strings.Fields(words) {
		if w = textnorm.Clean(textnorm.FoldWidth(w)); w != "" {
			s.Words = append(s.Words, w)
		}
	}
	if len(s.Words) == 0 {
		return Sample{}, false
	}
	s.Text = strings.Join(s.Words, "")
	s.Pinyin = strings.TrimSpace(pinyin)
	return s, true
}

// Corpus is a loaded corpus file.
type Corpus struct {
	ID string // filename without extension
	Header
	Samples []Sample
}

// LoadFile loads and parses a corpus file.
func LoadFile(path string) (*Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	base := filepath.Base(path)
	c := &Corpus{ID: strings.TrimSuffix(base, filepath.Ext(base))}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if header, ok := strings.CutPrefix(text, "#"); ok {
			parseHeaderLine(&c.Header, header)
			continue
		}
		if s, ok := ParseSample(text); ok {
			s.Line = line
			c.Samples = append(c.Samples, s)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", base, err)
	}

	return c, nil
}

func parseHeaderLine(h *Header, line string) {
	line = strings.TrimSpace(line)
	if value, ok := strings.CutPrefix(line, "Source:"); ok {
		h.Source = strings.TrimSpace(value)
	} else if value, ok := strings.CutPrefix(line, "Title:"); ok {
		h.Title = strings.TrimSpace(value)
	}
}

// LoadCorpus loads all .txt corpus files from a directory.
func LoadCorpus(dir string) ([]*Corpus, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	var corpora []*Corpus
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if filepath.Ext(entry.Name()) != ".txt" {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		c, err := LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", entry.Name(), err)
		}
		corpora = append(corpora, c)
	}

	return corpora, nil
}

// Samples flattens the samples of all corpora.
func Samples(corpora []*Corpus) []Sample {
	var out []Sample
	for _, c := range corpora {
		out = append(out, c.Samples...)
	}
	return out
}
