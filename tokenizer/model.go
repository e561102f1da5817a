package tokenizer

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jamesainslie/go-wordpinyin/internal/dictpb"
)

// ErrDictionary indicates a dictionary file that cannot be used.
var ErrDictionary = errors.New("tokenizer: invalid dictionary")

// Word represents a dictionary word with its corpus frequency.
type Word struct {
	Text string
	Freq float64
	POS  string
}

// Model represents a loaded word dictionary.
type Model struct {
	Words []Word
	Total float64 // sum of all frequencies
}

// LoadModel loads a word dictionary. Files ending in .pb or .bin use the
// binary dictionary format; anything else is read as text with one
// "word freq [pos]" entry per line, the layout used by jieba and gse.
func LoadModel(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dictionary file: %w", err)
	}

	var words []Word
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pb", ".bin":
		entries, err := dictpb.Unmarshal(data)
		if err != nil {
			return nil, fmt.Errorf("parsing dictionary: %w", err)
		}
		words = make([]Word, 0, len(entries))
		for _, e := range entries {
			words = append(words, Word{Text: e.Text, Freq: e.Freq, POS: e.POS})
		}
	default:
		words, err = parseWords(data)
		if err != nil {
			return nil, err
		}
	}

	return NewModel(words)
}

// NewModel validates words and computes the frequency total.
func NewModel(words []Word) (*Model, error) {
	m := &Model{Words: words}
	for _, w := range words {
		if w.Text == "" || w.Freq <= 0 {
			return nil, fmt.Errorf("%w: entry %q has frequency %v", ErrDictionary, w.Text, w.Freq)
		}
		m.Total += w.Freq
	}
	if m.Total == 0 {
		return nil, fmt.Errorf("%w: no words", ErrDictionary)
	}
	return m, nil
}

// Entries converts the model into binary dictionary entries.
func (m *Model) Entries() []dictpb.Entry {
	entries := make([]dictpb.Entry, len(m.Words))
	for i, w := range m.Words {
		entries[i] = dictpb.Entry{Text: w.Text, Freq: w.Freq, POS: w.POS}
	}
	return entries
}

func parseWords(data []byte) ([]Word, error) {
	var words []Word
	scanner := bufio.NewScanner(bytes.NewReader(data))
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Fields(text)
		w := Word{Text: fields[0], Freq: 1}
		if len(fields) > 1 {
			freq, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: frequency %q", ErrDictionary, line, fields[1])
			}
			w.Freq = freq
		}
		if len(fields) > 2 {
			w.POS = fields[2]
		}
		words = append(words, w)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan dictionary: %w", err)
	}
	return words, nil
}
